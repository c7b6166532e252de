package payslip

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// buildPayslipPDF renders a single A4 page with the slip header, the
// pay period and the full deduction breakdown from the payroll row.
func buildPayslipPDF(slip *PaySlip, payroll *PayrollView, emp *EmployeeView) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Payslip "+slip.PayslipNumber)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", emp.FullName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", emp.Email))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s",
		slip.PayPeriodStart.Format("2006-01-02"), slip.PayPeriodEnd.Format("2006-01-02")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Issued: %s   Payment: %s",
		slip.IssueDate.Format("2006-01-02"), slip.PaymentDate.Format("2006-01-02")))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Gross pay: %s", slip.GrossPay.StringFixed(2)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	for _, row := range []struct {
		label  string
		amount string
	}{
		{"Income tax", payroll.IncomeTax.StringFixed(2)},
		{"Professional tax", payroll.ProfessionalTax.StringFixed(2)},
		{"Provident fund", payroll.ProvidentFund.StringFixed(2)},
		{"ESI", payroll.ESI.StringFixed(2)},
		{"Health insurance", payroll.HealthInsurance.StringFixed(2)},
		{"Retirement contribution", payroll.RetirementContribution.StringFixed(2)},
	} {
		pdf.Cell(80, 7, row.label)
		pdf.Cell(0, 7, row.amount)
		pdf.Ln(6)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total deductions: %s", slip.TotalDeductions.StringFixed(2)))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Net pay: %s", slip.NetPay.StringFixed(2)))

	if !payroll.RegularHours.IsZero() || !payroll.OvertimeHours.IsZero() {
		pdf.Ln(12)
		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(0, 7, fmt.Sprintf("Hours: %s regular, %s overtime",
			payroll.RegularHours.StringFixed(2), payroll.OvertimeHours.StringFixed(2)))
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
