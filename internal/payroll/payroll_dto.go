package payroll

type ProcessPayrollRequest struct {
	EmployeeID     string `json:"employeeId" binding:"required"`
	PayPeriodStart string `json:"payPeriodStart" binding:"required"`
	PayPeriodEnd   string `json:"payPeriodEnd" binding:"required"`
	ApplyBonus     bool   `json:"applyBonus"`
}

type PayrollResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employeeId"`
	DepartmentID *string `json:"departmentId,omitempty"`

	PayPeriodStart string `json:"payPeriodStart"`
	PayPeriodEnd   string `json:"payPeriodEnd"`

	GrossPay string `json:"grossPay"`

	IncomeTax              string `json:"incomeTax"`
	ProfessionalTax        string `json:"professionalTax"`
	ProvidentFund          string `json:"providentFund"`
	ESI                    string `json:"esi"`
	HealthInsurance        string `json:"healthInsurance"`
	RetirementContribution string `json:"retirementContribution"`

	NetPay string `json:"netPay"`

	RegularHours  string `json:"regularHours"`
	OvertimeHours string `json:"overtimeHours"`

	ProcessingDate string `json:"processingDate"`
}

// IssuedPayslip is what the process endpoint reports back about the
// slip issued alongside the payroll record.
type IssuedPayslip struct {
	ID            string `json:"id"`
	PayslipNumber string `json:"payslipNumber"`
}

type ProcessPayrollResult struct {
	Payroll PayrollResponse `json:"payroll"`
	Payslip *IssuedPayslip  `json:"payslip,omitempty"`
}
