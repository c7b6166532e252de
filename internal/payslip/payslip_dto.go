package payslip

type GeneratePayslipRequest struct {
	PayrollID       string  `json:"payrollId" binding:"required"`
	PaymentDate     *string `json:"paymentDate,omitempty"`
	PaymentMethod   *string `json:"paymentMethod,omitempty"`
	BankAccountMask *string `json:"bankAccountMask,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

type PayslipResponse struct {
	ID         string `json:"id"`
	PayrollID  string `json:"payrollId"`
	EmployeeID string `json:"employeeId"`

	PayslipNumber string `json:"payslipNumber"`

	PayPeriodStart string `json:"payPeriodStart"`
	PayPeriodEnd   string `json:"payPeriodEnd"`

	GrossPay        string `json:"grossPay"`
	TotalDeductions string `json:"totalDeductions"`
	NetPay          string `json:"netPay"`

	IssueDate   string `json:"issueDate"`
	PaymentDate string `json:"paymentDate"`

	PaymentMethod   string  `json:"paymentMethod"`
	BankAccountMask *string `json:"bankAccountMask,omitempty"`

	Status string `json:"status"`

	Notes *string `json:"notes,omitempty"`
}
