package department

type DepartmentResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	CostCenter  string  `json:"costCenter"`
	Description *string `json:"description,omitempty"`
}

type SummarizeRequest struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

// DepartmentSummaryResponse is zeroed, not erroring, when no payrolls
// fall in the range.
type DepartmentSummaryResponse struct {
	DepartmentID   string `json:"departmentId"`
	DepartmentName string `json:"departmentName"`
	CostCenter     string `json:"costCenter"`

	From string `json:"from"`
	To   string `json:"to"`

	PayrollCount int64 `json:"payrollCount"`

	TotalGrossPay string `json:"totalGrossPay"`
	TotalNetPay   string `json:"totalNetPay"`

	TotalRegularHours  string `json:"totalRegularHours"`
	TotalOvertimeHours string `json:"totalOvertimeHours"`
}
