package employee

type EmployeeResponse struct {
	ID               string `json:"id"`
	FullName         string `json:"full_name"`
	Email            string `json:"email"`
	DepartmentID     *string `json:"department_id,omitempty"`
	CompensationType string `json:"compensation_type"`

	AnnualSalary    *string `json:"annual_salary,omitempty"`
	BonusPercentage *string `json:"bonus_percentage,omitempty"`

	HourlyRate         *string `json:"hourly_rate,omitempty"`
	OvertimeMultiplier *string `json:"overtime_multiplier,omitempty"`

	EmploymentStatus string `json:"employment_status"`
	HireDate         string `json:"hire_date"`
}
