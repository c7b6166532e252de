package events

import "time"

const PayslipIssuedTopic = "hr.payroll.payslip.issued.v1"

type PayslipIssuedEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id,omitempty"`
	PayslipID     string    `json:"payslip_id"`
	PayrollID     string    `json:"payroll_id"`
	EmployeeID    string    `json:"employee_id"`
	PayslipNumber string    `json:"payslip_number"`
	IssueDate     string    `json:"issue_date"`
	PaymentDate   string    `json:"payment_date"`
	OccurredAt    time.Time `json:"occurred_at"`
}
