package events

import "time"

const PayrollProcessedTopic = "hr.payroll.processed.v1"

type PayrollProcessedEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	PayrollID      string    `json:"payroll_id"`
	EmployeeID     string    `json:"employee_id"`
	PayPeriodStart string    `json:"pay_period_start"`
	PayPeriodEnd   string    `json:"pay_period_end"`
	GrossPay       string    `json:"gross_pay"`
	NetPay         string    `json:"net_pay"`
	OccurredAt     time.Time `json:"occurred_at"`
}
