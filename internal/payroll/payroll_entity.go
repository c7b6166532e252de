package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payroll is the canonical calculation result for one employee over
// one pay period. At most one row may exist per
// (employee_id, pay_period_start, pay_period_end); the unique index
// uq_payroll_employee_period enforces that in the database so two
// concurrent process calls cannot both insert. Rows are immutable:
// there is no update or delete path.
type Payroll struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID   uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;index:uq_payroll_employee_period,unique"`
	DepartmentID *uuid.UUID `gorm:"column:department_id;type:uuid;index"`

	PayPeriodStart time.Time `gorm:"column:pay_period_start;type:date;not null;index:uq_payroll_employee_period,unique"`
	PayPeriodEnd   time.Time `gorm:"column:pay_period_end;type:date;not null;index:uq_payroll_employee_period,unique"`

	GrossPay decimal.Decimal `gorm:"column:gross_pay;type:numeric(14,2);not null"`

	IncomeTax              decimal.Decimal `gorm:"column:income_tax;type:numeric(14,2);not null"`
	ProfessionalTax        decimal.Decimal `gorm:"column:professional_tax;type:numeric(14,2);not null"`
	ProvidentFund          decimal.Decimal `gorm:"column:provident_fund;type:numeric(14,2);not null"`
	ESI                    decimal.Decimal `gorm:"column:esi;type:numeric(14,2);not null"`
	HealthInsurance        decimal.Decimal `gorm:"column:health_insurance;type:numeric(14,2);not null"`
	RetirementContribution decimal.Decimal `gorm:"column:retirement_contribution;type:numeric(14,2);not null"`

	NetPay decimal.Decimal `gorm:"column:net_pay;type:numeric(14,2);not null"`

	RegularHours  decimal.Decimal `gorm:"column:regular_hours;type:numeric(8,2);not null;default:0"`
	OvertimeHours decimal.Decimal `gorm:"column:overtime_hours;type:numeric(8,2);not null;default:0"`

	ProcessingDate time.Time `gorm:"column:processing_date;type:date;not null"`
	Notes          *string   `gorm:"column:notes;type:varchar(255)"`

	CreatedAt time.Time
}

func (Payroll) TableName() string {
	return "payrolls"
}
