package payslip

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaySlip is the issued document for one payroll record. Amounts are
// snapshotted at issue time so later rate changes never alter an
// already issued slip. uq_payslip_payroll allows at most one slip per
// payroll; uq_payslip_number keeps numbers globally unique.
type PaySlip struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PayrollID  uuid.UUID `gorm:"column:payroll_id;type:uuid;not null;uniqueIndex:uq_payslip_payroll"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index"`

	PayslipNumber string `gorm:"column:payslip_number;type:varchar(60);not null;uniqueIndex:uq_payslip_number"`

	PayPeriodStart time.Time `gorm:"column:pay_period_start;type:date;not null"`
	PayPeriodEnd   time.Time `gorm:"column:pay_period_end;type:date;not null;index"`

	GrossPay        decimal.Decimal `gorm:"column:gross_pay;type:numeric(14,2);not null"`
	TotalDeductions decimal.Decimal `gorm:"column:total_deductions;type:numeric(14,2);not null"`
	NetPay          decimal.Decimal `gorm:"column:net_pay;type:numeric(14,2);not null"`

	IssueDate   time.Time `gorm:"column:issue_date;type:date;not null"`
	PaymentDate time.Time `gorm:"column:payment_date;type:date;not null"`

	PaymentMethod   string  `gorm:"column:payment_method;type:varchar(30);not null;default:'BANK_TRANSFER'"`
	BankAccountMask *string `gorm:"column:bank_account_mask;type:varchar(30)"`

	Status string `gorm:"column:status;type:varchar(20);not null;default:'GENERATED'"`

	Notes *string `gorm:"column:notes;type:varchar(255)"`

	CreatedAt time.Time
}

const (
	PaymentMethodBankTransfer = "BANK_TRANSFER"
	PaymentMethodCheck        = "CHECK"

	StatusGenerated = "GENERATED"
)

func (PaySlip) TableName() string {
	return "payslips"
}
