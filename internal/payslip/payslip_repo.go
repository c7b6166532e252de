package payslip

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PayrollView is a read-only projection of the payrolls table. The
// payroll module owns the schema; this keeps the dependency one-way.
type PayrollView struct {
	ID         uuid.UUID
	EmployeeID uuid.UUID

	PayPeriodStart time.Time `gorm:"column:pay_period_start"`
	PayPeriodEnd   time.Time `gorm:"column:pay_period_end"`

	GrossPay decimal.Decimal `gorm:"column:gross_pay"`

	IncomeTax              decimal.Decimal `gorm:"column:income_tax"`
	ProfessionalTax        decimal.Decimal `gorm:"column:professional_tax"`
	ProvidentFund          decimal.Decimal `gorm:"column:provident_fund"`
	ESI                    decimal.Decimal `gorm:"column:esi"`
	HealthInsurance        decimal.Decimal `gorm:"column:health_insurance"`
	RetirementContribution decimal.Decimal `gorm:"column:retirement_contribution"`

	NetPay decimal.Decimal `gorm:"column:net_pay"`

	RegularHours  decimal.Decimal `gorm:"column:regular_hours"`
	OvertimeHours decimal.Decimal `gorm:"column:overtime_hours"`
}

func (PayrollView) TableName() string {
	return "payrolls"
}

type EmployeeView struct {
	ID       uuid.UUID
	FullName string `gorm:"column:full_name"`
	Email    string
}

func (EmployeeView) TableName() string {
	return "employees"
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, slip *PaySlip) error
	FindByID(ctx context.Context, id string) (*PaySlip, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]PaySlip, error)
	FindLatestByEmployee(ctx context.Context, employeeID string) (*PaySlip, error)
	FindPayroll(ctx context.Context, payrollID string) (*PayrollView, error)
	FindEmployee(ctx context.Context, employeeID string) (*EmployeeView, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// Create goes through the bound transaction so the slip, its sequence
// allocation and its outbox event commit together.
func (r *repository) Create(ctx context.Context, slip *PaySlip) error {
	const query = `
        INSERT INTO payslips (
            id, payroll_id, employee_id, payslip_number,
            pay_period_start, pay_period_end,
            gross_pay, total_deductions, net_pay,
            issue_date, payment_date, payment_method, bank_account_mask,
            status, notes, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, now())
    `

	_, err := r.execer().ExecContext(
		ctx, query,
		slip.ID, slip.PayrollID, slip.EmployeeID, slip.PayslipNumber,
		slip.PayPeriodStart.Format("2006-01-02"), slip.PayPeriodEnd.Format("2006-01-02"),
		slip.GrossPay, slip.TotalDeductions, slip.NetPay,
		slip.IssueDate.Format("2006-01-02"), slip.PaymentDate.Format("2006-01-02"),
		slip.PaymentMethod, slip.BankAccountMask,
		slip.Status, slip.Notes,
	)
	return err
}

func (r *repository) FindByID(ctx context.Context, id string) (*PaySlip, error) {
	var slip PaySlip
	err := r.db.WithContext(ctx).
		First(&slip, "id = ?", id).Error
	return &slip, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]PaySlip, error) {
	var rows []PaySlip
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("pay_period_end DESC, issue_date DESC").
		Find(&rows).Error
	return rows, err
}

// FindLatestByEmployee orders by period end first so a late-issued
// slip for an older period never outranks the current one.
func (r *repository) FindLatestByEmployee(ctx context.Context, employeeID string) (*PaySlip, error) {
	var slip PaySlip
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("pay_period_end DESC, issue_date DESC").
		First(&slip).Error
	return &slip, err
}

func (r *repository) FindPayroll(ctx context.Context, payrollID string) (*PayrollView, error) {
	var row PayrollView
	err := r.db.WithContext(ctx).
		First(&row, "id = ?", payrollID).Error
	return &row, err
}

func (r *repository) FindEmployee(ctx context.Context, employeeID string) (*EmployeeView, error) {
	var row EmployeeView
	err := r.db.WithContext(ctx).
		First(&row, "id = ?", employeeID).Error
	return &row, err
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db.ConnPool
}
