package payroll

import (
	"context"
	"database/sql"
	"time"

	"go-payroll/internal/employee"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type HourTotals struct {
	RegularHours  decimal.Decimal
	OvertimeHours decimal.Decimal
	EntryCount    int64
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Payroll) error
	FindByID(ctx context.Context, id string) (*Payroll, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]Payroll, error)
	FindAllByDepartment(ctx context.Context, departmentID string) ([]Payroll, error)
	FindEmployee(ctx context.Context, employeeID string) (*employee.Employee, error)
	SumApprovedHours(ctx context.Context, employeeID string, start, end time.Time) (HourTotals, error)
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

// Create inserts through the bound transaction so the payroll row and
// its outbox event commit atomically. The uq_payroll_employee_period
// constraint rejects a second row for the same employee and period.
func (r *repository) Create(ctx context.Context, p *Payroll) error {
	const query = `
        INSERT INTO payrolls (
            id, employee_id, department_id, pay_period_start, pay_period_end,
            gross_pay, income_tax, professional_tax, provident_fund, esi,
            health_insurance, retirement_contribution, net_pay,
            regular_hours, overtime_hours, processing_date, notes, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, now())
    `

	_, err := r.execer().ExecContext(
		ctx, query,
		p.ID, p.EmployeeID, p.DepartmentID,
		p.PayPeriodStart.Format("2006-01-02"), p.PayPeriodEnd.Format("2006-01-02"),
		p.GrossPay, p.IncomeTax, p.ProfessionalTax, p.ProvidentFund, p.ESI,
		p.HealthInsurance, p.RetirementContribution, p.NetPay,
		p.RegularHours, p.OvertimeHours,
		p.ProcessingDate.Format("2006-01-02"), p.Notes,
	)
	return err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Payroll, error) {
	var p Payroll
	err := r.db.WithContext(ctx).
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]Payroll, error) {
	var rows []Payroll
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("pay_period_start DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByDepartment(ctx context.Context, departmentID string) ([]Payroll, error) {
	var rows []Payroll
	err := r.db.WithContext(ctx).
		Where("department_id = ?", departmentID).
		Order("pay_period_start DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindEmployee(ctx context.Context, employeeID string) (*employee.Employee, error) {
	var e employee.Employee
	err := r.db.WithContext(ctx).
		First(&e, "id = ?", employeeID).Error
	return &e, err
}

func (r *repository) SumApprovedHours(ctx context.Context, employeeID string, start, end time.Time) (HourTotals, error) {
	var totals struct {
		RegularHours  decimal.Decimal
		OvertimeHours decimal.Decimal
		EntryCount    int64
	}

	err := r.db.WithContext(ctx).
		Table("time_entries").
		Select(
			"COALESCE(SUM(regular_hours), 0) AS regular_hours, COALESCE(SUM(overtime_hours), 0) AS overtime_hours, COUNT(*) AS entry_count",
		).
		Where("employee_id = ?", employeeID).
		Where("status = ?", "APPROVED").
		Where("entry_date BETWEEN ? AND ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Scan(&totals).Error
	if err != nil {
		return HourTotals{}, err
	}

	return HourTotals{
		RegularHours:  totals.RegularHours,
		OvertimeHours: totals.OvertimeHours,
		EntryCount:    totals.EntryCount,
	}, nil
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db.ConnPool
}
