package department

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Summary is the raw aggregate row; sums are COALESCEd so an empty
// range scans into zeros instead of NULLs.
type Summary struct {
	PayrollCount       int64
	TotalGrossPay      decimal.Decimal
	TotalNetPay        decimal.Decimal
	TotalRegularHours  decimal.Decimal
	TotalOvertimeHours decimal.Decimal
}

type Repository interface {
	FindAll(ctx context.Context) ([]Department, error)
	FindByID(ctx context.Context, id string) (*Department, error)
	Summarize(ctx context.Context, departmentID string, from, to time.Time) (Summary, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAll(ctx context.Context) ([]Department, error) {
	var rows []Department
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Department, error) {
	var d Department
	err := r.db.WithContext(ctx).
		First(&d, "id = ?", id).Error
	return &d, err
}

// Summarize aggregates over the department snapshot stored on each
// payroll row, so a later transfer of the employee does not rewrite
// past periods. A period belongs to the range when its start date
// falls inside it: a Mar 25 - Apr 24 payroll counts toward March.
func (r *repository) Summarize(ctx context.Context, departmentID string, from, to time.Time) (Summary, error) {
	var row struct {
		PayrollCount       int64
		TotalGrossPay      decimal.Decimal
		TotalNetPay        decimal.Decimal
		TotalRegularHours  decimal.Decimal
		TotalOvertimeHours decimal.Decimal
	}

	err := r.db.WithContext(ctx).
		Table("payrolls").
		Select(`
			COUNT(*) AS payroll_count,
			COALESCE(SUM(gross_pay), 0) AS total_gross_pay,
			COALESCE(SUM(net_pay), 0) AS total_net_pay,
			COALESCE(SUM(regular_hours), 0) AS total_regular_hours,
			COALESCE(SUM(overtime_hours), 0) AS total_overtime_hours
		`).
		Where("department_id = ?", departmentID).
		Where("pay_period_start BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Scan(&row).Error
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		PayrollCount:       row.PayrollCount,
		TotalGrossPay:      row.TotalGrossPay,
		TotalNetPay:        row.TotalNetPay,
		TotalRegularHours:  row.TotalRegularHours,
		TotalOvertimeHours: row.TotalOvertimeHours,
	}, nil
}
