package timeentry

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, entry *TimeEntry) error
	FindByID(ctx context.Context, id string) (*TimeEntry, error)
	Query(ctx context.Context, employeeID string, from, to time.Time, status string) ([]TimeEntry, error)
	Update(ctx context.Context, entry *TimeEntry) error
	Delete(ctx context.Context, id string) error
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
	CountPayrollsCovering(ctx context.Context, employeeID string, date time.Time) (int64, error)
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

// Create inserts through the transaction when one is bound, so a
// batch import commits all rows or none.
func (r *repository) Create(ctx context.Context, entry *TimeEntry) error {
	const query = `
        INSERT INTO time_entries (
            id, employee_id, entry_date, regular_hours, overtime_hours,
            status, source, source_reference, notes, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
    `

	_, err := r.execer().ExecContext(
		ctx, query,
		entry.ID, entry.EmployeeID, entry.EntryDate.Format("2006-01-02"),
		entry.RegularHours, entry.OvertimeHours,
		entry.Status, entry.Source, entry.SourceReference, entry.Notes,
	)
	return err
}

func (r *repository) FindByID(ctx context.Context, id string) (*TimeEntry, error) {
	var entry TimeEntry
	err := r.db.WithContext(ctx).
		First(&entry, "id = ?", id).Error
	return &entry, err
}

func (r *repository) Query(ctx context.Context, employeeID string, from, to time.Time, status string) ([]TimeEntry, error) {
	db := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("entry_date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02"))

	if status != "" {
		db = db.Where("status = ?", status)
	}

	var rows []TimeEntry
	err := db.Order("entry_date ASC").Find(&rows).Error
	return rows, err
}

// Update persists a status decision. It runs through the bound
// transaction so the consumed check and the write see the same
// payroll state.
func (r *repository) Update(ctx context.Context, entry *TimeEntry) error {
	const query = `
        UPDATE time_entries
        SET status = $2, approved_by = $3, approved_at = $4, updated_at = now()
        WHERE id = $1
    `

	_, err := r.execer().ExecContext(
		ctx, query,
		entry.ID, entry.Status, entry.ApprovedBy, entry.ApprovedAt,
	)
	return err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	_, err := r.execer().ExecContext(ctx, `DELETE FROM time_entries WHERE id = $1`, id)
	return err
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

// CountPayrollsCovering reports how many payroll records exist for
// the employee whose period contains the given date. A non-zero
// result means entries on that date are consumed and frozen. The
// count participates in the bound transaction when one is set.
func (r *repository) CountPayrollsCovering(ctx context.Context, employeeID string, date time.Time) (int64, error) {
	const query = `
        SELECT COUNT(*) FROM payrolls
        WHERE employee_id = $1 AND pay_period_start <= $2 AND pay_period_end >= $2
    `

	var count int64
	err := r.execer().
		QueryRowContext(ctx, query, employeeID, date.Format("2006-01-02")).
		Scan(&count)
	return count, err
}

// Both *sql.Tx and gorm's ConnPool satisfy this pair.
func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db.ConnPool
}
