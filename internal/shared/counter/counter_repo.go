package counter

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Counter backs sequence allocation (payslip numbers). One row per
// scope; the scope string encodes whatever uniqueness the caller needs
// (e.g. "payslip:<employee_id>:<period>").
type Counter struct {
	Scope     string `gorm:"column:scope;primaryKey;type:varchar(120)"`
	LastValue int64  `gorm:"column:last_value;not null;default:0"`
	UpdatedAt time.Time
}

func (Counter) TableName() string {
	return "sequence_counters"
}

type Repository interface {
	GetNextValue(ctx context.Context, scope string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetNextValue(ctx context.Context, scope string) (int64, error) {
	var nextValue int64

	// Raw SQL for an atomic UPSERT-and-increment; two concurrent
	// allocations for the same scope can never return the same value.
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO sequence_counters (scope, last_value, updated_at)
		VALUES (?, 1, now())
		ON CONFLICT (scope) DO UPDATE
		SET last_value = sequence_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, scope).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}
