package timeentry

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"

	SourceManual   = "MANUAL"
	SourceImported = "IMPORTED"
)

// TimeEntry is one day of captured hours for one employee. One entry
// per employee per day per source, enforced by
// uq_time_entry_employee_date_source. Entries are never updated once
// a payroll covering their date exists; that lock is derived from the
// payroll table, not stored here.
type TimeEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index:uq_time_entry_employee_date_source,unique;index:idx_time_entry_employee_date"`

	EntryDate     time.Time       `gorm:"column:entry_date;type:date;not null;index:uq_time_entry_employee_date_source,unique;index:idx_time_entry_employee_date"`
	RegularHours  decimal.Decimal `gorm:"column:regular_hours;type:numeric(6,2);not null;default:0"`
	OvertimeHours decimal.Decimal `gorm:"column:overtime_hours;type:numeric(6,2);not null;default:0"`

	Status          string  `gorm:"column:status;type:varchar(20);not null;default:'PENDING';index"`
	Source          string  `gorm:"column:source;type:varchar(20);not null;default:'MANUAL';index:uq_time_entry_employee_date_source,unique"`
	SourceReference *string `gorm:"column:source_reference;type:varchar(100)"`
	Notes           *string `gorm:"column:notes;type:varchar(255)"`

	ApprovedBy *string    `gorm:"column:approved_by;type:varchar(100)"`
	ApprovedAt *time.Time `gorm:"column:approved_at"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (TimeEntry) TableName() string {
	return "time_entries"
}
