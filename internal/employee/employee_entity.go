package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	CompensationSalaried = "SALARIED"
	CompensationHourly   = "HOURLY"

	StatusActive     = "ACTIVE"
	StatusOnLeave    = "ON_LEAVE"
	StatusTerminated = "TERMINATED"
)

// Employee is owned by the HR subsystem; payroll treats it as
// read-only input. Exactly one compensation basis is populated,
// which Compensation() resolves into a typed variant.
type Employee struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName     string     `gorm:"column:full_name;type:varchar(120);not null"`
	Email        string     `gorm:"type:varchar(150);uniqueIndex:uq_employee_email"`
	DepartmentID *uuid.UUID `gorm:"type:uuid;index"`

	CompensationType string `gorm:"column:compensation_type;type:varchar(20);not null"`

	// Salaried basis
	AnnualSalary    *decimal.Decimal `gorm:"column:annual_salary;type:numeric(14,2)"`
	BonusPercentage *decimal.Decimal `gorm:"column:bonus_percentage;type:numeric(5,2)"`

	// Hourly basis
	HourlyRate         *decimal.Decimal `gorm:"column:hourly_rate;type:numeric(10,2)"`
	OvertimeMultiplier *decimal.Decimal `gorm:"column:overtime_multiplier;type:numeric(4,2)"`

	EmploymentStatus string    `gorm:"column:employment_status;type:varchar(20);not null;default:'ACTIVE';index"`
	HireDate         time.Time `gorm:"column:hire_date;type:date"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
