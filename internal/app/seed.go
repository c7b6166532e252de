package app

import (
	"time"

	"go-payroll/internal/department"
	"go-payroll/internal/employee"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedDevData inserts a small fixture set for local development. It
// only runs against empty tables so restarts stay idempotent.
func SeedDevData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&department.Department{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	engineering := department.Department{
		ID:         uuid.New(),
		Name:       "Engineering",
		CostCenter: "CC-100",
	}
	operations := department.Department{
		ID:         uuid.New(),
		Name:       "Operations",
		CostCenter: "CC-200",
	}

	if err := db.Create([]*department.Department{&engineering, &operations}).Error; err != nil {
		return err
	}

	annual := decimal.NewFromInt(96000)
	bonus := decimal.NewFromInt(10)
	rate := decimal.NewFromInt(25)

	employees := []*employee.Employee{
		{
			ID:               uuid.New(),
			FullName:         "Ava Thompson",
			Email:            "ava.thompson@example.com",
			DepartmentID:     &engineering.ID,
			CompensationType: employee.CompensationSalaried,
			AnnualSalary:     &annual,
			BonusPercentage:  &bonus,
			EmploymentStatus: employee.StatusActive,
			HireDate:         time.Date(2022, 3, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:               uuid.New(),
			FullName:         "Marcus Lee",
			Email:            "marcus.lee@example.com",
			DepartmentID:     &operations.ID,
			CompensationType: employee.CompensationHourly,
			HourlyRate:       &rate,
			EmploymentStatus: employee.StatusActive,
			HireDate:         time.Date(2023, 7, 3, 0, 0, 0, 0, time.UTC),
		},
	}

	if err := db.Create(employees).Error; err != nil {
		return err
	}

	zap.L().Info("dev data seeded",
		zap.Int("departments", 2),
		zap.Int("employees", len(employees)),
	)
	return nil
}
