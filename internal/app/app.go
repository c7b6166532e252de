package app

import (
	"os"

	"go-payroll/internal/department"
	"go-payroll/internal/employee"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/payroll"
	"go-payroll/internal/payslip"
	"go-payroll/internal/shared/connection"
	"go-payroll/internal/shared/counter"
	"go-payroll/internal/timeentry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	if err := migrate(gormDB); err != nil {
		return err
	}

	if os.Getenv("SEED_DEV_DATA") == "true" {
		if err := SeedDevData(gormDB); err != nil {
			zap.L().Warn("dev data seed failed", zap.Error(err))
		}
	}

	rdb, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	return registerModules(router, sqlDB, gormDB, rdb)
}

func migrate(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(
		&department.Department{},
		&employee.Employee{},
		&timeentry.TimeEntry{},
		&payroll.Payroll{},
		&payslip.PaySlip{},
		&counter.Counter{},
		&kafka.OutboxRecord{},
	)
}
