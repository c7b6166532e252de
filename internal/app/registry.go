package app

import (
	"context"
	"database/sql"

	"go-payroll/internal/department"
	"go-payroll/internal/employee"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/middleware"
	"go-payroll/internal/payroll"
	"go-payroll/internal/payslip"
	"go-payroll/internal/shared/counter"
	"go-payroll/internal/timeentry"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// payslipIssuerAdapter lets the payroll engine trigger issuance
// without importing the payslip package.
type payslipIssuerAdapter struct {
	service payslip.Service
}

func (a payslipIssuerAdapter) IssueForPayroll(ctx context.Context, payrollID string) (payroll.IssuedPayslip, error) {
	resp, err := a.service.Generate(ctx, payslip.GeneratePayslipRequest{PayrollID: payrollID})
	if err != nil {
		return payroll.IssuedPayslip{}, err
	}
	return payroll.IssuedPayslip{ID: resp.ID, PayslipNumber: resp.PayslipNumber}, nil
}

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	counterRepo := counter.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	payrollRepo := payroll.NewRepository(gormDB)
	payslipRepo := payslip.NewRepository(gormDB)
	timeEntryRepo := timeentry.NewRepository(gormDB)

	// --- Services ---
	departmentService := department.NewService(departmentRepo, rdb)
	employeeService := employee.NewService(employeeRepo, rdb)
	payrollService := payroll.NewService(db, payrollRepo, outboxRepo, payroll.RateTableFromEnv())
	payslipService := payslip.NewService(db, payslipRepo, counterRepo, outboxRepo, payslip.PaymentOffsetFromEnv())
	timeEntryService := timeentry.NewService(db, timeEntryRepo)

	payrollService.SetPayslipIssuer(payslipIssuerAdapter{service: payslipService})

	// --- Handlers ---
	departmentHandler := department.NewHandler(departmentService)
	employeeHandler := employee.NewHandler(employeeService)
	payrollHandler := payroll.NewHandler(payrollService, rdb)
	payslipHandler := payslip.NewHandler(payslipService, rdb)
	timeEntryHandler := timeentry.NewHandler(timeEntryService)

	// --- Middleware & Routes ---
	router.Use(middleware.RequestID())
	router.Use(middleware.RateLimitByIP(rate.Limit(50), 100))

	idempotency := middleware.Idempotency(rdb)

	api := router.Group("/api/v1")
	{
		department.RegisterRoutes(api, departmentHandler)
		employee.RegisterRoutes(api, employeeHandler)
		payroll.RegisterRoutes(api, payrollHandler, idempotency)
		payslip.RegisterRoutes(api, payslipHandler, idempotency)
		timeentry.RegisterRoutes(api, timeEntryHandler)
	}

	return nil
}
