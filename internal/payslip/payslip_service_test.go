package payslip_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/payslip"
	paysliperrors "go-payroll/internal/payslip/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakePayslipRepository struct {
	withTxFn               func(tx *sql.Tx) payslip.Repository
	createFn               func(ctx context.Context, slip *payslip.PaySlip) error
	findByIDFn             func(ctx context.Context, id string) (*payslip.PaySlip, error)
	findAllByEmployeeFn    func(ctx context.Context, employeeID string) ([]payslip.PaySlip, error)
	findLatestByEmployeeFn func(ctx context.Context, employeeID string) (*payslip.PaySlip, error)
	findPayrollFn          func(ctx context.Context, payrollID string) (*payslip.PayrollView, error)
	findEmployeeFn         func(ctx context.Context, employeeID string) (*payslip.EmployeeView, error)
}

func (f *fakePayslipRepository) WithTx(tx *sql.Tx) payslip.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakePayslipRepository) Create(ctx context.Context, slip *payslip.PaySlip) error {
	if f.createFn != nil {
		return f.createFn(ctx, slip)
	}
	return nil
}

func (f *fakePayslipRepository) FindByID(ctx context.Context, id string) (*payslip.PaySlip, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakePayslipRepository) FindAllByEmployee(ctx context.Context, employeeID string) ([]payslip.PaySlip, error) {
	if f.findAllByEmployeeFn != nil {
		return f.findAllByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakePayslipRepository) FindLatestByEmployee(ctx context.Context, employeeID string) (*payslip.PaySlip, error) {
	if f.findLatestByEmployeeFn != nil {
		return f.findLatestByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakePayslipRepository) FindPayroll(ctx context.Context, payrollID string) (*payslip.PayrollView, error) {
	if f.findPayrollFn != nil {
		return f.findPayrollFn(ctx, payrollID)
	}
	return nil, nil
}

func (f *fakePayslipRepository) FindEmployee(ctx context.Context, employeeID string) (*payslip.EmployeeView, error) {
	if f.findEmployeeFn != nil {
		return f.findEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

type fakeCounterRepository struct {
	next   int64
	scopes []string
}

func (f *fakeCounterRepository) GetNextValue(ctx context.Context, scope string) (int64, error) {
	f.next++
	f.scopes = append(f.scopes, scope)
	return f.next, nil
}

type fakeOutboxRepository struct {
	withTxFn func(tx *sql.Tx) kafka.OutboxRepository
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error {
	return nil
}

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type payslipServiceDeps struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	service  payslip.Service
	repo     *fakePayslipRepository
	counters *fakeCounterRepository
	outbox   *fakeOutboxRepository
}

func setupPayslipServiceTest(t *testing.T) *payslipServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakePayslipRepository{}
	counters := &fakeCounterRepository{}
	outbox := &fakeOutboxRepository{}
	svc := payslip.NewService(db, repo, counters, outbox, 2)

	return &payslipServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo, counters: counters, outbox: outbox}
}

func payrollFixture(payrollID, employeeID uuid.UUID) *payslip.PayrollView {
	return &payslip.PayrollView{
		ID:                     payrollID,
		EmployeeID:             employeeID,
		PayPeriodStart:         time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		PayPeriodEnd:           time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
		GrossPay:               decimal.RequireFromString("4125.00"),
		IncomeTax:              decimal.RequireFromString("495.00"),
		ProfessionalTax:        decimal.RequireFromString("200.00"),
		ProvidentFund:          decimal.RequireFromString("495.00"),
		ESI:                    decimal.RequireFromString("30.94"),
		HealthInsurance:        decimal.RequireFromString("150.00"),
		RetirementContribution: decimal.RequireFromString("206.25"),
		NetPay:                 decimal.RequireFromString("2547.81"),
		RegularHours:           decimal.NewFromInt(150),
		OvertimeHours:          decimal.NewFromInt(10),
	}
}

func TestPayslipService_Generate(t *testing.T) {
	ctx := context.Background()
	payrollID := uuid.New()
	employeeID := uuid.New()

	deps := setupPayslipServiceTest(t)
	defer deps.db.Close()

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	deps.repo.findPayrollFn = func(ctx context.Context, id string) (*payslip.PayrollView, error) {
		return payrollFixture(payrollID, employeeID), nil
	}

	var created *payslip.PaySlip
	deps.repo.createFn = func(ctx context.Context, slip *payslip.PaySlip) error {
		created = slip
		return nil
	}

	var outboxEvent kafka.OutboxEvent
	deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
		outboxEvent = event
		return nil
	}

	resp, err := deps.service.Generate(ctx, payslip.GeneratePayslipRequest{PayrollID: payrollID.String()})
	assert.NoError(t, err)

	wantNumber := fmt.Sprintf("PS-%s-202602-0001", employeeID.String())
	assert.Equal(t, wantNumber, resp.PayslipNumber)
	assert.Equal(t, []string{fmt.Sprintf("payslip:%s:202602", employeeID.String())}, deps.counters.scopes)

	// Amounts are snapshotted from the payroll row, never recomputed
	assert.Equal(t, "4125.00", resp.GrossPay)
	assert.Equal(t, "1577.19", resp.TotalDeductions)
	assert.Equal(t, "2547.81", resp.NetPay)
	assert.Equal(t, payslip.StatusGenerated, resp.Status)
	assert.Equal(t, payslip.PaymentMethodBankTransfer, resp.PaymentMethod)

	// Default payment date: two business days after issue
	issue, err := time.Parse("2006-01-02", resp.IssueDate)
	assert.NoError(t, err)
	payment, err := time.Parse("2006-01-02", resp.PaymentDate)
	assert.NoError(t, err)
	assert.True(t, payment.After(issue))
	assert.NotEqual(t, time.Saturday, payment.Weekday())
	assert.NotEqual(t, time.Sunday, payment.Weekday())

	assert.NotNil(t, created)
	assert.Equal(t, events.PayslipIssuedTopic, outboxEvent.Topic)
	var payload events.PayslipIssuedEvent
	assert.NoError(t, json.Unmarshal(outboxEvent.Payload, &payload))
	assert.Equal(t, wantNumber, payload.PayslipNumber)

	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayslipService_Generate_SequenceIncrements(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	deps := setupPayslipServiceTest(t)
	defer deps.db.Close()

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()
	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	deps.repo.findPayrollFn = func(ctx context.Context, id string) (*payslip.PayrollView, error) {
		return payrollFixture(uuid.MustParse(id), employeeID), nil
	}

	first, err := deps.service.Generate(ctx, payslip.GeneratePayslipRequest{PayrollID: uuid.New().String()})
	assert.NoError(t, err)
	second, err := deps.service.Generate(ctx, payslip.GeneratePayslipRequest{PayrollID: uuid.New().String()})
	assert.NoError(t, err)

	assert.Contains(t, first.PayslipNumber, "-0001")
	assert.Contains(t, second.PayslipNumber, "-0002")
}

func TestPayslipService_Generate_AlreadyIssued(t *testing.T) {
	ctx := context.Background()
	payrollID := uuid.New()

	deps := setupPayslipServiceTest(t)
	defer deps.db.Close()

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectRollback()

	deps.repo.findPayrollFn = func(ctx context.Context, id string) (*payslip.PayrollView, error) {
		return payrollFixture(payrollID, uuid.New()), nil
	}
	deps.repo.createFn = func(ctx context.Context, slip *payslip.PaySlip) error {
		return &pgconn.PgError{Code: "23505", ConstraintName: "uq_payslip_payroll"}
	}

	_, err := deps.service.Generate(ctx, payslip.GeneratePayslipRequest{PayrollID: payrollID.String()})
	assert.ErrorIs(t, err, paysliperrors.ErrAlreadyIssued)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayslipService_Generate_PayrollNotFound(t *testing.T) {
	ctx := context.Background()
	deps := setupPayslipServiceTest(t)
	defer deps.db.Close()

	deps.repo.findPayrollFn = func(ctx context.Context, id string) (*payslip.PayrollView, error) {
		return nil, gorm.ErrRecordNotFound
	}

	_, err := deps.service.Generate(ctx, payslip.GeneratePayslipRequest{PayrollID: uuid.New().String()})
	assert.ErrorIs(t, err, paysliperrors.ErrPayrollNotFound)
}

func TestPayslipService_Generate_PaymentDateOverride(t *testing.T) {
	ctx := context.Background()
	payrollID := uuid.New()

	deps := setupPayslipServiceTest(t)
	defer deps.db.Close()

	deps.repo.findPayrollFn = func(ctx context.Context, id string) (*payslip.PayrollView, error) {
		return payrollFixture(payrollID, uuid.New()), nil
	}

	t.Run("valid future date", func(t *testing.T) {
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		override := time.Now().UTC().AddDate(0, 1, 0).Format("2006-01-02")
		resp, err := deps.service.Generate(ctx, payslip.GeneratePayslipRequest{
			PayrollID:   payrollID.String(),
			PaymentDate: &override,
		})
		assert.NoError(t, err)
		assert.Equal(t, override, resp.PaymentDate)
	})

	t.Run("date before issue rejected", func(t *testing.T) {
		past := "2020-01-01"
		_, err := deps.service.Generate(ctx, payslip.GeneratePayslipRequest{
			PayrollID:   payrollID.String(),
			PaymentDate: &past,
		})
		assert.ErrorIs(t, err, paysliperrors.ErrInvalidPaymentDate)
	})
}

func TestPayslipService_GetLatestByEmployee(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	deps := setupPayslipServiceTest(t)
	defer deps.db.Close()

	deps.repo.findLatestByEmployeeFn = func(ctx context.Context, id string) (*payslip.PaySlip, error) {
		return &payslip.PaySlip{
			ID:             uuid.New(),
			PayrollID:      uuid.New(),
			EmployeeID:     employeeID,
			PayslipNumber:  "PS-x-202602-0003",
			PayPeriodStart: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			PayPeriodEnd:   time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
			IssueDate:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			PaymentDate:    time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
			Status:         payslip.StatusGenerated,
		}, nil
	}

	resp, err := deps.service.GetLatestByEmployee(ctx, employeeID.String())
	assert.NoError(t, err)
	assert.Equal(t, "PS-x-202602-0003", resp.PayslipNumber)

	t.Run("none issued yet", func(t *testing.T) {
		deps.repo.findLatestByEmployeeFn = func(ctx context.Context, id string) (*payslip.PaySlip, error) {
			return nil, gorm.ErrRecordNotFound
		}
		_, err := deps.service.GetLatestByEmployee(ctx, employeeID.String())
		assert.ErrorIs(t, err, paysliperrors.ErrPayslipNotFound)
	})
}

func TestPayslipService_RenderPDF(t *testing.T) {
	ctx := context.Background()
	slipID := uuid.New()
	payrollID := uuid.New()
	employeeID := uuid.New()

	deps := setupPayslipServiceTest(t)
	defer deps.db.Close()

	deps.repo.findByIDFn = func(ctx context.Context, id string) (*payslip.PaySlip, error) {
		return &payslip.PaySlip{
			ID:              slipID,
			PayrollID:       payrollID,
			EmployeeID:      employeeID,
			PayslipNumber:   "PS-x-202602-0001",
			PayPeriodStart:  time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			PayPeriodEnd:    time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
			GrossPay:        decimal.RequireFromString("4125.00"),
			TotalDeductions: decimal.RequireFromString("1577.19"),
			NetPay:          decimal.RequireFromString("2547.81"),
			IssueDate:       time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			PaymentDate:     time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		}, nil
	}
	deps.repo.findPayrollFn = func(ctx context.Context, id string) (*payslip.PayrollView, error) {
		return payrollFixture(payrollID, employeeID), nil
	}
	deps.repo.findEmployeeFn = func(ctx context.Context, id string) (*payslip.EmployeeView, error) {
		return &payslip.EmployeeView{ID: employeeID, FullName: "Marcus Lee", Email: "marcus.lee@example.com"}, nil
	}

	data, filename, err := deps.service.RenderPDF(ctx, slipID.String())
	assert.NoError(t, err)
	assert.Equal(t, "PS-x-202602-0001.pdf", filename)
	assert.True(t, len(data) > 0)
	assert.Equal(t, "%PDF", string(data[:4]))
}
