package payslip

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	paysliperrors "go-payroll/internal/payslip/errors"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultPaymentOffsetDays = 2

type Service interface {
	Generate(ctx context.Context, req GeneratePayslipRequest) (PayslipResponse, error)
	GetByID(ctx context.Context, id string) (PayslipResponse, error)
	GetLatestByEmployee(ctx context.Context, employeeID string) (PayslipResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]PayslipResponse, error)
	RenderPDF(ctx context.Context, id string) ([]byte, string, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	counters   counter.Repository
	outbox     kafka.OutboxRepository
	offsetDays int
	logger     *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counters counter.Repository, outbox kafka.OutboxRepository, offsetDays int, logger ...*zap.Logger) Service {
	l := zap.L().Named("payslip.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payslip.service")
	}
	if offsetDays < 0 {
		offsetDays = defaultPaymentOffsetDays
	}
	return &service{db: db, repo: repo, counters: counters, outbox: outbox, offsetDays: offsetDays, logger: l}
}

// PaymentOffsetFromEnv reads PAYSLIP_PAYMENT_OFFSET_DAYS, falling back
// to the default of two business days.
func PaymentOffsetFromEnv() int {
	raw := os.Getenv("PAYSLIP_PAYMENT_OFFSET_DAYS")
	if raw == "" {
		return defaultPaymentOffsetDays
	}
	if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
		return v
	}
	return defaultPaymentOffsetDays
}

func (s *service) Generate(ctx context.Context, req GeneratePayslipRequest) (PayslipResponse, error) {
	s.logger.Debug("generate payslip requested", zap.String("payroll_id", req.PayrollID))

	if _, err := uuid.Parse(req.PayrollID); err != nil {
		return PayslipResponse{}, paysliperrors.ErrInvalidPayrollID
	}

	payroll, err := s.repo.FindPayroll(ctx, req.PayrollID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayslipResponse{}, paysliperrors.ErrPayrollNotFound
		}
		return PayslipResponse{}, err
	}

	issueDate := time.Now().UTC().Truncate(24 * time.Hour)

	paymentDate, err := s.resolvePaymentDate(issueDate, req.PaymentDate)
	if err != nil {
		return PayslipResponse{}, err
	}

	number, err := s.nextPayslipNumber(ctx, payroll)
	if err != nil {
		s.logger.Error("payslip number allocation failed", zap.Error(err))
		return PayslipResponse{}, err
	}

	method := PaymentMethodBankTransfer
	if req.PaymentMethod != nil && *req.PaymentMethod != "" {
		method = strings.ToUpper(*req.PaymentMethod)
	}

	slip := &PaySlip{
		ID:              uuid.New(),
		PayrollID:       payroll.ID,
		EmployeeID:      payroll.EmployeeID,
		PayslipNumber:   number,
		PayPeriodStart:  payroll.PayPeriodStart,
		PayPeriodEnd:    payroll.PayPeriodEnd,
		GrossPay:        payroll.GrossPay,
		TotalDeductions: payroll.GrossPay.Sub(payroll.NetPay),
		NetPay:          payroll.NetPay,
		IssueDate:       issueDate,
		PaymentDate:     paymentDate,
		PaymentMethod:   method,
		BankAccountMask: req.BankAccountMask,
		Status:          StatusGenerated,
		Notes:           req.Notes,
	}

	if err := s.persist(ctx, slip); err != nil {
		return PayslipResponse{}, err
	}

	s.logger.Info("generate payslip success",
		zap.String("payslip_id", slip.ID.String()),
		zap.String("payslip_number", slip.PayslipNumber),
	)
	return mapToResponse(*slip), nil
}

// resolvePaymentDate prefers an explicit request override; otherwise
// the payment falls the configured number of business days after
// issue, skipping weekends.
func (s *service) resolvePaymentDate(issueDate time.Time, override *string) (time.Time, error) {
	if override != nil && *override != "" {
		t, err := time.Parse("2006-01-02", *override)
		if err != nil || t.Before(issueDate) {
			return time.Time{}, paysliperrors.ErrInvalidPaymentDate
		}
		return t, nil
	}
	return addBusinessDays(issueDate, s.offsetDays), nil
}

func addBusinessDays(from time.Time, days int) time.Time {
	d := from
	for remaining := days; remaining > 0; {
		d = d.AddDate(0, 0, 1)
		if d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
			remaining--
		}
	}
	return d
}

// nextPayslipNumber allocates a per-employee, per-period sequence and
// formats it as PS-<employee>-<YYYYMM>-<seq>. The upsert counter keeps
// numbers strictly increasing within a scope even under concurrent
// issuance.
func (s *service) nextPayslipNumber(ctx context.Context, payroll *PayrollView) (string, error) {
	period := payroll.PayPeriodStart.Format("200601")
	scope := fmt.Sprintf("payslip:%s:%s", payroll.EmployeeID.String(), period)

	seq, err := s.counters.GetNextValue(ctx, scope)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("PS-%s-%s-%04d", payroll.EmployeeID.String(), period, seq), nil
}

func (s *service) persist(ctx context.Context, slip *PaySlip) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("generate payslip begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, slip); err != nil {
		s.logger.Error("generate payslip persist failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	event, err := s.buildIssuedEvent(ctx, slip)
	if err != nil {
		return err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		s.logger.Error("generate payslip outbox write failed", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("generate payslip commit failed", zap.Error(err))
		return mapRepositoryError(err)
	}
	return nil
}

func (s *service) buildIssuedEvent(ctx context.Context, slip *PaySlip) (kafka.OutboxEvent, error) {
	payload, err := json.Marshal(events.PayslipIssuedEvent{
		EventType:     "payslip.issued",
		RequestID:     contextutil.GetRequestID(ctx),
		PayslipID:     slip.ID.String(),
		PayrollID:     slip.PayrollID.String(),
		EmployeeID:    slip.EmployeeID.String(),
		PayslipNumber: slip.PayslipNumber,
		IssueDate:     slip.IssueDate.Format("2006-01-02"),
		PaymentDate:   slip.PaymentDate.Format("2006-01-02"),
		OccurredAt:    time.Now().UTC(),
	})
	if err != nil {
		return kafka.OutboxEvent{}, err
	}

	event := kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "payslip",
		AggregateID:   slip.ID.String(),
		EventType:     "payslip.issued",
		Topic:         events.PayslipIssuedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := kafka.ValidateOutboxEvent(event); err != nil {
		return kafka.OutboxEvent{}, err
	}
	return event, nil
}

func (s *service) GetByID(ctx context.Context, id string) (PayslipResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PayslipResponse{}, paysliperrors.ErrInvalidPayslipID
	}

	slip, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PayslipResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*slip), nil
}

func (s *service) GetLatestByEmployee(ctx context.Context, employeeID string) (PayslipResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return PayslipResponse{}, paysliperrors.ErrInvalidEmployeeID
	}

	slip, err := s.repo.FindLatestByEmployee(ctx, employeeID)
	if err != nil {
		return PayslipResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*slip), nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID string) ([]PayslipResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, paysliperrors.ErrInvalidEmployeeID
	}

	rows, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]PayslipResponse, len(rows))
	for i, r := range rows {
		resp[i] = mapToResponse(r)
	}
	return resp, nil
}

func (s *service) RenderPDF(ctx context.Context, id string) ([]byte, string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, "", paysliperrors.ErrInvalidPayslipID
	}

	slip, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, "", mapRepositoryError(err)
	}

	payroll, err := s.repo.FindPayroll(ctx, slip.PayrollID.String())
	if err != nil {
		return nil, "", mapRepositoryError(err)
	}

	emp, err := s.repo.FindEmployee(ctx, slip.EmployeeID.String())
	if err != nil {
		return nil, "", mapRepositoryError(err)
	}

	data, err := buildPayslipPDF(slip, payroll, emp)
	if err != nil {
		s.logger.Error("payslip pdf render failed",
			zap.String("payslip_id", id),
			zap.Error(err),
		)
		return nil, "", err
	}

	return data, slip.PayslipNumber + ".pdf", nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return paysliperrors.ErrPayslipNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_payslip_payroll" {
			return paysliperrors.ErrAlreadyIssued
		}
	}

	if strings.Contains(strings.ToLower(err.Error()), "uq_payslip_payroll") {
		return paysliperrors.ErrAlreadyIssued
	}

	return err
}

func mapToResponse(slip PaySlip) PayslipResponse {
	return PayslipResponse{
		ID:              slip.ID.String(),
		PayrollID:       slip.PayrollID.String(),
		EmployeeID:      slip.EmployeeID.String(),
		PayslipNumber:   slip.PayslipNumber,
		PayPeriodStart:  slip.PayPeriodStart.Format("2006-01-02"),
		PayPeriodEnd:    slip.PayPeriodEnd.Format("2006-01-02"),
		GrossPay:        slip.GrossPay.StringFixed(2),
		TotalDeductions: slip.TotalDeductions.StringFixed(2),
		NetPay:          slip.NetPay.StringFixed(2),
		IssueDate:       slip.IssueDate.Format("2006-01-02"),
		PaymentDate:     slip.PaymentDate.Format("2006-01-02"),
		PaymentMethod:   slip.PaymentMethod,
		BankAccountMask: slip.BankAccountMask,
		Status:          slip.Status,
		Notes:           slip.Notes,
	}
}
