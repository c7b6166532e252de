package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go-payroll/internal/employee"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PayslipIssuer issues the slip for a freshly committed payroll row.
// Declared here, implemented by the payslip module and wired at
// startup, so this package never imports payslip.
type PayslipIssuer interface {
	IssueForPayroll(ctx context.Context, payrollID string) (IssuedPayslip, error)
}

type Service interface {
	Process(ctx context.Context, req ProcessPayrollRequest) (ProcessPayrollResult, error)
	GetByID(ctx context.Context, id string) (PayrollResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]PayrollResponse, error)
	ListByDepartment(ctx context.Context, departmentID string) ([]PayrollResponse, error)
	SetPayslipIssuer(issuer PayslipIssuer)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rates  RateTable
	issuer PayslipIssuer
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, rates RateTable, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, rates: rates, logger: l}
}

// SetPayslipIssuer is called once during wiring, after the payslip
// module has been constructed.
func (s *service) SetPayslipIssuer(issuer PayslipIssuer) {
	s.issuer = issuer
}

func (s *service) Process(ctx context.Context, req ProcessPayrollRequest) (ProcessPayrollResult, error) {
	s.logger.Debug("process payroll requested",
		zap.String("employee_id", req.EmployeeID),
		zap.String("pay_period_start", req.PayPeriodStart),
		zap.String("pay_period_end", req.PayPeriodEnd),
	)

	if _, err := uuid.Parse(req.EmployeeID); err != nil {
		return ProcessPayrollResult{}, payrollerrors.ErrInvalidEmployeeID
	}
	start, err := parseDate(req.PayPeriodStart)
	if err != nil {
		return ProcessPayrollResult{}, err
	}
	end, err := parseDate(req.PayPeriodEnd)
	if err != nil {
		return ProcessPayrollResult{}, err
	}
	if start.After(end) {
		return ProcessPayrollResult{}, payrollerrors.ErrInvalidDateRange
	}

	// An absent employee and a terminated one fail the same way:
	// neither may have payroll processed.
	emp, err := s.repo.FindEmployee(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProcessPayrollResult{}, payrollerrors.ErrEmployeeNotEligible
		}
		return ProcessPayrollResult{}, err
	}
	if emp.EmploymentStatus == employee.StatusTerminated {
		s.logger.Warn("process payroll rejected, employee terminated",
			zap.String("employee_id", req.EmployeeID),
		)
		return ProcessPayrollResult{}, payrollerrors.ErrEmployeeNotEligible
	}

	comp, err := emp.Compensation()
	if err != nil {
		return ProcessPayrollResult{}, err
	}

	record, err := s.calculate(ctx, emp, comp, start, end, req.ApplyBonus)
	if err != nil {
		return ProcessPayrollResult{}, err
	}

	if err := s.persist(ctx, record); err != nil {
		return ProcessPayrollResult{}, err
	}

	s.logger.Info("process payroll success",
		zap.String("payroll_id", record.ID.String()),
		zap.String("employee_id", record.EmployeeID.String()),
		zap.String("net_pay", record.NetPay.StringFixed(2)),
	)

	result := ProcessPayrollResult{Payroll: mapToResponse(*record)}

	if s.issuer != nil {
		slip, err := s.issuer.IssueForPayroll(ctx, record.ID.String())
		if err != nil {
			// The payroll row is committed; the slip can be issued
			// later through the payslip endpoint.
			contextutil.GetLogger(ctx, s.logger).Error("payslip issuance after payroll failed",
				zap.String("payroll_id", record.ID.String()),
				zap.Error(err),
			)
		} else {
			result.Payslip = &slip
		}
	}

	return result, nil
}

func (s *service) calculate(ctx context.Context, emp *employee.Employee, comp employee.Compensation, start, end time.Time, applyBonus bool) (*Payroll, error) {
	record := &Payroll{
		ID:             uuid.New(),
		EmployeeID:     emp.ID,
		DepartmentID:   emp.DepartmentID,
		PayPeriodStart: start,
		PayPeriodEnd:   end,
		ProcessingDate: time.Now().UTC(),
	}

	switch c := comp.(type) {
	case employee.SalariedComp:
		record.GrossPay = SalariedGross(c.AnnualSalary, c.BonusPercentage, start, end, applyBonus)

	case employee.HourlyComp:
		totals, err := s.repo.SumApprovedHours(ctx, emp.ID.String(), start, end)
		if err != nil {
			return nil, err
		}
		if totals.EntryCount == 0 {
			s.logger.Warn("process payroll rejected, no approved hours",
				zap.String("employee_id", emp.ID.String()),
			)
			return nil, payrollerrors.ErrNoApprovedHours
		}
		record.RegularHours = totals.RegularHours
		record.OvertimeHours = totals.OvertimeHours
		record.GrossPay = HourlyGross(c.HourlyRate, c.OvertimeMultiplier, totals.RegularHours, totals.OvertimeHours)
	}

	deductions, net, err := ComputeDeductions(record.GrossPay, s.rates)
	if err != nil {
		return nil, err
	}

	record.IncomeTax = deductions.IncomeTax
	record.ProfessionalTax = deductions.ProfessionalTax
	record.ProvidentFund = deductions.ProvidentFund
	record.ESI = deductions.ESI
	record.HealthInsurance = deductions.HealthInsurance
	record.RetirementContribution = deductions.RetirementContribution
	record.NetPay = net

	return record, nil
}

// persist writes the payroll row and its outbox event in one
// transaction. The unique index on (employee, period) turns a
// concurrent duplicate into a constraint error instead of a second
// row.
func (s *service) persist(ctx context.Context, record *Payroll) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("process payroll begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, record); err != nil {
		s.logger.Error("process payroll persist failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	event, err := s.buildProcessedEvent(ctx, record)
	if err != nil {
		return err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		s.logger.Error("process payroll outbox write failed", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("process payroll commit failed", zap.Error(err))
		return mapRepositoryError(err)
	}
	return nil
}

func (s *service) buildProcessedEvent(ctx context.Context, record *Payroll) (kafka.OutboxEvent, error) {
	payload, err := json.Marshal(events.PayrollProcessedEvent{
		EventType:      "payroll.processed",
		RequestID:      contextutil.GetRequestID(ctx),
		PayrollID:      record.ID.String(),
		EmployeeID:     record.EmployeeID.String(),
		PayPeriodStart: record.PayPeriodStart.Format("2006-01-02"),
		PayPeriodEnd:   record.PayPeriodEnd.Format("2006-01-02"),
		GrossPay:       record.GrossPay.StringFixed(2),
		NetPay:         record.NetPay.StringFixed(2),
		OccurredAt:     time.Now().UTC(),
	})
	if err != nil {
		return kafka.OutboxEvent{}, err
	}

	event := kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "payroll",
		AggregateID:   record.ID.String(),
		EventType:     "payroll.processed",
		Topic:         events.PayrollProcessedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := kafka.ValidateOutboxEvent(event); err != nil {
		return kafka.OutboxEvent{}, err
	}
	return event, nil
}

func (s *service) GetByID(ctx context.Context, id string) (PayrollResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidPayrollID
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*record), nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID string) ([]PayrollResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, payrollerrors.ErrInvalidEmployeeID
	}

	rows, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToResponses(rows), nil
}

func (s *service) ListByDepartment(ctx context.Context, departmentID string) ([]PayrollResponse, error) {
	if _, err := uuid.Parse(departmentID); err != nil {
		return nil, payrollerrors.ErrInvalidDepartmentID
	}

	rows, err := s.repo.FindAllByDepartment(ctx, departmentID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToResponses(rows), nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, payrollerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollerrors.ErrPayrollNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_payroll_employee_period" {
			return payrollerrors.ErrAlreadyProcessed
		}
	}

	if strings.Contains(strings.ToLower(err.Error()), "uq_payroll_employee_period") {
		return payrollerrors.ErrAlreadyProcessed
	}

	return err
}

func mapToResponse(p Payroll) PayrollResponse {
	resp := PayrollResponse{
		ID:                     p.ID.String(),
		EmployeeID:             p.EmployeeID.String(),
		PayPeriodStart:         p.PayPeriodStart.Format("2006-01-02"),
		PayPeriodEnd:           p.PayPeriodEnd.Format("2006-01-02"),
		GrossPay:               p.GrossPay.StringFixed(2),
		IncomeTax:              p.IncomeTax.StringFixed(2),
		ProfessionalTax:        p.ProfessionalTax.StringFixed(2),
		ProvidentFund:          p.ProvidentFund.StringFixed(2),
		ESI:                    p.ESI.StringFixed(2),
		HealthInsurance:        p.HealthInsurance.StringFixed(2),
		RetirementContribution: p.RetirementContribution.StringFixed(2),
		NetPay:                 p.NetPay.StringFixed(2),
		RegularHours:           p.RegularHours.StringFixed(2),
		OvertimeHours:          p.OvertimeHours.StringFixed(2),
		ProcessingDate:         p.ProcessingDate.Format("2006-01-02"),
	}
	if p.DepartmentID != nil {
		v := p.DepartmentID.String()
		resp.DepartmentID = &v
	}
	return resp
}

func mapToResponses(rows []Payroll) []PayrollResponse {
	resp := make([]PayrollResponse, len(rows))
	for i, r := range rows {
		resp[i] = mapToResponse(r)
	}
	return resp
}
