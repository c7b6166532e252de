package timeentry

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go-payroll/internal/shared/money"
	timeentryerrors "go-payroll/internal/timeentry/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Record(ctx context.Context, req RecordTimeEntryRequest) (TimeEntryResponse, error)
	Import(ctx context.Context, req ImportTimeEntriesRequest) ([]TimeEntryResponse, error)
	SetStatus(ctx context.Context, id string, req SetStatusRequest) (TimeEntryResponse, error)
	Query(ctx context.Context, req QueryTimeEntriesRequest) ([]TimeEntryResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("timeentry.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timeentry.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Record(ctx context.Context, req RecordTimeEntryRequest) (TimeEntryResponse, error) {
	s.logger.Debug("record time entry requested",
		zap.String("employee_id", req.EmployeeID),
		zap.String("entry_date", req.EntryDate),
	)

	entry, err := s.buildEntry(ctx, req)
	if err != nil {
		s.logger.Warn("record time entry validation failed", zap.Error(err))
		return TimeEntryResponse{}, err
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Error("record time entry persist failed", zap.Error(err))
		return TimeEntryResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("record time entry success", zap.String("entry_id", entry.ID.String()))
	return mapToResponse(*entry), nil
}

func (s *service) Import(ctx context.Context, req ImportTimeEntriesRequest) ([]TimeEntryResponse, error) {
	s.logger.Debug("import time entries requested", zap.Int("count", len(req.Entries)))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("import time entries begin tx failed", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	resp := make([]TimeEntryResponse, 0, len(req.Entries))
	for _, item := range req.Entries {
		if item.Source == "" {
			item.Source = SourceImported
		}
		entry, err := s.buildEntry(ctx, item)
		if err != nil {
			return nil, err
		}
		if err := qtx.Create(ctx, entry); err != nil {
			s.logger.Error("import time entry persist failed",
				zap.String("employee_id", item.EmployeeID),
				zap.String("entry_date", item.EntryDate),
				zap.Error(err),
			)
			return nil, mapRepositoryError(err)
		}
		resp = append(resp, mapToResponse(*entry))
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("import time entries commit failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("import time entries success", zap.Int("count", len(resp)))
	return resp, nil
}

func (s *service) SetStatus(ctx context.Context, id string, req SetStatusRequest) (TimeEntryResponse, error) {
	s.logger.Debug("set time entry status requested",
		zap.String("entry_id", id),
		zap.String("target_status", req.Status),
	)

	if _, err := uuid.Parse(id); err != nil {
		return TimeEntryResponse{}, timeentryerrors.ErrInvalidEntryID
	}
	if !isValidStatus(req.Status) {
		return TimeEntryResponse{}, timeentryerrors.ErrInvalidStatusFilter
	}

	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return TimeEntryResponse{}, mapRepositoryError(err)
	}

	if !isAllowedStatusTransition(entry.Status, req.Status) {
		return TimeEntryResponse{}, timeentryerrors.ErrInvalidStatusTransition
	}

	entry.Status = req.Status
	if req.Status == StatusApproved {
		if req.ApprovedBy == nil || *req.ApprovedBy == "" {
			return TimeEntryResponse{}, timeentryerrors.ErrApprovedByRequired
		}
		entry.ApprovedBy = req.ApprovedBy
		now := time.Now().UTC()
		entry.ApprovedAt = &now
	} else {
		entry.ApprovedBy = nil
		entry.ApprovedAt = nil
	}

	// The consumed check and the write share a transaction so a
	// payroll processed in between cannot slip past the lock.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("set time entry status begin tx failed", zap.Error(err))
		return TimeEntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	consumed, err := entryConsumed(ctx, qtx, entry)
	if err != nil {
		return TimeEntryResponse{}, err
	}
	if consumed {
		s.logger.Warn("set status rejected, entry consumed by payroll",
			zap.String("entry_id", id),
		)
		return TimeEntryResponse{}, timeentryerrors.ErrEntryLocked
	}

	if err := qtx.Update(ctx, entry); err != nil {
		s.logger.Error("set time entry status persist failed", zap.Error(err))
		return TimeEntryResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("set time entry status commit failed", zap.Error(err))
		return TimeEntryResponse{}, err
	}

	s.logger.Info("set time entry status success",
		zap.String("entry_id", id),
		zap.String("status", req.Status),
	)
	return mapToResponse(*entry), nil
}

func (s *service) Query(ctx context.Context, req QueryTimeEntriesRequest) ([]TimeEntryResponse, error) {
	if _, err := uuid.Parse(req.EmployeeID); err != nil {
		return nil, timeentryerrors.ErrInvalidEmployeeID
	}
	from, err := parseDate(req.From)
	if err != nil {
		return nil, err
	}
	to, err := parseDate(req.To)
	if err != nil {
		return nil, err
	}
	if from.After(to) {
		return nil, timeentryerrors.ErrInvalidDateRange
	}
	status := strings.ToUpper(req.Status)
	if status != "" && !isValidStatus(status) {
		return nil, timeentryerrors.ErrInvalidStatusFilter
	}

	rows, err := s.repo.Query(ctx, req.EmployeeID, from, to, status)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]TimeEntryResponse, len(rows))
	for i, r := range rows {
		resp[i] = mapToResponse(r)
	}
	return resp, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	s.logger.Debug("delete time entry requested", zap.String("entry_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return timeentryerrors.ErrInvalidEntryID
	}

	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete time entry begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	consumed, err := entryConsumed(ctx, qtx, entry)
	if err != nil {
		return err
	}
	if consumed {
		return timeentryerrors.ErrEntryLocked
	}

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete time entry failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete time entry commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("delete time entry success", zap.String("entry_id", id))
	return nil
}

func (s *service) buildEntry(ctx context.Context, req RecordTimeEntryRequest) (*TimeEntry, error) {
	if _, err := uuid.Parse(req.EmployeeID); err != nil {
		return nil, timeentryerrors.ErrInvalidEmployeeID
	}

	entryDate, err := parseDate(req.EntryDate)
	if err != nil {
		return nil, err
	}

	regular, err := parseHours(req.RegularHours)
	if err != nil {
		return nil, err
	}
	overtime, err := parseHours(req.OvertimeHours)
	if err != nil {
		return nil, err
	}

	source := req.Source
	if source == "" {
		source = SourceManual
	}
	if source != SourceManual && source != SourceImported {
		return nil, timeentryerrors.ErrInvalidSource
	}

	exists, err := s.repo.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, timeentryerrors.ErrInvalidEmployeeID
	}

	return &TimeEntry{
		ID:              uuid.New(),
		EmployeeID:      uuid.MustParse(req.EmployeeID),
		EntryDate:       entryDate,
		RegularHours:    regular,
		OvertimeHours:   overtime,
		Status:          StatusPending,
		Source:          source,
		SourceReference: req.SourceReference,
		Notes:           req.Notes,
	}, nil
}

func entryConsumed(ctx context.Context, repo Repository, entry *TimeEntry) (bool, error) {
	count, err := repo.CountPayrollsCovering(ctx, entry.EmployeeID.String(), entry.EntryDate)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Transitions per the approval workflow: a decision may be reversed
// (re-review) until the entry is consumed by a payroll.
func isAllowedStatusTransition(currentStatus, targetStatus string) bool {
	if currentStatus == targetStatus {
		return false
	}

	switch currentStatus {
	case StatusPending:
		return targetStatus == StatusApproved || targetStatus == StatusRejected
	case StatusApproved:
		return targetStatus == StatusRejected
	case StatusRejected:
		return targetStatus == StatusApproved
	}
	return false
}

func isValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, timeentryerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func parseHours(v string) (decimal.Decimal, error) {
	d, err := money.FromString(v)
	if err != nil || money.IsNegative(d) {
		return decimal.Zero, timeentryerrors.ErrInvalidHours
	}
	return d, nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return timeentryerrors.ErrEntryNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_time_entry_employee_date_source" {
			return timeentryerrors.ErrDuplicateEntry
		}
	}

	if strings.Contains(strings.ToLower(err.Error()), "uq_time_entry_employee_date_source") {
		return timeentryerrors.ErrDuplicateEntry
	}

	return err
}

func mapToResponse(e TimeEntry) TimeEntryResponse {
	resp := TimeEntryResponse{
		ID:              e.ID.String(),
		EmployeeID:      e.EmployeeID.String(),
		EntryDate:       e.EntryDate.Format("2006-01-02"),
		RegularHours:    e.RegularHours.StringFixed(2),
		OvertimeHours:   e.OvertimeHours.StringFixed(2),
		Status:          e.Status,
		Source:          e.Source,
		SourceReference: e.SourceReference,
		Notes:           e.Notes,
		ApprovedBy:      e.ApprovedBy,
	}
	if e.ApprovedAt != nil {
		v := e.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	return resp
}
