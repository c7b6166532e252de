package timeentry_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-payroll/internal/timeentry"
	timeentryerrors "go-payroll/internal/timeentry/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fakeTimeEntryRepository struct {
	withTxFn                func(tx *sql.Tx) timeentry.Repository
	createFn                func(ctx context.Context, entry *timeentry.TimeEntry) error
	findByIDFn              func(ctx context.Context, id string) (*timeentry.TimeEntry, error)
	queryFn                 func(ctx context.Context, employeeID string, from, to time.Time, status string) ([]timeentry.TimeEntry, error)
	updateFn                func(ctx context.Context, entry *timeentry.TimeEntry) error
	deleteFn                func(ctx context.Context, id string) error
	employeeExistsFn        func(ctx context.Context, employeeID string) (bool, error)
	countPayrollsCoveringFn func(ctx context.Context, employeeID string, date time.Time) (int64, error)
}

func (f *fakeTimeEntryRepository) WithTx(tx *sql.Tx) timeentry.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeTimeEntryRepository) Create(ctx context.Context, entry *timeentry.TimeEntry) error {
	if f.createFn != nil {
		return f.createFn(ctx, entry)
	}
	return nil
}

func (f *fakeTimeEntryRepository) FindByID(ctx context.Context, id string) (*timeentry.TimeEntry, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeTimeEntryRepository) Query(ctx context.Context, employeeID string, from, to time.Time, status string) ([]timeentry.TimeEntry, error) {
	if f.queryFn != nil {
		return f.queryFn(ctx, employeeID, from, to, status)
	}
	return nil, nil
}

func (f *fakeTimeEntryRepository) Update(ctx context.Context, entry *timeentry.TimeEntry) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, entry)
	}
	return nil
}

func (f *fakeTimeEntryRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeTimeEntryRepository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	if f.employeeExistsFn != nil {
		return f.employeeExistsFn(ctx, employeeID)
	}
	return true, nil
}

func (f *fakeTimeEntryRepository) CountPayrollsCovering(ctx context.Context, employeeID string, date time.Time) (int64, error) {
	if f.countPayrollsCoveringFn != nil {
		return f.countPayrollsCoveringFn(ctx, employeeID, date)
	}
	return 0, nil
}

type timeEntryServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service timeentry.Service
	repo    *fakeTimeEntryRepository
}

func setupTimeEntryServiceTest(t *testing.T) *timeEntryServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeTimeEntryRepository{}
	svc := timeentry.NewService(db, repo)

	return &timeEntryServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo}
}

func pendingEntry(id, employeeID uuid.UUID) *timeentry.TimeEntry {
	return &timeentry.TimeEntry{
		ID:            id,
		EmployeeID:    employeeID,
		EntryDate:     time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		RegularHours:  decimal.NewFromInt(8),
		OvertimeHours: decimal.Zero,
		Status:        timeentry.StatusPending,
		Source:        timeentry.SourceManual,
	}
}

func TestTimeEntryService_Record(t *testing.T) {
	ctx := context.Background()
	deps := setupTimeEntryServiceTest(t)
	defer deps.db.Close()

	var created *timeentry.TimeEntry
	deps.repo.createFn = func(ctx context.Context, entry *timeentry.TimeEntry) error {
		created = entry
		return nil
	}

	resp, err := deps.service.Record(ctx, timeentry.RecordTimeEntryRequest{
		EmployeeID:   uuid.New().String(),
		EntryDate:    "2026-02-10",
		RegularHours: "8",
	})

	assert.NoError(t, err)
	assert.Equal(t, timeentry.StatusPending, resp.Status)
	assert.Equal(t, timeentry.SourceManual, resp.Source)
	assert.Equal(t, "8.00", resp.RegularHours)
	assert.NotNil(t, created)
}

func TestTimeEntryService_Record_NegativeHours(t *testing.T) {
	ctx := context.Background()
	deps := setupTimeEntryServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.Record(ctx, timeentry.RecordTimeEntryRequest{
		EmployeeID:   uuid.New().String(),
		EntryDate:    "2026-02-10",
		RegularHours: "-1",
	})

	assert.ErrorIs(t, err, timeentryerrors.ErrInvalidHours)
}

func TestTimeEntryService_Record_Duplicate(t *testing.T) {
	ctx := context.Background()
	deps := setupTimeEntryServiceTest(t)
	defer deps.db.Close()

	deps.repo.createFn = func(ctx context.Context, entry *timeentry.TimeEntry) error {
		return &pgconn.PgError{Code: "23505", ConstraintName: "uq_time_entry_employee_date_source"}
	}

	_, err := deps.service.Record(ctx, timeentry.RecordTimeEntryRequest{
		EmployeeID:   uuid.New().String(),
		EntryDate:    "2026-02-10",
		RegularHours: "8",
	})

	assert.ErrorIs(t, err, timeentryerrors.ErrDuplicateEntry)
}

func TestTimeEntryService_Record_UnknownEmployee(t *testing.T) {
	ctx := context.Background()
	deps := setupTimeEntryServiceTest(t)
	defer deps.db.Close()

	deps.repo.employeeExistsFn = func(ctx context.Context, employeeID string) (bool, error) {
		return false, nil
	}

	_, err := deps.service.Record(ctx, timeentry.RecordTimeEntryRequest{
		EmployeeID:   uuid.New().String(),
		EntryDate:    "2026-02-10",
		RegularHours: "8",
	})

	assert.ErrorIs(t, err, timeentryerrors.ErrInvalidEmployeeID)
}

func TestTimeEntryService_Import_AllOrNothing(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()

	t.Run("commit on success", func(t *testing.T) {
		deps := setupTimeEntryServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.Import(ctx, timeentry.ImportTimeEntriesRequest{
			Entries: []timeentry.RecordTimeEntryRequest{
				{EmployeeID: employeeID, EntryDate: "2026-02-10", RegularHours: "8"},
				{EmployeeID: employeeID, EntryDate: "2026-02-11", RegularHours: "7.5"},
			},
		})

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		// Imports default to the IMPORTED source
		assert.Equal(t, timeentry.SourceImported, resp[0].Source)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("rollback when one row fails", func(t *testing.T) {
		deps := setupTimeEntryServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		calls := 0
		deps.repo.createFn = func(ctx context.Context, entry *timeentry.TimeEntry) error {
			calls++
			if calls == 2 {
				return &pgconn.PgError{Code: "23505", ConstraintName: "uq_time_entry_employee_date_source"}
			}
			return nil
		}

		_, err := deps.service.Import(ctx, timeentry.ImportTimeEntriesRequest{
			Entries: []timeentry.RecordTimeEntryRequest{
				{EmployeeID: employeeID, EntryDate: "2026-02-10", RegularHours: "8"},
				{EmployeeID: employeeID, EntryDate: "2026-02-10", RegularHours: "8"},
			},
		})

		assert.ErrorIs(t, err, timeentryerrors.ErrDuplicateEntry)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestTimeEntryService_SetStatus_Transitions(t *testing.T) {
	ctx := context.Background()
	approver := "hr.manager"

	cases := []struct {
		name    string
		from    string
		to      string
		wantErr error
	}{
		{"pending to approved", timeentry.StatusPending, timeentry.StatusApproved, nil},
		{"pending to rejected", timeentry.StatusPending, timeentry.StatusRejected, nil},
		{"approved to rejected", timeentry.StatusApproved, timeentry.StatusRejected, nil},
		{"rejected to approved", timeentry.StatusRejected, timeentry.StatusApproved, nil},
		{"same status", timeentry.StatusPending, timeentry.StatusPending, timeentryerrors.ErrInvalidStatusTransition},
		{"approved back to pending", timeentry.StatusApproved, timeentry.StatusPending, timeentryerrors.ErrInvalidStatusTransition},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			deps := setupTimeEntryServiceTest(t)
			defer deps.db.Close()

			entryID := uuid.New()
			deps.repo.findByIDFn = func(ctx context.Context, id string) (*timeentry.TimeEntry, error) {
				e := pendingEntry(entryID, uuid.New())
				e.Status = tc.from
				return e, nil
			}

			if tc.wantErr == nil {
				deps.sqlMock.ExpectBegin()
				deps.sqlMock.ExpectCommit()
			}

			resp, err := deps.service.SetStatus(ctx, entryID.String(), timeentry.SetStatusRequest{
				Status:     tc.to,
				ApprovedBy: &approver,
			})

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.to, resp.Status)
			if tc.to == timeentry.StatusApproved {
				assert.NotNil(t, resp.ApprovedBy)
				assert.NotNil(t, resp.ApprovedAt)
			} else {
				assert.Nil(t, resp.ApprovedBy)
			}
			assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		})
	}
}

func TestTimeEntryService_SetStatus_ApproverRequired(t *testing.T) {
	ctx := context.Background()
	deps := setupTimeEntryServiceTest(t)
	defer deps.db.Close()

	entryID := uuid.New()
	deps.repo.findByIDFn = func(ctx context.Context, id string) (*timeentry.TimeEntry, error) {
		return pendingEntry(entryID, uuid.New()), nil
	}

	_, err := deps.service.SetStatus(ctx, entryID.String(), timeentry.SetStatusRequest{
		Status: timeentry.StatusApproved,
	})

	assert.ErrorIs(t, err, timeentryerrors.ErrApprovedByRequired)
}

func TestTimeEntryService_ConsumedEntryIsLocked(t *testing.T) {
	ctx := context.Background()
	approver := "hr.manager"
	entryID := uuid.New()

	setup := func(t *testing.T) *timeEntryServiceDeps {
		deps := setupTimeEntryServiceTest(t)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*timeentry.TimeEntry, error) {
			e := pendingEntry(entryID, uuid.New())
			e.Status = timeentry.StatusApproved
			return e, nil
		}
		// Only the transaction-bound repository sees the covering
		// payroll. A consumed check running outside the transaction
		// would read 0 here and let the write through.
		deps.repo.countPayrollsCoveringFn = func(ctx context.Context, employeeID string, date time.Time) (int64, error) {
			return 0, nil
		}
		deps.repo.withTxFn = func(tx *sql.Tx) timeentry.Repository {
			return &fakeTimeEntryRepository{
				countPayrollsCoveringFn: func(ctx context.Context, employeeID string, date time.Time) (int64, error) {
					return 1, nil
				},
			}
		}
		return deps
	}

	t.Run("status change rejected", func(t *testing.T) {
		deps := setup(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.SetStatus(ctx, entryID.String(), timeentry.SetStatusRequest{
			Status:     timeentry.StatusRejected,
			ApprovedBy: &approver,
		})
		assert.ErrorIs(t, err, timeentryerrors.ErrEntryLocked)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("delete rejected", func(t *testing.T) {
		deps := setup(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		err := deps.service.Delete(ctx, entryID.String())
		assert.ErrorIs(t, err, timeentryerrors.ErrEntryLocked)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestTimeEntryService_Query_Validation(t *testing.T) {
	ctx := context.Background()
	deps := setupTimeEntryServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.Query(ctx, timeentry.QueryTimeEntriesRequest{
		EmployeeID: uuid.New().String(),
		From:       "2026-02-28",
		To:         "2026-02-01",
	})
	assert.ErrorIs(t, err, timeentryerrors.ErrInvalidDateRange)

	_, err = deps.service.Query(ctx, timeentry.QueryTimeEntriesRequest{
		EmployeeID: uuid.New().String(),
		From:       "2026-02-01",
		To:         "2026-02-28",
		Status:     "MAYBE",
	})
	assert.ErrorIs(t, err, timeentryerrors.ErrInvalidStatusFilter)
}
