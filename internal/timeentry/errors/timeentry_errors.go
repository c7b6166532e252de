package timeentryerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrEntryNotFound = apperror.New(
		apperror.CodeNotFound,
		"time entry not found",
		http.StatusNotFound,
	)
	ErrInvalidEntryID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid time entry id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"from date must be before or equal to date",
		http.StatusBadRequest,
	)
	ErrInvalidHours = apperror.New(
		apperror.CodeInvalidInput,
		"regular and overtime hours must be zero or positive",
		http.StatusBadRequest,
	)
	ErrInvalidSource = apperror.New(
		apperror.CodeInvalidInput,
		"source must be MANUAL or IMPORTED",
		http.StatusBadRequest,
	)
	ErrInvalidStatusFilter = apperror.New(
		apperror.CodeInvalidInput,
		"status filter must be PENDING, APPROVED or REJECTED",
		http.StatusBadRequest,
	)
	ErrDuplicateEntry = apperror.New(
		apperror.CodeConflict,
		"a time entry already exists for this employee, date and source",
		http.StatusConflict,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid time entry status transition",
		http.StatusBadRequest,
	)
	ErrApprovedByRequired = apperror.New(
		apperror.CodeInvalidInput,
		"approved_by is required when approving an entry",
		http.StatusBadRequest,
	)
	ErrEntryLocked = apperror.New(
		apperror.CodeInvalidState,
		"time entry is consumed by a processed payroll and can no longer change",
		http.StatusConflict,
	)
)
