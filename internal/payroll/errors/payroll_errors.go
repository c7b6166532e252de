package payrollerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidPayrollID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll id",
		http.StatusBadRequest,
	)
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid department id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"pay_period_start must be before or equal pay_period_end",
		http.StatusBadRequest,
	)
	ErrEmployeeNotEligible = apperror.New(
		apperror.CodeInvalidState,
		"employee is not eligible for payroll processing",
		http.StatusConflict,
	)
	ErrNoApprovedHours = apperror.New(
		apperror.CodeInvalidState,
		"no approved time entries exist in the pay period",
		http.StatusConflict,
	)
	ErrDeductionsExceedGross = apperror.New(
		apperror.CodeInvalidState,
		"computed deductions exceed gross pay",
		http.StatusConflict,
	)
	ErrAlreadyProcessed = apperror.New(
		apperror.CodeConflict,
		"payroll already processed for this employee and pay period",
		http.StatusConflict,
	)
	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll not found",
		http.StatusNotFound,
	)
)
