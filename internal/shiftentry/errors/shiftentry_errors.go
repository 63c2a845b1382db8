package shiftentryerrors

import (
	"net/http"

	"shifttrack/internal/shared/apperror"
)

var (
	ErrEntryNotFound = apperror.New(
		apperror.CodeNotFound,
		"Shift entry not found",
		http.StatusNotFound,
	)
	ErrDuplicateEntryForDate = apperror.New(
		apperror.CodeConflict,
		"A shift entry already exists for this date",
		http.StatusConflict,
	)
	ErrPastDate = apperror.New(
		apperror.CodeInvalidInput,
		"Date cannot be in the past",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidShiftType = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown shift type",
		http.StatusBadRequest,
	)
	ErrRemarkRequired = apperror.New(
		apperror.CodeInvalidInput,
		"A remark is required when shift type is Other",
		http.StatusBadRequest,
	)
	ErrRegistrationPending = apperror.New(
		apperror.CodeForbidden,
		"Your registration is pending approval from the administrator",
		http.StatusForbidden,
	)
	ErrAlreadyApproved = apperror.New(
		apperror.CodeInvalidState,
		"Shift entry is already approved",
		http.StatusConflict,
	)
)
