package employeeerrors

import (
	"net/http"

	"shifttrack/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeExists = apperror.New(
		apperror.CodeConflict,
		"Employee ID already exists",
		http.StatusConflict,
	)
	ErrReservedID = apperror.New(
		apperror.CodeConflict,
		"Employee ID is reserved",
		http.StatusConflict,
	)
	ErrInvalidDepartment = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown department",
		http.StatusBadRequest,
	)
	ErrSectionRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Section is required for the Engineering department",
		http.StatusBadRequest,
	)
	ErrSectionNotAllowed = apperror.New(
		apperror.CodeInvalidInput,
		"Section is only valid for the Engineering department",
		http.StatusBadRequest,
	)
	ErrInvalidSection = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown section",
		http.StatusBadRequest,
	)
	ErrAlreadyApproved = apperror.New(
		apperror.CodeInvalidState,
		"Registration is already approved",
		http.StatusConflict,
	)
	ErrManagerImmutable = apperror.New(
		apperror.CodeForbidden,
		"Seeded manager records cannot be modified",
		http.StatusForbidden,
	)
)
