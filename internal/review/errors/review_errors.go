package reviewerrors

import (
	"net/http"

	"shifttrack/internal/shared/apperror"
)

var (
	ErrScopeMissing = apperror.New(
		apperror.CodeForbidden,
		"No section is bound to this session",
		http.StatusForbidden,
	)
	ErrInvalidFilter = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid filter value",
		http.StatusBadRequest,
	)
)
