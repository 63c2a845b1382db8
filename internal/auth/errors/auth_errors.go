package autherrors

import (
	"net/http"

	"shifttrack/internal/shared/apperror"
)

var (
	// ErrInvalidCredentials covers every login failure shape: unknown id,
	// wrong password, wrong role for the view. One message, no hints.
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid credentials",
		http.StatusUnauthorized,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)
	ErrPasswordTooShort = apperror.New(
		apperror.CodeInvalidInput,
		"Password must be at least 6 characters",
		http.StatusBadRequest,
	)
	ErrViewNotAllowed = apperror.New(
		apperror.CodeForbidden,
		"This account cannot use the requested view",
		http.StatusForbidden,
	)
)
