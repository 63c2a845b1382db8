package shiftentry

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"shifttrack/internal/shared/apperror"
	shiftentryerrors "shifttrack/internal/shiftentry/errors"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shiftentryerrors.ErrEntryNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return shiftentryerrors.ErrDuplicateEntryForDate
	}
	return apperror.Wrap(err, apperror.CodeInternalError, "unexpected database error", http.StatusInternalServerError)
}
