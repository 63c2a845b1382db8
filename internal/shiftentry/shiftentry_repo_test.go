package shiftentry_test

import (
	"context"
	"testing"
	"time"

	"shifttrack/internal/shiftentry"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func approvalTxRepo(t *testing.T) (shiftentry.Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, dbmock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	dbmock.ExpectBegin()
	tx, err := db.Begin()
	require.NoError(t, err)

	return shiftentry.NewRepository(nil).WithTx(tx), dbmock
}

func TestMarkApprovedStampsUnapprovedRow(t *testing.T) {
	repo, dbmock := approvalTxRepo(t)

	at := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	dbmock.ExpectExec("UPDATE shift_entries").
		WithArgs("entry-1", "QC_MGR", at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkApproved(context.Background(), "entry-1", "QC_MGR", at)

	require.NoError(t, err)
	assert.NoError(t, dbmock.ExpectationsWereMet())
}

func TestMarkApprovedSkipsAlreadyApprovedRow(t *testing.T) {
	repo, dbmock := approvalTxRepo(t)

	at := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	dbmock.ExpectExec("UPDATE shift_entries").
		WithArgs("entry-1", "QC_MGR", at).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkApproved(context.Background(), "entry-1", "QC_MGR", at)

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, dbmock.ExpectationsWereMet())
}
