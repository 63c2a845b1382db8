package auth_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"shifttrack/internal/auth"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marshalSession(t *testing.T, sess auth.Session) []byte {
	t.Helper()
	raw, err := json.Marshal(sess)
	require.NoError(t, err)
	return raw
}

func TestSessionCreateRevokesPreviousSession(t *testing.T) {
	rdb, rmock := redismock.NewClientMock()
	store := auth.NewSessionStore(rdb, time.Hour)

	sess := auth.Session{ID: "sid-new", Subject: "E100", View: "employee"}

	rmock.ExpectGet("session_subject:E100").SetVal("sid-old")
	rmock.ExpectDel("session:sid-old").SetVal(1)
	rmock.ExpectTxPipeline()
	rmock.ExpectSet("session:sid-new", marshalSession(t, sess), time.Hour).SetVal("OK")
	rmock.ExpectSet("session_subject:E100", "sid-new", time.Hour).SetVal("OK")
	rmock.ExpectTxPipelineExec()

	err := store.Create(context.Background(), sess)

	require.NoError(t, err)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestSessionCreateFirstLogin(t *testing.T) {
	rdb, rmock := redismock.NewClientMock()
	store := auth.NewSessionStore(rdb, time.Hour)

	sess := auth.Session{ID: "sid-1", Subject: "E100", View: "employee"}

	rmock.ExpectGet("session_subject:E100").RedisNil()
	rmock.ExpectTxPipeline()
	rmock.ExpectSet("session:sid-1", marshalSession(t, sess), time.Hour).SetVal("OK")
	rmock.ExpectSet("session_subject:E100", "sid-1", time.Hour).SetVal("OK")
	rmock.ExpectTxPipelineExec()

	err := store.Create(context.Background(), sess)

	require.NoError(t, err)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestIsActiveMatchesView(t *testing.T) {
	rdb, rmock := redismock.NewClientMock()
	store := auth.NewSessionStore(rdb, time.Hour)

	sess := auth.Session{ID: "sid-1", Subject: "E100", View: "employee"}
	raw := marshalSession(t, sess)

	rmock.ExpectGet("session:sid-1").SetVal(string(raw))
	assert.True(t, store.IsActive(context.Background(), "sid-1", "employee"))

	rmock.ExpectGet("session:sid-1").SetVal(string(raw))
	assert.False(t, store.IsActive(context.Background(), "sid-1", "manager"))

	rmock.ExpectGet("session:sid-2").RedisNil()
	assert.False(t, store.IsActive(context.Background(), "sid-2", "employee"))
}

func TestPurgeSubjectDropsBothKeys(t *testing.T) {
	rdb, rmock := redismock.NewClientMock()
	store := auth.NewSessionStore(rdb, time.Hour)

	rmock.ExpectGet("session_subject:E100").SetVal("sid-1")
	rmock.ExpectTxPipeline()
	rmock.ExpectDel("session:sid-1").SetVal(1)
	rmock.ExpectDel("session_subject:E100").SetVal(1)
	rmock.ExpectTxPipelineExec()

	err := store.PurgeSubject(context.Background(), "E100")

	require.NoError(t, err)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestPurgeSubjectWithoutSessionIsNoop(t *testing.T) {
	rdb, rmock := redismock.NewClientMock()
	store := auth.NewSessionStore(rdb, time.Hour)

	rmock.ExpectGet("session_subject:E404").RedisNil()

	err := store.PurgeSubject(context.Background(), "E404")

	require.NoError(t, err)
}
