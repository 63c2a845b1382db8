package kafka

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEvent() OutboxEvent {
	return OutboxEvent{
		ID:            "evt-1",
		AggregateType: "employee",
		AggregateID:   "E100",
		EventType:     "employee_registered",
		Topic:         "attendance.employee.lifecycle.v1",
		Payload:       []byte(`{"employee_id":"E100"}`),
		Status:        OutboxStatusPending,
	}
}

func TestValidateOutboxEvent(t *testing.T) {
	assert.NoError(t, ValidateOutboxEvent(validEvent()))

	e := validEvent()
	e.ID = ""
	assert.Error(t, ValidateOutboxEvent(e))

	e = validEvent()
	e.Topic = ""
	assert.Error(t, ValidateOutboxEvent(e))

	e = validEvent()
	e.Payload = nil
	assert.Error(t, ValidateOutboxEvent(e))

	e = validEvent()
	e.Status = "queued"
	assert.Error(t, ValidateOutboxEvent(e))
}

func TestOutboxCreateInserts(t *testing.T) {
	db, dbmock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOutboxRepository(db)
	event := validEvent()

	dbmock.ExpectExec("INSERT INTO outbox_events").
		WithArgs(
			event.ID, event.RequestID, event.AggregateType,
			event.AggregateID, event.EventType, event.Topic, event.Payload, event.Status,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), event))
	assert.NoError(t, dbmock.ExpectationsWereMet())
}

func TestOutboxCreateRejectsInvalidEvent(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOutboxRepository(db)
	event := validEvent()
	event.Payload = nil

	assert.Error(t, repo.Create(context.Background(), event))
}

func TestOutboxMarkSent(t *testing.T) {
	db, dbmock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOutboxRepository(db)

	dbmock.ExpectExec("UPDATE outbox_events").
		WithArgs("evt-1", OutboxStatusSent).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkSent(context.Background(), "evt-1"))
	assert.NoError(t, dbmock.ExpectationsWereMet())
}

func TestOutboxMarkFailedSchedulesRetry(t *testing.T) {
	db, dbmock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOutboxRepository(db)

	dbmock.ExpectExec("UPDATE outbox_events").
		WithArgs("evt-1", OutboxStatusFailed, "broker unreachable").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkFailed(context.Background(), "evt-1", "broker unreachable"))
	assert.NoError(t, dbmock.ExpectationsWereMet())
}
