package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/booking-actions/internal/model"
)

func TestOutboxCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOutboxRepository(db)

	mock.ExpectExec("INSERT INTO outbox_events").
		WillReturnResult(sqlmock.NewResult(0, 1))

	event := &model.OutboxEvent{
		EventType: model.EventBookingCreated,
		Payload:   []byte(`{"patient_name":"Maria Ionescu"}`),
	}
	err := repo.Create(context.Background(), event)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, string(model.OutboxStatusPending), event.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxCreateRejectsNil(t *testing.T) {
	db, _ := newMockDB(t)
	repo := NewOutboxRepository(db)

	assert.Error(t, repo.Create(context.Background(), nil))
	assert.Error(t, repo.Create(context.Background(), &model.OutboxEvent{EventType: model.EventBookingCreated}))
}

func TestOutboxGetPendingEventsWithLock(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOutboxRepository(db)

	columns := []string{"id", "event_type", "payload", "status", "error_message",
		"retry_count", "retry_at", "processed_at", "created_at", "updated_at"}
	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE SKIP LOCKED").
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(uuid.New(), model.EventBookingCreated, []byte(`{}`), "pending",
				nil, 0, nil, nil, time.Now(), time.Now()))
	mock.ExpectCommit()

	tx, err := repo.BeginTx(context.Background())
	require.NoError(t, err)

	events, err := repo.GetPendingEventsWithLock(context.Background(), tx, 10)

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, model.EventBookingCreated, events[0].EventType)
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxUpdateStatusTx(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOutboxRepository(db)

	id := uuid.New()
	mock.ExpectExec("UPDATE outbox_events").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatusTx(context.Background(), nil, id, string(model.OutboxStatusProcessed), nil, nil)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxDeleteProcessedBefore(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOutboxRepository(db)

	mock.ExpectExec("DELETE FROM outbox_events").
		WillReturnResult(sqlmock.NewResult(0, 3))

	deleted, err := repo.DeleteProcessedBefore(context.Background(), time.Now().Add(-24*time.Hour))

	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
