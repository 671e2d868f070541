package worker

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/booking-actions/internal/model"
	"github.com/jwalitptl/booking-actions/pkg/logger"
	"github.com/jwalitptl/booking-actions/pkg/metrics"
)

var testMetrics = metrics.NewMetrics("test", "outbox_worker")

type statusUpdate struct {
	id      uuid.UUID
	status  string
	retryAt *time.Time
}

type fakeOutboxRepo struct {
	pending []*model.OutboxEvent
	updates []statusUpdate

	deadLettered []*model.OutboxEvent
	deleted      int64

	db *sqlx.DB
}

func (f *fakeOutboxRepo) Create(_ context.Context, _ *model.OutboxEvent) error { return nil }

func (f *fakeOutboxRepo) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	return f.db.BeginTxx(ctx, nil)
}

func (f *fakeOutboxRepo) GetPendingEventsWithLock(_ context.Context, _ *sqlx.Tx, limit int) ([]*model.OutboxEvent, error) {
	if len(f.pending) > limit {
		return f.pending[:limit], nil
	}
	return f.pending, nil
}

func (f *fakeOutboxRepo) UpdateStatusTx(_ context.Context, _ *sqlx.Tx, id uuid.UUID, status string, _ *string, retryAt *time.Time) error {
	f.updates = append(f.updates, statusUpdate{id: id, status: status, retryAt: retryAt})
	return nil
}

func (f *fakeOutboxRepo) MoveToDeadLetter(_ context.Context, _ *sqlx.Tx, evt *model.OutboxEvent) error {
	f.deadLettered = append(f.deadLettered, evt)
	return nil
}

func (f *fakeOutboxRepo) DeleteProcessedBefore(_ context.Context, _ time.Time) (int64, error) {
	return f.deleted, nil
}

type fakeBroker struct {
	published []string
	err       error
}

func (f *fakeBroker) Publish(_ context.Context, channel string, _ interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, channel)
	return nil
}

func (f *fakeBroker) Subscribe(_ context.Context, _ string) (<-chan []byte, error) {
	return nil, nil
}

func (f *fakeBroker) Close() error { return nil }

type fakeMailer struct {
	created  int
	canceled int
	err      error
}

func (f *fakeMailer) SendBookingCreated(_ context.Context, _, _, _, _, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.created++
	return nil
}

func (f *fakeMailer) SendBookingCanceled(_ context.Context, _, _, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.canceled++
	return nil
}

func testConfig() OutboxProcessorConfig {
	return OutboxProcessorConfig{
		BatchSize:    10,
		PollInterval: time.Second,
		MaxRetries:   3,
		RetryDelay:   time.Minute,
	}
}

func newProcessor(t *testing.T, repo *fakeOutboxRepo, broker *fakeBroker, mailer *fakeMailer) (*OutboxProcessor, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	repo.db = sqlx.NewDb(db, "sqlmock")

	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	return NewOutboxProcessor(repo, broker, mailer, testConfig(), log, testMetrics), mock
}

func createdEvent(retryCount int) *model.OutboxEvent {
	return &model.OutboxEvent{
		ID:         uuid.New(),
		EventType:  model.EventBookingCreated,
		Payload:    []byte(`{"patient_name":"Maria Ionescu","doctor_name":"Popescu","specialty":"cardiologie","date":"2026-07-01","time":"10:00:00"}`),
		Status:     string(model.OutboxStatusPending),
		RetryCount: retryCount,
	}
}

func TestProcessEventsDeliversAndMarksProcessed(t *testing.T) {
	repo := &fakeOutboxRepo{pending: []*model.OutboxEvent{createdEvent(0)}}
	broker := &fakeBroker{}
	mailer := &fakeMailer{}
	p, mock := newProcessor(t, repo, broker, mailer)
	mock.ExpectBegin()
	mock.ExpectCommit()

	err := p.processEvents(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{model.EventBookingCreated}, broker.published)
	assert.Equal(t, 1, mailer.created)
	require.Len(t, repo.updates, 1)
	assert.Equal(t, string(model.OutboxStatusProcessed), repo.updates[0].status)
	assert.Nil(t, repo.updates[0].retryAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessEventsCanceledEventMailsCancellation(t *testing.T) {
	event := createdEvent(0)
	event.EventType = model.EventBookingCanceled
	repo := &fakeOutboxRepo{pending: []*model.OutboxEvent{event}}
	broker := &fakeBroker{}
	mailer := &fakeMailer{}
	p, mock := newProcessor(t, repo, broker, mailer)
	mock.ExpectBegin()
	mock.ExpectCommit()

	require.NoError(t, p.processEvents(context.Background()))
	assert.Equal(t, 1, mailer.canceled)
	assert.Zero(t, mailer.created)
}

func TestProcessEventsCommitsAfterFailedEvent(t *testing.T) {
	// A delivery failure schedules a retry inside the batch transaction;
	// the batch still commits so the retry state is durable.
	repo := &fakeOutboxRepo{pending: []*model.OutboxEvent{createdEvent(0)}}
	broker := &fakeBroker{err: errors.New("broker down")}
	p, mock := newProcessor(t, repo, broker, &fakeMailer{})
	mock.ExpectBegin()
	mock.ExpectCommit()

	err := p.processEvents(context.Background())

	require.NoError(t, err)
	require.Len(t, repo.updates, 1)
	assert.Equal(t, string(model.OutboxStatusPending), repo.updates[0].status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessEventSchedulesRetryOnFailure(t *testing.T) {
	repo := &fakeOutboxRepo{}
	broker := &fakeBroker{err: errors.New("broker down")}
	p, _ := newProcessor(t, repo, broker, &fakeMailer{})

	err := p.processEvent(context.Background(), nil, createdEvent(0))

	require.Error(t, err)
	require.Len(t, repo.updates, 1)
	assert.Equal(t, string(model.OutboxStatusPending), repo.updates[0].status)
	require.NotNil(t, repo.updates[0].retryAt)
	assert.WithinDuration(t, time.Now().Add(time.Minute), *repo.updates[0].retryAt, 5*time.Second)
	assert.Empty(t, repo.deadLettered)
}

func TestProcessEventDeadLettersAfterMaxRetries(t *testing.T) {
	repo := &fakeOutboxRepo{}
	broker := &fakeBroker{err: errors.New("broker down")}
	p, _ := newProcessor(t, repo, broker, &fakeMailer{})

	// Third attempt of a twice-retried event exhausts the retry budget.
	err := p.processEvent(context.Background(), nil, createdEvent(2))

	require.NoError(t, err)
	require.Len(t, repo.deadLettered, 1)
	require.Len(t, repo.updates, 1)
	assert.Equal(t, string(model.OutboxStatusFailed), repo.updates[0].status)
}

func TestDeliverRejectsUnknownEventType(t *testing.T) {
	p, _ := newProcessor(t, &fakeOutboxRepo{}, &fakeBroker{}, &fakeMailer{})

	event := createdEvent(0)
	event.EventType = "booking.rescheduled"

	assert.Error(t, p.deliver(context.Background(), event))
}
