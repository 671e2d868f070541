package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jwalitptl/booking-actions/internal/email"
	"github.com/jwalitptl/booking-actions/internal/model"
	"github.com/jwalitptl/booking-actions/internal/repository"
	"github.com/jwalitptl/booking-actions/pkg/logger"
	"github.com/jwalitptl/booking-actions/pkg/messaging"
	"github.com/jwalitptl/booking-actions/pkg/metrics"
)

type OutboxProcessorConfig struct {
	BatchSize    int
	PollInterval time.Duration
	MaxRetries   int
	RetryDelay   time.Duration
	// CleanupAfter bounds how long processed events are kept.
	CleanupAfter    time.Duration
	CleanupInterval time.Duration
}

// OutboxProcessor drains the transactional outbox: each booking event is
// published to the broker and mirrored to the clinic inbox, then marked
// processed. Events that keep failing move to the dead-letter table.
type OutboxProcessor struct {
	repo    repository.OutboxRepository
	broker  messaging.Broker
	mailer  email.Service
	config  OutboxProcessorConfig
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewOutboxProcessor(
	repo repository.OutboxRepository,
	broker messaging.Broker,
	mailer email.Service,
	config OutboxProcessorConfig,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *OutboxProcessor {
	if config.BatchSize <= 0 {
		panic("BatchSize must be greater than 0")
	}
	if config.PollInterval <= 0 {
		panic("PollInterval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		panic("MaxRetries must be greater than 0")
	}

	return &OutboxProcessor{
		repo:    repo,
		broker:  broker,
		mailer:  mailer,
		config:  config,
		logger:  logger,
		metrics: metrics,
	}
}

func (p *OutboxProcessor) Start(ctx context.Context) {
	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	var cleanup <-chan time.Time
	if p.config.CleanupInterval > 0 {
		t := time.NewTicker(p.config.CleanupInterval)
		defer t.Stop()
		cleanup = t.C
	}

	p.logger.Info("Starting outbox processor")

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Shutting down outbox processor")
			return
		case <-ticker.C:
			if err := p.processEvents(ctx); err != nil {
				p.logger.Error(err, "Failed to process events")
			}
		case <-cleanup:
			p.cleanupProcessed(ctx)
		}
	}
}

// processEvents claims and delivers one batch inside a single transaction.
// The FOR UPDATE SKIP LOCKED locks hold until commit, so a second worker
// cannot pick up the same events mid-delivery.
func (p *OutboxProcessor) processEvents(ctx context.Context) error {
	timer := prometheus.NewTimer(p.metrics.OutboxProcessingLatency)
	defer timer.ObserveDuration()

	tx, err := p.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin batch transaction: %w", err)
	}
	defer tx.Rollback()

	events, err := p.repo.GetPendingEventsWithLock(ctx, tx, p.config.BatchSize)
	if err != nil {
		p.metrics.DatabaseOperations.WithLabelValues("get_pending_events", "error").Inc()
		return fmt.Errorf("failed to get pending events: %w", err)
	}
	p.metrics.DatabaseOperations.WithLabelValues("get_pending_events", "success").Inc()

	for _, event := range events {
		if err := p.processEvent(ctx, tx, event); err != nil {
			p.logger.Error(err, "Failed to process event",
				"event_id", event.ID.String(),
				"event_type", event.EventType)
		}
	}

	return tx.Commit()
}

func (p *OutboxProcessor) processEvent(ctx context.Context, tx *sqlx.Tx, event *model.OutboxEvent) error {
	err := p.deliver(ctx, event)
	if err == nil {
		p.metrics.OutboxEventsProcessed.Inc()
		return p.repo.UpdateStatusTx(ctx, tx, event.ID, string(model.OutboxStatusProcessed), nil, nil)
	}

	if event.RetryCount+1 >= p.config.MaxRetries {
		return p.deadLetter(ctx, tx, event, err)
	}

	p.metrics.OutboxRetries.WithLabelValues(event.EventType).Inc()
	errStr := err.Error()
	retryAt := time.Now().Add(p.config.RetryDelay)
	if updateErr := p.repo.UpdateStatusTx(ctx, tx, event.ID, string(model.OutboxStatusPending), &errStr, &retryAt); updateErr != nil {
		return updateErr
	}
	return err
}

// deliver publishes the event to the broker and sends the clinic
// notification. Both must succeed for the event to count as processed.
func (p *OutboxProcessor) deliver(ctx context.Context, event *model.OutboxEvent) error {
	if err := p.broker.Publish(ctx, event.EventType, event.Payload); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	var payload model.BookingEventPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal event payload: %w", err)
	}

	switch event.EventType {
	case model.EventBookingCreated:
		return p.mailer.SendBookingCreated(ctx, payload.PatientName, payload.DoctorName, payload.Specialty, payload.Date, payload.Time)
	case model.EventBookingCanceled:
		return p.mailer.SendBookingCanceled(ctx, payload.PatientName, payload.Specialty, payload.Date)
	}
	return fmt.Errorf("unknown event type %q", event.EventType)
}

// deadLetter moves an exhausted event to the dead-letter table within the
// caller's batch transaction.
func (p *OutboxProcessor) deadLetter(ctx context.Context, tx *sqlx.Tx, event *model.OutboxEvent, cause error) error {
	p.metrics.OutboxEventsFailed.Inc()

	errStr := cause.Error()
	event.ErrorMessage = &errStr

	if err := p.repo.MoveToDeadLetter(ctx, tx, event); err != nil {
		return fmt.Errorf("failed to move event to dead letter: %w", err)
	}
	if err := p.repo.UpdateStatusTx(ctx, tx, event.ID, string(model.OutboxStatusFailed), &errStr, nil); err != nil {
		return fmt.Errorf("failed to mark event failed: %w", err)
	}
	return nil
}

func (p *OutboxProcessor) cleanupProcessed(ctx context.Context) {
	deleted, err := p.repo.DeleteProcessedBefore(ctx, time.Now().Add(-p.config.CleanupAfter))
	if err != nil {
		p.logger.Error(err, "Failed to clean up processed events")
		return
	}
	if deleted > 0 {
		p.logger.Info("Cleaned up processed events", "deleted", deleted)
	}
}
