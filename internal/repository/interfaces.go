package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/booking-actions/internal/model"
)

// All repository interfaces in one file
type (
	// BookingRepository maps validated slot sets to relational rows and back.
	BookingRepository interface {
		// CreateBooking writes patient, screening info, deduplicated
		// doctor/specialty references, the appointment and its outbox event
		// in one transaction.
		CreateBooking(ctx context.Context, booking *model.Booking) (*model.Appointment, error)
		// CancelBooking marks the matching active appointment canceled and
		// reports how many rows were affected.
		CancelBooking(ctx context.Context, cancellation *model.Cancellation) (int64, error)
	}

	// AppointmentRepository serves the admin read API.
	AppointmentRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.AppointmentDetail, error)
		List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.AppointmentDetail, error)
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		BeginTx(ctx context.Context) (*sqlx.Tx, error)
		// GetPendingEventsWithLock must run inside tx; the row locks it
		// takes keep the batch exclusive to one worker until commit.
		GetPendingEventsWithLock(ctx context.Context, tx *sqlx.Tx, limit int) ([]*model.OutboxEvent, error)
		UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, status string, errorMessage *string, retryAt *time.Time) error
		MoveToDeadLetter(ctx context.Context, tx *sqlx.Tx, evt *model.OutboxEvent) error
		DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
	}
)
