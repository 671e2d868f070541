package booking

import (
	"context"
	"fmt"

	"github.com/jwalitptl/booking-actions/internal/dialogue"
	"github.com/jwalitptl/booking-actions/internal/model"
	"github.com/jwalitptl/booking-actions/internal/repository"
	"github.com/jwalitptl/booking-actions/pkg/logger"
	"github.com/jwalitptl/booking-actions/pkg/metrics"
)

// Service is the persistence mapper: it turns a fully validated slot set
// into relational rows, and reverses a committed booking on cancellation.
type Service struct {
	repo    repository.BookingRepository
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewService(repo repository.BookingRepository, logger *logger.Logger, metrics *metrics.Metrics) *Service {
	return &Service{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
	}
}

// Book persists the booking described by the slot set. Missing or mistyped
// slots and any persistence failure surface the same generic failure
// message; nothing is written unless every step commits.
func (s *Service) Book(ctx context.Context, slots dialogue.SlotMap) []dialogue.Message {
	s.metrics.TurnsTotal.WithLabelValues("book").Inc()

	booking, err := bookingFromSlots(slots)
	if err != nil {
		s.logger.Warn("booking submitted with incomplete slots", "reason", err.Error())
		s.metrics.BookingFailures.WithLabelValues("book").Inc()
		return []dialogue.Message{{ID: dialogue.MsgBookingFailed}}
	}

	appointment, err := s.repo.CreateBooking(ctx, booking)
	if err != nil {
		s.logger.Error(err, "failed to persist booking")
		s.metrics.BookingFailures.WithLabelValues("book").Inc()
		return []dialogue.Message{{ID: dialogue.MsgBookingFailed}}
	}

	s.metrics.BookingsCreated.Inc()
	s.logger.Info("booking persisted",
		"appointment_id", appointment.ID.String(),
		"doctor", booking.DoctorName,
		"specialty", booking.Specialty,
		"date", booking.Date)

	return []dialogue.Message{{ID: dialogue.MsgBookingConfirmed}}
}

// Cancel marks the active appointment matching the cancellation form
// canceled. A cancellation that matches nothing reports not-found rather
// than failing.
func (s *Service) Cancel(ctx context.Context, slots dialogue.SlotMap) []dialogue.Message {
	s.metrics.TurnsTotal.WithLabelValues("cancel").Inc()

	cancellation, err := cancellationFromSlots(slots)
	if err != nil {
		s.logger.Warn("cancellation submitted with incomplete slots", "reason", err.Error())
		s.metrics.BookingFailures.WithLabelValues("cancel").Inc()
		return []dialogue.Message{{ID: dialogue.MsgBookingFailed}}
	}

	affected, err := s.repo.CancelBooking(ctx, cancellation)
	if err != nil {
		s.logger.Error(err, "failed to cancel booking")
		s.metrics.BookingFailures.WithLabelValues("cancel").Inc()
		return []dialogue.Message{{ID: dialogue.MsgBookingFailed}}
	}

	if affected == 0 {
		return []dialogue.Message{{ID: dialogue.MsgCancelNotFound}}
	}

	s.metrics.BookingsCanceled.Inc()
	s.logger.Info("booking canceled",
		"specialty", cancellation.Specialty,
		"date", cancellation.Date,
		"affected", affected)

	return []dialogue.Message{{ID: dialogue.MsgCancelConfirmed}}
}

func bookingFromSlots(slots dialogue.SlotMap) (*model.Booking, error) {
	for _, name := range model.BookingSlots {
		if _, ok := slots.Get(name); !ok {
			return nil, fmt.Errorf("slot %s is missing", name)
		}
	}

	age, err := intSlot(slots, model.SlotAge)
	if err != nil {
		return nil, err
	}

	flags := map[string]bool{}
	for _, name := range []string{model.SlotWeightRisk, model.SlotHypertension, model.SlotSmoker, model.SlotRecentSurgeries} {
		v, err := boolSlot(slots, name)
		if err != nil {
			return nil, err
		}
		flags[name] = v
	}

	return &model.Booking{
		FirstName:       dialogue.GetString(slots, model.SlotFirstName),
		LastName:        dialogue.GetString(slots, model.SlotLastName),
		Gender:          dialogue.GetString(slots, model.SlotGender),
		Age:             age,
		WeightRisk:      flags[model.SlotWeightRisk],
		Hypertension:    flags[model.SlotHypertension],
		Smoker:          flags[model.SlotSmoker],
		RecentSurgeries: flags[model.SlotRecentSurgeries],
		Date:            dialogue.GetString(slots, model.SlotDate),
		Time:            dialogue.GetString(slots, model.SlotTime),
		DoctorName:      dialogue.GetString(slots, model.SlotDoctor),
		Specialty:       dialogue.GetString(slots, model.SlotDepartment),
	}, nil
}

func cancellationFromSlots(slots dialogue.SlotMap) (*model.Cancellation, error) {
	for _, name := range model.FormSlots[model.FormCancellation] {
		if _, ok := slots.Get(name); !ok {
			return nil, fmt.Errorf("slot %s is missing", name)
		}
	}

	return &model.Cancellation{
		FirstName: dialogue.GetString(slots, model.SlotCancelFirstName),
		LastName:  dialogue.GetString(slots, model.SlotCancelLastName),
		Date:      dialogue.GetString(slots, model.SlotCancelDate),
		Specialty: dialogue.GetString(slots, model.SlotCancelDepartment),
	}, nil
}

// intSlot tolerates the number arriving as JSON float or as an already
// accepted int.
func intSlot(slots dialogue.SlotMap, name string) (int, error) {
	v, _ := slots.Get(name)
	switch n := v.(type) {
	case int:
		return n, nil
	case float64:
		return int(n), nil
	}
	return 0, fmt.Errorf("slot %s is not a number", name)
}

// boolSlot rejects the unvalidated passthrough a risk-flag validator may
// produce when the intent matched neither affirm nor deny.
func boolSlot(slots dialogue.SlotMap, name string) (bool, error) {
	v, _ := slots.Get(name)
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("slot %s is not boolean", name)
	}
	return b, nil
}
