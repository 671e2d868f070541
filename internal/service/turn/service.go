package turn

import (
	"time"

	"github.com/jwalitptl/booking-actions/internal/dialogue"
	"github.com/jwalitptl/booking-actions/pkg/logger"
	"github.com/jwalitptl/booking-actions/pkg/metrics"
)

// Service runs one dialogue turn: validating a candidate slot value or
// re-evaluating a form-chain gate. It holds no conversation state; every
// call receives the full slot state from the host.
type Service struct {
	logger  *logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewService(logger *logger.Logger, metrics *metrics.Metrics) *Service {
	return &Service{
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

// ValidateSlot validates one candidate value against the registered
// validator for the slot. Unknown slots are left untouched.
func (s *Service) ValidateSlot(form, slot, value, intent string, slots dialogue.SlotMap) dialogue.Result {
	s.metrics.TurnsTotal.WithLabelValues("validate").Inc()

	validator, ok := dialogue.ValidatorFor(slot)
	if !ok {
		s.logger.Warn("no validator registered for slot", "form", form, "slot", slot)
		return dialogue.Result{Updates: map[string]interface{}{}}
	}

	result := validator(value, dialogue.Turn{
		Intent: intent,
		Slots:  slots,
		Now:    s.now(),
	})

	for _, m := range result.Messages {
		s.metrics.SlotRejections.WithLabelValues(slot, m.ID).Inc()
	}
	if len(result.Messages) > 0 {
		s.logger.Debug("slot rejected", "form", form, "slot", slot, "message", result.Messages[0].ID)
	}

	return result
}

// AdvanceForm re-evaluates the hand-off gate for the completed form and
// sets its continuation flag. Forms without a gate yield an empty result.
func (s *Service) AdvanceForm(form string, slots dialogue.SlotMap) dialogue.Result {
	s.metrics.TurnsTotal.WithLabelValues("advance").Inc()

	gate, ok := dialogue.GateFor(form)
	if !ok {
		return dialogue.Result{Updates: map[string]interface{}{}}
	}

	result := gate.Evaluate(slots)
	if ready, _ := result.Updates[gate.Flag].(bool); ready {
		s.metrics.FormHandoffs.WithLabelValues(form).Inc()
		s.logger.Debug("form complete, activating next form", "form", form, "next", gate.Next)
	}
	return result
}
