package turn

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/booking-actions/internal/dialogue"
	"github.com/jwalitptl/booking-actions/internal/model"
	"github.com/jwalitptl/booking-actions/pkg/logger"
	"github.com/jwalitptl/booking-actions/pkg/metrics"
)

var testMetrics = metrics.NewMetrics("test", "turn_service")

func newTestService() *Service {
	svc := NewService(logger.NewLogger(&logger.Config{
		Level:  logger.ErrorLevel,
		Output: io.Discard,
	}), testMetrics)
	svc.now = func() time.Time {
		return time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestValidateSlotAccepts(t *testing.T) {
	svc := newTestService()

	res := svc.ValidateSlot(model.FormAppointment, model.SlotDepartment, "Cardiologie", "", dialogue.SlotMap{})

	assert.Equal(t, "cardiologie", res.Updates[model.SlotDepartment])
	assert.Empty(t, res.Messages)
}

func TestValidateSlotRejects(t *testing.T) {
	svc := newTestService()

	res := svc.ValidateSlot(model.FormAppointment, model.SlotTime, "6:00 AM", "", dialogue.SlotMap{})

	assert.Nil(t, res.Updates[model.SlotTime])
	require.Len(t, res.Messages, 1)
	assert.Equal(t, dialogue.MsgOutsideOfficeHours, res.Messages[0].ID)
}

func TestValidateSlotUsesInjectedClock(t *testing.T) {
	svc := newTestService()

	// 15.03 has passed relative to the injected June reference, so it rolls
	// into next year.
	res := svc.ValidateSlot(model.FormAppointment, model.SlotDate, "15.03", "", dialogue.SlotMap{})

	assert.Equal(t, "2027-03-15", res.Updates[model.SlotDate])
}

func TestValidateSlotPassesIntent(t *testing.T) {
	svc := newTestService()

	res := svc.ValidateSlot(model.FormPreliminary, model.SlotSmoker, "yes", model.IntentAffirm, dialogue.SlotMap{})

	assert.Equal(t, true, res.Updates[model.SlotSmoker])
}

func TestValidateSlotUnknown(t *testing.T) {
	svc := newTestService()

	res := svc.ValidateSlot(model.FormAppointment, "favorite_color", "blue", "", dialogue.SlotMap{})

	assert.Empty(t, res.Updates)
	assert.Empty(t, res.Messages)
}

func TestAdvanceFormCompleted(t *testing.T) {
	svc := newTestService()

	res := svc.AdvanceForm(model.FormName, dialogue.SlotMap{
		model.SlotFirstName: "Maria",
		model.SlotLastName:  "Ionescu",
	})

	assert.Equal(t, true, res.Updates[model.SlotAskForThirdForm])
	require.Len(t, res.Messages, 1)
	assert.Equal(t, dialogue.MsgStartPreliminaryForm, res.Messages[0].ID)
}

func TestAdvanceFormIncomplete(t *testing.T) {
	svc := newTestService()

	res := svc.AdvanceForm(model.FormName, dialogue.SlotMap{
		model.SlotFirstName: "Maria",
	})

	assert.Equal(t, false, res.Updates[model.SlotAskForThirdForm])
	assert.Empty(t, res.Messages)
}

func TestAdvanceFormWithoutGate(t *testing.T) {
	svc := newTestService()

	res := svc.AdvanceForm(model.FormCancellation, dialogue.SlotMap{})

	assert.Empty(t, res.Updates)
	assert.Empty(t, res.Messages)
}
