package model

// Slot names collected over the course of a booking conversation. A slot is
// either absent from the conversation's slot map or holds a value that
// already passed its validator.
const (
	SlotDate       = "date"
	SlotTime       = "time"
	SlotDoctor     = "doctor"
	SlotDepartment = "department"

	SlotFirstName = "first_name"
	SlotLastName  = "last_name"

	SlotGender          = "gender"
	SlotAge             = "age"
	SlotWeightRisk      = "weight_risk"
	SlotHypertension    = "hypertension"
	SlotSmoker          = "smoker"
	SlotRecentSurgeries = "recent_surgeries"

	SlotCancelFirstName  = "cancel_first_name"
	SlotCancelLastName   = "cancel_last_name"
	SlotCancelDate       = "cancel_date"
	SlotCancelDepartment = "cancel_department"

	// Continuation flags gating activation of the next form in the chain.
	SlotAskForSecondForm = "ask_for_second_form"
	SlotAskForThirdForm  = "ask_for_third_form"
)

// Form identifiers as the dialogue host names them.
const (
	FormAppointment  = "appointment_form"
	FormName         = "name_form"
	FormPreliminary  = "preliminary_questions_form"
	FormCancellation = "cancellation_form"
)

// FormSlots lists the required slots of each form, in prompt order.
var FormSlots = map[string][]string{
	FormAppointment:  {SlotDate, SlotTime, SlotDoctor, SlotDepartment},
	FormName:         {SlotFirstName, SlotLastName},
	FormPreliminary:  {SlotGender, SlotAge, SlotWeightRisk, SlotHypertension, SlotSmoker, SlotRecentSurgeries},
	FormCancellation: {SlotCancelFirstName, SlotCancelLastName, SlotCancelDate, SlotCancelDepartment},
}

// BookingSlots is every slot that must be present before a booking is
// persisted, across the three chained forms.
var BookingSlots = bookingSlots()

func bookingSlots() []string {
	var all []string
	for _, form := range []string{FormAppointment, FormName, FormPreliminary} {
		all = append(all, FormSlots[form]...)
	}
	return all
}

// Intent labels consumed from the NLU layer.
const (
	IntentAffirm = "affirm"
	IntentDeny   = "deny"
)
