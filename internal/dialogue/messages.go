package dialogue

// Message identifiers surfaced to the dialogue host. Rendering into user
// language happens in the templating layer, never here.
const (
	MsgNameWrong               = "utter_name_wrong"
	MsgNameCombinationTooShort = "utter_name_combination_too_short"
	MsgGenderMissing           = "utter_gender_missing"
	MsgAgeOutOfRange           = "utter_age_out_of_range"
	MsgAnswerYesOrNo           = "utter_answer_yes_or_no"
	MsgWrongDateFormat         = "utter_wrong_date_format"
	MsgWrongTimeFormat         = "utter_wrong_time_format"
	MsgOutsideOfficeHours      = "utter_time_outside_office_hours"
	MsgDoctorMissing           = "utter_doctor_missing"
	MsgDepartmentUnknown       = "utter_department_unknown"

	MsgStartNameForm        = "utter_start_name_form"
	MsgStartPreliminaryForm = "utter_start_preliminary_form"

	MsgBookingConfirmed = "utter_booking_confirmed"
	MsgBookingFailed    = "utter_booking_failed"
	MsgCancelConfirmed  = "utter_cancel_confirmed"
	MsgCancelNotFound   = "utter_cancel_not_found"
)

// Message is one user-facing utterance identifier plus the arguments the
// template needs to render it.
type Message struct {
	ID   string            `json:"id"`
	Args map[string]string `json:"args,omitempty"`
}

func msg(id string) Message { return Message{ID: id} }

func msgWithArgs(id string, args map[string]string) Message {
	return Message{ID: id, Args: args}
}
