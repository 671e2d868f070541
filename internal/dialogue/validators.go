package dialogue

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jwalitptl/booking-actions/internal/model"
)

// Departments is the closed set of specialties a booking may target.
// Matching is case-insensitive; the accepted value is the canonical form.
var Departments = []string{
	"cardiologie",
	"dermatologie",
	"ortopedie",
	"pediatrie",
	"neurologie",
	"medicina generala",
	"oftalmologie",
}

// Courtesy prefixes stripped from doctor names. A bare "dr" only counts as a
// prefix when a period or whitespace separates it from the name.
var doctorPrefix = regexp.MustCompile(`(?i)^(doctor\s+|dr\.\s*|dr\s+)`)

// Validator checks one slot's candidate value against the turn context and
// returns the slot updates plus any user-facing messages. Validators never
// return errors; an unusable value clears the slot and emits a re-prompt.
type Validator func(raw string, turn Turn) Result

var validators = map[string]Validator{
	model.SlotFirstName: nameValidator(model.SlotFirstName),
	model.SlotLastName:  lastNameValidator(model.SlotLastName, model.SlotFirstName),
	model.SlotGender:    validateGender,
	model.SlotAge:       validateAge,

	model.SlotWeightRisk:      riskFlagValidator(model.SlotWeightRisk),
	model.SlotHypertension:    riskFlagValidator(model.SlotHypertension),
	model.SlotSmoker:          riskFlagValidator(model.SlotSmoker),
	model.SlotRecentSurgeries: riskFlagValidator(model.SlotRecentSurgeries),

	model.SlotDate:       dateValidator(model.SlotDate),
	model.SlotTime:       validateTime,
	model.SlotDoctor:     validateDoctor,
	model.SlotDepartment: departmentValidator(model.SlotDepartment),

	model.SlotCancelFirstName:  nameValidator(model.SlotCancelFirstName),
	model.SlotCancelLastName:   lastNameValidator(model.SlotCancelLastName, model.SlotCancelFirstName),
	model.SlotCancelDate:       dateValidator(model.SlotCancelDate),
	model.SlotCancelDepartment: departmentValidator(model.SlotCancelDepartment),
}

// ValidatorFor returns the validator registered for the slot name.
func ValidatorFor(slot string) (Validator, bool) {
	v, ok := validators[slot]
	return v, ok
}

func nameValidator(slot string) Validator {
	return func(raw string, _ Turn) Result {
		name := NormalizeAlpha(raw)
		if name == "" {
			return reject(slot, msg(MsgNameWrong))
		}
		return accept(slot, name)
	}
}

// lastNameValidator runs the plain name check, then the cross-field rule: a
// first/last combination shorter than three letters clears both slots.
func lastNameValidator(slot, firstSlot string) Validator {
	return func(raw string, turn Turn) Result {
		name := NormalizeAlpha(raw)
		if name == "" {
			return reject(slot, msg(MsgNameWrong))
		}

		first := GetString(turn.Slots, firstSlot)
		if len([]rune(first))+len([]rune(name)) < 3 {
			return Result{
				Updates: map[string]interface{}{
					firstSlot: nil,
					slot:      nil,
				},
				Messages: []Message{msg(MsgNameCombinationTooShort)},
			}
		}
		return accept(slot, name)
	}
}

func validateGender(raw string, _ Turn) Result {
	gender := NormalizeAlpha(raw)
	if gender == "" {
		return reject(model.SlotGender, msg(MsgGenderMissing))
	}
	return accept(model.SlotGender, gender)
}

func validateAge(raw string, _ Turn) Result {
	digits := NormalizeDigits(raw)
	if digits == "" {
		return reject(model.SlotAge, msg(MsgAgeOutOfRange))
	}
	age, err := strconv.Atoi(digits)
	if err != nil || age < 1 || age > 100 {
		return reject(model.SlotAge, msg(MsgAgeOutOfRange))
	}
	return accept(model.SlotAge, age)
}

// riskFlagValidator interprets the turn's intent as the answer to a yes/no
// screening question. When the intent is neither affirm nor deny the
// normalized text is passed through as-is, preserving the source system's
// fallback behavior.
func riskFlagValidator(slot string) Validator {
	return func(raw string, turn Turn) Result {
		answer := NormalizeAlpha(raw)
		if answer == "" {
			return reject(slot, msg(MsgAnswerYesOrNo))
		}
		switch turn.Intent {
		case model.IntentAffirm:
			return accept(slot, true)
		case model.IntentDeny:
			return accept(slot, false)
		}
		return accept(slot, answer)
	}
}

func dateValidator(slot string) Validator {
	return func(raw string, turn Turn) Result {
		date, ok := ParseDate(raw, turn.Now)
		if !ok {
			return reject(slot, msg(MsgWrongDateFormat))
		}
		return accept(slot, date)
	}
}

func validateTime(raw string, _ Turn) Result {
	canonical, ok := ParseTime(raw)
	if !ok {
		return reject(model.SlotTime, msg(MsgWrongTimeFormat))
	}
	if !WithinOfficeHours(canonical) {
		return reject(model.SlotTime, msg(MsgOutsideOfficeHours))
	}
	return accept(model.SlotTime, canonical)
}

func validateDoctor(raw string, _ Turn) Result {
	name := strings.TrimSpace(raw)
	if name == "" {
		return reject(model.SlotDoctor, msg(MsgDoctorMissing))
	}
	name = strings.TrimSpace(doctorPrefix.ReplaceAllString(name, ""))
	if name == "" {
		return reject(model.SlotDoctor, msg(MsgDoctorMissing))
	}
	return accept(model.SlotDoctor, name)
}

func departmentValidator(slot string) Validator {
	return func(raw string, _ Turn) Result {
		candidate := strings.ToLower(strings.TrimSpace(raw))
		for _, dept := range Departments {
			if candidate == dept {
				return accept(slot, dept)
			}
		}
		return reject(slot, msgWithArgs(MsgDepartmentUnknown, map[string]string{
			"choices": strings.Join(Departments, ", "),
		}))
	}
}
