package dialogue

import "github.com/jwalitptl/booking-actions/internal/model"

// Gate is one hand-off point in the form chain: when every slot of Form is
// present the continuation Flag is set true and the hand-off Prompt emitted;
// otherwise the flag is set false. Evaluation is idempotent.
type Gate struct {
	Form   string
	Next   string
	Flag   string
	Prompt string
}

var gates = map[string]Gate{
	model.FormAppointment: {
		Form:   model.FormAppointment,
		Next:   model.FormName,
		Flag:   model.SlotAskForSecondForm,
		Prompt: MsgStartNameForm,
	},
	model.FormName: {
		Form:   model.FormName,
		Next:   model.FormPreliminary,
		Flag:   model.SlotAskForThirdForm,
		Prompt: MsgStartPreliminaryForm,
	},
}

// GateFor returns the hand-off gate evaluated after the named form
// completes. The last form and the cancellation form have none.
func GateFor(form string) (Gate, bool) {
	g, ok := gates[form]
	return g, ok
}

// Evaluate re-checks the gate against the current slot state.
func (g Gate) Evaluate(slots SlotGetter) Result {
	if !FormFilled(g.Form, slots) {
		return Result{Updates: map[string]interface{}{g.Flag: false}}
	}
	return Result{
		Updates:  map[string]interface{}{g.Flag: true},
		Messages: []Message{msg(g.Prompt)},
	}
}

// FormFilled reports whether every required slot of the form is present.
func FormFilled(form string, slots SlotGetter) bool {
	for _, name := range model.FormSlots[form] {
		if _, ok := slots.Get(name); !ok {
			return false
		}
	}
	return true
}
