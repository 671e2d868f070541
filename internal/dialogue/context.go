package dialogue

import "time"

// SlotGetter reads previously accepted slot values. Implementations must
// only expose values that already passed validation.
type SlotGetter interface {
	Get(name string) (interface{}, bool)
}

// SlotMap is the plain map form of a conversation's slot state, as received
// from the dialogue host each turn.
type SlotMap map[string]interface{}

func (m SlotMap) Get(name string) (interface{}, bool) {
	v, ok := m[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// GetString returns the slot's value when it is present and a string.
func GetString(s SlotGetter, name string) string {
	v, ok := s.Get(name)
	if !ok {
		return ""
	}
	str, _ := v.(string)
	return str
}

// Turn is the read-only ambient context handed to every validator: the most
// recently recognized intent, the accepted slots so far and the reference
// time used for calendar inference.
type Turn struct {
	Intent string
	Slots  SlotGetter
	Now    time.Time
}

// Result is the outcome of validating one slot or evaluating a form gate.
// Updates maps slot names to their new values; a nil value means the slot is
// explicitly cleared. Messages are surfaced to the user in order.
type Result struct {
	Updates  map[string]interface{} `json:"updates"`
	Messages []Message              `json:"messages"`
}

func accept(slot string, value interface{}) Result {
	return Result{Updates: map[string]interface{}{slot: value}}
}

func reject(slot string, m Message) Result {
	return Result{
		Updates:  map[string]interface{}{slot: nil},
		Messages: []Message{m},
	}
}
