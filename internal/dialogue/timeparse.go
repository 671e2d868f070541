package dialogue

import (
	"strings"
	"time"
)

// TimeLayout is the canonical time-of-day form every accepted time slot
// normalizes to.
const TimeLayout = "15:04:05"

// Office hours window, inclusive on both ends.
const (
	officeOpenMinute  = 9 * 60
	officeCloseMinute = 17 * 60
)

var timeLayouts = []string{
	"3:04 PM",
	"15:04",
	"15",
}

// ParseTime tries the accepted time formats in fixed precedence order:
// hh:mm AM/PM, 24-hour HH:MM, then bare hour with minutes defaulting to :00.
// The result is canonical HH:MM:SS. Office hours are checked separately by
// WithinOfficeHours; a time can be well-formed and still be rejected there.
func ParseTime(raw string) (string, bool) {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		return t.Format(TimeLayout), true
	}
	return "", false
}

// WithinOfficeHours reports whether a canonical HH:MM:SS time falls inside
// the fixed office-hours window, both boundary values included.
func WithinOfficeHours(canonical string) bool {
	t, err := time.Parse(TimeLayout, canonical)
	if err != nil {
		return false
	}
	minute := t.Hour()*60 + t.Minute()
	return minute >= officeOpenMinute && minute <= officeCloseMinute
}
