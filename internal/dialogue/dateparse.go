package dialogue

import (
	"strings"
	"time"
)

// DateLayout is the canonical calendar-date form every accepted date slot
// normalizes to.
const DateLayout = "2006-01-02"

// dateParser attempts one format. It reports the canonical date and whether
// the raw text matched. Parsers never return errors; an unmatched format is
// simply the signal to try the next one.
type dateParser func(raw string, now time.Time) (string, bool)

var dateParsers = []dateParser{
	parseISODate,
	parseSlashDate,
	parseDayMonth,
}

// ParseDate tries the accepted date formats in fixed precedence order and
// stops at the first match: YYYY-MM-DD, then DD/MM/YYYY, then DD.MM with the
// year inferred against now.
func ParseDate(raw string, now time.Time) (string, bool) {
	raw = strings.TrimSpace(raw)
	for _, parse := range dateParsers {
		if date, ok := parse(raw, now); ok {
			return date, true
		}
	}
	return "", false
}

func parseISODate(raw string, _ time.Time) (string, bool) {
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return "", false
	}
	return t.Format(DateLayout), true
}

func parseSlashDate(raw string, _ time.Time) (string, bool) {
	t, err := time.Parse("02/01/2006", raw)
	if err != nil {
		return "", false
	}
	return t.Format(DateLayout), true
}

// parseDayMonth resolves a day.month input to its nearest upcoming
// occurrence: this year while the month has not passed, next year otherwise.
func parseDayMonth(raw string, now time.Time) (string, bool) {
	t, err := time.Parse("02.01", raw)
	if err != nil {
		return "", false
	}
	year := now.Year()
	if t.Month() < now.Month() {
		year++
	}
	// time.Parse validated the day against year 0 and time.Date normalizes
	// overflow, so 29.02 resolved into a non-leap year would silently become
	// March 1. The day must survive resolution unchanged.
	resolved := time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	if resolved.Day() != t.Day() || resolved.Month() != t.Month() {
		return "", false
	}
	return resolved.Format(DateLayout), true
}
