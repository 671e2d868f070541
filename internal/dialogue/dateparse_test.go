package dialogue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{name: "iso format", raw: "2026-03-15", want: "2026-03-15", ok: true},
		{name: "slash format", raw: "15/03/2026", want: "2026-03-15", ok: true},
		{name: "day month current year", raw: "15.07", want: "2026-07-15", ok: true},
		{name: "day month same month", raw: "15.06", want: "2026-06-15", ok: true},
		{name: "leading whitespace", raw: "  2026-03-15 ", want: "2026-03-15", ok: true},
		{name: "garbage", raw: "next tuesday", ok: false},
		{name: "empty", raw: "", ok: false},
		{name: "us slash order rejected", raw: "03/15/2026", ok: false},
		{name: "iso wins over ambiguity", raw: "2026-01-02", want: "2026-01-02", ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.raw, now)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseDateLeapDay(t *testing.T) {
	// 29.02 resolving into a non-leap year names a day that does not exist;
	// it must be rejected, not normalized to March 1.
	june2026 := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	_, ok := ParseDate("29.02", june2026)
	assert.False(t, ok)

	// The same input is fine when the resolved year is a leap year.
	jan2028 := time.Date(2028, 1, 10, 0, 0, 0, 0, time.UTC)
	got, ok := ParseDate("29.02", jan2028)
	assert.True(t, ok)
	assert.Equal(t, "2028-02-29", got)
}

func TestParseDateYearRolling(t *testing.T) {
	// A passed month resolves to next year, an upcoming one to this year.
	june := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	got, ok := ParseDate("15.03", june)
	assert.True(t, ok)
	assert.Equal(t, "2027-03-15", got)

	february := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	got, ok = ParseDate("15.03", february)
	assert.True(t, ok)
	assert.Equal(t, "2026-03-15", got)
}
