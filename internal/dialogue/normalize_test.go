package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAlpha(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Maria", "Maria"},
		{" Ana-Maria ", "AnaMaria"},
		{"Ionescu2", "Ionescu"},
		{"123", ""},
		{"", ""},
		{"Ștefan", "Ștefan"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeAlpha(tt.in), "input %q", tt.in)
	}
}

func TestNormalizeDigits(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"45", "45"},
		{"45 years", "45"},
		{"I am 45 years old", "45"},
		{"forty five", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeDigits(tt.in), "input %q", tt.in)
	}
}
