package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		wantErr  bool
	}{
		{"19.99", 19.99, false},
		{" 42 ", 42, false},
		{"1234,50", 1234.50, false},
		{"1.234,50", 1234.50, false},
		{"", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		got, err := parseDecimal(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.input)
			continue
		}
		assert.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.expected, got, "input %q", tt.input)
	}
}

func TestParseIntOrZero(t *testing.T) {
	assert.Equal(t, 5, parseIntOrZero("5"))
	assert.Equal(t, 5, parseIntOrZero("5.0"))
	assert.Equal(t, 0, parseIntOrZero(""))
	assert.Equal(t, 0, parseIntOrZero("n/a"))
}

func TestParseActiveFlag(t *testing.T) {
	assert.True(t, parseActiveFlag(""))
	assert.True(t, parseActiveFlag("Yes"))
	assert.True(t, parseActiveFlag("sí"))
	assert.True(t, parseActiveFlag("1"))
	assert.False(t, parseActiveFlag("No"))
	assert.False(t, parseActiveFlag("0"))
	assert.False(t, parseActiveFlag("inactive"))
}
