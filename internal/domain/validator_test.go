package domain_test

import (
	"encoding/json"
	"math"
	"testing"

	"simple_cart/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestValidateInteger(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"zero", 0, true},
		{"positive", 42, true},
		{"max int", int64(math.MaxInt64), true},
		{"max int plus one", uint64(math.MaxInt64) + 1, false},
		{"max int plus one as string", "9223372036854775808", false},
		{"negative", -1, false},
		{"numeric string", "123", true},
		{"signed string", "+7", true},
		{"padded string", " 15 ", true},
		{"leading zero", "012", false},
		{"negative string", "-1", false},
		{"decimal string", "1.5", false},
		{"integral float", 10.0, true},
		{"decimal float", 2.5, false},
		{"nan", math.NaN(), false},
		{"json number", json.Number("9"), true},
		{"empty string", "", false},
		{"word", "abc", false},
		{"nil", nil, false},
		{"bool", true, false},
		{"slice", []int{1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ValidateInteger(tt.value))
		})
	}
}

func TestValidateFloat(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"zero", 0, true},
		{"int", 12, true},
		{"float", 75.25, true},
		{"decimal string", "10.00", true},
		{"leading dot", ".5", true},
		{"exponent", "1e3", true},
		{"negative", -0.01, false},
		{"negative string", "-3", false},
		{"comma decimal", "10,5", false},
		{"hex", "0x10", false},
		{"infinity", math.Inf(1), false},
		{"infinity string", "Inf", false},
		{"word", "ten", false},
		{"nil", nil, false},
		{"map", map[string]int{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ValidateFloat(tt.value))
		})
	}
}

func TestValidateString(t *testing.T) {
	assert.True(t, domain.ValidateString("X"))
	assert.True(t, domain.ValidateString("Test item one"))
	assert.False(t, domain.ValidateString(""))
	assert.False(t, domain.ValidateString(nil))
	assert.False(t, domain.ValidateString(12))
	assert.False(t, domain.ValidateString([]byte("bytes")))
}
