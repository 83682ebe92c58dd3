package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidator_TrimString(t *testing.T) {
	v := NewValidator()

	assert.Equal(t, "writing", v.TrimString("  writing  "))
	assert.Equal(t, "", v.TrimString("   "))
	assert.Equal(t, "deep work", v.TrimString("\tdeep work\n"))
}

func TestValidator_IsNonEmptyString(t *testing.T) {
	v := NewValidator()

	assert.True(t, v.IsNonEmptyString("writing"))
	assert.False(t, v.IsNonEmptyString(""))
	assert.False(t, v.IsNonEmptyString("   "))
	assert.False(t, v.IsNonEmptyString("\t\n"))
}

func TestValidator_IsValidStringLength(t *testing.T) {
	v := NewValidator()

	assert.True(t, v.IsValidStringLength("abc", 1, 10))
	assert.True(t, v.IsValidStringLength("a", 1, 10))
	assert.False(t, v.IsValidStringLength("", 1, 10))
	assert.False(t, v.IsValidStringLength(strings.Repeat("a", 11), 1, 10))
	// Surrounding whitespace does not count toward the length.
	assert.True(t, v.IsValidStringLength("  "+strings.Repeat("a", 10)+"  ", 1, 10))
}

func TestValidator_IsValidLabel(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		label string
		valid bool
	}{
		{"writing", true},
		{"deep work", true},
		{"project-x: phase 2", true},
		{"Q3 review (draft)", true},
		{"bugs/issue-42", true},
		{"", false},
		{"line\nbreak", false},
		{"tab\there", false},
		{"emoji \U0001F600", false},
		{"semi;colon", false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.valid, v.IsValidLabel(tt.label))
		})
	}
}

func TestValidator_IsValidDateRange(t *testing.T) {
	v := NewValidator()
	earlier := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	later := earlier.Add(24 * time.Hour)

	assert.True(t, v.IsValidDateRange(nil, nil))
	assert.True(t, v.IsValidDateRange(&earlier, nil))
	assert.True(t, v.IsValidDateRange(nil, &later))
	assert.True(t, v.IsValidDateRange(&earlier, &later))
	assert.False(t, v.IsValidDateRange(&later, &earlier))
	assert.False(t, v.IsValidDateRange(&earlier, &earlier))
}
