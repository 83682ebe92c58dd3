package validation

import (
	"regexp"
	"strings"
	"time"
)

// Label length bounds used when no configuration override is supplied.
const (
	DefaultLabelMinLength = 1
	DefaultLabelMaxLength = 255
)

// Validator provides common validation utilities
type Validator struct {
	labelChars *regexp.Regexp
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		// Alphanumeric, spaces, and common punctuation. Control characters,
		// newlines and tabs would break the one-line report formats.
		labelChars: regexp.MustCompile(`^[a-zA-Z0-9 \-_.,:/!?()]+$`),
	}
}

// TrimString trims surrounding whitespace and returns the cleaned string
func (v *Validator) TrimString(s string) string {
	return strings.TrimSpace(s)
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if a string length is within the specified range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := len(strings.TrimSpace(s))
	return length >= min && length <= max
}

// IsValidLabel checks if a task label contains only allowed characters
func (v *Validator) IsValidLabel(label string) bool {
	return v.labelChars.MatchString(label)
}

// IsValidDateRange checks that a since/until pair is logical. Nil bounds are
// open-ended and always valid.
func (v *Validator) IsValidDateRange(since, until *time.Time) bool {
	if since == nil || until == nil {
		return true
	}
	return since.Before(*until)
}
