package validation

// LabelValidator provides validation for task labels
type LabelValidator struct {
	validator *Validator
}

// NewLabelValidator creates a new label validator
func NewLabelValidator() *LabelValidator {
	return &LabelValidator{
		validator: NewValidator(),
	}
}

// ValidateLabel validates a non-empty task label
func (lv *LabelValidator) ValidateLabel(label string) error {
	validationError := NewValidationError()

	trimmed := lv.validator.TrimString(label)
	if !lv.validator.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError("task_label")
		return validationError
	}
	if !lv.validator.IsValidStringLength(trimmed, DefaultLabelMinLength, DefaultLabelMaxLength) {
		validationError.AddInvalidLengthError("task_label", trimmed, DefaultLabelMinLength, DefaultLabelMaxLength)
	}
	if !lv.validator.IsValidLabel(trimmed) {
		validationError.AddInvalidCharacterError("task_label", trimmed)
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// ResolveLabel trims the given label, falls back to the configured default
// when it is empty, and validates the result.
func (lv *LabelValidator) ResolveLabel(label, fallback string) (string, error) {
	resolved := lv.validator.TrimString(label)
	if resolved == "" {
		resolved = lv.validator.TrimString(fallback)
	}
	if err := lv.ValidateLabel(resolved); err != nil {
		return "", err
	}
	return resolved, nil
}
