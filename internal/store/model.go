package store

import "time"

// sessionDoc is the on-disk YAML shape of a session. Times are RFC3339
// strings so the file stays hand-editable; field order here fixes the key
// order in the file.
type sessionDoc struct {
	ActiveRecord *recordDoc  `yaml:"active_record,omitempty"`
	History      []recordDoc `yaml:"history"`
}

// recordDoc is the on-disk shape of a single time record.
type recordDoc struct {
	ID        string    `yaml:"id"`
	TaskLabel string    `yaml:"task_label"`
	StartTime string    `yaml:"start_time"`
	EndTime   string    `yaml:"end_time,omitempty"`
	Status    string    `yaml:"status"`
	Timeline  []spanDoc `yaml:"timeline"`
}

// spanDoc is the on-disk shape of one running sub-interval.
type spanDoc struct {
	Start string `yaml:"start"`
	End   string `yaml:"end,omitempty"`
}

// FormatTime formats a time value as RFC3339 for the session file.
func FormatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

// FormatTimePtr formats an optional time value, returning "" for nil.
func FormatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatTime(*t)
}

// ParseTime parses an RFC3339 time string from the session file.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// ParseTimePtr parses an optional RFC3339 time string, mapping "" to nil.
func ParseTimePtr(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := ParseTime(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
