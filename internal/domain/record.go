package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RecordStatus describes the lifecycle stage of a TimeRecord.
type RecordStatus string

const (
	StatusRunning   RecordStatus = "running"
	StatusPaused    RecordStatus = "paused"
	StatusCompleted RecordStatus = "completed"
)

// IsValid checks that the status is one of the known values.
func (s RecordStatus) IsValid() bool {
	switch s {
	case StatusRunning, StatusPaused, StatusCompleted:
		return true
	}
	return false
}

// Span is one contiguous running sub-interval of a TimeRecord. Pausing a
// record closes the current span; resuming opens a new one. Paused time is
// whatever falls between spans.
type Span struct {
	Start time.Time
	End   *time.Time
}

// IsOpen returns true while the span has no end time.
func (s Span) IsOpen() bool {
	return s.End == nil
}

// Duration returns the span length. An open span is measured up to now.
func (s Span) Duration(now time.Time) time.Duration {
	if s.End == nil {
		return now.Sub(s.Start)
	}
	return s.End.Sub(s.Start)
}

// TimeRecord is one logged interval of tracked activity. EndTime is nil
// exactly as long as the record is not completed.
type TimeRecord struct {
	ID        string
	TaskLabel string
	StartTime time.Time
	EndTime   *time.Time
	Status    RecordStatus
	Timeline  []Span
}

// NewTimeRecord creates a running record for the given label, with an open
// span starting at startTime.
func NewTimeRecord(label string, startTime time.Time) *TimeRecord {
	return &TimeRecord{
		ID:        uuid.NewString(),
		TaskLabel: label,
		StartTime: startTime,
		Status:    StatusRunning,
		Timeline:  []Span{{Start: startTime}},
	}
}

// IsOpen returns true while the record has not been sealed.
func (r *TimeRecord) IsOpen() bool {
	return r.Status != StatusCompleted
}

// OpenSpan appends a new running span starting at t.
func (r *TimeRecord) OpenSpan(t time.Time) {
	r.Timeline = append(r.Timeline, Span{Start: t})
}

// CloseSpan sets the end time of the currently open span, if any.
func (r *TimeRecord) CloseSpan(t time.Time) {
	for i := range r.Timeline {
		if r.Timeline[i].IsOpen() {
			end := t
			r.Timeline[i].End = &end
			return
		}
	}
}

// Seal completes the record: the open span (if any) is closed, the end time
// is set and the status becomes completed.
func (r *TimeRecord) Seal(t time.Time) {
	r.CloseSpan(t)
	end := t
	r.EndTime = &end
	r.Status = StatusCompleted
}

// ActiveDuration sums the record's running spans, excluding paused
// intervals. An open span counts up to now.
func (r *TimeRecord) ActiveDuration(now time.Time) time.Duration {
	var total time.Duration
	for _, span := range r.Timeline {
		total += span.Duration(now)
	}
	return total
}

// Validate checks the record's internal invariants.
func (r *TimeRecord) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("record has no id")
	}
	if !r.Status.IsValid() {
		return fmt.Errorf("record %s: unknown status %q", r.ID, r.Status)
	}
	if r.StartTime.IsZero() {
		return fmt.Errorf("record %s: start time is not set", r.ID)
	}
	if (r.EndTime == nil) != (r.Status != StatusCompleted) {
		return fmt.Errorf("record %s: end time must be set exactly when status is completed", r.ID)
	}
	if r.EndTime != nil && r.EndTime.Before(r.StartTime) {
		return fmt.Errorf("record %s: end time precedes start time", r.ID)
	}
	return r.validateTimeline()
}

// validateTimeline checks that spans are ordered, non-overlapping, within
// the record bounds, and that at most one span is open, only on a running
// record.
func (r *TimeRecord) validateTimeline() error {
	if len(r.Timeline) == 0 {
		return fmt.Errorf("record %s: timeline is empty", r.ID)
	}
	openCount := 0
	var prevEnd time.Time
	for i, span := range r.Timeline {
		if span.Start.Before(r.StartTime) {
			return fmt.Errorf("record %s: span %d starts before the record", r.ID, i)
		}
		if i > 0 && span.Start.Before(prevEnd) {
			return fmt.Errorf("record %s: span %d overlaps the previous span", r.ID, i)
		}
		if span.IsOpen() {
			openCount++
			if i != len(r.Timeline)-1 {
				return fmt.Errorf("record %s: open span %d is not the last span", r.ID, i)
			}
			continue
		}
		if span.End.Before(span.Start) {
			return fmt.Errorf("record %s: span %d ends before it starts", r.ID, i)
		}
		if r.EndTime != nil && span.End.After(*r.EndTime) {
			return fmt.Errorf("record %s: span %d ends after the record", r.ID, i)
		}
		prevEnd = *span.End
	}
	if openCount > 1 {
		return fmt.Errorf("record %s: more than one open span", r.ID)
	}
	if openCount == 1 && r.Status != StatusRunning {
		return fmt.Errorf("record %s: open span on a %s record", r.ID, r.Status)
	}
	if openCount == 0 && r.Status == StatusRunning {
		return fmt.Errorf("record %s: running record has no open span", r.ID)
	}
	return nil
}
