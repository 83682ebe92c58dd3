package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestNewTimeRecord(t *testing.T) {
	record := NewTimeRecord("writing", baseTime)

	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "writing", record.TaskLabel)
	assert.Equal(t, baseTime, record.StartTime)
	assert.Nil(t, record.EndTime)
	assert.Equal(t, StatusRunning, record.Status)
	require.Len(t, record.Timeline, 1)
	assert.True(t, record.Timeline[0].IsOpen())
	assert.True(t, record.IsOpen())
}

func TestTimeRecord_ActiveDuration(t *testing.T) {
	tests := []struct {
		name     string
		build    func() *TimeRecord
		now      time.Time
		expected time.Duration
	}{
		{
			name: "open record counts up to now",
			build: func() *TimeRecord {
				return NewTimeRecord("writing", baseTime)
			},
			now:      baseTime.Add(10 * time.Minute),
			expected: 10 * time.Minute,
		},
		{
			name: "paused interval is excluded",
			build: func() *TimeRecord {
				record := NewTimeRecord("writing", baseTime)
				record.CloseSpan(baseTime.Add(10 * time.Minute))
				record.Status = StatusPaused
				return record
			},
			now:      baseTime.Add(25 * time.Minute),
			expected: 10 * time.Minute,
		},
		{
			name: "sealed record with pause counts only running spans",
			build: func() *TimeRecord {
				record := NewTimeRecord("writing", baseTime)
				record.CloseSpan(baseTime.Add(10 * time.Minute))
				record.Status = StatusPaused
				record.OpenSpan(baseTime.Add(25 * time.Minute))
				record.Status = StatusRunning
				record.Seal(baseTime.Add(30 * time.Minute))
				return record
			},
			now:      baseTime.Add(2 * time.Hour),
			expected: 15 * time.Minute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := tt.build()
			assert.Equal(t, tt.expected, record.ActiveDuration(tt.now))
		})
	}
}

func TestTimeRecord_Seal(t *testing.T) {
	record := NewTimeRecord("writing", baseTime)
	end := baseTime.Add(30 * time.Minute)

	record.Seal(end)

	assert.Equal(t, StatusCompleted, record.Status)
	require.NotNil(t, record.EndTime)
	assert.Equal(t, end, *record.EndTime)
	assert.False(t, record.IsOpen())
	require.Len(t, record.Timeline, 1)
	require.NotNil(t, record.Timeline[0].End)
	assert.Equal(t, end, *record.Timeline[0].End)
}

func TestTimeRecord_Validate(t *testing.T) {
	sealed := func() *TimeRecord {
		record := NewTimeRecord("writing", baseTime)
		record.Seal(baseTime.Add(time.Hour))
		return record
	}

	tests := []struct {
		name    string
		mutate  func(record *TimeRecord)
		wantErr string
	}{
		{
			name:   "valid sealed record",
			mutate: func(record *TimeRecord) {},
		},
		{
			name: "missing id",
			mutate: func(record *TimeRecord) {
				record.ID = ""
			},
			wantErr: "no id",
		},
		{
			name: "unknown status",
			mutate: func(record *TimeRecord) {
				record.Status = "sleeping"
			},
			wantErr: "unknown status",
		},
		{
			name: "completed without end time",
			mutate: func(record *TimeRecord) {
				record.EndTime = nil
			},
			wantErr: "end time must be set",
		},
		{
			name: "end before start",
			mutate: func(record *TimeRecord) {
				record.EndTime = timePtr(record.StartTime.Add(-time.Minute))
			},
			wantErr: "end time precedes start time",
		},
		{
			name: "empty timeline",
			mutate: func(record *TimeRecord) {
				record.Timeline = nil
			},
			wantErr: "timeline is empty",
		},
		{
			name: "span before record start",
			mutate: func(record *TimeRecord) {
				record.Timeline[0].Start = record.StartTime.Add(-time.Minute)
			},
			wantErr: "starts before the record",
		},
		{
			name: "overlapping spans",
			mutate: func(record *TimeRecord) {
				mid := record.StartTime.Add(30 * time.Minute)
				record.Timeline = []Span{
					{Start: record.StartTime, End: timePtr(mid.Add(5 * time.Minute))},
					{Start: mid, End: record.EndTime},
				}
			},
			wantErr: "overlaps",
		},
		{
			name: "open span on completed record",
			mutate: func(record *TimeRecord) {
				record.Timeline = []Span{{Start: record.StartTime}}
			},
			wantErr: "open span on a completed record",
		},
		{
			name: "running record without open span",
			mutate: func(record *TimeRecord) {
				record.Status = StatusRunning
				record.EndTime = nil
			},
			wantErr: "running record has no open span",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := sealed()
			tt.mutate(record)

			err := record.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestSpan_Duration(t *testing.T) {
	open := Span{Start: baseTime}
	assert.Equal(t, 5*time.Minute, open.Duration(baseTime.Add(5*time.Minute)))

	closed := Span{Start: baseTime, End: timePtr(baseTime.Add(time.Hour))}
	assert.Equal(t, time.Hour, closed.Duration(baseTime.Add(3*time.Hour)))
}
