package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timetrack/internal/domain"
	"timetrack/internal/store/archive"
)

var reportBase = time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

func timePtr(t time.Time) *time.Time {
	return &t
}

func completedRecord(label string, start time.Time, active time.Duration) domain.TimeRecord {
	end := start.Add(active)
	return domain.TimeRecord{
		ID:        "test-" + label,
		TaskLabel: label,
		StartTime: start,
		EndTime:   &end,
		Status:    domain.StatusCompleted,
		Timeline:  []domain.Span{{Start: start, End: &end}},
	}
}

func TestEntriesFromSession(t *testing.T) {
	now := reportBase.Add(3 * time.Hour)
	session := &domain.Session{
		History: []domain.TimeRecord{
			completedRecord("writing", reportBase, 30*time.Minute),
		},
		ActiveRecord: domain.NewTimeRecord("email", reportBase.Add(2*time.Hour)),
	}

	entries := EntriesFromSession(session, now)
	require.Len(t, entries, 2)

	assert.Equal(t, "writing", entries[0].Label)
	assert.Equal(t, 30*time.Minute, entries[0].Active)
	assert.False(t, entries[0].Running)

	// The open record counts up to now and has no end.
	assert.Equal(t, "email", entries[1].Label)
	assert.True(t, entries[1].Running)
	assert.Nil(t, entries[1].End)
	assert.Equal(t, time.Hour, entries[1].Active)
}

func TestEntriesFromArchive(t *testing.T) {
	end := reportBase.Add(30 * time.Minute)
	entries := EntriesFromArchive([]*archive.Record{
		{
			ID:            "rec-1",
			TaskLabel:     "writing",
			StartTime:     reportBase,
			EndTime:       end,
			ActiveSeconds: 25 * 60,
		},
	})

	require.Len(t, entries, 1)
	assert.Equal(t, "writing", entries[0].Label)
	assert.Equal(t, 25*time.Minute, entries[0].Active)
	require.NotNil(t, entries[0].End)
	assert.Equal(t, end, *entries[0].End)
	assert.False(t, entries[0].Running)
}

func TestAggregate_ByLabel(t *testing.T) {
	entries := []Entry{
		{Label: "writing", Start: reportBase, End: timePtr(reportBase.Add(30 * time.Minute)), Active: 30 * time.Minute},
		{Label: "email", Start: reportBase.Add(time.Hour), End: timePtr(reportBase.Add(80 * time.Minute)), Active: 20 * time.Minute},
		{Label: "writing", Start: reportBase.Add(2 * time.Hour), Active: 10 * time.Minute, Running: true},
	}

	rows := Aggregate(entries, Options{})
	require.Len(t, rows, 2)

	// Ordered by first start: writing came first.
	writing := rows[0]
	assert.Equal(t, "writing", writing.Label)
	assert.Equal(t, 2, writing.Sessions)
	assert.Equal(t, 40*time.Minute, writing.Active)
	assert.Equal(t, reportBase, writing.FirstStart)
	assert.Equal(t, reportBase.Add(30*time.Minute), writing.LastEnd)
	assert.True(t, writing.Running)

	email := rows[1]
	assert.Equal(t, "email", email.Label)
	assert.Equal(t, 1, email.Sessions)
	assert.False(t, email.Running)
}

func TestAggregate_PerRecord(t *testing.T) {
	entries := []Entry{
		{Label: "writing", Start: reportBase, End: timePtr(reportBase.Add(30 * time.Minute)), Active: 30 * time.Minute},
		{Label: "writing", Start: reportBase.Add(time.Hour), End: timePtr(reportBase.Add(90 * time.Minute)), Active: 30 * time.Minute},
	}

	rows := Aggregate(entries, Options{PerRecord: true})
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Sessions)
	assert.Equal(t, 1, rows[1].Sessions)
	assert.True(t, rows[0].FirstStart.Before(rows[1].FirstStart))
}

func TestAggregate_Filtering(t *testing.T) {
	entries := []Entry{
		{Label: "old", Start: reportBase.Add(-24 * time.Hour), Active: time.Hour},
		{Label: "inside", Start: reportBase, Active: time.Hour},
		{Label: "boundary", Start: reportBase.Add(24 * time.Hour), Active: time.Hour},
	}
	since := reportBase
	until := reportBase.Add(24 * time.Hour)

	tests := []struct {
		name       string
		opts       Options
		wantLabels []string
	}{
		{name: "no bounds", opts: Options{}, wantLabels: []string{"old", "inside", "boundary"}},
		{name: "since filters older starts", opts: Options{Since: &since}, wantLabels: []string{"inside", "boundary"}},
		{name: "until bound is exclusive", opts: Options{Until: &until}, wantLabels: []string{"old", "inside"}},
		{name: "both bounds", opts: Options{Since: &since, Until: &until}, wantLabels: []string{"inside"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := Aggregate(entries, tt.opts)
			var labels []string
			for _, row := range rows {
				labels = append(labels, row.Label)
			}
			assert.Equal(t, tt.wantLabels, labels)
		})
	}
}

func TestAggregate_DeterministicOrderOnTie(t *testing.T) {
	entries := []Entry{
		{Label: "beta", Start: reportBase, Active: time.Minute},
		{Label: "alpha", Start: reportBase, Active: time.Minute},
	}

	rows := Aggregate(entries, Options{})
	require.Len(t, rows, 2)
	assert.Equal(t, "alpha", rows[0].Label)
	assert.Equal(t, "beta", rows[1].Label)
}

func TestTotalActive(t *testing.T) {
	rows := []Row{
		{Active: 30 * time.Minute},
		{Active: 90 * time.Minute},
	}
	assert.Equal(t, 2*time.Hour, TotalActive(rows))
	assert.Equal(t, time.Duration(0), TotalActive(nil))
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		duration time.Duration
		want     string
	}{
		{0, "0m"},
		{45 * time.Second, "0m"},
		{15 * time.Minute, "15m"},
		{time.Hour, "1h 0m"},
		{95 * time.Minute, "1h 35m"},
		{25 * time.Hour, "25h 0m"},
		{-time.Minute, "0m"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.duration))
		})
	}
}
