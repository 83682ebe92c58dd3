// Package report folds recorded time into aggregated rows and renders them
// in one of a closed set of formats. Aggregation and rendering are pure:
// they read records and produce rows or text, nothing else.
package report

import (
	"fmt"
	"sort"
	"time"

	"timetrack/internal/domain"
	"timetrack/internal/store/archive"
)

// Entry is one reportable interval, flattened from either a live time record
// or an archived row. Active is the counted duration with paused intervals
// already excluded.
type Entry struct {
	Label   string
	Start   time.Time
	End     *time.Time
	Active  time.Duration
	Running bool
}

// Row is one aggregated report row: one per distinct task label, or one per
// record when per-record granularity is requested.
type Row struct {
	Label      string
	Sessions   int
	Active     time.Duration
	FirstStart time.Time
	LastEnd    time.Time
	Running    bool
}

// Options controls filtering and granularity of aggregation.
type Options struct {
	// Since and Until bound entries by start time, half-open [Since, Until).
	// A nil bound is unbounded.
	Since *time.Time
	Until *time.Time

	// PerRecord yields one row per entry instead of one per label.
	PerRecord bool
}

// EntriesFromSession flattens the session history plus the optional open
// record into report entries. The open record's duration counts up to now.
func EntriesFromSession(session *domain.Session, now time.Time) []Entry {
	entries := make([]Entry, 0, len(session.History)+1)
	for i := range session.History {
		record := &session.History[i]
		entries = append(entries, Entry{
			Label:  record.TaskLabel,
			Start:  record.StartTime,
			End:    record.EndTime,
			Active: record.ActiveDuration(now),
		})
	}
	if open := session.ActiveRecord; open != nil {
		entries = append(entries, Entry{
			Label:   open.TaskLabel,
			Start:   open.StartTime,
			Active:  open.ActiveDuration(now),
			Running: true,
		})
	}
	return entries
}

// EntriesFromArchive flattens archived records into report entries.
func EntriesFromArchive(records []*archive.Record) []Entry {
	entries := make([]Entry, 0, len(records))
	for _, record := range records {
		end := record.EndTime
		entries = append(entries, Entry{
			Label:  record.TaskLabel,
			Start:  record.StartTime,
			End:    &end,
			Active: record.ActiveDuration(),
		})
	}
	return entries
}

// Aggregate folds entries into report rows. Rows are ordered by first start
// time, then label, so output is deterministic.
func Aggregate(entries []Entry, opts Options) []Row {
	filtered := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if opts.Since != nil && entry.Start.Before(*opts.Since) {
			continue
		}
		if opts.Until != nil && !entry.Start.Before(*opts.Until) {
			continue
		}
		filtered = append(filtered, entry)
	}

	var rows []Row
	if opts.PerRecord {
		rows = make([]Row, 0, len(filtered))
		for _, entry := range filtered {
			row := Row{
				Label:      entry.Label,
				Sessions:   1,
				Active:     entry.Active,
				FirstStart: entry.Start,
				Running:    entry.Running,
			}
			if entry.End != nil {
				row.LastEnd = *entry.End
			}
			rows = append(rows, row)
		}
	} else {
		byLabel := make(map[string]*Row)
		for _, entry := range filtered {
			row, ok := byLabel[entry.Label]
			if !ok {
				row = &Row{Label: entry.Label, FirstStart: entry.Start}
				byLabel[entry.Label] = row
			}
			row.Sessions++
			row.Active += entry.Active
			if entry.Start.Before(row.FirstStart) {
				row.FirstStart = entry.Start
			}
			if entry.End != nil && entry.End.After(row.LastEnd) {
				row.LastEnd = *entry.End
			}
			if entry.Running {
				row.Running = true
			}
		}
		rows = make([]Row, 0, len(byLabel))
		for _, row := range byLabel {
			rows = append(rows, *row)
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].FirstStart.Equal(rows[j].FirstStart) {
			return rows[i].FirstStart.Before(rows[j].FirstStart)
		}
		return rows[i].Label < rows[j].Label
	})
	return rows
}

// TotalActive sums the active duration over rows.
func TotalActive(rows []Row) time.Duration {
	var total time.Duration
	for _, row := range rows {
		total += row.Active
	}
	return total
}

// FormatDuration formats a duration into a compact human-readable string.
func FormatDuration(duration time.Duration) string {
	if duration < 0 {
		duration = 0
	}
	hours := int(duration.Hours())
	minutes := int(duration.Minutes()) % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
