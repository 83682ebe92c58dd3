package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"

	"timetrack/internal/errors"
)

// Format is the closed set of report output formats. Dispatch is exhaustive:
// adding a variant means adding a render function.
type Format int

const (
	FormatTable Format = iota
	FormatCSV
	FormatJSON
	FormatHTML
)

// String returns the flag spelling of the format.
func (f Format) String() string {
	switch f {
	case FormatTable:
		return "table"
	case FormatCSV:
		return "csv"
	case FormatJSON:
		return "json"
	case FormatHTML:
		return "html"
	default:
		return "unknown"
	}
}

// ParseFormat converts a flag value into a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "table", "":
		return FormatTable, nil
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "html":
		return FormatHTML, nil
	default:
		return 0, errors.NewInvalidInputError("format", s, "must be one of table, csv, json, html")
	}
}

// Render writes rows to w in the given format. timeFormat controls how
// timestamps are displayed in the table and HTML variants; CSV and JSON
// always use RFC3339.
func Render(w io.Writer, format Format, rows []Row, timeFormat string) error {
	switch format {
	case FormatCSV:
		return renderCSV(w, rows)
	case FormatJSON:
		return renderJSON(w, rows)
	case FormatHTML:
		return renderHTML(w, rows, timeFormat)
	case FormatTable:
		return renderTable(w, rows, timeFormat)
	default:
		return errors.NewInvalidInputError("format", int(format), "unknown report format")
	}
}

func renderCSV(w io.Writer, rows []Row) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{"Task Label", "Sessions", "Active (hours)", "First Start", "Last End", "Running"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range rows {
		var lastEnd string
		if !row.LastEnd.IsZero() {
			lastEnd = row.LastEnd.Format(time.RFC3339)
		}
		record := []string{
			row.Label,
			strconv.Itoa(row.Sessions),
			fmt.Sprintf("%.2f", row.Active.Hours()),
			row.FirstStart.Format(time.RFC3339),
			lastEnd,
			strconv.FormatBool(row.Running),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// jsonRow is the wire shape of a report row.
type jsonRow struct {
	Label         string `json:"task_label"`
	Sessions      int    `json:"sessions"`
	ActiveSeconds int64  `json:"active_seconds"`
	Active        string `json:"active"`
	FirstStart    string `json:"first_start"`
	LastEnd       string `json:"last_end,omitempty"`
	Running       bool   `json:"running"`
}

func renderJSON(w io.Writer, rows []Row) error {
	out := make([]jsonRow, 0, len(rows))
	for _, row := range rows {
		jr := jsonRow{
			Label:         row.Label,
			Sessions:      row.Sessions,
			ActiveSeconds: int64(row.Active / time.Second),
			Active:        FormatDuration(row.Active),
			FirstStart:    row.FirstStart.Format(time.RFC3339),
			Running:       row.Running,
		}
		if !row.LastEnd.IsZero() {
			jr.LastEnd = row.LastEnd.Format(time.RFC3339)
		}
		out = append(out, jr)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Time Report</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.4em 0.8em; text-align: left; }
th { background: #f0f0f0; }
tfoot td { font-weight: bold; }
</style>
</head>
<body>
<h1>Time Report</h1>
<table>
<thead>
<tr><th>Task</th><th>Sessions</th><th>Active</th><th>First Start</th><th>Last End</th></tr>
</thead>
<tbody>
{{range .Rows}}<tr><td>{{.Label}}{{if .Running}} (running){{end}}</td><td>{{.Sessions}}</td><td>{{.Active}}</td><td>{{.FirstStart}}</td><td>{{.LastEnd}}</td></tr>
{{end}}</tbody>
<tfoot>
<tr><td colspan="2">Total</td><td colspan="3">{{.Total}}</td></tr>
</tfoot>
</table>
</body>
</html>
`))

// htmlRow carries pre-formatted cells into the HTML template.
type htmlRow struct {
	Label      string
	Sessions   int
	Active     string
	FirstStart string
	LastEnd    string
	Running    bool
}

func renderHTML(w io.Writer, rows []Row, timeFormat string) error {
	data := struct {
		Rows  []htmlRow
		Total string
	}{
		Total: FormatDuration(TotalActive(rows)),
	}
	for _, row := range rows {
		hr := htmlRow{
			Label:      row.Label,
			Sessions:   row.Sessions,
			Active:     FormatDuration(row.Active),
			FirstStart: row.FirstStart.Format(timeFormat),
			Running:    row.Running,
		}
		if !row.LastEnd.IsZero() {
			hr.LastEnd = row.LastEnd.Format(timeFormat)
		}
		data.Rows = append(data.Rows, hr)
	}
	return htmlTemplate.Execute(w, data)
}

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true)
	tableTotalStyle  = lipgloss.NewStyle().Bold(true)
	runningStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func renderTable(w io.Writer, rows []Row, timeFormat string) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No recorded time in the selected range.")
		return err
	}

	header := fmt.Sprintf("%-28s %8s %10s  %-19s %-19s", "TASK", "SESSIONS", "ACTIVE", "FIRST START", "LAST END")
	if _, err := fmt.Fprintln(w, tableHeaderStyle.Render(header)); err != nil {
		return err
	}

	for _, row := range rows {
		label := row.Label
		if row.Running {
			label = runningStyle.Render(label + " *")
		}
		var lastEnd string
		if !row.LastEnd.IsZero() {
			lastEnd = row.LastEnd.Format(timeFormat)
		}
		line := fmt.Sprintf("%-28s %8d %10s  %-19s %-19s",
			label,
			row.Sessions,
			FormatDuration(row.Active),
			row.FirstStart.Format(timeFormat),
			lastEnd,
		)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	total := fmt.Sprintf("%-28s %8s %10s", "TOTAL", "", FormatDuration(TotalActive(rows)))
	_, err := fmt.Fprintln(w, tableTotalStyle.Render(total))
	return err
}
