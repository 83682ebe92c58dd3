package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"timetrack/internal/api"
	"timetrack/internal/domain"
	"timetrack/internal/report"
)

var (
	stateRunningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	statePausedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	stateIdleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("8"))
	labelStyle        = lipgloss.NewStyle().Bold(true)
)

func stateStyle(state domain.State) lipgloss.Style {
	switch state {
	case domain.StateRunning:
		return stateRunningStyle
	case domain.StatePaused:
		return statePausedStyle
	default:
		return stateIdleStyle
	}
}

// renderStatus writes the current session state for the status command.
func renderStatus(w io.Writer, status *api.Status, timeFormat string) {
	fmt.Fprintf(w, "State: %s\n", stateStyle(status.State).Render(string(status.State)))
	if status.Record != nil {
		fmt.Fprintf(w, "Task:  %s\n", labelStyle.Render(status.Record.TaskLabel))
		fmt.Fprintf(w, "Since: %s\n", status.Record.StartTime.Format(timeFormat))
		fmt.Fprintf(w, "Active: %s\n", report.FormatDuration(status.Active))
	}
	fmt.Fprintf(w, "Today: %s\n", report.FormatDuration(status.ActiveToday))
}
