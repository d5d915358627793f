package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/raincatch/internal/sim/collision"
)

// DiagnosticsRows formats collision metrics as metric/value rows.
func DiagnosticsRows(m collision.Metrics, frame uint64) []table.Row {
	return []table.Row{
		{"Frame", fmt.Sprintf("%d", frame)},
		{"Passes", fmt.Sprintf("%d", m.Frames)},
		{"Collisions", fmt.Sprintf("%d", m.Collisions)},
		{"Last pass collisions", fmt.Sprintf("%d", m.LastFrameCollisions)},
		{"Errors", fmt.Sprintf("%d", m.Errors)},
		{"Last pass errors", fmt.Sprintf("%d", m.LastFrameErrors)},
		{"Skipped pairs", fmt.Sprintf("%d", m.SkippedPairs)},
		{"Budget aborts", fmt.Sprintf("%d", m.BudgetAborts)},
		{"Evicted", fmt.Sprintf("%d", m.Evicted)},
		{"Open breakers", fmt.Sprintf("%d", m.OpenBreakers)},
		{"Last pass", formatDuration(m.LastFrame)},
		{"Average pass", formatDuration(m.AverageFrame())},
		{"Worst pass", formatDuration(m.WorstFrame)},
	}
}

// NewDiagnosticsTable creates a read-only table of collision metrics.
func NewDiagnosticsTable(m collision.Metrics, frame uint64) table.Model {
	rows := DiagnosticsRows(m, frame)
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Metric", Width: 22},
			{Title: "Value", Width: 12},
		}),
		table.WithRows(rows),
		table.WithHeight(len(rows)+2), // header and its border
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	// Unfocused: no row is highlighted.
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)
	return t
}

// formatDuration prints a pass duration with microsecond resolution.
func formatDuration(d time.Duration) string {
	return d.Round(time.Microsecond).String()
}

// renderPausePanel renders the pause overlay: a title, the diagnostics
// table when available, and a help line.
func renderPausePanel(title string, diag *table.Model, helpLine string) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	panelStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		MarginTop(1)

	parts := []string{titleStyle.Render(title)}
	if diag != nil {
		parts = append(parts, diag.View())
	} else {
		parts = append(parts, lipgloss.NewStyle().Italic(true).Render("No diagnostics for this scene."))
	}
	parts = append(parts, helpStyle.Render(helpLine))
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Center, parts...))
}
