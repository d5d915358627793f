package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/raincatch/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:    lipgloss.NewStyle(),
	core.ColorRed:        lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:      lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:     lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:       lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:    lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:       lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:      lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightBlue: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightCyan: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorOrange:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells of one color share a single style run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color

			var run strings.Builder
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}

			style, ok := colorStyles[color]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
