package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gridshooter/internal/core"
)

// ansi maps core.Color to 256-color palette indices.
var ansi = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// cellStyle returns the lipgloss style for a cell color.
func cellStyle(c core.Color) lipgloss.Style {
	code, ok := ansi[c]
	if !ok {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(code))
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells of one color share a single styled run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color
			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			if color == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(cellStyle(color).Render(run.String()))
		}
	}
	return sb.String()
}
