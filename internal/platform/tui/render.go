package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-factory/internal/core"
)

// ansiPalette maps core colors onto 256-color terminal codes.
var ansiPalette = map[core.Color]string{
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

func colorBoardStyles() map[core.Color]lipgloss.Style {
	styles := map[core.Color]lipgloss.Style{core.ColorDefault: lipgloss.NewStyle()}
	for c, code := range ansiPalette {
		styles[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(code))
	}
	return styles
}

// monoBoardStyles keeps red and bright colors distinguishable by weight
// alone: the cursor is bold, scored numbers bright.
func monoBoardStyles() map[core.Color]lipgloss.Style {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	normal := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	bright := lipgloss.NewStyle().Foreground(lipgloss.Color("255"))

	styles := map[core.Color]lipgloss.Style{core.ColorDefault: lipgloss.NewStyle()}
	for c := range ansiPalette {
		styles[c] = normal
	}
	styles[core.ColorGray] = dim
	styles[core.ColorBrightGreen] = bright
	styles[core.ColorBrightYellow] = bright
	styles[core.ColorBrightWhite] = bright
	styles[core.ColorBrightRed] = bright.Bold(true)
	return styles
}

// RenderScreen converts a Screen buffer to a string styled with the
// current theme.
func RenderScreen(s *core.Screen) string {
	return CurrentTheme().RenderScreen(s)
}

// RenderScreen converts a Screen buffer to a styled string.
// Adjacent cells with the same color share one style run.
func (t Theme) RenderScreen(s *core.Screen) string {
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
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}
			sb.WriteString(t.boardStyle(color).Render(run.String()))
		}
	}
	return sb.String()
}

func (t Theme) boardStyle(c core.Color) lipgloss.Style {
	if style, ok := t.Board[c]; ok {
		return style
	}
	return lipgloss.NewStyle()
}
