package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-factory/internal/core"
)

// Theme contains the lipgloss styles for the factory's menus, help bar and
// board cells.
type Theme struct {
	// Board maps the colors games draw with to terminal styles.
	Board map[core.Color]lipgloss.Style

	// Level picker styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
	MenuBest        lipgloss.Style

	// Help bar under the board
	HUDControls lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Board:           colorBoardStyles(),
		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true), // Amber
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		MenuBest:        lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		HUDControls:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// MonochromeTheme returns a grayscale theme.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.Board = monoBoardStyles()
	theme.MenuTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.MenuItemActive = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.MenuBest = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	return theme
}

// Global theme variable (can be changed at runtime)
var currentTheme = DefaultTheme()

// SetTheme sets the global theme.
func SetTheme(theme Theme) {
	currentTheme = theme
}

// CurrentTheme returns the current global theme.
func CurrentTheme() Theme {
	return currentTheme
}

// ThemeByName returns a named theme: "default" or "mono".
func ThemeByName(name string) (Theme, bool) {
	switch name {
	case "", "default":
		return DefaultTheme(), true
	case "mono", "monochrome":
		return MonochromeTheme(), true
	}
	return Theme{}, false
}
