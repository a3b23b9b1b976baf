package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-factory/internal/core"
	"github.com/vovakirdan/tui-factory/internal/games/factory/levels"
	"github.com/vovakirdan/tui-factory/internal/storage"
)

// LevelMenuModel is the level picker shown before a factory game.
type LevelMenuModel struct {
	levels       levels.Set
	best         []int
	cursor       int
	width        int
	height       int
	keyMapper    *KeyMapper
	selected     string
	quitting     bool
	scoreboard   bool
	scrollOffset int
	theme        Theme
}

// NewLevelMenuModel creates a level picker. High scores are read from store
// when it is not nil.
func NewLevelMenuModel(set levels.Set, store *storage.Store, width, height int) LevelMenuModel {
	best := make([]int, set.Len())
	if store != nil {
		for i, id := range set.IDs() {
			if hs, err := store.HighScore(LevelScoreKey(id)); err == nil {
				best[i] = hs
			}
		}
	}

	return LevelMenuModel{
		levels:    set,
		best:      best,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		theme:     CurrentTheme(),
	}
}

// LevelScoreKey is the score key of a factory level, as registry.ScoreKey
// builds it for a running game.
func LevelScoreKey(levelID string) string {
	return "factory/" + levelID
}

// Init initializes the model.
func (m LevelMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateScroll()
		return m, nil
	}
	return m, nil
}

func (m LevelMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}
	case MenuActionDown:
		if m.cursor < m.levels.Len()-1 {
			m.cursor++
			m.updateScroll()
		}
	case MenuActionSelect:
		if m.levels.Len() > 0 {
			m.selected = m.levels.At(m.cursor).ID
			return m, tea.Quit
		}
	case MenuActionScoreboard:
		m.scoreboard = true
		return m, tea.Quit
	}
	return m, nil
}

func (m LevelMenuModel) visibleItems() int {
	return core.Max(m.height-10, 3) // header and footer
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *LevelMenuModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the level selection.
func (m LevelMenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("F A C T O R Y"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.MenuDescription.Render("Deliver products divisible by the level's number"), m.width))
	b.WriteString("\n\n")

	if m.levels.Len() == 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("No levels configured"), m.width))
		b.WriteString("\n")
	}

	end := core.Min(m.scrollOffset+m.visibleItems(), m.levels.Len())
	if m.scrollOffset > 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	for i := m.scrollOffset; i < end; i++ {
		cursor := "  "
		style := m.theme.MenuItemNormal
		if i == m.cursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}
		line := style.Render(cursor + m.levels.At(i).Title())
		if m.best[i] > 0 {
			line += m.theme.MenuBest.Render(fmt.Sprintf("  best %d", m.best[i]))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	if end < m.levels.Len() {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := m.theme.HUDControls.Render("Up/Down: Navigate  |  Enter: Play  |  Tab: Scores  |  Q: Quit")
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen level ID, or "" while still choosing.
func (m LevelMenuModel) Selected() string {
	return m.selected
}

// IsQuitting returns true if user wants to quit.
func (m LevelMenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user asked for the scoreboard.
func (m LevelMenuModel) WantsScoreboard() bool {
	return m.scoreboard
}

// centerText centers text within given width, measuring printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// LevelMenuResult holds the result of running the level picker.
type LevelMenuResult struct {
	LevelID         string
	WantsScoreboard bool
	Quit            bool
}

// RunLevelMenu runs the level picker.
func RunLevelMenu(set levels.Set, store *storage.Store, cfg core.RuntimeConfig) (LevelMenuResult, error) {
	p := tea.NewProgram(
		NewLevelMenuModel(set, store, cfg.ScreenW, cfg.ScreenH),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return LevelMenuResult{}, err
	}
	m, ok := final.(LevelMenuModel)
	if !ok {
		return LevelMenuResult{Quit: true}, nil
	}
	switch {
	case m.WantsScoreboard():
		return LevelMenuResult{WantsScoreboard: true}, nil
	case m.Selected() != "":
		return LevelMenuResult{LevelID: m.Selected()}, nil
	}
	return LevelMenuResult{Quit: true}, nil
}
