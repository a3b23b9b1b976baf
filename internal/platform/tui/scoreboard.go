package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-factory/internal/games/factory/levels"
	"github.com/vovakirdan/tui-factory/internal/storage"
)

const (
	minWidthForSidebar = 80 // narrower screens get tabs instead
	sidebarWidth       = 24
	maxEntries         = 100 // rows loaded per level
)

// boardView selects what the scoreboard table lists.
type boardView int

const (
	viewScores boardView = iota // interactive high scores
	viewRuns                    // recorded runs with seed and hash
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
	Toggle    key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextLevel, k.PrevLevel, k.Toggle, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextLevel, k.PrevLevel},
		{k.Toggle, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NextLevel: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/tab", "next level")),
		PrevLevel: key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev level")),
		Toggle:    key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "scores/runs")),
		Back:      key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// scoreTab is one level on the scoreboard.
type scoreTab struct {
	LevelID string
	Title   string
}

// ScoreboardModel lists the best scores and recorded runs of each level.
type ScoreboardModel struct {
	tabs   []scoreTab
	active int
	view   boardView
	store  *storage.Store

	stats *storage.GameStats
	rows  []table.Row

	table  table.Model
	keys   ScoreboardKeyMap
	help   help.Model
	theme  Theme
	width  int
	height int

	goingBack bool
	quitting  bool
}

// NewScoreboardModel creates a scoreboard with one tab per level. A nil
// store shows empty tables.
func NewScoreboardModel(store *storage.Store, set levels.Set, width, height int) ScoreboardModel {
	tabs := make([]scoreTab, 0, set.Len())
	for i := 0; i < set.Len(); i++ {
		l := set.At(i)
		tabs = append(tabs, scoreTab{LevelID: l.ID, Title: l.ID + " " + l.Name})
	}

	h := help.New()
	h.Width = width

	m := ScoreboardModel{
		tabs:   tabs,
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		theme:  CurrentTheme(),
		width:  width,
		height: height,
	}
	m.reload()
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= minWidthForSidebar
}

// reload fetches the active level's entries and rebuilds the table.
func (m *ScoreboardModel) reload() {
	m.stats = nil
	m.rows = nil
	if m.store != nil && len(m.tabs) > 0 {
		levelID := m.tabs[m.active].LevelID
		if stats, err := m.store.GetGameStats(LevelScoreKey(levelID)); err == nil {
			m.stats = stats
		}
		switch m.view {
		case viewScores:
			m.rows = m.scoreRows(levelID)
		case viewRuns:
			m.rows = m.runRows(levelID)
		}
	}
	m.table = m.newTable()
}

func (m *ScoreboardModel) scoreRows(levelID string) []table.Row {
	scores, err := m.store.TopScores(LevelScoreKey(levelID), maxEntries)
	if err != nil {
		return nil
	}
	rows := make([]table.Row, len(scores))
	for i, s := range scores {
		rows[i] = table.Row{fmt.Sprintf("#%d", i+1), fmt.Sprint(s.Score), s.CreatedAt.Format("Jan 02 15:04")}
	}
	return rows
}

func (m *ScoreboardModel) runRows(levelID string) []table.Row {
	runs, err := m.store.TopRuns(levelID, maxEntries)
	if err != nil {
		return nil
	}
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		hash := r.Hash
		if len(hash) > 8 {
			hash = hash[:8]
		}
		rows[i] = table.Row{
			fmt.Sprint(r.ID), fmt.Sprint(r.Score), fmt.Sprint(r.Delivered),
			fmt.Sprint(r.Seed), hash, r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

func (m ScoreboardModel) columns() []table.Column {
	if m.view == viewRuns {
		return []table.Column{
			{Title: "Run", Width: 5},
			{Title: "Score", Width: 7},
			{Title: "Delivered", Width: 9},
			{Title: "Seed", Width: 8},
			{Title: "Hash", Width: 8},
			{Title: "Date", Width: 12},
		}
	}
	return []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 12},
		{Title: "Date", Width: 20},
	}
}

func (m ScoreboardModel) newTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithRows(m.rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // title, stats, help and borders
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextLevel):
			m.selectTab(m.active + 1)
			return m, nil
		case key.Matches(msg, m.keys.PrevLevel):
			m.selectTab(m.active - 1)
			return m, nil
		case key.Matches(msg, m.keys.Toggle):
			m.view = 1 - m.view
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// selectTab moves to tab i, wrapping around.
func (m *ScoreboardModel) selectTab(i int) {
	if len(m.tabs) == 0 {
		return
	}
	m.active = (i%len(m.tabs) + len(m.tabs)) % len(m.tabs)
	m.reload()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	heading := "HIGH SCORES"
	if m.view == viewRuns {
		heading = "RECORDED RUNS"
	}
	if len(m.tabs) > 0 {
		heading += " - " + m.tabs[m.active].Title
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render(heading), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuDescription.Render(m.statsLine()), m.width))
	b.WriteString("\n\n")

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	body := panel.Render(m.tableContent())

	if m.wide() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panel.Width(sidebarWidth).Render(m.levelList()), "  ", body))
	} else {
		b.WriteString(centerText(m.levelTabs(), m.width))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body))
	}

	b.WriteString("\n")
	b.WriteString(m.theme.HUDControls.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) statsLine() string {
	s := m.stats
	if s == nil || s.GamesCount == 0 {
		return "no games played"
	}
	return fmt.Sprintf("%d games | best %d | average %.1f | last played %s",
		s.GamesCount, s.HighScore, s.AvgScore, s.LastPlayed.Format("Jan 02 15:04"))
}

func (m ScoreboardModel) levelList() string {
	var b strings.Builder
	b.WriteString("Levels\n")
	b.WriteString(strings.Repeat("-", sidebarWidth-4))
	for i, t := range m.tabs {
		b.WriteString("\n")
		name := truncate(t.Title, sidebarWidth-6)
		if i == m.active {
			b.WriteString(m.theme.MenuItemActive.Render("> " + name))
		} else {
			b.WriteString(m.theme.MenuItemNormal.Render("  " + name))
		}
	}
	return b.String()
}

// levelTabs shows level IDs in a row, or just the active one between
// arrows when they do not fit.
func (m ScoreboardModel) levelTabs() string {
	if len(m.tabs) == 0 {
		return ""
	}
	tabs := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		if i == m.active {
			tabs[i] = m.theme.MenuItemActive.Render("[" + t.LevelID + "]")
		} else {
			tabs[i] = m.theme.MenuItemNormal.Render(" " + t.LevelID + " ")
		}
	}
	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 {
		return fmt.Sprintf("< %s >", m.tabs[m.active].Title)
	}
	return line
}

func (m ScoreboardModel) tableContent() string {
	if len(m.rows) > 0 {
		return m.table.View()
	}
	msg := "No scores recorded yet.\nPlay this level to set a high score!"
	if m.view == viewRuns {
		msg = "No recorded runs.\nUse 'factory run' to record one."
	}
	return m.theme.MenuDescription.Italic(true).Padding(2, 4).Render(msg)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "."
}

// IsGoingBack returns true if user wants to go back to the level menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, set levels.Set, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(store, set, width, height),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
