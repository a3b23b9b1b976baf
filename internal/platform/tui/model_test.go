package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-factory/internal/core"
	"github.com/vovakirdan/tui-factory/internal/storage"
)

// stubGame records what the model feeds it.
type stubGame struct {
	resets  int
	lastCfg core.RuntimeConfig
	frames  []core.InputFrame
	state   core.GameState
	endAt   int // steps until game over, 0 never
	score   int
}

func (g *stubGame) ID() string            { return "factory" }
func (g *stubGame) Title() string         { return "Stub" }
func (g *stubGame) LevelID() string       { return "1a" }
func (g *stubGame) State() core.GameState { return g.state }

func (g *stubGame) Reset(cfg core.RuntimeConfig) {
	g.resets++
	g.lastCfg = cfg
	g.frames = nil
	g.state = core.GameState{}
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	// The model reuses its frame, so keep a copy.
	frame := core.NewInputFrame()
	for a, on := range in.Actions {
		if on {
			frame.Set(a)
		}
	}
	g.frames = append(g.frames, frame)
	if in.Has(core.ActionPause) {
		g.state.Paused = !g.state.Paused
	}
	if g.endAt > 0 && len(g.frames) >= g.endAt {
		g.state.GameOver = true
		g.state.Score = g.score
	}
	return core.StepResult{State: g.state}
}

func (g *stubGame) Render(s *core.Screen) {
	s.DrawText(0, 0, "stub board")
}

func tick() tea.Msg { return TickMsg(time.Now()) }

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestModelInitResetsWithGameArea(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30})

	if m.Init() == nil {
		t.Error("Init() should schedule a tick")
	}
	if g.resets != 1 {
		t.Fatalf("resets = %d, want 1", g.resets)
	}
	if g.lastCfg.ScreenH != 24-helpRows || g.lastCfg.ScreenW != 80 {
		t.Errorf("reset with %dx%d, want 80x%d", g.lastCfg.ScreenW, g.lastCfg.ScreenH, 24-helpRows)
	}
}

func TestModelKeysReachNextStep(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, core.DefaultConfig())
	m.Init()

	m, _ = update(t, m, runeKey('d'))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd := update(t, m, tick())
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}

	if len(g.frames) != 1 {
		t.Fatalf("steps = %d, want 1", len(g.frames))
	}
	in := g.frames[0]
	if idx, ok := in.Tool(); !ok || idx != 4 || !in.Has(core.ActionConfirm) {
		t.Errorf("frame = %+v, want tool 4 with confirm", in)
	}

	update(t, m, tick())
	if g.frames[1].Has(core.ActionConfirm) {
		t.Error("input frame was not cleared after the step")
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, core.DefaultConfig())
	m.Init()

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if g.resets != 1 {
		t.Errorf("resize reset the game (%d resets)", g.resets)
	}
	if m.screen.Width() != 120 || m.screen.Height() != 40-helpRows {
		t.Errorf("screen = %dx%d, want 120x%d", m.screen.Width(), m.screen.Height(), 40-helpRows)
	}
}

func TestModelBackOnlyWhenStopped(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, core.DefaultConfig())
	m.Init()

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() || cmd != nil {
		t.Fatal("back accepted while the game runs")
	}

	m, _ = update(t, m, runeKey('p'))
	m, _ = update(t, m, tick())
	if !m.GameState().Paused {
		t.Fatal("game did not pause")
	}

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() || cmd == nil {
		t.Error("back ignored while paused")
	}
	if m.IsQuitting() {
		t.Error("back should not count as quitting")
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(&stubGame{}, nil, core.DefaultConfig())
	m.Init()

	m, cmd := update(t, m, runeKey('q'))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q did not quit")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestModelSavesScoreOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	g := &stubGame{endAt: 2, score: 42}
	m := NewModel(g, store, core.DefaultConfig())
	m.Init()

	for i := 0; i < 4; i++ {
		m, _ = update(t, m, tick())
	}
	if !m.GameState().GameOver {
		t.Fatal("game should be over")
	}

	scores, err := store.AllScores("factory/1a")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 42 {
		t.Errorf("scores = %+v, want one entry of 42", scores)
	}
}

func TestModelViewIncludesHelp(t *testing.T) {
	m := NewModel(&stubGame{}, nil, core.DefaultConfig())
	m.Init()

	view := m.View()
	if !strings.Contains(view, "stub board") {
		t.Error("View() misses the game screen")
	}
	if !strings.Contains(view, "quit") {
		t.Error("View() misses the help bar")
	}

	m, _ = update(t, m, runeKey('?'))
	if m.screen.Height() >= 24-helpRows {
		t.Errorf("full help should shrink the game area, height %d", m.screen.Height())
	}
}
