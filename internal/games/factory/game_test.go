package factory

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-factory/internal/config"
	platformcore "github.com/vovakirdan/tui-factory/internal/core"
	"github.com/vovakirdan/tui-factory/internal/games/factory/core"
	"github.com/vovakirdan/tui-factory/internal/games/factory/levels"
)

func testGame(t *testing.T) *Game {
	t.Helper()
	cfg := config.DefaultFactoryConfig()
	cfg.Board.Width = 12
	cfg.Board.Height = 10
	cfg.Board.Walls = 0
	cfg.Game.EndTime = 60
	cfg.Game.ActionInterval = 3
	cfg.Levels = []config.LevelConfig{{ID: "t", Name: "Test", CommonDivisor: 1, Seed: 5}}

	g := newWithLevels(levels.FromConfig(cfg))
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30})
	if g.Manager() == nil {
		t.Fatalf("Reset() failed: %v", g.loadErr)
	}
	return g
}

func frame(actions ...platformcore.Action) platformcore.InputFrame {
	f := platformcore.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestPaletteMatchesActionCodes(t *testing.T) {
	if len(Palette) != 13 {
		t.Fatalf("palette has %d tools, expected 13", len(Palette))
	}
	for i, tool := range Palette {
		if tool.Action != core.ActionType(i+1) {
			t.Errorf("Palette[%d] queues %v, expected code %d", i, tool.Action, i+1)
		}
	}
}

func TestResetStartsLevel(t *testing.T) {
	g := testGame(t)

	if g.LevelID() != "t" {
		t.Errorf("LevelID() = %q, expected t", g.LevelID())
	}
	if g.cursor != core.P(5, 2) {
		t.Errorf("cursor = %v, expected (5,2)", g.cursor)
	}
	state := g.State()
	if state.Score != 0 || state.GameOver || state.Paused {
		t.Errorf("unexpected initial state %+v", state)
	}
}

func TestConfirmQueuesBuild(t *testing.T) {
	g := testGame(t)

	g.Step(frame(platformcore.ActionToolConveyorRight, platformcore.ActionConfirm))
	for i := 0; i < 3; i++ {
		g.Step(frame())
	}

	f, ok := g.Manager().Foreground(core.P(5, 2))
	if !ok {
		t.Fatal("expected a conveyor under the cursor")
	}
	if f.Kind() != core.KindConveyor || f.Direction() != core.DirRight {
		t.Errorf("built %v facing %v, expected conveyor facing right", f.Kind(), f.Direction())
	}
	if len(g.Manager().History()) != 1 {
		t.Errorf("history has %d actions, expected 1", len(g.Manager().History()))
	}
}

func TestCursorClampsToBoard(t *testing.T) {
	g := testGame(t)

	for i := 0; i < 20; i++ {
		g.Step(frame(platformcore.ActionUp, platformcore.ActionLeft))
	}
	if g.cursor != core.P(0, 0) {
		t.Errorf("cursor = %v, expected (0,0)", g.cursor)
	}
	for i := 0; i < 20; i++ {
		g.Step(frame(platformcore.ActionDown, platformcore.ActionRight))
	}
	if g.cursor != core.P(9, 11) {
		t.Errorf("cursor = %v, expected (9,11)", g.cursor)
	}
}

func TestPauseStopsClock(t *testing.T) {
	g := testGame(t)

	g.Step(frame(platformcore.ActionPause))
	if !g.State().Paused {
		t.Fatal("expected paused")
	}
	for i := 0; i < 5; i++ {
		g.Step(frame())
	}
	if g.Manager().ElapsedTime() != 0 {
		t.Errorf("clock advanced to %d while paused", g.Manager().ElapsedTime())
	}

	g.Step(frame(platformcore.ActionPause))
	if g.Manager().ElapsedTime() != 1 {
		t.Errorf("ElapsedTime() = %d after unpausing, expected 1", g.Manager().ElapsedTime())
	}
}

func TestGameOverAndRestart(t *testing.T) {
	g := testGame(t)

	for i := 0; i < 60; i++ {
		g.Step(frame())
	}
	if !g.State().GameOver {
		t.Fatal("expected game over at end time")
	}
	g.Step(frame())
	if g.Manager().ElapsedTime() != 60 {
		t.Errorf("clock moved past end time: %d", g.Manager().ElapsedTime())
	}

	g.Step(frame(platformcore.ActionRestart))
	if g.State().GameOver || g.Manager().ElapsedTime() != 0 {
		t.Error("restart should start a fresh game")
	}
}

func TestSaveActionLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "run.txt")
	SetActionLogPath(path)
	t.Cleanup(func() { SetActionLogPath("") })

	g := testGame(t)
	g.Step(frame(platformcore.ActionToolCombinerTop, platformcore.ActionConfirm))
	g.Step(frame())
	g.Step(frame())
	g.Step(frame(platformcore.ActionSave))

	actions, err := ReadActionLogFile(path)
	if err != nil {
		t.Fatalf("ReadActionLogFile() failed: %v", err)
	}
	expected := core.PlayerAction{Pos: core.P(5, 2), Type: core.ActionBuildTopOutCombiner}
	if len(actions) != 1 || actions[0] != expected {
		t.Errorf("saved %v, expected [%v]", actions, expected)
	}
	if !strings.HasPrefix(g.status, "saved ") {
		t.Errorf("status = %q", g.status)
	}
}

func TestRender(t *testing.T) {
	g := testGame(t)
	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)

	hud := screen.Row(0)
	if !strings.Contains(hud, "Factory") || !strings.Contains(hud, "Score: 0") {
		t.Errorf("HUD row = %q", hud)
	}
	if !strings.Contains(screen.Row(1), "Belt >") {
		t.Errorf("tool bar = %q", screen.Row(1))
	}
	if !strings.Contains(screen.String(), "[]") {
		t.Error("cursor marker not drawn")
	}
	if !strings.Contains(screen.String(), "@") {
		t.Error("collection center not drawn")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := testGame(t)
	screen := platformcore.NewScreen(30, 8)
	g.Render(screen)

	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("expected too-small overlay, got:\n%s", screen.String())
	}
	g.Step(frame())
	if g.Manager().ElapsedTime() != 0 {
		t.Error("clock should not run while the window is too small")
	}
}

func TestResetSeedOverride(t *testing.T) {
	g := testGame(t)
	if g.Manager().Config().Seed != 5 {
		t.Fatalf("seed = %d, expected the level seed 5", g.Manager().Config().Seed)
	}

	zero := int64(0)
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: &zero})
	if g.Manager().Config().Seed != 0 {
		t.Errorf("seed = %d, expected 0", g.Manager().Config().Seed)
	}

	for i := 0; i < 60; i++ {
		g.Step(frame())
	}
	g.Step(frame(platformcore.ActionRestart))
	if g.Manager().Config().Seed != 0 {
		t.Errorf("restart seed = %d, expected the override to stick", g.Manager().Config().Seed)
	}
}
