// Package factory provides the interactive factory game for the terminal
// platform: a cursor, a tool palette and a queued player feeding the engine.
package factory

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	platformcore "github.com/vovakirdan/tui-factory/internal/core"
	"github.com/vovakirdan/tui-factory/internal/games/factory/core"
	"github.com/vovakirdan/tui-factory/internal/games/factory/levels"
	"github.com/vovakirdan/tui-factory/internal/registry"
)

// Tool is one palette entry: the key that selects it and the action it queues.
type Tool struct {
	Key    string
	Label  string
	Action core.ActionType
}

// Palette is indexed by platformcore.Action.ToolIndex.
var Palette = []Tool{
	{"j", "Miner <", core.ActionBuildLeftOutMiningMachine},
	{"i", "Miner ^", core.ActionBuildTopOutMiningMachine},
	{"l", "Miner >", core.ActionBuildRightOutMiningMachine},
	{"k", "Miner v", core.ActionBuildBottomOutMiningMachine},
	{"d", "Belt >", core.ActionBuildLeftToRightConveyor},
	{"s", "Belt v", core.ActionBuildTopToBottomConveyor},
	{"a", "Belt <", core.ActionBuildRightToLeftConveyor},
	{"w", "Belt ^", core.ActionBuildBottomToTopConveyor},
	{"1", "Combiner ^", core.ActionBuildTopOutCombiner},
	{"2", "Combiner >", core.ActionBuildRightOutCombiner},
	{"3", "Combiner v", core.ActionBuildBottomOutCombiner},
	{"4", "Combiner <", core.ActionBuildLeftOutCombiner},
	{"x", "Clear", core.ActionClear},
}

// Game implements registry.Game for the factory.
type Game struct {
	levels  levels.Set
	loadErr error
	levelID string
	level   levels.Level
	manager *core.Manager
	player  *core.QueuePlayer

	cursor    core.Position
	tool      int
	status    string
	delivered int

	screenW  int
	screenH  int
	paused   bool
	tooSmall bool
	seed     *int64
}

// Package-level settings, applied on the next Reset.
var (
	selectedLevel string
	configPath    string
	actionLogPath string
)

// SetLevel selects the level for games created afterwards. Empty selects
// the first level.
func SetLevel(id string) {
	selectedLevel = id
}

// SetConfigPath sets a custom configuration file.
func SetConfigPath(path string) {
	configPath = path
}

// SetActionLogPath sets where F4 writes the action log. Empty picks a
// timestamped file under ~/.factory/logs.
func SetActionLogPath(path string) {
	actionLogPath = path
}

func init() {
	registry.Register("factory", func() registry.Game {
		return New()
	})
}

// New creates a factory game that loads its levels on Reset.
func New() *Game {
	return &Game{levelID: selectedLevel}
}

func newWithLevels(set levels.Set) *Game {
	return &Game{levels: set, levelID: selectedLevel}
}

// SelectLevel picks the level played from the next Reset on.
func (g *Game) SelectLevel(id string) {
	g.levelID = id
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "factory"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Factory"
}

// LevelID returns the level being played.
func (g *Game) LevelID() string {
	return g.level.ID
}

// Reset loads the selected level and starts a new game.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.seed = cfg.Seed
	g.paused = false
	g.status = ""
	g.delivered = 0
	g.loadErr = nil

	if g.levels.Len() == 0 {
		set, err := levels.Load(configPath)
		if err != nil {
			g.loadErr = err
			return
		}
		g.levels = set
	}

	level, err := g.levels.Get(g.levelID)
	if err != nil {
		g.loadErr = err
		return
	}
	g.level = level
	g.player = core.NewQueuePlayer()
	if g.seed != nil {
		level = level.WithSeed(*g.seed)
	}
	g.manager, err = level.NewManager(g.player)
	if err != nil {
		g.loadErr = err
		return
	}

	eng := g.manager.Config()
	g.cursor = core.P(eng.BoardHeight/2, eng.BoardWidth/2-eng.GoalSize)
	g.tool = 4
	g.updateLayout()
}

// Manager exposes the running engine, nil before a successful Reset.
func (g *Game) Manager() *core.Manager {
	return g.manager
}

// Step applies input and advances the engine by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if g.manager == nil {
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionRestart) && g.manager.IsGameOver() {
		g.Reset(platformcore.RuntimeConfig{ScreenW: g.screenW, ScreenH: g.screenH, Seed: g.seed})
		return platformcore.StepResult{State: g.State()}
	}
	if in.Has(platformcore.ActionPause) {
		g.paused = !g.paused
	}
	if in.Has(platformcore.ActionSave) {
		g.saveActionLog()
	}

	if idx, ok := in.Tool(); ok {
		g.tool = idx
	}
	g.moveCursor(in)

	if in.Has(platformcore.ActionConfirm) && !g.manager.IsGameOver() {
		action := core.PlayerAction{Pos: g.cursor, Type: Palette[g.tool].Action}
		g.player.Enqueue(action)
		g.status = "queued " + Palette[g.tool].Label + " at " + g.cursor.String()
	}

	if !g.paused && !g.tooSmall && !g.manager.IsGameOver() {
		res := g.manager.Update()
		g.delivered += len(res.Delivered)
	}
	return platformcore.StepResult{State: g.State()}
}

func (g *Game) moveCursor(in platformcore.InputFrame) {
	eng := g.manager.Config()
	row, col := g.cursor.Row, g.cursor.Col
	if in.Has(platformcore.ActionUp) {
		row--
	}
	if in.Has(platformcore.ActionDown) {
		row++
	}
	if in.Has(platformcore.ActionLeft) {
		col--
	}
	if in.Has(platformcore.ActionRight) {
		col++
	}
	g.cursor = core.P(
		platformcore.Clamp(row, 0, eng.BoardHeight-1),
		platformcore.Clamp(col, 0, eng.BoardWidth-1),
	)
}

func (g *Game) saveActionLog() {
	path := actionLogPath
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			g.status = "save failed: " + err.Error()
			return
		}
		name := fmt.Sprintf("factory_%s_%s.txt", g.level.ID, time.Now().Format("20060102_150405"))
		path = filepath.Join(home, ".factory", "logs", name)
	}
	if err := WriteActionLogFile(path, g.manager.History()); err != nil {
		g.status = "save failed: " + err.Error()
		return
	}
	g.status = "saved " + path
}

// WriteActionLogFile writes actions to path, creating parent directories.
func WriteActionLogFile(path string, actions []core.PlayerAction) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("factory: create log directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("factory: create action log: %w", err)
	}
	if err := core.WriteActionLog(f, actions); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadActionLogFile reads an action log written by WriteActionLogFile.
func ReadActionLogFile(path string) ([]core.PlayerAction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("factory: open action log: %w", err)
	}
	defer f.Close()
	return core.ReadActionLog(f)
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	if g.manager == nil {
		return platformcore.GameState{GameOver: g.loadErr != nil}
	}
	return platformcore.GameState{
		Score:    g.manager.Score(),
		GameOver: g.manager.IsGameOver(),
		Paused:   g.paused,
	}
}
