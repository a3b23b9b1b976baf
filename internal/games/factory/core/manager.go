package core

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"strconv"
)

// GameInfo is the read-only view handed to players and renderers.
type GameInfo interface {
	Config() Config
	LevelInfo() string
	LayeredCell(pos Position) LayeredCell
	Foreground(pos Position) (Foreground, bool)
	IsScoredProduct(n int) bool
	Score() int
	EndTime() int
	ElapsedTime() int
	IsGameOver() bool
}

// TickResult reports what one Update did.
type TickResult struct {
	Tick      int
	Polled    bool         // the player was asked for an action this tick
	Action    PlayerAction // ActionNone unless Polled
	Applied   bool         // the action changed the board
	Delivered []int        // products that reached the collection center
	Scored    int          // how many of Delivered were divisible by the common divisor
	Score     int
	GameOver  bool
}

// Manager owns the board and drives the game clock.
type Manager struct {
	cfg     Config
	board   *Board
	player  Player
	elapsed int
	score   int
	history []PlayerAction
	current *TickResult
}

var _ GameInfo = (*Manager)(nil)
var _ ProductSink = (*Manager)(nil)

// NewManager validates cfg, seeds the terrain, places the collection center
// and the walls. A nil player is treated as IdlePlayer.
func NewManager(cfg Config, player Player) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if player == nil {
		player = IdlePlayer{}
	}
	cfg.ResourceNumbers = append([]int(nil), cfg.ResourceNumbers...)

	m := &Manager{
		cfg:    cfg,
		board:  NewBoard(cfg),
		player: player,
	}

	resources := streamRNG(cfg.Seed, "background")
	for row := 0; row < cfg.BoardHeight; row++ {
		for col := 0; col < cfg.BoardWidth; col++ {
			if n := resources.Intn(cfg.ResourceRange); cfg.isResourceNumber(n) {
				m.board.SetBackground(P(row, col), NumberCell{Number: n})
			}
		}
	}

	if !m.board.BuildCollectionCenter(cfg.CollectorTopLeft(), m) {
		return nil, fmt.Errorf("core: cannot place collection center at %s", cfg.CollectorTopLeft())
	}

	walls := streamRNG(cfg.Seed, "walls")
	for i := 0; i < cfg.NumberOfWalls; i++ {
		pos := P(walls.Intn(cfg.BoardHeight), walls.Intn(cfg.BoardWidth))
		if !m.board.GetLayeredCell(pos).HasForeground() {
			m.board.BuildWall(pos)
		}
	}
	return m, nil
}

// streamRNG derives an independent generator per concern so that changing
// how one concern draws numbers leaves the others untouched. The background
// stream uses the seed as is.
func streamRNG(seed int64, name string) *rand.Rand {
	if name == "background" {
		return rand.New(rand.NewSource(seed))
	}
	h := fnv.New64a()
	h.Write([]byte(name))
	return rand.New(rand.NewSource(seed ^ int64(h.Sum64())))
}

// Board exposes the board for callers that drive it directly.
func (m *Manager) Board() *Board { return m.board }

func (m *Manager) Config() Config {
	c := m.cfg
	c.ResourceNumbers = append([]int(nil), m.cfg.ResourceNumbers...)
	return c
}

// LevelInfo returns the scoring rule, the common divisor in parentheses.
func (m *Manager) LevelInfo() string {
	return "(" + strconv.Itoa(m.cfg.CommonDivisor) + ")"
}

func (m *Manager) LayeredCell(pos Position) LayeredCell {
	return m.board.GetLayeredCell(pos)
}

func (m *Manager) Foreground(pos Position) (Foreground, bool) {
	return m.board.Foreground(pos)
}

// IsScoredProduct reports whether delivering n increases the score.
func (m *Manager) IsScoredProduct(n int) bool {
	return n%m.cfg.CommonDivisor == 0
}

func (m *Manager) Score() int { return m.score }

func (m *Manager) EndTime() int { return m.cfg.EndTime }

func (m *Manager) ElapsedTime() int { return m.elapsed }

func (m *Manager) IsGameOver() bool { return m.elapsed >= m.cfg.EndTime }

// History returns the non-None actions the player issued, in order.
func (m *Manager) History() []PlayerAction {
	return append([]PlayerAction(nil), m.history...)
}

// OnProductReceived scores a delivered product.
func (m *Manager) OnProductReceived(n int) {
	if n == 0 {
		panic("core: zero product delivered")
	}
	scored := m.IsScoredProduct(n)
	if scored {
		m.score++
	}
	if m.current != nil {
		m.current.Delivered = append(m.current.Delivered, n)
		if scored {
			m.current.Scored++
		}
	}
}

// Apply performs an action immediately, outside the polling schedule.
// It reports whether the board changed.
func (m *Manager) Apply(a PlayerAction) bool {
	if a.Type == ActionClear {
		return m.board.Remove(a.Pos)
	}
	kind, dir, ok := a.Type.Build()
	if !ok {
		return false
	}
	switch kind {
	case KindMiningMachine:
		return m.board.BuildMiningMachine(a.Pos, dir)
	case KindConveyor:
		return m.board.BuildConveyor(a.Pos, dir)
	case KindCombiner:
		return m.board.BuildCombiner(a.Pos, dir)
	}
	return false
}

// Update advances the game by one tick. Once the end time is reached it
// does nothing and reports GameOver.
func (m *Manager) Update() TickResult {
	if m.IsGameOver() {
		return TickResult{Tick: m.elapsed, Score: m.score, GameOver: true}
	}
	m.elapsed++
	res := TickResult{Tick: m.elapsed, Action: PlayerAction{Type: ActionNone}}
	m.current = &res
	defer func() { m.current = nil }()

	if m.elapsed%m.cfg.ActionInterval == 0 {
		res.Polled = true
		res.Action = m.player.NextAction(m)
		if res.Action.Type != ActionNone {
			m.history = append(m.history, res.Action)
			res.Applied = m.Apply(res.Action)
		}
	}
	m.board.Update()

	res.Score = m.score
	res.GameOver = m.IsGameOver()
	return res
}
