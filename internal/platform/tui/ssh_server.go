package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-factory/internal/core"
	"github.com/vovakirdan/tui-factory/internal/games/factory/levels"
	"github.com/vovakirdan/tui-factory/internal/registry"
	"github.com/vovakirdan/tui-factory/internal/storage"
)

// openScores opens the scores database; tests replace it to watch the store.
var openScores = storage.Open

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.factory/host_key.
	HostKeyPath string

	// DBPath is the path to the scores database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// ConfigPath is an optional factory YAML file with the served levels.
	ConfigPath string

	// Logger receives session events. Nil logs to stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.factory/scores.db",
		IdleTimeout: 30 * time.Minute,
	}
}

// levelSelector is implemented by games that play one of several levels.
type levelSelector interface {
	SelectLevel(id string)
}

// SSHServer wraps a Wish SSH server that serves the factory game.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	levels levels.Set
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (_ *SSHServer, err error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "factory-ssh",
		})
	}

	set, err := levels.Load(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("cannot load levels: %w", err)
	}

	// Open storage
	store, openErr := openScores(cfg.DBPath)
	if openErr != nil {
		logger.Warn("could not open scores database", "error", openErr)
		// Continue without storage
		store = nil
	}
	defer func() {
		if err != nil && store != nil {
			store.Close()
		}
	}()

	srv := &SSHServer{
		config: cfg,
		store:  store,
		levels: set,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".factory", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: core.DefaultTickRate,
	}

	model := NewSessionModel(s.levels, s.store, cfg, sshSession.User())
	model.logger = s.logger

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "levels", s.levels.Len())

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
)

// SessionModel manages one SSH session: level menu -> game -> level menu,
// with the scoreboard reachable from the menu.
type SessionModel struct {
	levels   levels.Set
	store    *storage.Store
	config   core.RuntimeConfig
	username string
	logger   *log.Logger

	screen     sessionScreen
	menu       LevelMenuModel
	scores     ScoreboardModel
	game       Model
	generation int // bumped per game so stale ticks are dropped
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(set levels.Set, store *storage.Store, cfg core.RuntimeConfig, username string) SessionModel {
	return SessionModel{
		levels:   set,
		store:    store,
		config:   cfg,
		username: username,
		menu:     NewLevelMenuModel(set, store, cfg.ScreenW, cfg.ScreenH),
	}
}

// sessionTick wraps a game tick with the game generation it belongs to.
type sessionTick struct {
	generation int
	tick       TickMsg
}

func (m SessionModel) wrapTick(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	gen := m.generation
	return func() tea.Msg {
		msg := cmd()
		if t, ok := msg.(TickMsg); ok {
			return sessionTick{generation: gen, tick: t}
		}
		return msg
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(LevelMenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.menu.WantsScoreboard():
		m.scores = NewScoreboardModel(m.store, m.levels, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		return m, m.scores.Init()
	case m.menu.Selected() != "":
		return m.startGame(m.menu.Selected())
	}
	return m, cmd
}

func (m SessionModel) startGame(levelID string) (tea.Model, tea.Cmd) {
	game, err := registry.Create("factory")
	if err != nil {
		if m.logger != nil {
			m.logger.Error("cannot create game", "error", err)
		}
		m.quitting = true
		return m, tea.Quit
	}
	if sel, ok := game.(levelSelector); ok {
		sel.SelectLevel(levelID)
	}
	if m.logger != nil {
		m.logger.Info("game started", "user", m.username, "level", levelID)
	}

	m.generation++
	m.game = NewModel(game, m.store, m.config)
	m.screen = screenGame
	return m, m.wrapTick(m.game.Init())
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	if st, ok := msg.(sessionTick); ok {
		if st.generation != m.generation {
			return m, nil
		}
		msg = st.tick
	}

	next, cmd := m.game.Update(msg)
	if game, ok := next.(Model); ok {
		m.game = game
	}

	switch {
	case m.game.BackToMenu():
		if m.logger != nil {
			m.logger.Info("game finished", "user", m.username,
				"level", registry.ScoreKey(m.game.game), "score", m.game.GameState().Score)
		}
		return m.showMenu()
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	}
	return m, m.wrapTick(cmd)
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if scores, ok := next.(ScoreboardModel); ok {
		m.scores = scores
	}

	switch {
	case m.scores.IsGoingBack():
		return m.showMenu()
	case m.scores.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

// showMenu rebuilds the level menu so fresh high scores are listed.
func (m SessionModel) showMenu() (tea.Model, tea.Cmd) {
	cursor := m.menu.cursor
	m.menu = NewLevelMenuModel(m.levels, m.store, m.config.ScreenW, m.config.ScreenH)
	m.menu.cursor = core.Min(cursor, core.Max(m.levels.Len()-1, 0))
	m.menu.updateScroll()
	m.screen = screenMenu
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	}
	return m.menu.View()
}
