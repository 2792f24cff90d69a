package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.tetris/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	Timing tetris.Timing
	Keys   config.KeysConfig
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		Timing:      tetris.DefaultTiming(),
		Keys:        config.Default().Keys,
	}
}

// SSHServer wraps a Wish SSH server. Each session gets its own engine;
// the run history is shared.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server. store may be nil, in which case
// games are not recorded.
func NewSSHServer(cfg SSHServerConfig, store *storage.Store, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "tetris-ssh",
		})
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".tetris", "host_key")
	}

	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
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
		UseColor: true,
	}

	model := NewSessionModel(sshSession.Context(), s, cfg, sshSession.User())

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		started := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(started).Round(time.Second),
		)
	}
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionState is the screen an SSH session is on.
type sessionState int

const (
	stateMenu sessionState = iota
	stateGame
	stateScores
)

// SessionModel manages the full session flow: menu -> game -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	ctx       context.Context
	srv       *SSHServer
	config    core.RuntimeConfig
	username  string
	sessionID string
	logger    *log.Logger

	state      sessionState
	menu       MenuModel
	game       Model
	stopGame   context.CancelFunc
	scoreboard ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(ctx context.Context, srv *SSHServer, cfg core.RuntimeConfig, username string) SessionModel {
	sessionID := uuid.NewString()
	m := SessionModel{
		ctx:       ctx,
		srv:       srv,
		config:    cfg,
		username:  username,
		sessionID: sessionID,
		logger:    srv.logger.With("session", sessionID[:8], "user", username),
	}
	m.menu = m.newMenu()
	return m
}

func (m SessionModel) newMenu() MenuModel {
	return NewMenuModel(m.username, m.bestScore(), m.config.ScreenW, m.config.ScreenH)
}

func (m SessionModel) bestScore() int {
	if m.srv.store == nil {
		return 0
	}
	best, err := m.srv.store.BestScore()
	if err != nil {
		m.logger.Warn("could not read best score", "error", err)
		return 0
	}
	return best
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

	switch m.state {
	case stateGame:
		return m.updateGame(msg)
	case stateScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch m.menu.Selected() {
	case MenuQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuPlay:
		return m.startGame()
	case MenuScores:
		var loader RunLoader
		if m.srv.store != nil {
			loader = m.srv.store
		}
		m.scoreboard = NewScoreboardModel(loader, m.config.ScreenW, m.config.ScreenH)
		m.scoreboard.embedded = true
		m.state = stateScores
		return m, m.scoreboard.Init()
	}
	return m, cmd
}

// startGame launches a fresh engine for this session.
func (m SessionModel) startGame() (tea.Model, tea.Cmd) {
	rec := Recorder{Store: m.srv.store, Player: m.username, Logger: m.logger}
	game := NewGame(m.srv.config.Timing, m.config, m.bestScore())

	ctx, cancel := context.WithCancel(m.ctx)
	session := NewSession(game, SessionOptions{
		Keys:       NewKeyMap(m.srv.config.Keys, m.config.InverseRotation),
		UseColor:   m.config.UseColor,
		OnGameOver: rec.GameOver,
		OnExit:     rec.Exit,
	})
	session.Start(ctx)
	m.logger.Debug("game started")

	m.game = session.EmbeddedModel()
	m.stopGame = cancel
	m.state = stateGame

	// Replay the window size so the game can center itself.
	size := tea.WindowSizeMsg{Width: m.config.ScreenW, Height: m.config.ScreenH}
	m.game, _ = updateModel(m.game, size)
	return m, m.game.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.game, cmd = updateModel(m.game, msg)

	if m.game.Done() {
		m.stopGame()
		m.stopGame = nil
		m.state = stateMenu
		m.menu = m.newMenu()
		return m, m.menu.Init()
	}
	return m, cmd
}

// updateScores handles updates when the scoreboard is open.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newBoard, cmd := m.scoreboard.Update(msg)
	if board, ok := newBoard.(ScoreboardModel); ok {
		m.scoreboard = board
	}

	if m.scoreboard.Closed() {
		m.state = stateMenu
		m.menu = m.newMenu()
		return m, m.menu.Init()
	}
	return m, cmd
}

func updateModel(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	if gm, ok := next.(Model); ok {
		return gm, cmd
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case stateGame:
		return m.game.View()
	case stateScores:
		return m.scoreboard.View()
	}
	return m.menu.View()
}
