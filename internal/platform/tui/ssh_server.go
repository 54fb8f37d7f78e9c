package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/voidrun/internal/core"
	"github.com/vovakirdan/voidrun/internal/storage"
)

// SSHServerConfig configures the multi-player SSH front door.
type SSHServerConfig struct {
	Address     string        // listen address, ":23234" by default
	HostKeyPath string        // generated on first start; empty means ~/.voidrun/host_key
	DBPath      string        // profile database shared by all sessions
	IdleTimeout time.Duration // idle connections are dropped after this
	TickRate    int           // simulation frames per second per session
	MaxSessions int           // 0 allows any number of sessions
}

// DefaultSSHServerConfig returns the settings used by `voidrun serve`.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.voidrun/voidrun.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
	}
}

// SSHServer runs an independent VOIDRUN session per connection. The SSH
// user name picks the stored profile, so the same name resumes progress.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store // nil when the database could not be opened
	logger *log.Logger
	active atomic.Int32
}

// NewSSHServer prepares the server without listening. Without a usable
// database sessions still play but nothing is saved.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "voidrun-ssh"})
	}

	keyPath, err := resolveHostKey(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	srv := &SSHServer{config: cfg, logger: logger}
	if srv.store, err = storage.Open(cfg.DBPath); err != nil {
		logger.Warn("profile database unavailable, sessions will not be saved", "path", cfg.DBPath, "error", err)
		srv.store = nil
	}

	srv.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		// Listed innermost first: logging wraps the gate, the gate wraps play.
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.limitMiddleware,
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		if srv.store != nil {
			srv.store.Close()
		}
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}
	return srv, nil
}

// resolveHostKey returns the host key location and makes sure its directory exists.
func resolveHostKey(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("tui: cannot locate home directory for host key: %w", err)
		}
		path = filepath.Join(home, ".voidrun", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("tui: cannot create host key directory: %w", err)
	}
	return path, nil
}

// sessionConfig sizes a session to the client's terminal. Every session gets
// its own seed.
func (s *SSHServer) sessionConfig(pty ssh.Pty) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}
}

func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("client did not request a PTY", "user", sess.User())
		return nil, nil
	}
	model := NewSessionModel(s.store, s.sessionConfig(pty), sess.User(), s.logger.With("user", sess.User()))
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		began := time.Now()
		l := s.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		l.Info("player connected", "active", s.ActiveSessions())
		next(sess)
		l.Info("player left", "played", time.Since(began).Round(time.Second))
	}
}

// limitMiddleware turns players away once MaxSessions are connected.
func (s *SSHServer) limitMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		n := s.active.Add(1)
		defer s.active.Add(-1)

		if limit := s.config.MaxSessions; limit > 0 && int(n) > limit {
			s.logger.Warn("server full, turning player away", "user", sess.User(), "limit", limit)
			wish.Fatalln(sess, "voidrun: server is full, try again later")
			return
		}
		next(sess)
	}
}

// ActiveSessions returns the number of connected sessions.
func (s *SSHServer) ActiveSessions() int {
	return int(s.active.Load())
}

// ListenAndServe blocks until the listener fails, ctx ends, or the process
// is interrupted.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("voidrun arena open", "address", s.config.Address, "max_sessions", s.config.MaxSessions)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		s.logger.Error("listener failed", "error", err)
		_ = s.Shutdown()
		return err
	case <-ctx.Done():
		s.logger.Info("closing arena", "active", s.ActiveSessions())
		return s.Shutdown()
	}
}

// Shutdown waits up to ten seconds for sessions to end, then releases the
// database.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if s.store != nil {
		if cerr := s.store.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("tui: closing profile database: %w", cerr)
		}
	}
	return err
}

func (s *SSHServer) Addr() string { return s.config.Address }
