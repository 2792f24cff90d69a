package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/storage"
	"github.com/vovakirdan/tui-tetris/internal/web"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagHTTPAddr    string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Tetris SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game behind a small lobby menu.
Runs are stored per-server (all users share the same leaderboard).
With --http the leaderboard is also served as JSON.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.tetris/host_key

Examples:
  tetris serve                           # Listen on :23234 with auto-generated key
  tetris serve --ssh :2222               # Listen on port 2222
  tetris serve --http :8080              # Also serve /api/v1 on port 8080
  tetris serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP leaderboard address (disabled if empty)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tetris",
	})

	if err := serve(cmd.Context(), logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func serve(ctx context.Context, logger *log.Logger) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	store, err := storage.Open(dbPath(cfg))
	if err != nil {
		logger.Warn("could not open scores database, runs will not be recorded", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	sshCfg := tui.DefaultSSHServerConfig()
	sshCfg.Address = flagSSHAddr
	sshCfg.HostKeyPath = flagHostKey
	sshCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	sshCfg.Timing = cfg.Timing.Timing()
	sshCfg.Keys = cfg.Keys

	sshServer, err := tui.NewSSHServer(sshCfg, store, logger.WithPrefix("tetris-ssh"))
	if err != nil {
		return fmt.Errorf("creating SSH server: %w", err)
	}

	var httpServer *web.Server
	if flagHTTPAddr != "" {
		if store == nil {
			return fmt.Errorf("--http needs a scores database")
		}
		httpCfg := web.DefaultServerConfig()
		httpCfg.Address = flagHTTPAddr
		httpLogger := logger.WithPrefix("tetris-http")
		httpServer = web.NewServer(web.NewRouter(store, httpLogger), httpCfg, httpLogger)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sshServer.ListenAndServe(ctx)
	})
	if httpServer != nil {
		g.Go(func() error {
			return httpServer.ListenAndServe(ctx)
		})
	}

	logger.Info("connect with", "command", "ssh localhost -p "+portOf(sshCfg.Address))
	return g.Wait()
}

func portOf(addr string) string {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return port
}
