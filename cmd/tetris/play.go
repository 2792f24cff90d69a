package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/user"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/highscore"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// playFlags are shared by the root command and "play".
type playFlags struct {
	noColor         bool
	inverseRotation bool
	noHighScore     bool
	resetHighScore  bool
	seed            int64
}

var flagPlay playFlags

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game on the current terminal.

Controls:
  Left/Right, h/l  - Move
  Up, x, k         - Rotate clockwise
  z                - Rotate counter-clockwise
  Down, j          - Soft drop
  Space            - Hard drop
  P                - Pause
  R/Enter          - Restart (after game over)
  Q/Esc/Ctrl+C     - Quit

Examples:
  tetris play
  tetris play --no-color --inverse-rotation
  tetris play --reset-highscore
  tetris play --seed 42 --config ./my-tetris.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func bindPlayFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&flagPlay.noColor, "no-color", false, "Render without colors")
	fs.BoolVar(&flagPlay.inverseRotation, "inverse-rotation", false, "Swap the clockwise and counter-clockwise keys")
	fs.BoolVar(&flagPlay.noHighScore, "no-highscore", false, "Do not write the high score on exit")
	fs.BoolVar(&flagPlay.resetHighScore, "reset-highscore", false, "Start with a high score of 0")
	fs.Int64Var(&flagPlay.seed, "seed", 0, "RNG seed (0 = random based on time)")
}

func runPlay(cmd *cobra.Command, _ []string) {
	if err := play(cmd.Context(), flagPlay); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func play(ctx context.Context, flags playFlags) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	logger, closeLog, err := newFileLogger(flagLogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	highScore := startingHighScore(cfg.Paths.HighScore, flags.resetHighScore, logger)

	store, err := storage.Open(dbPath(cfg))
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	rc := runtimeConfig(flags)
	game := tui.NewGame(cfg.Timing.Timing(), rc, highScore)
	rec := tui.Recorder{Store: store, Player: playerName(), Logger: logger}

	final := tetris.Result{HighScore: highScore}
	err = tui.Run(ctx, game, tui.SessionOptions{
		Keys:       tui.NewKeyMap(cfg.Keys, rc.InverseRotation),
		UseColor:   rc.UseColor,
		OnGameOver: rec.GameOver,
		OnExit: func(res tetris.Result) {
			final = res
			rec.Exit(res)
		},
	})
	saveHighScore(cfg.Paths.HighScore, final.HighScore, flags.noHighScore, logger)
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	logger.Info("session finished", "score", final.Score, "high", final.HighScore, "lines", final.Lines)
	return nil
}

// saveHighScore writes the high score unless disabled. Write failures
// are logged and otherwise ignored.
func saveHighScore(path string, score int, disabled bool, logger *log.Logger) {
	if disabled {
		return
	}
	if err := highscore.Save(path, score); err != nil {
		logger.Debug("could not save high score", "error", err)
	}
}

// startingHighScore loads the persisted high score. Read failures count
// as no prior score.
func startingHighScore(path string, reset bool, logger *log.Logger) int {
	if reset {
		return 0
	}
	score, err := highscore.Load(path)
	if err != nil {
		logger.Debug("could not read high score", "error", err)
		return 0
	}
	return score
}

func runtimeConfig(flags playFlags) core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	rc.Seed = flags.seed
	rc.UseColor = !flags.noColor
	rc.InverseRotation = flags.inverseRotation
	return rc
}

func dbPath(cfg config.Config) string {
	if flagDBPath != "" {
		return flagDBPath
	}
	return cfg.Paths.Database
}

func playerName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}

// newFileLogger returns a logger writing to path, or a silent one when
// path is empty. The game owns the terminal, so logs never go there.
func newFileLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "tetris",
		Level:           log.DebugLevel,
	})
	return logger, func() { _ = f.Close() }, nil
}
