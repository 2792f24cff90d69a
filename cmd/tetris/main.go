// tetris is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	tetris                   - Play (same as "tetris play")
//	tetris play              - Play a game
//	tetris scores            - Show the run history
//	tetris serve             - Start SSH server for remote play
//
// Global flags:
//
//	--config <path> - Set config file (default: ~/.tetris/config.yaml)
//	--db <path>     - Set database path (default: ~/.tetris/scores.db)
//	--log-file <path> - Write debug logs to a file
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig  string
	flagDBPath  string
	flagLogFile string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris - falling blocks in your terminal",
	Long: `Tetris is a terminal falling-block puzzle game with a lock delay,
wall kicks and a 7-piece bag.

Available commands:
  play     - Play a game (default)
  scores   - View the run history
  serve    - Start SSH server for remote play

Examples:
  tetris
  tetris play --no-color
  tetris scores --plain
  tetris serve --ssh :2222 --http :8080`,
	Run: runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write debug logs to this file")

	bindPlayFlags(rootCmd.Flags())
	bindPlayFlags(playCmd.Flags())

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
