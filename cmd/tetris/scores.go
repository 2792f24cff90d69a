package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagScoresPlain bool
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the run history",
	Long: `Display the best runs recorded in the scores database.

On a terminal an interactive table is shown (Tab switches between the
best and the most recent runs). When output is piped, or with --plain,
a text listing is printed instead.

Examples:
  tetris scores
  tetris scores --plain --limit 5
  tetris scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresPlain, "plain", false, "Print a plain text listing")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to list")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the whole run history")
}

func runScores(_ *cobra.Command, _ []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(dbPath(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Println("Run history cleared.")
		return
	}

	fd := int(os.Stdout.Fd())
	if !flagScoresPlain && term.IsTerminal(fd) {
		width, height := 80, 24
		if w, h, err := term.GetSize(fd); err == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	if err := printScores(os.Stdout, store, flagScoresLimit); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
	}
}

// scoreSource is the part of the store printScores reads.
type scoreSource interface {
	TopRuns(limit int) ([]storage.Run, error)
	Summary() (*storage.Summary, error)
}

func printScores(w io.Writer, store scoreSource, limit int) error {
	runs, err := store.TopRuns(limit)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "High Scores - Tetris")
	fmt.Fprintln(w)

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'tetris' to set the first high score!")
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-10s  %-6s  %-5s  %-12s  %s\n", "Rank", "Score", "Lines", "Level", "Player", "Date")
	fmt.Fprintf(w, "  %-4s  %-10s  %-6s  %-5s  %-12s  %s\n", "----", "-----", "-----", "-----", "------", "----")

	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "-"
		}
		fmt.Fprintf(w, "  %-4d  %-10d  %-6d  %-5d  %-12s  %s\n",
			i+1, r.Score, r.Lines, r.Level, player, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	sum, err := store.Summary()
	if err == nil {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Best: %d  Games: %d  Lines: %d\n", sum.BestScore, sum.Games, sum.TotalLines)
	}
	return nil
}
