package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-factory/internal/games/factory/levels"
	"github.com/vovakirdan/tui-factory/internal/platform/tui"
	"github.com/vovakirdan/tui-factory/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show high scores",
	Long: `Display high scores. With a level, shows its top scores and its best
recorded runs; without one, a summary line per level.

Examples:
  factory scores
  factory scores 3a
  factory scores 3a --limit 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries to show")
}

func runScores(cmd *cobra.Command, args []string) error {
	set, err := loadLevels()
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		return printSummary(out, store, set)
	}

	level, err := set.Get(args[0])
	if err != nil {
		return err
	}
	return printLevel(out, store, level)
}

func printSummary(out io.Writer, store *storage.Store, set levels.Set) error {
	fmt.Fprintln(out, "High Scores")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-4s  %-16s  %-6s  %-5s  %-7s  %s\n", "ID", "Name", "Best", "Games", "Average", "Last played")
	fmt.Fprintf(out, "  %-4s  %-16s  %-6s  %-5s  %-7s  %s\n", "--", "----", "----", "-----", "-------", "-----------")

	for i := 0; i < set.Len(); i++ {
		l := set.At(i)
		stats, err := store.GetGameStats(tui.LevelScoreKey(l.ID))
		if err != nil {
			return err
		}
		last := "-"
		if !stats.LastPlayed.IsZero() {
			last = stats.LastPlayed.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(out, "  %-4s  %-16s  %-6d  %-5d  %-7.1f  %s\n",
			l.ID, l.Name, stats.HighScore, stats.GamesCount, stats.AvgScore, last)
	}
	return nil
}

func printLevel(out io.Writer, store *storage.Store, level levels.Level) error {
	key := tui.LevelScoreKey(level.ID)
	scores, err := store.TopScores(key, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "High Scores - %s\n", level.Title())
	fmt.Fprintln(out)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintf(out, "Play 'factory play %s' to set the first high score!\n", level.ID)
	} else {
		fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
		fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "----", "-----", "----")
		for i, entry := range scores {
			fmt.Fprintf(out, "  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	runs, err := store.TopRuns(level.ID, flagScoresLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		return nil
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Recorded runs")
	fmt.Fprintf(out, "  %-5s  %-6s  %-9s  %-8s  %-16s  %s\n", "Run", "Score", "Delivered", "Seed", "Hash", "Date")
	for _, r := range runs {
		fmt.Fprintf(out, "  %-5d  %-6d  %-9d  %-8d  %-16s  %s\n",
			r.ID, r.Score, r.Delivered, r.Seed, r.Hash, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Replay a run with 'factory replay --run <id>'.")
	return nil
}
