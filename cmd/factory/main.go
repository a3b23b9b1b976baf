// factory is a terminal factory-building game: place miners, conveyors and
// combiners to deliver products to the collection center before time runs out.
//
// Usage:
//
//	factory list                 - List levels
//	factory play [level]         - Play interactively (level menu without an argument)
//	factory run --level <id>     - Run a level headless, optionally replaying an action log
//	factory replay <log>         - Replay an action log and print the final score
//	factory scores [level]       - Show high scores and recorded runs
//	factory serve                - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>    - Factory YAML config (levels, board, timings)
//	--db <path>        - Database path (default: ~/.factory/scores.db)
//	--seed <value>     - Override the level seed
//	--fps <rate>       - Tick rate (default: 30)
//	--log-level <lvl>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-factory/internal/core"
	"github.com/vovakirdan/tui-factory/internal/games/factory"
	"github.com/vovakirdan/tui-factory/internal/games/factory/levels"
	"github.com/vovakirdan/tui-factory/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagSeed     int64
	flagSeedSet  bool
	flagFPS      int
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "factory",
	Short: "Factory - build production lines in your terminal",
	Long: `Factory is a terminal game about production lines. Mining machines
extract numbers from resource tiles, conveyors carry them, combiners add
them together, and the collection center scores every product divisible
by the level's number.

Examples:
  factory list
  factory play 3a
  factory run --level 4a --replay moves.txt --events run.jsonl.zst
  factory replay moves.txt --level 4a --board
  factory scores 3a
  factory serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		factory.SetConfigPath(flagConfig)
		flagSeedSet = cmd.Flags().Changed("seed")
		if flagFPS <= 0 {
			return fmt.Errorf("--fps must be positive, got %d", flagFPS)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to factory config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.factory/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (default: the level's own seed)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", core.DefaultTickRate, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the stderr logger at the requested level.
func newLogger(prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// seedOverride returns the --seed value when the flag was given.
func seedOverride() *int64 {
	if !flagSeedSet {
		return nil
	}
	seed := flagSeed
	return &seed
}

// applySeed plays level with --seed when the flag was given.
func applySeed(level levels.Level) levels.Level {
	if seed := seedOverride(); seed != nil {
		return level.WithSeed(*seed)
	}
	return level
}

func loadLevels() (levels.Set, error) {
	set, err := levels.Load(flagConfig)
	if err != nil {
		return levels.Set{}, err
	}
	if set.Len() == 0 {
		return levels.Set{}, fmt.Errorf("no levels configured")
	}
	return set, nil
}

// openStore opens the scores database, returning nil with a warning when
// it cannot be opened so play can continue without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}
