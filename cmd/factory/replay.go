package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-factory/internal/eventlog"
	"github.com/vovakirdan/tui-factory/internal/games/factory"
	"github.com/vovakirdan/tui-factory/internal/games/factory/core"
	"github.com/vovakirdan/tui-factory/internal/headless"
	"github.com/vovakirdan/tui-factory/internal/storage"
)

var (
	flagReplayLevel  string
	flagReplayBoard  bool
	flagReplayRunID  int64
	flagReplayEvents string
)

var replayCmd = &cobra.Command{
	Use:   "replay [log]",
	Short: "Replay an action log",
	Long: `Feed an action log through a level, one action per poll, and print
the final score and board hash. The log is the "row col code" text that F4
saves in the game and 'run --save-log' writes.

A recorded run can be replayed by ID instead of a file; its level, seed and
actions come from the database and the final hash is checked.

A zstd event log (from 'run --events') can be summarized with --events.

Examples:
  factory replay moves.txt --level 3a
  factory replay moves.txt --level 3a --board
  factory replay --run 12
  factory replay --events run.jsonl.zst`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&flagReplayLevel, "level", "", "Level ID (default: first level)")
	replayCmd.Flags().BoolVar(&flagReplayBoard, "board", false, "Print the final board")
	replayCmd.Flags().Int64Var(&flagReplayRunID, "run", 0, "Replay a recorded run by ID")
	replayCmd.Flags().StringVar(&flagReplayEvents, "events", "", "Summarize a zstd event log instead")
}

func runReplay(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if flagReplayEvents != "" {
		return summarizeEvents(cmd, flagReplayEvents)
	}

	logger, err := newLogger("factory-replay")
	if err != nil {
		return err
	}
	set, err := loadLevels()
	if err != nil {
		return err
	}

	opts := headless.Options{Logger: logger}
	levelID := flagReplayLevel
	seed := seedOverride()
	var want string

	switch {
	case flagReplayRunID != 0:
		run, err := loadRun(flagReplayRunID)
		if err != nil {
			return err
		}
		actions, err := core.ReadActionLog(strings.NewReader(run.Actions))
		if err != nil {
			return err
		}
		levelID, opts.Actions, want = run.LevelID, actions, run.Hash
		seed = &run.Seed
	case len(args) == 1:
		if opts.Actions, err = factory.ReadActionLogFile(args[0]); err != nil {
			return err
		}
	default:
		return fmt.Errorf("replay needs an action log, --run or --events")
	}

	if opts.Level, err = set.Get(levelID); err != nil {
		return err
	}
	if seed != nil {
		opts.Level = opts.Level.WithSeed(*seed)
	}

	res, err := headless.Run(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if flagReplayBoard {
		fmt.Fprint(out, res.Board)
	}
	fmt.Fprintf(out, "Level %s  seed %d  actions %d  score %d  delivered %d  hash %s\n",
		res.LevelID, res.Seed, len(opts.Actions), res.Score, res.Delivered, res.HashString())

	if want != "" && want != res.HashString() {
		return fmt.Errorf("replay diverged: recorded hash %s, got %s", want, res.HashString())
	}
	return nil
}

func loadRun(id int64) (*storage.Run, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	run, err := store.RunByID(id)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, fmt.Errorf("no recorded run %d", id)
	}
	return run, nil
}

func summarizeEvents(cmd *cobra.Command, path string) error {
	entries, err := eventlog.ReadFile(path)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("%s: empty event log", path)
	}

	var polls, applied, rejected, delivered int
	for _, e := range entries {
		if e.Polled {
			polls++
		}
		if e.Action != "" {
			if e.Applied {
				applied++
			} else {
				rejected++
			}
		}
		delivered += len(e.Delivered)
	}
	last := entries[len(entries)-1]

	fmt.Fprintf(cmd.OutOrStdout(),
		"Level %s  ticks %d  polls %d  applied %d  rejected %d  delivered %d  score %d  game over %v\n",
		last.Level, last.Tick, polls, applied, rejected, delivered, last.Score, last.GameOver)
	return nil
}
