package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-factory/internal/eventlog"
	"github.com/vovakirdan/tui-factory/internal/games/factory"
	"github.com/vovakirdan/tui-factory/internal/games/factory/core"
	"github.com/vovakirdan/tui-factory/internal/headless"
	"github.com/vovakirdan/tui-factory/internal/storage"
	"github.com/vovakirdan/tui-factory/internal/transport/observer"
)

var (
	flagRunLevel       string
	flagRunReplay      string
	flagRunEvents      string
	flagRunObserve     string
	flagRunSaveLog     string
	flagRunRealtime    bool
	flagRunNoRecord    bool
	flagRunPublishN    int
	flagRunAllowRemote bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a level headless",
	Long: `Run a level to the end without a terminal UI. Actions come from an
action log (--replay); without one the level runs idle. The run is recorded
in the scores database with its final board hash.

--observe serves the board to spectators over WebSocket (/ws) and HTTP
(/snapshot) and paces the run at --fps so it can be watched.

Examples:
  factory run --level 1a
  factory run --level 4a --replay moves.txt --events run.jsonl.zst
  factory run --level 2a --observe 127.0.0.1:8080 --fps 60`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagRunLevel, "level", "", "Level ID (default: first level)")
	runCmd.Flags().StringVar(&flagRunReplay, "replay", "", "Action log to play")
	runCmd.Flags().StringVar(&flagRunEvents, "events", "", "Write a zstd JSONL per-tick event log")
	runCmd.Flags().StringVar(&flagRunObserve, "observe", "", "Serve snapshots to spectators on this address")
	runCmd.Flags().StringVar(&flagRunSaveLog, "save-log", "", "Write the applied action history to this file")
	runCmd.Flags().BoolVar(&flagRunRealtime, "realtime", false, "Pace the run at --fps even without --observe")
	runCmd.Flags().BoolVar(&flagRunNoRecord, "no-record", false, "Do not record the run in the database")
	runCmd.Flags().IntVar(&flagRunPublishN, "publish-every", 1, "Ticks between spectator snapshots")
	runCmd.Flags().BoolVar(&flagRunAllowRemote, "allow-remote", false, "Let non-loopback clients fetch /snapshot")
}

func runRun(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger("factory-run")
	if err != nil {
		return err
	}
	set, err := loadLevels()
	if err != nil {
		return err
	}
	level, err := set.Get(flagRunLevel)
	if err != nil {
		return err
	}

	var actions []core.PlayerAction
	if flagRunReplay != "" {
		if actions, err = factory.ReadActionLogFile(flagRunReplay); err != nil {
			return err
		}
	}

	opts := headless.Options{
		Level:        applySeed(level),
		Actions:      actions,
		PublishEvery: flagRunPublishN,
		Logger:       logger,
	}
	if flagRunRealtime || flagRunObserve != "" {
		opts.TickRate = flagFPS
	}

	if flagRunEvents != "" {
		w, err := eventlog.Create(flagRunEvents, level.ID)
		if err != nil {
			return err
		}
		defer w.Close()
		opts.Events = w
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var res headless.Result
	g, gctx := errgroup.WithContext(ctx)
	runCtx, finish := context.WithCancel(gctx)

	if flagRunObserve != "" {
		srv := observer.NewServer(logger)
		srv.AllowRemote = flagRunAllowRemote
		opts.Publisher = srv
		g.Go(func() error {
			return srv.ListenAndServe(runCtx, flagRunObserve)
		})
	}
	g.Go(func() error {
		defer finish()
		var runErr error
		res, runErr = headless.Run(runCtx, opts)
		return runErr
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if opts.Events != nil {
		// flush before reporting; the deferred Close is then a no-op
		if err := opts.Events.Close(); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Level %s  score %d  delivered %d  ticks %d  hash %s\n",
		res.LevelID, res.Score, res.Delivered, res.Ticks, res.HashString())

	if flagRunSaveLog != "" {
		if err := factory.WriteActionLogFile(flagRunSaveLog, res.History); err != nil {
			return err
		}
	}
	if res.Ticks < level.Engine.EndTime {
		logger.Warn("run interrupted, not recorded", "ticks", res.Ticks)
		return nil
	}
	if !flagRunNoRecord {
		return recordRun(res, logger)
	}
	return nil
}

func recordRun(res headless.Result, logger *log.Logger) error {
	run, err := res.StorageRun()
	if err != nil {
		return err
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.SaveRun(run)
	if err != nil {
		return err
	}
	logger.Info("run recorded", "id", id, "level", res.LevelID)
	return nil
}
