// Package headless drives a factory level to game over without a terminal
// UI: for scripted runs, replays, spectating and recording.
package headless

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-factory/internal/eventlog"
	"github.com/vovakirdan/tui-factory/internal/games/factory/core"
	"github.com/vovakirdan/tui-factory/internal/games/factory/levels"
	"github.com/vovakirdan/tui-factory/internal/storage"
)

// Publisher receives board snapshots while the run progresses.
type Publisher interface {
	Publish(core.Snapshot) error
}

// Options configures a run.
type Options struct {
	Level levels.Level // see levels.Level.WithSeed for seed overrides

	// Actions are played one per action poll, in order. Nil plays idle.
	Actions []core.PlayerAction

	// TickRate paces the run in ticks per second; 0 runs flat out.
	TickRate int

	Events       *eventlog.Writer // optional per-tick log
	Publisher    Publisher        // optional snapshot sink
	PublishEvery int              // ticks between snapshots, default 1

	Logger *log.Logger
}

// Result summarizes a finished (or cancelled) run.
type Result struct {
	LevelID   string
	Seed      int64 // seed actually used
	Score     int
	Ticks     int
	Delivered int
	Scored    int
	Hash      uint64
	History   []core.PlayerAction
	Board     string // ASCII dump of the final board
}

// Run plays opts.Level until game over or until ctx is done. A cancelled
// run still returns the result reached so far together with ctx.Err().
func Run(ctx context.Context, opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	every := opts.PublishEvery
	if every <= 0 {
		every = 1
	}

	manager, err := opts.Level.NewManager(core.NewQueuePlayer(opts.Actions...))
	if err != nil {
		return Result{}, fmt.Errorf("headless: start level %s: %w", opts.Level.ID, err)
	}

	res := Result{LevelID: opts.Level.ID, Seed: manager.Config().Seed}
	logger.Info("run started",
		"level", opts.Level.ID,
		"seed", res.Seed,
		"divisor", opts.Level.Divisor,
		"actions", len(opts.Actions),
		"end", manager.EndTime(),
	)
	publish(opts.Publisher, manager, logger)

	var tick <-chan time.Time
	if opts.TickRate > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(opts.TickRate))
		defer ticker.Stop()
		tick = ticker.C
	}

	var runErr error
	for !manager.IsGameOver() {
		if tick != nil {
			select {
			case <-ctx.Done():
				runErr = ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			runErr = err
		}
		if runErr != nil {
			break
		}

		tr := manager.Update()
		res.Delivered += len(tr.Delivered)
		res.Scored += tr.Scored
		if len(tr.Delivered) > 0 {
			logger.Debug("delivered", "tick", tr.Tick, "products", tr.Delivered, "score", tr.Score)
		}
		if tr.Polled && tr.Action.Type != core.ActionNone && !tr.Applied {
			logger.Debug("action rejected", "tick", tr.Tick, "action", tr.Action)
		}

		if opts.Events != nil {
			if err := opts.Events.WriteTick(tr); err != nil {
				runErr = err
				break
			}
		}
		if tr.Tick%every == 0 || tr.GameOver {
			publish(opts.Publisher, manager, logger)
		}
	}

	res.Score = manager.Score()
	res.Ticks = manager.ElapsedTime()
	res.Hash = core.NewSnapshot(manager).Hash()
	res.History = manager.History()
	res.Board = core.RenderASCII(manager)

	logger.Info("run finished",
		"level", res.LevelID,
		"score", res.Score,
		"ticks", res.Ticks,
		"delivered", res.Delivered,
		"hash", res.HashString(),
	)
	return res, runErr
}

func publish(p Publisher, manager *core.Manager, logger *log.Logger) {
	if p == nil {
		return
	}
	if err := p.Publish(core.NewSnapshot(manager)); err != nil {
		logger.Warn("publish snapshot", "error", err)
	}
}

// StorageRun converts the result into a storage record.
func (r Result) StorageRun() (storage.Run, error) {
	var buf bytes.Buffer
	if err := core.WriteActionLog(&buf, r.History); err != nil {
		return storage.Run{}, fmt.Errorf("headless: encode actions: %w", err)
	}
	return storage.Run{
		LevelID:   r.LevelID,
		Seed:      r.Seed,
		Score:     r.Score,
		Ticks:     r.Ticks,
		Delivered: r.Delivered,
		Actions:   buf.String(),
		Hash:      r.HashString(),
	}, nil
}

// HashString formats the final board hash as fixed-width hex.
func (r Result) HashString() string {
	return fmt.Sprintf("%016x", r.Hash)
}
