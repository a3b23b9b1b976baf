package eventlog

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-factory/internal/games/factory/core"
)

func runGame(t *testing.T, w *Writer) *core.Manager {
	t.Helper()
	cfg := core.DefaultConfig()
	cfg.BoardWidth = 10
	cfg.BoardHeight = 10
	cfg.NumberOfWalls = 0
	cfg.EndTime = 30
	cfg.Seed = 3

	player := core.NewQueuePlayer(core.PlayerAction{Pos: core.P(0, 0), Type: core.ActionBuildLeftToRightConveyor})
	m, err := core.NewManager(cfg, player)
	require.NoError(t, err)

	for !m.IsGameOver() {
		require.NoError(t, w.WriteTick(m.Update()))
	}
	return m
}

func TestRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, "1a")
	require.NoError(t, err)

	m := runGame(t, w)
	require.NoError(t, w.Close())

	entries, err := ReadAll(&buf)
	require.NoError(t, err)
	require.Len(t, entries, 30)

	first := entries[0]
	assert.Equal(t, "1a", first.Level)
	assert.Equal(t, 1, first.Tick)
	assert.False(t, first.Polled)

	build := entries[2]
	assert.True(t, build.Polled)
	assert.True(t, build.Applied)
	assert.Equal(t, "BuildLeftToRightConveyor", build.Action)
	assert.Equal(t, 0, build.Row)
	assert.Equal(t, 0, build.Col)

	assert.True(t, entries[5].Polled)
	assert.Empty(t, entries[5].Action, "an empty queue polls None")

	last := entries[len(entries)-1]
	assert.True(t, last.GameOver)
	assert.Equal(t, m.Score(), last.Score)
}

func TestCreateAndReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs", "events.jsonl.zst")
	w, err := Create(path, "2a")
	require.NoError(t, err)

	runGame(t, w)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "a second Close is a no-op")

	entries, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, entries, 30)
	assert.Error(t, w.Write(Entry{Tick: 99}))
}

func TestNewEntryDeliveries(t *testing.T) {
	e := NewEntry("4a", core.TickResult{Tick: 7, Delivered: []int{4, 3}, Scored: 1, Score: 5})
	assert.Equal(t, []int{4, 3}, e.Delivered)
	assert.Equal(t, 1, e.Scored)
	assert.Empty(t, e.Action)
}

func TestReadAllRejectsGarbage(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, "x")
	require.NoError(t, err)
	_, err = w.w.WriteString("{not json\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = ReadAll(&buf)
	assert.ErrorContains(t, err, "line 1")
}
