// Package eventlog records a factory run as zstd-compressed JSON lines,
// one entry per simulation tick.
package eventlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/vovakirdan/tui-factory/internal/games/factory/core"
)

// Entry is one logged tick.
type Entry struct {
	Level     string `json:"level"`
	Tick      int    `json:"tick"`
	Polled    bool   `json:"polled,omitempty"`
	Row       int    `json:"row,omitempty"`
	Col       int    `json:"col,omitempty"`
	Action    string `json:"action,omitempty"`
	Applied   bool   `json:"applied,omitempty"`
	Delivered []int  `json:"delivered,omitempty"`
	Scored    int    `json:"scored,omitempty"`
	Score     int    `json:"score"`
	GameOver  bool   `json:"game_over,omitempty"`
}

// NewEntry converts a tick report into a log entry.
func NewEntry(level string, r core.TickResult) Entry {
	e := Entry{
		Level:     level,
		Tick:      r.Tick,
		Polled:    r.Polled,
		Applied:   r.Applied,
		Delivered: r.Delivered,
		Scored:    r.Scored,
		Score:     r.Score,
		GameOver:  r.GameOver,
	}
	if r.Action.Type != core.ActionNone {
		e.Row = r.Action.Pos.Row
		e.Col = r.Action.Pos.Col
		e.Action = r.Action.Type.String()
	}
	return e
}

// Writer appends entries to a zstd stream. It is safe for concurrent use.
type Writer struct {
	level string

	mu  sync.Mutex
	f   *os.File // nil when wrapping a caller's writer
	enc *zstd.Encoder
	w   *bufio.Writer
}

// Create opens path for writing, creating parent directories.
func Create(path, level string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("eventlog: create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("eventlog: create %s: %w", path, err)
	}
	w, err := NewWriter(f, level)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	w.f = f
	return w, nil
}

// NewWriter compresses entries into dst. Close flushes but leaves dst open.
func NewWriter(dst io.Writer, level string) (*Writer, error) {
	enc, err := zstd.NewWriter(dst, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("eventlog: zstd encoder: %w", err)
	}
	return &Writer{
		level: level,
		enc:   enc,
		w:     bufio.NewWriterSize(enc, 64*1024),
	}, nil
}

// WriteTick logs one tick report.
func (w *Writer) WriteTick(r core.TickResult) error {
	return w.Write(NewEntry(w.level, r))
}

// Write logs one entry.
func (w *Writer) Write(e Entry) error {
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("eventlog: encode tick %d: %w", e.Tick, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.w == nil {
		return fmt.Errorf("eventlog: write after close")
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

// Close flushes the stream and closes the file opened by Create.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.w == nil {
		return nil
	}

	err := w.w.Flush()
	if cerr := w.enc.Close(); err == nil {
		err = cerr
	}
	if w.f != nil {
		if cerr := w.f.Close(); err == nil {
			err = cerr
		}
		w.f = nil
	}
	w.w = nil
	return err
}

// ReadAll decodes every entry from a zstd JSONL stream.
func ReadAll(src io.Reader) ([]Entry, error) {
	dec, err := zstd.NewReader(src)
	if err != nil {
		return nil, fmt.Errorf("eventlog: zstd decoder: %w", err)
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)

	var entries []Entry
	for line := 1; sc.Scan(); line++ {
		if len(sc.Bytes()) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			return nil, fmt.Errorf("eventlog: line %d: %w", line, err)
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("eventlog: read: %w", err)
	}
	return entries, nil
}

// ReadFile decodes the log at path.
func ReadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("eventlog: open %s: %w", path, err)
	}
	defer f.Close()
	return ReadAll(f)
}
