package core_test

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-factory/internal/games/factory/core"
)

func TestRenderASCII(t *testing.T) {
	cfg := smallConfig()
	cfg.ResourceNumbers = []int{1000} // never drawn, so the ground stays bare
	m := newManager(t, cfg, nil)
	m.Apply(core.PlayerAction{Pos: core.P(0, 0), Type: core.ActionBuildLeftToRightConveyor})
	m.Apply(core.PlayerAction{Pos: core.P(1, 0), Type: core.ActionBuildTopOutCombiner})

	lines := strings.Split(strings.TrimRight(core.RenderASCII(m), "\n"), "\n")
	if len(lines) != cfg.BoardHeight+1 {
		t.Fatalf("got %d lines, expected %d", len(lines), cfg.BoardHeight+1)
	}
	if !strings.HasPrefix(lines[0], "Tick: 0/1000 | Score: 0 | Level: (1)") {
		t.Errorf("unexpected header %q", lines[0])
	}

	expected := []string{
		"=>. . . . . . . . . ",
		"+ +^. . . . . . . . ",
		". . . . . . . . . . ",
		". . . @ @ @ @ . . . ",
	}
	for i, want := range expected {
		if lines[i+1] != want {
			t.Errorf("row %d = %q, expected %q", i, lines[i+1], want)
		}
	}
}

func TestCellGlyphProductOverlay(t *testing.T) {
	cfg := smallConfig()
	cfg.ResourceNumbers = []int{1000}
	m := newManager(t, cfg, nil)
	m.Board().BuildConveyor(core.P(0, 0), core.DirTop)
	m.Board().ReceiveProduct(core.P(0, 0), 11)

	if g, ok := core.CellGlyph(m, core.P(0, 0), core.PassProduct); !ok || g != 'b' {
		t.Errorf("product glyph = %q, %v, expected 'b'", g, ok)
	}
	if _, ok := core.CellGlyph(m, core.P(0, 1), core.PassProduct); ok {
		t.Error("empty slot has no product overlay")
	}
	if g, _ := core.CellGlyph(m, core.P(0, 0), core.PassDecoration); g != '^' {
		t.Errorf("decoration = %q, expected '^'", g)
	}
}

func TestSnapshotListsStructuresOnce(t *testing.T) {
	cfg := smallConfig()
	m := newManager(t, cfg, nil)
	m.Apply(core.PlayerAction{Pos: core.P(0, 0), Type: core.ActionBuildRightOutCombiner})

	s := core.NewSnapshot(m)
	if len(s.Foregrounds) != 2 {
		t.Fatalf("got %d foregrounds, expected combiner and collection center", len(s.Foregrounds))
	}
	if s.Foregrounds[0].Kind != "combiner" || s.Foregrounds[0].Direction != "right" || s.Foregrounds[0].Height != 2 {
		t.Errorf("unexpected combiner view %+v", s.Foregrounds[0])
	}
	if s.Foregrounds[1].Kind != "collection_center" || s.Foregrounds[1].Direction != "" {
		t.Errorf("unexpected collector view %+v", s.Foregrounds[1])
	}
	if s.Width != 10 || s.Height != 10 || s.Level != "(1)" {
		t.Errorf("unexpected header %+v", s)
	}
}
