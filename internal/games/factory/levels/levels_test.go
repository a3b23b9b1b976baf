package levels

import (
	"testing"

	"github.com/vovakirdan/tui-factory/internal/config"
	"github.com/vovakirdan/tui-factory/internal/games/factory/core"
)

func TestFromConfig(t *testing.T) {
	s := FromConfig(config.DefaultFactoryConfig())

	if s.Len() != 5 {
		t.Fatalf("Len() = %d, expected 5", s.Len())
	}
	ids := s.IDs()
	expected := []string{"1a", "2a", "3a", "4a", "5a"}
	for i := range expected {
		if ids[i] != expected[i] {
			t.Errorf("IDs()[%d] = %q, expected %q", i, ids[i], expected[i])
		}
	}

	tests := []struct {
		id      string
		divisor int
		seed    int64
	}{
		{"1a", 1, 20},
		{"3a", 3, 30},
		{"5a", 5, 40},
	}
	for _, tt := range tests {
		l, err := s.Get(tt.id)
		if err != nil {
			t.Fatalf("Get(%q) failed: %v", tt.id, err)
		}
		if l.Divisor != tt.divisor || l.Engine.CommonDivisor != tt.divisor || l.Engine.Seed != tt.seed {
			t.Errorf("level %s: divisor %d seed %d", tt.id, l.Engine.CommonDivisor, l.Engine.Seed)
		}
	}
}

func TestGet(t *testing.T) {
	s := FromConfig(config.DefaultFactoryConfig())

	first, err := s.Get("")
	if err != nil || first.ID != "1a" {
		t.Errorf("Get(\"\") = %v, %v, expected level 1a", first.ID, err)
	}
	if _, err := s.Get("nope"); err == nil {
		t.Error("unknown level should be an error")
	}
	if s.Index("4a") != 3 || s.Index("nope") != -1 {
		t.Error("Index returned the wrong position")
	}

	if _, err := (Set{}).Get(""); err == nil {
		t.Error("empty set should be an error")
	}
}

func TestNewManagerSeedOverride(t *testing.T) {
	s := FromConfig(config.DefaultFactoryConfig())
	l, _ := s.Get("2a")

	a, err := l.NewManager(nil)
	if err != nil {
		t.Fatalf("NewManager() failed: %v", err)
	}
	b, _ := l.NewManager(nil)
	c, _ := l.WithSeed(999).NewManager(nil)

	if core.NewSnapshot(a).Hash() != core.NewSnapshot(b).Hash() {
		t.Error("the level seed should give a reproducible board")
	}
	if core.NewSnapshot(a).Hash() == core.NewSnapshot(c).Hash() {
		t.Error("a seed override should change the board")
	}
	if a.LevelInfo() != "(2)" {
		t.Errorf("LevelInfo() = %q, expected (2)", a.LevelInfo())
	}
}

func TestWithSeedZero(t *testing.T) {
	s := FromConfig(config.DefaultFactoryConfig())
	l, _ := s.Get("2a")
	if l.Seed == 0 {
		t.Fatal("level 2a should carry a non-zero seed")
	}

	zero := l.WithSeed(0)
	if zero.Seed != 0 || zero.Engine.Seed != 0 {
		t.Errorf("WithSeed(0) kept seed %d/%d", zero.Seed, zero.Engine.Seed)
	}
	if l.Engine.Seed == 0 {
		t.Error("WithSeed should not modify the receiver")
	}

	m, err := zero.NewManager(nil)
	if err != nil {
		t.Fatalf("NewManager() failed: %v", err)
	}
	if m.Config().Seed != 0 {
		t.Errorf("manager seed = %d, expected 0", m.Config().Seed)
	}
	own, _ := l.NewManager(nil)
	if core.NewSnapshot(m).Hash() == core.NewSnapshot(own).Hash() {
		t.Error("seed 0 should give a different board than the level seed")
	}
}
