package registry

import (
	"testing"

	"github.com/vovakirdan/tui-factory/internal/core"
)

type stubGame struct {
	id    string
	level string
}

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

type leveledStub struct{ stubGame }

func (g *leveledStub) LevelID() string { return g.level }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub_registry_test", func() Game { return &stubGame{id: "stub_registry_test"} })

	if !Exists("stub_registry_test") {
		t.Fatal("expected registered game to exist")
	}
	g, err := Create("stub_registry_test")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "stub_registry_test" {
		t.Errorf("ID() = %q", g.ID())
	}

	found := false
	for _, info := range List() {
		if info.ID == "stub_registry_test" && info.Title == "Stub stub_registry_test" {
			found = true
		}
	}
	if !found {
		t.Error("List() should include the registered game with its title")
	}

	if _, err := Create("missing"); err == nil {
		t.Error("Create of an unknown ID should fail")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub_duplicate", func() Game { return &stubGame{id: "stub_duplicate"} })

	defer func() {
		if recover() == nil {
			t.Error("expected duplicate registration to panic")
		}
	}()
	Register("stub_duplicate", func() Game { return &stubGame{id: "stub_duplicate"} })
}

func TestScoreKey(t *testing.T) {
	plain := &stubGame{id: "factory"}
	if ScoreKey(plain) != "factory" {
		t.Errorf("ScoreKey() = %q, expected factory", ScoreKey(plain))
	}

	leveled := &leveledStub{stubGame{id: "factory", level: "3a"}}
	if ScoreKey(leveled) != "factory/3a" {
		t.Errorf("ScoreKey() = %q, expected factory/3a", ScoreKey(leveled))
	}
}
