package core_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-factory/internal/games/factory/core"
)

func TestWriteActionLog(t *testing.T) {
	actions := []core.PlayerAction{
		{Pos: core.P(3, 7), Type: core.ActionBuildLeftToRightConveyor},
		{Pos: core.P(10, 0), Type: core.ActionClear},
	}

	var buf bytes.Buffer
	if err := core.WriteActionLog(&buf, actions); err != nil {
		t.Fatalf("WriteActionLog() failed: %v", err)
	}

	expected := "3 7 5\n10 0 13\n"
	if buf.String() != expected {
		t.Errorf("WriteActionLog() = %q, expected %q", buf.String(), expected)
	}

	read, err := core.ReadActionLog(&buf)
	if err != nil {
		t.Fatalf("ReadActionLog() failed: %v", err)
	}
	if len(read) != 2 || read[0] != actions[0] || read[1] != actions[1] {
		t.Errorf("ReadActionLog() = %v, expected %v", read, actions)
	}
}

func TestReadActionLog(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		count   int
		wantErr bool
	}{
		{"blank lines skipped", "\n1 2 9\n\n  4 5 1  \n", 2, false},
		{"empty", "", 0, false},
		{"too few fields", "1 2\n", 0, true},
		{"not a number", "1 x 3\n", 0, true},
		{"unknown code", "1 2 14\n", 0, true},
		{"negative code", "1 2 -1\n", 0, true},
	}

	for _, tt := range tests {
		actions, err := core.ReadActionLog(strings.NewReader(tt.input))
		if tt.wantErr {
			if err == nil {
				t.Errorf("%s: expected an error", tt.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
			continue
		}
		if len(actions) != tt.count {
			t.Errorf("%s: got %d actions, expected %d", tt.name, len(actions), tt.count)
		}
	}
}

func TestActionTypeBuild(t *testing.T) {
	tests := []struct {
		action core.ActionType
		kind   core.Kind
		dir    core.Direction
	}{
		{core.ActionBuildLeftOutMiningMachine, core.KindMiningMachine, core.DirLeft},
		{core.ActionBuildBottomOutMiningMachine, core.KindMiningMachine, core.DirBottom},
		{core.ActionBuildLeftToRightConveyor, core.KindConveyor, core.DirRight},
		{core.ActionBuildBottomToTopConveyor, core.KindConveyor, core.DirTop},
		{core.ActionBuildRightOutCombiner, core.KindCombiner, core.DirRight},
		{core.ActionBuildLeftOutCombiner, core.KindCombiner, core.DirLeft},
	}

	for _, tt := range tests {
		kind, dir, ok := tt.action.Build()
		if !ok || kind != tt.kind || dir != tt.dir {
			t.Errorf("%v.Build() = %v, %v, %v", tt.action, kind, dir, ok)
		}
	}
	if _, _, ok := core.ActionClear.Build(); ok {
		t.Error("Clear does not build anything")
	}
}
