package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // cursor up
	ActionDown           // cursor down
	ActionLeft           // cursor left
	ActionRight          // cursor right
	ActionConfirm        // apply the selected tool at the cursor
	ActionBack           // back to the menu
	ActionRestart        // restart after game over
	ActionQuit           // leave the session
	ActionPause          // pause/unpause
	ActionSave           // write the action log

	// Tool selection, in palette order.
	ActionToolMinerLeft
	ActionToolMinerTop
	ActionToolMinerRight
	ActionToolMinerBottom
	ActionToolConveyorRight
	ActionToolConveyorDown
	ActionToolConveyorLeft
	ActionToolConveyorUp
	ActionToolCombinerTop
	ActionToolCombinerRight
	ActionToolCombinerBottom
	ActionToolCombinerLeft
	ActionToolClear
)

var actionNames = map[Action]string{
	ActionNone:               "None",
	ActionUp:                 "Up",
	ActionDown:               "Down",
	ActionLeft:               "Left",
	ActionRight:              "Right",
	ActionConfirm:            "Confirm",
	ActionBack:               "Back",
	ActionRestart:            "Restart",
	ActionQuit:               "Quit",
	ActionPause:              "Pause",
	ActionSave:               "Save",
	ActionToolMinerLeft:      "ToolMinerLeft",
	ActionToolMinerTop:       "ToolMinerTop",
	ActionToolMinerRight:     "ToolMinerRight",
	ActionToolMinerBottom:    "ToolMinerBottom",
	ActionToolConveyorRight:  "ToolConveyorRight",
	ActionToolConveyorDown:   "ToolConveyorDown",
	ActionToolConveyorLeft:   "ToolConveyorLeft",
	ActionToolConveyorUp:     "ToolConveyorUp",
	ActionToolCombinerTop:    "ToolCombinerTop",
	ActionToolCombinerRight:  "ToolCombinerRight",
	ActionToolCombinerBottom: "ToolCombinerBottom",
	ActionToolCombinerLeft:   "ToolCombinerLeft",
	ActionToolClear:          "ToolClear",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// ToolIndex returns the palette index of a tool selection action.
func (a Action) ToolIndex() (int, bool) {
	if a < ActionToolMinerLeft || a > ActionToolClear {
		return 0, false
	}
	return int(a - ActionToolMinerLeft), true
}

// InputFrame holds the actions triggered during one simulation tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Tool returns the last tool selection in the frame, if any. When several
// tools were pressed in one tick the highest palette index wins.
func (f InputFrame) Tool() (int, bool) {
	best, found := 0, false
	for a, on := range f.Actions {
		if !on {
			continue
		}
		if idx, ok := a.ToolIndex(); ok && (!found || idx > best) {
			best, found = idx, true
		}
	}
	return best, found
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
