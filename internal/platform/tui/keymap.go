package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-factory/internal/core"
)

// ToolBinding ties a palette key to its tool selection action.
type ToolBinding struct {
	Binding key.Binding
	Action  core.Action
}

// KeyMap holds the in-game bindings. It implements help.KeyMap.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Apply   key.Binding
	Pause   key.Binding
	Restart key.Binding
	Save    key.Binding
	Back    key.Binding
	Help    key.Binding
	Quit    key.Binding
	Tools   []ToolBinding
}

// DefaultKeyMap returns the factory key layout: arrows move the cursor and
// letter and digit keys pick a tool.
func DefaultKeyMap() KeyMap {
	tool := func(k, desc string, a core.Action) ToolBinding {
		return ToolBinding{Binding: key.NewBinding(key.WithKeys(k), key.WithHelp(k, desc)), Action: a}
	}
	return KeyMap{
		Up:      key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:    key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Left:    key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right:   key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Apply:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "apply tool")),
		Pause:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Save:    key.NewBinding(key.WithKeys("f4"), key.WithHelp("f4", "save log")),
		Back:    key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "menu")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Tools: []ToolBinding{
			tool("j", "miner <", core.ActionToolMinerLeft),
			tool("i", "miner ^", core.ActionToolMinerTop),
			tool("l", "miner >", core.ActionToolMinerRight),
			tool("k", "miner v", core.ActionToolMinerBottom),
			tool("d", "belt >", core.ActionToolConveyorRight),
			tool("s", "belt v", core.ActionToolConveyorDown),
			tool("a", "belt <", core.ActionToolConveyorLeft),
			tool("w", "belt ^", core.ActionToolConveyorUp),
			tool("1", "combiner ^", core.ActionToolCombinerTop),
			tool("2", "combiner >", core.ActionToolCombinerRight),
			tool("3", "combiner v", core.ActionToolCombinerBottom),
			tool("4", "combiner <", core.ActionToolCombinerLeft),
			{
				Binding: key.NewBinding(key.WithKeys("x", "backspace"), key.WithHelp("x", "clear")),
				Action:  core.ActionToolClear,
			},
		},
	}
}

// ShortHelp returns key bindings for the one-line help bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Apply, k.Pause, k.Save, k.Back, k.Help, k.Quit}
}

// FullHelp groups every binding into columns.
func (k KeyMap) FullHelp() [][]key.Binding {
	cols := [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Apply},
		{k.Pause, k.Restart, k.Save, k.Back, k.Quit},
	}
	var col []key.Binding
	for _, t := range k.Tools {
		col = append(col, t.Binding)
		if len(col) == 5 {
			cols = append(cols, col)
			col = nil
		}
	}
	if len(col) > 0 {
		cols = append(cols, col)
	}
	return cols
}

// KeyMapper translates Bubble Tea key messages to game actions.
type KeyMapper struct {
	Keys KeyMap
}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{Keys: DefaultKeyMap()}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	k := km.Keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, k.Up):
		return core.ActionUp, false
	case key.Matches(msg, k.Down):
		return core.ActionDown, false
	case key.Matches(msg, k.Left):
		return core.ActionLeft, false
	case key.Matches(msg, k.Right):
		return core.ActionRight, false
	case key.Matches(msg, k.Apply):
		return core.ActionConfirm, false
	case key.Matches(msg, k.Pause):
		return core.ActionPause, false
	case key.Matches(msg, k.Restart):
		return core.ActionRestart, false
	case key.Matches(msg, k.Save):
		return core.ActionSave, false
	case key.Matches(msg, k.Back):
		return core.ActionBack, false
	}
	for _, t := range k.Tools {
		if key.Matches(msg, t.Binding) {
			return t.Action, false
		}
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "up", "k": // vim-style k for up
		return MenuActionUp
	case "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
