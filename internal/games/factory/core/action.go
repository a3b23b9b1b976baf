package core

// ActionType is what the player asks the manager to do at a position.
// The integer codes are stable; they appear in saved action logs.
type ActionType int

const (
	ActionNone                        ActionType = 0
	ActionBuildLeftOutMiningMachine   ActionType = 1
	ActionBuildTopOutMiningMachine    ActionType = 2
	ActionBuildRightOutMiningMachine  ActionType = 3
	ActionBuildBottomOutMiningMachine ActionType = 4
	ActionBuildLeftToRightConveyor    ActionType = 5
	ActionBuildTopToBottomConveyor    ActionType = 6
	ActionBuildRightToLeftConveyor    ActionType = 7
	ActionBuildBottomToTopConveyor    ActionType = 8
	ActionBuildTopOutCombiner         ActionType = 9
	ActionBuildRightOutCombiner       ActionType = 10
	ActionBuildBottomOutCombiner      ActionType = 11
	ActionBuildLeftOutCombiner        ActionType = 12
	ActionClear                       ActionType = 13
)

var actionNames = map[ActionType]string{
	ActionNone:                        "None",
	ActionBuildLeftOutMiningMachine:   "BuildLeftOutMiningMachine",
	ActionBuildTopOutMiningMachine:    "BuildTopOutMiningMachine",
	ActionBuildRightOutMiningMachine:  "BuildRightOutMiningMachine",
	ActionBuildBottomOutMiningMachine: "BuildBottomOutMiningMachine",
	ActionBuildLeftToRightConveyor:    "BuildLeftToRightConveyor",
	ActionBuildTopToBottomConveyor:    "BuildTopToBottomConveyor",
	ActionBuildRightToLeftConveyor:    "BuildRightToLeftConveyor",
	ActionBuildBottomToTopConveyor:    "BuildBottomToTopConveyor",
	ActionBuildTopOutCombiner:         "BuildTopOutCombiner",
	ActionBuildRightOutCombiner:       "BuildRightOutCombiner",
	ActionBuildBottomOutCombiner:      "BuildBottomOutCombiner",
	ActionBuildLeftOutCombiner:        "BuildLeftOutCombiner",
	ActionClear:                       "Clear",
}

func (a ActionType) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// Valid reports whether a is a known action code.
func (a ActionType) Valid() bool {
	_, ok := actionNames[a]
	return ok
}

// Build returns the structure kind and facing an action places.
// ok is false for ActionNone, ActionClear and unknown codes.
func (a ActionType) Build() (kind Kind, dir Direction, ok bool) {
	switch a {
	case ActionBuildLeftOutMiningMachine:
		return KindMiningMachine, DirLeft, true
	case ActionBuildTopOutMiningMachine:
		return KindMiningMachine, DirTop, true
	case ActionBuildRightOutMiningMachine:
		return KindMiningMachine, DirRight, true
	case ActionBuildBottomOutMiningMachine:
		return KindMiningMachine, DirBottom, true
	case ActionBuildLeftToRightConveyor:
		return KindConveyor, DirRight, true
	case ActionBuildTopToBottomConveyor:
		return KindConveyor, DirBottom, true
	case ActionBuildRightToLeftConveyor:
		return KindConveyor, DirLeft, true
	case ActionBuildBottomToTopConveyor:
		return KindConveyor, DirTop, true
	case ActionBuildTopOutCombiner:
		return KindCombiner, DirTop, true
	case ActionBuildRightOutCombiner:
		return KindCombiner, DirRight, true
	case ActionBuildBottomOutCombiner:
		return KindCombiner, DirBottom, true
	case ActionBuildLeftOutCombiner:
		return KindCombiner, DirLeft, true
	}
	return 0, 0, false
}

// PlayerAction is one decision: what to do and where.
type PlayerAction struct {
	Pos  Position
	Type ActionType
}

func (a PlayerAction) String() string {
	return a.Type.String() + "@" + a.Pos.String()
}

// Player decides the next action when the manager polls it.
type Player interface {
	NextAction(info GameInfo) PlayerAction
}

// IdlePlayer never acts.
type IdlePlayer struct{}

func (IdlePlayer) NextAction(GameInfo) PlayerAction {
	return PlayerAction{Type: ActionNone}
}

// QueuePlayer replays queued actions in FIFO order, one per poll, and
// returns ActionNone when the queue is empty.
type QueuePlayer struct {
	queue []PlayerAction
}

// NewQueuePlayer creates a player preloaded with actions.
func NewQueuePlayer(actions ...PlayerAction) *QueuePlayer {
	q := &QueuePlayer{}
	q.queue = append(q.queue, actions...)
	return q
}

// Enqueue appends an action.
func (q *QueuePlayer) Enqueue(a PlayerAction) {
	q.queue = append(q.queue, a)
}

// Len returns the number of pending actions.
func (q *QueuePlayer) Len() int {
	return len(q.queue)
}

func (q *QueuePlayer) NextAction(GameInfo) PlayerAction {
	if len(q.queue) == 0 {
		return PlayerAction{Type: ActionNone}
	}
	a := q.queue[0]
	q.queue = q.queue[1:]
	return a
}
