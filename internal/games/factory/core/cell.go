package core

// Background is static terrain under a board slot.
// The set of variants is closed; NumberCell is the only one.
type Background interface {
	CanBuild() bool
	isBackground()
}

// NumberCell is a resource node a mining machine extracts Number from.
type NumberCell struct {
	Number int
}

func (NumberCell) CanBuild() bool { return true }
func (NumberCell) isBackground()  {}

// ForegroundID identifies a structure in the board arena.
type ForegroundID int

// NoForeground marks an unoccupied slot.
const NoForeground ForegroundID = 0

// LayeredCell is what a board slot holds: at most one background and at
// most one foreground reference.
type LayeredCell struct {
	background Background
	foreground ForegroundID
}

// Background returns the terrain, or nil.
func (c LayeredCell) Background() Background {
	return c.background
}

// ForegroundID returns the occupying structure, or NoForeground.
func (c LayeredCell) ForegroundID() ForegroundID {
	return c.foreground
}

// HasForeground reports whether a structure occupies the slot.
func (c LayeredCell) HasForeground() bool {
	return c.foreground != NoForeground
}

// CanBuild reports whether a new structure may be placed on the slot.
func (c LayeredCell) CanBuild() bool {
	if c.foreground != NoForeground {
		return false
	}
	return c.background == nil || c.background.CanBuild()
}

// Number returns the resource number under the slot, if any.
func (c LayeredCell) Number() (int, bool) {
	if nc, ok := c.background.(NumberCell); ok {
		return nc.Number, true
	}
	return 0, false
}
