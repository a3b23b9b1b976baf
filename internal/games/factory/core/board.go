package core

import "fmt"

// Board is the grid of layered cells plus the arena of structures placed on it.
// Every slot of a structure's footprint holds the same ForegroundID; the
// structure itself is stored once in the arena.
type Board struct {
	width  int
	height int
	cells  []LayeredCell
	arena  map[ForegroundID]*Foreground
	nextID ForegroundID

	bufferSize   int
	miningPeriod int
	goalSize     int
}

// NewBoard creates an empty board sized by cfg.
func NewBoard(cfg Config) *Board {
	return &Board{
		width:        cfg.BoardWidth,
		height:       cfg.BoardHeight,
		cells:        make([]LayeredCell, cfg.BoardWidth*cfg.BoardHeight),
		arena:        make(map[ForegroundID]*Foreground),
		nextID:       NoForeground + 1,
		bufferSize:   cfg.ConveyorBufferSize,
		miningPeriod: cfg.MiningPeriod,
		goalSize:     cfg.GoalSize,
	}
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the number of rows.
func (b *Board) Height() int { return b.height }

// InBounds reports whether pos is on the board.
func (b *Board) InBounds(pos Position) bool {
	return pos.Row >= 0 && pos.Row < b.height && pos.Col >= 0 && pos.Col < b.width
}

func (b *Board) index(pos Position) int {
	return pos.Row*b.width + pos.Col
}

// GetLayeredCell returns the slot at pos. Off-board positions read as empty.
func (b *Board) GetLayeredCell(pos Position) LayeredCell {
	if !b.InBounds(pos) {
		return LayeredCell{}
	}
	return b.cells[b.index(pos)]
}

// SetBackground replaces the terrain at pos. Off-board positions are ignored.
func (b *Board) SetBackground(pos Position, bg Background) {
	if !b.InBounds(pos) {
		return
	}
	b.cells[b.index(pos)].background = bg
}

func (b *Board) foregroundAt(pos Position) *Foreground {
	if !b.InBounds(pos) {
		return nil
	}
	id := b.cells[b.index(pos)].foreground
	if id == NoForeground {
		return nil
	}
	return b.arena[id]
}

// Foreground returns a read-only copy of the structure occupying pos.
func (b *Board) Foreground(pos Position) (Foreground, bool) {
	f := b.foregroundAt(pos)
	if f == nil {
		return Foreground{}, false
	}
	return f.clone(), true
}

// ForegroundCount returns the number of structures in the arena.
func (b *Board) ForegroundCount() int {
	return len(b.arena)
}

// Candidate builds an unplaced structure of the given kind using the board's
// parameters, for use with CanBuild.
func (b *Board) Candidate(kind Kind, topLeft Position, dir Direction) Foreground {
	var f *Foreground
	switch kind {
	case KindConveyor:
		f = newConveyor(topLeft, dir, b.bufferSize)
	case KindCombiner:
		f = newCombiner(topLeft, dir, b.bufferSize)
	case KindMiningMachine:
		f = newMiningMachine(topLeft, dir, b.miningPeriod)
	case KindWall:
		f = newWall(topLeft)
	case KindCollectionCenter:
		f = newCollectionCenter(topLeft, b.goalSize, b.bufferSize, nil)
	default:
		panic(fmt.Sprintf("core: unknown foreground kind %d", kind))
	}
	return *f
}

// CanBuild reports whether every footprint slot of f is on the board and free.
func (b *Board) CanBuild(f Foreground) bool {
	if f.kind.Directional() && !f.dir.Valid() {
		return false
	}
	for _, pos := range f.Footprint() {
		if !b.InBounds(pos) || !b.cells[b.index(pos)].CanBuild() {
			return false
		}
	}
	return true
}

func (b *Board) build(f *Foreground) bool {
	if !b.CanBuild(*f) {
		return false
	}
	f.id = b.nextID
	b.nextID++
	b.arena[f.id] = f
	for _, pos := range f.Footprint() {
		b.cells[b.index(pos)].foreground = f.id
	}
	return true
}

// BuildConveyor places a conveyor moving products toward dir.
func (b *Board) BuildConveyor(pos Position, dir Direction) bool {
	return b.build(newConveyor(pos, dir, b.bufferSize))
}

// BuildCombiner places a two-cell combiner whose output faces dir.
func (b *Board) BuildCombiner(pos Position, dir Direction) bool {
	return b.build(newCombiner(pos, dir, b.bufferSize))
}

// BuildMiningMachine places a miner emitting toward dir.
func (b *Board) BuildMiningMachine(pos Position, dir Direction) bool {
	return b.build(newMiningMachine(pos, dir, b.miningPeriod))
}

// BuildWall places a permanent obstacle.
func (b *Board) BuildWall(pos Position) bool {
	return b.build(newWall(pos))
}

// BuildCollectionCenter places the goal with its top-left at pos. Products it
// receives are forwarded to sink.
func (b *Board) BuildCollectionCenter(pos Position, sink ProductSink) bool {
	return b.build(newCollectionCenter(pos, b.goalSize, b.bufferSize, sink))
}

// Remove clears the structure occupying pos, if it is removable.
// It reports whether anything was removed.
func (b *Board) Remove(pos Position) bool {
	f := b.foregroundAt(pos)
	if f == nil || !f.CanRemove() {
		return false
	}
	for _, p := range f.Footprint() {
		b.cells[b.index(p)].foreground = NoForeground
	}
	delete(b.arena, f.id)
	return true
}

// Capacity returns how many products the structure at pos can accept.
// Empty and off-board slots have no capacity.
func (b *Board) Capacity(pos Position) int {
	f := b.foregroundAt(pos)
	if f == nil {
		return 0
	}
	return f.Capacity(pos)
}

// ReceiveProduct hands n to the structure at pos. Unlike a transfer between
// structures, a missing receiver is a defect.
func (b *Board) ReceiveProduct(pos Position, n int) {
	f := b.foregroundAt(pos)
	if f == nil {
		panic(fmt.Sprintf("core: no structure at %s to receive %d", pos, n))
	}
	f.Receive(pos, n)
}

func (b *Board) neighborCapacity(pos Position, dir Direction) int {
	return b.Capacity(pos.Neighbor(dir))
}

func (b *Board) sendProduct(pos Position, dir Direction, n int) {
	target := pos.Neighbor(dir)
	f := b.foregroundAt(target)
	if f == nil {
		return
	}
	f.Receive(target, n)
}

// Update runs one tick: a row-major pass one over every occupied slot
// followed by a row-major pass two. Multi-cell structures are visited once
// per slot they occupy.
func (b *Board) Update() {
	b.sweep(func(f *Foreground, pos Position) { f.passOne(pos, b) })
	b.sweep(func(f *Foreground, _ Position) { f.passTwo() })
}

func (b *Board) sweep(visit func(f *Foreground, pos Position)) {
	for row := 0; row < b.height; row++ {
		for col := 0; col < b.width; col++ {
			id := b.cells[row*b.width+col].foreground
			if id == NoForeground {
				continue
			}
			visit(b.arena[id], P(row, col))
		}
	}
}
