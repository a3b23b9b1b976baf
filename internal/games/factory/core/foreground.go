package core

import "fmt"

// Kind enumerates the foreground variants.
type Kind uint8

const (
	KindConveyor Kind = iota + 1
	KindCombiner
	KindMiningMachine
	KindWall
	KindCollectionCenter
)

func (k Kind) String() string {
	switch k {
	case KindConveyor:
		return "conveyor"
	case KindCombiner:
		return "combiner"
	case KindMiningMachine:
		return "mining_machine"
	case KindWall:
		return "wall"
	case KindCollectionCenter:
		return "collection_center"
	}
	return "unknown"
}

// Directional reports whether structures of this kind have a facing.
func (k Kind) Directional() bool {
	return k == KindConveyor || k == KindCombiner || k == KindMiningMachine
}

// ProductSink receives products delivered to a collection center.
type ProductSink interface {
	OnProductReceived(n int)
}

// Foreground is a player-placed or generated structure. Behavior is selected
// by Kind; fields that a kind does not use stay zero.
type Foreground struct {
	id      ForegroundID
	kind    Kind
	topLeft Position
	dir     Direction

	// conveyor
	products []int

	// combiner inputs; first belongs to the main cell
	first  int
	second int

	// mining machine
	elapsed int
	period  int

	// conveyor buffer size for combiners and collection centers, edge length
	// for collection centers
	limit int
	size  int
	sink  ProductSink
}

func newConveyor(topLeft Position, dir Direction, bufferSize int) *Foreground {
	return &Foreground{
		kind:     KindConveyor,
		topLeft:  topLeft,
		dir:      dir,
		products: make([]int, bufferSize),
	}
}

func newCombiner(topLeft Position, dir Direction, bufferSize int) *Foreground {
	return &Foreground{kind: KindCombiner, topLeft: topLeft, dir: dir, limit: bufferSize}
}

func newMiningMachine(topLeft Position, dir Direction, period int) *Foreground {
	return &Foreground{kind: KindMiningMachine, topLeft: topLeft, dir: dir, period: period}
}

func newWall(topLeft Position) *Foreground {
	return &Foreground{kind: KindWall, topLeft: topLeft}
}

func newCollectionCenter(topLeft Position, size, bufferSize int, sink ProductSink) *Foreground {
	return &Foreground{
		kind:    KindCollectionCenter,
		topLeft: topLeft,
		size:    size,
		limit:   bufferSize,
		sink:    sink,
	}
}

// ID returns the arena id, NoForeground for candidates that were never built.
func (f Foreground) ID() ForegroundID { return f.id }

func (f Foreground) Kind() Kind { return f.kind }

func (f Foreground) TopLeft() Position { return f.topLeft }

// Direction is meaningful only when Kind().Directional().
func (f Foreground) Direction() Direction { return f.dir }

// Width returns the footprint width in columns.
func (f Foreground) Width() int {
	switch f.kind {
	case KindCombiner:
		if f.dir == DirTop || f.dir == DirBottom {
			return 2
		}
		return 1
	case KindCollectionCenter:
		return f.size
	}
	return 1
}

// Height returns the footprint height in rows.
func (f Foreground) Height() int {
	switch f.kind {
	case KindCombiner:
		if f.dir == DirTop || f.dir == DirBottom {
			return 1
		}
		return 2
	case KindCollectionCenter:
		return f.size
	}
	return 1
}

// Footprint lists the occupied slots in row-major order.
func (f Foreground) Footprint() []Position {
	w, h := f.Width(), f.Height()
	out := make([]Position, 0, w*h)
	for dr := 0; dr < h; dr++ {
		for dc := 0; dc < w; dc++ {
			out = append(out, f.topLeft.Add(P(dr, dc)))
		}
	}
	return out
}

// Contains reports whether pos is inside the footprint.
func (f Foreground) Contains(pos Position) bool {
	return pos.Row >= f.topLeft.Row && pos.Row < f.topLeft.Row+f.Height() &&
		pos.Col >= f.topLeft.Col && pos.Col < f.topLeft.Col+f.Width()
}

// CanRemove reports whether the player may clear this structure.
// Walls and the collection center are permanent.
func (f Foreground) CanRemove() bool {
	switch f.kind {
	case KindConveyor, KindCombiner, KindMiningMachine:
		return true
	}
	return false
}

// IsMainCell reports whether pos is the combiner cell that owns the output.
// For a combiner facing top or right it is the second footprint cell, for
// bottom or left the top-left one.
func (f Foreground) IsMainCell(pos Position) bool {
	if f.kind != KindCombiner {
		return pos == f.topLeft
	}
	if f.dir == DirTop || f.dir == DirRight {
		return pos != f.topLeft
	}
	return pos == f.topLeft
}

// BufferSize returns the number of conveyor slots.
func (f Foreground) BufferSize() int { return len(f.products) }

// Product returns conveyor slot i, 0 when empty. Slot 0 is the head.
func (f Foreground) Product(i int) int {
	if i < 0 || i >= len(f.products) {
		return 0
	}
	return f.products[i]
}

// Products returns a copy of the conveyor slots.
func (f Foreground) Products() []int {
	if f.products == nil {
		return nil
	}
	out := make([]int, len(f.products))
	copy(out, f.products)
	return out
}

// FirstSlot returns the combiner input owned by the main cell.
func (f Foreground) FirstSlot() int { return f.first }

// SecondSlot returns the combiner input owned by the other cell.
func (f Foreground) SecondSlot() int { return f.second }

// Elapsed returns the mining machine's progress through its period.
func (f Foreground) Elapsed() int { return f.elapsed }

// HasProducts reports whether the structure currently holds any product.
func (f Foreground) HasProducts() bool {
	if f.first != 0 || f.second != 0 {
		return true
	}
	for _, v := range f.products {
		if v != 0 {
			return true
		}
	}
	return false
}

// Capacity returns how many products the structure can accept at pos.
func (f *Foreground) Capacity(pos Position) int {
	switch f.kind {
	case KindConveyor:
		n := len(f.products)
		for i := 0; i < n; i++ {
			if f.products[n-1-i] != 0 {
				return i
			}
		}
		return n
	case KindCombiner:
		slot := f.second
		if f.IsMainCell(pos) {
			slot = f.first
		}
		if slot == 0 {
			return f.limit
		}
		return 0
	case KindCollectionCenter:
		return f.limit
	}
	return 0
}

// Receive accepts product n at pos. Callers must have checked Capacity;
// a zero product or a full slot is a defect.
func (f *Foreground) Receive(pos Position, n int) {
	if n == 0 {
		panic(fmt.Sprintf("core: zero product sent to %s at %s", f.kind, pos))
	}
	switch f.kind {
	case KindConveyor:
		last := len(f.products) - 1
		if f.products[last] != 0 {
			panic(fmt.Sprintf("core: conveyor at %s is full", pos))
		}
		f.products[last] = n
	case KindCombiner:
		slot := &f.second
		if f.IsMainCell(pos) {
			slot = &f.first
		}
		if *slot != 0 {
			panic(fmt.Sprintf("core: combiner input at %s is occupied", pos))
		}
		*slot = n
	case KindCollectionCenter:
		if f.sink != nil {
			f.sink.OnProductReceived(n)
		}
	default:
		panic(fmt.Sprintf("core: %s at %s cannot receive products", f.kind, pos))
	}
}

// passOne moves products out of the structure. It is invoked once per
// occupied slot, so multi-cell kinds act only from their main cell.
func (f *Foreground) passOne(pos Position, b *Board) {
	switch f.kind {
	case KindConveyor:
		p := f.products
		capacity := b.neighborCapacity(pos, f.dir)
		if capacity >= 3 && p[0] != 0 {
			b.sendProduct(pos, f.dir, p[0])
			p[0] = 0
		}
		if capacity >= 2 && p[0] == 0 && p[1] != 0 {
			p[0], p[1] = p[1], p[0]
		}
		if capacity >= 1 && p[0] == 0 && p[1] == 0 && p[2] != 0 {
			p[1], p[2] = p[2], p[1]
		}
	case KindCombiner:
		if !f.IsMainCell(pos) {
			return
		}
		if f.first != 0 && f.second != 0 && b.neighborCapacity(pos, f.dir) >= 3 {
			b.sendProduct(pos, f.dir, f.first+f.second)
			f.first, f.second = 0, 0
		}
	case KindMiningMachine:
		f.elapsed++
		if f.elapsed < f.period {
			return
		}
		if n, ok := b.GetLayeredCell(pos).Number(); ok && b.neighborCapacity(pos, f.dir) >= 3 {
			b.sendProduct(pos, f.dir, n)
		}
		f.elapsed = 0
	}
}

// passTwo advances conveyor products toward the head, keeping at least
// three free slots in front of any product that moves.
func (f *Foreground) passTwo() {
	if f.kind != KindConveyor {
		return
	}
	p := f.products
	for k := 3; k < len(p); k++ {
		if p[k] != 0 && p[k-1] == 0 && p[k-2] == 0 && p[k-3] == 0 {
			p[k], p[k-1] = p[k-1], p[k]
		}
	}
}

func (f *Foreground) clone() Foreground {
	c := *f
	c.products = f.Products()
	c.sink = nil
	return c
}
