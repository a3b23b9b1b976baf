// Package core implements the factory simulation engine.
// It has no platform dependencies: the board, the foreground structures and
// the game manager are pure data driven by Update calls.
package core

import "fmt"

// Position addresses a board slot. Rows grow downward, columns to the right.
type Position struct {
	Row int
	Col int
}

// P is shorthand for constructing a Position.
func P(row, col int) Position {
	return Position{Row: row, Col: col}
}

// Add returns the component-wise sum of two positions.
func (p Position) Add(o Position) Position {
	return Position{Row: p.Row + o.Row, Col: p.Col + o.Col}
}

// Neighbor returns the adjacent position in direction d.
func (p Position) Neighbor(d Direction) Position {
	return p.Add(d.Offset())
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Direction is the facing of a directional structure.
type Direction uint8

const (
	DirTop Direction = iota
	DirRight
	DirBottom
	DirLeft
)

// Directions lists every direction in clockwise order starting at DirTop.
var Directions = [4]Direction{DirTop, DirRight, DirBottom, DirLeft}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d <= DirLeft
}

// Offset returns the unit step for d. Panics on an invalid direction.
func (d Direction) Offset() Position {
	switch d {
	case DirTop:
		return Position{Row: -1}
	case DirRight:
		return Position{Col: 1}
	case DirBottom:
		return Position{Row: 1}
	case DirLeft:
		return Position{Col: -1}
	}
	panic(fmt.Sprintf("core: invalid direction %d", d))
}

// Opposite returns the direction facing the other way.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Degrees returns the clockwise rotation from DirTop.
func (d Direction) Degrees() int {
	return int(d) * 90
}

func (d Direction) String() string {
	switch d {
	case DirTop:
		return "top"
	case DirRight:
		return "right"
	case DirBottom:
		return "bottom"
	case DirLeft:
		return "left"
	}
	return "unknown"
}
