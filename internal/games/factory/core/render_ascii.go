package core

import (
	"fmt"
	"strconv"
	"strings"
)

// RenderPass selects which layer CellGlyph draws.
type RenderPass int

const (
	PassBase       RenderPass = iota // terrain and structure shape
	PassProduct                      // products held by the structure
	PassDecoration                   // facing arrows
)

// CellGlyph returns the glyph a pass contributes at pos, if any.
func CellGlyph(info GameInfo, pos Position, pass RenderPass) (rune, bool) {
	cell := info.LayeredCell(pos)
	f, hasFG := info.Foreground(pos)

	switch pass {
	case PassBase:
		if hasFG {
			return kindGlyph(f.Kind()), true
		}
		if n, ok := cell.Number(); ok {
			return numberGlyph(n), true
		}
		return '.', true

	case PassProduct:
		if !hasFG {
			return 0, false
		}
		switch f.Kind() {
		case KindConveyor:
			for i := 0; i < f.BufferSize(); i++ {
				if n := f.Product(i); n != 0 {
					return numberGlyph(n), true
				}
			}
		case KindCombiner:
			slot := f.SecondSlot()
			if f.IsMainCell(pos) {
				slot = f.FirstSlot()
			}
			if slot != 0 {
				return numberGlyph(slot), true
			}
		}
		return 0, false

	case PassDecoration:
		if !hasFG || !f.Kind().Directional() {
			return 0, false
		}
		if f.Kind() == KindCombiner && !f.IsMainCell(pos) {
			return 0, false
		}
		return arrowGlyph(f.Direction()), true
	}
	return 0, false
}

func kindGlyph(k Kind) rune {
	switch k {
	case KindConveyor:
		return '='
	case KindCombiner:
		return '+'
	case KindMiningMachine:
		return 'M'
	case KindWall:
		return '#'
	case KindCollectionCenter:
		return '@'
	}
	return '?'
}

func arrowGlyph(d Direction) rune {
	switch d {
	case DirTop:
		return '^'
	case DirRight:
		return '>'
	case DirBottom:
		return 'v'
	case DirLeft:
		return '<'
	}
	return ' '
}

// numberGlyph prints small numbers in base 36, larger ones as '*'.
func numberGlyph(n int) rune {
	if n > 0 && n < 36 {
		return rune(strconv.FormatInt(int64(n), 36)[0])
	}
	return '*'
}

// RenderASCII draws the board two characters per slot: the base or product
// glyph followed by the decoration glyph. The first line is a status header.
func RenderASCII(info GameInfo) string {
	cfg := info.Config()
	var sb strings.Builder
	sb.Grow((cfg.BoardWidth*2 + 1) * (cfg.BoardHeight + 1))

	status := "RUNNING"
	if info.IsGameOver() {
		status = "GAME OVER"
	}
	fmt.Fprintf(&sb, "Tick: %d/%d | Score: %d | Level: %s | %s\n",
		info.ElapsedTime(), info.EndTime(), info.Score(), info.LevelInfo(), status)

	for row := 0; row < cfg.BoardHeight; row++ {
		for col := 0; col < cfg.BoardWidth; col++ {
			pos := P(row, col)
			glyph, _ := CellGlyph(info, pos, PassBase)
			if g, ok := CellGlyph(info, pos, PassProduct); ok {
				glyph = g
			}
			deco := ' '
			if g, ok := CellGlyph(info, pos, PassDecoration); ok {
				deco = g
			}
			sb.WriteRune(glyph)
			sb.WriteRune(deco)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
