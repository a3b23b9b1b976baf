package core

import (
	"fmt"
	"hash/fnv"
)

// BackgroundView is a resource node in a Snapshot.
type BackgroundView struct {
	Row    int `json:"row"`
	Col    int `json:"col"`
	Number int `json:"number"`
}

// ForegroundView is a structure in a Snapshot.
type ForegroundView struct {
	ID         int    `json:"id"`
	Kind       string `json:"kind"`
	Row        int    `json:"row"`
	Col        int    `json:"col"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Direction  string `json:"direction,omitempty"`
	Products   []int  `json:"products,omitempty"`
	FirstSlot  int    `json:"first_slot,omitempty"`
	SecondSlot int    `json:"second_slot,omitempty"`
	Elapsed    int    `json:"elapsed,omitempty"`
}

// Snapshot is a serializable copy of the observable game state.
type Snapshot struct {
	Tick          int              `json:"tick"`
	EndTime       int              `json:"end_time"`
	Score         int              `json:"score"`
	CommonDivisor int              `json:"common_divisor"`
	Level         string           `json:"level"`
	GameOver      bool             `json:"game_over"`
	Width         int              `json:"width"`
	Height        int              `json:"height"`
	Backgrounds   []BackgroundView `json:"backgrounds"`
	Foregrounds   []ForegroundView `json:"foregrounds"`
}

// NewSnapshot captures info. Structures appear once, in row-major order of
// their top-left slot.
func NewSnapshot(info GameInfo) Snapshot {
	cfg := info.Config()
	s := Snapshot{
		Tick:          info.ElapsedTime(),
		EndTime:       info.EndTime(),
		Score:         info.Score(),
		CommonDivisor: cfg.CommonDivisor,
		Level:         info.LevelInfo(),
		GameOver:      info.IsGameOver(),
		Width:         cfg.BoardWidth,
		Height:        cfg.BoardHeight,
		Backgrounds:   []BackgroundView{},
		Foregrounds:   []ForegroundView{},
	}
	seen := make(map[ForegroundID]bool)
	for row := 0; row < cfg.BoardHeight; row++ {
		for col := 0; col < cfg.BoardWidth; col++ {
			pos := P(row, col)
			if n, ok := info.LayeredCell(pos).Number(); ok {
				s.Backgrounds = append(s.Backgrounds, BackgroundView{Row: row, Col: col, Number: n})
			}
			f, ok := info.Foreground(pos)
			if !ok || seen[f.ID()] {
				continue
			}
			seen[f.ID()] = true
			v := ForegroundView{
				ID:         int(f.ID()),
				Kind:       f.Kind().String(),
				Row:        f.TopLeft().Row,
				Col:        f.TopLeft().Col,
				Width:      f.Width(),
				Height:     f.Height(),
				Products:   f.Products(),
				FirstSlot:  f.FirstSlot(),
				SecondSlot: f.SecondSlot(),
				Elapsed:    f.Elapsed(),
			}
			if f.Kind().Directional() {
				v.Direction = f.Direction().String()
			}
			s.Foregrounds = append(s.Foregrounds, v)
		}
	}
	return s
}

// Hash returns an FNV-64a digest of the snapshot, for determinism checks.
func (s Snapshot) Hash() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d|%d|%d|%d|%s|%t|%dx%d|", s.Tick, s.EndTime, s.Score, s.CommonDivisor, s.Level, s.GameOver, s.Width, s.Height)
	for _, b := range s.Backgrounds {
		fmt.Fprintf(h, "b%d,%d=%d;", b.Row, b.Col, b.Number)
	}
	for _, f := range s.Foregrounds {
		fmt.Fprintf(h, "f%d:%s@%d,%d:%s:%v:%d,%d:%d;",
			f.ID, f.Kind, f.Row, f.Col, f.Direction, f.Products, f.FirstSlot, f.SecondSlot, f.Elapsed)
	}
	return h.Sum64()
}
