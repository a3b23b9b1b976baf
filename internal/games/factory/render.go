package factory

import (
	"fmt"

	platformcore "github.com/vovakirdan/tui-factory/internal/core"
	"github.com/vovakirdan/tui-factory/internal/games/factory/core"
)

const (
	hudRows      = 3 // status, tool bar, separator
	cellWidth    = 2 // glyph plus decoration
	minViewCols  = 8
	minViewRows  = 4
	boardMarginX = 1
)

// viewport is the window of board cells currently on screen.
type viewport struct {
	originRow, originCol int
	rows, cols           int
}

// updateLayout recomputes whether the board fits at all.
func (g *Game) updateLayout() {
	cols, rows := g.viewSize()
	g.tooSmall = cols < minViewCols || rows < minViewRows
}

func (g *Game) viewSize() (cols, rows int) {
	cols = (g.screenW - 2*boardMarginX - 2) / cellWidth
	rows = g.screenH - hudRows - 2
	return cols, rows
}

// view centers the cursor where possible and clamps to the board edges.
func (g *Game) view() viewport {
	eng := g.manager.Config()
	cols, rows := g.viewSize()
	cols = platformcore.Min(cols, eng.BoardWidth)
	rows = platformcore.Min(rows, eng.BoardHeight)

	return viewport{
		originRow: platformcore.Clamp(g.cursor.Row-rows/2, 0, eng.BoardHeight-rows),
		originCol: platformcore.Clamp(g.cursor.Col-cols/2, 0, eng.BoardWidth-cols),
		rows:      rows,
		cols:      cols,
	}
}

// Render draws the HUD, the visible part of the board and any overlay.
func (g *Game) Render(dst *platformcore.Screen) {
	if dst.Width() != g.screenW || dst.Height() != g.screenH {
		g.screenW, g.screenH = dst.Width(), dst.Height()
		g.updateLayout()
	}

	g.renderHUD(dst)

	if g.loadErr != nil {
		g.renderOverlay(dst, "No levels loaded", g.loadErr.Error())
		return
	}
	if g.manager == nil {
		return
	}
	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	g.renderBoard(dst)

	switch {
	case g.manager.IsGameOver():
		g.renderOverlay(dst, fmt.Sprintf("Time up! Score: %d", g.manager.Score()), "R: restart | F4: save log")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) renderHUD(dst *platformcore.Screen) {
	if g.manager == nil {
		dst.DrawTextColored(0, 0, " Factory", platformcore.ColorCyan)
		return
	}

	hud := fmt.Sprintf(" Factory | Level %s %s | Score: %d/%d | Time: %d/%d | Queue: %d",
		g.level.ID, g.manager.LevelInfo(), g.manager.Score(), g.delivered,
		g.manager.ElapsedTime(), g.manager.EndTime(), g.player.Len())
	dst.DrawTextColored(0, 0, hud, platformcore.ColorCyan)

	tool := Palette[g.tool]
	bar := fmt.Sprintf(" Tool: [%s] %s | Cursor %s", tool.Key, tool.Label, g.cursor)
	if g.status != "" {
		bar += " | " + g.status
	}
	dst.DrawTextColored(0, 1, bar, platformcore.ColorGray)

	for x := 0; x < dst.Width(); x++ {
		dst.SetColored(x, 2, '─', platformcore.ColorGray)
	}
}

func (g *Game) renderBoard(dst *platformcore.Screen) {
	v := g.view()
	box := platformcore.NewRect(boardMarginX, hudRows, v.cols*cellWidth+2, v.rows+2)
	dst.DrawBox(box, platformcore.ColorGray)

	for r := 0; r < v.rows; r++ {
		for c := 0; c < v.cols; c++ {
			pos := core.P(v.originRow+r, v.originCol+c)
			x := box.X + 1 + c*cellWidth
			y := box.Y + 1 + r
			g.renderCell(dst, x, y, pos)
		}
	}
}

func (g *Game) renderCell(dst *platformcore.Screen, x, y int, pos core.Position) {
	glyph, _ := core.CellGlyph(g.manager, pos, core.PassBase)
	color := g.baseColor(pos)
	if p, ok := core.CellGlyph(g.manager, pos, core.PassProduct); ok {
		glyph = p
		color = platformcore.ColorBrightWhite
	}
	deco := ' '
	if d, ok := core.CellGlyph(g.manager, pos, core.PassDecoration); ok {
		deco = d
	}

	if pos == g.cursor {
		if !g.manager.LayeredCell(pos).HasForeground() {
			dst.SetColored(x, y, '[', platformcore.ColorBrightRed)
			dst.SetColored(x+1, y, ']', platformcore.ColorBrightRed)
			return
		}
		color = platformcore.ColorBrightRed
	}

	dst.SetColored(x, y, glyph, color)
	dst.SetColored(x+1, y, deco, color)
}

func (g *Game) baseColor(pos core.Position) platformcore.Color {
	if f, ok := g.manager.Foreground(pos); ok {
		switch f.Kind() {
		case core.KindConveyor:
			return platformcore.ColorCyan
		case core.KindCombiner:
			return platformcore.ColorMagenta
		case core.KindMiningMachine:
			return platformcore.ColorOrange
		case core.KindWall:
			return platformcore.ColorGray
		case core.KindCollectionCenter:
			return platformcore.ColorBrightYellow
		}
	}
	if n, ok := g.manager.LayeredCell(pos).Number(); ok {
		if g.manager.IsScoredProduct(n) {
			return platformcore.ColorBrightGreen
		}
		return platformcore.ColorGreen
	}
	return platformcore.ColorGray
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	maxLen := platformcore.Max(len(line1), len(line2))
	boxW := maxLen + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	r := platformcore.NewRect(boxX, boxY, boxW, boxH)
	for y := r.Y + 1; y < r.Bottom(); y++ {
		for x := r.X + 1; x < r.Right(); x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(r, platformcore.ColorWhite)
	dst.DrawTextCentered(boxY+1, line1, platformcore.ColorBrightYellow)
	dst.DrawTextCentered(boxY+3, line2, platformcore.ColorGray)
}
