package snake

import (
	"fmt"

	"github.com/vovakirdan/pixel-snake/internal/core"
)

const hudHeight = 2

// Glyphs are two runes wide so cells look square in a terminal.
var (
	glyphGrass = [2]rune{'░', '░'}
	glyphTree  = [2]rune{'♣', '♣'}
	glyphStone = [2]rune{'▓', '▓'}
	glyphFood  = [2]rune{'<', '3'}
	glyphBody  = [2]rune{'█', '█'}
	glyphPop   = [2]rune{'◆', '◆'}
)

// headGlyph shows the eyes looking where the snake is heading.
func headGlyph(d Direction) [2]rune {
	switch d {
	case DirDown:
		return [2]rune{'▾', '▾'}
	case DirLeft:
		return [2]rune{'◂', '◂'}
	case DirRight:
		return [2]rune{'▸', '▸'}
	default:
		return [2]rune{'▴', '▴'}
	}
}

// MinScreenSize returns the smallest screen that fits an n x n field plus HUD.
func MinScreenSize(n int) (w, h int) {
	return 2*n + 2, n + 2 + hudHeight
}

// Render draws snap into dst. It only reads the snapshot.
func Render(dst *core.Screen, snap Snapshot, paused bool) {
	dst.Clear()
	renderHUD(dst, snap)

	needW, needH := MinScreenSize(snap.GridSize)
	if dst.Width() < needW || dst.Height() < needH {
		renderOverlay(dst, core.ColorDanger, "Window too small", fmt.Sprintf("Need %dx%d", needW, needH))
		return
	}

	ox := (dst.Width() - needW) / 2
	oy := hudHeight
	renderFrame(dst, ox, oy, snap.GridSize)

	// Field origin inside the frame
	fx, fy := ox+1, oy+1
	cell := func(p Point, g [2]rune, c core.Color) {
		dst.SetColor(fx+2*p.X, fy+p.Y, g[0], c)
		dst.SetColor(fx+2*p.X+1, fy+p.Y, g[1], c)
	}

	for y := range snap.GridSize {
		for x := range snap.GridSize {
			c := core.ColorGrass
			if (x+y)%2 == 0 {
				c = core.ColorGrassAlt
			}
			cell(Point{X: x, Y: y}, glyphGrass, c)
		}
	}
	for _, w := range snap.Walls {
		cell(w, glyphTree, core.ColorLeaves)
	}
	for _, s := range snap.Stones {
		cell(s, glyphStone, core.ColorStone)
	}
	if snap.HasFood {
		cell(snap.Food, glyphFood, core.ColorApple)
	}
	for i := len(snap.Snake) - 1; i >= 0; i-- {
		seg := snap.Snake[i]
		switch {
		case i > 0:
			cell(seg, glyphBody, core.ColorBody)
		case snap.JustAte():
			cell(seg, glyphPop, core.ColorHead)
		default:
			cell(seg, headGlyph(snap.Direction), core.ColorHead)
		}
	}

	switch {
	case snap.Phase == PhaseGameOver:
		renderOverlay(dst, core.ColorDanger, "GAME OVER", fmt.Sprintf("Score: %d  (%s)", snap.Score, CauseText(snap.Cause)), "R: try again  B: menu")
	case paused:
		renderOverlay(dst, core.ColorAccent, "Paused", "P: continue  B: menu")
	}
}

// CauseText describes a death cause for players.
func CauseText(c Cause) string {
	switch c {
	case CauseOutOfBounds:
		return "left the field"
	case CauseWall:
		return "hit a tree"
	case CauseStone:
		return "hit a stone"
	case CauseSelf:
		return "bit yourself"
	default:
		return "still going"
	}
}

func renderHUD(dst *core.Screen, snap Snapshot) {
	hud := fmt.Sprintf(" PIXEL SNAKE   Score: %d   Best: %d   Speed: %dms", snap.Score, snap.Best, snap.Speed.Milliseconds())
	dst.DrawText(0, 0, hud, core.ColorHUD)
	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorDim)
}

func renderFrame(dst *core.Screen, x, y, n int) {
	w, h := 2*n+2, n+2
	dst.SetColor(x, y, '┌', core.ColorDim)
	dst.SetColor(x+w-1, y, '┐', core.ColorDim)
	dst.SetColor(x, y+h-1, '└', core.ColorDim)
	dst.SetColor(x+w-1, y+h-1, '┘', core.ColorDim)
	dst.DrawHLine(x+1, y, w-2, '─', core.ColorDim)
	dst.DrawHLine(x+1, y+h-1, w-2, '─', core.ColorDim)
	for i := 1; i < h-1; i++ {
		dst.SetColor(x, y+i, '│', core.ColorDim)
		dst.SetColor(x+w-1, y+i, '│', core.ColorDim)
	}
}

// renderOverlay draws a centered box with one line per message.
func renderOverlay(dst *core.Screen, c core.Color, lines ...string) {
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len([]rune(l)))
	}
	boxW := maxLen + 4
	boxH := len(lines)*2 + 1
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	for y := boxY; y < boxY+boxH; y++ {
		for x := boxX; x < boxX+boxW; x++ {
			edgeY := y == boxY || y == boxY+boxH-1
			edgeX := x == boxX || x == boxX+boxW-1
			switch {
			case edgeY && edgeX:
				dst.SetColor(x, y, '+', c)
			case edgeY:
				dst.SetColor(x, y, '-', c)
			case edgeX:
				dst.SetColor(x, y, '|', c)
			default:
				dst.SetColor(x, y, ' ', core.ColorDefault)
			}
		}
	}
	for i, l := range lines {
		dst.DrawTextCentered(boxY+1+2*i, l, c)
	}
}
