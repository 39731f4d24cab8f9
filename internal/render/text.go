package render

import (
	"fmt"

	"github.com/vovakirdan/snake-gym/internal/core"
)

// Runes used for the terminal grid. Each grid cell is two columns wide so
// the board looks roughly square in a terminal font.
const (
	cellWidth   = 2
	agentRune   = 'O'
	targetRune  = '*'
	emptyRune   = '·'
	borderColor = core.ColorGray
)

// GridSpan returns the screen width and height a frame needs, border included.
func GridSpan(gridSize int) (w, h int) {
	return gridSize*cellWidth + 2, gridSize + 2
}

// DrawGrid draws the frame into dst with its top border at row top,
// centered horizontally. It returns false and draws nothing if dst cannot
// fit the whole grid.
func DrawGrid(dst *core.Screen, f Frame, top int) bool {
	w, h := GridSpan(f.GridSize)
	if f.GridSize <= 0 || dst.Width() < w || dst.Height()-top < h {
		return false
	}
	left := (dst.Width() - w) / 2

	dst.DrawBox(core.NewRect(left, top, w, h), borderColor)

	for y := 0; y < f.GridSize; y++ {
		// Screen rows grow downward, grid y grows upward.
		sy := top + 1 + (f.GridSize - 1 - y)
		for x := 0; x < f.GridSize; x++ {
			sx := left + 1 + x*cellWidth
			p := core.Point{X: x, Y: y}
			switch p {
			case f.Agent:
				color := core.ColorBrightGreen
				if f.Reached() {
					color = core.ColorYellow
				}
				dst.SetColored(sx, sy, agentRune, color)
			case f.Target:
				dst.SetColored(sx, sy, targetRune, core.ColorBrightRed)
			default:
				dst.SetColored(sx, sy, emptyRune, core.ColorGray)
			}
		}
	}
	return true
}

// DrawTooSmall writes a resize hint in the middle of dst.
func DrawTooSmall(dst *core.Screen, gridSize int) {
	w, h := GridSpan(gridSize)
	mid := dst.Height() / 2
	dst.DrawTextCentered(mid-1, "Window too small")
	dst.DrawTextCentered(mid+1, fmt.Sprintf("Need at least %dx%d", w, h))
}
