package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Frame layout: one HUD line, then the bordered board.
const (
	hudHeight   = 1
	borderWidth = 1
)

// Glyphs used on the board.
const (
	glyphHead = '@'
	glyphBody = 'o'
	glyphFood = '*'
)

// RequiredSize returns the smallest screen that fits a w×h board with HUD and border.
// The width also covers the HUD at the largest score and length the board allows.
func RequiredSize(w, h int) (int, int) {
	hudW := len(hudText(w*h, w*h))
	return max(w+2*borderWidth, hudW), h + 2*borderWidth + hudHeight
}

// Render draws snap into dst: HUD, border, food, body and any overlay.
// dst is cleared first.
func Render(dst *core.Screen, snap Snapshot) {
	dst.Clear()

	needW, needH := RequiredSize(snap.Width, snap.Height)
	if dst.Width() < needW || dst.Height() < needH {
		renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", needW, needH))
		return
	}

	renderHUD(dst, snap)

	boardW := snap.Width + 2*borderWidth
	board := core.NewRect((dst.Width()-boardW)/2, hudHeight, boardW, needH-hudHeight)
	borderColor := core.ColorGray
	if snap.Boundary == BoundaryWall {
		borderColor = core.ColorWhite
	}
	dst.DrawBox(board, borderColor)

	originX, originY := board.X+borderWidth, board.Y+borderWidth

	if snap.HasFood {
		dst.SetColored(originX+snap.Food.Col, originY+snap.Food.Row, glyphFood, core.ColorBrightRed)
	}

	// Tail to head so the head wins if anything overlaps.
	for i := len(snap.Body) - 1; i >= 0; i-- {
		c := snap.Body[i]
		if i == 0 {
			dst.SetColored(originX+c.Col, originY+c.Row, glyphHead, core.ColorBrightGreen)
		} else {
			dst.SetColored(originX+c.Col, originY+c.Row, glyphBody, core.ColorGreen)
		}
	}

	switch {
	case snap.Won():
		renderOverlay(dst, "You Win!", fmt.Sprintf("Final Score: %d", snap.Score))
	case snap.Over():
		renderOverlay(dst, "Game Over", fmt.Sprintf("Score: %d  (hit %s)", snap.Score, snap.Outcome))
	case snap.Paused:
		renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func hudText(score, length int) string {
	return fmt.Sprintf(" SNAKE  Score: %d  Length: %d", score, length)
}

func renderHUD(dst *core.Screen, snap Snapshot) {
	dst.DrawTextColored(0, 0, hudText(snap.Score, len(snap.Body)), core.ColorBrightYellow)
}

// renderOverlay draws a centered two-line message box.
func renderOverlay(dst *core.Screen, line1, line2 string) {
	textW := max(len([]rune(line1)), len([]rune(line2)))
	box := core.NewRect(0, 0, dst.Width(), dst.Height()).Centered(textW+4, 5)

	dst.FillRect(box, ' ')
	dst.DrawBox(box, core.ColorYellow)
	dst.DrawTextCentered(box.Y+1, line1, core.ColorBrightYellow)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorWhite)
}
