package snake

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func TestRequiredSize(t *testing.T) {
	tests := []struct {
		w, h       int
		expW, expH int
	}{
		// " SNAKE  Score: 80  Length: 80" is wider than the 12-column board.
		{10, 8, 29, 11},
		{5, 5, 29, 8},
		{40, 20, 42, 23},
	}

	for _, tc := range tests {
		w, h := RequiredSize(tc.w, tc.h)
		if w != tc.expW || h != tc.expH {
			t.Errorf("RequiredSize(%d, %d) = %d, %d; expected %d, %d", tc.w, tc.h, w, h, tc.expW, tc.expH)
		}
	}
}

func TestRenderBoard(t *testing.T) {
	snap := Snapshot{
		Width:   10,
		Height:  8,
		Body:    []Cell{{0, 2}, {0, 1}, {0, 0}},
		Food:    Cell{7, 9},
		HasFood: true,
		Score:   2,
		Phase:   PhaseRunning,
	}
	dst := core.NewScreen(RequiredSize(10, 8))
	Render(dst, snap)

	if !strings.Contains(dst.Row(0), "Score: 2  Length: 3") {
		t.Errorf("HUD row = %q, expected score and length", dst.Row(0))
	}

	// The 12-column board is centered in the 29-column frame.
	left := 8
	if dst.Get(left, 1) != '┌' || dst.Get(left+11, 10) != '┘' {
		t.Errorf("Board border missing, rows = %q / %q", dst.Row(1), dst.Row(10))
	}

	// Board origin is (left+1, 2): one column of border, HUD plus one row of border.
	if g := dst.GetGlyph(left+3, 2); g.Rune != glyphHead || g.Color != core.ColorBrightGreen {
		t.Errorf("Head glyph = %+v", g)
	}
	if dst.Get(left+2, 2) != glyphBody || dst.Get(left+1, 2) != glyphBody {
		t.Errorf("Body glyphs missing, row = %q", dst.Row(2))
	}
	if dst.Get(left+10, 9) != glyphFood {
		t.Errorf("Food glyph missing at (%d, 9), row = %q", left+10, dst.Row(9))
	}
}

func TestRenderHUDFitsSmallestBoard(t *testing.T) {
	cells := []Cell{}
	for row := range MinGridSize {
		for col := range MinGridSize {
			cells = append(cells, Cell{row, col})
		}
	}
	snap := Snapshot{
		Width:  MinGridSize,
		Height: MinGridSize,
		Body:   cells,
		Score:  len(cells) - DefaultStartLength,
		Phase:  PhaseRunning,
	}

	dst := core.NewScreen(RequiredSize(MinGridSize, MinGridSize))
	Render(dst, snap)

	want := hudText(snap.Score, len(cells))
	if strings.TrimRight(dst.Row(0), " ") != want {
		t.Errorf("HUD row = %q, expected %q", dst.Row(0), want)
	}
}

func TestRenderOverlays(t *testing.T) {
	base := Snapshot{Width: 20, Height: 10, Body: []Cell{{5, 5}}}

	tests := []struct {
		name string
		snap func(Snapshot) Snapshot
		want string
	}{
		{"game over", func(s Snapshot) Snapshot { s.Phase, s.Outcome = PhaseGameOver, OutcomeWall; return s }, "Game Over"},
		{"win", func(s Snapshot) Snapshot { s.Phase, s.Outcome = PhaseGameOver, OutcomeFilled; return s }, "You Win!"},
		{"paused", func(s Snapshot) Snapshot { s.Paused = true; return s }, "Paused"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dst := core.NewScreen(40, 20)
			Render(dst, tc.snap(base))
			if !strings.Contains(dst.String(), tc.want) {
				t.Errorf("Frame does not contain %q:\n%s", tc.want, dst.String())
			}
		})
	}
}

func TestRenderTooSmall(t *testing.T) {
	dst := core.NewScreen(30, 8)
	Render(dst, Snapshot{Width: 40, Height: 20, Body: []Cell{{0, 0}}})

	if !strings.Contains(dst.String(), "Window too small") {
		t.Errorf("Expected a too-small notice, got:\n%s", dst.String())
	}
}
