package snake

import "github.com/vovakirdan/tui-snake/internal/registry"

func init() {
	registry.Register(registry.Variant{
		ID:          "classic",
		Title:       "Classic",
		Description: "Walled 24x14 board; touching the edge ends the game",
		Width:       24,
		Height:      14,
		Boundary:    BoundaryWall.String(),
	})
	registry.Register(registry.Variant{
		ID:          "wrap",
		Title:       "Wraparound",
		Description: "24x14 board whose edges wrap to the opposite side",
		Width:       24,
		Height:      14,
		Boundary:    BoundaryWrap.String(),
	})
	registry.Register(registry.Variant{
		ID:          "tiny",
		Title:       "Tiny",
		Description: "Walled 10x10 board, short games",
		Width:       10,
		Height:      10,
		Boundary:    BoundaryWall.String(),
	})
}
