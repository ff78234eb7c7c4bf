package snake

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

// MinGridSize is the smallest width or height accepted for a grid.
const MinGridSize = 5

// ErrGridExhausted is returned when every cell of the grid is taken.
var ErrGridExhausted = errors.New("snake: no free cell left on the grid")

// Cell is a grid position. Row grows downwards, Col grows to the right.
type Cell struct {
	Row, Col int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Boundary decides what happens when the head crosses the grid edge.
type Boundary int

const (
	// BoundaryWall ends the game when the head leaves the grid.
	BoundaryWall Boundary = iota
	// BoundaryWrap moves the head to the opposite edge.
	BoundaryWrap
)

func (b Boundary) String() string {
	if b == BoundaryWrap {
		return "wrap"
	}
	return "wall"
}

// ParseBoundary converts a config value ("wall" or "wrap") into a Boundary.
func ParseBoundary(s string) (Boundary, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "wall":
		return BoundaryWall, nil
	case "wrap":
		return BoundaryWrap, nil
	}
	return BoundaryWall, fmt.Errorf("snake: unknown boundary %q (want wall or wrap)", s)
}

// Grid is the fixed rectangle the snake lives in.
type Grid struct {
	Width    int
	Height   int
	Boundary Boundary
}

// Contains reports whether c lies within [0,Height) x [0,Width).
func (g Grid) Contains(c Cell) bool {
	return c.Row >= 0 && c.Row < g.Height && c.Col >= 0 && c.Col < g.Width
}

// Size returns the number of cells in the grid.
func (g Grid) Size() int {
	return g.Width * g.Height
}

// Step moves one cell from c in direction d.
// With a wall boundary the result may lie outside the grid, in which case ok is false.
func (g Grid) Step(c Cell, d Direction) (next Cell, ok bool) {
	dRow, dCol := d.delta()
	next = Cell{Row: c.Row + dRow, Col: c.Col + dCol}

	if g.Boundary == BoundaryWrap {
		next.Row = (next.Row + g.Height) % g.Height
		next.Col = (next.Col + g.Width) % g.Width
		return next, true
	}
	return next, g.Contains(next)
}

// Adjacent reports whether a and b are one step apart, counting wrapped edges
// as adjacent when the grid wraps.
func (g Grid) Adjacent(a, b Cell) bool {
	for d := DirRight; d <= DirUp; d++ {
		if next, ok := g.Step(a, d); ok && next == b {
			return true
		}
	}
	return false
}

// RandomFreeCell picks a uniformly random cell for which excluded returns false.
// It returns ErrGridExhausted when no such cell exists.
func (g Grid) RandomFreeCell(rng *rand.Rand, excluded func(Cell) bool) (Cell, error) {
	free := make([]Cell, 0, g.Size())
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			c := Cell{Row: row, Col: col}
			if !excluded(c) {
				free = append(free, c)
			}
		}
	}

	if len(free) == 0 {
		return Cell{}, ErrGridExhausted
	}
	return free[rng.Intn(len(free))], nil
}
