package snake

// Snapshot is an immutable copy of the game state, handed to renderers and
// recorders. Body is a fresh slice; mutating it does not affect the game.
type Snapshot struct {
	Tick     uint64
	Width    int
	Height   int
	Boundary Boundary
	Body     []Cell // Head first
	Heading  Direction
	Food     Cell
	HasFood  bool
	Score    int
	Phase    Phase
	Outcome  Outcome
	Paused   bool // Set by the loop, not the game
}

// Snapshot captures the current state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:     g.tick,
		Width:    g.grid.Width,
		Height:   g.grid.Height,
		Boundary: g.grid.Boundary,
		Body:     g.body.Cells(),
		Heading:  g.heading,
		Food:     g.food,
		HasFood:  g.hasFood,
		Score:    g.score,
		Phase:    g.phase,
		Outcome:  g.outcome,
	}
}

// Over reports whether the snapshot shows a finished game.
func (s Snapshot) Over() bool {
	return s.Phase == PhaseGameOver
}

// Won reports whether the game ended with the grid filled.
func (s Snapshot) Won() bool {
	return s.Outcome == OutcomeFilled
}

// Head returns the head cell, or the zero cell for an empty body.
func (s Snapshot) Head() Cell {
	if len(s.Body) == 0 {
		return Cell{}
	}
	return s.Body[0]
}
