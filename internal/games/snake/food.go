package snake

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrFoodOnSnake means a spawn produced a cell the snake is standing on.
var ErrFoodOnSnake = errors.New("snake: food placed on the snake")

// Spawner places food on free cells using a seeded RNG.
type Spawner struct {
	rng *rand.Rand
}

// NewSpawner creates a spawner drawing from rng.
func NewSpawner(rng *rand.Rand) *Spawner {
	return &Spawner{rng: rng}
}

// Spawn picks a free cell of grid that body does not occupy.
// ErrGridExhausted is returned unchanged when the body fills the grid.
func (s *Spawner) Spawn(grid Grid, body *Body) (Cell, error) {
	cell, err := grid.RandomFreeCell(s.rng, body.Contains)
	if err != nil {
		return Cell{}, err
	}
	if body.Contains(cell) {
		return Cell{}, fmt.Errorf("%w at %s", ErrFoodOnSnake, cell)
	}
	return cell, nil
}
