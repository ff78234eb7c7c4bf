package snake

import (
	"errors"
	"fmt"
	"math/rand"
)

// DefaultStartLength is the length of a freshly spawned snake.
const DefaultStartLength = 3

// ErrInvalidTransition is returned by Tick once the game is over.
var ErrInvalidTransition = errors.New("snake: tick called on a finished game")

// Phase is the lifecycle stage of a game.
type Phase int

const (
	PhaseRunning Phase = iota
	PhaseGameOver
)

func (p Phase) String() string {
	if p == PhaseGameOver {
		return "game_over"
	}
	return "running"
}

// Outcome explains why a game ended.
type Outcome int

const (
	OutcomeNone   Outcome = iota
	OutcomeWall           // Head left the grid
	OutcomeSelf           // Head ran into the body
	OutcomeFilled         // Body covers the whole grid; the player won
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWall:
		return "wall"
	case OutcomeSelf:
		return "self"
	case OutcomeFilled:
		return "filled"
	default:
		return "none"
	}
}

// ParseOutcome is the inverse of Outcome.String.
func ParseOutcome(s string) Outcome {
	switch s {
	case "wall":
		return OutcomeWall
	case "self":
		return OutcomeSelf
	case "filled":
		return OutcomeFilled
	}
	return OutcomeNone
}

// Event reports what a single tick did.
type Event int

const (
	EventMoved Event = iota
	EventAte
	EventHitWall
	EventHitSelf
	EventFilled
)

func (e Event) String() string {
	switch e {
	case EventAte:
		return "ate"
	case EventHitWall:
		return "hit_wall"
	case EventHitSelf:
		return "hit_self"
	case EventFilled:
		return "filled"
	default:
		return "moved"
	}
}

// Config describes one game instance.
type Config struct {
	Width       int
	Height      int
	Boundary    Boundary
	StartLength int   // 0 means DefaultStartLength
	Seed        int64 // RNG seed; same seed and inputs give the same game
}

// Validate checks that the grid is playable and the starting snake fits.
func (c Config) Validate() error {
	if c.Width < MinGridSize || c.Height < MinGridSize {
		return fmt.Errorf("snake: grid %dx%d is smaller than %dx%d", c.Width, c.Height, MinGridSize, MinGridSize)
	}
	if c.StartLength < 0 || c.StartLength > c.Width-2 {
		return fmt.Errorf("snake: start length %d does not fit a grid %d wide", c.StartLength, c.Width)
	}
	if c.Boundary != BoundaryWall && c.Boundary != BoundaryWrap {
		return fmt.Errorf("snake: unknown boundary %d", c.Boundary)
	}
	return nil
}

// Game is the authoritative state of one game of snake.
// It is not safe for concurrent use; the tick loop owns it.
type Game struct {
	cfg     Config
	grid    Grid
	body    *Body
	spawner *Spawner

	heading Direction
	food    Cell
	hasFood bool
	score   int
	tick    uint64
	phase   Phase
	outcome Outcome
}

// NewGame creates a running game: a snake centered on the grid heading right
// with its body trailing to the left, plus one piece of food.
func NewGame(cfg Config) (*Game, error) {
	if cfg.StartLength == 0 {
		cfg.StartLength = DefaultStartLength
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Game{
		cfg:     cfg,
		grid:    Grid{Width: cfg.Width, Height: cfg.Height, Boundary: cfg.Boundary},
		spawner: NewSpawner(rand.New(rand.NewSource(cfg.Seed))),
		heading: DirRight,
		phase:   PhaseRunning,
	}

	tailCol := (cfg.Width - cfg.StartLength) / 2
	head := Cell{Row: cfg.Height / 2, Col: tailCol + cfg.StartLength - 1}
	cells := make([]Cell, cfg.StartLength)
	for i := range cells {
		cells[i] = Cell{Row: head.Row, Col: head.Col - i}
	}
	g.body = NewBody(cells...)

	if err := g.placeFood(); err != nil {
		return nil, err
	}
	return g, nil
}

// Restore builds a running game from explicit parts. It exists for tests and
// tooling that need a precise starting position; cfg.Seed still drives food.
func Restore(cfg Config, cells []Cell, heading Direction, food Cell) (*Game, error) {
	if len(cells) == 0 {
		return nil, errors.New("snake: restore needs at least one body cell")
	}
	cfg.StartLength = len(cells)
	check := cfg
	check.StartLength = 1
	if err := check.Validate(); err != nil {
		return nil, err
	}

	g := &Game{
		cfg:     cfg,
		grid:    Grid{Width: cfg.Width, Height: cfg.Height, Boundary: cfg.Boundary},
		spawner: NewSpawner(rand.New(rand.NewSource(cfg.Seed))),
		body:    NewBody(cells...),
		heading: heading,
		food:    food,
		hasFood: true,
		phase:   PhaseRunning,
	}

	for i, c := range cells {
		if !g.grid.Contains(c) {
			return nil, fmt.Errorf("snake: body cell %s is off the grid", c)
		}
		if i > 0 && !g.grid.Adjacent(cells[i-1], c) {
			return nil, fmt.Errorf("snake: body cells %s and %s are not adjacent", cells[i-1], c)
		}
	}
	if g.body.Len() != len(cells) || len(g.body.occupied) != len(cells) {
		return nil, errors.New("snake: body cells overlap")
	}
	if !g.grid.Contains(food) || g.body.Contains(food) {
		return nil, fmt.Errorf("snake: food %s is not on a free cell", food)
	}
	return g, nil
}

// placeFood spawns new food. A full grid ends the game as a win.
func (g *Game) placeFood() error {
	food, err := g.spawner.Spawn(g.grid, g.body)
	if errors.Is(err, ErrGridExhausted) {
		g.hasFood = false
		g.finish(OutcomeFilled)
		return nil
	}
	if err != nil {
		return err
	}
	g.food = food
	g.hasFood = true
	return nil
}

func (g *Game) finish(o Outcome) {
	g.phase = PhaseGameOver
	g.outcome = o
	g.hasFood = false
}

// Tick advances the game by one step.
//
// pending is the direction requested since the last tick, or nil. A request
// for the exact reverse of the current heading is ignored.
func (g *Game) Tick(pending *Direction) (Event, error) {
	if g.phase == PhaseGameOver {
		return EventMoved, fmt.Errorf("%w (outcome %s)", ErrInvalidTransition, g.outcome)
	}
	g.tick++

	dir := g.heading
	if pending != nil && pending.Valid() && !pending.IsOpposite(g.heading) {
		dir = *pending
	}
	g.heading = dir

	head, ok := g.grid.Step(g.body.Head(), dir)
	if !ok {
		g.finish(OutcomeWall)
		return EventHitWall, nil
	}
	if g.body.CollidesWithSelf(head) {
		g.finish(OutcomeSelf)
		return EventHitSelf, nil
	}

	if g.hasFood && head == g.food {
		g.body.Advance(head, true)
		g.score++
		if err := g.placeFood(); err != nil {
			return EventAte, err
		}
		if g.outcome == OutcomeFilled {
			return EventFilled, nil
		}
		return EventAte, nil
	}

	g.body.Advance(head, false)
	return EventMoved, nil
}

// Phase returns the lifecycle stage.
func (g *Game) Phase() Phase {
	return g.phase
}

// Outcome returns why the game ended, or OutcomeNone while running.
func (g *Game) Outcome() Outcome {
	return g.outcome
}

// Score returns the number of food items eaten.
func (g *Game) Score() int {
	return g.score
}

// Heading returns the current movement direction.
func (g *Game) Heading() Direction {
	return g.heading
}

// Ticks returns how many ticks have been applied.
func (g *Game) Ticks() uint64 {
	return g.tick
}

// Head returns the head cell.
func (g *Game) Head() Cell {
	return g.body.Head()
}

// Food returns the food cell and whether food is on the board.
func (g *Game) Food() (Cell, bool) {
	return g.food, g.hasFood
}

// Config returns the configuration the game was created with.
func (g *Game) Config() Config {
	return g.cfg
}
