// Package game implements the lane-dodging road game: the obstacle pool, the
// round state machine, key-to-command mapping and the frame controller that
// ties them to input, rendering and pacing collaborators.
package game

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/roadrush/internal/config"
)

// ErrDegenerateRoad is returned when the road leaves no room to place obstacles.
var ErrDegenerateRoad = errors.New("game: road too narrow for obstacles")

// Outcome is the round state machine position.
type Outcome int

const (
	Running  Outcome = iota // Round in progress
	Over                    // Collision ended the round; waiting for restart
	Terminal                // Player quit; no further transitions
)

func (o Outcome) String() string {
	switch o {
	case Running:
		return "running"
	case Over:
		return "over"
	case Terminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Car is the player vehicle. X is the horizontal center, Y the bottom edge.
type Car struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Left returns the x-coordinate of the car's left edge.
func (c Car) Left() int {
	return c.X - c.Width/2
}

// Right returns the x-coordinate of the car's right edge.
func (c Car) Right() int {
	return c.X + c.Width/2
}

// RoundState holds the per-round counters.
type RoundState struct {
	Score            int64
	Speed            int
	ScrollOffset     int
	LastSpeedUpScore int64
	Outcome          Outcome
}

// Game owns all state for one round in flight: counters, car and obstacles.
type Game struct {
	cfg       config.RoadConfig
	rng       *rand.Rand
	pool      *Pool
	car       Car
	initCar   Car
	state     RoundState
	roadLeft  int
	roadRight int
	round     int // Rounds started, including the current one
	hitSlot   int // Slot that ended the round, -1 while running
}

// New creates a game from a configuration and an RNG seed.
// Configurations that cannot place obstacles on the road are rejected.
func New(cfg config.RoadConfig, seed int64) (*Game, error) {
	left, right := cfg.RoadBounds()
	if right-left <= cfg.Obstacles.Width {
		return nil, fmt.Errorf("%w: road is %d wide, obstacles are %d", ErrDegenerateRoad, right-left, cfg.Obstacles.Width)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	g := &Game{
		cfg:       cfg,
		rng:       rng,
		pool:      NewPool(cfg.Obstacles, rng),
		roadLeft:  left,
		roadRight: right,
		initCar: Car{
			X:      cfg.World.Width / 2,
			Y:      cfg.World.Height - cfg.Car.Height - cfg.Car.BottomMargin,
			Width:  cfg.Car.Width,
			Height: cfg.Car.Height,
		},
	}
	g.reset()
	return g, nil
}

// reset starts a fresh round.
func (g *Game) reset() {
	g.state = RoundState{
		Speed:   g.cfg.Speed.Initial,
		Outcome: Running,
	}
	g.car = g.initCar
	g.pool.Initialize(g.roadLeft, g.roadRight)
	g.hitSlot = -1
	g.round++
}

// Update advances a running round by one frame: scroll, score, the automatic
// speed ramp, obstacle movement and collision, then a spawn attempt.
// It does nothing unless the round is running.
func (g *Game) Update() {
	s := &g.state
	if s.Outcome != Running {
		return
	}

	s.ScrollOffset = (s.ScrollOffset + s.Speed) % g.cfg.Lanes.Period()

	// Speeds below 10 add nothing.
	s.Score += int64(s.Speed / 10)

	// One step per frame at most, however far the score overshot.
	if g.cfg.Speed.AutoRamp &&
		s.Score >= s.LastSpeedUpScore+int64(g.cfg.Speed.RampInterval) &&
		s.Speed < g.cfg.Speed.Max {
		s.Speed++
		s.LastSpeedUpScore = s.Score
	}

	if slot, hit := g.pool.AdvanceAndCull(s.Speed, g.cfg.World.Height, g.car); hit {
		s.Outcome = Over
		g.hitSlot = slot
		return
	}

	g.pool.TrySpawn(g.roadLeft, g.roadRight, s.Speed)
}

// Apply executes a command against the current state. Commands that are not
// valid for the current outcome are ignored. It reports whether anything changed.
func (g *Game) Apply(cmd Command) bool {
	if cmd == CommandQuit {
		if g.state.Outcome == Terminal {
			return false
		}
		g.state.Outcome = Terminal
		return true
	}

	if cmd == CommandRestart {
		return g.Restart()
	}

	if g.state.Outcome != Running {
		return false
	}

	switch cmd {
	case CommandSteerLeft:
		g.car.X -= g.cfg.Car.SideStep
		if g.car.Left() < g.roadLeft {
			g.car.X = g.roadLeft + g.car.Width/2
		}
	case CommandSteerRight:
		g.car.X += g.cfg.Car.SideStep
		if g.car.Right() > g.roadRight {
			g.car.X = g.roadRight - g.car.Width/2
		}
	case CommandSpeedUp:
		g.state.Speed += g.cfg.Speed.Step
		if g.state.Speed > g.cfg.Speed.Max {
			g.state.Speed = g.cfg.Speed.Max
		}
	case CommandSpeedDown:
		g.state.Speed -= g.cfg.Speed.Step
		if g.state.Speed < g.cfg.Speed.Min {
			g.state.Speed = g.cfg.Speed.Min
		}
	default:
		return false
	}
	return true
}

// Restart begins a new round. Only valid once the current round is over.
func (g *Game) Restart() bool {
	if g.state.Outcome != Over {
		return false
	}
	g.reset()
	return true
}

// Step runs one frame of the state machine for the command polled this frame.
// A running round updates first and then applies steering or speed changes;
// a finished round only reacts to restart and quit.
func (g *Game) Step(cmd Command) {
	switch g.state.Outcome {
	case Running:
		if cmd == CommandQuit {
			g.Apply(cmd)
			return
		}
		g.Update()
		g.Apply(cmd)
	case Over:
		g.Apply(cmd)
	}
}

// State returns the current round counters.
func (g *Game) State() RoundState {
	return g.state
}

// Outcome returns the state machine position.
func (g *Game) Outcome() Outcome {
	return g.state.Outcome
}

// Car returns the player car.
func (g *Game) Car() Car {
	return g.car
}

// InitialCar returns where the car starts every round.
func (g *Game) InitialCar() Car {
	return g.initCar
}

// Obstacles returns a copy of every obstacle slot.
func (g *Game) Obstacles() [Capacity]Obstacle {
	return g.pool.Slots()
}

// RoadBounds returns the road's left and right edges.
func (g *Game) RoadBounds() (int, int) {
	return g.roadLeft, g.roadRight
}

// Config returns the configuration the game was built with.
func (g *Game) Config() config.RoadConfig {
	return g.cfg
}

// Round returns how many rounds have started, including the current one.
func (g *Game) Round() int {
	return g.round
}

// HitSlot returns the obstacle slot that ended the round, or -1.
func (g *Game) HitSlot() int {
	return g.hitSlot
}
