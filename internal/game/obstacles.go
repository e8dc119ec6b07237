package game

import (
	"math/rand"

	"github.com/vovakirdan/roadrush/internal/config"
	"github.com/vovakirdan/roadrush/internal/core"
)

// Capacity is the fixed number of obstacle slots.
const Capacity = 5

// Obstacle is one slot in the pool. X is the horizontal center, Y the top edge.
type Obstacle struct {
	X      int
	Y      int
	Active bool
}

// Rect returns the collision rectangle for an obstacle of the given size.
func (o Obstacle) Rect(w, h int) core.Rect {
	return core.CenteredFromTop(o.X, o.Y, w, h)
}

// Pool is a fixed arena of obstacle slots. Slots are activated and retired
// in place; the pool never allocates after construction.
type Pool struct {
	slots [Capacity]Obstacle
	cfg   config.ObstacleConfig
	rng   *rand.Rand
}

// NewPool creates a pool drawing positions and spawn rolls from rng.
func NewPool(cfg config.ObstacleConfig, rng *rand.Rand) *Pool {
	return &Pool{cfg: cfg, rng: rng}
}

// Initialize retires every slot and gives each a fresh lane-constrained x.
func (p *Pool) Initialize(roadLeft, roadRight int) {
	for i := range p.slots {
		p.slots[i] = Obstacle{
			X: p.randomX(roadLeft, roadRight),
			Y: 0,
		}
	}
}

// AdvanceAndCull moves every active obstacle down by speed, retires those whose
// top has passed screenHeight and reports the first slot overlapping the car.
// The scan runs in slot order and stops at the first collision, so simultaneous
// hits always resolve to the lowest slot index.
func (p *Pool) AdvanceAndCull(speed, screenHeight int, car Car) (int, bool) {
	for i := range p.slots {
		o := &p.slots[i]
		if !o.Active {
			continue
		}

		o.Y += speed
		if o.Y > screenHeight {
			o.Active = false
			continue
		}

		if core.Overlaps(car.X, car.Y, car.Width, car.Height, o.X, o.Y, p.cfg.Width, p.cfg.Height) {
			return i, true
		}
	}
	return -1, false
}

// TrySpawn gives each free slot a (spawnBase + speed) / spawnRange chance to
// activate above the screen. A passing roll is vetoed while any obstacle is
// still close to the top. At most one obstacle spawns per call.
func (p *Pool) TrySpawn(roadLeft, roadRight, speed int) bool {
	for i := range p.slots {
		if p.slots[i].Active {
			continue
		}
		if p.rng.Intn(p.cfg.SpawnRange) >= p.cfg.SpawnBase+speed {
			continue
		}
		if p.nearTop() > 0 {
			continue
		}

		p.slots[i] = Obstacle{
			X:      p.randomX(roadLeft, roadRight),
			Y:      p.cfg.SpawnY,
			Active: true,
		}
		return true
	}
	return false
}

// nearTop counts active obstacles inside the spawn guard zone.
func (p *Pool) nearTop() int {
	n := 0
	limit := p.cfg.GuardHeights * p.cfg.Height
	for _, o := range p.slots {
		if o.Active && o.Y < limit {
			n++
		}
	}
	return n
}

// ActiveCount returns the number of active slots.
func (p *Pool) ActiveCount() int {
	n := 0
	for _, o := range p.slots {
		if o.Active {
			n++
		}
	}
	return n
}

// Slots returns a copy of every slot, active or not.
func (p *Pool) Slots() [Capacity]Obstacle {
	return p.slots
}

// randomX picks a center leaving a full obstacle width of clearance inside the road.
func (p *Pool) randomX(roadLeft, roadRight int) int {
	return roadLeft + p.cfg.Width/2 + p.rng.Intn(roadRight-roadLeft-p.cfg.Width)
}
