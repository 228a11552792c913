package behavior

import (
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/geometry"
)

// BoidSide is the side length of the square drawn for every boid.
const BoidSide = 8.0

// Square describes how a boid is drawn: a filled square whose top-left
// corner sits on the boid position.
type Square struct {
	Side float64
}

// RenderItem is the read-only view of one boid handed to the renderer.
type RenderItem struct {
	Position geometry.Vector2D
	Shape    Square
}

// Flock is a fixed population of boids advanced one step at a time.
// It is not safe for concurrent use.
type Flock struct {
	settings Settings
	boids    []Boid
	snapshot []Boid // state at the start of the current step, reused
	steps    uint64
}

// NewFlock creates settings.Population boids at random.
func NewFlock(s Settings, rng *rand.Rand) *Flock {
	boids := make([]Boid, s.Population)
	for i := range boids {
		boids[i] = New(i, s, rng)
	}
	return &Flock{
		settings: s,
		boids:    boids,
		snapshot: make([]Boid, 0, len(boids)),
	}
}

// NewFlockFrom creates a flock from boids placed by the caller.
// IDs are reassigned to match the index of each boid.
func NewFlockFrom(s Settings, boids []Boid) *Flock {
	own := make([]Boid, len(boids))
	copy(own, boids)
	for i := range own {
		own[i].ID = i
	}
	s.Population = len(own)
	return &Flock{
		settings: s,
		boids:    own,
		snapshot: make([]Boid, 0, len(own)),
	}
}

// Step advances every boid by one time unit.
// All boids read the same copy of the flock taken before anyone moves,
// so the outcome does not depend on the update order.
func (f *Flock) Step() {
	f.snapshot = append(f.snapshot[:0], f.boids...)
	for i := range f.boids {
		f.boids[i].Update(f.snapshot, f.settings)
	}
	f.steps++
}

// SnapshotForRender returns where to draw each boid.
func (f *Flock) SnapshotForRender() []RenderItem {
	items := make([]RenderItem, len(f.boids))
	for i, b := range f.boids {
		items[i] = RenderItem{
			Position: b.Position,
			Shape:    Square{Side: BoidSide},
		}
	}
	return items
}

// Boids returns a copy of the current state of every boid.
func (f *Flock) Boids() []Boid {
	out := make([]Boid, len(f.boids))
	copy(out, f.boids)
	return out
}

// Len returns the population size.
func (f *Flock) Len() int { return len(f.boids) }

// Steps returns how many steps have been completed.
func (f *Flock) Steps() uint64 { return f.steps }

// Settings returns the constants the flock runs with.
func (f *Flock) Settings() Settings { return f.settings }

// MeanSpeed returns the average velocity length over the flock.
func (f *Flock) MeanSpeed() float64 {
	if len(f.boids) == 0 {
		return 0
	}
	total := 0.0
	for _, b := range f.boids {
		total += b.Velocity.Len()
	}
	return total / float64(len(f.boids))
}
