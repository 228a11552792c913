package behavior

import (
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/geometry"
)

// Boid represents a single entity in the flock.
// Boids is an artificial life program, developed by Craig Reynolds in 1986,
// which simulates the flocking behaviour of birds, and related group motion.
// The name "boid" corresponds to a shortened version of "bird-oid object".
// https://en.wikipedia.org/wiki/Boids
type Boid struct {
	// ID is the stable index of the boid inside its flock.
	ID           int
	Position     geometry.Vector2D
	Velocity     geometry.Vector2D
	Acceleration geometry.Vector2D // recomputed from scratch every step
}

// Settings holds the physics constants of one simulation run.
type Settings struct {
	Width  float64
	Height float64

	Population int

	MaxForce         float64 // steering vectors are clamped to this length
	MaxSpeed         float64 // velocity is clamped to this length
	PerceptionRadius float64 // neighbors must be strictly closer than this

	SeparationWeight float64

	// LegacyMode excludes "self" by comparing position and velocity instead
	// of ID, and lets zero-length steering produce NaN instead of nothing.
	LegacyMode bool
}

// DefaultSettings returns the classic tuning: 200 boids in a 1000x1000 world.
func DefaultSettings() Settings {
	return Settings{
		Width:            1000,
		Height:           1000,
		Population:       200,
		MaxForce:         0.01,
		MaxSpeed:         1.0,
		PerceptionRadius: 50,
		SeparationWeight: 0.9,
	}
}

// New creates a boid with a position uniform over the world and a velocity
// whose components are uniform in [0, 1).
func New(id int, s Settings, rng *rand.Rand) Boid {
	return Boid{
		ID: id,
		Position: geometry.Vector2D{
			X: rng.Float64() * s.Width,
			Y: rng.Float64() * s.Height,
		},
		Velocity: geometry.Vector2D{
			X: rng.Float64(),
			Y: rng.Float64(),
		},
	}
}

// Flock recomputes the acceleration of b from the three steering rules,
// evaluated against the snapshot of the whole flock.
func (b *Boid) Flock(snapshot []Boid, s Settings) {
	alignment := b.Alignment(snapshot, s)
	cohesion := b.Cohesion(snapshot, s)
	separation := b.Separation(snapshot, s).Mul(s.SeparationWeight)

	b.Acceleration = cohesion.Add(alignment).Add(separation)
}

// Update advances b by one step. Position moves with the velocity of the
// previous step, then the new acceleration is applied to the velocity.
func (b *Boid) Update(snapshot []Boid, s Settings) {
	b.Flock(snapshot, s)

	b.Position = b.Position.Add(b.Velocity)
	b.Velocity = b.Velocity.Add(b.Acceleration).ClampMagnitude(s.MaxSpeed)

	b.Wrap(s.Width, s.Height)
}

// Wrap teleports b to the opposite edge once it has left the world.
// A coordinate exactly on an edge is left alone.
func (b *Boid) Wrap(width, height float64) {
	if b.Position.X > width {
		b.Position.X = 0
	}
	if b.Position.X < 0 {
		b.Position.X = width
	}
	if b.Position.Y > height {
		b.Position.Y = 0
	}
	if b.Position.Y < 0 {
		b.Position.Y = height
	}
}
