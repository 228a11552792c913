package behavior

import "github.com/lao-tseu-is-alive/go-boids-flock/pkg/geometry"

// isSelf tells whether other is the same boid as b.
func (b *Boid) isSelf(other *Boid, s Settings) bool {
	if s.LegacyMode {
		return other.Position == b.Position && other.Velocity == b.Velocity
	}
	return other.ID == b.ID
}

// neighbor reports whether other is inside the perception radius of b,
// along with the distance between them.
func (b *Boid) neighbor(other *Boid, s Settings) (float64, bool) {
	if b.isSelf(other, s) {
		return 0, false
	}
	d := other.Position.DistanceTo(b.Position)
	return d, d < s.PerceptionRadius
}

// steer turns a desired direction into a bounded steering vector:
// full speed toward desired, minus the current velocity, clamped to MaxForce.
func (b *Boid) steer(desired geometry.Vector2D, s Settings) geometry.Vector2D {
	if !s.LegacyMode && desired.LenSqr() == 0 {
		return geometry.Zero
	}
	return desired.SetMagnitude(s.MaxSpeed).Sub(b.Velocity).ClampMagnitude(s.MaxForce)
}

// Alignment steers b toward the mean velocity of its neighbors.
func (b *Boid) Alignment(snapshot []Boid, s Settings) geometry.Vector2D {
	var sum geometry.Vector2D
	total := 0

	for i := range snapshot {
		if _, ok := b.neighbor(&snapshot[i], s); ok {
			sum = sum.Add(snapshot[i].Velocity)
			total++
		}
	}
	if total == 0 {
		return geometry.Zero
	}

	return b.steer(sum.Mul(1/float64(total)), s)
}

// Cohesion steers b toward the center of mass of its neighbors.
func (b *Boid) Cohesion(snapshot []Boid, s Settings) geometry.Vector2D {
	var sum geometry.Vector2D
	total := 0

	for i := range snapshot {
		if _, ok := b.neighbor(&snapshot[i], s); ok {
			sum = sum.Add(snapshot[i].Position)
			total++
		}
	}
	if total == 0 {
		return geometry.Zero
	}

	center := sum.Mul(1 / float64(total))
	return b.steer(center.Sub(b.Position), s)
}

// Separation steers b away from its neighbors, closer ones pushing harder.
func (b *Boid) Separation(snapshot []Boid, s Settings) geometry.Vector2D {
	var sum geometry.Vector2D
	total := 0

	for i := range snapshot {
		d, ok := b.neighbor(&snapshot[i], s)
		if !ok {
			continue
		}
		total++
		// a neighbor sitting exactly on b has no direction to push from
		if d == 0 && !s.LegacyMode {
			continue
		}
		push := b.Position.Sub(snapshot[i].Position).Mul(1 / d)
		sum = sum.Add(push)
	}
	if total == 0 {
		return geometry.Zero
	}

	return b.steer(sum.Mul(1/float64(total)), s)
}
