package game

import "image/color"

// Actor is the base concept for anything that occupies a position in the
// world, moves under a velocity, and carries health. It appears on-screen
// as a filled disk of radius ActorRadius.
type Actor struct {
	col      color.RGBA
	position Position
	velocity Velocity
	health   int

	// colorize recomputes col from the current health. It stands in for
	// the abstract "updateColor" every concrete actor kind supplies; Actor
	// itself has no sensible default.
	colorize func(health int) color.RGBA
}

func newActor(initial color.RGBA, p Position, h int, colorize func(int) color.RGBA) Actor {
	return Actor{col: initial, position: p, health: h, colorize: colorize}
}

// Color returns the actor's current on-screen color.
func (a *Actor) Color() color.RGBA { return a.col }

// Position returns the actor's current position.
func (a *Actor) Position() Position { return a.position }

// Velocity returns the actor's current velocity.
func (a *Actor) Velocity() Velocity { return a.velocity }

// Health returns the actor's current health.
func (a *Actor) Health() int { return a.health }

// IsDead reports whether the actor's health has dropped to zero or below.
func (a *Actor) IsDead() bool { return a.health <= 0 }

// ChangeHealth adjusts health by delta and recomputes the actor's color.
// Concrete actor kinds that need to clamp health (the player, at its max)
// should adjust health directly before calling this, or provide a
// clamping colorize function; ChangeHealth itself applies no clamp.
func (a *Actor) ChangeHealth(delta int) {
	a.health += delta
	if a.colorize != nil {
		a.col = a.colorize(a.health)
	}
}

// SetPosition overwrites the actor's position outright, used for spawning
// and respawning rather than incremental movement.
func (a *Actor) SetPosition(p Position) { a.position = p }

// SetVelocity overwrites the actor's velocity outright.
func (a *Actor) SetVelocity(v Velocity) { a.velocity = v }

// SetVelocityPolar sets velocity from a direction (radians) and magnitude.
func (a *Actor) SetVelocityPolar(direction, magnitude float64) {
	a.velocity = VelocityFromPolar(direction, magnitude)
}

// AttemptTranslationIn moves the actor by (dx,dy) if the resulting position
// is valid against md's inflated raster. Failing that, it tries sliding
// along the x-axis alone, then the y-axis alone, and finally leaves the
// actor in place. This is the axis-separated sliding collision that lets
// an actor brush along a wall instead of stopping dead at it.
func (a *Actor) AttemptTranslationIn(dx, dy float64, md *MapData) {
	if both := a.position.Translated(dx, dy); md.PositionIsValid(both) {
		a.position = both
		return
	}
	if xOnly := a.position.Translated(dx, 0); md.PositionIsValid(xOnly) {
		a.position = xOnly
		return
	}
	if yOnly := a.position.Translated(0, dy); md.PositionIsValid(yOnly) {
		a.position = yOnly
	}
}

// UpdatePosition advances position by velocity*dt, with no collision
// checking. The live simulation loop uses AttemptTranslationIn instead.
func (a *Actor) UpdatePosition(dt float64) {
	a.position = a.position.Translated(a.velocity.X*dt, a.velocity.Y*dt)
}

// lerpChannel linearly interpolates a single color channel between lo and
// hi as t ranges over [0,1], clamping to [0,255].
func lerpChannel(lo, hi uint8, t float64) uint8 {
	v := float64(lo) + (float64(hi)-float64(lo))*t
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// lerpColor interpolates between low (t=0) and full (t=1).
func lerpColor(low, full color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: lerpChannel(low.R, full.R, t),
		G: lerpChannel(low.G, full.G, t),
		B: lerpChannel(low.B, full.B, t),
		A: 255,
	}
}
