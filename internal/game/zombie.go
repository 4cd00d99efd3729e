package game

import (
	"image/color"
	"math"
	"math/rand"
)

const (
	// ZombieMinSpeed is the slowest a zombie can be sampled at spawn.
	ZombieMinSpeed = 10.0
	// ZombieMaxSpeed is the fastest a zombie can be sampled at spawn,
	// equal to the player's walking speed.
	ZombieMaxSpeed = PlayerWalkSpeed
	// zombieDiffInSpeeds is the width of the zombie speed range.
	zombieDiffInSpeeds = ZombieMaxSpeed - ZombieMinSpeed
)

var (
	zombieFullHealthColor = color.RGBA{R: 0, G: 200, B: 0, A: 255}
	zombieLowHealthColor  = color.RGBA{R: 211, G: 211, B: 211, A: 255} // light gray
)

// Zombie chases the player using whatever path the active planner last
// computed for it. Its speed is fixed at spawn.
type Zombie struct {
	Actor
	initialHealth int
	speed         float64
}

// NewZombie constructs a zombie at p with the given health and speed. speed
// is normally produced by SampleZombieSpeed.
func NewZombie(p Position, health int, speed float64) *Zombie {
	z := &Zombie{initialHealth: health, speed: speed}
	z.Actor = newActor(zombieFullHealthColor, p, health, z.updateColor)
	return z
}

// Speed returns this zombie's fixed movement speed.
func (z *Zombie) Speed() float64 { return z.speed }

func (z *Zombie) updateColor(health int) color.RGBA {
	if z.initialHealth <= 0 {
		return zombieLowHealthColor
	}
	t := float64(health) / float64(z.initialHealth)
	return lerpColor(zombieLowHealthColor, zombieFullHealthColor, t)
}

// SampleZombieSpeed draws a speed for a zombie spawning into wave
// waveNumber from a standard normal skewed toward higher speeds as the
// wave number increases, clamped to [ZombieMinSpeed, ZombieMaxSpeed].
func SampleZombieSpeed(rng *rand.Rand, waveNumber int) float64 {
	g := rng.NormFloat64() * 10 //#nosec G404
	bias := math.Min(60, float64(waveNumber)) + 15
	pct := math.Max(1.0, math.Min(100.0, bias+g)) / 100
	return ZombieMinSpeed + zombieDiffInSpeeds*pct
}
