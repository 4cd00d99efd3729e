package game

import (
	"math/rand"
	"testing"
)

func TestZombie_UpdateColorInterpolatesByHealthFraction(t *testing.T) {
	z := NewZombie(NewPosition(0, 0), 100, ZombieMinSpeed)
	if z.Color() != zombieFullHealthColor {
		t.Fatalf("expected full-health color at spawn, got %+v", z.Color())
	}
	z.ChangeHealth(-100)
	if z.Color() != zombieLowHealthColor {
		t.Fatalf("expected low-health color at zero health, got %+v", z.Color())
	}
}

func TestSampleZombieSpeed_StaysWithinBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for wave := 0; wave < 20; wave++ {
		for i := 0; i < 200; i++ {
			s := SampleZombieSpeed(rng, wave)
			if s < ZombieMinSpeed || s > ZombieMaxSpeed {
				t.Fatalf("wave %d: sampled speed %f out of bounds [%f,%f]", wave, s, ZombieMinSpeed, ZombieMaxSpeed)
			}
		}
	}
}

func TestSampleZombieSpeed_HigherWavesSkewFaster(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	var lowWaveTotal, highWaveTotal float64
	const trials = 500
	for i := 0; i < trials; i++ {
		lowWaveTotal += SampleZombieSpeed(rng, 0)
	}
	for i := 0; i < trials; i++ {
		highWaveTotal += SampleZombieSpeed(rng, 60)
	}
	if highWaveTotal <= lowWaveTotal {
		t.Fatalf("expected higher waves to skew faster on average: low=%f high=%f", lowWaveTotal, highWaveTotal)
	}
}
