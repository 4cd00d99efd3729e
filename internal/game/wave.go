package game

import "math"

// MaxZombiesAtOnce is the number of parallel zombie/path slots a wave
// maintains, regardless of how many zombies it still has left to spawn.
const MaxZombiesAtOnce = 25

// Wave tracks one round's difficulty (zombie health, spawn budget) plus the
// fixed-size slotted arrays of currently active zombies and their paths.
// Slot i's path is non-nil only if slot i's zombie is also non-nil; the
// converse does not hold for a zombie that has not yet been given a path.
type Wave struct {
	waveNumber      int
	zombieHealth    int
	remainingSpawns int
	zombies         [MaxZombiesAtOnce]*Zombie
	paths           [MaxZombiesAtOnce]*Path
}

// NewWave builds the wave with number waveNumber, deriving its zombie
// health and spawn budget from that number.
func NewWave(waveNumber int) *Wave {
	return &Wave{
		waveNumber:      waveNumber,
		zombieHealth:    125 * waveNumber,
		remainingSpawns: int(math.Floor(5 * math.Pow(1.2, float64(waveNumber)))),
	}
}

// WaveNumber returns this wave's number.
func (w *Wave) WaveNumber() int { return w.waveNumber }

// ZombieHealth returns the spawn health for zombies in this wave.
func (w *Wave) ZombieHealth() int { return w.zombieHealth }

// RemainingSpawns returns how many more zombies this wave will spawn.
func (w *Wave) RemainingSpawns() int { return w.remainingSpawns }

// ZombieAt returns the zombie in slot i, or nil if the slot is empty.
func (w *Wave) ZombieAt(i int) *Zombie { return w.zombies[i] }

// PathAt returns the path in slot i, or nil if the slot's zombie has no
// path yet (or the slot is empty).
func (w *Wave) PathAt(i int) *Path { return w.paths[i] }

// SetPathAt installs path as the current path for slot i's zombie.
func (w *Wave) SetPathAt(i int, path *Path) { w.paths[i] = path }

// KilledZombieAt clears slot i's zombie and path. It reports whether slot i
// held a zombie to begin with.
func (w *Wave) KilledZombieAt(i int) bool {
	if w.zombies[i] == nil {
		return false
	}
	w.zombies[i] = nil
	w.paths[i] = nil
	return true
}

// SpawnZombie places a new zombie of speed at spawnPoint into the lowest
// empty slot, decrementing the spawn budget. It reports whether a zombie
// was actually spawned (false if the budget is exhausted or every slot is
// full).
func (w *Wave) SpawnZombie(spawnPoint Position, speed float64) bool {
	if w.remainingSpawns <= 0 {
		return false
	}
	for i := range w.zombies {
		if w.zombies[i] == nil {
			w.zombies[i] = NewZombie(spawnPoint, w.zombieHealth, speed)
			w.paths[i] = nil
			w.remainingSpawns--
			return true
		}
	}
	return false
}

// RespawnZombie resets slot i's zombie to zero velocity at respawnPoint and
// clears its path, preserving its health and speed. It reports whether
// slot i held a zombie to respawn.
func (w *Wave) RespawnZombie(i int, respawnPoint Position) bool {
	z := w.zombies[i]
	if z == nil {
		return false
	}
	z.SetVelocity(NewVelocity())
	z.SetPosition(respawnPoint)
	w.paths[i] = nil
	return true
}

// IsDoneSpawning reports whether this wave has no zombies left to spawn.
func (w *Wave) IsDoneSpawning() bool { return w.remainingSpawns == 0 }

// IsFinished reports whether the wave is complete: no more spawns left and
// every slot empty.
func (w *Wave) IsFinished() bool {
	if !w.IsDoneSpawning() {
		return false
	}
	for _, z := range w.zombies {
		if z != nil {
			return false
		}
	}
	return true
}
