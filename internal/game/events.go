package game

// WaveChangeEvent carries the wave number a session just transitioned to.
type WaveChangeEvent struct {
	WaveNumber int
}

// WaveChangeListener is notified when a session starts a new wave. It runs
// inside StartNextWave with the actor lock still held, so it must not call
// back into any Session method that itself acquires the lock.
type WaveChangeListener func(WaveChangeEvent)

// PointsChangeEvent carries a player's updated point count.
type PointsChangeEvent struct {
	PointCount int
}

// PointsChangeListener is notified when a player's point count changes. It
// runs inside ChangePlayerPoints WITHOUT the actor lock held, unlike
// WaveChangeListener; a points listener is free to call back into locking
// Session methods.
type PointsChangeListener func(PointsChangeEvent)
