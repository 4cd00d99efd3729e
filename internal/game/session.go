package game

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrSessionAlreadyRunning is returned by Start when the session's
// simulation loop is already running.
var ErrSessionAlreadyRunning = errors.New("game: session already running")

// ErrSessionNotRunning is returned by Stop when the session's simulation
// loop is not currently running.
var ErrSessionNotRunning = errors.New("game: session not running")

// Session owns everything a running game needs: the immutable map, the
// player, the wave currently in progress, and the two-tick simulation loop
// that drives them. A single Session is meant to be used from exactly one
// caller at a time for its non-loop methods (construction, Start, Stop);
// the loop's own goroutines, and the Key* input path, are safe for
// concurrent use throughout a session's lifetime.
//
// The actor lock protects player position/velocity/health/points, the
// current wave and its slots, and listener-list iteration. It does not
// protect MapData, which is immutable, or a DiscretizedMap/VisibilityGraph,
// which are built once ahead of time. Unlike the fair re-entrant lock this
// design is modeled on, the actor lock is a plain, non-reentrant
// channel-based mutex: every acquisition here is structured so the
// acquiring goroutine never re-enters before releasing, which sidesteps
// the need to track owning-goroutine identity at all. A release with
// nothing to release is still treated as a fatal invariant violation.
type Session struct {
	mapData     *MapData
	player      *Player
	currentWave *Wave
	lock        chan struct{}

	waveListeners   map[int]WaveChangeListener
	pointsListeners map[int]PointsChangeListener
	nextListenerID  int

	registry *PlannerRegistry
	keys     *KeyState
	cfg      SessionConfig

	keepAlive atomic.Bool
	cancel    context.CancelFunc
	group     *errgroup.Group
}

// NewSession constructs a session over md with a player at md's spawn
// point. No wave is active and the simulation loop is not running until
// Start is called.
func NewSession(md *MapData, opts ...SessionOption) *Session {
	cfg := newSessionConfig(opts...)
	return &Session{
		mapData:         md,
		player:          NewPlayer(md.PlayerSpawn()),
		lock:            make(chan struct{}, 1),
		waveListeners:   map[int]WaveChangeListener{},
		pointsListeners: map[int]PointsChangeListener{},
		registry:        NewPlannerRegistry(cfg.plannerFactory(md)),
		keys:            NewKeyState(),
		cfg:             cfg,
	}
}

// MapData returns the session's immutable map.
func (s *Session) MapData() *MapData { return s.mapData }

// Player returns the session's player.
func (s *Session) Player() *Player { return s.player }

// CurrentWave returns the wave currently in progress, or nil before the
// first wave has started.
func (s *Session) CurrentWave() *Wave { return s.currentWave }

// Keys returns the session's input key-state map, for the input handler to
// write into and the physics tick to read from.
func (s *Session) Keys() *KeyState { return s.keys }

// Planners returns the session's zombie planner registry, so callers can
// Renew it (e.g. switching to the RRT fallback) while the loop is running.
func (s *Session) Planners() *PlannerRegistry { return s.registry }

// AcquireActorLock blocks until the actor lock is held by the caller.
func (s *Session) AcquireActorLock() {
	s.lock <- struct{}{}
}

// ReleaseActorLock releases the actor lock. It panics if the lock was not
// held, matching the fatal-invariant treatment of mismatched release.
func (s *Session) ReleaseActorLock() bool {
	select {
	case <-s.lock:
		return true
	default:
		panic("game: release of actor lock with no matching acquire")
	}
}

// WaitForActorLock attempts to acquire the actor lock, giving up after
// timeout. It reports whether the lock was acquired.
func (s *Session) WaitForActorLock(timeout time.Duration) bool {
	select {
	case s.lock <- struct{}{}:
		return true
	case <-time.After(timeout):
		return false
	}
}

// AddWaveChangeListener registers l to be notified from within
// StartNextWave, while the actor lock is held. It returns an unsubscribe
// function.
func (s *Session) AddWaveChangeListener(l WaveChangeListener) (unsubscribe func()) {
	id := s.nextListenerID
	s.nextListenerID++
	s.waveListeners[id] = l
	return func() { delete(s.waveListeners, id) }
}

// AddPointsChangeListener registers l to be notified from within
// ChangePlayerPoints, without the actor lock held. It returns an
// unsubscribe function.
func (s *Session) AddPointsChangeListener(l PointsChangeListener) (unsubscribe func()) {
	id := s.nextListenerID
	s.nextListenerID++
	s.pointsListeners[id] = l
	return func() { delete(s.pointsListeners, id) }
}

// StartNextWave advances to a new wave (1 if none has started yet, else the
// current wave number + 1) and dispatches WaveChangeEvent to every
// registered wave listener while still holding the actor lock.
func (s *Session) StartNextWave() {
	s.AcquireActorLock()
	defer s.ReleaseActorLock()

	next := 1
	if s.currentWave != nil {
		next = s.currentWave.WaveNumber() + 1
	}
	s.currentWave = NewWave(next)

	event := WaveChangeEvent{WaveNumber: next}
	for _, l := range s.waveListeners {
		l(event)
	}
}

// ChangePlayerPoints adjusts the player's point total by delta under the
// actor lock, then dispatches PointsChangeEvent to every registered points
// listener AFTER releasing the lock.
func (s *Session) ChangePlayerPoints(delta int) {
	s.AcquireActorLock()
	s.player.ChangePoints(delta)
	count := s.player.PointCount()
	s.ReleaseActorLock()

	event := PointsChangeEvent{PointCount: count}
	for _, l := range s.pointsListeners {
		l(event)
	}
}

// Start spawns the physics and planner tick goroutines and begins the
// first wave, seeding it with up to cfg.initialWaveZombies zombies at
// random spawn points (no more than the wave's spawn budget). It returns ErrSessionAlreadyRunning if the loop is already
// running.
func (s *Session) Start(ctx context.Context) error {
	if !s.keepAlive.CompareAndSwap(false, true) {
		return ErrSessionAlreadyRunning
	}

	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	group, groupCtx := errgroup.WithContext(loopCtx)
	s.group = group

	s.StartNextWave()
	s.AcquireActorLock()
	for i := 0; i < s.cfg.initialWaveZombies; i++ {
		speed := SampleZombieSpeed(s.cfg.rng, s.currentWave.WaveNumber())
		s.currentWave.SpawnZombie(s.mapData.RandomZombieSpawnPoint(s.cfg.rng), speed)
	}
	s.ReleaseActorLock()

	group.Go(func() error { return s.runPhysicsTick(groupCtx) })
	group.Go(func() error { return s.runPlannerTick(groupCtx) })
	return nil
}

// Stop signals both loop goroutines to exit at their next loop head and
// blocks until they have. It returns ErrSessionNotRunning if the loop is
// not currently running.
func (s *Session) Stop() error {
	if !s.keepAlive.CompareAndSwap(true, false) {
		return ErrSessionNotRunning
	}
	s.cancel()
	return s.group.Wait()
}

// runPhysicsTick is the input/physics tick: read input, then translate
// the player and every live zombie by velocity*dt. Repainting is driven
// separately by the ebiten game loop (EbitenGame.Draw).
func (s *Session) runPhysicsTick(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.physicsPeriod)
	defer ticker.Stop()
	dt := s.cfg.physicsPeriod.Seconds()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		var vx, vy float64
		if s.keys.Get(ControlLeft) {
			vx--
		}
		if s.keys.Get(ControlRight) {
			vx++
		}
		if s.keys.Get(ControlUp) {
			vy--
		}
		if s.keys.Get(ControlDown) {
			vy++
		}
		sprinting := s.keys.Get(ControlSprint)

		if s.WaitForActorLock(s.cfg.physicsPeriod / 2) {
			pv := s.player.Velocity()
			s.player.AttemptTranslationIn(pv.X*dt, pv.Y*dt, s.mapData)

			speed := PlayerWalkSpeed
			if sprinting {
				speed = PlayerRunSpeed
			}
			s.player.SetVelocityPolar(math.Atan2(vy, vx), math.Sqrt(vx*vx+vy*vy)*speed)

			if s.currentWave != nil {
				for i := 0; i < MaxZombiesAtOnce; i++ {
					if z := s.currentWave.ZombieAt(i); z != nil {
						zv := z.Velocity()
						z.AttemptTranslationIn(zv.X*dt, zv.Y*dt, s.mapData)
					}
				}
			}
			s.ReleaseActorLock()
		}
	}
}

// runPlannerTick is the planner tick: snapshot goal and zombie positions
// under the lock, compute or salvage one path per live zombie outside the
// lock, then re-acquire it to install new paths and set velocities.
func (s *Session) runPlannerTick(ctx context.Context) error {
	var (
		positions    [MaxZombiesAtOnce]Position
		paths        [MaxZombiesAtOnce]*Path
		live         [MaxZombiesAtOnce]bool
		recalculated [MaxZombiesAtOnce]bool
	)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		iterationStart := time.Now()

		s.AcquireActorLock()
		goal := s.player.Position()
		wave := s.currentWave
		for i := 0; i < MaxZombiesAtOnce; i++ {
			recalculated[i] = false
			live[i] = false
			if wave == nil {
				continue
			}
			if z := wave.ZombieAt(i); z != nil {
				positions[i] = z.Position()
				paths[i] = wave.PathAt(i)
				live[i] = true
			}
		}
		s.ReleaseActorLock()

		if wave != nil {
			planner := s.registry.Current()
			for i := 0; i < MaxZombiesAtOnce; i++ {
				if !live[i] {
					continue
				}
				if salvaged, ok := planner.SalvagePath(paths[i], positions[i], goal); ok {
					paths[i] = salvaged
				} else {
					paths[i] = planner.GeneratePath(positions[i], goal)
				}
				recalculated[i] = true
			}
		}

		s.AcquireActorLock()
		if wave != nil && wave == s.currentWave {
			for i := 0; i < MaxZombiesAtOnce; i++ {
				z := wave.ZombieAt(i)
				if recalculated[i] && z != nil {
					wave.SetPathAt(i, paths[i])
				}
				if z == nil {
					continue
				}
				p := wave.PathAt(i)
				if p == nil {
					wave.RespawnZombie(i, s.mapData.RandomZombieSpawnPoint(s.cfg.rng))
					continue
				}
				if p.AtNextPosition(positions[i], 2) {
					p.ConsumeNext()
				}
				z.SetVelocity(p.NextMovement(positions[i], z.Speed()))
			}
		}
		s.ReleaseActorLock()

		remaining := s.cfg.plannerPeriod - time.Since(iterationStart)
		if remaining > 0 {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(remaining):
			}
		}
	}
}

// String renders a brief human-readable status line: wave number, point
// count and player health.
func (s *Session) String() string {
	wave := 0
	if s.currentWave != nil {
		wave = s.currentWave.WaveNumber()
	}
	return fmt.Sprintf("wave=%d points=%d health=%d", wave, s.player.PointCount(), s.player.Health())
}
