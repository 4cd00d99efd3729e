package game

import (
	"context"
	"math/rand"
	"testing"
	"time"
)

func mustBlankSessionMapData(t *testing.T) *MapData {
	t.Helper()
	img := blankMapImage()
	pSpawn := NewPosition(300, 200)
	sd := spawnData{playerSpawn: &pSpawn, zombieSpawns: []Position{NewPosition(10, 10), NewPosition(590, 390)}}
	md, err := NewMapData(img, sd)
	if err != nil {
		t.Fatalf("NewMapData: %v", err)
	}
	return md
}

func TestSession_StartSeedsWaveAndZombies(t *testing.T) {
	md := mustBlankSessionMapData(t)
	s := NewSession(md,
		WithPhysicsPeriod(2*time.Millisecond),
		WithPlannerPeriod(5*time.Millisecond),
		WithInitialWaveZombies(4),
		WithRNG(rand.New(rand.NewSource(1))),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer func() {
		if err := s.Stop(); err != nil {
			t.Fatalf("Stop: %v", err)
		}
	}()

	if s.CurrentWave() == nil || s.CurrentWave().WaveNumber() != 1 {
		t.Fatalf("expected wave 1 active, got %v", s.CurrentWave())
	}

	count := 0
	for i := 0; i < MaxZombiesAtOnce; i++ {
		if s.CurrentWave().ZombieAt(i) != nil {
			count++
		}
	}
	if count != 4 {
		t.Fatalf("expected 4 seeded zombies, got %d", count)
	}
}

func TestSession_DoubleStartFails(t *testing.T) {
	md := mustBlankSessionMapData(t)
	s := NewSession(md, WithPhysicsPeriod(5*time.Millisecond), WithPlannerPeriod(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop()

	if err := s.Start(ctx); err != ErrSessionAlreadyRunning {
		t.Fatalf("expected ErrSessionAlreadyRunning, got %v", err)
	}
}

func TestSession_StopWithoutStartFails(t *testing.T) {
	md := mustBlankSessionMapData(t)
	s := NewSession(md)
	if err := s.Stop(); err != ErrSessionNotRunning {
		t.Fatalf("expected ErrSessionNotRunning, got %v", err)
	}
}

func TestSession_PhysicsTickMovesPlayerWithInput(t *testing.T) {
	md := mustBlankSessionMapData(t)
	s := NewSession(md,
		WithPhysicsPeriod(2*time.Millisecond),
		WithPlannerPeriod(50*time.Millisecond),
		WithInitialWaveZombies(0),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop()

	s.Keys().Set(ControlRight, true)
	start := s.Player().Position()

	time.Sleep(40 * time.Millisecond)

	s.AcquireActorLock()
	moved := s.Player().Position()
	s.ReleaseActorLock()

	if !(moved.X > start.X) {
		t.Fatalf("expected player to move right, start=%v moved=%v", start, moved)
	}
}

func TestSession_ChangePlayerPointsNotifiesListener(t *testing.T) {
	md := mustBlankSessionMapData(t)
	s := NewSession(md)

	received := make(chan int, 1)
	unsub := s.AddPointsChangeListener(func(e PointsChangeEvent) {
		received <- e.PointCount
	})
	defer unsub()

	s.ChangePlayerPoints(5)

	select {
	case got := <-received:
		if got != 5 {
			t.Fatalf("expected point count 5, got %d", got)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for points listener")
	}
}

func TestSession_StartNextWaveNotifiesListenerWithLockHeld(t *testing.T) {
	md := mustBlankSessionMapData(t)
	s := NewSession(md)

	var observedLockHeld bool
	unsub := s.AddWaveChangeListener(func(e WaveChangeEvent) {
		select {
		case s.lock <- struct{}{}:
			<-s.lock
			observedLockHeld = false
		default:
			observedLockHeld = true
		}
	})
	defer unsub()

	s.StartNextWave()
	if !observedLockHeld {
		t.Fatal("expected the wave listener to observe the actor lock already held")
	}
}
