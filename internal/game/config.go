package game

import (
	"math/rand"
	"time"
)

const (
	defaultPhysicsPeriod      = 25 * time.Millisecond // 40 FPS
	defaultPlannerPeriod      = 100 * time.Millisecond
	defaultDiscretizeRatio    = 10
	defaultSalvageThreshold   = 5.0
	defaultInitialWaveZombies = 12
)

// SessionConfig collects every tunable of a Session's construction and
// simulation loop. It is built from defaults plus SessionOption values, in
// the functional-options style, rather than as a struct literal, so new
// tunables can be added without breaking existing call sites.
type SessionConfig struct {
	physicsPeriod      time.Duration
	plannerPeriod      time.Duration
	initialWaveZombies int
	salvageThreshold   float64
	rng                *rand.Rand
	plannerFactory     func(*MapData) Planner
}

// SessionOption customizes a SessionConfig.
type SessionOption func(*SessionConfig)

// WithPhysicsPeriod overrides the physics/render tick's target period.
func WithPhysicsPeriod(d time.Duration) SessionOption {
	return func(c *SessionConfig) { c.physicsPeriod = d }
}

// WithPlannerPeriod overrides the planner tick's target period.
func WithPlannerPeriod(d time.Duration) SessionOption {
	return func(c *SessionConfig) { c.plannerPeriod = d }
}

// WithInitialWaveZombies overrides how many zombies Start tries to spawn
// immediately when the first wave starts; spawns beyond that wave's spawn
// budget are refused.
func WithInitialWaveZombies(n int) SessionOption {
	return func(c *SessionConfig) { c.initialWaveZombies = n }
}

// WithSalvageThreshold overrides the salvage endpoint-drift threshold
// passed to the default planner factory. It has no effect if
// WithZombiesPlanner is also given.
func WithSalvageThreshold(t float64) SessionOption {
	return func(c *SessionConfig) { c.salvageThreshold = t }
}

// WithRNG overrides the pseudo-random source used for zombie spawn point
// selection and speed sampling.
func WithRNG(rng *rand.Rand) SessionOption {
	return func(c *SessionConfig) { c.rng = rng }
}

// WithZombiesPlanner overrides the factory used to build the session's
// initial zombie planner, e.g. to start with a visibility-graph planner or
// the RRT fallback instead of the grid A* default.
func WithZombiesPlanner(factory func(*MapData) Planner) SessionOption {
	return func(c *SessionConfig) { c.plannerFactory = factory }
}

func defaultSessionConfig() SessionConfig {
	return SessionConfig{
		physicsPeriod:      defaultPhysicsPeriod,
		plannerPeriod:      defaultPlannerPeriod,
		initialWaveZombies: defaultInitialWaveZombies,
		salvageThreshold:   defaultSalvageThreshold,
		rng:                rand.New(rand.NewSource(1)), //#nosec G404
	}
}

func newSessionConfig(opts ...SessionOption) SessionConfig {
	cfg := defaultSessionConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.plannerFactory == nil {
		threshold := cfg.salvageThreshold
		cfg.plannerFactory = func(md *MapData) Planner {
			dm := NewDiscretizedMap(md, defaultDiscretizeRatio)
			return NewGridAStarPlanner(dm, threshold)
		}
	}
	return cfg
}
