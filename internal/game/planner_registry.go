package game

import "sync/atomic"

// PlannerFactory builds a fresh Planner, or reports failure (for example an
// unrecognized configuration) via the second return value.
type PlannerFactory func() (Planner, bool)

// plannerBox lets the zero value of atomic.Value hold a nil Planner without
// atomic.Value's "consistent concrete type" panic on first Store.
type plannerBox struct {
	p Planner
}

// PlannerRegistry holds the single, atomically-swappable planner used for
// all zombie path computations in a session. Swapping planners (e.g. from
// grid-A* to the RRT fallback) never blocks an in-flight computation; it
// only affects computations that read the handle afterward.
type PlannerRegistry struct {
	handle atomic.Value // *plannerBox
}

// NewPlannerRegistry returns a registry initialized to the given planner.
func NewPlannerRegistry(initial Planner) *PlannerRegistry {
	r := &PlannerRegistry{}
	r.handle.Store(&plannerBox{p: initial})
	return r
}

// Current returns the active planner. Every zombie path computation MUST
// call this exactly once and reuse the result for the whole computation,
// rather than calling it again mid-computation, to avoid mixing state
// across a concurrent Renew.
func (r *PlannerRegistry) Current() Planner {
	return r.handle.Load().(*plannerBox).p
}

// Renew constructs a new planner via factory and atomically installs it as
// the active planner. It returns false, leaving the current planner in
// place, if factory reports failure.
func (r *PlannerRegistry) Renew(factory PlannerFactory) bool {
	p, ok := factory()
	if !ok || p == nil {
		return false
	}
	r.handle.Store(&plannerBox{p: p})
	return true
}
