package game

// Planner is the common surface every concrete path-planning strategy
// implements: grid-Dijkstra, grid-A*, VG-Dijkstra, VG-A*, and RRT.
type Planner interface {
	// GeneratePath computes a fresh path from start to goal, or nil if
	// none exists.
	GeneratePath(start, goal Position) *Path

	// SalvagePath attempts to cheaply reuse old rather than recompute,
	// per the salvage contract. It returns the salvaged path and true on
	// success, or (nil, false) if salvage was refused.
	SalvagePath(old *Path, newStart, newGoal Position) (*Path, bool)
}
