package game

// Path is a finite, ordered polyline produced by a planner. originalStart
// and originalGoal are stamped once at construction and never change,
// even when the path is later salvaged; only its final waypoint may be
// rewritten by salvage.
type Path struct {
	points        []Position
	idx           int // index of the next unconsumed waypoint
	originalStart Position
	originalGoal  Position
}

// NewPath builds a Path over points, recording originalStart/originalGoal.
// points must be non-empty.
func NewPath(originalStart, originalGoal Position, points []Position) *Path {
	return &Path{
		points:        points,
		originalStart: originalStart,
		originalGoal:  originalGoal,
	}
}

// OriginalStart returns the start position recorded at construction.
func (p *Path) OriginalStart() Position { return p.originalStart }

// OriginalGoal returns the goal position recorded at construction.
func (p *Path) OriginalGoal() Position { return p.originalGoal }

// PointCount returns the total number of waypoints in the path, ignoring
// consumption progress.
func (p *Path) PointCount() int { return len(p.points) }

// Points returns the full waypoint slice, for rendering a debug overlay.
// Callers must not mutate the result.
func (p *Path) Points() []Position { return p.points }

// remaining reports whether any waypoint has not yet been consumed.
func (p *Path) remaining() bool { return p.idx < len(p.points) }

// AtNextPosition reports whether current is within eps of the path's next
// unconsumed waypoint.
func (p *Path) AtNextPosition(current Position, eps float64) bool {
	if !p.remaining() {
		return false
	}
	return current.Distance(p.points[p.idx]) < eps
}

// ConsumeNext advances past the current next waypoint.
func (p *Path) ConsumeNext() {
	if p.remaining() {
		p.idx++
	}
}

// NextMovement returns a velocity from current toward the path's next
// unconsumed waypoint, at the given speed. If the path is exhausted, the
// zero velocity is returned.
func (p *Path) NextMovement(current Position, speed float64) Velocity {
	if !p.remaining() {
		return NewVelocity()
	}
	target := p.points[p.idx]
	return VelocityFromPolar(current.Angle(target), speed)
}

// Salvage attempts the path-salvage shortcut described by the planning
// contract: an existing path is reused, with only its final waypoint
// rewritten, when both endpoints have moved less than threshold from the
// path's original endpoints and the path holds at least minPoints
// waypoints. It never touches the start or interior waypoints.
func Salvage(old *Path, newStart, newGoal Position, threshold float64, minPoints int) (*Path, bool) {
	if old == nil || old.PointCount() < minPoints {
		return nil, false
	}
	if old.originalStart.Distance(newStart) >= threshold {
		return nil, false
	}
	if old.originalGoal.Distance(newGoal) >= threshold {
		return nil, false
	}

	points := make([]Position, len(old.points))
	copy(points, old.points)
	points[len(points)-1] = newGoal

	salvaged := &Path{
		points:        points,
		idx:           old.idx,
		originalStart: old.originalStart,
		originalGoal:  old.originalGoal,
	}
	return salvaged, true
}
