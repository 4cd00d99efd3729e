package game

import "math"

// DiscretizedMap down-samples a MapData's inflated raster into a coarser
// occupancy grid at ratio D: each cell covers a DxD block of inflated
// pixels and is occupied iff any pixel in that block is an obstacle. It
// also provides the line-of-sight raycasting shared by every planner.
type DiscretizedMap struct {
	md         *MapData
	ratio      int
	cols, rows int
	occupied   []bool
}

// NewDiscretizedMap builds a DiscretizedMap over md at the given ratio.
// ratio must be >= 1.
func NewDiscretizedMap(md *MapData, ratio int) *DiscretizedMap {
	if ratio < 1 {
		ratio = 1
	}
	cols := (md.Width() + ratio - 1) / ratio
	rows := (md.Height() + ratio - 1) / ratio
	dm := &DiscretizedMap{
		md:    md,
		ratio: ratio,
		cols:  cols,
		rows:  rows,
	}
	dm.occupied = make([]bool, cols*rows)
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			dm.occupied[cy*cols+cx] = dm.blockHasObstacle(cx, cy)
		}
	}
	return dm
}

// blockHasObstacle reports whether any inflated pixel in cell (cx,cy)'s
// backing block is an obstacle.
func (dm *DiscretizedMap) blockHasObstacle(cx, cy int) bool {
	x0, y0 := cx*dm.ratio, cy*dm.ratio
	x1, y1 := x0+dm.ratio, y0+dm.ratio
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if !dm.md.inBounds(x, y) || dm.md.inflated[y*dm.md.width+x] {
				return true
			}
		}
	}
	return false
}

// Ratio returns the cell size, in map pixels, of this DiscretizedMap.
func (dm *DiscretizedMap) Ratio() int { return dm.ratio }

// Cols and Rows report the grid dimensions.
func (dm *DiscretizedMap) Cols() int { return dm.cols }
func (dm *DiscretizedMap) Rows() int { return dm.rows }

// inCellBounds reports whether (cx,cy) is within the grid.
func (dm *DiscretizedMap) inCellBounds(cx, cy int) bool {
	return cx >= 0 && cy >= 0 && cx < dm.cols && cy < dm.rows
}

// OpenAt reports whether cell (cx,cy) is in bounds and unoccupied.
func (dm *DiscretizedMap) OpenAt(cx, cy int) bool {
	if !dm.inCellBounds(cx, cy) {
		return false
	}
	return !dm.occupied[cy*dm.cols+cx]
}

// WorldToCell converts a world-pixel position into cell coordinates.
func (dm *DiscretizedMap) WorldToCell(p Position) (int, int) {
	return int(p.X) / dm.ratio, int(p.Y) / dm.ratio
}

// CellToWorld converts cell coordinates to the world-pixel position of the
// cell's center.
func (dm *DiscretizedMap) CellToWorld(cx, cy int) Position {
	half := float64(dm.ratio) / 2
	return NewPosition(float64(cx*dm.ratio)+half, float64(cy*dm.ratio)+half)
}

// pathIsClear walks the segment start->goal, expressed in cell
// coordinates, at half-cell steps, and reports whether every sampled
// point (outside exclusionRadius of either endpoint) lies over an open
// cell. It always returns the furthest point reached, which equals goal
// when the path is fully clear.
func (dm *DiscretizedMap) pathIsClear(start, goal Position, exclusionRadius float64) (bool, Position) {
	dist := start.Distance(goal)
	if dist < positionEpsilon {
		return true, start
	}

	const stepFraction = 0.5
	steps := int(math.Ceil(dist / stepFraction))
	if steps < 1 {
		steps = 1
	}

	furthest := start
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		pt := NewPosition(start.X+(goal.X-start.X)*t, start.Y+(goal.Y-start.Y)*t)

		if pt.Distance(start) < exclusionRadius || pt.Distance(goal) < exclusionRadius {
			continue
		}
		cx, cy := int(math.Floor(pt.X)), int(math.Floor(pt.Y))
		if !dm.OpenAt(cx, cy) {
			return false, furthest
		}
		furthest = pt
	}
	return true, goal
}

// PathIsClear is pathIsClear exported for callers outside this package's
// planners.
func (dm *DiscretizedMap) PathIsClear(start, goal Position, exclusionRadius float64) (bool, Position) {
	return dm.pathIsClear(start, goal, exclusionRadius)
}

// PathIsClearInOriginal is PathIsClear, but start/goal/exclusionRadius are
// expressed in original map-pixel coordinates rather than cell
// coordinates; the result's furthest point is likewise rescaled back to
// map-pixel coordinates.
func (dm *DiscretizedMap) PathIsClearInOriginal(start, goal Position, exclusionRadius float64) (bool, Position) {
	r := float64(dm.ratio)
	s := NewPosition(start.X/r, start.Y/r)
	g := NewPosition(goal.X/r, goal.Y/r)
	ok, furthest := dm.pathIsClear(s, g, exclusionRadius/r)
	return ok, NewPosition(furthest.X*r, furthest.Y*r)
}
