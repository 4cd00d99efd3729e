package game

// gridCell is a traversal-medium node identifying one DiscretizedMap cell.
type gridCell struct{ x, y int }

// gridDirs are the 8 king-move offsets a grid medium's neighbors consider.
var gridDirs = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// gridMedium is the SearchMedium over a DiscretizedMap's cells. heuristic
// is either always-zero (Dijkstra) or Euclidean cell-center distance
// (A*); it is the only thing that distinguishes the two planners below.
type gridMedium struct {
	dm        *DiscretizedMap
	heuristic func(dm *DiscretizedMap, a, b gridCell) float64
}

func gridZeroHeuristic(*DiscretizedMap, gridCell, gridCell) float64 { return 0 }

func gridEuclideanHeuristic(dm *DiscretizedMap, a, b gridCell) float64 {
	return dm.CellToWorld(a.x, a.y).Distance(dm.CellToWorld(b.x, b.y))
}

func (gm *gridMedium) PathIsClear(start, goal Position) bool {
	ok, _ := gm.dm.PathIsClearInOriginal(start, goal, 0)
	return ok
}

func (gm *gridMedium) PositionOf(n gridCell) Position {
	return gm.dm.CellToWorld(n.x, n.y)
}

func (gm *gridMedium) AllNodes() []gridCell {
	nodes := make([]gridCell, 0, gm.dm.Cols()*gm.dm.Rows())
	for cy := 0; cy < gm.dm.Rows(); cy++ {
		for cx := 0; cx < gm.dm.Cols(); cx++ {
			if gm.dm.OpenAt(cx, cy) {
				nodes = append(nodes, gridCell{cx, cy})
			}
		}
	}
	return nodes
}

func (gm *gridMedium) Prepare(start, goal Position) (gridCell, gridCell) {
	sx, sy := gm.dm.WorldToCell(start)
	gx, gy := gm.dm.WorldToCell(goal)
	return gridCell{sx, sy}, gridCell{gx, gy}
}

func (gm *gridMedium) Neighbors(n gridCell) []gridCell {
	var out []gridCell
	for _, d := range gridDirs {
		nx, ny := n.x+d[0], n.y+d[1]
		if gm.dm.OpenAt(nx, ny) {
			out = append(out, gridCell{nx, ny})
		}
	}
	return out
}

func (gm *gridMedium) EdgeCost(u, v gridCell) float64 {
	return gm.dm.CellToWorld(u.x, u.y).Distance(gm.dm.CellToWorld(v.x, v.y))
}

func (gm *gridMedium) Heuristic(n, goal gridCell) float64 {
	return gm.heuristic(gm.dm, n, goal)
}

func (gm *gridMedium) Close(gridCell, gridCell) {}

// GridPlanner plans over a DiscretizedMap using either Dijkstra or A*,
// selected at construction by which heuristic is installed.
type GridPlanner struct {
	dm               *DiscretizedMap
	heuristic        func(dm *DiscretizedMap, a, b gridCell) float64
	salvageThreshold float64
}

// NewGridDijkstraPlanner returns a grid planner with a zero heuristic.
func NewGridDijkstraPlanner(dm *DiscretizedMap, salvageThreshold float64) *GridPlanner {
	return &GridPlanner{dm: dm, heuristic: gridZeroHeuristic, salvageThreshold: salvageThreshold}
}

// NewGridAStarPlanner returns a grid planner with a Euclidean heuristic.
func NewGridAStarPlanner(dm *DiscretizedMap, salvageThreshold float64) *GridPlanner {
	return &GridPlanner{dm: dm, heuristic: gridEuclideanHeuristic, salvageThreshold: salvageThreshold}
}

func (gp *GridPlanner) medium() *gridMedium {
	return &gridMedium{dm: gp.dm, heuristic: gp.heuristic}
}

// GeneratePath implements Planner.
func (gp *GridPlanner) GeneratePath(start, goal Position) *Path {
	return FindPath[gridCell](gp.medium(), start, goal)
}

// SalvagePath implements Planner. Grid and VG planners both require at
// least 3 waypoints for a salvage to be considered.
func (gp *GridPlanner) SalvagePath(old *Path, newStart, newGoal Position) (*Path, bool) {
	return Salvage(old, newStart, newGoal, gp.salvageThreshold, 3)
}
