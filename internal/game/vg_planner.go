package game

// vgMedium is the SearchMedium over a VisibilityGraph's vertices.
type vgMedium struct {
	vg        *VisibilityGraph
	heuristic func(a, b vgNode) float64
}

func vgZeroHeuristic(vgNode, vgNode) float64 { return 0 }

func vgEuclideanHeuristic(a, b vgNode) float64 { return a.distance(b) }

func (vm *vgMedium) PathIsClear(start, goal Position) bool {
	r := vm.vg.ratio
	s := NewPosition(start.X/r, start.Y/r)
	g := NewPosition(goal.X/r, goal.Y/r)
	ok, _ := vm.vg.dm.pathIsClear(s, g, 0)
	return ok
}

func (vm *vgMedium) PositionOf(n vgNode) Position {
	return NewPosition(n.x*vm.vg.ratio, n.y*vm.vg.ratio)
}

func (vm *vgMedium) AllNodes() []vgNode {
	out := make([]vgNode, len(vm.vg.vertices))
	copy(out, vm.vg.vertices)
	return out
}

func (vm *vgMedium) Prepare(start, goal Position) (vgNode, vgNode) {
	r := vm.vg.ratio
	s := vgNode{start.X / r, start.Y / r}
	g := vgNode{goal.X / r, goal.Y / r}
	vm.vg.insertTransient(s, g)
	return s, g
}

func (vm *vgMedium) Neighbors(n vgNode) []vgNode {
	edges := vm.vg.adjacency[n]
	out := make([]vgNode, 0, len(edges))
	for v := range edges {
		out = append(out, v)
	}
	return out
}

func (vm *vgMedium) EdgeCost(u, v vgNode) float64 {
	return vm.vg.adjacency[u][v]
}

func (vm *vgMedium) Heuristic(n, goal vgNode) float64 {
	return vm.heuristic(n, goal)
}

func (vm *vgMedium) Close(s, g vgNode) {
	vm.vg.removeTransient(s, g)
}

// VGPlanner plans over a VisibilityGraph using either Dijkstra or A*.
type VGPlanner struct {
	vg               *VisibilityGraph
	heuristic        func(a, b vgNode) float64
	salvageThreshold float64
}

// NewVGDijkstraPlanner returns a VG planner with a zero heuristic.
func NewVGDijkstraPlanner(vg *VisibilityGraph, salvageThreshold float64) *VGPlanner {
	return &VGPlanner{vg: vg, heuristic: vgZeroHeuristic, salvageThreshold: salvageThreshold}
}

// NewVGAStarPlanner returns a VG planner with a Euclidean heuristic.
func NewVGAStarPlanner(vg *VisibilityGraph, salvageThreshold float64) *VGPlanner {
	return &VGPlanner{vg: vg, heuristic: vgEuclideanHeuristic, salvageThreshold: salvageThreshold}
}

// GeneratePath implements Planner. The graph's own mutex serializes
// concurrent queries, since Prepare/Close mutate shared adjacency state.
func (vp *VGPlanner) GeneratePath(start, goal Position) *Path {
	vp.vg.mu.Lock()
	defer vp.vg.mu.Unlock()
	medium := &vgMedium{vg: vp.vg, heuristic: vp.heuristic}
	return FindPath[vgNode](medium, start, goal)
}

// SalvagePath implements Planner.
func (vp *VGPlanner) SalvagePath(old *Path, newStart, newGoal Position) (*Path, bool) {
	return Salvage(old, newStart, newGoal, vp.salvageThreshold, 3)
}
