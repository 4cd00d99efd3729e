package game

import (
	"math"
	"sort"
	"sync"
)

// ringOffsets enumerates the 3x3 neighborhood around a cell as {dx, dy}
// offsets, ordered by dx and then by dy, excluding the center. This ordering is load-bearing: the straight-through
// pairs used during vertex classification below ({0,7},{2,5},{1,6},{3,4})
// only sum to 7 under this exact index assignment.
var ringOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1} /* skip center */, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// occupiedRingIndices returns, in ascending order, the ring indices (0-7)
// of occupied neighbors of (cx,cy).
func occupiedRingIndices(dm *DiscretizedMap, cx, cy int) []int {
	var occ []int
	for i, off := range ringOffsets {
		if !dm.OpenAt(cx+off[0], cy+off[1]) {
			occ = append(occ, i)
		}
	}
	return occ
}

// straightThroughPairs are the four opposite-direction index pairs; a
// 2-occupied cell whose indices form one of these is a mid-wall cell, not
// a corner.
var straightThroughPairs = map[[2]int]bool{
	{0, 7}: true, {2, 5}: true, {1, 6}: true, {3, 4}: true,
}

// isRightAngleTriple reports whether the consecutive differences of a
// sorted 3-index set are {1,2} in either order.
func isRightAngleTriple(idx []int) bool {
	d1, d2 := idx[1]-idx[0], idx[2]-idx[1]
	return (d1 == 1 && d2 == 2) || (d1 == 2 && d2 == 1)
}

// lShapeSignatures are the seven consecutive-difference signatures of a
// sorted 4-index occupied set that mark a corner rather than an interior
// wall segment.
var lShapeSignatures = [][3]int{
	{1, 1, 1}, {1, 1, 2}, {1, 2, 2}, {2, 1, 1}, {2, 2, 1}, {1, 2, 3}, {3, 2, 1},
}

func matchesLShape(idx []int) bool {
	sig := [3]int{idx[1] - idx[0], idx[2] - idx[1], idx[3] - idx[2]}
	for _, s := range lShapeSignatures {
		if s == sig {
			return true
		}
	}
	return false
}

// diagonalFiveSets maps the sorted set of UNoccupied indices, for a cell
// with exactly 5 occupied neighbors, to the diagonal run direction it
// indicates.
var diagonalFiveSets = map[[3]int][2]int{
	{0, 1, 3}: {-1, 1}, {4, 6, 7}: {-1, 1},
	{1, 2, 4}: {1, 1}, {3, 5, 6}: {1, 1},
}

// classifyDiagonalFive reports whether (cx,cy) is a member of a
// diagonal-run vertex candidate, and its run direction.
func classifyDiagonalFive(dm *DiscretizedMap, cx, cy int) (dir [2]int, ok bool) {
	occ := occupiedRingIndices(dm, cx, cy)
	if len(occ) != 5 {
		return dir, false
	}
	occSet := map[int]bool{}
	for _, o := range occ {
		occSet[o] = true
	}
	var unoccupied []int
	for i := 0; i < 8; i++ {
		if !occSet[i] {
			unoccupied = append(unoccupied, i)
		}
	}
	sort.Ints(unoccupied)
	if len(unoccupied) != 3 {
		return dir, false
	}
	d, ok := diagonalFiveSets[[3]int{unoccupied[0], unoccupied[1], unoccupied[2]}]
	return d, ok
}

// isVertexCell classifies an occupied cell by its occupied-neighbor count,
// per the corner/edge/junction rules. It never handles the 5-occupied
// diagonal-run case, which requires scanning along the run and is handled
// separately by detectVertices.
func isVertexCell(dm *DiscretizedMap, cx, cy int) bool {
	occ := occupiedRingIndices(dm, cx, cy)
	switch len(occ) {
	case 0, 1:
		return true
	case 2:
		return !straightThroughPairs[[2]int{occ[0], occ[1]}]
	case 3:
		return isRightAngleTriple(occ)
	case 4:
		return matchesLShape(occ)
	default:
		return false
	}
}

// vgNode is a visibility-graph vertex, expressed in DiscretizedMap cell
// coordinates. Diagonal-run midpoints may land between cells, so
// coordinates are float64 rather than integer.
type vgNode struct{ x, y float64 }

func (n vgNode) distance(o vgNode) float64 {
	dx, dy := n.x-o.x, n.y-o.y
	return math.Sqrt(dx*dx + dy*dy)
}

// VisibilityGraph is a graph over the obstacle vertices detected in a
// DiscretizedMap, with edges connecting mutually visible vertices. It is
// built once and then queried repeatedly, with each query transiently
// inserting start/goal nodes via Prepare/Close.
type VisibilityGraph struct {
	dm    *DiscretizedMap
	ratio float64

	mu        sync.Mutex
	vertices  []vgNode
	adjacency map[vgNode]map[vgNode]float64
}

// vgEdgeExclusion is the exclusion radius, in cell units, used when
// testing candidate edges for line-of-sight clearance (0.75*D in original
// pixel units, which is 0.75 once expressed in cell units).
const vgEdgeExclusion = 0.75

// NewVisibilityGraph detects obstacle vertices in dm, deduplicates them
// with the given cleanliness threshold, and constructs the bidirectional
// line-of-sight edge set.
func NewVisibilityGraph(dm *DiscretizedMap, cleanThreshold float64) *VisibilityGraph {
	vg := &VisibilityGraph{
		dm:        dm,
		ratio:     float64(dm.Ratio()),
		adjacency: map[vgNode]map[vgNode]float64{},
	}

	raw := detectVertices(dm)
	vg.vertices = deduplicateVertices(raw, cleanThreshold)

	for _, v := range vg.vertices {
		vg.adjacency[v] = map[vgNode]float64{}
	}
	for i := 0; i < len(vg.vertices); i++ {
		for j := i + 1; j < len(vg.vertices); j++ {
			u, v := vg.vertices[i], vg.vertices[j]
			if ok, _ := dm.pathIsClear(Position{X: u.x, Y: u.y}, Position{X: v.x, Y: v.y}, vgEdgeExclusion); ok {
				w := u.distance(v)
				vg.adjacency[u][v] = w
				vg.adjacency[v][u] = w
			}
		}
	}
	return vg
}

// detectVertices scans dm row-major, classifying every occupied cell and
// collapsing diagonal-5 runs into a single midpoint vertex per run.
func detectVertices(dm *DiscretizedMap) []vgNode {
	var vertices []vgNode
	recorded := map[[2]int]bool{}

	for cy := 0; cy < dm.Rows(); cy++ {
		for cx := 0; cx < dm.Cols(); cx++ {
			if dm.OpenAt(cx, cy) {
				continue
			}

			if dir, ok := classifyDiagonalFive(dm, cx, cy); ok {
				if v, placed := tryPlaceDiagonalVertex(dm, cx, cy, dir, recorded); placed {
					vertices = append(vertices, v)
				}
				continue
			}

			if isVertexCell(dm, cx, cy) {
				vertices = append(vertices, vgNode{float64(cx), float64(cy)})
				recorded[[2]int{cx, cy}] = true
			}
		}
	}
	return vertices
}

// tryPlaceDiagonalVertex walks backward and forward from (cx,cy) along
// dir, extending over every cell that is also a diagonal-5 candidate in
// the same direction. If either walk reaches an already-recorded vertex
// cell, the run has already been handled and no vertex is placed.
// Otherwise a single vertex is placed at the run's midpoint, and every
// cell of the run is recorded so later cells scanned within the same run
// defer to it.
func tryPlaceDiagonalVertex(dm *DiscretizedMap, cx, cy int, dir [2]int, recorded map[[2]int]bool) (vgNode, bool) {
	bx, by := cx, cy
	for {
		nx, ny := bx-dir[0], by-dir[1]
		if d, ok := classifyDiagonalFive(dm, nx, ny); !ok || d != dir {
			break
		}
		if recorded[[2]int{nx, ny}] {
			return vgNode{}, false
		}
		bx, by = nx, ny
	}

	fx, fy := cx, cy
	for {
		nx, ny := fx+dir[0], fy+dir[1]
		if d, ok := classifyDiagonalFive(dm, nx, ny); !ok || d != dir {
			break
		}
		if recorded[[2]int{nx, ny}] {
			return vgNode{}, false
		}
		fx, fy = nx, ny
	}

	mid := vgNode{float64(bx+fx) / 2, float64(by+fy) / 2}
	for x, y := bx, by; ; x, y = x+dir[0], y+dir[1] {
		recorded[[2]int{x, y}] = true
		if x == fx && y == fy {
			break
		}
	}
	return mid, true
}

// deduplicateVertices implements the "cleanliness" pass: repeatedly find
// the surviving vertex whose neighborhood within threshold holds the most
// other surviving vertices, and delete those neighbors, until no
// surviving vertex has any neighbor left within threshold.
func deduplicateVertices(vertices []vgNode, threshold float64) []vgNode {
	deleted := make([]bool, len(vertices))

	for {
		bestIdx := -1
		var bestNeighbors []int
		for i := range vertices {
			if deleted[i] {
				continue
			}
			var neighbors []int
			for j := range vertices {
				if i == j || deleted[j] {
					continue
				}
				if vertices[i].distance(vertices[j]) <= threshold {
					neighbors = append(neighbors, j)
				}
			}
			if len(neighbors) > len(bestNeighbors) {
				bestIdx = i
				bestNeighbors = neighbors
			}
		}
		if bestIdx == -1 || len(bestNeighbors) == 0 {
			break
		}
		for _, j := range bestNeighbors {
			deleted[j] = true
		}
	}

	out := make([]vgNode, 0, len(vertices))
	for i, v := range vertices {
		if !deleted[i] {
			out = append(out, v)
		}
	}
	return out
}

// insertTransient adds s and g as temporary vertices, wiring edges to
// every existing vertex (and to each other) that is line-of-sight clear.
// Callers must hold vg.mu.
func (vg *VisibilityGraph) insertTransient(s, g vgNode) {
	vg.addVertexWithEdges(s)
	vg.addVertexWithEdges(g)
}

func (vg *VisibilityGraph) addVertexWithEdges(n vgNode) {
	edges := map[vgNode]float64{}
	for _, v := range vg.vertices {
		if v == n {
			continue
		}
		if ok, _ := vg.dm.pathIsClear(Position{X: n.x, Y: n.y}, Position{X: v.x, Y: v.y}, vgEdgeExclusion); ok {
			w := n.distance(v)
			edges[v] = w
			vg.adjacency[v][n] = w
		}
	}
	vg.adjacency[n] = edges
	vg.vertices = append(vg.vertices, n)
}

// removeTransient undoes insertTransient for s and g. Callers must hold
// vg.mu.
func (vg *VisibilityGraph) removeTransient(s, g vgNode) {
	vg.removeVertex(s)
	vg.removeVertex(g)
}

func (vg *VisibilityGraph) removeVertex(n vgNode) {
	for neighbor := range vg.adjacency[n] {
		delete(vg.adjacency[neighbor], n)
	}
	delete(vg.adjacency, n)
	for i, v := range vg.vertices {
		if v == n {
			vg.vertices = append(vg.vertices[:i], vg.vertices[i+1:]...)
			break
		}
	}
}

// VertexCount returns the number of persistent vertices in the graph
// (excluding any query's transient start/goal nodes).
func (vg *VisibilityGraph) VertexCount() int {
	vg.mu.Lock()
	defer vg.mu.Unlock()
	return len(vg.vertices)
}
