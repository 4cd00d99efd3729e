package game

import "container/heap"

// SearchMedium is the abstract traversal medium the generic shortest-path
// engine runs over. A concrete medium supplies everything the engine needs
// to know about its own node representation; the engine itself never
// inspects N's structure. Grid cells and visibility-graph vertices are
// both media over the same engine — only their hooks differ.
type SearchMedium[N comparable] interface {
	// PathIsClear reports whether a straight line between two world
	// positions is unobstructed in this medium's representation.
	PathIsClear(start, goal Position) bool

	// PositionOf maps a node back to a world position.
	PositionOf(n N) Position

	// AllNodes returns every node currently known to the medium.
	AllNodes() []N

	// Prepare lifts world start/goal positions into node space, possibly
	// mutating the medium (e.g. inserting transient visibility-graph
	// endpoints). It returns the lifted start and goal nodes.
	Prepare(start, goal Position) (s, g N)

	// Neighbors returns the adjacency of a node.
	Neighbors(n N) []N

	// EdgeCost returns the non-negative cost of moving from u to v,
	// where v is one of Neighbors(u).
	EdgeCost(u, v N) float64

	// Heuristic returns an admissible cost estimate from n to goal. A
	// medium that always returns 0 turns the engine into Dijkstra;
	// Euclidean distance turns it into A*.
	Heuristic(n, goal N) float64

	// Close undoes whatever Prepare did (e.g. removing transient nodes).
	Close(s, g N)
}

// searchNode tracks one node's tentative cost during relaxation. It
// implements container/heap's index bookkeeping directly, so a node's
// priority can be decreased in place rather than requiring removal and
// reinsertion under a different identity.
type searchNode[N comparable] struct {
	id       N
	g        float64 // tentative distance from the search's start
	h        float64 // heuristic estimate to the goal
	from     N
	hasFrom  bool
	visited  bool
	index    int
}

func (sn *searchNode[N]) priority() float64 { return sn.g + sn.h }

type openList[N comparable] []*searchNode[N]

func (ol openList[N]) Len() int          { return len(ol) }
func (ol openList[N]) Less(i, j int) bool { return ol[i].priority() < ol[j].priority() }
func (ol openList[N]) Swap(i, j int) {
	ol[i], ol[j] = ol[j], ol[i]
	ol[i].index = i
	ol[j].index = j
}
func (ol *openList[N]) Push(x any) {
	n := x.(*searchNode[N])
	n.index = len(*ol)
	*ol = append(*ol, n)
}
func (ol *openList[N]) Pop() any {
	old := *ol
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*ol = old[:len(old)-1]
	return n
}

// FindPath runs the generic best-first search described by the planning
// contract: a direct line-of-sight shortcut first, then a Dijkstra/A*
// relaxation (unified by whichever Heuristic the medium supplies) with a
// decrease-key-capable open set. It returns nil if no path exists.
func FindPath[N comparable](medium SearchMedium[N], start, goal Position) *Path {
	if medium.PathIsClear(start, goal) {
		return NewPath(start, goal, []Position{start, goal})
	}

	if len(medium.AllNodes()) == 0 {
		return nil
	}

	s, g := medium.Prepare(start, goal)
	defer medium.Close(s, g)

	nodes := map[N]*searchNode[N]{}
	nodeFor := func(id N) *searchNode[N] {
		if n, ok := nodes[id]; ok {
			return n
		}
		n := &searchNode[N]{id: id, g: infinity, h: infinity}
		nodes[id] = n
		return n
	}

	startNode := nodeFor(s)
	startNode.g = 0
	startNode.h = medium.Heuristic(s, g)

	ol := &openList[N]{startNode}
	heap.Init(ol)

	for ol.Len() > 0 {
		cur := heap.Pop(ol).(*searchNode[N])
		if cur.visited {
			continue
		}
		cur.visited = true

		if cur.id == g {
			return reconstructPath(medium, nodes, s, g)
		}

		for _, next := range medium.Neighbors(cur.id) {
			nn := nodeFor(next)
			if nn.visited {
				continue
			}
			tentative := cur.g + medium.EdgeCost(cur.id, next)
			if tentative >= nn.g {
				continue
			}
			wasKnown := nn.g < infinity
			nn.g = tentative
			nn.h = medium.Heuristic(next, g)
			nn.from = cur.id
			nn.hasFrom = true
			if wasKnown {
				heap.Fix(ol, nn.index)
			} else {
				heap.Push(ol, nn)
			}
		}
	}

	return nil
}

const infinity = 1e18

// reconstructPath walks the from-pointers recorded during relaxation from
// g back to s, then renders each node to a world position.
func reconstructPath[N comparable](medium SearchMedium[N], nodes map[N]*searchNode[N], s, g N) *Path {
	var ids []N
	cur := g
	for {
		ids = append(ids, cur)
		if cur == s {
			break
		}
		n, ok := nodes[cur]
		if !ok || !n.hasFrom {
			return nil
		}
		cur = n.from
	}
	// ids is goal-to-start; reverse it.
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}

	points := make([]Position, len(ids))
	for i, id := range ids {
		points[i] = medium.PositionOf(id)
	}
	return NewPath(medium.PositionOf(s), medium.PositionOf(g), points)
}
