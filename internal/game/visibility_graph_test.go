package game

import "testing"

func mustMapDataWithObstacle(t *testing.T, x0, y0, x1, y1 int) *MapData {
	t.Helper()
	img := blankMapImage()
	if x1 > x0 {
		drawFilledRect(img, x0, y0, x1, y1)
	}
	pSpawn := NewPosition(1, 1)
	sd := spawnData{playerSpawn: &pSpawn, zombieSpawns: []Position{NewPosition(2, 2)}}
	md, err := NewMapData(img, sd)
	if err != nil {
		t.Fatalf("NewMapData: %v", err)
	}
	return md
}

func TestVisibilityGraph_BlankMapHasNoVertices(t *testing.T) {
	md := mustMapDataWithObstacle(t, 0, 0, 0, 0)
	dm := NewDiscretizedMap(md, 3)
	vg := NewVisibilityGraph(dm, 10)
	if got := vg.VertexCount(); got != 0 {
		t.Fatalf("expected 0 vertices on a blank map, got %d", got)
	}
}

func TestVisibilityGraph_EdgesAreSymmetric(t *testing.T) {
	md := mustMapDataWithObstacle(t, 290, 0, 310, 300)
	dm := NewDiscretizedMap(md, 3)
	vg := NewVisibilityGraph(dm, 10)
	for u, edges := range vg.adjacency {
		for v, w := range edges {
			back, ok := vg.adjacency[v][u]
			if !ok {
				t.Fatalf("edge %v->%v has no inverse", u, v)
			}
			if back != w {
				t.Fatalf("edge weight mismatch %v<->%v: %f vs %f", u, v, w, back)
			}
		}
	}
}

func TestVisibilityGraph_NoSelfLoops(t *testing.T) {
	md := mustMapDataWithObstacle(t, 290, 0, 310, 300)
	dm := NewDiscretizedMap(md, 3)
	vg := NewVisibilityGraph(dm, 10)
	for u, edges := range vg.adjacency {
		if _, ok := edges[u]; ok {
			t.Fatalf("vertex %v has a self-loop", u)
		}
	}
}
