package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rnvandemark/zombierun/internal/game"
)

func mustTestMapData(t *testing.T) *game.MapData {
	t.Helper()

	dir := t.TempDir()

	img := image.NewRGBA(image.Rect(0, 0, 600, 400))
	for y := 0; y < 400; y++ {
		for x := 0; x < 600; x++ {
			img.Set(x, y, color.White)
		}
	}
	f, err := os.Create(filepath.Join(dir, "map.png"))
	if err != nil {
		t.Fatalf("creating map.png: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding map.png: %v", err)
	}
	f.Close()

	data := "playerSpawn:10,10\nzombieSpawns\n\t590,390\n"
	if err := os.WriteFile(filepath.Join(dir, "data.txt"), []byte(data), 0o644); err != nil {
		t.Fatalf("writing data.txt: %v", err)
	}

	md, err := game.LoadMapDir(dir)
	if err != nil {
		t.Fatalf("LoadMapDir: %v", err)
	}
	return md
}

func TestBuildPlanner_RecognizesEveryName(t *testing.T) {
	md := mustTestMapData(t)
	for _, name := range []string{"grid-dijkstra", "grid-astar", "vg-dijkstra", "vg-astar", "rrt"} {
		if _, err := buildPlanner(name, md, 10, 10); err != nil {
			t.Fatalf("buildPlanner(%q): %v", name, err)
		}
	}
}

func TestBuildPlanner_RejectsUnknownName(t *testing.T) {
	md := mustTestMapData(t)
	if _, err := buildPlanner("bogus", md, 10, 10); err == nil {
		t.Fatal("expected an error for an unrecognized planner name")
	}
}

func TestFormatReport_NoPathFound(t *testing.T) {
	report := formatReport("grid-astar", game.NewPosition(0, 0), game.NewPosition(1, 1), nil, 0)
	if !strings.Contains(report, "no path found") {
		t.Fatalf("expected report to mention no path found, got:\n%s", report)
	}
}

func TestFormatReport_IncludesWaypointsAndLength(t *testing.T) {
	start := game.NewPosition(0, 0)
	goal := game.NewPosition(30, 40)
	path := game.NewPath(start, goal, []game.Position{start, goal})

	report := formatReport("grid-astar", start, goal, path, 0)
	if !strings.Contains(report, "waypoints:   2") {
		t.Fatalf("expected waypoint count of 2, got:\n%s", report)
	}
	if !strings.Contains(report, "length:      50.00") {
		t.Fatalf("expected length 50.00 (3-4-5 triangle), got:\n%s", report)
	}
}
