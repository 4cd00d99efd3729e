package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/rnvandemark/zombierun/internal/game"
)

func main() {
	mapDir := flag.String("map", "maps/default", "directory containing map.png and data.txt")
	plannerName := flag.String("planner", "grid-astar", "planner to benchmark: grid-dijkstra, grid-astar, vg-dijkstra, vg-astar, rrt")
	startX := flag.Float64("start-x", 10, "start position x")
	startY := flag.Float64("start-y", 10, "start position y")
	goalX := flag.Float64("goal-x", 590, "goal position x")
	goalY := flag.Float64("goal-y", 390, "goal position y")
	ratio := flag.Int("ratio", 10, "discretization ratio for the grid/visibility-graph planners")
	cleanThreshold := flag.Float64("clean-threshold", 10, "visibility graph vertex dedup threshold")
	copyToClipboard := flag.Bool("copy", false, "copy the report to the system clipboard")
	flag.Parse()

	md, err := game.LoadMapDir(*mapDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading map: %v\n", err)
		os.Exit(1)
	}

	planner, err := buildPlanner(*plannerName, md, *ratio, *cleanThreshold)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	start := game.NewPosition(*startX, *startY)
	goal := game.NewPosition(*goalX, *goalY)

	began := time.Now()
	path := planner.GeneratePath(start, goal)
	elapsed := time.Since(began)

	report := formatReport(*plannerName, start, goal, path, elapsed)
	fmt.Print(report)

	if *copyToClipboard {
		if err := clipboard.WriteAll(report); err != nil {
			fmt.Fprintf(os.Stderr, "copying report to clipboard: %v\n", err)
			os.Exit(1)
		}
	}
}

func buildPlanner(name string, md *game.MapData, ratio int, cleanThreshold float64) (game.Planner, error) {
	const salvageThreshold = 5.0

	switch name {
	case "grid-dijkstra":
		return game.NewGridDijkstraPlanner(game.NewDiscretizedMap(md, ratio), salvageThreshold), nil
	case "grid-astar":
		return game.NewGridAStarPlanner(game.NewDiscretizedMap(md, ratio), salvageThreshold), nil
	case "vg-dijkstra":
		vg := game.NewVisibilityGraph(game.NewDiscretizedMap(md, ratio), cleanThreshold)
		return game.NewVGDijkstraPlanner(vg, salvageThreshold), nil
	case "vg-astar":
		vg := game.NewVisibilityGraph(game.NewDiscretizedMap(md, ratio), cleanThreshold)
		return game.NewVGAStarPlanner(vg, salvageThreshold), nil
	case "rrt":
		rng := rand.New(rand.NewSource(time.Now().UnixNano())) //#nosec G404
		return game.NewRRTPlanner(md, rng, true, salvageThreshold), nil
	default:
		return nil, fmt.Errorf("unrecognized planner %q (want one of grid-dijkstra, grid-astar, vg-dijkstra, vg-astar, rrt)", name)
	}
}

func formatReport(plannerName string, start, goal game.Position, path *game.Path, elapsed time.Duration) string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== Path Planning Report ===\n")
	fmt.Fprintf(&b, "planner:     %s\n", plannerName)
	fmt.Fprintf(&b, "start:       (%.1f, %.1f)\n", start.X, start.Y)
	fmt.Fprintf(&b, "goal:        (%.1f, %.1f)\n", goal.X, goal.Y)
	fmt.Fprintf(&b, "elapsed:     %s\n", elapsed)

	if path == nil {
		fmt.Fprintf(&b, "result:      no path found\n")
		return b.String()
	}

	pts := path.Points()
	var length float64
	for i := 1; i < len(pts); i++ {
		length += pts[i-1].Distance(pts[i])
	}
	fmt.Fprintf(&b, "waypoints:   %d\n", path.PointCount())
	fmt.Fprintf(&b, "length:      %.2f\n", length)
	return b.String()
}
