package game

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// MapWidth and MapHeight are the hard-required dimensions of every map.
	MapWidth  = 600
	MapHeight = 400

	// ActorRadius is the radius, in world units, that obstacles are
	// dilated by to build the inflated raster, and that actors are
	// rendered at.
	ActorRadius = 6
)

var (
	// ErrBadMapSize is returned when the decoded map image is not exactly
	// MapWidth x MapHeight.
	ErrBadMapSize = errors.New("game: map image must be exactly 600x400 pixels")
	// ErrNoZombieSpawns is returned when a map's data file names no
	// zombie spawn points.
	ErrNoZombieSpawns = errors.New("game: map data must declare at least one zombie spawn point")
	// ErrNoPlayerSpawn is returned when a map's data file never sets a
	// player spawn point.
	ErrNoPlayerSpawn = errors.New("game: map data must declare a player spawn point")
)

// MapData is the immutable obstacle map for one session: the raw obstacle
// raster used for display, the radius-inflated raster used for every
// traversability query, and the spawn-point tables. Once constructed a
// MapData is never mutated, so it needs no locking of its own.
type MapData struct {
	width, height int
	displayed     []bool // row-major; true = obstacle
	inflated      []bool // row-major; true = obstacle

	playerSpawn   Position
	zombieSpawns  []Position
	robotStations []Position
}

// LoadMapDir reads map.png and data.txt from dir and builds a MapData.
// Decoding the PNG and parsing the spawn-point file are treated as fixed,
// file-format-driven collaborators feeding the core; every failure here is
// a fatal configuration fault per the session construction contract.
func LoadMapDir(dir string) (*MapData, error) {
	imgFile, err := os.Open(filepath.Join(dir, "map.png"))
	if err != nil {
		return nil, fmt.Errorf("game: opening map image: %w", err)
	}
	defer imgFile.Close()

	img, err := png.Decode(imgFile)
	if err != nil {
		return nil, fmt.Errorf("game: decoding map image: %w", err)
	}

	dataFile, err := os.Open(filepath.Join(dir, "data.txt"))
	if err != nil {
		return nil, fmt.Errorf("game: opening map data file: %w", err)
	}
	defer dataFile.Close()

	spawns, err := parseSpawnData(dataFile)
	if err != nil {
		return nil, fmt.Errorf("game: parsing map data file: %w", err)
	}

	return NewMapData(img, spawns)
}

// spawnData is the result of parsing a map's data.txt.
type spawnData struct {
	playerSpawn   *Position
	zombieSpawns  []Position
	robotStations []Position
}

// parseSpawnData parses the line-oriented data.txt format: a
// "playerSpawn:X,Y" line, and "zombieSpawns"/"robotStations" section
// headers followed by tab-indented "X,Y" entries.
func parseSpawnData(r io.Reader) (spawnData, error) {
	var sd spawnData
	var section *[]Position

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		if strings.TrimSpace(raw) == "" {
			continue
		}

		if strings.HasPrefix(raw, "playerSpawn:") {
			p, err := parseCoordinate(strings.TrimPrefix(raw, "playerSpawn:"))
			if err != nil {
				return sd, fmt.Errorf("line %d: %w", lineNo, err)
			}
			sd.playerSpawn = &p
			section = nil
			continue
		}

		trimmed := strings.TrimSpace(raw)
		if !strings.HasPrefix(raw, "\t") {
			switch trimmed {
			case "zombieSpawns":
				section = &sd.zombieSpawns
			case "robotStations":
				section = &sd.robotStations
			default:
				return sd, fmt.Errorf("line %d: unrecognized section header %q", lineNo, trimmed)
			}
			continue
		}

		if section == nil {
			return sd, fmt.Errorf("line %d: tab-indented entry outside any section", lineNo)
		}
		p, err := parseCoordinate(trimmed)
		if err != nil {
			return sd, fmt.Errorf("line %d: %w", lineNo, err)
		}
		*section = append(*section, p)
	}
	if err := scanner.Err(); err != nil {
		return sd, err
	}
	return sd, nil
}

// parseCoordinate parses a "X,Y" pair, tolerating surrounding whitespace.
func parseCoordinate(s string) (Position, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ",", 2)
	if len(parts) != 2 {
		return Position{}, fmt.Errorf("malformed coordinate %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Position{}, fmt.Errorf("malformed coordinate %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Position{}, fmt.Errorf("malformed coordinate %q: %w", s, err)
	}
	return NewPosition(x, y), nil
}

// NewMapData builds a MapData from a decoded map image and its parsed
// spawn table, dilating the obstacle raster by ActorRadius.
func NewMapData(img image.Image, sd spawnData) (*MapData, error) {
	b := img.Bounds()
	if b.Dx() != MapWidth || b.Dy() != MapHeight {
		return nil, ErrBadMapSize
	}
	if sd.playerSpawn == nil {
		return nil, ErrNoPlayerSpawn
	}
	if len(sd.zombieSpawns) == 0 {
		return nil, ErrNoZombieSpawns
	}

	md := &MapData{
		width:         MapWidth,
		height:        MapHeight,
		displayed:     make([]bool, MapWidth*MapHeight),
		inflated:      make([]bool, MapWidth*MapHeight),
		playerSpawn:   *sd.playerSpawn,
		zombieSpawns:  append([]Position(nil), sd.zombieSpawns...),
		robotStations: append([]Position(nil), sd.robotStations...),
	}

	for y := 0; y < MapHeight; y++ {
		for x := 0; x < MapWidth; x++ {
			if !isPureWhite(img.At(b.Min.X+x, b.Min.Y+y)) {
				md.displayed[y*MapWidth+x] = true
			}
		}
	}

	md.inflateObstacles()
	return md, nil
}

// isPureWhite reports whether c is exactly opaque white.
func isPureWhite(c color.Color) bool {
	r, g, bch, a := c.RGBA()
	return r == 0xffff && g == 0xffff && bch == 0xffff && a == 0xffff
}

// diskOffsets returns the integer (dx,dy) offsets within radius r of the
// origin, used to stamp a filled disk during obstacle dilation.
func diskOffsets(r int) [][2]int {
	var offs [][2]int
	r2 := r * r
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r2 {
				offs = append(offs, [2]int{dx, dy})
			}
		}
	}
	return offs
}

// inflateObstacles dilates every obstacle pixel in displayed into a filled
// disk of radius ActorRadius in inflated.
func (md *MapData) inflateObstacles() {
	offsets := diskOffsets(ActorRadius)
	for y := 0; y < md.height; y++ {
		for x := 0; x < md.width; x++ {
			if !md.displayed[y*md.width+x] {
				continue
			}
			for _, off := range offsets {
				nx, ny := x+off[0], y+off[1]
				if nx < 0 || ny < 0 || nx >= md.width || ny >= md.height {
					continue
				}
				md.inflated[ny*md.width+nx] = true
			}
		}
	}
}

// Width and Height report the map's fixed dimensions.
func (md *MapData) Width() int  { return md.width }
func (md *MapData) Height() int { return md.height }

// PlayerSpawn returns the map's designated player spawn point.
func (md *MapData) PlayerSpawn() Position { return md.playerSpawn }

// ZombieSpawns returns the map's ordered zombie spawn points.
func (md *MapData) ZombieSpawns() []Position { return md.zombieSpawns }

// RandomZombieSpawnPoint returns a uniformly random zombie spawn point.
func (md *MapData) RandomZombieSpawnPoint(rng *rand.Rand) Position {
	return md.zombieSpawns[rng.Intn(len(md.zombieSpawns))] // #nosec G404 -- gameplay RNG, not security sensitive
}

// inBounds reports whether the integer pixel (x,y) lies within the map.
func (md *MapData) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < md.width && y < md.height
}

// PositionIsValid reports whether p lies within the map and does not fall
// on an inflated obstacle pixel. All traversability queries route through
// this or the equivalent DiscretizedMap check.
func (md *MapData) PositionIsValid(p Position) bool {
	x, y := int(p.X), int(p.Y)
	if !md.inBounds(x, y) {
		return false
	}
	return !md.inflated[y*md.width+x]
}

// IsObstacleDisplayed reports whether the raw (non-inflated) raster marks
// (x,y) as an obstacle; used only for rendering.
func (md *MapData) IsObstacleDisplayed(x, y int) bool {
	if !md.inBounds(x, y) {
		return true
	}
	return md.displayed[y*md.width+x]
}
