package game

import (
	"image"
	"image/color"
	"math/rand"
	"strings"
	"testing"
)

// blankMapImage returns an all-white MapWidth x MapHeight image.
func blankMapImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, MapWidth, MapHeight))
	for y := 0; y < MapHeight; y++ {
		for x := 0; x < MapWidth; x++ {
			img.Set(x, y, color.White)
		}
	}
	return img
}

// drawFilledRect paints an obstacle rectangle [x0,x1)x[y0,y1) onto img.
func drawFilledRect(img *image.NRGBA, x0, y0, x1, y1 int) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.Set(x, y, color.Black)
		}
	}
}

func mustSpawnData(t *testing.T, text string) spawnData {
	t.Helper()
	sd, err := parseSpawnData(strings.NewReader(text))
	if err != nil {
		t.Fatalf("parseSpawnData: %v", err)
	}
	return sd
}

func TestParseSpawnData_Basic(t *testing.T) {
	text := "playerSpawn:10,20\n" +
		"zombieSpawns\n" +
		"\t1,2\n" +
		"\t3,4\n" +
		"\n" +
		"robotStations\n" +
		"\t5,6\n"
	sd := mustSpawnData(t, text)
	if sd.playerSpawn == nil || !sd.playerSpawn.Equal(NewPosition(10, 20)) {
		t.Fatalf("unexpected player spawn: %v", sd.playerSpawn)
	}
	if len(sd.zombieSpawns) != 2 || !sd.zombieSpawns[1].Equal(NewPosition(3, 4)) {
		t.Fatalf("unexpected zombie spawns: %v", sd.zombieSpawns)
	}
	if len(sd.robotStations) != 1 || !sd.robotStations[0].Equal(NewPosition(5, 6)) {
		t.Fatalf("unexpected robot stations: %v", sd.robotStations)
	}
}

func TestParseSpawnData_BadSectionEntry(t *testing.T) {
	if _, err := parseSpawnData(strings.NewReader("\t1,2\n")); err == nil {
		t.Fatal("expected error for entry outside any section")
	}
}

func TestNewMapData_RejectsBadSize(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	pSpawn := NewPosition(1, 1)
	sd := spawnData{playerSpawn: &pSpawn, zombieSpawns: []Position{NewPosition(2, 2)}}
	if _, err := NewMapData(img, sd); err != ErrBadMapSize {
		t.Fatalf("expected ErrBadMapSize, got %v", err)
	}
}

func TestNewMapData_RequiresZombieSpawns(t *testing.T) {
	pSpawn := NewPosition(1, 1)
	sd := spawnData{playerSpawn: &pSpawn}
	if _, err := NewMapData(blankMapImage(), sd); err != ErrNoZombieSpawns {
		t.Fatalf("expected ErrNoZombieSpawns, got %v", err)
	}
}

func TestNewMapData_BlankMapIsFullyValid(t *testing.T) {
	pSpawn := NewPosition(1, 1)
	sd := spawnData{playerSpawn: &pSpawn, zombieSpawns: []Position{NewPosition(2, 2)}}
	md, err := NewMapData(blankMapImage(), sd)
	if err != nil {
		t.Fatalf("NewMapData: %v", err)
	}
	if !md.PositionIsValid(NewPosition(300, 200)) {
		t.Fatal("blank map center should be valid")
	}
	if md.PositionIsValid(NewPosition(-1, 5)) {
		t.Fatal("out-of-bounds position should be invalid")
	}
}

func TestNewMapData_InflatesObstacles(t *testing.T) {
	img := blankMapImage()
	drawFilledRect(img, 290, 0, 310, 300)
	pSpawn := NewPosition(1, 1)
	sd := spawnData{playerSpawn: &pSpawn, zombieSpawns: []Position{NewPosition(2, 2)}}
	md, err := NewMapData(img, sd)
	if err != nil {
		t.Fatalf("NewMapData: %v", err)
	}
	if md.PositionIsValid(NewPosition(300, 150)) {
		t.Fatal("position inside obstacle should be invalid")
	}
	// Two pixels outside the raw obstacle (whose last column is 309), but
	// within ActorRadius, should also be invalid due to inflation.
	if md.PositionIsValid(NewPosition(311, 150)) {
		t.Fatal("position within inflation radius should be invalid")
	}
	// Far outside both the obstacle and its inflation should be valid.
	if !md.PositionIsValid(NewPosition(290-ActorRadius-5, 150)) {
		t.Fatal("position well outside inflation should be valid")
	}
}

func TestMapData_RandomZombieSpawnPoint(t *testing.T) {
	pSpawn := NewPosition(1, 1)
	spawns := []Position{NewPosition(2, 2), NewPosition(4, 4)}
	sd := spawnData{playerSpawn: &pSpawn, zombieSpawns: spawns}
	md, err := NewMapData(blankMapImage(), sd)
	if err != nil {
		t.Fatalf("NewMapData: %v", err)
	}
	rng := rand.New(rand.NewSource(1)) // #nosec G404 -- deterministic test seed
	for i := 0; i < 20; i++ {
		p := md.RandomZombieSpawnPoint(rng)
		if !p.Equal(spawns[0]) && !p.Equal(spawns[1]) {
			t.Fatalf("unexpected spawn point %v", p)
		}
	}
}
