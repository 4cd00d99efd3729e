package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rnvandemark/zombierun/internal/game"
)

func main() {
	mapDir := flag.String("map", "maps/default", "directory containing map.png and data.txt")
	flag.Parse()

	md, err := game.LoadMapDir(*mapDir)
	if err != nil {
		log.Fatalf("loading map: %v", err)
	}

	session := game.NewSession(md)
	if err := session.Start(context.Background()); err != nil {
		log.Fatalf("starting session: %v", err)
	}
	defer session.Stop()

	eg := game.NewEbitenGame(session)
	windowW, windowH := eg.Layout(0, 0)

	ebiten.SetWindowTitle("zombierun")
	ebiten.SetWindowSize(windowW, windowH)

	if err := ebiten.RunGame(eg); err != nil && !errors.Is(err, game.ErrQuitRequested) {
		log.Fatal(err)
	}
}
