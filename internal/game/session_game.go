package game

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// sidePanelWidth is the pixel width of the wave/points/health readout
// strip drawn to the right of the map.
const sidePanelWidth = 220

// ErrQuitRequested is returned from EbitenGame.Update when the player has
// pressed ESC, distinguishing a clean shutdown from an uncaught error.
var ErrQuitRequested = errors.New("game: quit requested")

// keyBindings maps ebiten key codes to the control set the physics tick
// reads.
var keyBindings = map[ebiten.Key]UserControl{
	ebiten.KeyA:     ControlLeft,
	ebiten.KeyD:     ControlRight,
	ebiten.KeyW:     ControlUp,
	ebiten.KeyS:     ControlDown,
	ebiten.KeyShift: ControlSprint,
}

// actorSnapshot is a private, lock-free copy of one actor's renderable
// state, taken under the actor lock and drawn without it.
type actorSnapshot struct {
	pos  Position
	col  color.RGBA
	path []Position
}

// EbitenGame adapts a Session to ebiten's Game interface. It owns no
// simulation state of its own: every frame it writes the current keyboard
// state into the session's KeyState, then briefly acquires the actor lock
// to copy renderable state into private buffers before drawing without it.
type EbitenGame struct {
	session   *Session
	mapImage  *ebiten.Image
	panelFont font.Face
	showPaths bool
	prevPKey  bool
}

// NewEbitenGame wraps s for use with ebiten.RunGame. It pre-renders the
// map's obstacle raster once, since MapData never changes after
// construction.
func NewEbitenGame(s *Session) *EbitenGame {
	return &EbitenGame{
		session:   s,
		mapImage:  renderMapImage(s.MapData()),
		panelFont: basicfont.Face7x13,
		showPaths: true,
	}
}

func renderMapImage(md *MapData) *ebiten.Image {
	rgba := image.NewRGBA(image.Rect(0, 0, md.Width(), md.Height()))
	free := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	obstacle := color.RGBA{R: 40, G: 40, B: 40, A: 255}
	for y := 0; y < md.Height(); y++ {
		for x := 0; x < md.Width(); x++ {
			c := free
			if md.IsObstacleDisplayed(x, y) {
				c = obstacle
			}
			rgba.Set(x, y, c)
		}
	}
	return ebiten.NewImageFromImage(rgba)
}

// Update writes the current keyboard state into the session and checks for
// a quit request. It never touches the actor lock; the physics tick reads
// the key state on its own schedule.
func (g *EbitenGame) Update() error {
	for key, control := range keyBindings {
		g.session.Keys().Set(control, ebiten.IsKeyPressed(key))
	}

	pPressed := ebiten.IsKeyPressed(ebiten.KeyP)
	if pPressed && !g.prevPKey {
		g.showPaths = !g.showPaths
	}
	g.prevPKey = pPressed

	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ErrQuitRequested
	}
	return nil
}

// Draw snapshots renderable state under the actor lock, then renders the
// map, every live actor, an optional debug path overlay, and the side
// panel entirely without the lock held.
func (g *EbitenGame) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.mapImage, nil)

	s := g.session
	s.AcquireActorLock()
	player := actorSnapshot{pos: s.Player().Position(), col: s.Player().Color()}
	var zombies []actorSnapshot
	waveNumber := 0
	if wave := s.CurrentWave(); wave != nil {
		waveNumber = wave.WaveNumber()
		for i := 0; i < MaxZombiesAtOnce; i++ {
			z := wave.ZombieAt(i)
			if z == nil {
				continue
			}
			snap := actorSnapshot{pos: z.Position(), col: z.Color()}
			if g.showPaths {
				if p := wave.PathAt(i); p != nil {
					snap.path = append([]Position(nil), p.Points()...)
				}
			}
			zombies = append(zombies, snap)
		}
	}
	points := s.Player().PointCount()
	health := s.Player().Health()
	s.ReleaseActorLock()

	for _, z := range zombies {
		if g.showPaths {
			drawDebugPath(screen, z.path)
		}
	}
	for _, z := range zombies {
		drawActorDisk(screen, z)
	}
	drawActorDisk(screen, player)

	g.drawSidePanel(screen, waveNumber, points, health)
}

func drawActorDisk(screen *ebiten.Image, snap actorSnapshot) {
	vector.DrawFilledCircle(screen, float32(snap.pos.X), float32(snap.pos.Y), float32(ActorRadius), snap.col, true)
}

func drawDebugPath(screen *ebiten.Image, path []Position) {
	overlay := color.RGBA{R: 255, G: 255, B: 0, A: 160}
	for i := 1; i < len(path); i++ {
		a, b := path[i-1], path[i]
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, overlay, true)
	}
}

// drawSidePanel renders the wave number, point count, and health readout
// to the strip of the window to the right of the map, using a directly
// rasterized bitmap font rather than ebiten's own text package.
func (g *EbitenGame) drawSidePanel(screen *ebiten.Image, wave, points, health int) {
	height := g.session.MapData().Height()
	panel := image.NewRGBA(image.Rect(0, 0, sidePanelWidth, height))
	draw.Draw(panel, panel.Bounds(), image.NewUniform(color.RGBA{R: 20, G: 20, B: 20, A: 255}), image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  panel,
		Src:  image.NewUniform(color.White),
		Face: g.panelFont,
	}
	lines := []string{
		fmt.Sprintf("Wave: %d", wave),
		fmt.Sprintf("Points: %d", points),
		fmt.Sprintf("Health: %d", health),
	}
	for i, line := range lines {
		drawer.Dot = fixed.P(10, 20+16*i)
		drawer.DrawString(line)
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Translate(float64(g.session.MapData().Width()), 0)
	screen.DrawImage(ebiten.NewImageFromImage(panel), opts)
}

// Layout implements ebiten.Game: a fixed window sized to the map plus the
// side panel.
func (g *EbitenGame) Layout(_, _ int) (int, int) {
	md := g.session.MapData()
	return md.Width() + sidePanelWidth, md.Height()
}
