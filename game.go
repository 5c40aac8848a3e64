package tubefall

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// EbitenRenderer paints worlds onto one ebiten image.
type EbitenRenderer struct {
	Screen     *ebiten.Image
	Background color.RGBA
}

func (r *EbitenRenderer) RenderFrame(w *World, cam *Camera, clear bool) {
	if clear {
		r.Screen.Fill(r.Background)
	}
	b := r.Screen.Bounds()
	batcher := newImageBatcher(r.Screen)
	w.PaintObjects(batcher, cam, b.Dx(), b.Dy())
	batcher.Flush()
}

// Game adapts a FrameDriver to ebiten.Game.
type Game struct {
	driver *FrameDriver
	input  InputSource
	debug  bool

	width, height int
	hudFace       text.Face
	state         FrameState
}

func NewGame(driver *FrameDriver, input InputSource, width, height int, debug bool) *Game {
	return &Game{
		driver:  driver,
		input:   input,
		debug:   debug,
		width:   width,
		height:  height,
		hudFace: text.NewGoXFace(basicfont.Face7x13),
	}
}

func (g *Game) Update() error {
	frame := g.input.Poll(g.width, g.height)
	g.state = g.driver.Tick(frame, 1.0/float64(TicksPerSecond))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.driver.Render(&EbitenRenderer{Screen: screen, Background: g.driver.Room.Background})

	if !g.debug {
		return
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %0.2f", ebiten.ActualFPS()))

	progress := g.state.Scroll.Progress
	if g.state.Phase != PhaseRoom {
		progress = g.state.Fall.Progress
	}
	lines := []string{
		fmt.Sprintf("Phase: %s", g.state.Phase),
		fmt.Sprintf("Progress: %.3f || Velocity: %.5f", progress, g.state.Scroll.Velocity),
		fmt.Sprintf("Tweens: %d", g.state.Tweens),
	}
	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(4, float64(20+i*14))
		op.ColorScale.ScaleWithColor(color.RGBA{R: 255, G: 255, B: 0, A: 255})
		text.Draw(screen, line, g.hudFace, op)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.driver.Resize(outsideWidth, outsideHeight)
	}
	return g.width, g.height
}
