// Command constellation-window runs the particle background in a desktop
// window.
package main

import (
	"flag"
	"image/color"
	"log"
	"runtime"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Zachkp/folio/particle"
)

const (
	screenWidth  = 1280
	screenHeight = 720
)

// imageSurface draws onto an offscreen ebiten image.
type imageSurface struct {
	dst *ebiten.Image
	bg  color.NRGBA
}

func (s *imageSurface) Clear(width, height float64) {
	s.dst.Fill(s.bg)
}

func (s *imageSurface) Line(x0, y0, x1, y1 float64, stroke color.NRGBA, alpha float64) {
	vector.StrokeLine(s.dst, float32(x0), float32(y0), float32(x1), float32(y1), 1, particle.Blend(stroke, alpha), true)
}

func (s *imageSurface) Circle(x, y, r float64, fill color.NRGBA, alpha float64) {
	vector.DrawFilledCircle(s.dst, float32(x), float32(y), float32(r), particle.Blend(fill, alpha), true)
}

type game struct {
	loop    *particle.Loop
	surface *imageSurface
	cores   int

	width, height int
	now           func() time.Time
}

func newGame(scheme particle.Scheme, cores int) *game {
	g := &game{
		surface: &imageSurface{bg: scheme.Palette().Background},
		cores:   cores,
		width:   screenWidth,
		height:  screenHeight,
		now:     time.Now,
	}
	g.loop = particle.Mount(g.surface, g.viewport(), cores, scheme, nil)
	return g
}

func (g *game) viewport() particle.Viewport {
	return particle.Viewport{Width: float64(g.width), Height: float64(g.height)}
}

// Layout follows the window size; a change regenerates the field.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.loop.Resized(g.viewport(), g.cores)
	}
	return g.width, g.height
}

func (g *game) toggleScheme() {
	next := particle.Dark
	if g.loop.Scheme() == particle.Dark {
		next = particle.Light
	}
	g.loop.SetScheme(next)
	g.surface.bg = next.Palette().Background
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.loop.SetHovered(!g.loop.Hovered())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.toggleScheme()
	}

	g.loop.SetHidden(!ebiten.IsFocused())

	x, y := ebiten.CursorPosition()
	g.loop.PointerMoved(float64(x), float64(y))
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.loop.Clicked(float64(x), float64(y), g.now())
	}

	if g.surface.dst == nil || g.surface.dst.Bounds().Dx() != g.width || g.surface.dst.Bounds().Dy() != g.height {
		g.surface.dst = ebiten.NewImage(g.width, g.height)
		g.surface.dst.Fill(g.surface.bg)
	}
	g.loop.Frame(g.now())
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.surface.dst != nil {
		screen.DrawImage(g.surface.dst, nil)
	}
}

func main() {
	dark := flag.Bool("dark", false, "start with the dark palette")
	flag.Parse()

	scheme := particle.Light
	if *dark {
		scheme = particle.Dark
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("constellation")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetRunnableOnUnfocused(true)

	if err := ebiten.RunGame(newGame(scheme, runtime.NumCPU())); err != nil {
		log.Fatal(err)
	}
}
