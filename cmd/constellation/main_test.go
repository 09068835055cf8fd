package main

import (
	"image/color"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Zachkp/folio/particle"
)

func newTestApp(t *testing.T, w, h int) (*app, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)
	return newApp(screen, particle.Light, 8), screen
}

func TestBresenham(t *testing.T) {
	var got [][2]int
	bresenham(0, 0, 4, 2, func(x, y int) { got = append(got, [2]int{x, y}) })
	if len(got) != 5 {
		t.Fatalf("plotted %d cells, want 5: %v", len(got), got)
	}
	if got[0] != [2]int{0, 0} || got[4] != [2]int{4, 2} {
		t.Fatalf("endpoints %v .. %v", got[0], got[4])
	}

	got = got[:0]
	bresenham(3, 3, 3, 3, func(x, y int) { got = append(got, [2]int{x, y}) })
	if len(got) != 1 {
		t.Fatalf("single point plotted %d cells", len(got))
	}

	got = got[:0]
	bresenham(5, 0, 0, 0, func(x, y int) { got = append(got, [2]int{x, y}) })
	if len(got) != 6 || got[5] != [2]int{0, 0} {
		t.Fatalf("reverse line %v", got)
	}
}

func TestOver(t *testing.T) {
	bg := color.NRGBA{0, 0, 0, 0xff}
	fg := color.NRGBA{200, 100, 50, 0xff}
	if c := over(bg, fg, 0); c != bg {
		t.Fatalf("alpha 0 should keep background, got %v", c)
	}
	if c := over(bg, fg, 1); c != fg {
		t.Fatalf("alpha 1 should give foreground, got %v", c)
	}
	if c := over(bg, fg, 0.5); c.R != 100 || c.G != 50 || c.B != 25 {
		t.Fatalf("half alpha gave %v", c)
	}
}

func TestViewportScalesCells(t *testing.T) {
	a, _ := newTestApp(t, 100, 40)
	v := a.viewport()
	if v.Width != 800 || v.Height != 640 {
		t.Fatalf("viewport %+v", v)
	}
	if n := a.loop.Field().Len(); n != particle.CountFull {
		t.Fatalf("field has %d particles, want %d", n, particle.CountFull)
	}
}

func TestFrameDrawsParticles(t *testing.T) {
	a, screen := newTestApp(t, 100, 40)
	if !a.loop.Frame(time.Now()) {
		t.Fatalf("first frame was skipped")
	}
	dots := 0
	for y := 0; y < 40; y++ {
		for x := 0; x < 100; x++ {
			if r, _, _, _ := screen.GetContent(x, y); r == dot || r == bigDot {
				dots++
			}
		}
	}
	if dots == 0 {
		t.Fatalf("no particles drawn")
	}
}

func TestHandleEvents(t *testing.T) {
	a, screen := newTestApp(t, 100, 40)
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return at }

	a.handle(tcell.NewEventMouse(10, 5, tcell.ButtonNone, tcell.ModNone))
	if p := a.loop.Context().Pointer; p.X != 84 || p.Y != 88 {
		t.Fatalf("pointer at %+v, want cell centre (84, 88)", p)
	}

	a.handle(tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModNone))
	if im := a.loop.Context().Impulse; !im.At.Equal(at) || im.X != 84 {
		t.Fatalf("click did not start an impulse: %+v", im)
	}
	// Dragging with the button held is not a new click.
	later := at.Add(time.Second)
	a.now = func() time.Time { return later }
	a.handle(tcell.NewEventMouse(12, 5, tcell.Button1, tcell.ModNone))
	if im := a.loop.Context().Impulse; !im.At.Equal(at) {
		t.Fatalf("drag restarted the impulse")
	}

	a.handle(tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone))
	if !a.loop.Hovered() || !a.loop.Context().Contracting {
		t.Fatalf("h should toggle contraction on")
	}

	a.handle(tcell.NewEventKey(tcell.KeyRune, 't', tcell.ModNone))
	if a.loop.Scheme() != particle.Dark || a.surface.bg != particle.Dark.Palette().Background {
		t.Fatalf("t should switch to the dark palette")
	}

	a.handle(tcell.NewEventFocus(false))
	if a.loop.Running() {
		t.Fatalf("losing focus should suspend the loop")
	}
	a.handle(tcell.NewEventFocus(true))
	if !a.loop.Running() {
		t.Fatalf("regaining focus should resume the loop")
	}

	screen.SetSize(50, 20)
	a.handle(tcell.NewEventResize(50, 20))
	if b := a.loop.Field().Bounds; b.Width != 400 || b.Height != 320 {
		t.Fatalf("resize gave bounds %+v", b)
	}
	if n := a.loop.Field().Len(); n != particle.CountReduced {
		t.Fatalf("narrow terminal should use %d particles, got %d", particle.CountReduced, n)
	}

	if a.handle(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Fatalf("q should quit")
	}
	if a.handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Fatalf("Esc should quit")
	}
}
