// Command constellation runs the particle background in a terminal. The mouse
// attracts particles, a click pushes them away with a short tone.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/Zachkp/folio/particle"
)

const (
	sampleRate = beep.SampleRate(44100)
	toneHz     = 660
	toneLength = 60 * time.Millisecond
)

type app struct {
	screen  tcell.Screen
	surface *cellSurface
	loop    *particle.Loop
	cores   int

	pressed   bool
	audioInit bool
	now       func() time.Time
}

func newApp(screen tcell.Screen, scheme particle.Scheme, cores int) *app {
	a := &app{
		screen:  screen,
		surface: &cellSurface{screen: screen, bg: scheme.Palette().Background},
		cores:   cores,
		now:     time.Now,
	}
	a.loop = particle.Mount(a.surface, a.viewport(), cores, scheme, nil)
	return a
}

func (a *app) viewport() particle.Viewport {
	w, h := a.screen.Size()
	return particle.Viewport{Width: float64(w * cellWidth), Height: float64(h * cellHeight)}
}

// cellCenter maps a terminal cell to the pixel at its centre.
func cellCenter(x, y int) (float64, float64) {
	return float64(x)*cellWidth + cellWidth/2, float64(y)*cellHeight + cellHeight/2
}

func (a *app) initAudio() error {
	err := speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	if err == nil {
		a.audioInit = true
	}
	return err
}

func (a *app) playTone() {
	if !a.audioInit {
		return
	}
	sine, err := generators.SineTone(sampleRate, toneHz)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(toneLength), sine))
}

// handle applies one terminal event. It returns false when the user quits.
func (a *app) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'h':
				a.loop.SetHovered(!a.loop.Hovered())
			case 't':
				a.toggleScheme()
			}
		}

	case *tcell.EventMouse:
		x, y := cellCenter(ev.Position())
		a.loop.PointerMoved(x, y)
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !a.pressed {
			a.loop.Clicked(x, y, a.now())
			a.playTone()
		}
		a.pressed = down

	case *tcell.EventFocus:
		a.loop.SetHidden(!ev.Focused)

	case *tcell.EventResize:
		a.screen.Sync()
		a.loop.Resized(a.viewport(), a.cores)
	}
	return true
}

func (a *app) toggleScheme() {
	next := particle.Dark
	if a.loop.Scheme() == particle.Dark {
		next = particle.Light
	}
	a.loop.SetScheme(next)
	a.surface.bg = next.Palette().Background
}

func (a *app) run() {
	ticker := time.NewTicker(particle.FrameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok || !a.handle(ev) {
				return
			}
		case now := <-ticker.C:
			if a.loop.Frame(now) {
				a.screen.Show()
			}
		}
	}
}

func (a *app) cleanup() {
	if a.audioInit {
		speaker.Close()
	}
	a.screen.Fini()
}

func main() {
	dark := flag.Bool("dark", false, "start with the dark palette")
	mute := flag.Bool("mute", false, "disable the click tone")
	flag.Parse()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()

	scheme := particle.Light
	if *dark {
		scheme = particle.Dark
	}
	a := newApp(screen, scheme, runtime.NumCPU())
	defer a.cleanup()

	if !*mute {
		if err := a.initAudio(); err != nil {
			// Non-fatal, runs silently
			log.Printf("Audio initialization failed: %v", err)
		}
	}

	a.run()
}
