package particle

import (
	"math/rand/v2"
	"time"
)

// Loop drives a Field on a display refresh callback. Event methods record
// input into the simulation context; Frame consumes it. A Loop is not safe
// for concurrent use: events and frames run on the same goroutine.
type Loop struct {
	field    *Field
	renderer *Renderer
	surface  Surface
	rng      *rand.Rand
	cores    int

	ctx       Context
	hovered   bool
	hidden    bool
	disabled  bool
	lastFrame time.Time
	frames    int
}

// Mount attaches a loop to surface. With a nil surface the loop is disabled:
// it keeps no particles and every call is a no-op.
func Mount(surface Surface, bounds Viewport, cores int, scheme Scheme, rng *rand.Rand) *Loop {
	if surface == nil {
		return &Loop{disabled: true}
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Loop{
		field:    NewField(bounds, cores, rng),
		renderer: NewRenderer(scheme, rng),
		surface:  surface,
		rng:      rng,
		cores:    cores,
	}
}

func (l *Loop) Disabled() bool { return l.disabled }

// Field exposes the particle store; nil for a disabled loop.
func (l *Loop) Field() *Field { return l.field }

// Context returns a copy of the pending simulation context.
func (l *Loop) Context() Context { return l.ctx }

func (l *Loop) Frames() int { return l.frames }

func (l *Loop) Hovered() bool { return l.hovered }

// Running reports whether Frame would currently do work.
func (l *Loop) Running() bool {
	return !l.disabled && !l.hidden
}

func (l *Loop) PointerMoved(x, y float64) {
	l.ctx.Pointer = Pointer{X: x, Y: y}
}

// Clicked starts a new impulse, replacing any previous one.
func (l *Loop) Clicked(x, y float64, at time.Time) {
	l.ctx.Impulse = Impulse{X: x, Y: y, At: at}
}

// Resized regenerates the particle batch for the new viewport.
func (l *Loop) Resized(bounds Viewport, cores int) {
	if l.disabled {
		return
	}
	l.cores = cores
	l.field.Resize(bounds, cores)
}

func (l *Loop) SetHovered(on bool) {
	l.hovered = on
	l.ctx.Contracting = on
}

// SetHidden suspends the loop while the view is hidden. Resuming resets the
// throttle so the first frame after a return is drawn immediately.
func (l *Loop) SetHidden(hidden bool) {
	if l.hidden && !hidden {
		l.lastFrame = time.Time{}
	}
	l.hidden = hidden
}

func (l *Loop) Scheme() Scheme {
	if l.disabled {
		return Light
	}
	return l.renderer.Scheme
}

func (l *Loop) SetScheme(s Scheme) {
	if l.disabled {
		return
	}
	l.renderer.Scheme = s
}

// Frame runs update then render if at least FrameInterval elapsed since the
// last drawn frame. Frames arriving early are dropped, never queued.
func (l *Loop) Frame(now time.Time) bool {
	if !l.Running() {
		return false
	}
	if !l.lastFrame.IsZero() && now.Sub(l.lastFrame) < FrameInterval {
		return false
	}
	l.lastFrame = now
	l.ctx.Now = now
	if !l.ctx.Impulse.IsZero() && !l.ctx.Impulse.Active(now) {
		l.ctx.Impulse = Impulse{}
	}
	Step(l.field, l.ctx, l.rng)
	l.renderer.Draw(l.surface, l.field, l.hovered)
	l.frames++
	return true
}
