package particle

import (
	"math"
	"math/rand/v2"
	"time"
)

type Pointer struct {
	X, Y float64
}

// Impulse is the click "explosion". The zero value is no impulse.
type Impulse struct {
	X, Y float64
	At   time.Time
}

func (im Impulse) IsZero() bool {
	return im.At.IsZero()
}

// Age returns how long ago the impulse fired.
func (im Impulse) Age(now time.Time) time.Duration {
	return now.Sub(im.At)
}

// Active reports whether the impulse still pushes particles at now. At an age
// of exactly ImpulseWindow it no longer applies.
func (im Impulse) Active(now time.Time) bool {
	if im.IsZero() {
		return false
	}
	age := im.Age(now)
	return age >= 0 && age < ImpulseWindow
}

// Context is everything one update needs besides the particles themselves.
type Context struct {
	Pointer     Pointer
	Impulse     Impulse
	Contracting bool
	Now         time.Time
}

// Step advances every particle of f by one frame.
func Step(f *Field, ctx Context, rng *rand.Rand) {
	if rng == nil {
		rng = f.rng
	}
	cx, cy := f.Bounds.Center()
	impulse := ctx.Impulse.Active(ctx.Now)
	var impulseScale float64
	if impulse {
		age := float64(ctx.Impulse.Age(ctx.Now)) / float64(ImpulseWindow)
		impulseScale = ImpulseForce * (1 - age)
	}

	for i := range f.Particles {
		p := &f.Particles[i]

		p.X += p.VX
		p.Y += p.VY

		dx := ctx.Pointer.X - p.X
		dy := ctx.Pointer.Y - p.Y
		dist := math.Hypot(dx, dy)
		if dist > 0 && dist < AttractRange {
			force := AttractNear - (dist/AttractRange)*(AttractNear-AttractFar)
			p.VX += dx / dist * force
			p.VY += dy / dist * force
		}

		if impulse {
			ex := p.X - ctx.Impulse.X
			ey := p.Y - ctx.Impulse.Y
			ed := math.Hypot(ex, ey)
			if ed > 0 && ed < ImpulseRange {
				mult := (ImpulseRange - ed) / ImpulseRange
				p.VX += ex / ed * impulseScale * mult
				p.VY += ey / ed * impulseScale * mult
			}
		}

		if ctx.Contracting {
			p.VX += (cx - p.X) * ContractForce
			p.VY += (cy - p.Y) * ContractForce
		}

		reflect(p, f.Bounds)

		p.VX *= Damping
		p.VY *= Damping

		p.VX += (rng.Float64() - 0.5) * JitterSpan
		p.VY += (rng.Float64() - 0.5) * JitterSpan

		p.VX = clampAbs(p.VX, MaxVelocity)
		p.VY = clampAbs(p.VY, MaxVelocity)
	}
}

// reflect flips the velocity component of any crossed edge and clamps the
// position back inside the viewport.
func reflect(p *Particle, b Viewport) {
	if p.X < 0 || p.X > b.Width {
		p.VX = -p.VX
		p.X = math.Max(0, math.Min(b.Width, p.X))
	}
	if p.Y < 0 || p.Y > b.Height {
		p.VY = -p.VY
		p.Y = math.Max(0, math.Min(b.Height, p.Y))
	}
}

func clampAbs(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}

// Advance runs n updates starting at ctx.Now, one FrameInterval apart.
func Advance(f *Field, ctx Context, n int) {
	start := ctx.Now
	for i := 0; i < n; i++ {
		ctx.Now = start.Add(time.Duration(i) * FrameInterval)
		Step(f, ctx, nil)
	}
}
