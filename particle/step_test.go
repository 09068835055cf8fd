package particle

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestCountThresholds(t *testing.T) {
	cases := []struct {
		width float64
		cores int
		want  int
	}{
		{1920, 8, CountFull},
		{1920, 0, CountFull},
		{768, 16, CountFull},
		{767.9, 16, CountReduced},
		{1920, 4, CountReduced},
		{1920, 1, CountReduced},
		{320, 0, CountReduced},
	}
	for _, c := range cases {
		if got := Count(c.width, c.cores); got != c.want {
			t.Fatalf("Count(%v, %d) = %d, want %d", c.width, c.cores, got, c.want)
		}
	}
}

func TestResizeRegeneratesBatch(t *testing.T) {
	f := NewField(Viewport{1280, 720}, 8, seeded(1))
	if f.Len() != CountFull {
		t.Fatalf("initial count = %d, want %d", f.Len(), CountFull)
	}
	old := f.Particles[0]

	f.Resize(Viewport{500, 900}, 8)
	if f.Len() != CountReduced {
		t.Fatalf("count after shrinking = %d, want %d", f.Len(), CountReduced)
	}
	if f.Particles[0] == old {
		t.Fatalf("expected a fresh batch after resize")
	}
	for i, p := range f.Particles {
		if p.X < 0 || p.X > 500 || p.Y < 0 || p.Y > 900 {
			t.Fatalf("particle %d spawned outside bounds: %+v", i, p)
		}
		if p.Radius < RadiusMin || p.Radius > RadiusMin+RadiusSpread {
			t.Fatalf("particle %d radius %f out of range", i, p.Radius)
		}
		if math.Abs(p.VX) > SpawnSpeed || math.Abs(p.VY) > SpawnSpeed {
			t.Fatalf("particle %d spawn velocity too high: %+v", i, p)
		}
	}

	f.Resize(Viewport{1024, 768}, 4)
	if f.Len() != CountReduced {
		t.Fatalf("count on low-end hardware = %d, want %d", f.Len(), CountReduced)
	}
}

func TestStepKeepsVelocityAndPositionBounded(t *testing.T) {
	bounds := Viewport{800, 600}
	rng := seeded(7)
	f := NewField(bounds, 8, rng)
	radii := make([]float64, f.Len())
	for i, p := range f.Particles {
		radii[i] = p.Radius
	}

	start := time.Unix(1700000000, 0)
	for frame := 0; frame < 600; frame++ {
		now := start.Add(time.Duration(frame) * FrameInterval)
		ctx := Context{
			Pointer:     Pointer{X: rng.Float64() * bounds.Width, Y: rng.Float64() * bounds.Height},
			Contracting: frame%120 < 60,
			Now:         now,
		}
		if frame%50 == 0 {
			ctx.Impulse = Impulse{X: 400, Y: 300, At: now}
		}
		Step(f, ctx, rng)

		for i, p := range f.Particles {
			if math.Abs(p.VX) > MaxVelocity || math.Abs(p.VY) > MaxVelocity {
				t.Fatalf("frame %d particle %d velocity exceeds cap: %+v", frame, i, p)
			}
			if p.X < 0 || p.X > bounds.Width || p.Y < 0 || p.Y > bounds.Height {
				t.Fatalf("frame %d particle %d escaped viewport: %+v", frame, i, p)
			}
			if p.Radius != radii[i] {
				t.Fatalf("frame %d particle %d radius changed", frame, i)
			}
		}
	}
}

func TestImpulseExpiresAtWindow(t *testing.T) {
	at := time.Unix(1700000000, 0)
	im := Impulse{X: 10, Y: 10, At: at}

	if !im.Active(at) {
		t.Fatalf("fresh impulse should be active")
	}
	if !im.Active(at.Add(ImpulseWindow - time.Millisecond)) {
		t.Fatalf("impulse should be active just before the window ends")
	}
	if im.Active(at.Add(ImpulseWindow)) {
		t.Fatalf("impulse must not apply at exactly %v", ImpulseWindow)
	}
	if im.Active(at.Add(-time.Millisecond)) {
		t.Fatalf("impulse from the future should not apply")
	}
	if (Impulse{}).Active(at) {
		t.Fatalf("zero impulse should never be active")
	}
}

func TestExpiredImpulseContributesNothing(t *testing.T) {
	bounds := Viewport{1000, 1000}
	at := time.Unix(1700000000, 0)
	now := at.Add(ImpulseWindow)

	a := NewField(bounds, 8, seeded(3))
	b := NewField(bounds, 8, seeded(3))

	Step(a, Context{Pointer: Pointer{500, 500}, Impulse: Impulse{X: 500, Y: 500, At: at}, Now: now}, seeded(9))
	Step(b, Context{Pointer: Pointer{500, 500}, Now: now}, seeded(9))

	for i := range a.Particles {
		if a.Particles[i] != b.Particles[i] {
			t.Fatalf("particle %d differs with expired impulse: %+v vs %+v", i, a.Particles[i], b.Particles[i])
		}
	}
}

func TestActiveImpulsePushesAway(t *testing.T) {
	at := time.Unix(1700000000, 0)
	f := &Field{
		Bounds:    Viewport{1000, 1000},
		Particles: []Particle{{X: 550, Y: 500, Radius: 2}},
		rng:       seeded(1),
	}
	Step(f, Context{Pointer: Pointer{550, 500}, Impulse: Impulse{X: 500, Y: 500, At: at}, Now: at}, nil)

	p := f.Particles[0]
	if p.VX < 1 {
		t.Fatalf("expected strong push to the right, got vx=%f", p.VX)
	}
	if math.Abs(p.VY) > 0.01 {
		t.Fatalf("expected no vertical push, got vy=%f", p.VY)
	}
}

func TestImpulseOutOfRangeIgnored(t *testing.T) {
	at := time.Unix(1700000000, 0)
	f := &Field{
		Bounds:    Viewport{1000, 1000},
		Particles: []Particle{{X: 900, Y: 500, Radius: 2}},
		rng:       seeded(1),
	}
	Step(f, Context{Pointer: Pointer{900, 500}, Impulse: Impulse{X: 500, Y: 500, At: at}, Now: at}, nil)
	if v := math.Abs(f.Particles[0].VX); v > 0.01 {
		t.Fatalf("particle beyond impulse range moved: vx=%f", v)
	}
}

func TestContractionPullsTowardCenter(t *testing.T) {
	f := &Field{
		Bounds:    Viewport{1000, 1000},
		Particles: []Particle{{X: 100, Y: 900, Radius: 2}},
		rng:       seeded(1),
	}
	Step(f, Context{Pointer: Pointer{100, 900}, Contracting: true}, nil)
	p := f.Particles[0]
	if p.VX <= 0 || p.VY >= 0 {
		t.Fatalf("expected velocity toward center, got vx=%f vy=%f", p.VX, p.VY)
	}
	if p.VX != MaxVelocity || p.VY != -MaxVelocity {
		t.Fatalf("expected clamped velocity, got vx=%f vy=%f", p.VX, p.VY)
	}
}

func TestAttractionWithinRange(t *testing.T) {
	mk := func() *Field {
		return &Field{
			Bounds:    Viewport{2000, 2000},
			Particles: []Particle{{X: 1000, Y: 1000, Radius: 2}},
		}
	}
	near, far := mk(), mk()
	Step(near, Context{Pointer: Pointer{1100, 1000}}, seeded(4))
	Step(far, Context{Pointer: Pointer{1600, 1000}}, seeded(4))

	want := (AttractNear - 0.2*(AttractNear-AttractFar)) * Damping
	got := near.Particles[0].VX - far.Particles[0].VX
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("attraction at distance 100 = %g, want %g", got, want)
	}
	if near.Particles[0].VY != far.Particles[0].VY {
		t.Fatalf("horizontal pull should not change vy")
	}
}

func TestEdgeReflection(t *testing.T) {
	f := &Field{
		Bounds:    Viewport{100, 100},
		Particles: []Particle{{X: 99.5, Y: 0.5, VX: 2, VY: -2, Radius: 2}},
		rng:       seeded(1),
	}
	Step(f, Context{Pointer: Pointer{-1000, -1000}}, nil)
	p := f.Particles[0]
	if p.X != 100 || p.Y != 0 {
		t.Fatalf("expected clamp to corner, got (%f, %f)", p.X, p.Y)
	}
	if p.VX >= 0 || p.VY <= 0 {
		t.Fatalf("expected reflected velocity, got vx=%f vy=%f", p.VX, p.VY)
	}
}
