package particle

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestConnectionsStructure(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		f := NewField(Viewport{1280, 800}, 8, seeded(seed))
		edges := Connections(f.Particles, seeded(seed+100))

		seen := make(map[[2]int]bool)
		perSource := make(map[int]int)
		for _, e := range edges {
			if e.From >= e.To {
				t.Fatalf("edge not ordered: %+v", e)
			}
			key := [2]int{e.From, e.To}
			if seen[key] {
				t.Fatalf("duplicate undirected edge %v", key)
			}
			seen[key] = true
			perSource[e.From]++
			if e.Opacity <= 0 || e.Opacity > 1 {
				t.Fatalf("opacity out of range: %+v", e)
			}
		}
		for i, n := range perSource {
			if n > NeighborsMin+NeighborsExtra-1 {
				t.Fatalf("particle %d drew %d edges, want at most %d", i, n, NeighborsMin+NeighborsExtra-1)
			}
		}
		// Every other particle has a higher index than particle 0, so all of
		// its chosen neighbours become edges.
		if n := perSource[0]; n < NeighborsMin || n > NeighborsMin+NeighborsExtra-1 {
			t.Fatalf("particle 0 drew %d edges, want within [3,5]", n)
		}
	}
}

func TestConnectionsDegenerate(t *testing.T) {
	if got := Connections(nil, seeded(1)); len(got) != 0 {
		t.Fatalf("expected no edges for empty field, got %d", len(got))
	}
	two := []Particle{{X: 0, Y: 0}, {X: 3, Y: 4}}
	edges := Connections(two, seeded(1))
	if len(edges) != 1 {
		t.Fatalf("expected a single edge for two particles, got %d", len(edges))
	}
	if edges[0].Distance != 5 || edges[0].Opacity != 1-5/LinkCutoff {
		t.Fatalf("unexpected edge %+v", edges[0])
	}
}

func TestRendererDrawOrderAndAlpha(t *testing.T) {
	f := NewField(Viewport{400, 300}, 2, seeded(2))
	rec := &Recorder{}
	NewRenderer(Dark, seeded(5)).Draw(rec, f, true)

	if len(rec.Ops) == 0 || rec.Ops[0].Kind != OpClear {
		t.Fatalf("frame must start with a clear")
	}
	if got := rec.Count(OpCircle); got != f.Len() {
		t.Fatalf("circles = %d, want %d", got, f.Len())
	}
	lastLine := -1
	firstCircle := len(rec.Ops)
	for i, op := range rec.Ops {
		if op.Kind == OpLine {
			lastLine = i
		}
		if op.Kind == OpCircle && i < firstCircle {
			firstCircle = i
		}
	}
	if lastLine > firstCircle {
		t.Fatalf("lines must be drawn before particles")
	}
	circle := rec.Ops[firstCircle]
	if !strings.HasPrefix(circle.Color, "rgba(255,255,255,") {
		t.Fatalf("dark scheme should draw white particles, got %s", circle.Color)
	}
	// 0.6 palette alpha times 0.8 hover alpha.
	if !strings.HasSuffix(circle.Color, "0.478)") {
		t.Fatalf("unexpected hovered particle alpha in %s", circle.Color)
	}
}

func TestSchemePalette(t *testing.T) {
	if p := Light.Palette(); p.Particle.R != 0 || p.Particle.A != 153 {
		t.Fatalf("light particle colour = %+v", p.Particle)
	}
	if p := Dark.Palette(); p.Connection.R != 255 || p.Connection.A != 26 {
		t.Fatalf("dark connection colour = %+v", p.Connection)
	}
	if ParseScheme("dark") != Dark || ParseScheme("") != Light {
		t.Fatalf("ParseScheme mismatch")
	}
}

func TestWriteSVG(t *testing.T) {
	f := NewField(Viewport{320, 200}, 0, seeded(8))
	var buf bytes.Buffer
	WriteSVG(&buf, f, NewRenderer(Light, seeded(8)), false)

	out := buf.String()
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Fatalf("expected an svg document, got %q", out[:min(80, len(out))])
	}
	if n := strings.Count(out, "<circle"); n != f.Len() {
		t.Fatalf("circles in svg = %d, want %d", n, f.Len())
	}
}

func TestLoopThrottle(t *testing.T) {
	rec := &Recorder{}
	l := Mount(rec, Viewport{1024, 768}, 8, Light, seeded(1))
	t0 := time.Unix(1700000000, 0)

	if !l.Frame(t0) {
		t.Fatalf("first frame should render")
	}
	if l.Frame(t0.Add(10 * time.Millisecond)) {
		t.Fatalf("frame 10ms later should be skipped")
	}
	if !l.Frame(t0.Add(17 * time.Millisecond)) {
		t.Fatalf("frame 17ms later should render")
	}
	if l.Frames() != 2 {
		t.Fatalf("frames = %d, want 2", l.Frames())
	}
}

func TestLoopVisibility(t *testing.T) {
	l := Mount(&Recorder{}, Viewport{1024, 768}, 8, Light, seeded(1))
	t0 := time.Unix(1700000000, 0)
	l.Frame(t0)

	l.SetHidden(true)
	if l.Running() {
		t.Fatalf("hidden loop should not run")
	}
	if l.Frame(t0.Add(time.Second)) {
		t.Fatalf("hidden loop rendered a frame")
	}
	l.SetHidden(false)
	if !l.Frame(t0.Add(time.Second + time.Millisecond)) {
		t.Fatalf("loop should resume on visibility")
	}
}

func TestLoopEvents(t *testing.T) {
	l := Mount(&Recorder{}, Viewport{1024, 768}, 8, Light, seeded(1))
	t0 := time.Unix(1700000000, 0)

	l.PointerMoved(10, 20)
	l.Clicked(5, 5, t0)
	l.Clicked(50, 60, t0.Add(time.Millisecond))
	ctx := l.Context()
	if ctx.Pointer != (Pointer{10, 20}) {
		t.Fatalf("pointer = %+v", ctx.Pointer)
	}
	if ctx.Impulse.X != 50 || ctx.Impulse.Y != 60 {
		t.Fatalf("second click should overwrite impulse, got %+v", ctx.Impulse)
	}

	l.SetHovered(true)
	if !l.Context().Contracting || !l.Hovered() {
		t.Fatalf("hover should enable contraction")
	}

	l.Frame(t0.Add(ImpulseWindow + time.Millisecond))
	if !l.Context().Impulse.IsZero() {
		t.Fatalf("expired impulse should be cleared after a frame")
	}

	l.Resized(Viewport{600, 400}, 8)
	if l.Field().Len() != CountReduced {
		t.Fatalf("resize to small viewport kept %d particles", l.Field().Len())
	}
}

func TestMountWithoutSurface(t *testing.T) {
	l := Mount(nil, Viewport{1024, 768}, 8, Dark, nil)
	if !l.Disabled() || l.Running() {
		t.Fatalf("loop without surface should be disabled")
	}
	if l.Frame(time.Now()) {
		t.Fatalf("disabled loop rendered")
	}
	l.Resized(Viewport{100, 100}, 1)
	l.SetScheme(Light)
	if l.Field() != nil {
		t.Fatalf("disabled loop should hold no particles")
	}
}
