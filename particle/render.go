package particle

import (
	"image/color"
	"math"
	"math/rand/v2"
	"sort"
)

type Scheme int

const (
	Light Scheme = iota
	Dark
)

func ParseScheme(s string) Scheme {
	if s == "dark" {
		return Dark
	}
	return Light
}

func (s Scheme) String() string {
	if s == Dark {
		return "dark"
	}
	return "light"
}

// Palette holds straight-alpha fill and stroke colours for a scheme.
type Palette struct {
	Background color.NRGBA
	Particle   color.NRGBA
	Connection color.NRGBA
}

func (s Scheme) Palette() Palette {
	if s == Dark {
		return Palette{
			Background: color.NRGBA{0, 0, 0, 0xff},
			Particle:   color.NRGBA{0xff, 0xff, 0xff, alpha8(0.6)},
			Connection: color.NRGBA{0xff, 0xff, 0xff, alpha8(0.1)},
		}
	}
	return Palette{
		Background: color.NRGBA{0xff, 0xff, 0xff, 0xff},
		Particle:   color.NRGBA{0, 0, 0, alpha8(0.6)},
		Connection: color.NRGBA{0, 0, 0, alpha8(0.1)},
	}
}

// Surface is a 2D drawing target. alpha multiplies the colour's own alpha.
type Surface interface {
	Clear(width, height float64)
	Line(x0, y0, x1, y1 float64, stroke color.NRGBA, alpha float64)
	Circle(x, y, r float64, fill color.NRGBA, alpha float64)
}

// Edge is an undirected connection, always stored with From < To.
type Edge struct {
	From, To int
	Distance float64
	Opacity  float64
}

type neighbor struct {
	index int
	dist  float64
}

// Connections links every particle to a random 3-5 of its nearest
// neighbours. An edge is only emitted while the lower index is processed, so
// no pair appears twice.
func Connections(ps []Particle, rng *rand.Rand) []Edge {
	if len(ps) < 2 {
		return nil
	}
	edges := make([]Edge, 0, len(ps)*NeighborsMin)
	dists := make([]neighbor, 0, len(ps)-1)
	for i := range ps {
		dists = dists[:0]
		for j := range ps {
			if i == j {
				continue
			}
			dists = append(dists, neighbor{j, math.Hypot(ps[i].X-ps[j].X, ps[i].Y-ps[j].Y)})
		}
		sort.SliceStable(dists, func(a, b int) bool { return dists[a].dist < dists[b].dist })

		k := min(NeighborsMin+rng.IntN(NeighborsExtra), len(dists))
		for _, n := range dists[:k] {
			if i >= n.index || n.dist >= LinkCutoff {
				continue
			}
			edges = append(edges, Edge{
				From:     i,
				To:       n.index,
				Distance: n.dist,
				Opacity:  1 - n.dist/LinkCutoff,
			})
		}
	}
	return edges
}

type Renderer struct {
	Scheme Scheme
	rng    *rand.Rand
}

func NewRenderer(scheme Scheme, rng *rand.Rand) *Renderer {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Renderer{Scheme: scheme, rng: rng}
}

// Draw paints one frame of f: clear, connections, then particles.
func (r *Renderer) Draw(s Surface, f *Field, hovered bool) {
	pal := r.Scheme.Palette()
	base := AlphaIdle
	if hovered {
		base = AlphaHovered
	}

	s.Clear(f.Bounds.Width, f.Bounds.Height)
	for _, e := range Connections(f.Particles, r.rng) {
		a, b := f.Particles[e.From], f.Particles[e.To]
		s.Line(a.X, a.Y, b.X, b.Y, pal.Connection, e.Opacity*base)
	}
	for _, p := range f.Particles {
		s.Circle(p.X, p.Y, p.Radius, pal.Particle, base)
	}
}

func alpha8(a float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, a)) * 0xff))
}

// Blend scales c's alpha by alpha and returns the result.
func Blend(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = alpha8(float64(c.A) / 0xff * alpha)
	return c
}
