package particle

import "math/rand/v2"

// Particle is a point mass of the constellation. Radius is fixed at creation.
type Particle struct {
	X, Y, VX, VY float64
	Radius       float64
}

type Viewport struct {
	Width, Height float64
}

func (v Viewport) Center() (float64, float64) {
	return v.Width / 2, v.Height / 2
}

func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}

// Count returns the particle budget for a viewport width and hardware thread
// count. A cores value of 0 means unknown and never selects the reduced count.
func Count(width float64, cores int) int {
	lowEnd := cores > 0 && cores <= LowEndCores
	if width < SmallViewportWidth || lowEnd {
		return CountReduced
	}
	return CountFull
}

// Field is the particle store. The whole batch is replaced on Resize; single
// particles are never added or removed.
type Field struct {
	Particles []Particle
	Bounds    Viewport
	rng       *rand.Rand
}

func NewField(bounds Viewport, cores int, rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	f := &Field{rng: rng}
	f.Resize(bounds, cores)
	return f
}

func (f *Field) Resize(bounds Viewport, cores int) {
	f.Bounds = bounds
	n := Count(bounds.Width, cores)
	ps := make([]Particle, n)
	for i := range ps {
		ps[i] = Particle{
			X:      f.rng.Float64() * bounds.Width,
			Y:      f.rng.Float64() * bounds.Height,
			VX:     (f.rng.Float64() - 0.5) * 2 * SpawnSpeed,
			VY:     (f.rng.Float64() - 0.5) * 2 * SpawnSpeed,
			Radius: RadiusMin + f.rng.Float64()*RadiusSpread,
		}
	}
	f.Particles = ps
}

func (f *Field) Len() int {
	return len(f.Particles)
}
