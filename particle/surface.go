package particle

import (
	"fmt"
	"image/color"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
)

type OpKind string

const (
	OpClear  OpKind = "clear"
	OpLine   OpKind = "line"
	OpCircle OpKind = "circle"
)

// Op is one recorded draw command. Coordinates are rounded to 0.1px so
// frames stay compact on the wire.
type Op struct {
	Kind  OpKind    `json:"k"`
	Args  []float64 `json:"a"`
	Color string    `json:"c,omitempty"`
}

// Recorder is a Surface that keeps the commands of the last frame.
type Recorder struct {
	Ops []Op
}

func (r *Recorder) Clear(width, height float64) {
	r.Ops = append(r.Ops[:0], Op{Kind: OpClear, Args: []float64{round1(width), round1(height)}})
}

func (r *Recorder) Line(x0, y0, x1, y1 float64, stroke color.NRGBA, alpha float64) {
	r.Ops = append(r.Ops, Op{
		Kind:  OpLine,
		Args:  []float64{round1(x0), round1(y0), round1(x1), round1(y1)},
		Color: rgba(Blend(stroke, alpha)),
	})
}

func (r *Recorder) Circle(x, y, rad float64, fill color.NRGBA, alpha float64) {
	r.Ops = append(r.Ops, Op{
		Kind:  OpCircle,
		Args:  []float64{round1(x), round1(y), round1(rad)},
		Color: rgba(Blend(fill, alpha)),
	})
}

func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func rgba(c color.NRGBA) string {
	return fmt.Sprintf("rgba(%d,%d,%d,%.3f)", c.R, c.G, c.B, float64(c.A)/0xff)
}

// svgSurface draws onto an already started svgo canvas.
type svgSurface struct {
	canvas *svg.SVG
}

func (s svgSurface) Clear(width, height float64) {}

func (s svgSurface) Line(x0, y0, x1, y1 float64, stroke color.NRGBA, alpha float64) {
	c := Blend(stroke, alpha)
	s.canvas.Line(int(x0), int(y0), int(x1), int(y1),
		fmt.Sprintf("stroke:rgb(%d,%d,%d);stroke-opacity:%.3f;stroke-width:1", c.R, c.G, c.B, float64(c.A)/0xff))
}

func (s svgSurface) Circle(x, y, r float64, fill color.NRGBA, alpha float64) {
	c := Blend(fill, alpha)
	rad := max(1, int(math.Round(r)))
	s.canvas.Circle(int(x), int(y), rad,
		fmt.Sprintf("fill:rgb(%d,%d,%d);fill-opacity:%.3f", c.R, c.G, c.B, float64(c.A)/0xff))
}

// WriteSVG renders one frame of f as a standalone SVG document.
func WriteSVG(w io.Writer, f *Field, r *Renderer, hovered bool) {
	canvas := svg.New(w)
	canvas.Start(int(math.Ceil(f.Bounds.Width)), int(math.Ceil(f.Bounds.Height)))
	canvas.Title("constellation")
	r.Draw(svgSurface{canvas: canvas}, f, hovered)
	canvas.End()
}
