package main

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
)

// A terminal cell stands in for this many pixels of the simulated viewport.
const (
	cellWidth  = 8
	cellHeight = 16
)

// cellSurface draws particle frames onto a tcell screen. Lines are rasterised
// per cell and every colour is composited over the background, since the
// terminal has no alpha channel.
type cellSurface struct {
	screen tcell.Screen
	bg     color.NRGBA
}

func (s *cellSurface) toCell(x, y float64) (int, int) {
	return int(math.Floor(x / cellWidth)), int(math.Floor(y / cellHeight))
}

func (s *cellSurface) Clear(width, height float64) {
	s.screen.Fill(' ', tcell.StyleDefault.Background(tcellColor(s.bg)))
}

func (s *cellSurface) Line(x0, y0, x1, y1 float64, stroke color.NRGBA, alpha float64) {
	c0, r0 := s.toCell(x0, y0)
	c1, r1 := s.toCell(x1, y1)
	style := tcell.StyleDefault.
		Background(tcellColor(s.bg)).
		Foreground(tcellColor(over(s.bg, stroke, alpha)))
	bresenham(c0, r0, c1, r1, func(x, y int) {
		// Particles drawn later win; lines never cover a dot.
		if r, _, _, _ := s.screen.GetContent(x, y); r == dot || r == bigDot {
			return
		}
		s.screen.SetContent(x, y, '·', nil, style)
	})
}

const (
	dot    = '•'
	bigDot = '●'
)

func (s *cellSurface) Circle(x, y, r float64, fill color.NRGBA, alpha float64) {
	cx, cy := s.toCell(x, y)
	glyph := dot
	if r >= 3 {
		glyph = bigDot
	}
	s.screen.SetContent(cx, cy, glyph, nil, tcell.StyleDefault.
		Background(tcellColor(s.bg)).
		Foreground(tcellColor(over(s.bg, fill, alpha))))
}

// over composites fg at alpha (scaled by fg's own alpha) onto an opaque bg.
func over(bg, fg color.NRGBA, alpha float64) color.NRGBA {
	a := float64(fg.A) / 0xff * math.Max(0, math.Min(1, alpha))
	mix := func(b, f uint8) uint8 {
		return uint8(math.Round(float64(b)*(1-a) + float64(f)*a))
	}
	return color.NRGBA{R: mix(bg.R, fg.R), G: mix(bg.G, fg.G), B: mix(bg.B, fg.B), A: 0xff}
}

func tcellColor(c color.NRGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// bresenham calls plot for every cell on the segment between the two cells,
// endpoints included.
func bresenham(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
