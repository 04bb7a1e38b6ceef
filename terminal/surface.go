// Package terminal runs the fluid background in a tcell screen, one
// character cell per viewport pixel.
package terminal

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"fluidbg/fluid"
)

// ramp maps increasing intensity to denser glyphs.
var ramp = []rune(" .:-=+*#%@")

// Surface accumulates screen-blended intensity per character cell and
// flushes it to a tcell screen.
type Surface struct {
	screen  tcell.Screen
	tint    colorful.Color
	black   colorful.Color
	opacity float32

	cols, rows int
	cells      []float32
}

// NewSurface sizes a surface to the current screen.
func NewSurface(screen tcell.Screen, tint color.RGBA, opacity float32) *Surface {
	c, _ := colorful.MakeColor(tint)
	s := &Surface{
		screen:  screen,
		tint:    c,
		black:   colorful.Color{},
		opacity: opacity,
	}
	s.Resize(screen.Size())
	return s
}

// Size returns the surface size in character cells.
func (s *Surface) Size() (int, int) { return s.cols, s.rows }

// Resize reallocates the intensity buffer for a new screen size.
func (s *Surface) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	s.cols, s.rows = cols, rows
	s.cells = make([]float32, cols*rows)
}

// Clear drops the previous frame.
func (s *Surface) Clear() {
	clear(s.cells)
}

// FillRect screen-blends alpha into every cell whose centre lies in r.
func (s *Surface) FillRect(r fluid.Rect, alpha float32) {
	x0 := clampInt(int(math.Ceil(float64(r.X)-0.5)), 0, s.cols)
	x1 := clampInt(int(math.Ceil(float64(r.X+r.W)-0.5)), 0, s.cols)
	y0 := clampInt(int(math.Ceil(float64(r.Y)-0.5)), 0, s.rows)
	y1 := clampInt(int(math.Ceil(float64(r.Y+r.H)-0.5)), 0, s.rows)
	a := alpha * s.opacity
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			i := y*s.cols + x
			s.cells[i] = a + s.cells[i]*(1-a)
		}
	}
}

// Intensity returns the blended value of a cell, or 0 outside the surface.
func (s *Surface) Intensity(x, y int) float32 {
	if x < 0 || y < 0 || x >= s.cols || y >= s.rows {
		return 0
	}
	return s.cells[y*s.cols+x]
}

// Flush draws the accumulated frame and shows it.
func (s *Surface) Flush() {
	for y := 0; y < s.rows; y++ {
		for x := 0; x < s.cols; x++ {
			v := s.cells[y*s.cols+x]
			glyph, style := s.cellStyle(v)
			s.screen.SetContent(x, y, glyph, nil, style)
		}
	}
	s.screen.Show()
}

func (s *Surface) cellStyle(v float32) (rune, tcell.Style) {
	if v <= 0 {
		return ' ', tcell.StyleDefault
	}
	idx := int(v * float32(len(ramp)-1))
	if idx < 1 {
		idx = 1
	}
	if idx >= len(ramp) {
		idx = len(ramp) - 1
	}
	r, g, b := s.black.BlendRgb(s.tint, float64(v)).Clamped().RGB255()
	fg := tcell.NewRGBColor(int32(r), int32(g), int32(b))
	return ramp[idx], tcell.StyleDefault.Foreground(fg)
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
