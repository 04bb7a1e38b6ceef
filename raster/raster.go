// Package raster draws fluid frames into an in-memory RGBA image with
// screen blending, for headless snapshots.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"fluidbg/fluid"
)

// Surface is a software fluid.Surface backed by an *image.RGBA.
type Surface struct {
	img        *image.RGBA
	tint       [3]float32
	opacity    float32
	background color.RGBA
}

// New allocates a width x height surface that draws rectangles in tint,
// scaled by opacity, over an opaque black background.
func New(width, height int, tint color.RGBA, opacity float32) *Surface {
	s := &Surface{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
		tint: [3]float32{
			float32(tint.R) / 255,
			float32(tint.G) / 255,
			float32(tint.B) / 255,
		},
		opacity:    opacity,
		background: color.RGBA{A: 0xff},
	}
	s.Clear()
	return s
}

// Image exposes the backing image.
func (s *Surface) Image() *image.RGBA { return s.img }

// Clear resets every pixel to the background.
func (s *Surface) Clear() {
	pix := s.img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i] = s.background.R
		pix[i+1] = s.background.G
		pix[i+2] = s.background.B
		pix[i+3] = s.background.A
	}
}

// FillRect screen-blends the tint at alpha over the pixels whose centres
// fall inside r.
func (s *Surface) FillRect(r fluid.Rect, alpha float32) {
	b := s.img.Bounds()
	x0 := clampInt(int(math.Ceil(float64(r.X)-0.5)), b.Min.X, b.Max.X)
	x1 := clampInt(int(math.Ceil(float64(r.X+r.W)-0.5)), b.Min.X, b.Max.X)
	y0 := clampInt(int(math.Ceil(float64(r.Y)-0.5)), b.Min.Y, b.Max.Y)
	y1 := clampInt(int(math.Ceil(float64(r.Y+r.H)-0.5)), b.Min.Y, b.Max.Y)
	if x0 >= x1 || y0 >= y1 {
		return
	}
	a := alpha * s.opacity
	src := [3]float32{s.tint[0] * a, s.tint[1] * a, s.tint[2] * a}
	for y := y0; y < y1; y++ {
		row := s.img.PixOffset(x0, y)
		for x := x0; x < x1; x++ {
			for c := 0; c < 3; c++ {
				s.img.Pix[row+c] = screen(s.img.Pix[row+c], src[c])
			}
			row += 4
		}
	}
}

// screen composites a premultiplied source channel over dst.
func screen(dst uint8, src float32) uint8 {
	d := float32(dst) / 255
	out := src + d*(1-src)
	if out > 1 {
		out = 1
	}
	return uint8(math.Round(float64(out) * 255))
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

// SavePNG writes the current frame to path.
func (s *Surface) SavePNG(path string) error {
	if err := gg.SavePNG(path, s.img); err != nil {
		return fmt.Errorf("save snapshot %s: %w", path, err)
	}
	return nil
}
