package fluid

// Rect is a screen-space rectangle in viewport pixels.
type Rect struct {
	X, Y, W, H float32
}

// Surface receives the draw calls for one frame. Implementations composite
// FillRect with screen blending: out = src + dst*(1-src).
type Surface interface {
	Clear()
	FillRect(r Rect, alpha float32)
}

// Renderer turns a density field into sparse filled rectangles.
type Renderer struct {
	Threshold float32
	MaxAlpha  float32
	Overlap   float32
}

// newRenderer builds a Renderer from the rendering parameters.
func newRenderer(p Params) Renderer {
	return Renderer{Threshold: p.Threshold, MaxAlpha: p.MaxAlpha, Overlap: p.Overlap}
}

// Render clears dst and draws every cell whose density exceeds the
// threshold. It returns the number of rectangles emitted.
func (r Renderer) Render(dst Surface, g *Grid, density Field, vp Viewport) int {
	dst.Clear()
	n := g.n
	cw, ch := vp.CellSize(n)
	pad := 2 * r.Overlap
	drawn := 0
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			d := density[g.Index(i, j)]
			if d <= r.Threshold {
				continue
			}
			alpha := d
			if alpha > r.MaxAlpha {
				alpha = r.MaxAlpha
			}
			dst.FillRect(Rect{
				X: float32(i)*cw - r.Overlap,
				Y: float32(j)*ch - r.Overlap,
				W: cw + pad,
				H: ch + pad,
			}, alpha)
			drawn++
		}
	}
	return drawn
}
