package fluid

import "math"

// stencil holds the bilinear sample footprint for one traced-back position.
type stencil struct {
	i0, i1, j0, j1 int
	s0, s1, t0, t1 float32
}

// sampleStencil clamps a traced-back position to [0.5, n-1.5] and returns
// the four surrounding cells and their weights. The indices always lie
// within [0, n-1].
func sampleStencil(x, y float32, n int) stencil {
	hi := float32(n) - 1.5
	if x < 0.5 {
		x = 0.5
	}
	if x > hi {
		x = hi
	}
	if y < 0.5 {
		y = 0.5
	}
	if y > hi {
		y = hi
	}
	i0 := int(math.Floor(float64(x)))
	j0 := int(math.Floor(float64(y)))
	s1 := x - float32(i0)
	t1 := y - float32(j0)
	return stencil{
		i0: i0, i1: i0 + 1,
		j0: j0, j1: j0 + 1,
		s0: 1 - s1, s1: s1,
		t0: 1 - t1, t1: t1,
	}
}

// advect transports src into dst by tracing each interior cell backwards
// along (u, v) and sampling src bilinearly.
func (g *Grid) advect(kind Kind, dst, src, u, v Field, dt float32) {
	n := g.n
	dt0 := dt * float32(n-2)
	for j := 1; j < n-1; j++ {
		for i := 1; i < n-1; i++ {
			idx := g.Index(i, j)
			x := float32(i) - dt0*u[idx]
			y := float32(j) - dt0*v[idx]
			st := sampleStencil(x, y, n)
			dst[idx] = st.s0*(st.t0*src[g.Index(st.i0, st.j0)]+st.t1*src[g.Index(st.i0, st.j1)]) +
				st.s1*(st.t0*src[g.Index(st.i1, st.j0)]+st.t1*src[g.Index(st.i1, st.j1)])
		}
	}
	g.enforceBoundary(kind, dst)
}
