package fluid

// project removes the divergent part of (u, v). p and div are scratch
// buffers; their previous contents are discarded.
func (g *Grid) project(u, v, p, div Field, iterations int) {
	n := g.n
	scale := float32(n)
	for j := 1; j < n-1; j++ {
		for i := 1; i < n-1; i++ {
			idx := g.Index(i, j)
			div[idx] = -0.5 * (u[g.Index(i+1, j)] - u[g.Index(i-1, j)] +
				v[g.Index(i, j+1)] - v[g.Index(i, j-1)]) / scale
			p[idx] = 0
		}
	}
	g.enforceBoundary(Scalar, div)
	g.enforceBoundary(Scalar, p)
	g.relax(Scalar, p, div, 1, 4, iterations)

	for j := 1; j < n-1; j++ {
		for i := 1; i < n-1; i++ {
			idx := g.Index(i, j)
			u[idx] -= 0.5 * (p[g.Index(i+1, j)] - p[g.Index(i-1, j)]) * scale
			v[idx] -= 0.5 * (p[g.Index(i, j+1)] - p[g.Index(i, j-1)]) * scale
		}
	}
	g.enforceBoundary(XVelocity, u)
	g.enforceBoundary(YVelocity, v)
}

// meanDivergence returns the mean absolute divergence over interior cells,
// measured with the same stencil project uses.
func (g *Grid) meanDivergence(u, v Field) float64 {
	n := g.n
	if n < 3 {
		return 0
	}
	scale := float64(n)
	var sum float64
	for j := 1; j < n-1; j++ {
		for i := 1; i < n-1; i++ {
			d := -0.5 * float64(u[g.Index(i+1, j)]-u[g.Index(i-1, j)]+
				v[g.Index(i, j+1)]-v[g.Index(i, j-1)]) / scale
			if d < 0 {
				d = -d
			}
			sum += d
		}
	}
	inner := float64((n - 2) * (n - 2))
	return sum / inner
}
