package fluid

// relax runs Gauss-Seidel sweeps over the interior for
// x = (x0 + a*(sum of the four neighbours of x)) / c, enforcing the boundary
// for kind after each sweep. c must be non-zero.
func (g *Grid) relax(kind Kind, x, x0 Field, a, c float32, iterations int) {
	n := g.n
	cRecip := 1 / c
	for k := 0; k < iterations; k++ {
		for j := 1; j < n-1; j++ {
			for i := 1; i < n-1; i++ {
				sum := x[g.Index(i+1, j)] + x[g.Index(i-1, j)] +
					x[g.Index(i, j+1)] + x[g.Index(i, j-1)]
				x[g.Index(i, j)] = (x0[g.Index(i, j)] + a*sum) * cRecip
			}
		}
		g.enforceBoundary(kind, x)
	}
}
