package fluid

// applyPointer injects dye and momentum at the cell under the sample.
func (s *Session) applyPointer(sample PointerSample) {
	n := s.grid.n
	x, y := s.viewport.cellAt(sample.X, sample.Y, n)
	s.grid.inject(x, y, s.params.DyeAmount, s.params.ForceScale*sample.DX, s.params.ForceScale*sample.DY)
}

// inject adds dye and velocity at a cell; out-of-range cells saturate.
func (g *Grid) inject(x, y int, dye, du, dv float32) {
	idx := g.Index(x, y)
	g.density[idx] += dye
	g.u[idx] += du
	g.v[idx] += dv
}
