package fluid

// diffuse integrates implicit diffusion of src into dst. A zero rate reduces
// to copying the interior of src.
func (g *Grid) diffuse(kind Kind, dst, src Field, rate, dt float32, iterations int) {
	inner := float32(g.n - 2)
	a := dt * rate * inner * inner
	g.relax(kind, dst, src, a, 1+4*a, iterations)
}
