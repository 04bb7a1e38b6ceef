package fluid

// enforceBoundary mirrors the interior ring onto the domain edges. Velocity
// components normal to a wall are negated so flow reflects off it; every
// other value is copied. Corners take the mean of their two edge neighbours.
func (g *Grid) enforceBoundary(kind Kind, f Field) {
	n := g.n
	last := n - 1
	for i := 1; i < last; i++ {
		left := f[g.Index(1, i)]
		right := f[g.Index(last-1, i)]
		if kind == XVelocity {
			left, right = -left, -right
		}
		f[g.Index(0, i)] = left
		f[g.Index(last, i)] = right

		top := f[g.Index(i, 1)]
		bottom := f[g.Index(i, last-1)]
		if kind == YVelocity {
			top, bottom = -top, -bottom
		}
		f[g.Index(i, 0)] = top
		f[g.Index(i, last)] = bottom
	}
	f[g.Index(0, 0)] = 0.5 * (f[g.Index(1, 0)] + f[g.Index(0, 1)])
	f[g.Index(0, last)] = 0.5 * (f[g.Index(1, last)] + f[g.Index(0, last-1)])
	f[g.Index(last, 0)] = 0.5 * (f[g.Index(last-1, 0)] + f[g.Index(last, 1)])
	f[g.Index(last, last)] = 0.5 * (f[g.Index(last-1, last)] + f[g.Index(last, last-1)])
}
