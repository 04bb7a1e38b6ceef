package fluid

// step advances the velocity and density fields by one timestep.
func (g *Grid) step(p Params) {
	dt := p.Dt
	iters := p.Iterations

	g.diffuse(XVelocity, g.uPrev, g.u, p.Viscosity, dt, iters)
	g.diffuse(YVelocity, g.vPrev, g.v, p.Viscosity, dt, iters)
	// u and v are free until the advection below overwrites them.
	g.project(g.uPrev, g.vPrev, g.u, g.v, iters)

	g.advect(XVelocity, g.u, g.uPrev, g.uPrev, g.vPrev, dt)
	g.advect(YVelocity, g.v, g.vPrev, g.uPrev, g.vPrev, dt)
	g.project(g.u, g.v, g.uPrev, g.vPrev, iters)

	g.diffuse(Scalar, g.densPrev, g.density, p.Diffusion, dt, iters)
	g.advect(Scalar, g.density, g.densPrev, g.u, g.v, dt)

	g.decay(p.DensityDissipation, p.VelocityDissipation)
}

// decay applies the per-step dissipation to density and velocity.
func (g *Grid) decay(density, velocity float32) {
	for i := range g.density {
		g.density[i] *= density
		g.u[i] *= velocity
		g.v[i] *= velocity
	}
}
