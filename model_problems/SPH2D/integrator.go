package SPH2D

import (
	"gonum.org/v1/gonum/floats"
)

/*
	computeAccel runs one full force evaluation at the given configuration:
	ghosts -> grid -> density -> pressure -> forces. The persisted
	real-particle densities are refreshed as a side effect; the ghost copies
	carry the prior densities only until the summation replaces them.
*/
func (c *SPH) computeAccel(pos, vel [][2]float64) (accel [][2]float64, viscPower []float64) {
	allPos, allVel, allMass, _, _, allRhoRef := GenerateGhostParticles(
		pos, vel, c.Mass, c.Density, c.Color, c.RhoRef, c.H, c.DomainMin, c.DomainMax)
	g := BuildGrid(allPos, c.DomainMin, c.DomainMax, c.GridSize)
	densities := c.computeDensity(allPos, allMass, g)
	copy(c.Density, densities[:c.N])
	pressures := c.computePressure(densities, allRhoRef)
	accel, viscPower = c.computeForces(allPos, allVel, densities, pressures, allMass, g, c.N)
	return
}

// initAccel is the construction-time "first step": a single force evaluation
// at the initial configuration so the very first kick uses a consistent
// acceleration. No state is advanced and no dissipation is accumulated.
func (c *SPH) initAccel() {
	c.Accel, _ = c.computeAccel(c.Pos, c.Vel)
}

/*
	Step advances the solution exactly one time step with the symplectic
	Kick-Drift-Kick leapfrog:
		1. v_half = v + a dt/2
		2. pos += v_half dt
		3. hard-wall reflection of escaped particles
		4. a_new from the new configuration
		5. v = v_half + a_new dt/2
	Stability requires dt small relative to h / SoundSpeed; the caller owns
	that choice and dt stays fixed for the whole run.
*/
func (c *SPH) Step() {
	var (
		dt = c.Dt
		n  = c.N
	)
	vHalf := make([][2]float64, n)
	for i := 0; i < n; i++ {
		vHalf[i][0] = c.Vel[i][0] + 0.5*dt*c.Accel[i][0]
		vHalf[i][1] = c.Vel[i][1] + 0.5*dt*c.Accel[i][1]
		c.Pos[i][0] += vHalf[i][0] * dt
		c.Pos[i][1] += vHalf[i][1] * dt
	}
	c.reflectWalls(vHalf)

	accelNew, viscPower := c.computeAccel(c.Pos, vHalf)

	// Viscous dissipation leaves the mechanical system and enters the heat
	// reservoir: Energy += sum(Power) * dt, monotone non-decreasing
	c.InternalEnergy += floats.Sum(viscPower) * dt

	for i := 0; i < n; i++ {
		c.Vel[i][0] = vHalf[i][0] + 0.5*dt*accelNew[i][0]
		c.Vel[i][1] = vHalf[i][1] + 0.5*dt*accelNew[i][1]
	}
	c.Accel = accelNew
	c.Steps++
}

// reflectWalls mirrors escaped coordinates back inside the domain and damps
// the wall-normal half-step velocity by -0.5. The damping factor is a
// deliberate energy sink at hard walls, distinct from the slip condition the
// ghost particles enforce in the force sums; treat it as tunable policy
// rather than boundary physics.
func (c *SPH) reflectWalls(vHalf [][2]float64) {
	for i := 0; i < c.N; i++ {
		for dim := 0; dim < 2; dim++ {
			if c.Pos[i][dim] < c.DomainMin[dim] {
				c.Pos[i][dim] = 2.*c.DomainMin[dim] - c.Pos[i][dim]
				vHalf[i][dim] *= -0.5
			} else if c.Pos[i][dim] > c.DomainMax[dim] {
				c.Pos[i][dim] = 2.*c.DomainMax[dim] - c.Pos[i][dim]
				vHalf[i][dim] *= -0.5
			}
		}
	}
}
