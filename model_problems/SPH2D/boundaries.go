package SPH2D

/*
	GenerateGhostParticles returns the augmented particle set consumed by the
	grid build and force evaluation. Every real particle within 2h of a wall
	is mirrored across that wall plane (pos' = 2*wall - pos) with the
	wall-normal velocity component negated, which enforces a slip boundary
	condition in the neighbor sums without special-casing the force loop.

	A particle within 2h of two walls (a corner) is mirrored once per axis;
	the two ghosts are independent and there is no combined diagonal ghost.

	Ghosts are ephemeral: they are regenerated on every call and must never be
	cached across steps. When nothing is near a wall the real slices are
	returned unchanged, with no allocation.
*/
func GenerateGhostParticles(pos, vel [][2]float64, mass, density []float64,
	color []int, rhoRef []float64, h float64, domainMin, domainMax [2]float64) (
	allPos, allVel [][2]float64, allMass, allDensity []float64,
	allColor []int, allRhoRef []float64) {

	var (
		n          = len(pos)
		searchDist = 2. * h
		nGhost     int
	)
	// First pass counts ghosts so the augmented arrays are allocated exactly once
	for dim := 0; dim < 2; dim++ {
		for i := 0; i < n; i++ {
			if pos[i][dim] < domainMin[dim]+searchDist {
				nGhost++
			}
			if pos[i][dim] > domainMax[dim]-searchDist {
				nGhost++
			}
		}
	}
	if nGhost == 0 {
		return pos, vel, mass, density, color, rhoRef
	}

	allPos = append(make([][2]float64, 0, n+nGhost), pos...)
	allVel = append(make([][2]float64, 0, n+nGhost), vel...)
	allMass = append(make([]float64, 0, n+nGhost), mass...)
	allDensity = append(make([]float64, 0, n+nGhost), density...)
	allColor = append(make([]int, 0, n+nGhost), color...)
	allRhoRef = append(make([]float64, 0, n+nGhost), rhoRef...)

	addGhost := func(i, dim int, wall float64) {
		gp := pos[i]
		gp[dim] = 2.*wall - gp[dim]
		gv := vel[i]
		gv[dim] = -gv[dim]
		allPos = append(allPos, gp)
		allVel = append(allVel, gv)
		allMass = append(allMass, mass[i])
		allDensity = append(allDensity, density[i])
		allColor = append(allColor, color[i])
		allRhoRef = append(allRhoRef, rhoRef[i])
	}
	for dim := 0; dim < 2; dim++ {
		for i := 0; i < n; i++ {
			if pos[i][dim] < domainMin[dim]+searchDist {
				addGhost(i, dim, domainMin[dim])
			}
		}
		for i := 0; i < n; i++ {
			if pos[i][dim] > domainMax[dim]-searchDist {
				addGhost(i, dim, domainMax[dim])
			}
		}
	}
	return
}
