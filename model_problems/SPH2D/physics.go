package SPH2D

import (
	"math"
	"sync"

	"github.com/notargets/gosph/utils"
)

const (
	// GridSearchRadius is the number of cells searched in each direction
	// around a particle's cell (Moore neighborhood of rank 1)
	GridSearchRadius = 1
	// KernelCutoffSqFactor converts h^2 to the squared support radius, (2h)^2
	KernelCutoffSqFactor = 4.
)

// PhysicsParams collects the numerical constants of the scheme. The set is
// immutable for the lifetime of a solver; start from DefaultPhysicsParams and
// override fields before construction.
type PhysicsParams struct {
	EOSGamma         int     // Exponent in the Tait equation of state, 7 for water-like fluids
	SoundSpeed       float64 // Reference sound speed, must exceed ~10x the expected max fluid velocity
	MinDensity       float64 // Densities below this are treated as vacuum and skipped
	ViscosityEpsilon float64 // Softening factor in the viscosity denominator
	MinDistSq        float64 // Pairs closer than sqrt of this are skipped in the force loop
}

func DefaultPhysicsParams() PhysicsParams {
	return PhysicsParams{
		EOSGamma:         7,
		SoundSpeed:       30.,
		MinDensity:       0.1,
		ViscosityEpsilon: 0.01,
		MinDistSq:        1.e-18,
	}
}

/*
	computeDensity evaluates rho_i = sum_j m_j W(r_ij, h) for every particle
	in the augmented set, including the self contribution and the ghosts.
	Only the 3x3 block of grid cells around each particle is visited.

	Each output slot is written by exactly one goroutine; neighbor data is
	read-only, so the partitioned loop needs no locking. Within a particle the
	neighbor visitation order is fixed by the grid sort, which keeps the
	floating point sum deterministic run to run.
*/
func (c *SPH) computeDensity(allPos [][2]float64, allMass []float64, g *Grid) (densities []float64) {
	var (
		n  = len(allPos)
		h2 = c.H * c.H
		pm = utils.NewPartitionMap(c.ParallelDegree, n)
		wg = sync.WaitGroup{}
	)
	densities = make([]float64, n)
	for np := 0; np < pm.ParallelDegree; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			iMin, iMax := pm.GetBucketRange(np)
			for i := iMin; i < iMax; i++ {
				densities[i] = c.densityAt(i, allPos, allMass, g, h2)
			}
		}(np)
	}
	wg.Wait()
	return
}

func (c *SPH) densityAt(i int, allPos [][2]float64, allMass []float64, g *Grid, h2 float64) (rho float64) {
	ix, iy := g.CellCoords(allPos[i])
	for dx := -GridSearchRadius; dx <= GridSearchRadius; dx++ {
		for dy := -GridSearchRadius; dy <= GridSearchRadius; dy++ {
			nx, ny := ix+dx, iy+dy
			if nx < 0 || nx >= g.NCellsX || ny < 0 || ny >= g.NCellsY {
				continue
			}
			cell := nx + ny*g.NCellsX
			for jPtr := g.CellOffsets[cell]; jPtr < g.CellOffsets[cell+1]; jPtr++ {
				j := g.SortedIndices[jPtr]
				dxv := allPos[i][0] - allPos[j][0]
				dyv := allPos[i][1] - allPos[j][1]
				r2 := dxv*dxv + dyv*dyv
				if r2 < KernelCutoffSqFactor*h2 {
					rho += allMass[j] * CubicSplineKernel(math.Sqrt(r2), c.H)
				}
			}
		}
	}
	return
}

// computePressure applies the Tait equation of state,
// P_i = P0 * ((rho_i/rhoRef_i)^gamma - 1), to the full augmented set - ghosts
// act as neighbors in the force loop and need pressures too.
func (c *SPH) computePressure(densities, rhoRefs []float64) (pressures []float64) {
	pressures = make([]float64, len(densities))
	for i, rho := range densities {
		pressures[i] = c.P0 * (utils.POW(rho/rhoRefs[i], c.Phys.EOSGamma) - 1.)
	}
	return
}

/*
	computeForces evaluates the acceleration of the first nActive (real)
	particles from the pressure gradient, Monaghan artificial viscosity and
	external gravity, plus the per-particle power dissipated by viscosity.
	Ghosts contribute as neighbors but receive no forces themselves.
*/
func (c *SPH) computeForces(allPos, allVel [][2]float64, densities, pressures, allMass []float64,
	g *Grid, nActive int) (accel [][2]float64, viscPower []float64) {
	var (
		h2 = c.H * c.H
		pm = utils.NewPartitionMap(c.ParallelDegree, nActive)
		wg = sync.WaitGroup{}
	)
	accel = make([][2]float64, nActive)
	viscPower = make([]float64, nActive)
	for np := 0; np < pm.ParallelDegree; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			iMin, iMax := pm.GetBucketRange(np)
			for i := iMin; i < iMax; i++ {
				accel[i], viscPower[i] = c.forceAt(i, allPos, allVel, densities, pressures, allMass, g, h2)
			}
		}(np)
	}
	wg.Wait()
	return
}

func (c *SPH) forceAt(i int, allPos, allVel [][2]float64, densities, pressures, allMass []float64,
	g *Grid, h2 float64) (acc [2]float64, power float64) {
	var (
		phys         = c.Phys
		viscX, viscY float64
	)
	acc = c.Gravity
	// A vacuum/invalid particle neither receives nor exerts pressure or
	// viscosity this step; gravity still applies
	if math.IsNaN(densities[i]) || densities[i] < phys.MinDensity {
		return
	}
	ix, iy := g.CellCoords(allPos[i])
	for dx := -GridSearchRadius; dx <= GridSearchRadius; dx++ {
		for dy := -GridSearchRadius; dy <= GridSearchRadius; dy++ {
			nx, ny := ix+dx, iy+dy
			if nx < 0 || nx >= g.NCellsX || ny < 0 || ny >= g.NCellsY {
				continue
			}
			cell := nx + ny*g.NCellsX
			for jPtr := g.CellOffsets[cell]; jPtr < g.CellOffsets[cell+1]; jPtr++ {
				j := g.SortedIndices[jPtr]
				if j == i {
					continue
				}
				if math.IsNaN(densities[j]) || densities[j] < phys.MinDensity {
					continue
				}
				dxv := allPos[i][0] - allPos[j][0]
				dyv := allPos[i][1] - allPos[j][1]
				r2 := dxv*dxv + dyv*dyv
				if r2 >= KernelCutoffSqFactor*h2 || r2 <= phys.MinDistSq {
					continue
				}
				gradW := CubicSplineKernelGrad([2]float64{dxv, dyv}, c.H)

				// Symmetric, momentum-conserving pressure gradient:
				// F_p = -m_j (P_i/rho_i^2 + P_j/rho_j^2) grad W
				pTerm := pressures[i]/(densities[i]*densities[i]) +
					pressures[j]/(densities[j]*densities[j])
				acc[0] -= allMass[j] * pTerm * gradW[0]
				acc[1] -= allMass[j] * pTerm * gradW[1]

				// Monaghan artificial viscosity, applied only to approaching pairs
				dvx := allVel[i][0] - allVel[j][0]
				dvy := allVel[i][1] - allVel[j][1]
				vDotR := dvx*dxv + dvy*dyv
				if vDotR < 0 {
					mu := c.H * vDotR / (r2 + phys.ViscosityEpsilon*h2)
					rhoBar := 0.5 * (densities[i] + densities[j])
					phi := (-c.Alpha*phys.SoundSpeed*mu + c.Beta*mu*mu) / rhoBar
					fvx := -allMass[j] * phi * gradW[0]
					fvy := -allMass[j] * phi * gradW[1]
					acc[0] += fvx
					acc[1] += fvy
					viscX += fvx
					viscY += fvy
				}
			}
		}
	}
	// Viscosity acts as friction, so F_visc . v is generally negative.
	// The dissipated power is the positive amount converted to heat:
	// P_visc = -m_i (a_visc . v_i), integrated over dt by the caller.
	power = -allMass[i] * (viscX*allVel[i][0] + viscY*allVel[i][1])
	return
}
