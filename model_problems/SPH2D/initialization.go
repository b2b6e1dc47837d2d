package SPH2D

import "math"

// RTIParams configures the Rayleigh-Taylor initial condition: a hexagonally
// packed lattice with the heavy phase above InterfaceLevel.
type RTIParams struct {
	DomainWidth, DomainHeight  float64
	ParticleSpacing            float64
	DensityLight, DensityHeavy float64
	InterfaceLevel             float64
}

// DefaultRTIParams places the interface a third of the way down a 2:1 box,
// heavy fluid (3x density contrast) on top.
func DefaultRTIParams() RTIParams {
	return RTIParams{
		DomainWidth:     0.1,
		DomainHeight:    0.05,
		ParticleSpacing: 0.00028,
		DensityLight:    1000.,
		DensityHeavy:    3000.,
		InterfaceLevel:  0.0333333333,
	}
}

func (rp RTIParams) DomainBounds() (domainMin, domainMax [2]float64) {
	domainMax = [2]float64{rp.DomainWidth, rp.DomainHeight}
	return
}

/*
	SetupRayleighTaylor seeds the initial particle configuration: a hexagonal
	lattice (odd rows offset half a spacing, row pitch dx*sqrt(3)/2), particle
	masses from the phase density times the lattice cell area, initial and
	reference densities equal to the phase rest density, zero velocities.
*/
func SetupRayleighTaylor(rp RTIParams) (state *State) {
	var (
		dx = rp.ParticleSpacing
		dy = dx * math.Sqrt(3) / 2 // Hexagonal packing vertical pitch
		nx = int(rp.DomainWidth / dx)
		ny = int(rp.DomainHeight / dy)
	)
	state = &State{}
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			px := float64(i) * dx
			if j%2 == 1 {
				px += 0.5 * dx
			}
			py := float64(j) * dy
			if px >= rp.DomainWidth || py >= rp.DomainHeight {
				continue
			}
			state.Pos = append(state.Pos, [2]float64{px, py})
		}
	}
	area := dx * dy
	for _, p := range state.Pos {
		color, rho := 0, rp.DensityLight
		if p[1] > rp.InterfaceLevel {
			color, rho = 1, rp.DensityHeavy
		}
		state.Color = append(state.Color, color)
		state.Mass = append(state.Mass, rho*area)
		state.Density = append(state.Density, rho)
		state.RhoRef = append(state.RhoRef, rho)
	}
	state.Vel = make([][2]float64, len(state.Pos))
	return
}
