package SPH2D

import (
	"fmt"
	"math"
	"runtime"
)

/*
	State is the full persisted particle state of a run: everything needed to
	checkpoint and to resume stepping deterministically. Particles live in
	parallel arrays indexed 0..N-1; the index identity is stable and the real
	particle count never changes during a run.

	Color tags the fluid phase (0 = light, 1 = heavy) and RhoRef is the
	phase's rest density; both are immutable per particle.
*/
type State struct {
	Pos, Vel       [][2]float64
	Mass           []float64
	Density        []float64
	Color          []int
	RhoRef         []float64
	InternalEnergy float64
}

// Copy returns a deep copy, safe to hold across steps.
func (s *State) Copy() (d *State) {
	d = &State{
		Pos:            append([][2]float64(nil), s.Pos...),
		Vel:            append([][2]float64(nil), s.Vel...),
		Mass:           append([]float64(nil), s.Mass...),
		Density:        append([]float64(nil), s.Density...),
		Color:          append([]int(nil), s.Color...),
		RhoRef:         append([]float64(nil), s.RhoRef...),
		InternalEnergy: s.InternalEnergy,
	}
	return
}

/*
	SPH is the weakly-compressible 2D SPH solver. It owns the persistent
	particle arrays and the cumulative internal (heat) energy, and wires the
	per-step phases together: ghost generation, grid build, density and
	pressure evaluation, force accumulation, leapfrog integration. All phases
	are strictly sequential; within a phase, particles are processed in
	parallel with no shared mutable state beyond each particle's output slot.
*/
type SPH struct {
	// Configuration, immutable after construction
	H, Dt, P0            float64
	Gravity              [2]float64
	DomainMin, DomainMax [2]float64
	Alpha, Beta          float64
	Phys                 PhysicsParams
	GridSize             float64 // Neighbor search cell size, fixed at 2h
	// Persistent state, mutated only by Step
	N              int
	Steps          int
	Pos, Vel       [][2]float64
	Mass           []float64
	Density        []float64
	Color          []int
	RhoRef         []float64
	Accel          [][2]float64
	InternalEnergy float64
	// Parallelism
	ParallelDegree int
	chart          ChartState
}

/*
	NewSPH validates the configuration, copies the initial (or resumed)
	particle state into solver-owned arrays and performs the initial force
	evaluation, so the first call to Step kicks with a consistent
	acceleration. Resuming from a checkpoint is the same construction with the
	snapshot's densities and internal energy carried in the state.
*/
func NewSPH(h, dt, p0 float64, gravity, domainMin, domainMax [2]float64,
	alpha, beta float64, procLimit int, phys PhysicsParams, state *State,
	verbose bool) (c *SPH, err error) {
	if err = validateConfig(h, dt, p0, domainMin, domainMax, phys, state); err != nil {
		return nil, err
	}
	s := state.Copy()
	c = &SPH{
		H:              h,
		Dt:             dt,
		P0:             p0,
		Gravity:        gravity,
		DomainMin:      domainMin,
		DomainMax:      domainMax,
		Alpha:          alpha,
		Beta:           beta,
		Phys:           phys,
		GridSize:       2. * h,
		N:              len(s.Pos),
		Pos:            s.Pos,
		Vel:            s.Vel,
		Mass:           s.Mass,
		Density:        s.Density,
		Color:          s.Color,
		RhoRef:         s.RhoRef,
		InternalEnergy: s.InternalEnergy,
	}
	c.SetParallelDegree(procLimit)
	c.initAccel()
	if verbose {
		fmt.Printf("SPH Equations in 2 Dimensions\n")
		fmt.Printf("Using %d go routines in parallel\n", c.ParallelDegree)
		fmt.Printf("Total particles: %d\n", c.N)
		fmt.Printf("H = %g, DT = %g, P0 = %g, Alpha = %g, CS = %g\n",
			h, dt, p0, alpha, phys.SoundSpeed)
	}
	return
}

func validateConfig(h, dt, p0 float64, domainMin, domainMax [2]float64,
	phys PhysicsParams, state *State) (err error) {
	switch {
	case h <= 0 || math.IsNaN(h):
		err = fmt.Errorf("smoothing length must be positive, have %g", h)
	case dt <= 0 || math.IsNaN(dt):
		err = fmt.Errorf("time step must be positive, have %g", dt)
	case p0 < 0:
		err = fmt.Errorf("reference pressure must be non-negative, have %g", p0)
	case domainMax[0] <= domainMin[0] || domainMax[1] <= domainMin[1]:
		err = fmt.Errorf("domain bounds are inverted or empty: min %v, max %v",
			domainMin, domainMax)
	case phys.EOSGamma <= 0 || phys.SoundSpeed <= 0:
		err = fmt.Errorf("invalid physics parameters: gamma %d, sound speed %g",
			phys.EOSGamma, phys.SoundSpeed)
	case state == nil || len(state.Pos) == 0:
		err = fmt.Errorf("initial state must contain at least one particle")
	}
	if err != nil {
		return
	}
	n := len(state.Pos)
	if len(state.Vel) != n || len(state.Mass) != n || len(state.Density) != n ||
		len(state.Color) != n || len(state.RhoRef) != n {
		err = fmt.Errorf("mismatched state array lengths: pos %d, vel %d, mass %d, density %d, color %d, rhoRef %d",
			n, len(state.Vel), len(state.Mass), len(state.Density),
			len(state.Color), len(state.RhoRef))
	}
	return
}

func (c *SPH) SetParallelDegree(procLimit int) {
	if procLimit != 0 {
		c.ParallelDegree = procLimit
	} else {
		c.ParallelDegree = runtime.NumCPU()
	}
	runtime.GOMAXPROCS(runtime.NumCPU())
	if c.ParallelDegree > c.N {
		c.ParallelDegree = 1
	}
}

// State returns live views of the persisted real-particle fields plus the
// internal energy scalar. Callers must treat the slices as read-only; use
// Copy to hold a snapshot across steps.
func (c *SPH) State() (s *State) {
	s = &State{
		Pos:            c.Pos,
		Vel:            c.Vel,
		Mass:           c.Mass,
		Density:        c.Density,
		Color:          c.Color,
		RhoRef:         c.RhoRef,
		InternalEnergy: c.InternalEnergy,
	}
	return
}
