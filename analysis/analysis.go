/*
Package analysis derives run diagnostics from solver state snapshots: the
energy budget (kinetic, potential, dissipated heat), the Rayleigh-Taylor
mixing width and density statistics. It consumes only the solver's state
accessor and owns no simulation state.
*/
package analysis

import (
	"os"
	"sort"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/notargets/gosph/model_problems/SPH2D"
)

// Metrics is one sample of the run history.
type Metrics struct {
	Step        int     `csv:"step"`
	Time        float64 `csv:"time"`
	Ek          float64 `csv:"kinetic_energy"`
	Ep          float64 `csv:"potential_energy"`
	Eint        float64 `csv:"internal_energy"`
	Etot        float64 `csv:"total_energy"`
	MixingWidth float64 `csv:"mixing_width"`
}

// Energies returns the kinetic, potential and total energy of a state, with
// total including the dissipated internal energy. Potential is measured
// against a gravity of magnitude g acting in -y.
func Energies(s *SPH2D.State, g float64) (Ek, Ep, Etot float64) {
	for i, m := range s.Mass {
		v2 := s.Vel[i][0]*s.Vel[i][0] + s.Vel[i][1]*s.Vel[i][1]
		Ek += 0.5 * m * v2
		Ep += m * g * s.Pos[i][1]
	}
	Etot = Ek + Ep + s.InternalEnergy
	return
}

// MixingWidth measures how far the two phases have interpenetrated: the
// height of the 99th percentile of the light phase (bubble front) minus the
// 1st percentile of the heavy phase (spike front). Zero if either phase is
// absent.
func MixingWidth(s *SPH2D.State) (width float64) {
	var light, heavy []float64
	for i, col := range s.Color {
		if col == 0 {
			light = append(light, s.Pos[i][1])
		} else {
			heavy = append(heavy, s.Pos[i][1])
		}
	}
	if len(light) == 0 || len(heavy) == 0 {
		return
	}
	sort.Float64s(light)
	sort.Float64s(heavy)
	hBubble := stat.Quantile(0.99, stat.Empirical, light, nil)
	hSpike := stat.Quantile(0.01, stat.Empirical, heavy, nil)
	width = hBubble - hSpike
	return
}

// DensityStats summarizes the density field for divergence monitoring.
func DensityStats(density []float64) (min, max, mean float64) {
	if len(density) == 0 {
		return
	}
	min, max = floats.Min(density), floats.Max(density)
	mean = stat.Mean(density, nil)
	return
}

func Sample(step int, t float64, s *SPH2D.State, g float64) (m Metrics) {
	m = Metrics{Step: step, Time: t, MixingWidth: MixingWidth(s)}
	m.Ek, m.Ep, m.Etot = Energies(s, g)
	m.Eint = s.InternalEnergy
	return
}

// History accumulates Metrics over a run and can be exported as CSV.
type History struct {
	Samples []Metrics
}

// Append adds a sample unless the step was already recorded, so resumed runs
// do not duplicate rows.
func (h *History) Append(m Metrics) {
	if n := len(h.Samples); n > 0 && h.Samples[n-1].Step == m.Step {
		return
	}
	h.Samples = append(h.Samples, m)
}

func (h *History) Write(path string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return
	}
	defer file.Close()
	return gocsv.MarshalFile(&h.Samples, file)
}
