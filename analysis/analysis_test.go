package analysis

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gosph/model_problems/SPH2D"
)

func TestEnergies(t *testing.T) {
	s := &SPH2D.State{
		Pos:  [][2]float64{{0, 2}, {0, 1}},
		Vel:  [][2]float64{{3, 4}, {0, 0}},
		Mass: []float64{2, 1},
	}
	s.InternalEnergy = 0.5
	Ek, Ep, Etot := Energies(s, 10)
	assert.Equal(t, 25., Ek)  // 0.5*2*(9+16)
	assert.Equal(t, 50., Ep)  // 2*10*2 + 1*10*1
	assert.Equal(t, 75.5, Etot)
}

func TestMixingWidth(t *testing.T) {
	{ // Fully separated phases with an overlap band
		var s SPH2D.State
		// Ten light particles at y=0.2, ten heavy at y=0.1: the bubble front
		// sits above the spike front by 0.1
		for i := 0; i < 10; i++ {
			s.Pos = append(s.Pos, [2]float64{0, 0.2})
			s.Color = append(s.Color, 0)
		}
		for i := 0; i < 10; i++ {
			s.Pos = append(s.Pos, [2]float64{0, 0.1})
			s.Color = append(s.Color, 1)
		}
		assert.Equal(t, 0.1, MixingWidth(&s))
	}
	{ // A single phase has no mixing width
		s := &SPH2D.State{
			Pos:   [][2]float64{{0, 1}, {0, 2}},
			Color: []int{0, 0},
		}
		assert.Equal(t, 0., MixingWidth(s))
	}
}

func TestDensityStats(t *testing.T) {
	min, max, mean := DensityStats([]float64{1000, 3000, 2000})
	assert.Equal(t, 1000., min)
	assert.Equal(t, 3000., max)
	assert.Equal(t, 2000., mean)

	min, max, mean = DensityStats(nil)
	assert.Equal(t, 0., min)
	assert.Equal(t, 0., max)
	assert.Equal(t, 0., mean)
}

func TestHistoryAppendDedupes(t *testing.T) {
	var h History
	h.Append(Metrics{Step: 0})
	h.Append(Metrics{Step: 300})
	h.Append(Metrics{Step: 300}) // Re-sampled after a resume
	h.Append(Metrics{Step: 600})
	require.Equal(t, 3, len(h.Samples))
	assert.Equal(t, 600, h.Samples[2].Step)
}

func TestHistoryWrite(t *testing.T) {
	var h History
	h.Append(Metrics{Step: 0, Time: 0, Ek: 1, Ep: 2, Eint: 0, Etot: 3, MixingWidth: 0.01})
	h.Append(Metrics{Step: 300, Time: 0.0012, Ek: 1.5, Ep: 1.5, Eint: 0.1, Etot: 3.1, MixingWidth: 0.02})

	path := filepath.Join(t.TempDir(), "history.csv")
	require.NoError(t, h.Write(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Equal(t, 3, len(lines)) // Header plus two samples
	assert.Contains(t, lines[0], "mixing_width")
	assert.Contains(t, lines[1], "0.01")
}
