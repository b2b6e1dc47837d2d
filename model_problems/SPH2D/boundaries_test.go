package SPH2D

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGhostMirrorSymmetry(t *testing.T) {
	var (
		h                    = 0.1
		domainMin, domainMax = [2]float64{0, 0}, [2]float64{10, 10}
		d                    = 0.05 // Distance to the x-lo wall, inside the 2h band
	)
	pos := [][2]float64{{d, 5}}
	vel := [][2]float64{{1.5, 2.5}}
	mass := []float64{2.}
	density := []float64{1000.}
	color := []int{1}
	rhoRef := []float64{1000.}

	allPos, allVel, allMass, allDensity, allColor, allRhoRef := GenerateGhostParticles(
		pos, vel, mass, density, color, rhoRef, h, domainMin, domainMax)

	require.Equal(t, 2, len(allPos)) // One real + one ghost
	ghostPos, ghostVel := allPos[1], allVel[1]
	// Mirrored to the same distance on the other side of the wall
	assert.Equal(t, -d, ghostPos[0])
	assert.Equal(t, 5., ghostPos[1])
	// Wall-normal velocity negated, tangential unchanged
	assert.Equal(t, -1.5, ghostVel[0])
	assert.Equal(t, 2.5, ghostVel[1])
	// Scalar fields copied by value
	assert.Equal(t, 2., allMass[1])
	assert.Equal(t, 1000., allDensity[1])
	assert.Equal(t, 1, allColor[1])
	assert.Equal(t, 1000., allRhoRef[1])
	// The real particle is untouched
	assert.Equal(t, [2]float64{d, 5}, allPos[0])
	assert.Equal(t, [2]float64{1.5, 2.5}, allVel[0])
}

func TestGhostAllFourWalls(t *testing.T) {
	var (
		h                    = 0.1
		domainMin, domainMax = [2]float64{0, 0}, [2]float64{10, 10}
	)
	pos := [][2]float64{{0.05, 5}, {9.95, 5}, {5, 0.05}, {5, 9.95}}
	vel := make([][2]float64, 4)
	ones := []float64{1, 1, 1, 1}
	color := []int{0, 0, 0, 0}

	allPos, _, _, _, _, _ := GenerateGhostParticles(
		pos, vel, ones, ones, color, ones, h, domainMin, domainMax)

	require.Equal(t, 8, len(allPos))
	// Ghosts appended wall by wall: x-lo, x-hi, y-lo, y-hi
	assert.Equal(t, [2]float64{-0.05, 5}, allPos[4])
	assert.Equal(t, [2]float64{10.05, 5}, allPos[5])
	assert.Equal(t, [2]float64{5, -0.05}, allPos[6])
	assert.Equal(t, [2]float64{5, 10.05}, allPos[7])
}

func TestGhostCornerIsPerAxis(t *testing.T) {
	// A corner particle mirrors once per axis - two ghosts, never a single
	// diagonally reflected one
	var (
		h                    = 0.1
		domainMin, domainMax = [2]float64{0, 0}, [2]float64{10, 10}
	)
	pos := [][2]float64{{0.05, 0.08}}
	vel := [][2]float64{{1, 2}}
	ones := []float64{1}
	color := []int{0}

	allPos, allVel, _, _, _, _ := GenerateGhostParticles(
		pos, vel, ones, ones, color, ones, h, domainMin, domainMax)

	require.Equal(t, 3, len(allPos))
	// x mirror first (dim 0 pass), then y mirror
	assert.Equal(t, [2]float64{-0.05, 0.08}, allPos[1])
	assert.Equal(t, [2]float64{-1, 2}, allVel[1])
	assert.Equal(t, [2]float64{0.05, -0.08}, allPos[2])
	assert.Equal(t, [2]float64{1, -2}, allVel[2])
}

func TestNoGhostsReturnsInputUnchanged(t *testing.T) {
	var (
		h                    = 0.1
		domainMin, domainMax = [2]float64{0, 0}, [2]float64{10, 10}
	)
	pos := [][2]float64{{5, 5}, {4, 6}}
	vel := make([][2]float64, 2)
	ones := []float64{1, 1}
	color := []int{0, 1}

	allPos, allVel, allMass, _, allColor, _ := GenerateGhostParticles(
		pos, vel, ones, ones, color, ones, h, domainMin, domainMax)

	// No allocation of an empty ghost block: the very same slices come back
	assert.Same(t, &pos[0], &allPos[0])
	assert.Same(t, &vel[0], &allVel[0])
	assert.Same(t, &ones[0], &allMass[0])
	assert.Same(t, &color[0], &allColor[0])
}
