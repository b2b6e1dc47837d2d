package SPH2D

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKernel(t *testing.T) {
	var (
		h = 0.5
	)
	{ // Compact support: W and grad W vanish at and beyond 2h
		for _, r := range []float64{2 * h, 2.5 * h, 10 * h, 100 * h} {
			assert.Equal(t, 0., CubicSplineKernel(r, h))
			grad := CubicSplineKernelGrad([2]float64{r, 0}, h)
			assert.Equal(t, [2]float64{0, 0}, grad)
		}
	}
	{ // Non-negativity over the whole support
		for r := 0.; r < 2.5*h; r += 0.001 * h {
			assert.True(t, CubicSplineKernel(r, h) >= 0)
		}
	}
	{ // Value and first derivative continuous across the branch boundaries q=1, q=2
		eps := 1.e-9
		for _, q := range []float64{1, 2} {
			r := q * h
			wLo := CubicSplineKernel(r-eps, h)
			wHi := CubicSplineKernel(r+eps, h)
			assert.True(t, near(wLo, wHi, 1.e-6), "W discontinuous at q=%v: %v vs %v", q, wLo, wHi)
			gLo := CubicSplineKernelGrad([2]float64{r - eps, 0}, h)
			gHi := CubicSplineKernelGrad([2]float64{r + eps, 0}, h)
			assert.True(t, near(gLo[0], gHi[0], 1.e-5), "dW discontinuous at q=%v: %v vs %v", q, gLo[0], gHi[0])
		}
	}
	{ // Gradient is zero for coincident particles, no NaN from the unit direction
		grad := CubicSplineKernelGrad([2]float64{0, 0}, h)
		assert.Equal(t, [2]float64{0, 0}, grad)
		grad = CubicSplineKernelGrad([2]float64{1.e-14, 1.e-14}, h)
		assert.Equal(t, [2]float64{0, 0}, grad)
	}
	{ // Gradient points along the separation vector, away from the neighbor
		grad := CubicSplineKernelGrad([2]float64{0.3 * h, 0}, h)
		assert.True(t, grad[0] < 0) // dW/dq < 0 inside the support
		assert.Equal(t, 0., grad[1])
		// Antisymmetry under swapping i and j
		gradRev := CubicSplineKernelGrad([2]float64{-0.3 * h, 0}, h)
		assert.Equal(t, -grad[0], gradRev[0])
	}
}

func TestKernelLatticeConsistency(t *testing.T) {
	// Summing m*W over a uniform lattice of spacing d must reproduce the rest
	// density m/d^2 at an interior point to within a bounded tolerance
	var (
		d      = 0.1
		h      = 1.3 * d
		rhoRef = 1000.
		m      = rhoRef * d * d
	)
	var rho float64
	// 21x21 lattice centered on the query point covers the 2h support easily
	for i := -10; i <= 10; i++ {
		for j := -10; j <= 10; j++ {
			r := d * math.Sqrt(float64(i*i+j*j))
			rho += m * CubicSplineKernel(r, h)
		}
	}
	assert.True(t, near(rhoRef, rho, 0.05), "lattice density %v vs reference %v", rho, rhoRef)
}

func nearVec(a, b []float64, tol float64) (l bool) {
	for i, val := range a {
		if !near(b[i], val, tol) {
			fmt.Printf("Diff = %v, Left[%d] = %v, Right[%d] = %v\n", math.Abs(val-b[i]), i, val, i, b[i])
			return false
		}
	}
	return true
}

func near(a, b float64, tolI ...float64) (l bool) {
	var (
		tol float64
	)
	if len(tolI) == 0 {
		tol = 1.e-08
	} else {
		tol = tolI[0]
	}
	bound := math.Max(tol, tol*math.Abs(a))
	if math.Abs(a-b) <= bound {
		l = true
	}
	return
}
