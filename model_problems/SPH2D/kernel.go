package SPH2D

import "math"

// KernelPrefactor2D is the normalization of the 2D cubic B-spline,
// sigma = KernelPrefactor2D / h^2
const KernelPrefactor2D = 10. / (7. * math.Pi)

// Below this separation the unit direction is undefined and the gradient is zero
const minGradSeparation = 1.e-12

/*
	CubicSplineKernel evaluates W(r,h), the compact-support interpolation
	weight between two particles separated by distance r:
		q = r/h
		q < 1:      sigma * (1 - 1.5 q^2 + 0.75 q^3)
		1 <= q < 2: sigma * 0.25 (2-q)^3
		q >= 2:     0
	The trajectory of the whole simulation is sensitive to this function, so
	the branch structure must not be reordered or algebraically "simplified".
*/
func CubicSplineKernel(r, h float64) (w float64) {
	var (
		q     = r / h
		sigma = KernelPrefactor2D / (h * h)
	)
	switch {
	case q < 1:
		w = sigma * (1. - 1.5*q*q + 0.75*q*q*q)
	case q < 2:
		w = sigma * 0.25 * (2. - q) * (2. - q) * (2. - q)
	}
	return
}

// CubicSplineKernelGrad evaluates the analytic gradient of W along the
// separation vector rVec (pointing from particle j to i). Coincident
// particles produce a zero gradient rather than a divide by zero.
func CubicSplineKernelGrad(rVec [2]float64, h float64) (gradW [2]float64) {
	var (
		r     = math.Sqrt(rVec[0]*rVec[0] + rVec[1]*rVec[1])
		q     = r / h
		sigma = KernelPrefactor2D / (h * h)
		val   float64
	)
	if r <= minGradSeparation {
		return
	}
	switch {
	case q < 1:
		val = sigma * (1. / h) * (-3.*q + 2.25*q*q)
	case q < 2:
		val = sigma * (1. / h) * (-0.75 * (2. - q) * (2. - q))
	default:
		return
	}
	gradW[0] = val * rVec[0] / r
	gradW[1] = val * rVec[1] / r
	return
}
