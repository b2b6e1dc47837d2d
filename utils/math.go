package utils

import (
	"math"
)

func ConstArray(N int, val float64) (v []float64) {
	v = make([]float64, N)
	for i := range v {
		v[i] = val
	}
	return
}

// POW raises x to a small integer power without the transcendental cost of
// math.Pow. Exponents outside [-16,16] fall back to math.Pow.
func POW(x float64, pp int) (y float64) {
	var (
		p       = pp
		flipped bool
	)
	if pp > 16 || pp < -16 {
		return math.Pow(x, float64(pp))
	}
	if p < 0 {
		p = -pp
		flipped = true
	}
	y = 1
	b := x
	for p != 0 {
		if p&1 == 1 {
			y *= b
		}
		b *= b
		p >>= 1
	}
	if flipped {
		y = 1. / y
	}
	return
}
