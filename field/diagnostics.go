package field

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// RMS computes the root-mean-square value of a over the box
// [i0,i1)x[j0,j1)x[k0,k1). It is the probe a caller uses to test PML
// absorption (e.g. "RMS at the inner face of a slab after N steps").
func RMS(a *Array3D, i0, i1, j0, j1, k0, k1 int) float64 {
	n := (i1 - i0) * (j1 - j0) * (k1 - k0)
	if n <= 0 {
		return 0
	}
	vals := make([]float64, 0, n)
	for i := i0; i < i1; i++ {
		for j := j0; j < j1; j++ {
			for k := k0; k < k1; k++ {
				vals = append(vals, a.At(i, j, k))
			}
		}
	}
	sumSq := floats.Dot(vals, vals)
	return math.Sqrt(sumSq / float64(n))
}
