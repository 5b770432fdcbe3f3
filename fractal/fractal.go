// Package fractal implements the Fractal Generator: it turns a complex
// random spectrum into a 2-D surface or 3-D volume of scale-invariant
// fractal heights/intensities by dividing by r^D in reciprocal space,
// where r is the distance from a configurable centre and D is the
// fractal dimension. The inverse-FFT step that turns the returned
// complex field into a real height map is a caller responsibility
// (left to the caller, outside this core).
package fractal

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/0x5844/fdtd-pml/internal/worker"
)

// dcGuard is the sentinel B substituted for the DC bin (r==0, so
// B=r^D==0 exactly) so the generator never divides by zero. The value
// is part of the contract, not a tuning knob.
const dcGuard = 0.9

// wrap folds local index i (offset by ox within a global axis of size
// g) to the FFT-origin-centred frequency coordinate spectral fractal
// synthesis expects: (i+ox+g/2) mod g.
func wrap(i, ox, g int) int {
	m := (i + ox + g/2) % g
	if m < 0 {
		m += g
	}
	return m
}

// Surface2D fills out with A divided by r^D at every cell of an
// nx-by-ny sub-region of a global gx-by-gy spectrum at offset (ox,oy).
// weighting and centre (centre already pre-scaled by weighting) each
// hold 2 elements. A and out must both be nx-by-ny; A is read-only,
// out is the sole mutated array. Shape or length mismatches are a
// caller bug and are not validated in the hot loop, per the gprMax
// FractalSurface precondition this generator carries forward.
func Surface2D(nx, ny, ox, oy, gx, gy, workers int, D float64, weighting, centre [2]float64, A, out *mat.CDense) {
	worker.RunStatic(nx, workers, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			vx := weighting[0] * float64(wrap(i, ox, gx))
			dx := vx - centre[0]
			for j := 0; j < ny; j++ {
				vy := weighting[1] * float64(wrap(j, oy, gy))
				dy := vy - centre[1]

				r := math.Sqrt(dx*dx + dy*dy)
				b := math.Pow(r, D)
				if b == 0 {
					b = dcGuard
				}
				out.Set(i, j, A.At(i, j)/complex(b, 0))
			}
		}
	})
}

// Volume3D fills out with A divided by r^D at every cell of an
// nx-by-ny-by-nz sub-region of a global gx-by-gy-by-gz spectrum at
// offset (ox,oy,oz). weighting and centre each hold 3 elements. A and
// out are dense row-major flat arrays of length nx*ny*nz (last axis
// contiguous, matching this module's array-layout contract); no
// gonum type spans a 3-D dense complex tensor, so a flat slice is the
// natural representation here instead of forcing a 2-D gonum type to
// fit a 3-D shape.
func Volume3D(nx, ny, nz, ox, oy, oz, gx, gy, gz, workers int, D float64, weighting, centre [3]float64, A, out []complex128) {
	worker.RunStatic(nx, workers, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			vx := weighting[0] * float64(wrap(i, ox, gx))
			dx := vx - centre[0]
			for j := 0; j < ny; j++ {
				vy := weighting[1] * float64(wrap(j, oy, gy))
				dy := vy - centre[1]
				for k := 0; k < nz; k++ {
					vz := weighting[2] * float64(wrap(k, oz, gz))
					dz := vz - centre[2]

					r := math.Sqrt(dx*dx + dy*dy + dz*dz)
					b := math.Pow(r, D)
					if b == 0 {
						b = dcGuard
					}
					idx := (i*ny+j)*nz + k
					out[idx] = A[idx] / complex(b, 0)
				}
			}
		}
	})
}
