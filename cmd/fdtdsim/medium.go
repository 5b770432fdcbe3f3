package main

import (
	"math/rand"

	"github.com/0x5844/fdtd-pml/field"
	"github.com/0x5844/fdtd-pml/fractal"
)

// seedFractalMedium fills the non-PML interior with a two-material
// heterogeneous mix: a 3-D fractal volume is synthesized from a seeded
// random spectrum, and cells where its real part is positive are
// assigned material 1 (the contrast material, set up by the caller in
// the coefficient tables). The PML region stays material 0 so the
// absorbing layers keep their vacuum matching. Returns the number of
// cells assigned to the contrast material.
func seedFractalMedium(st *field.State, pmlDepth, workers int, dimension float64, seed int64) int {
	dims := st.Dims
	nx := dims.Nx - 2*pmlDepth
	ny := dims.Ny - 2*pmlDepth
	nz := dims.Nz - 2*pmlDepth
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return 0
	}

	rng := rand.New(rand.NewSource(seed))
	size := nx * ny * nz
	spectrum := make([]complex128, size)
	for idx := range spectrum {
		spectrum[idx] = complex(rng.NormFloat64(), rng.NormFloat64())
	}
	out := make([]complex128, size)

	weighting := [3]float64{1, 1, 1}
	centre := [3]float64{
		weighting[0] * float64(nx) / 2,
		weighting[1] * float64(ny) / 2,
		weighting[2] * float64(nz) / 2,
	}
	fractal.Volume3D(nx, ny, nz, 0, 0, 0, nx, ny, nz, workers, dimension, weighting, centre, spectrum, out)

	components := []field.Component{field.Ex, field.Ey, field.Ez, field.Hx, field.Hy, field.Hz}
	assigned := 0
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				if real(out[(i*ny+j)*nz+k]) <= 0 {
					continue
				}
				for _, c := range components {
					st.ID.Set(c, i+pmlDepth, j+pmlDepth, k+pmlDepth, 1)
				}
				assigned++
			}
		}
	}
	return assigned
}
