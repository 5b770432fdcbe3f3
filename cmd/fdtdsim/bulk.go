package main

import (
	"github.com/0x5844/fdtd-pml/field"
	"github.com/0x5844/fdtd-pml/internal/worker"
)

// The bulk Maxwell update stays out of the library's scope; this is the
// minimal material-aware Yee leapfrog a demonstrator needs so fields
// actually propagate into the PML. It runs over the whole domain, PML
// cells included: the slab kernels only augment the right-hand side
// with their recursive-convolution correction, they never replace the
// curl update itself.

// stepBulkMagnetic advances Hx, Hy, Hz over every cell with the curl-E
// update, forward-differencing each axis and weighting by the cell's
// material coefficient (column 4, scaled by 1/d here the same way the
// PML kernels scale their own differences). Cell (i,j,k) reads node
// i+1 (etc.), which exists because field arrays carry one extra node
// plane per axis; the outermost plane is the zero PEC wall backing the
// PML.
func stepBulkMagnetic(st *field.State, workers int, invDx, invDy, invDz float64) {
	nx, ny, nz := st.Dims.Nx, st.Dims.Ny, st.Dims.Nz
	worker.RunStatic(nx, workers, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			for j := 0; j < ny; j++ {
				for k := 0; k < nz; k++ {
					dEzDy := (st.Ez.At(i, j+1, k) - st.Ez.At(i, j, k)) * invDy
					dEyDz := (st.Ey.At(i, j, k+1) - st.Ey.At(i, j, k)) * invDz
					cHx := st.CoeffsH.Curl(st.ID.At(field.Hx, i, j, k))
					st.Hx.Add(i, j, k, -cHx*(dEzDy-dEyDz))

					dExDz := (st.Ex.At(i, j, k+1) - st.Ex.At(i, j, k)) * invDz
					dEzDx := (st.Ez.At(i+1, j, k) - st.Ez.At(i, j, k)) * invDx
					cHy := st.CoeffsH.Curl(st.ID.At(field.Hy, i, j, k))
					st.Hy.Add(i, j, k, -cHy*(dExDz-dEzDx))

					dEyDx := (st.Ey.At(i+1, j, k) - st.Ey.At(i, j, k)) * invDx
					dExDy := (st.Ex.At(i, j+1, k) - st.Ex.At(i, j, k)) * invDy
					cHz := st.CoeffsH.Curl(st.ID.At(field.Hz, i, j, k))
					st.Hz.Add(i, j, k, -cHz*(dEyDx-dExDy))
				}
			}
		}
	})
}

// stepBulkElectric advances Ex, Ey, Ez with the matching backward
// -difference curl-H update, starting from node 1 on every axis so the
// i-1/j-1/k-1 reads stay in range. The skipped node-0 planes are the
// PEC wall and stay zero.
func stepBulkElectric(st *field.State, workers int, invDx, invDy, invDz float64) {
	nx, ny, nz := st.Dims.Nx, st.Dims.Ny, st.Dims.Nz
	worker.RunStatic(nx-1, workers, func(lo, hi int) {
		for i := 1 + lo; i < 1+hi; i++ {
			for j := 1; j < ny; j++ {
				for k := 1; k < nz; k++ {
					dHzDy := (st.Hz.At(i, j, k) - st.Hz.At(i, j-1, k)) * invDy
					dHyDz := (st.Hy.At(i, j, k) - st.Hy.At(i, j, k-1)) * invDz
					cEx := st.CoeffsE.Curl(st.ID.At(field.Ex, i, j, k))
					st.Ex.Add(i, j, k, cEx*(dHzDy-dHyDz))

					dHxDz := (st.Hx.At(i, j, k) - st.Hx.At(i, j, k-1)) * invDz
					dHzDx := (st.Hz.At(i, j, k) - st.Hz.At(i-1, j, k)) * invDx
					cEy := st.CoeffsE.Curl(st.ID.At(field.Ey, i, j, k))
					st.Ey.Add(i, j, k, cEy*(dHxDz-dHzDx))

					dHyDx := (st.Hy.At(i, j, k) - st.Hy.At(i-1, j, k)) * invDx
					dHxDy := (st.Hx.At(i, j, k) - st.Hx.At(i, j-1, k)) * invDy
					cEz := st.CoeffsE.Curl(st.ID.At(field.Ez, i, j, k))
					st.Ez.Add(i, j, k, cEz*(dHyDx-dHxDy))
				}
			}
		}
	})
}
