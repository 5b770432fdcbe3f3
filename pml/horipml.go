package pml

import (
	"github.com/0x5844/fdtd-pml/field"
	"github.com/0x5844/fdtd-pml/internal/worker"
)

// RunMagnetic applies one HORIPML magnetic half-step to slab's two
// tangential H components. E (all six components, read-only) supplies
// the curl differences; coeffsH supplies the per-material curl-scaled
// update weight (column 4); id is the material-ID array. Ha and Hb are
// the two H components this slab owns for this call — the normal
// component is never touched.
//
// Ha is the component at axis (slab.Face.Axis()+1)%3, Hb at
// (slab.Face.Axis()+2)%3 (cyclic), matching the per-face
// Hy/Hz (x-faces), Hx/Hz (y-faces), Hx/Hy (z-faces) pairing: the same
// formula runs unchanged on every face once expressed in terms of the
// normal axis and its two cyclic neighbors, collapsing what would
// otherwise be six near-duplicate kernel bodies (one per face) into
// one.
func RunMagnetic(slab *Slab, workers int, coeffsH *field.CoeffTable, id *field.IDArray, e ElectricRead, ha, hb *field.Array3D) {
	b := slab.Bounds
	nx, ny, nz := b.Size()
	axis := slab.Face.Axis()
	aAxis, bAxis := (axis+1)%3, (axis+2)%3
	aComp, bComp := axisComponentE(aAxis), axisComponentE(bAxis)
	haID, hbID := axisComponentH(aAxis), axisComponentH(bAxis)
	face := slab.Face
	order := slab.Order
	d := slab.D
	invD := 1 / d

	worker.RunStatic(nx, workers, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			for j := 0; j < ny; j++ {
				for k := 0; k < nz; k++ {
					ii, jj, kk := globalIndex(face, Magnetic, b, i, j, k)
					p := profileIndex(face, b, i, j, k)
					flat := flatIndex(ny, nz, i, j, k)

					dA := forwardDiffAlongAxis(e.Component(aComp), ii, jj, kk, axis, invD)
					dB := forwardDiffAlongAxis(e.Component(bComp), ii, jj, kk, axis, invD)

					cHa := coeffsH.Curl(id.At(haID, ii, jj, kk))
					cHb := coeffsH.Curl(id.At(hbID, ii, jj, kk))

					corrA, corrB := recursiveConvolutionH(order, slab.Profile, p, slab.Phi1, slab.Phi2, flat, dB, dA)

					ha.Add(ii, jj, kk, cHa*corrA)
					hb.Add(ii, jj, kk, -cHb*corrB)
				}
			}
		}
	})
}

// forwardDiffAlongAxis computes (a[+1 along axis] - a[ii,jj,kk]) / d,
// the forward normal-direction curl difference every H-kernel reads.
func forwardDiffAlongAxis(a *field.Array3D, ii, jj, kk, axis int, invD float64) float64 {
	switch axis {
	case 0:
		return (a.At(ii+1, jj, kk) - a.At(ii, jj, kk)) * invD
	case 1:
		return (a.At(ii, jj+1, kk) - a.At(ii, jj, kk)) * invD
	default:
		return (a.At(ii, jj, kk+1) - a.At(ii, jj, kk)) * invD
	}
}

// recursiveConvolutionH advances Phi1/Phi2 for one cell and returns the
// order-appropriate correction terms for Ha (uses dB, Phi1) and Hb (uses
// dA, Phi2). Phi1[1]/Phi2[1] are updated before Phi1[0]/Phi2[0] in the
// order-2 case since the [1] update reads the pre-update [0] value
// (order matters: the second pole must see pole 0's pre-update value).
func recursiveConvolutionH(order Order, prof Profile, p int, phi1, phi2 *PhiState, flat int, dB, dA float64) (corrA, corrB float64) {
	if order == Order1 {
		corrA = (prof.RA[0][p]-1)*dB + prof.RB[0][p]*phi1.Pole0[flat]
		corrB = (prof.RA[0][p]-1)*dA + prof.RB[0][p]*phi2.Pole0[flat]

		phi1.Pole0[flat] = prof.RE[0][p]*phi1.Pole0[flat] - prof.RF[0][p]*dB
		phi2.Pole0[flat] = prof.RE[0][p]*phi2.Pole0[flat] - prof.RF[0][p]*dA
		return
	}

	corrA = (prof.RA[0][p]*prof.RA[1][p]-1)*dB + prof.RA[1][p]*prof.RB[0][p]*phi1.Pole0[flat] + prof.RB[1][p]*phi1.Pole1[flat]
	corrB = (prof.RA[0][p]*prof.RA[1][p]-1)*dA + prof.RA[1][p]*prof.RB[0][p]*phi2.Pole0[flat] + prof.RB[1][p]*phi2.Pole1[flat]

	phi1.Pole1[flat] = prof.RE[1][p]*phi1.Pole1[flat] - prof.RF[1][p]*(prof.RA[0][p]*dB+prof.RB[0][p]*phi1.Pole0[flat])
	phi2.Pole1[flat] = prof.RE[1][p]*phi2.Pole1[flat] - prof.RF[1][p]*(prof.RA[0][p]*dA+prof.RB[0][p]*phi2.Pole0[flat])

	phi1.Pole0[flat] = prof.RE[0][p]*phi1.Pole0[flat] - prof.RF[0][p]*dB
	phi2.Pole0[flat] = prof.RE[0][p]*phi2.Pole0[flat] - prof.RF[0][p]*dA
	return
}

// ElectricRead is the read-only view of all six field components an H
// kernel borrows: it needs the E components for the curl differences
// and also exposes the H components purely so callers can assemble this
// struct once from a field.State without extra plumbing. The Component
// method is the only one the kernel actually calls.
type ElectricRead struct {
	St *field.State
}

// Component returns the named field array for read-only access.
func (e ElectricRead) Component(c field.Component) *field.Array3D {
	return e.St.Component(c)
}
