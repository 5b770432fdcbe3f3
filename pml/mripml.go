package pml

import (
	"github.com/0x5844/fdtd-pml/field"
	"github.com/0x5844/fdtd-pml/internal/worker"
)

// MagneticRead is the read-only view of all six field components an E
// kernel borrows for its curl differences.
type MagneticRead struct {
	St *field.State
}

// Component returns the named field array for read-only access.
func (m MagneticRead) Component(c field.Component) *field.Array3D {
	return m.St.Component(c)
}

// RunElectric applies one MRIPML electric half-step to slab's two
// tangential E components, using the same normal/cyclic-neighbor
// factoring RunMagnetic uses (see its doc comment), with backward
// normal differences in place of H's forward differences — the other
// half of the Yee staggering asymmetry between the electric and magnetic kernels.
func RunElectric(slab *Slab, workers int, coeffsE *field.CoeffTable, id *field.IDArray, h MagneticRead, ea, eb *field.Array3D) {
	b := slab.Bounds
	nx, ny, nz := b.Size()
	axis := slab.Face.Axis()
	aAxis, bAxis := (axis+1)%3, (axis+2)%3
	aComp, bComp := axisComponentH(aAxis), axisComponentH(bAxis)
	eaID, ebID := axisComponentE(aAxis), axisComponentE(bAxis)
	face := slab.Face
	order := slab.Order
	d := slab.D
	invD := 1 / d

	worker.RunStatic(nx, workers, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			for j := 0; j < ny; j++ {
				for k := 0; k < nz; k++ {
					ii, jj, kk := globalIndex(face, Electric, b, i, j, k)
					p := profileIndex(face, b, i, j, k)
					flat := flatIndex(ny, nz, i, j, k)

					dA := backwardDiffAlongAxis(h.Component(aComp), ii, jj, kk, axis, invD)
					dB := backwardDiffAlongAxis(h.Component(bComp), ii, jj, kk, axis, invD)

					cEa := coeffsE.Curl(id.At(eaID, ii, jj, kk))
					cEb := coeffsE.Curl(id.At(ebID, ii, jj, kk))

					corrA, corrB := recursiveConvolutionE(order, slab.Profile, p, slab.Phi1, slab.Phi2, flat, dB, dA)

					ea.Add(ii, jj, kk, -cEa*corrA)
					eb.Add(ii, jj, kk, cEb*corrB)
				}
			}
		}
	})
}

// backwardDiffAlongAxis computes (a[ii,jj,kk] - a[-1 along axis]) / d,
// the backward normal-direction curl difference every E-kernel reads.
func backwardDiffAlongAxis(a *field.Array3D, ii, jj, kk, axis int, invD float64) float64 {
	switch axis {
	case 0:
		return (a.At(ii, jj, kk) - a.At(ii-1, jj, kk)) * invD
	case 1:
		return (a.At(ii, jj, kk) - a.At(ii, jj-1, kk)) * invD
	default:
		return (a.At(ii, jj, kk) - a.At(ii, jj, kk-1)) * invD
	}
}

// recursiveConvolutionE advances Phi1/Phi2 for one cell and returns the
// order-appropriate correction terms for Ea (uses dB, Phi1) and Eb (uses
// dA, Phi2). The order-1 case intentionally reuses the pre-update
// Phi*[0] in its own recursion (a semi-implicit step this recursion requires
// be preserved verbatim); the order-2 case derives Psi from both poles'
// pre-update values before either pole is advanced, so unlike the
// HORIPML case there is no pole-update ordering constraint here.
func recursiveConvolutionE(order Order, prof Profile, p int, phi1, phi2 *PhiState, flat int, dB, dA float64) (corrA, corrB float64) {
	if order == Order1 {
		ira := 1 / prof.RA[0][p]
		ira1 := ira - 1
		rc0 := ira * prof.RB[0][p] * prof.RF[0][p]

		corrA = ira1*dB - ira*phi1.Pole0[flat]
		corrB = ira1*dA - ira*phi2.Pole0[flat]

		phi1.Pole0[flat] = prof.RE[0][p]*phi1.Pole0[flat] + rc0*dB - rc0*phi1.Pole0[flat]
		phi2.Pole0[flat] = prof.RE[0][p]*phi2.Pole0[flat] + rc0*dA - rc0*phi2.Pole0[flat]
		return
	}

	ira := 1 / (prof.RA[0][p] + prof.RA[1][p])
	ira1 := ira - 1
	rc0 := ira * prof.RF[0][p]
	rc1 := ira * prof.RF[1][p]

	psiA := prof.RB[0][p]*phi1.Pole0[flat] + prof.RB[1][p]*phi1.Pole1[flat]
	psiB := prof.RB[0][p]*phi2.Pole0[flat] + prof.RB[1][p]*phi2.Pole1[flat]

	corrA = ira1*dB - ira*psiA
	corrB = ira1*dA - ira*psiB

	phi1.Pole1[flat] = prof.RE[1][p]*phi1.Pole1[flat] + rc1*(dB-psiA)
	phi1.Pole0[flat] = prof.RE[0][p]*phi1.Pole0[flat] + rc0*(dB-psiA)
	phi2.Pole1[flat] = prof.RE[1][p]*phi2.Pole1[flat] + rc1*(dA-psiB)
	phi2.Pole0[flat] = prof.RE[0][p]*phi2.Pole0[flat] + rc0*(dA-psiB)
	return
}
