package pml

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0x5844/fdtd-pml/field"
)

var allFaces = []Face{XMinus, XPlus, YMinus, YPlus, ZMinus, ZPlus}
var allOrders = []Order{Order1, Order2}

func testGrading() Grading {
	return Grading{M: 3, SigmaMax: 1.5, KappaMax: 5, AlphaMax: 0.05, AlphaMax2: 0.08, Dt: 0.5}
}

// targetComponents mirrors dispatch.go's StepMagnetic/StepElectric
// component selection for a given face and kind.
func targetComponents(face Face, kind Kind) (a, b field.Component) {
	axis := face.Axis()
	aAxis, bAxis := (axis+1)%3, (axis+2)%3
	if kind == Magnetic {
		return axisComponentH(aAxis), axisComponentH(bAxis)
	}
	return axisComponentE(aAxis), axisComponentE(bAxis)
}

func newTestState(dims field.Dims) *field.State {
	st := field.NewState(dims, 2)
	st.CoeffsH.Set(0, [5]float64{0, 0, 0, 0, 1.3})
	st.CoeffsH.Set(1, [5]float64{0, 0, 0, 0, -0.7})
	st.CoeffsE.Set(0, [5]float64{0, 0, 0, 0, 0.9})
	st.CoeffsE.Set(1, [5]float64{0, 0, 0, 0, -1.1})
	return st
}

func fillDeterministic(a *field.Array3D) {
	d := a.Dims()
	for i := 0; i < d.Nx; i++ {
		for j := 0; j < d.Ny; j++ {
			for k := 0; k < d.Nz; k++ {
				a.Set(i, j, k, math.Sin(float64(i*131+j*17+k*7+1)))
			}
		}
	}
}

func runSlabKernel(t *testing.T, face Face, kind Kind, order Order, st *field.State, slab *Slab) {
	t.Helper()
	aComp, bComp := targetComponents(face, kind)
	if kind == Magnetic {
		RunMagnetic(slab, 1, st.CoeffsH, st.ID, ElectricRead{St: st}, st.Component(aComp), st.Component(bComp))
	} else {
		RunElectric(slab, 1, st.CoeffsE, st.ID, MagneticRead{St: st}, st.Component(aComp), st.Component(bComp))
	}
}

// P1 — zero input, zero state. With all field and Phi arrays zero, any
// kernel call leaves them zero, across all 24 PML variants.
func TestZeroInputZeroState(t *testing.T) {
	dims := field.Dims{Nx: 12, Ny: 12, Nz: 12}
	depth := 3

	for _, face := range allFaces {
		for _, kind := range []Kind{Electric, Magnetic} {
			for _, order := range allOrders {
				st := newTestState(dims)
				bounds := faceBounds(face, dims.Nx, dims.Ny, dims.Nz, depth)
				profile := BuildProfiles(order, depth, testGrading())
				slab := NewSlab(face, order, bounds, 1.0, profile)

				runSlabKernel(t, face, kind, order, st, slab)

				for _, c := range []field.Component{field.Ex, field.Ey, field.Ez, field.Hx, field.Hy, field.Hz} {
					for _, v := range st.Component(c).Raw() {
						require.Zero(t, v, "face=%v kind=%v order=%v component=%v", face, kind, order, c)
					}
				}
				for _, v := range slab.Phi1.Pole0 {
					require.Zero(t, v)
				}
				for _, v := range slab.Phi2.Pole0 {
					require.Zero(t, v)
				}
				if order == Order2 {
					for _, v := range slab.Phi1.Pole1 {
						require.Zero(t, v)
					}
					for _, v := range slab.Phi2.Pole1 {
						require.Zero(t, v)
					}
				}
			}
		}
	}
}

// P2 — interior invariance. A kernel must only modify its two target
// field components within the slab bounds and only the Phi arrays it
// was given; all other array entries are bitwise-unchanged.
func TestInteriorInvariance(t *testing.T) {
	dims := field.Dims{Nx: 12, Ny: 12, Nz: 12}
	depth := 3

	for _, face := range allFaces {
		for _, kind := range []Kind{Electric, Magnetic} {
			for _, order := range allOrders {
				st := newTestState(dims)
				for _, c := range []field.Component{field.Ex, field.Ey, field.Ez, field.Hx, field.Hy, field.Hz} {
					fillDeterministic(st.Component(c))
				}

				bounds := faceBounds(face, dims.Nx, dims.Ny, dims.Nz, depth)
				profile := BuildProfiles(order, depth, testGrading())
				slab := NewSlab(face, order, bounds, 1.0, profile)

				aComp, bComp := targetComponents(face, kind)
				other := make([]field.Component, 0, 4)
				for _, c := range []field.Component{field.Ex, field.Ey, field.Ez, field.Hx, field.Hy, field.Hz} {
					if c != aComp && c != bComp {
						other = append(other, c)
					}
				}

				preOther := make(map[field.Component][]float64, len(other))
				for _, c := range other {
					raw := st.Component(c).Raw()
					cp := make([]float64, len(raw))
					copy(cp, raw)
					preOther[c] = cp
				}
				preA := append([]float64(nil), st.Component(aComp).Raw()...)
				preB := append([]float64(nil), st.Component(bComp).Raw()...)

				nx, ny, nz := bounds.Size()
				visited := make(map[[3]int]bool)
				for i := 0; i < nx; i++ {
					for j := 0; j < ny; j++ {
						for k := 0; k < nz; k++ {
							ii, jj, kk := globalIndex(face, kind, bounds, i, j, k)
							visited[[3]int{ii, jj, kk}] = true
						}
					}
				}

				runSlabKernel(t, face, kind, order, st, slab)

				for _, c := range other {
					require.Equal(t, preOther[c], st.Component(c).Raw(), "face=%v kind=%v order=%v other-component=%v must be untouched", face, kind, order, c)
				}

				nd := st.Component(aComp).Dims()
				for i := 0; i < nd.Nx; i++ {
					for j := 0; j < nd.Ny; j++ {
						for k := 0; k < nd.Nz; k++ {
							if visited[[3]int{i, j, k}] {
								continue
							}
							idx := (i*nd.Ny+j)*nd.Nz + k
							require.Equal(t, preA[idx], st.Component(aComp).At(i, j, k), "face=%v kind=%v order=%v unvisited cell (%d,%d,%d) of %v changed", face, kind, order, i, j, k, aComp)
							require.Equal(t, preB[idx], st.Component(bComp).At(i, j, k), "face=%v kind=%v order=%v unvisited cell (%d,%d,%d) of %v changed", face, kind, order, i, j, k, bComp)
						}
					}
				}
			}
		}
	}
}

// P3 — parallel determinism. Bit-identical inputs produce bit-identical
// outputs regardless of worker count, since the partition is cell-disjoint.
func TestParallelDeterminism(t *testing.T) {
	dims := field.Dims{Nx: 16, Ny: 16, Nz: 16}
	depth := 4

	for _, face := range []Face{XPlus, YMinus, ZPlus} {
		bounds := faceBounds(face, dims.Nx, dims.Ny, dims.Nz, depth)
		profile := BuildProfiles(Order2, depth, testGrading())

		var reference []float64
		for wi, workers := range []int{1, 2, 3, 5, 16} {
			st := newTestState(dims)
			for _, c := range []field.Component{field.Ex, field.Ey, field.Ez, field.Hx, field.Hy, field.Hz} {
				fillDeterministic(st.Component(c))
			}
			slab := NewSlab(face, Order2, bounds, 1.0, profile)
			aComp, bComp := targetComponents(face, Magnetic)
			RunMagnetic(slab, workers, st.CoeffsH, st.ID, ElectricRead{St: st}, st.Component(aComp), st.Component(bComp))

			got := append([]float64(nil), st.Component(aComp).Raw()...)
			got = append(got, st.Component(bComp).Raw()...)
			if wi == 0 {
				reference = got
				continue
			}
			require.Equal(t, reference, got, "face=%v workers=%d diverged from single-worker result", face, workers)
		}
	}
}

// P5 — order-2 reduction. An order-2 magnetic kernel whose second pole
// is neutral (RA[1]=1, RB[1]=0, RE[1]=0, RF[1]=0) reproduces the
// order-1 kernel with the same pole-0 coefficients exactly, and
// Phi*[1] stays zero throughout. The reduction is specific to the
// magnetic recursion, whose poles compose multiplicatively
// (RA[0]*RA[1], so RA[1]=1 is its identity); the electric recursion
// sums its poles (1/(RA[0]+RA[1])) and folds RB into the aggregated
// Psi term, so no second-pole setting turns its order-2 law into its
// order-1 law.
func TestOrder2ReductionMatchesOrder1(t *testing.T) {
	dims := field.Dims{Nx: 12, Ny: 12, Nz: 12}
	depth := 3

	for _, face := range allFaces {
		bounds := faceBounds(face, dims.Nx, dims.Ny, dims.Nz, depth)
		profile1 := BuildProfiles(Order1, depth, testGrading())
		profile2 := profile1.CollapseOrder1()

		st1 := newTestState(dims)
		st2 := newTestState(dims)
		for _, c := range []field.Component{field.Ex, field.Ey, field.Ez, field.Hx, field.Hy, field.Hz} {
			fillDeterministic(st1.Component(c))
			fillDeterministic(st2.Component(c))
		}

		slab1 := NewSlab(face, Order1, bounds, 1.0, profile1)
		slab2 := NewSlab(face, Order2, bounds, 1.0, profile2)

		aComp, bComp := targetComponents(face, Magnetic)
		runSlabKernel(t, face, Magnetic, Order1, st1, slab1)
		runSlabKernel(t, face, Magnetic, Order2, st2, slab2)

		require.Equal(t, st1.Component(aComp).Raw(), st2.Component(aComp).Raw(), "face=%v", face)
		require.Equal(t, st1.Component(bComp).Raw(), st2.Component(bComp).Raw(), "face=%v", face)

		for _, v := range slab2.Phi1.Pole1 {
			require.Zero(t, v)
		}
		for _, v := range slab2.Phi2.Pole1 {
			require.Zero(t, v)
		}
	}
}

// A degenerate order-1 xminus magnetic
// kernel (RA=1, RB=RE=RF=0) against a linear Ez ramp leaves Hy exactly
// at its pre-call value and Phi1 at zero, since the correction term
// (RA-1)*dEz + RB*Phi1 is identically zero regardless of the ramp.
func TestScenarioDegenerateXMinusMagneticIsNoOp(t *testing.T) {
	dims := field.Dims{Nx: 40, Ny: 40, Nz: 40}
	st := field.NewState(dims, 1)
	st.CoeffsH.Set(0, [5]float64{0, 0, 0, 0, 2.0})

	for i := 0; i < dims.Nx; i++ {
		for j := 0; j < dims.Ny; j++ {
			for k := 0; k < dims.Nz; k++ {
				st.Ez.Set(i, j, k, float64(i))
			}
		}
	}

	n := 10
	ones, zeros := make([]float64, n), make([]float64, n)
	for i := range ones {
		ones[i] = 1
	}
	profile := Profile{
		Order: Order1,
		RA:    [2][]float64{ones, nil},
		RB:    [2][]float64{zeros, nil},
		RE:    [2][]float64{zeros, nil},
		RF:    [2][]float64{zeros, nil},
	}
	bounds := Bounds{XS: 0, XF: 10, YS: 0, YF: 40, ZS: 0, ZF: 40}
	slab := NewSlab(XMinus, Order1, bounds, 1.0, profile)

	preHy := append([]float64(nil), st.Hy.Raw()...)

	RunMagnetic(slab, 1, st.CoeffsH, st.ID, ElectricRead{St: st}, st.Hy, st.Hz)

	require.Equal(t, preHy, st.Hy.Raw())
	for _, v := range slab.Phi1.Pole0 {
		require.Zero(t, v)
	}
}
