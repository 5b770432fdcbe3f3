package pml

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0x5844/fdtd-pml/field"
)

// normalCoord picks the coordinate along axis out of a node index triple.
func normalCoord(axis, i, j, k int) int {
	switch axis {
	case 0:
		return i
	case 1:
		return j
	default:
		return k
	}
}

// seedAlongAxis sets every node of a to f(coordinate along axis).
func seedAlongAxis(a *field.Array3D, axis int, f func(x int) float64) {
	nd := a.Dims()
	for i := 0; i < nd.Nx; i++ {
		for j := 0; j < nd.Ny; j++ {
			for k := 0; k < nd.Nz; k++ {
				a.Set(i, j, k, f(normalCoord(axis, i, j, k)))
			}
		}
	}
}

// Minus and plus faces of the same axis, given the same coefficient
// profile and a mirror-symmetric seed, must produce exactly mirrored
// updates. For magnetic kernels: a source E profile even about the
// domain mid-plane yields tangential H updates that are odd under the
// H-node mirror x -> N-1-x (the forward differences negate exactly, so
// the match is bitwise). For electric kernels: a source H profile odd
// under the H-node mirror yields E updates even under the E-node mirror
// x -> N-x.
func TestFaceMirrorSymmetry(t *testing.T) {
	const n = 12
	const depth = 3
	dims := field.Dims{Nx: n, Ny: n, Nz: n}

	pairs := []struct {
		name        string
		minus, plus Face
	}{
		{"x", XMinus, XPlus},
		{"y", YMinus, YPlus},
		{"z", ZMinus, ZPlus},
	}

	for _, pair := range pairs {
		axis := pair.minus.Axis()
		profile := BuildProfiles(Order2, depth, testGrading())

		t.Run("magnetic/"+pair.name, func(t *testing.T) {
			st := newTestState(dims)
			// even about the mid-plane on E nodes: f(x) == f(n-x), exactly
			f := func(x int) float64 {
				d := float64(x) - float64(n)/2
				return d * d
			}
			seedAlongAxis(st.Component(axisComponentE((axis+1)%3)), axis, f)
			seedAlongAxis(st.Component(axisComponentE((axis+2)%3)), axis, f)

			slabM := NewSlab(pair.minus, Order2, faceBounds(pair.minus, n, n, n, depth), 1.0, profile)
			slabP := NewSlab(pair.plus, Order2, faceBounds(pair.plus, n, n, n, depth), 1.0, profile)

			ha, hb := targetComponents(pair.minus, Magnetic)
			RunMagnetic(slabM, 1, st.CoeffsH, st.ID, ElectricRead{St: st}, st.Component(ha), st.Component(hb))
			RunMagnetic(slabP, 1, st.CoeffsH, st.ID, ElectricRead{St: st}, st.Component(ha), st.Component(hb))

			for _, c := range []field.Component{ha, hb} {
				arr := st.Component(c)
				for x := 0; x < depth; x++ {
					mx := n - 1 - x
					for j := 0; j < n; j++ {
						for k := 0; k < n; k++ {
							var got, mirrored float64
							switch axis {
							case 0:
								got, mirrored = arr.At(x, j, k), arr.At(mx, j, k)
							case 1:
								got, mirrored = arr.At(j, x, k), arr.At(j, mx, k)
							default:
								got, mirrored = arr.At(j, k, x), arr.At(j, k, mx)
							}
							require.Equal(t, -got, mirrored,
								"axis=%d component=%v normal=%d vs %d", axis, c, x, mx)
						}
					}
				}
			}
		})

		t.Run("electric/"+pair.name, func(t *testing.T) {
			st := newTestState(dims)
			// odd under the H-node mirror: h(x) == -h(n-1-x), exactly
			h := func(x int) float64 {
				d := float64(x) - float64(n-1)/2
				return d * d * d
			}
			seedAlongAxis(st.Component(axisComponentH((axis+1)%3)), axis, h)
			seedAlongAxis(st.Component(axisComponentH((axis+2)%3)), axis, h)

			slabM := NewSlab(pair.minus, Order2, faceBounds(pair.minus, n, n, n, depth), 1.0, profile)
			slabP := NewSlab(pair.plus, Order2, faceBounds(pair.plus, n, n, n, depth), 1.0, profile)

			ea, eb := targetComponents(pair.minus, Electric)
			RunElectric(slabM, 1, st.CoeffsE, st.ID, MagneticRead{St: st}, st.Component(ea), st.Component(eb))
			RunElectric(slabP, 1, st.CoeffsE, st.ID, MagneticRead{St: st}, st.Component(ea), st.Component(eb))

			for _, c := range []field.Component{ea, eb} {
				arr := st.Component(c)
				for x := 1; x <= depth; x++ {
					mx := n - x
					for j := 0; j < n; j++ {
						for k := 0; k < n; k++ {
							var got, mirrored float64
							switch axis {
							case 0:
								got, mirrored = arr.At(x, j, k), arr.At(mx, j, k)
							case 1:
								got, mirrored = arr.At(j, x, k), arr.At(j, mx, k)
							default:
								got, mirrored = arr.At(j, k, x), arr.At(j, k, mx)
							}
							require.Equal(t, got, mirrored,
								"axis=%d component=%v normal=%d vs %d", axis, c, x, mx)
						}
					}
				}
			}
		})
	}
}
