package pml

// globalIndex maps a slab-local cell (i,j,k) in [0,nx)x[0,ny)x[0,nz) to
// the global field-array cell (ii,jj,kk) the kernel reads/writes for the
// given face and field kind.
//
// Tangential axes always translate by the slab's start offset. The
// normal axis is where E and H kernels diverge on a minus face: H
// kernels count one cell further inward than E kernels
// (xf-(i+1) vs xf-i). This one-cell asymmetry is the staggered Yee
// half-cell offset between E and H nodes and is preserved exactly as
// this recursion requires, not "fixed".
func globalIndex(face Face, kind Kind, b Bounds, i, j, k int) (ii, jj, kk int) {
	switch face {
	case XMinus:
		jj, kk = j+b.YS, k+b.ZS
		if kind == Magnetic {
			ii = b.XF - (i + 1)
		} else {
			ii = b.XF - i
		}
	case XPlus:
		jj, kk = j+b.YS, k+b.ZS
		ii = i + b.XS
	case YMinus:
		ii, kk = i+b.XS, k+b.ZS
		if kind == Magnetic {
			jj = b.YF - (j + 1)
		} else {
			jj = b.YF - j
		}
	case YPlus:
		ii, kk = i+b.XS, k+b.ZS
		jj = j + b.YS
	case ZMinus:
		ii, jj = i+b.XS, j+b.YS
		if kind == Magnetic {
			kk = b.ZF - (k + 1)
		} else {
			kk = b.ZF - k
		}
	case ZPlus:
		ii, jj = i+b.XS, j+b.YS
		kk = k + b.ZS
	}
	return
}

// profileIndex returns the depth of cell (i,j,k) from the PML's outer
// boundary, used to look up RA/RB/RE/RF and Phi. globalIndex's i/j/k
// always run 0 at the slab's interior-facing interface up to depth-1 at
// the outer (absorbing) wall, regardless of face — so this reverses
// that to match BuildProfiles' convention, where profile index 0 is the
// outer wall (maximum sigma) and index depth-1 is the zero-sigma
// interface.
func profileIndex(face Face, b Bounds, i, j, k int) int {
	depth := b.Depth(face)
	switch face.Axis() {
	case 0:
		return depth - 1 - i
	case 1:
		return depth - 1 - j
	default:
		return depth - 1 - k
	}
}

// flatIndex flattens a slab-local cell to the row-major index the Phi
// arrays use, matching field.Array3D's (i*ny+j)*nz+k layout so the two
// stay interchangeable.
func flatIndex(ny, nz, i, j, k int) int {
	return (i*ny+j)*nz + k
}
