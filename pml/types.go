// Package pml implements the PML Slab Updater: the CFS recursive
// -convolution boundary kernels that advance the tangential field
// components on one of six axis-aligned slabs, at recursion order 1 or
// 2, for either field kind (electric kernels run the MRIPML
// formulation, magnetic kernels run the HORIPML formulation — see
// DESIGN.md's Open Question resolution for why field kind determines
// formulation rather than the two varying independently).
package pml

import "github.com/0x5844/fdtd-pml/field"

// Face names one of the six slabs by the domain boundary it absorbs at.
type Face int

const (
	XMinus Face = iota
	XPlus
	YMinus
	YPlus
	ZMinus
	ZPlus
)

// Axis returns the slab's normal axis: 0=x, 1=y, 2=z.
func (f Face) Axis() int {
	switch f {
	case XMinus, XPlus:
		return 0
	case YMinus, YPlus:
		return 1
	default:
		return 2
	}
}

// IsMinus reports whether the face sits at the low end of its axis.
func (f Face) IsMinus() bool {
	return f == XMinus || f == YMinus || f == ZMinus
}

// Kind selects which pair of tangential field components a kernel call
// advances.
type Kind int

const (
	Electric Kind = iota
	Magnetic
)

// Formulation names the recursive-convolution scheme a Kind is paired
// with. It exists for documentation and assertions, not as an
// independent dispatch axis: Magnetic always runs HORIPML and Electric
// always runs MRIPML.
type Formulation int

const (
	HORIPML Formulation = iota
	MRIPML
)

// FormulationFor returns the one formulation a field kind runs.
func FormulationFor(k Kind) Formulation {
	if k == Magnetic {
		return HORIPML
	}
	return MRIPML
}

// Order is the number of recursive poles in the CFS stretching function.
type Order int

const (
	Order1 Order = 1
	Order2 Order = 2
)

// Bounds is the slab's axis-aligned cuboid region [XS,XF)x[YS,YF)x[ZS,ZF).
type Bounds struct {
	XS, XF int
	YS, YF int
	ZS, ZF int
}

// Size returns the slab's cell extents (nx,ny,nz) along each axis.
func (b Bounds) Size() (nx, ny, nz int) {
	return b.XF - b.XS, b.YF - b.YS, b.ZF - b.ZS
}

// Depth returns the slab's extent along its own normal axis, i.e. the
// length every RA/RB/RE/RF profile is sized by. (Phi pole arrays hold
// one entry per slab cell, nx*ny*nz.)
func (b Bounds) Depth(f Face) int {
	switch f.Axis() {
	case 0:
		return b.XF - b.XS
	case 1:
		return b.YF - b.YS
	default:
		return b.ZF - b.ZS
	}
}

// PhiState holds the recursive-convolution auxiliary memory for one
// tangential component at one slab, one pole array per recursion order.
// Pole1 is nil for an order-1 slab.
type PhiState struct {
	Pole0 []float64
	Pole1 []float64
}

// NewPhiState allocates zero-initialized auxiliary state for n
// slab-local cells at the given order.
func NewPhiState(order Order, n int) *PhiState {
	ps := &PhiState{Pole0: make([]float64, n)}
	if order == Order2 {
		ps.Pole1 = make([]float64, n)
	}
	return ps
}

// Pole returns the auxiliary slice for recursion pole p (0 or 1). On an
// order-1 state, p==1 returns nil since that pole is never allocated;
// indexing it then panics like any slice out-of-range access (a caller
// bug, not a runtime-checked error per this module's error model).
func (ps *PhiState) Pole(p int) []float64 {
	if p == 0 {
		return ps.Pole0
	}
	return ps.Pole1
}

// Slab bundles one face's bounds, recursion order, auxiliary Phi state
// for its two tangential components, and its frozen coefficient
// profiles. It is the unit of state the outer time-stepping loop carries
// across calls.
type Slab struct {
	Face    Face
	Order   Order
	Bounds  Bounds
	D       float64 // spatial step along the normal axis (dx, dy, or dz)
	Phi1    *PhiState
	Phi2    *PhiState
	Profile Profile
}

// NewSlab allocates a slab with zero-initialized Phi state sized to its
// bounds, ready to receive a built Profile.
func NewSlab(face Face, order Order, bounds Bounds, d float64, profile Profile) *Slab {
	nx, ny, nz := bounds.Size()
	n := nx * ny * nz
	return &Slab{
		Face:    face,
		Order:   order,
		Bounds:  bounds,
		D:       d,
		Phi1:    NewPhiState(order, n),
		Phi2:    NewPhiState(order, n),
		Profile: profile,
	}
}

// axisComponentE and axisComponentH map axis index (0=x,1=y,2=z) to the
// matching electric or magnetic field component.
func axisComponentE(axis int) field.Component {
	return [3]field.Component{field.Ex, field.Ey, field.Ez}[axis]
}

func axisComponentH(axis int) field.Component {
	return [3]field.Component{field.Hx, field.Hy, field.Hz}[axis]
}
