// Package field implements the Field State Container: the Yee-grid
// electric and magnetic arrays, the per-cell material-ID array, and the
// per-material update-coefficient tables. It owns all storage; the pml
// kernels borrow disjoint or read-only views of it.
package field

import "fmt"

// Component indexes a field component in the fixed order the material-ID
// array's leading axis uses: Ex=0, Ey=1, Ez=2, Hx=3, Hy=4, Hz=5.
type Component int

const (
	Ex Component = iota
	Ey
	Ez
	Hx
	Hy
	Hz
)

// NumComponents is the size of the material-ID array's leading axis.
const NumComponents = 6

// Dims is the cell count of a Yee grid along each axis.
type Dims struct {
	Nx, Ny, Nz int
}

// Array3D is a dense, row-major, real-valued field array with the last
// axis contiguous, matching the array-layout contract shared by every
// kernel in this module.
type Array3D struct {
	dims Dims
	data []float64
}

// NewArray3D allocates a zero-initialized dense array of the given shape.
func NewArray3D(dims Dims) *Array3D {
	return &Array3D{
		dims: dims,
		data: make([]float64, dims.Nx*dims.Ny*dims.Nz),
	}
}

// Dims reports the array's shape.
func (a *Array3D) Dims() Dims { return a.dims }

func (a *Array3D) index(i, j, k int) int {
	return (i*a.dims.Ny+j)*a.dims.Nz + k
}

// At returns the value at (i, j, k). Out-of-range indices are a caller
// bug, per this module's precondition-checked-at-the-boundary-only error
// model; this method does not bounds-check beyond what a slice index
// panic already gives.
func (a *Array3D) At(i, j, k int) float64 {
	return a.data[a.index(i, j, k)]
}

// Set assigns the value at (i, j, k).
func (a *Array3D) Set(i, j, k int, v float64) {
	a.data[a.index(i, j, k)] = v
}

// Add accumulates delta into the value at (i, j, k).
func (a *Array3D) Add(i, j, k int, delta float64) {
	idx := a.index(i, j, k)
	a.data[idx] += delta
}

// Raw exposes the underlying flat row-major storage for bulk access
// (diagnostics, fast paths). Callers must respect the (i*Ny+j)*Nz+k
// layout.
func (a *Array3D) Raw() []float64 { return a.data }

// Clear zero-fills the array in place.
func (a *Array3D) Clear() {
	for i := range a.data {
		a.data[i] = 0
	}
}

// IDArray is the per-component, per-cell material-index array described
// by the data model: ID[6, Nx+1, Ny+1, Nz+1], unsigned indices into the
// coefficient tables.
type IDArray struct {
	dims Dims // cell dims the component arrays were sized against (Nx,Ny,Nz); storage uses dims+1 per axis
	data []uint32
}

// NewIDArray allocates a zero-initialized material-ID array sized
// (Nx+1, Ny+1, Nz+1) per component, all components zero (material 0).
func NewIDArray(dims Dims) *IDArray {
	nx, ny, nz := dims.Nx+1, dims.Ny+1, dims.Nz+1
	return &IDArray{
		dims: dims,
		data: make([]uint32, NumComponents*nx*ny*nz),
	}
}

func (id *IDArray) index(c Component, i, j, k int) int {
	ny, nz := id.dims.Ny+1, id.dims.Nz+1
	stride := (id.dims.Nx + 1) * ny * nz
	return int(c)*stride + (i*ny+j)*nz + k
}

// At returns the material index for component c at cell (i, j, k).
func (id *IDArray) At(c Component, i, j, k int) uint32 {
	return id.data[id.index(c, i, j, k)]
}

// Set assigns the material index for component c at cell (i, j, k). ID
// values must lie in [0, M) where M is the coefficient table's row
// count; out-of-range values are a caller bug, not detected here.
func (id *IDArray) Set(c Component, i, j, k int, materialID uint32) {
	id.data[id.index(c, i, j, k)] = materialID
}

// CoeffTable holds the five update coefficients for each of M materials.
// Column 4 is the curl-scaled update weight the PML and interior kernels
// read; columns 0-3 are interior-update coefficients out of scope for
// this core but carried so the table matches the full updatecoeffsE/H
// layout a caller builds once and freezes.
type CoeffTable struct {
	rows [][5]float64
}

// NewCoeffTable allocates a table for m materials, all coefficients zero.
func NewCoeffTable(m int) *CoeffTable {
	return &CoeffTable{rows: make([][5]float64, m)}
}

// Len reports the number of materials the table holds.
func (c *CoeffTable) Len() int { return len(c.rows) }

// Set assigns all five coefficients for material id.
func (c *CoeffTable) Set(id uint32, coeffs [5]float64) {
	c.rows[id] = coeffs
}

// Curl returns column 4 (the curl-scaled update weight) for material id.
// This is the only column the PML kernels read.
func (c *CoeffTable) Curl(id uint32) float64 {
	return c.rows[id][4]
}

// At returns all five coefficients for material id.
func (c *CoeffTable) At(id uint32) [5]float64 {
	return c.rows[id]
}

// State is the Field State Container: it exclusively owns the six Yee
// field components, the material-ID array, and the frozen update
// -coefficient tables. Kernels borrow views of it; State itself never
// mutates once constructed except through the component arrays it hands
// out.
type State struct {
	Dims Dims

	Ex, Ey, Ez *Array3D
	Hx, Hy, Hz *Array3D

	ID *IDArray

	CoeffsE *CoeffTable
	CoeffsH *CoeffTable
}

// NewState allocates a zero-initialized field state for a grid of the
// given dims with numMaterials rows in each coefficient table.
//
// Field arrays are sized one node plane larger than the cell count
// along every axis (a grid of N cells has N+1 node planes in the Yee
// arrangement), matching the material-ID array. The outermost node
// plane stays zero unless a caller writes it — it is the PEC wall
// backing the PML — and it is what lets a plus-face magnetic kernel
// take its forward difference at the last interior cell without
// falling off the array.
func NewState(dims Dims, numMaterials int) *State {
	nodes := Dims{Nx: dims.Nx + 1, Ny: dims.Ny + 1, Nz: dims.Nz + 1}
	return &State{
		Dims:    dims,
		Ex:      NewArray3D(nodes),
		Ey:      NewArray3D(nodes),
		Ez:      NewArray3D(nodes),
		Hx:      NewArray3D(nodes),
		Hy:      NewArray3D(nodes),
		Hz:      NewArray3D(nodes),
		ID:      NewIDArray(dims),
		CoeffsE: NewCoeffTable(numMaterials),
		CoeffsH: NewCoeffTable(numMaterials),
	}
}

// Component returns the named field array.
func (s *State) Component(c Component) *Array3D {
	switch c {
	case Ex:
		return s.Ex
	case Ey:
		return s.Ey
	case Ez:
		return s.Ez
	case Hx:
		return s.Hx
	case Hy:
		return s.Hy
	case Hz:
		return s.Hz
	default:
		panic(fmt.Sprintf("field: invalid component %d", c))
	}
}
