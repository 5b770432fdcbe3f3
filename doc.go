// Package fdtdpml implements the computationally dense core of an
// FDTD electromagnetic solver: the six-slab CFS recursive-convolution
// PML boundary updater (package pml), the Yee-grid field state
// container it borrows views of (package field), and the fractal
// geometry generator used to seed heterogeneous material domains
// (package fractal). See cmd/fdtdsim for a minimal demonstrator that
// wires all three together.
package fdtdpml
