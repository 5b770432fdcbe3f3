package main

import (
	"math"

	"github.com/0x5844/fdtd-pml/field"
)

// dipole is a single z-polarized Gaussian-derivative soft source
// injected at one grid cell, the demonstrator's stand-in for a full
// source-injection collaborator — just enough to drive energy into
// the domain for an absorption demonstration.
type dipole struct {
	x, y, z   int
	amplitude float64
	tau       float64 // pulse width
	t0        float64 // peak delay, centers the derivative's zero-crossing in the window
}

func newCenterDipole(dims field.Dims, amplitude, dt float64) dipole {
	tau := 20 * dt
	return dipole{
		x: dims.Nx / 2, y: dims.Ny / 2, z: dims.Nz / 2,
		amplitude: amplitude,
		tau:       tau,
		t0:        4 * tau,
	}
}

// signal evaluates the derivative-of-Gaussian waveform at time t: it
// starts and ends near zero and has a single dominant cycle, so it
// excites a broad but finite spectrum without leaving residual DC
// offset in the PML's recursive-convolution state.
func (d dipole) signal(t float64) float64 {
	x := (t - d.t0) / d.tau
	return -d.amplitude * x * math.Exp(-x*x)
}

// inject adds one time step's worth of source signal directly into Ez
// at the dipole's cell (a hard-free, additive soft source).
func (d dipole) inject(st *field.State, t float64) {
	st.Ez.Add(d.x, d.y, d.z, d.signal(t))
}
