package pml

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Profile holds the four frozen, read-only coefficient arrays a slab's
// kernels index by slab-local depth: RA, RB, RE, RF, one value per pole
// (index 0 always valid, index 1 only for an order-2 slab). Index 0 is
// closest to the PML's outer boundary.
type Profile struct {
	Order Order
	RA    [2][]float64
	RB    [2][]float64
	RE    [2][]float64
	RF    [2][]float64
}

// Grading parameterizes the polynomial conductivity/kappa grading and
// the per-pole CFS alpha used to build a Profile. This reconstructs the
// PML design inputs treated as opaque precomputed data (see
// DESIGN.md Open Question resolution #5); it follows the standard
// Gedney-style CFS recursive-convolution construction, graded by a
// polynomial of order M (Bérenger-optimal grading is the M=3-4, sigma at
// the matched value special case of this).
type Grading struct {
	M         float64 // polynomial grading order
	SigmaMax  float64 // peak conductivity at the outer boundary
	KappaMax  float64 // peak real coordinate stretch at the outer boundary
	AlphaMax  float64 // peak CFS alpha, graded the opposite direction from sigma/kappa
	AlphaMax2 float64 // second pole's peak alpha (order-2 only; ignored for order 1)
	Dt        float64 // simulation time step
}

// BuildProfiles constructs a frozen Profile for a slab of normal-axis
// depth n (the slab's cell count along its normal axis). Depth index 0
// is closest to the PML's outer boundary, matching the convention the
// kernels index by.
func BuildProfiles(order Order, n int, g Grading) Profile {
	p := Profile{Order: order}

	rho := mat.NewVecDense(n, nil)
	for q := 0; q < n; q++ {
		// Fractional depth into the layer, 1 at the outer boundary
		// (q=0) grading down to ~0 at the PML's inner edge.
		rho.SetVec(q, float64(n-q)/float64(n))
	}
	rhoM := make([]float64, n)
	for q := 0; q < n; q++ {
		rhoM[q] = math.Pow(rho.AtVec(q), g.M)
	}

	sigma := make([]float64, n)
	kappa := make([]float64, n)
	floats.AddScaled(sigma, g.SigmaMax, rhoM) // sigma = sigmaMax * rho^M
	for q := range kappa {
		kappa[q] = 1 + (g.KappaMax-1)*rhoM[q]
	}

	// alpha grades the opposite way: zero at the outer boundary, peak at
	// the PML's inner edge, which is what keeps a CFS-PML from
	// reflecting low-frequency / evanescent energy.
	innerRho := floats.Span(make([]float64, n), 0, 1)

	p.RA[0], p.RB[0], p.RE[0], p.RF[0] = buildPole(sigma, kappa, scaled(innerRho, g.AlphaMax), g.Dt)

	if order == Order2 {
		alpha2 := g.AlphaMax2
		if alpha2 == 0 {
			alpha2 = g.AlphaMax * 2
		}
		p.RA[1], p.RB[1], p.RE[1], p.RF[1] = buildPole(sigma, kappa, scaled(innerRho, alpha2), g.Dt)
	}

	return p
}

func scaled(rho []float64, peak float64) []float64 {
	out := make([]float64, len(rho))
	copy(out, rho)
	floats.Scale(peak, out)
	return out
}

// buildPole derives one CFS pole's RA/RB/RE/RF arrays from physical
// sigma/kappa/alpha profiles at time step dt, in normalized units
// (epsilon0 = 1). RE is the per-step recursive-convolution decay
// (|RE|<1, so Phi relaxes to zero geometrically once excitation stops —
// testable property P8); RA is the inverse-kappa stretch the field
// update reads directly; RB/RF are the forcing coefficients tying the
// field update to the Phi recursion.
func buildPole(sigma, kappa, alpha []float64, dt float64) (ra, rb, re, rf []float64) {
	n := len(sigma)
	ra = make([]float64, n)
	rb = make([]float64, n)
	re = make([]float64, n)
	rf = make([]float64, n)

	for q := 0; q < n; q++ {
		s, k, a := sigma[q], kappa[q], alpha[q]
		ra[q] = 1 / k

		b := math.Exp(-(s/k + a) * dt)
		re[q] = b

		var coeff float64
		if s > 0 {
			coeff = s * (b - 1) / (k * (s + k*a))
		}
		rb[q] = coeff
		rf[q] = coeff
	}
	return
}

// CollapseOrder1 returns an order-2 Profile whose second pole is a
// no-op for the magnetic recursion (RA[1]=1, RB[1]=0, RE[1]=0,
// RF[1]=0), so an order-2 magnetic kernel run against it reproduces an
// order-1 magnetic kernel run against p exactly, instead of requiring
// a caller to hand-zero the second pole. RA[1]=1 is only an identity
// where the poles compose multiplicatively: the electric recursion
// sums its poles and folds RB into its aggregated Psi term, so no
// second-pole setting collapses it to the order-1 electric law.
func (p Profile) CollapseOrder1() Profile {
	if p.Order != Order1 {
		return p
	}
	n := len(p.RA[0])
	out := Profile{
		Order: Order2,
		RA:    [2][]float64{p.RA[0], ones(n)},
		RB:    [2][]float64{p.RB[0], zeros(n)},
		RE:    [2][]float64{p.RE[0], zeros(n)},
		RF:    [2][]float64{p.RF[0], zeros(n)},
	}
	return out
}

func ones(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 1
	}
	return v
}

func zeros(n int) []float64 { return make([]float64, n) }
