package pml

import "github.com/0x5844/fdtd-pml/field"

// Layout names all six slabs guarding a domain, each with its own depth
// and grading. A nil *Slab marks a face with no PML, e.g. a periodic
// or PEC boundary, which the Step functions skip.
type Layout struct {
	Slabs [6]*Slab
}

// NewLayout builds the six slabs bounding a domain of cell extents
// (nx,ny,nz), each of depth[f] cells deep, order order, spatial steps
// dx/dy/dz, and grading g. A zero entry in depth skips that face
// (Slabs[f] is left nil). Slab bounds span the full domain's
// tangential extent, so slabs of different axes share edge and corner
// cells. That sharing is not double application: each slab corrects
// only the curl terms differenced along its own normal axis, and a
// corner cell genuinely needs the correction from all three axes to
// absorb obliquely incident energy.
func NewLayout(nx, ny, nz int, depth [6]int, order Order, dx, dy, dz float64, g Grading) Layout {
	var l Layout
	dims := [3]float64{dx, dy, dz}

	for f := XMinus; f <= ZPlus; f++ {
		d := depth[f]
		if d <= 0 {
			continue
		}
		bounds := faceBounds(f, nx, ny, nz, d)
		profile := BuildProfiles(order, d, g)
		l.Slabs[f] = NewSlab(f, order, bounds, dims[f.Axis()], profile)
	}
	return l
}

func faceBounds(f Face, nx, ny, nz, depth int) Bounds {
	b := Bounds{XS: 0, XF: nx, YS: 0, YF: ny, ZS: 0, ZF: nz}
	switch f {
	case XMinus:
		b.XF = depth
	case XPlus:
		b.XS = nx - depth
	case YMinus:
		b.YF = depth
	case YPlus:
		b.YS = ny - depth
	case ZMinus:
		b.ZF = depth
	case ZPlus:
		b.ZS = nz - depth
	}
	return b
}

// StepMagnetic runs RunMagnetic against every present slab, reading E
// from st and writing the two tangential H components st owns.
func StepMagnetic(l Layout, workers int, st *field.State) {
	e := ElectricRead{St: st}
	for f := XMinus; f <= ZPlus; f++ {
		slab := l.Slabs[f]
		if slab == nil {
			continue
		}
		axis := f.Axis()
		ha, hb := st.Component(axisComponentH((axis+1)%3)), st.Component(axisComponentH((axis+2)%3))
		RunMagnetic(slab, workers, st.CoeffsH, st.ID, e, ha, hb)
	}
}

// StepElectric runs RunElectric against every present slab, reading H
// from st and writing the two tangential E components st owns.
func StepElectric(l Layout, workers int, st *field.State) {
	h := MagneticRead{St: st}
	for f := XMinus; f <= ZPlus; f++ {
		slab := l.Slabs[f]
		if slab == nil {
			continue
		}
		axis := f.Axis()
		ea, eb := st.Component(axisComponentE((axis+1)%3)), st.Component(axisComponentE((axis+2)%3))
		RunElectric(slab, workers, st.CoeffsE, st.ID, h, ea, eb)
	}
}
