// Package hydrostatics computes displaced volume, wetted surface, center of
// buoyancy, waterplane properties, and the 6x6 hydrostatic restoring matrix
// from a wetted-surface mesh (spec.md §4.2). It shares the mesh with the
// BEM kernel (§1: "geometrically coupled to the BEM mesh") and its restoring
// matrix feeds directly into rao.Solve.
package hydrostatics

import (
	"github.com/LexxSaa28/wavecore/errs"
	"github.com/LexxSaa28/wavecore/mesh"
	"gonum.org/v1/gonum/mat"
)

// Properties is the output of Compute: displaced volume, wetted surface
// area, center of buoyancy, waterplane geometry, and the restoring matrix
// (spec.md §3, §4.2).
type Properties struct {
	Volume             float64    // V, displaced volume [m^3]
	WettedSurfaceArea  float64    // wetted (submerged) panel area [m^2]
	CenterOfBuoyancy   mesh.Point // r_B
	WaterplaneArea     float64    // A_wp [m^2]
	WaterplaneCentroid struct {
		X, Y float64
	}
	Ixx, Iyy, Ixy float64    // waterplane second moments about body-fixed axes
	GMTransverse  float64    // GM_T
	GML           float64    // GM_L (longitudinal)
	Restoring     *mat.Dense // 6x6 K^H
}

// Compute derives Properties from mesh at rest, given fluid density rho,
// gravity g, and the body's center of gravity (needed for GM and for
// K^H_44/K^H_55, spec.md §4.2). The mesh need not be pre-clipped to the
// waterline: panels straddling z=0 are clipped internally, and panels
// entirely above z=0 are ignored.
func Compute(m *mesh.Mesh, rho, g float64, centerOfGravity mesh.Point) (*Properties, error) {
	if rho <= 0 {
		return nil, errs.New(errs.InvalidInput, "hydrostatics.Compute", "density must be positive")
	}
	if g <= 0 {
		return nil, errs.New(errs.InvalidInput, "hydrostatics.Compute", "gravity must be positive")
	}

	var volume, wettedArea, mx, my, mz float64
	segments := make([]waterlineSegment, 0)

	for _, p := range m.Panels() {
		allBelow, allAbove := classifyPanel(p)
		if allAbove {
			continue // dry panel contributes nothing
		}

		var tris []triangle3
		if allBelow {
			tris = fanTriangulate(p.Vertices)
		} else {
			tris = fanTriangulate(clipToSubmerged(p.Vertices))
			segments = append(segments, waterlineSegmentsOf(p)...)
		}

		for _, tri := range tris {
			accumulateMoments(tri, &volume, &wettedArea, &mx, &my, &mz)
		}
	}

	if volume <= 0 {
		return nil, errs.New(errs.InvalidMesh, "hydrostatics.Compute", "computed non-positive displaced volume; check mesh orientation")
	}

	cob := mesh.Point{X: mx / volume, Y: my / volume, Z: mz / volume}

	wp := computeWaterplane(segments)

	props := &Properties{
		Volume:            volume,
		WettedSurfaceArea: wettedArea,
		CenterOfBuoyancy:  cob,
	}
	props.WaterplaneArea = wp.area
	props.WaterplaneCentroid.X = wp.centroidX
	props.WaterplaneCentroid.Y = wp.centroidY
	props.Ixx = wp.ixx
	props.Iyy = wp.iyy
	props.Ixy = wp.ixy

	props.GMTransverse = cob.Z + props.Ixx/volume - centerOfGravity.Z
	props.GML = cob.Z + props.Iyy/volume - centerOfGravity.Z

	props.Restoring = restoringMatrix(rho, g, volume, cob.Z, centerOfGravity.Z, props.Ixx, props.Iyy, wp.sx, props.WaterplaneArea)

	return props, nil
}

// accumulateMoments adds one submerged triangle's contribution to the
// displaced volume, wetted area, and position moments Mx=∫x dV, My=∫y dV,
// Mz=∫z dV. All three use a divergence-theorem auxiliary field
// (x²/2, y²/2, z²/2 component-wise) whose flux through the hypothetical
// waterplane cap vanishes identically, so the open (uncapped) hull surface
// alone gives the exact enclosed-volume moments (spec.md §4.2).
func accumulateMoments(t triangle3, volume, wettedArea, mx, my, mz *float64) {
	e1 := t.b.Sub(t.a)
	e2 := t.c.Sub(t.a)
	cross := e1.Cross(e2) // = n*2*Area
	area := 0.5 * cross.Norm()
	if area == 0 {
		return
	}
	nA := cross.Scale(0.5) // n*Area

	centroidZ := (t.a.Z + t.b.Z + t.c.Z) / 3
	*volume += nA.Z * centroidZ
	*wettedArea += area

	quadX := t.a.X*t.a.X + t.b.X*t.b.X + t.c.X*t.c.X + t.a.X*t.b.X + t.b.X*t.c.X + t.c.X*t.a.X
	quadY := t.a.Y*t.a.Y + t.b.Y*t.b.Y + t.c.Y*t.c.Y + t.a.Y*t.b.Y + t.b.Y*t.c.Y + t.c.Y*t.a.Y
	quadZ := t.a.Z*t.a.Z + t.b.Z*t.b.Z + t.c.Z*t.c.Z + t.a.Z*t.b.Z + t.b.Z*t.c.Z + t.c.Z*t.a.Z

	*mx += nA.X / 12 * quadX
	*my += nA.Y / 12 * quadY
	*mz += nA.Z / 12 * quadZ
}

// restoringMatrix builds K^H per spec.md §4.2: non-zero entries only in
// {heave, roll, pitch} couplings (indices 2,3,4 with 0-based surge..yaw).
func restoringMatrix(rho, g, volume, zB, zG, ixxWp, iyyWp, sxWp, awp float64) *mat.Dense {
	k := mat.NewDense(6, 6, nil)
	k33 := rho * g * awp
	k44 := rho * g * (ixxWp + volume*zB - volume*zG)
	k55 := rho * g * (iyyWp + volume*zB - volume*zG)
	k35 := -rho * g * sxWp

	k.Set(2, 2, k33)
	k.Set(3, 3, k44)
	k.Set(4, 4, k55)
	k.Set(2, 4, k35)
	k.Set(4, 2, k35)
	return k
}
