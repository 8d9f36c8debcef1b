package mesh

import (
	"fmt"
	"math"

	"github.com/LexxSaa28/wavecore/errs"
)

// DegenerateAreaFactor is ε in "degenerate panels (A < ε·mesh_scale²) are
// rejected" (spec.md §3).
const DegenerateAreaFactor = 1e-10

// CoplanarTolerance bounds how far a quad's vertices may deviate from a
// common plane before being planarized (spec.md §3).
const CoplanarTolerance = 1e-6

// Panel is a face of the discretized wetted surface together with its
// cached derived quantities. Panels are immutable once built by NewPanel.
type Panel struct {
	VertexIndices []int
	Vertices      []Point
	Centroid      Point
	Normal        Vector // unit outward normal, ||Normal|| == 1
	Area          float64
	CharLength    float64 // ℓ = sqrt(area)
}

// NewPanel builds a Panel from 3 (triangle) or 4 (quad) vertices, given in
// consistent winding order. Quads are split into two triangles sharing the
// diagonal (v0,v2); their centroids/areas/normals are combined area-weighted,
// matching spec.md §4.1 ("for quads, the panel is split into two triangles
// and areas/normals combined").
func NewPanel(indices []int, verts []Point, meshScale float64) (*Panel, error) {
	switch len(verts) {
	case 3:
		return newTriPanel(indices, verts, meshScale)
	case 4:
		return newQuadPanel(indices, verts, meshScale)
	default:
		return nil, errs.New(errs.InvalidMesh, "mesh.NewPanel",
			fmt.Sprintf("panel must have 3 or 4 vertices, got %d", len(verts)))
	}
}

type triangleGeom struct {
	centroid Point
	normal   Vector // non-unit, magnitude = 2*area
	area     float64
}

func triangle(v0, v1, v2 Point) triangleGeom {
	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)
	cross := e1.Cross(e2)
	area := 0.5 * cross.Norm()
	centroid := Point{
		X: (v0.X + v1.X + v2.X) / 3,
		Y: (v0.Y + v1.Y + v2.Y) / 3,
		Z: (v0.Z + v1.Z + v2.Z) / 3,
	}
	return triangleGeom{centroid: centroid, normal: cross, area: area}
}

func newTriPanel(indices []int, verts []Point, meshScale float64) (*Panel, error) {
	tri := triangle(verts[0], verts[1], verts[2])
	minArea := DegenerateAreaFactor * meshScale * meshScale
	if tri.area < minArea {
		return nil, errs.New(errs.InvalidMesh, "mesh.NewPanel",
			fmt.Sprintf("degenerate panel: area %.3e below threshold %.3e", tri.area, minArea))
	}
	normal := tri.normal.Normalize()
	return &Panel{
		VertexIndices: append([]int(nil), indices...),
		Vertices:      append([]Point(nil), verts...),
		Centroid:      tri.centroid,
		Normal:        normal,
		Area:          tri.area,
		CharLength:    math.Sqrt(tri.area),
	}, nil
}

func newQuadPanel(indices []int, verts []Point, meshScale float64) (*Panel, error) {
	t1 := triangle(verts[0], verts[1], verts[2])
	t2 := triangle(verts[0], verts[2], verts[3])

	totalArea := t1.area + t2.area
	minArea := DegenerateAreaFactor * meshScale * meshScale
	if totalArea < minArea {
		return nil, errs.New(errs.InvalidMesh, "mesh.NewPanel",
			fmt.Sprintf("degenerate panel: area %.3e below threshold %.3e", totalArea, minArea))
	}

	// Area-weighted centroid and normal (planarizes non-planar quads by
	// construction, per spec.md §4.1).
	centroid := Point{
		X: (t1.centroid.X*t1.area + t2.centroid.X*t2.area) / totalArea,
		Y: (t1.centroid.Y*t1.area + t2.centroid.Y*t2.area) / totalArea,
		Z: (t1.centroid.Z*t1.area + t2.centroid.Z*t2.area) / totalArea,
	}
	combinedNormal := t1.normal.Add(t2.normal).Normalize()

	return &Panel{
		VertexIndices: append([]int(nil), indices...),
		Vertices:      append([]Point(nil), verts...),
		Centroid:      centroid,
		Normal:        combinedNormal,
		Area:          totalArea,
		CharLength:    math.Sqrt(totalArea),
	}, nil
}

// Flip reverses the panel's normal and vertex winding, used when a mesh's
// global orientation must be corrected (spec.md §4.1).
func (p *Panel) Flip() {
	p.Normal = p.Normal.Scale(-1)
	for i, j := 0, len(p.Vertices)-1; i < j; i, j = i+1, j-1 {
		p.Vertices[i], p.Vertices[j] = p.Vertices[j], p.Vertices[i]
		p.VertexIndices[i], p.VertexIndices[j] = p.VertexIndices[j], p.VertexIndices[i]
	}
}
