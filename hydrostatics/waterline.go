package hydrostatics

import "github.com/LexxSaa28/wavecore/mesh"

// waterlineSegment is a single oriented crossing of a panel's boundary with
// the z=0 plane, projected to the xy plane. A closed immersed hull produces
// a set of such segments whose endpoints chain into the waterplane
// boundary; Green's theorem lets us sum their contributions directly
// without ever assembling that chain into an explicit ordered polygon.
type waterlineSegment struct {
	x1, y1, x2, y2 float64
}

// panelWaterlineTolerance separates "fully below/above" from "crossing"
// classification, matching mesh.WaterlineTolerance's role for panel
// centroids but applied per vertex here.
const panelWaterlineTolerance = 1e-9

// classifyPanel reports which vertices of p sit below (or on) z=0.
func classifyPanel(p *mesh.Panel) (allBelow, allAbove bool) {
	allBelow, allAbove = true, true
	for _, v := range p.Vertices {
		if v.Z > panelWaterlineTolerance {
			allBelow = false
		}
		if v.Z < -panelWaterlineTolerance {
			allAbove = false
		}
	}
	return allBelow, allAbove
}

// clipToSubmerged returns the polygon formed by intersecting p's boundary
// with the half-space z<=0 (Sutherland-Hodgman clip against the single
// z=0 plane), used for panels that straddle the free surface (spec.md
// §4.2: "handling submerged/above/crossing panels via z=0 clipping").
func clipToSubmerged(vertices []mesh.Point) []mesh.Point {
	n := len(vertices)
	out := make([]mesh.Point, 0, n+1)
	for i := 0; i < n; i++ {
		cur := vertices[i]
		prev := vertices[(i+n-1)%n]
		curIn := cur.Z <= 0
		prevIn := prev.Z <= 0
		if curIn {
			if !prevIn {
				out = append(out, planeIntersect(prev, cur))
			}
			out = append(out, cur)
		} else if prevIn {
			out = append(out, planeIntersect(prev, cur))
		}
	}
	return out
}

func planeIntersect(a, b mesh.Point) mesh.Point {
	t := a.Z / (a.Z - b.Z)
	return mesh.Point{
		X: a.X + t*(b.X-a.X),
		Y: a.Y + t*(b.Y-a.Y),
		Z: 0,
	}
}

// triangle groups three points of a fan-triangulated polygon.
type triangle3 struct {
	a, b, c mesh.Point
}

// fanTriangulate decomposes a planar (or near-planar) polygon into a
// triangle fan from its first vertex, the same decomposition
// mesh.NewPanel uses for quads (v0,v1,v2)+(v0,v2,v3).
func fanTriangulate(poly []mesh.Point) []triangle3 {
	if len(poly) < 3 {
		return nil
	}
	tris := make([]triangle3, 0, len(poly)-2)
	for i := 1; i < len(poly)-1; i++ {
		tris = append(tris, triangle3{poly[0], poly[i], poly[i+1]})
	}
	return tris
}

// waterlineSegmentsOf returns the (at most one, generically) segment where
// panel p's boundary crosses z=0, oriented by the panel's own vertex
// winding order so that Green's-theorem sums over all panels are
// consistently oriented.
func waterlineSegmentsOf(p *mesh.Panel) []waterlineSegment {
	n := len(p.Vertices)
	var crossings []mesh.Point
	for i := 0; i < n; i++ {
		a := p.Vertices[i]
		b := p.Vertices[(i+1)%n]
		if (a.Z <= 0) == (b.Z <= 0) {
			continue // both same side, no crossing on this edge
		}
		crossings = append(crossings, planeIntersect(a, b))
	}
	if len(crossings) != 2 {
		return nil
	}
	return []waterlineSegment{{crossings[0].X, crossings[0].Y, crossings[1].X, crossings[1].Y}}
}

type waterplaneResult struct {
	area                 float64
	centroidX, centroidY float64
	ixx, iyy, ixy        float64
	sx                   float64 // first moment about y-axis, ∬ x dA
}

// computeWaterplane derives waterplane area, centroid, second moments about
// the body-fixed x/y axes, and the first moment Sx used by the heave-pitch
// restoring coupling, from the chain of waterline segments via Green's
// theorem (spec.md §4.2: "waterplane area/second moments via z=0 polygon
// clipping"). The sign of the raw line-integral sum depends on an
// orientation convention that is not pinned down by panel winding alone;
// the result is normalized to a positive area.
func computeWaterplane(segments []waterlineSegment) waterplaneResult {
	if len(segments) == 0 {
		return waterplaneResult{}
	}

	var rawArea, mx, my, ixx, iyy, ixy float64
	for _, s := range segments {
		cross := s.x1*s.y2 - s.x2*s.y1
		rawArea += cross
		mx += (s.x1 + s.x2) * cross
		my += (s.y1 + s.y2) * cross
		ixx += (s.y1*s.y1 + s.y1*s.y2 + s.y2*s.y2) * cross
		iyy += (s.x1*s.x1 + s.x1*s.x2 + s.x2*s.x2) * cross
		ixy += (s.x1*s.y2 + 2*s.x1*s.y1 + 2*s.x2*s.y2 + s.x2*s.y1) * cross
	}

	orient := 1.0
	if rawArea < 0 {
		orient = -1.0
	}

	area := orient * rawArea / 2
	if area == 0 {
		return waterplaneResult{}
	}

	return waterplaneResult{
		area:      area,
		centroidX: orient * mx / (6 * area),
		centroidY: orient * my / (6 * area),
		ixx:       orient * ixx / 12,
		iyy:       orient * iyy / 12,
		ixy:       orient * ixy / 24,
		sx:        orient * mx / 6, // Sx = ∬x dA = Cx·A = mx/6
	}
}
