// Package mesh implements the panelized wetted-surface geometry container:
// vertices/faces, per-panel derived quantities (centroid, normal, area),
// watertightness and quality checks, and the parametric primitives used by
// the validation harness. Grounded on original_source/meshes/src/mesh.rs
// and meshes/src/predefined.rs, shaped into the teacher's Go idiom (see
// element.Element for the cached-derived-quantity style this mirrors).
package mesh

import "math"

// Point is a coordinate in body-fixed space, z positive upward, mean free
// surface at z=0.
type Point struct {
	X, Y, Z float64
}

// Vector is a displacement/direction; arithmetically identical to Point but
// kept distinct for readability at call sites.
type Vector struct {
	X, Y, Z float64
}

func (p Point) Sub(q Point) Vector { return Vector{p.X - q.X, p.Y - q.Y, p.Z - q.Z} }

func (p Point) Add(v Vector) Point { return Point{p.X + v.X, p.Y + v.Y, p.Z + v.Z} }

func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s, p.Z * s} }

func (v Vector) Add(w Vector) Vector { return Vector{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }

func (v Vector) Sub(w Vector) Vector { return Vector{v.X - w.X, v.Y - w.Y, v.Z - w.Z} }

func (v Vector) Scale(s float64) Vector { return Vector{v.X * s, v.Y * s, v.Z * s} }

func (v Vector) Dot(w Vector) float64 { return v.X*w.X + v.Y*w.Y + v.Z*w.Z }

func (v Vector) Cross(w Vector) Vector {
	return Vector{
		v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X,
	}
}

func (v Vector) Norm() float64 { return math.Sqrt(v.Dot(v)) }

func (v Vector) Normalize() Vector {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return v.Scale(1 / n)
}

// Distance returns the Euclidean distance between two points.
func Distance(p, q Point) float64 { return p.Sub(q).Norm() }
