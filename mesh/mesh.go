package mesh

import (
	"fmt"
	"math"
	"sort"

	"github.com/LexxSaa28/wavecore/errs"
)

// WaterlineTolerance is how far above z=0 a panel centroid may sit and
// still be considered immersed (spec.md §3, waterline panels).
const WaterlineTolerance = 1e-6

// Mesh is an immutable container of vertices and faces plus their derived
// panel records, built once via New and never mutated thereafter (spec.md
// §3 lifecycle).
type Mesh struct {
	vertices    []Point
	faces       [][]int
	panels      []*Panel
	watertight  bool
	scale       float64
	totalArea   float64
	closedGuess bool
}

// New builds a Mesh from vertices and faces (each face 3 or 4 vertex
// indices). Normal orientation is validated via the signed enclosed volume;
// if negative, all normals and face windings are flipped (spec.md §4.1).
// Fails with errs.InvalidMesh for out-of-range indices or degenerate panels.
func New(vertices []Point, faces [][]int) (*Mesh, error) {
	if len(vertices) == 0 {
		return nil, errs.New(errs.InvalidMesh, "mesh.New", "mesh must have at least one vertex")
	}
	if len(faces) == 0 {
		return nil, errs.New(errs.InvalidMesh, "mesh.New", "mesh must have at least one face")
	}

	for fi, f := range faces {
		if len(f) != 3 && len(f) != 4 {
			return nil, errs.New(errs.InvalidMesh, "mesh.New",
				fmt.Sprintf("face %d has %d vertices, want 3 or 4", fi, len(f)))
		}
		for _, idx := range f {
			if idx < 0 || idx >= len(vertices) {
				return nil, errs.New(errs.InvalidMesh, "mesh.New",
					fmt.Sprintf("face %d references unknown vertex index %d", fi, idx))
			}
		}
	}

	scale := meshScale(vertices)

	facesCopy := make([][]int, len(faces))
	for i, f := range faces {
		facesCopy[i] = append([]int(nil), f...)
	}

	panels, err := buildPanels(vertices, facesCopy, scale)
	if err != nil {
		return nil, err
	}

	m := &Mesh{
		vertices: append([]Point(nil), vertices...),
		faces:    facesCopy,
		panels:   panels,
		scale:    scale,
	}

	if vol := m.signedVolume(); vol < 0 {
		m.flipAll()
	}

	m.watertight = m.checkWatertight()
	for _, p := range m.panels {
		m.totalArea += p.Area
	}

	return m, nil
}

func meshScale(vertices []Point) float64 {
	if len(vertices) == 0 {
		return 1
	}
	min, max := vertices[0], vertices[0]
	for _, v := range vertices[1:] {
		min.X, max.X = math.Min(min.X, v.X), math.Max(max.X, v.X)
		min.Y, max.Y = math.Min(min.Y, v.Y), math.Max(max.Y, v.Y)
		min.Z, max.Z = math.Min(min.Z, v.Z), math.Max(max.Z, v.Z)
	}
	dx, dy, dz := max.X-min.X, max.Y-min.Y, max.Z-min.Z
	scale := math.Max(dx, math.Max(dy, dz))
	if scale <= 0 {
		return 1
	}
	return scale
}

func buildPanels(vertices []Point, faces [][]int, scale float64) ([]*Panel, error) {
	panels := make([]*Panel, len(faces))
	for i, f := range faces {
		verts := make([]Point, len(f))
		for j, idx := range f {
			verts[j] = vertices[idx]
		}
		p, err := NewPanel(f, verts, scale)
		if err != nil {
			return nil, errs.Wrap(errs.InvalidMesh, "mesh.New", fmt.Errorf("face %d: %w", i, err))
		}
		panels[i] = p
	}
	return panels, nil
}

// signedVolume computes the divergence-theorem enclosed volume
// V = (1/3) Σ c·n̂·A, used only to detect a globally inverted mesh — see
// hydrostatics.Compute for the physical displaced-volume convention.
func (m *Mesh) signedVolume() float64 {
	var vol float64
	for _, p := range m.panels {
		flux := Vector{p.Centroid.X, p.Centroid.Y, p.Centroid.Z}.Dot(p.Normal)
		vol += flux * p.Area
	}
	return vol / 3
}

func (m *Mesh) flipAll() {
	for _, p := range m.panels {
		p.Flip()
	}
}

type edgeKey struct{ a, b int }

func makeEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

func (m *Mesh) checkWatertight() bool {
	counts := make(map[edgeKey]int)
	for _, f := range m.faces {
		n := len(f)
		for i := 0; i < n; i++ {
			counts[makeEdgeKey(f[i], f[(i+1)%n])]++
		}
	}
	for _, c := range counts {
		if c != 2 {
			return false
		}
	}
	return true
}

// RequireWatertight returns errs.InvalidMesh if the mesh is not watertight.
func (m *Mesh) RequireWatertight() error {
	if !m.watertight {
		return errs.New(errs.InvalidMesh, "mesh.RequireWatertight", "mesh is not watertight: an edge is used by other than exactly two faces")
	}
	return nil
}

// Watertight reports whether every edge is shared by exactly two faces.
func (m *Mesh) Watertight() bool { return m.watertight }

// Vertices returns the mesh's vertex list (read-only).
func (m *Mesh) Vertices() []Point { return m.vertices }

// Faces returns the mesh's face index lists (read-only).
func (m *Mesh) Faces() [][]int { return m.faces }

// Panels returns the derived panel records, in face order.
func (m *Mesh) Panels() []*Panel { return m.panels }

// NumPanels returns the panel count N used throughout the BEM kernel.
func (m *Mesh) NumPanels() int { return len(m.panels) }

// TotalArea returns the sum of panel areas.
func (m *Mesh) TotalArea() float64 { return m.totalArea }

// Scale returns the mesh's characteristic bounding-box scale, used to make
// the degenerate-area threshold and other tolerances scale-invariant.
func (m *Mesh) Scale() float64 { return m.scale }

// CheckClosedFluxBalance returns the residual of Σ A_i n̂_i over the mesh,
// which must vanish to within 1e-10·total_area for a closed surface
// (spec.md §8 quantified invariant).
func (m *Mesh) CheckClosedFluxBalance() Vector {
	var sum Vector
	for _, p := range m.panels {
		sum = sum.Add(p.Normal.Scale(p.Area))
	}
	return sum
}

// Transform returns a new Mesh with every vertex mapped through affine,
// leaving this mesh unmodified (spec.md §4.1).
func (m *Mesh) Transform(affine func(Point) Point) (*Mesh, error) {
	newVerts := make([]Point, len(m.vertices))
	for i, v := range m.vertices {
		newVerts[i] = affine(v)
	}
	return New(newVerts, m.faces)
}

// ImmersedPanelIndices returns the indices of panels whose centroid lies at
// or below the free surface (c_z <= WaterlineTolerance), sorted ascending.
func (m *Mesh) ImmersedPanelIndices() []int {
	idx := make([]int, 0, len(m.panels))
	for i, p := range m.panels {
		if p.Centroid.Z <= WaterlineTolerance {
			idx = append(idx, i)
		}
	}
	sort.Ints(idx)
	return idx
}
