package mesh

import "math"

// Sphere builds a UV-sphere mesh of the given radius with numPhi azimuthal
// and numTheta polar divisions, used for analytic self-tests (spec.md
// §4.8, §4.1). Grounded on original_source/meshes/src/predefined.rs.
func Sphere(radius float64, numPhi, numTheta int) (*Mesh, error) {
	vertices := make([]Point, 0, (numPhi+1)*(numTheta+1))
	for i := 0; i <= numPhi; i++ {
		phi := 2 * math.Pi * float64(i) / float64(numPhi)
		for j := 0; j <= numTheta; j++ {
			theta := math.Pi * float64(j) / float64(numTheta)
			x := radius * math.Sin(theta) * math.Cos(phi)
			y := radius * math.Sin(theta) * math.Sin(phi)
			z := radius * math.Cos(theta)
			vertices = append(vertices, Point{x, y, z})
		}
	}

	faces := make([][]int, 0, 2*numPhi*numTheta)
	stride := numTheta + 1
	// idx maps the seam column i=numPhi onto i=0 and both poles onto a
	// single vertex each, so faces share vertices across the seam and at
	// the poles and the mesh closes.
	idx := func(i, j int) int {
		i %= numPhi
		if j == 0 || j == numTheta {
			i = 0
		}
		return i*stride + j
	}
	for i := 0; i < numPhi; i++ {
		for j := 0; j < numTheta; j++ {
			v0, v1, v2, v3 := idx(i, j), idx(i+1, j), idx(i+1, j+1), idx(i, j+1)
			if j > 0 {
				faces = append(faces, []int{v0, v1, v2})
			}
			if j < numTheta-1 {
				faces = append(faces, []int{v0, v2, v3})
			}
		}
	}

	return New(vertices, faces)
}

// Cylinder builds a vertical circular-cylinder mesh (axis along z), capped
// top and bottom, with numTheta divisions around the circumference and
// numZ divisions along the axis.
func Cylinder(radius, height float64, numTheta, numZ int, zBottom float64) (*Mesh, error) {
	vertices := make([]Point, 0, (numZ+1)*numTheta+2)
	for k := 0; k <= numZ; k++ {
		z := zBottom + height*float64(k)/float64(numZ)
		for j := 0; j < numTheta; j++ {
			theta := 2 * math.Pi * float64(j) / float64(numTheta)
			vertices = append(vertices, Point{radius * math.Cos(theta), radius * math.Sin(theta), z})
		}
	}
	bottomCenterIdx := len(vertices)
	vertices = append(vertices, Point{0, 0, zBottom})
	topCenterIdx := len(vertices)
	vertices = append(vertices, Point{0, 0, zBottom + height})

	faces := make([][]int, 0)
	for k := 0; k < numZ; k++ {
		for j := 0; j < numTheta; j++ {
			jn := (j + 1) % numTheta
			v0 := k*numTheta + j
			v1 := k*numTheta + jn
			v2 := (k+1)*numTheta + jn
			v3 := (k+1)*numTheta + j
			faces = append(faces, []int{v0, v1, v2, v3})
		}
	}
	for j := 0; j < numTheta; j++ {
		jn := (j + 1) % numTheta
		faces = append(faces, []int{bottomCenterIdx, jn, j})
		topRow := numZ * numTheta
		faces = append(faces, []int{topCenterIdx, topRow + j, topRow + jn})
	}

	return New(vertices, faces)
}

// Hemisphere builds the open, cap-free lower half (z <= 0) of a UV-sphere
// of the given radius: the wetted surface of a sphere floating with its
// equator at the free surface, used for the heaving-sphere validation
// scenario (spec.md §4.8, §8 scenario 1-2). The waterplane disk at z=0 is
// deliberately omitted rather than capped: on that plane the outward
// normal is (0,0,1), so r·n̂ = z = 0 pointwise and the disk contributes no
// flux to New's orientation check regardless of its shape, exactly the
// argument hydrostatics.accumulateMoments's doc comment makes for leaving
// the hull's own waterplane cap out of its volume integral. Grounded on
// Sphere's parametrization above, restricted to the lower polar range.
func Hemisphere(radius float64, numPhi, numTheta int) (*Mesh, error) {
	vertices := make([]Point, 0, (numPhi+1)*(numTheta+1))
	for i := 0; i <= numPhi; i++ {
		phi := 2 * math.Pi * float64(i) / float64(numPhi)
		for j := 0; j <= numTheta; j++ {
			theta := math.Pi/2 + math.Pi/2*float64(j)/float64(numTheta)
			x := radius * math.Sin(theta) * math.Cos(phi)
			y := radius * math.Sin(theta) * math.Sin(phi)
			z := radius * math.Cos(theta)
			vertices = append(vertices, Point{x, y, z})
		}
	}

	faces := make([][]int, 0, 2*numPhi*numTheta)
	stride := numTheta + 1
	// idx maps the seam column i=numPhi onto i=0 and the south pole onto a
	// single vertex, as in Sphere; the equator row stays an open edge.
	idx := func(i, j int) int {
		i %= numPhi
		if j == numTheta {
			i = 0
		}
		return i*stride + j
	}
	for i := 0; i < numPhi; i++ {
		for j := 0; j < numTheta; j++ {
			v0, v1, v2, v3 := idx(i, j), idx(i+1, j), idx(i+1, j+1), idx(i, j+1)
			faces = append(faces, []int{v0, v1, v2})
			if j < numTheta-1 {
				faces = append(faces, []int{v0, v2, v3})
			}
		}
	}

	return New(vertices, faces)
}

// Wigley builds the open, cap-free wetted hull surface of a Wigley
// parabolic hull of the given length, beam, and draft, used for the
// reference-table validation scenarios (spec.md §4.8, §8 scenario 4-5).
// The classical Wigley half-breadth formula
// y(x,z) = (B/2)(1-(2x/L)^2)(1-(z/T)^2), x in [-L/2,L/2], z in [-T,0], is
// mirrored port/starboard; it vanishes identically at the bow/stern
// (x=±L/2) and at the keel (z=-T), so those edges close to a knife edge
// without extra panels, and the waterplane at z=0 is left open for the
// same zero-flux reason Hemisphere is. Grounded on
// original_source/validation/src/wigley.rs's WigleyConfig
// (length/beam/draft), which stubbed the geometry entirely; this supplies
// the actual parametric surface that source never implemented.
func Wigley(length, beam, draft float64, numX, numZ int) (*Mesh, error) {
	halfBreadth := func(x, z float64) float64 {
		xi := 2 * x / length
		zeta := z / draft
		return (beam / 2) * (1 - xi*xi) * (1 - zeta*zeta)
	}

	nx, nz := numX+1, numZ+1
	starboard := make([]Point, 0, nx*nz)
	port := make([]Point, 0, nx*nz)
	for i := 0; i < nx; i++ {
		x := -length/2 + length*float64(i)/float64(numX)
		for j := 0; j < nz; j++ {
			z := -draft + draft*float64(j)/float64(numZ)
			y := halfBreadth(x, z)
			starboard = append(starboard, Point{x, y, z})
			port = append(port, Point{x, -y, z})
		}
	}

	vertices := make([]Point, 0, 2*nx*nz)
	vertices = append(vertices, starboard...)
	vertices = append(vertices, port...)
	portOffset := len(starboard)

	faces := make([][]int, 0, 2*2*numX*numZ)
	for i := 0; i < numX; i++ {
		for j := 0; j < numZ; j++ {
			v0 := i*nz + j
			v1 := (i+1)*nz + j
			v2 := (i+1)*nz + j + 1
			v3 := i*nz + j + 1
			faces = append(faces, []int{v0, v1, v2, v3})
			faces = append(faces, []int{portOffset + v0, portOffset + v3, portOffset + v2, portOffset + v1})
		}
	}

	return New(vertices, faces)
}

// Box builds a rectangular-prism mesh with axis-aligned faces spanning
// [-lx/2, lx/2] x [-ly/2, ly/2] x [zBottom, zBottom+lz], used for the
// hydrostatics self-test scenario in spec.md §8 scenario 3.
func Box(lx, ly, lz, zBottom float64) (*Mesh, error) {
	hx, hy := lx/2, ly/2
	zTop := zBottom + lz
	vertices := []Point{
		{-hx, -hy, zBottom}, {hx, -hy, zBottom}, {hx, hy, zBottom}, {-hx, hy, zBottom}, // 0-3 bottom
		{-hx, -hy, zTop}, {hx, -hy, zTop}, {hx, hy, zTop}, {-hx, hy, zTop}, // 4-7 top
	}
	faces := [][]int{
		{0, 3, 2, 1}, // bottom, outward normal -z
		{4, 5, 6, 7}, // top, outward normal +z
		{0, 1, 5, 4}, // y=-hy face, outward normal -y
		{1, 2, 6, 5}, // x=+hx face, outward normal +x
		{2, 3, 7, 6}, // y=+hy face, outward normal +y
		{3, 0, 4, 7}, // x=-hx face, outward normal -x
	}
	return New(vertices, faces)
}
