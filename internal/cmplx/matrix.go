// Package cmplx provides the complex dense linear algebra the BEM kernel
// needs that gonum.org/v1/gonum/mat does not: a complex128 dense matrix with
// LU factorization, GMRES, and BiCGSTAB. See DESIGN.md for why this is
// hand-rolled rather than built on a third-party complex solver.
package cmplx

import "fmt"

// Matrix is a row-major dense complex128 matrix.
type Matrix struct {
	rows, cols int
	data       []complex128
}

// NewMatrix allocates an rows x cols matrix. If data is non-nil its length
// must equal rows*cols; it is used directly without copying.
func NewMatrix(rows, cols int, data []complex128) *Matrix {
	if data == nil {
		data = make([]complex128, rows*cols)
	} else if len(data) != rows*cols {
		panic(fmt.Sprintf("cmplx: data length %d does not match dims %dx%d", len(data), rows, cols))
	}
	return &Matrix{rows: rows, cols: cols, data: data}
}

// Identity returns the n x n identity matrix.
func Identity(n int) *Matrix {
	m := NewMatrix(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

func (m *Matrix) Dims() (int, int) { return m.rows, m.cols }
func (m *Matrix) Rows() int        { return m.rows }
func (m *Matrix) Cols() int        { return m.cols }

func (m *Matrix) At(i, j int) complex128 { return m.data[i*m.cols+j] }

func (m *Matrix) Set(i, j int, v complex128) { m.data[i*m.cols+j] = v }

func (m *Matrix) Add(i, j int, v complex128) { m.data[i*m.cols+j] += v }

// Row returns a slice view of row i (len == cols, shares backing storage).
func (m *Matrix) Row(i int) []complex128 {
	return m.data[i*m.cols : (i+1)*m.cols]
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	out := make([]complex128, len(m.data))
	copy(out, m.data)
	return &Matrix{rows: m.rows, cols: m.cols, data: out}
}

// Scale multiplies every entry by alpha and returns m.
func (m *Matrix) Scale(alpha complex128) *Matrix {
	for i := range m.data {
		m.data[i] *= alpha
	}
	return m
}

// AddScaled computes m += alpha*other entrywise and returns m.
func (m *Matrix) AddScaled(alpha complex128, other *Matrix) *Matrix {
	if m.rows != other.rows || m.cols != other.cols {
		panic("cmplx: dimension mismatch in AddScaled")
	}
	for i := range m.data {
		m.data[i] += alpha * other.data[i]
	}
	return m
}

// MulVec computes y = M*x.
func (m *Matrix) MulVec(x []complex128) []complex128 {
	if len(x) != m.cols {
		panic(fmt.Sprintf("cmplx: MulVec dimension mismatch: cols=%d len(x)=%d", m.cols, len(x)))
	}
	y := make([]complex128, m.rows)
	for i := 0; i < m.rows; i++ {
		row := m.Row(i)
		var sum complex128
		for j, v := range row {
			sum += v * x[j]
		}
		y[i] = sum
	}
	return y
}

// VecNorm returns the Euclidean (2-) norm of a complex vector.
func VecNorm(x []complex128) float64 {
	var sumSq float64
	for _, v := range x {
		r, i := real(v), imag(v)
		sumSq += r*r + i*i
	}
	return sqrt(sumSq)
}

// VecDot returns the Hermitian inner product conj(x)·y.
func VecDot(x, y []complex128) complex128 {
	var sum complex128
	for i := range x {
		sum += complexConj(x[i]) * y[i]
	}
	return sum
}

func VecSub(a, b []complex128) []complex128 {
	out := make([]complex128, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}

func VecAddScaled(a []complex128, alpha complex128, b []complex128) []complex128 {
	out := make([]complex128, len(a))
	for i := range a {
		out[i] = a[i] + alpha*b[i]
	}
	return out
}

func VecScale(a []complex128, alpha complex128) []complex128 {
	out := make([]complex128, len(a))
	for i := range a {
		out[i] = alpha * a[i]
	}
	return out
}
