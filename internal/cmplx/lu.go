package cmplx

import (
	"errors"
	"math"
)

// ErrSingular is returned when a direct factorization hits a zero pivot
// under the configured threshold.
var ErrSingular = errors.New("cmplx: singular matrix")

// LU holds a partial-pivoted LU factorization of a square complex matrix,
// reusable across multiple right-hand sides (the teacher's "factorize once,
// solve many" pattern — one factorization per frequency serves the six
// radiation RHSs plus every diffraction direction RHS).
type LU struct {
	n       int
	lu      *Matrix
	piv     []int
	signDet int
}

// PivotThreshold is the minimum pivot magnitude accepted before a
// factorization is declared singular.
const PivotThreshold = 1e-300

// Factorize performs Doolittle LU decomposition with partial pivoting on a
// copy of a. Returns ErrSingular if any pivot falls below PivotThreshold.
func Factorize(a *Matrix) (*LU, error) {
	n, c := a.Dims()
	if n != c {
		panic("cmplx: LU requires a square matrix")
	}
	lu := a.Clone()
	piv := make([]int, n)
	for i := range piv {
		piv[i] = i
	}
	sign := 1

	for k := 0; k < n; k++ {
		// Partial pivoting: find the largest-magnitude entry in column k,
		// rows k..n-1.
		maxMag := cabs(lu.At(k, k))
		maxRow := k
		for i := k + 1; i < n; i++ {
			if mag := cabs(lu.At(i, k)); mag > maxMag {
				maxMag = mag
				maxRow = i
			}
		}
		if maxMag < PivotThreshold {
			return nil, ErrSingular
		}
		if maxRow != k {
			swapRows(lu, k, maxRow)
			piv[k], piv[maxRow] = piv[maxRow], piv[k]
			sign = -sign
		}

		pivot := lu.At(k, k)
		for i := k + 1; i < n; i++ {
			factor := lu.At(i, k) / pivot
			lu.Set(i, k, factor)
			if factor == 0 {
				continue
			}
			rowK := lu.Row(k)
			rowI := lu.Row(i)
			for j := k + 1; j < n; j++ {
				rowI[j] -= factor * rowK[j]
			}
		}
	}

	return &LU{n: n, lu: lu, piv: piv, signDet: sign}, nil
}

// Solve returns x solving the original A*x = b using the cached
// factorization; b is not modified.
func (f *LU) Solve(b []complex128) []complex128 {
	n := f.n
	if len(b) != n {
		panic("cmplx: LU.Solve dimension mismatch")
	}

	// Apply the row permutation to b.
	y := make([]complex128, n)
	for i := 0; i < n; i++ {
		y[i] = b[f.piv[i]]
	}

	// Forward substitution L*y = Pb (L has unit diagonal).
	for i := 0; i < n; i++ {
		row := f.lu.Row(i)
		var sum complex128
		for j := 0; j < i; j++ {
			sum += row[j] * y[j]
		}
		y[i] -= sum
	}

	// Back substitution U*x = y.
	x := make([]complex128, n)
	for i := n - 1; i >= 0; i-- {
		row := f.lu.Row(i)
		var sum complex128
		for j := i + 1; j < n; j++ {
			sum += row[j] * x[j]
		}
		x[i] = (y[i] - sum) / row[i]
	}

	return x
}

// Determinant returns det(A) from the cached factorization.
func (f *LU) Determinant() complex128 {
	det := complex(float64(f.signDet), 0)
	for i := 0; i < f.n; i++ {
		det *= f.lu.At(i, i)
	}
	return det
}

func swapRows(m *Matrix, a, b int) {
	ra := m.Row(a)
	rb := m.Row(b)
	for j := range ra {
		ra[j], rb[j] = rb[j], ra[j]
	}
}

func cabs(v complex128) float64 {
	return math.Hypot(real(v), imag(v))
}
