package cmplx

import "math"

func sqrt(x float64) float64 { return math.Sqrt(x) }

func complexConj(v complex128) complex128 { return complex(real(v), -imag(v)) }
