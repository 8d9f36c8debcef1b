package assembly

import (
	"math"
	"runtime"
)

func defaultThreads() int {
	return runtime.GOMAXPROCS(0)
}

func sqrtFloat(x float64) float64 {
	return math.Sqrt(x)
}

// gaussLegendreNodes returns the standard Gauss-Legendre nodes and weights
// on [-1, 1] for the requested order (spec.md §4.4: adaptive order 3-7).
// Only the orders assembly actually requests are tabulated.
func gaussLegendreNodes(order int) ([]float64, []float64) {
	switch order {
	case 3:
		return []float64{-0.7745966692414834, 0, 0.7745966692414834},
			[]float64{0.5555555555555556, 0.8888888888888888, 0.5555555555555556}
	case 4:
		return []float64{-0.8611363115940526, -0.3399810435848563, 0.3399810435848563, 0.8611363115940526},
			[]float64{0.3478548451374538, 0.6521451548625461, 0.6521451548625461, 0.3478548451374538}
	case 5:
		return []float64{-0.9061798459386640, -0.5384693101056831, 0, 0.5384693101056831, 0.9061798459386640},
			[]float64{0.2369268850561891, 0.4786286704993665, 0.5688888888888889, 0.4786286704993665, 0.2369268850561891}
	case 6:
		return []float64{-0.9324695142031521, -0.6612093864662645, -0.2386191860831969,
				0.2386191860831969, 0.6612093864662645, 0.9324695142031521},
			[]float64{0.1713244923791704, 0.3607615730481386, 0.4679139345726910,
				0.4679139345726910, 0.3607615730481386, 0.1713244923791704}
	case 7:
		return []float64{-0.9491079123427585, -0.7415311855993945, -0.4058451513773972, 0,
				0.4058451513773972, 0.7415311855993945, 0.9491079123427585},
			[]float64{0.1294849661688697, 0.2797053914892766, 0.3818300505051189, 0.4179591836734694,
				0.3818300505051189, 0.2797053914892766, 0.1294849661688697}
	default:
		return gaussLegendreNodes(3)
	}
}
