package sgd

import "math"

func one(x []float64) {
	for i := range x {
		x[i] = 1
	}
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
