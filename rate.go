package sgd

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// RateFunc produces the p x p learning rate matrix for one update, given the
// current parameter estimate, the current data point, and the step index.
// The matrices are diagonal with non-negative entries for both policies.
type RateFunc func(theta *mat.VecDense, pt DataPoint, t int) *mat.DiagDense

// ScoreFunc evaluates the score function at a parameter value and data point.
type ScoreFunc func(theta *mat.VecDense, pt DataPoint) *mat.VecDense

// UnidimRate returns the one-dimensional (scalar) learning rate schedule
// suggested in Xu's paper: rate = scale * gamma * (1 + alpha*gamma*t)^(-c)
// times the identity matrix.  The schedule carries no per-step state.
func UnidimRate(p int, gamma, alpha, c, scale float64) RateFunc {

	return func(theta *mat.VecDense, pt DataPoint, t int) *mat.DiagDense {
		lr := scale * gamma * math.Pow(1+alpha*gamma*float64(t), -c)
		d := mat.NewDiagDense(p, nil)
		for i := 0; i < p; i++ {
			d.SetDiag(i, lr)
		}
		return d
	}
}

// PxdimRate returns the p-dimensional adaptive schedule.  It accumulates a
// diagonal estimate of the Fisher information, I + sum of diag(g*g'), from
// the scores of the points seen so far, and returns its entrywise inverse.
// Entries with magnitude at most 1e-8 are left uninverted to avoid division
// blow-up.  The accumulator is owned by the returned closure, so each run
// must be given its own RateFunc.
func PxdimRate(p int, score ScoreFunc) RateFunc {

	acc := make([]float64, p)
	one(acc)

	return func(theta *mat.VecDense, pt DataPoint, t int) *mat.DiagDense {
		g := score(theta, pt)
		d := mat.NewDiagDense(p, nil)
		for i := 0; i < p; i++ {
			gi := g.AtVec(i)
			acc[i] += gi * gi
			v := acc[i]
			if math.Abs(v) > 1e-8 {
				v = 1 / v
			}
			d.SetDiag(i, v)
		}
		return d
	}
}

// effectiveStep reduces a learning rate matrix to the scalar step size used
// by the implicit solver: the Rayleigh quotient x'Rx / x'x along the current
// covariate direction.  For the scalar schedule this is exactly the schedule
// value.  normx2 is x'x and must be positive.
func effectiveStep(r *mat.DiagDense, x []float64, normx2 float64) float64 {

	var num float64
	for i, v := range x {
		num += v * v * r.At(i, i)
	}

	return num / normx2
}
