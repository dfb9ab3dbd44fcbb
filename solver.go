package sgd

import (
	"fmt"
	"math"
)

// defaultSolverIter is the default iteration cap of the implicit solver.
const defaultSolverIter = 100

// solverGuardBits is the number of trailing mantissa bits not required to
// agree for convergence, following the Boost convention of requesting
// slightly fewer digits than machine precision.
const solverGuardBits = 40

// implicitEqn is the implicit update equation solved at each step,
//
//	f(u)   = u - a*g(u)
//	f'(u)  = 1 + a*g.deriv(u)
//	f''(u) = a*g.deriv2(u)
//
// where a is the scalar effective step size and g the score coefficient.
// Note that g.deriv is the (positive) magnitude of dg/du, which is why f'
// carries a plus sign.
type implicitEqn struct {
	at float64
	g  scoreCoeff
}

func (f implicitEqn) eval(u float64) (v, d1, d2 float64) {
	v = u - f.at*f.g.val(u)
	d1 = 1 + f.at*f.g.deriv(u)
	d2 = f.at * f.g.deriv2(u)
	return v, d1, d2
}

// solveImplicit finds the root of f inside [lo, hi] starting from guess,
// using Halley iteration with a Newton fallback and step clamping to the
// bracket.  It terminates after at most maxIter iterations and reports
// whether the tolerance was met; on cap exhaustion the best iterate so far is
// returned with converged false.  A non-finite intermediate aborts the solve.
func solveImplicit(f implicitEqn, guess, lo, hi float64, maxIter int) (root float64, converged bool, err error) {

	u := guess

	for iter := 0; iter < maxIter; iter++ {

		v, d1, d2 := f.eval(u)
		if !isFinite(v) || !isFinite(d1) || !isFinite(d2) {
			return u, false, fmt.Errorf("%w: f(%v) = (%v, %v, %v)", ErrNonFinite, u, v, d1, d2)
		}

		if v == 0 {
			return u, true, nil
		}
		if d1 == 0 {
			// Cannot happen for a monotone transfer with a >= 0,
			// where f' = 1 + a*|g'| >= 1.
			return u, false, fmt.Errorf("%w: zero derivative at %v", ErrNonFinite, u)
		}

		step := v / d1
		if den := 2*d1*d1 - v*d2; den != 0 {
			h := 2 * v * d1 / den
			// Use the Halley step only when it agrees in direction
			// with the Newton step.
			if isFinite(h) && h*step > 0 {
				step = h
			}
		}

		un := u - step
		if un < lo {
			un = 0.5 * (u + lo)
		} else if un > hi {
			un = 0.5 * (u + hi)
		}

		if math.Abs(un-u) <= math.Ldexp(math.Max(1, math.Abs(un)), -solverGuardBits) {
			return un, true, nil
		}
		u = un
	}

	return u, false, nil
}
