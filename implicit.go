package sgd

import (
	"fmt"
	"log"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

type rateKind uint8

const (
	noRate rateKind = iota
	unidimRate
	pxdimRate
)

// Experiment is the implicit SGD update engine.  It is configured once with
// a transfer function and a learning rate policy, then driven with one data
// point and step index at a time.  An experiment is strictly sequential;
// independent fitting runs must use independent Experiment values.
type Experiment struct {
	p int

	// The transfer function, resolved from its name at construction.
	transfer *Transfer

	// The learning rate policy and its parameters.
	kind                    rateKind
	gamma, alpha, c, rscale float64
	rate                    RateFunc

	// In strict mode solver non-convergence aborts the run instead of
	// producing a warning.
	strict bool

	// Iteration cap of the implicit solver.
	solverIter int

	// If not nil, write per-step notices here.
	log *log.Logger

	done bool
}

// NewExperiment creates an experiment for a p dimensional parameter using
// the named transfer function, one of "identity", "exp", or "logistic".  A
// learning rate policy must be configured before calling Done.
func NewExperiment(p int, transferName string) (*Experiment, error) {

	if p <= 0 {
		return nil, fmt.Errorf("%w: dimension %d", ErrDimensionMismatch, p)
	}

	transfer, err := TransferByName(transferName)
	if err != nil {
		return nil, err
	}

	return &Experiment{
		p:          p,
		transfer:   transfer,
		solverIter: defaultSolverIter,
	}, nil
}

// UnidimLearnRate configures the scalar learning rate schedule
// scale * gamma * (1 + alpha*gamma*t)^(-c).
func (e *Experiment) UnidimLearnRate(gamma, alpha, c, scale float64) *Experiment {
	e.kind = unidimRate
	e.gamma = gamma
	e.alpha = alpha
	e.c = c
	e.rscale = scale
	return e
}

// PxdimLearnRate configures the adaptive diagonal learning rate driven by
// the accumulated Fisher information of the scores.
func (e *Experiment) PxdimLearnRate() *Experiment {
	e.kind = pxdimRate
	return e
}

// Strict determines how solver non-convergence is handled: a recoverable
// warning (default) or a fatal error for the run.
func (e *Experiment) Strict(strict bool) *Experiment {
	e.strict = strict
	return e
}

// SolverIter sets the iteration cap of the implicit solver.
func (e *Experiment) SolverIter(n int) *Experiment {
	e.solverIter = n
	return e
}

// Log takes a Logger value that will be used to report degenerate inputs and
// solver warnings during fitting.
func (e *Experiment) Log(log *log.Logger) *Experiment {
	e.log = log
	return e
}

// Done completes the configuration of the experiment.  After calling Done
// the experiment can be driven through Update or Fit.
func (e *Experiment) Done() (*Experiment, error) {

	if e.kind == noRate {
		return nil, ErrNoRate
	}

	e.rate = e.newRate()
	e.done = true

	return e, nil
}

// newRate binds the configured learning rate policy.  The adaptive policy
// carries per-run state, so a fresh binding is made at the start of every
// fitting pass.
func (e *Experiment) newRate() RateFunc {
	switch e.kind {
	case unidimRate:
		return UnidimRate(e.p, e.gamma, e.alpha, e.c, e.rscale)
	case pxdimRate:
		return PxdimRate(e.p, e.ScoreFunction)
	}
	return nil
}

// NumParams returns the dimension of the parameter vector.
func (e *Experiment) NumParams() int {
	return e.p
}

// TransferName returns the name of the active transfer function.
func (e *Experiment) TransferName() string {
	return e.transfer.Name
}

// ScoreFunction evaluates the score (y - h(theta'x)) * x at the given
// parameter value and data point.
func (e *Experiment) ScoreFunction(theta *mat.VecDense, pt DataPoint) *mat.VecDense {

	var eta float64
	for i, v := range pt.X {
		eta += theta.AtVec(i) * v
	}
	s := pt.Y - e.transfer.Val(eta)

	g := mat.NewVecDense(len(pt.X), nil)
	for i, v := range pt.X {
		g.SetVec(i, s*v)
	}
	return g
}

// LearningRate returns the learning rate matrix for the given step.  For the
// adaptive policy this advances the per-run Fisher accumulator.
func (e *Experiment) LearningRate(theta *mat.VecDense, pt DataPoint, t int) *mat.DiagDense {
	return e.rate(theta, pt, t)
}

// Update applies one implicit SGD step: with R the learning rate matrix and
// a its scalar reduction along x, it solves
//
//	ksi = a * (y - h(theta'x + x'x*ksi))
//
// for ksi and moves the parameter by (ksi/a) * R * x.  The new estimate is
// appended to out and returned.  Zero-norm covariates leave the parameter
// unchanged.  Any non-finite intermediate is a fatal StepError; solver
// non-convergence is a StepWarning unless the experiment is strict.
func (e *Experiment) Update(t int, pt DataPoint, thetaOld *mat.VecDense, out *OnlineOutput) (*mat.VecDense, error) {

	if !e.done {
		return nil, ErrNotReady
	}
	if len(pt.X) != e.p || thetaOld.Len() != e.p {
		return nil, stepError(t, pt, ErrDimensionMismatch)
	}

	normx2 := floats.Dot(pt.X, pt.X)
	if normx2 == 0 {
		// The implicit equation degenerates: no displacement along x
		// is possible.
		theta := mat.VecDenseCopyOf(thetaOld)
		out.push(rawVec(theta))
		out.degenerate++
		if e.log != nil {
			e.log.Printf("step %d: zero-norm covariate vector, estimate unchanged", t)
		}
		return theta, nil
	}

	r := e.rate(thetaOld, pt, t)
	at := effectiveStep(r, pt.X, normx2)

	var eta float64
	for i, v := range pt.X {
		eta += thetaOld.AtVec(i) * v
	}

	g := scoreCoeff{h: e.transfer, y: pt.Y, eta: eta, normx2: normx2}
	eqn := implicitEqn{at: at, g: g}

	// The root lies between 0 and a*g(0), since h is nondecreasing.
	r0 := at * g.val(0)
	if !isFinite(r0) {
		return nil, stepError(t, pt, ErrNonFinite)
	}

	var ksi float64
	conv := true
	if r0 != 0 {
		lo := math.Min(r0, 0)
		hi := math.Max(r0, 0)
		var err error
		ksi, conv, err = solveImplicit(eqn, 0.5*(lo+hi), lo, hi, e.solverIter)
		if err != nil {
			return nil, stepError(t, pt, err)
		}
	}

	theta := mat.NewVecDense(e.p, nil)
	if at > 0 {
		s := ksi / at
		for i, v := range pt.X {
			w := thetaOld.AtVec(i) + s*r.At(i, i)*v
			if !isFinite(w) {
				return nil, stepError(t, pt, ErrNonFinite)
			}
			theta.SetVec(i, w)
		}
	} else {
		theta.CopyVec(thetaOld)
	}

	if !conv {
		resid, _, _ := eqn.eval(ksi)
		if e.strict {
			return nil, stepError(t, pt, fmt.Errorf("%w: residual %v after %d iterations",
				ErrNoConvergence, resid, e.solverIter))
		}
		out.warnings = append(out.warnings, StepWarning{Step: t, Root: ksi, Residual: resid})
		if e.log != nil {
			e.log.Printf("step %d: solver hit iteration cap, residual %v", t, resid)
		}
	}

	out.push(rawVec(theta))
	return theta, nil
}

// Fit runs one implicit SGD pass over the dataset in row order, starting
// from theta0, and returns the trajectory of estimates.  On a fatal step
// error the trajectory built so far is returned together with the error.
func (e *Experiment) Fit(data *Dataset, theta0 []float64) (*OnlineOutput, error) {

	if !e.done {
		return nil, ErrNotReady
	}
	if data.NumVars() != e.p || len(theta0) != e.p {
		return nil, fmt.Errorf("%w: data has %d covariates, experiment has %d",
			ErrDimensionMismatch, data.NumVars(), e.p)
	}

	// Rebind the rate policy so adaptive state never leaks across runs.
	e.rate = e.newRate()

	out := NewOnlineOutput(e.p)
	theta := mat.NewVecDense(e.p, append([]float64(nil), theta0...))

	var err error
	for i := 0; i < data.NumObs(); i++ {
		theta, err = e.Update(i+1, data.Row(i), theta, out)
		if err != nil {
			return out, err
		}
	}

	return out, nil
}

func rawVec(v *mat.VecDense) []float64 {
	return v.RawVector().Data
}
