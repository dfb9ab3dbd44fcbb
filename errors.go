package sgd

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownTransfer indicates a transfer function name that is not in
	// the catalog.
	ErrUnknownTransfer = errors.New("sgd: unknown transfer function")
	// ErrUnknownFamily indicates a model family name that is not in the
	// catalog.
	ErrUnknownFamily = errors.New("sgd: unknown model family")
	// ErrNoRate indicates that Done was called before a learning rate
	// policy was configured.
	ErrNoRate = errors.New("sgd: no learning rate policy configured")
	// ErrNotReady indicates that the experiment is used for fitting before
	// Done was called.
	ErrNotReady = errors.New("sgd: Done must be called before fitting")
	// ErrNonFinite indicates a non-finite intermediate value in an update.
	ErrNonFinite = errors.New("sgd: non-finite value in implicit update")
	// ErrNoConvergence indicates that the implicit solver exhausted its
	// iteration budget.  It is fatal only in strict mode.
	ErrNoConvergence = errors.New("sgd: implicit solver did not converge")
	// ErrNoEstimates indicates that no update has been applied yet.
	ErrNoEstimates = errors.New("sgd: no estimates have been produced")
	// ErrDimensionMismatch indicates input whose dimension does not match
	// the experiment.
	ErrDimensionMismatch = errors.New("sgd: dimension mismatch")
)

// StepError is a fatal failure of a single update step.  It carries the step
// index and the offending data point so the caller can decide whether to
// retry, skip, or abort the fitting pass.
type StepError struct {
	Step int
	X    []float64
	Y    float64
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (y=%v): %v", e.Step, e.Y, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// StepWarning records a recoverable solver non-convergence.  The best
// available root was applied and the run continued.
type StepWarning struct {

	// The step index at which the solver hit its iteration cap.
	Step int

	// The best root found before the cap.
	Root float64

	// The value of the implicit equation at Root.
	Residual float64
}

func stepError(t int, pt DataPoint, err error) *StepError {
	x := make([]float64, len(pt.X))
	copy(x, pt.X)
	return &StepError{Step: t, X: x, Y: pt.Y, Err: err}
}
