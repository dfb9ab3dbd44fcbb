package sgd

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// DataPoint is a single observation: a covariate row vector and a scalar
// response.  Values are not modified by the engine.
type DataPoint struct {
	X []float64
	Y float64
}

// Dataset pairs an n x p covariate matrix with a length n response vector.
// The engine borrows the dataset for the duration of a fitting pass and never
// modifies it.
type Dataset struct {
	x *mat.Dense
	y []float64
}

// NewDataset returns a dataset for the given covariate matrix and response
// vector.  The number of rows of x must equal the length of y.
func NewDataset(x *mat.Dense, y []float64) (*Dataset, error) {
	n, _ := x.Dims()
	if n != len(y) {
		return nil, fmt.Errorf("%w: %d covariate rows, %d responses", ErrDimensionMismatch, n, len(y))
	}
	return &Dataset{x: x, y: y}, nil
}

// NumObs returns the number of observations in the dataset.
func (ds *Dataset) NumObs() int {
	n, _ := ds.x.Dims()
	return n
}

// NumVars returns the number of covariates.
func (ds *Dataset) NumVars() int {
	_, p := ds.x.Dims()
	return p
}

// X returns the covariate matrix.
func (ds *Dataset) X() *mat.Dense {
	return ds.x
}

// Y returns the response vector.
func (ds *Dataset) Y() []float64 {
	return ds.y
}

// Row returns observation i as a DataPoint.  The covariate slice is a view
// into the dataset, not a copy.
func (ds *Dataset) Row(i int) DataPoint {
	return DataPoint{X: ds.x.RawRowView(i), Y: ds.y[i]}
}

// Covariance returns the p x p sample covariance matrix of the covariates.
func (ds *Dataset) Covariance() *mat.SymDense {
	_, p := ds.x.Dims()
	cov := mat.NewSymDense(p, nil)
	stat.CovarianceMatrix(cov, ds.x, nil)
	return cov
}

// OnlineOutput holds the trajectory of parameter estimates produced by an
// implicit SGD run, one column per processed observation, together with the
// per-step diagnostics of the run.
type OnlineOutput struct {
	p    int
	cols [][]float64

	warnings   []StepWarning
	degenerate int
}

// NewOnlineOutput returns an empty trajectory for a p dimensional parameter.
func NewOnlineOutput(p int) *OnlineOutput {
	return &OnlineOutput{p: p}
}

func (out *OnlineOutput) push(theta []float64) {
	col := make([]float64, len(theta))
	copy(col, theta)
	out.cols = append(out.cols, col)
}

// NumSteps returns the number of updates applied so far.
func (out *OnlineOutput) NumSteps() int {
	return len(out.cols)
}

// Estimate returns the parameter estimate after update t (0-based).
func (out *OnlineOutput) Estimate(t int) []float64 {
	return out.cols[t]
}

// LastEstimate returns the most recent parameter estimate.  It fails if no
// update has been applied yet.
func (out *OnlineOutput) LastEstimate() (*mat.VecDense, error) {
	if len(out.cols) == 0 {
		return nil, ErrNoEstimates
	}
	last := out.cols[len(out.cols)-1]
	v := mat.NewVecDense(out.p, nil)
	for i := 0; i < out.p; i++ {
		v.SetVec(i, last[i])
	}
	return v, nil
}

// Estimates returns the full trajectory as a p x n matrix, where column t is
// the parameter estimate after processing the t-th observation.
func (out *OnlineOutput) Estimates() *mat.Dense {
	n := len(out.cols)
	if n == 0 {
		return nil
	}
	m := mat.NewDense(out.p, n, nil)
	for t, col := range out.cols {
		for i := 0; i < out.p; i++ {
			m.Set(i, t, col[i])
		}
	}
	return m
}

// Warnings returns the recoverable solver warnings recorded during the run.
func (out *OnlineOutput) Warnings() []StepWarning {
	return out.warnings
}

// Degenerate returns the number of zero-norm covariate vectors encountered.
// Such points leave the parameter unchanged.
func (out *OnlineOutput) Degenerate() int {
	return out.degenerate
}
