package sgd

import (
	"fmt"

	"github.com/kshedden/dstream/dstream"
	"gonum.org/v1/gonum/mat"
)

// FitStream runs one implicit SGD pass over a chunked data stream.  The
// variable named yname is the response; all other variables are covariates,
// in stream order, and their count must match the experiment dimension.
// Rows are consumed in stream order, so a stream too large to hold in memory
// can be fit directly.
func (e *Experiment) FitStream(ds dstream.Dstream, yname string, theta0 []float64) (*OnlineOutput, error) {

	if !e.done {
		return nil, ErrNotReady
	}

	ypos := -1
	var xpos []int
	for k, na := range ds.Names() {
		if na == yname {
			ypos = k
		} else {
			xpos = append(xpos, k)
		}
	}

	if ypos == -1 {
		return nil, fmt.Errorf("sgd: outcome variable %q not found", yname)
	}
	if len(xpos) != e.p {
		return nil, fmt.Errorf("%w: stream has %d covariates, experiment has %d",
			ErrDimensionMismatch, len(xpos), e.p)
	}
	if len(theta0) != e.p {
		return nil, fmt.Errorf("%w: starting value has length %d, experiment has %d",
			ErrDimensionMismatch, len(theta0), e.p)
	}

	e.rate = e.newRate()

	out := NewOnlineOutput(e.p)
	theta := mat.NewVecDense(e.p, append([]float64(nil), theta0...))

	x := make([]float64, e.p)
	xcols := make([][]float64, e.p)

	var t int
	var err error

	ds.Reset()
	for ds.Next() {

		y := ds.GetPos(ypos).([]float64)
		for j, k := range xpos {
			xcols[j] = ds.GetPos(k).([]float64)
		}

		for i := range y {
			for j := range xcols {
				x[j] = xcols[j][i]
			}
			t++
			theta, err = e.Update(t, DataPoint{X: x, Y: y[i]}, theta, out)
			if err != nil {
				return out, err
			}
		}
	}

	return out, nil
}
