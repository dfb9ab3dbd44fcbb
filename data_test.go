package sgd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNewDataset(t *testing.T) {

	x := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 9})

	_, err := NewDataset(x, []float64{1, 2})
	require.ErrorIs(t, err, ErrDimensionMismatch)

	ds, err := NewDataset(x, []float64{1, 2, 3})
	require.NoError(t, err)

	assert.Equal(t, 3, ds.NumObs())
	assert.Equal(t, 2, ds.NumVars())

	pt := ds.Row(1)
	assert.Equal(t, []float64{3, 4}, pt.X)
	assert.Equal(t, 2.0, pt.Y)
}

func TestDatasetCovariance(t *testing.T) {

	x := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 9})
	ds, err := NewDataset(x, []float64{0, 0, 0})
	require.NoError(t, err)

	cov := ds.Covariance()

	// Column means are (3, 5); sample covariance with divisor n-1.
	assert.InDelta(t, 4, cov.At(0, 0), 1e-12)
	assert.InDelta(t, 13, cov.At(1, 1), 1e-12)
	assert.InDelta(t, 7, cov.At(0, 1), 1e-12)
	assert.InDelta(t, 7, cov.At(1, 0), 1e-12)
}

func TestOnlineOutput(t *testing.T) {

	out := NewOnlineOutput(2)

	_, err := out.LastEstimate()
	require.ErrorIs(t, err, ErrNoEstimates)
	assert.Nil(t, out.Estimates())

	out.push([]float64{1, 2})
	out.push([]float64{3, 4})

	assert.Equal(t, 2, out.NumSteps())
	assert.Equal(t, []float64{1, 2}, out.Estimate(0))

	last, err := out.LastEstimate()
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4}, rawVec(last))

	est := out.Estimates()
	nr, nc := est.Dims()
	assert.Equal(t, 2, nr)
	assert.Equal(t, 2, nc)
	assert.Equal(t, 3.0, est.At(0, 1))
	assert.Equal(t, 2.0, est.At(1, 0))
}
