package sgd

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
)

func scalarClose(x, y, eps float64) bool {
	return math.Abs(x-y) <= eps
}

func TestTransferDeriv(t *testing.T) {

	// The exponential grid is bounded to keep the numerical derivative
	// well conditioned.
	grids := []struct {
		name   string
		lo, hi float64
	}{
		{"identity", -10, 10},
		{"exp", -10, 5},
		{"logistic", -10, 10},
	}

	settings := &fd.Settings{Formula: fd.Central}

	for _, g := range grids {

		tr, err := TransferByName(g.name)
		if err != nil {
			t.Fatal(err)
		}

		for u := g.lo; u <= g.hi; u += 0.25 {
			nd := fd.Derivative(tr.Val, u, settings)
			ad := tr.Deriv(u)
			tol := 1e-6 * math.Max(1, math.Abs(ad))
			if !scalarClose(ad, nd, tol) {
				t.Errorf("%s: derivative at %v: analytical %v, numerical %v", g.name, u, ad, nd)
			}
		}
	}
}

func TestLogisticShape(t *testing.T) {

	tr := NewTransfer(LogisticTransfer)

	if tr.Val(0) != 0.5 {
		t.Errorf("logistic(0) = %v, expected 0.5", tr.Val(0))
	}

	last := math.Inf(-1)
	for u := -30.0; u <= 30; u += 0.5 {
		v := tr.Val(u)
		if v <= last {
			t.Errorf("logistic not strictly increasing at %v", u)
		}
		last = v

		if tr.Deriv(u) <= 0 {
			t.Errorf("logistic derivative not positive at %v", u)
		}
	}

	if tr.Deriv(40) > 1e-8 || tr.Deriv(-40) > 1e-8 {
		t.Errorf("logistic derivative does not vanish in the tails")
	}
}

func TestTransferVec(t *testing.T) {

	u := []float64{-2, -0.5, 0, 0.5, 2}

	for _, code := range []TransferType{IdentityTransfer, ExpTransfer, LogisticTransfer} {

		tr := NewTransfer(code)

		v := make([]float64, len(u))
		tr.VecVal(u, v)

		w := make([]float64, len(u))
		for i := range u {
			w[i] = tr.Val(u[i])
		}

		if !floats.EqualApprox(v, w, 1e-15) {
			t.Errorf("%s: vectorized transfer disagrees with scalar: %v vs %v", tr.Name, v, w)
		}
	}
}

func TestTransferByName(t *testing.T) {

	for name, code := range map[string]TransferType{
		"identity": IdentityTransfer,
		"exp":      ExpTransfer,
		"logistic": LogisticTransfer,
	} {
		tr, err := TransferByName(name)
		if err != nil {
			t.Fatal(err)
		}
		if tr.TypeCode != code {
			t.Errorf("%s resolved to %v", name, tr.TypeCode)
		}
	}

	if _, err := TransferByName("probit"); !errors.Is(err, ErrUnknownTransfer) {
		t.Errorf("unknown transfer name did not fail: %v", err)
	}
}
