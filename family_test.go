package sgd

import (
	"errors"
	"testing"
)

// A deviance test problem
type devtestprob struct {
	title  string
	family *Family
	y      []float64
	mn     []float64
	wt     []float64
	expect float64
}

var devTests []devtestprob = []devtestprob{
	{
		title:  "Gaussian weighted",
		family: NewFamily(GaussianFamily),
		y:      []float64{1, 2},
		mn:     []float64{0, 0},
		wt:     []float64{2, 3},
		expect: 14,
	},
	{
		title:  "Gaussian unit weights",
		family: NewFamily(GaussianFamily),
		y:      []float64{1, 2},
		mn:     []float64{0, 0},
		wt:     nil,
		expect: 5,
	},
	{
		title:  "Poisson zero response keeps only the mean",
		family: NewFamily(PoissonFamily),
		y:      []float64{0},
		mn:     []float64{2},
		wt:     []float64{3},
		expect: 12,
	},
	{
		title:  "Binomial at y=1",
		family: NewFamily(BinomialFamily),
		y:      []float64{1},
		mn:     []float64{0.5},
		wt:     nil,
		expect: 1.3862943611198906, // 2*log(2)
	},
}

func TestDeviance(t *testing.T) {

	for _, dt := range devTests {
		dev := dt.family.Deviance(dt.y, dt.mn, dt.wt)
		if !scalarClose(dev, dt.expect, 1e-10) {
			t.Errorf("%s: deviance %v, expected %v", dt.title, dev, dt.expect)
		}
	}
}

func TestDevianceZeroAtPerfectFit(t *testing.T) {

	perfect := []struct {
		title  string
		family *Family
		y      []float64
	}{
		{"Gaussian", NewFamily(GaussianFamily), []float64{1.5, -2, 0.3}},
		{"Poisson", NewFamily(PoissonFamily), []float64{0, 1, 3}},
		{"Binomial", NewFamily(BinomialFamily), []float64{0, 1, 0.5}},
	}

	for _, pt := range perfect {
		for _, wt := range [][]float64{nil, {1, 2, 0.5}} {
			dev := pt.family.Deviance(pt.y, pt.y, wt)
			if !scalarClose(dev, 0, 1e-12) {
				t.Errorf("%s: deviance at perfect fit is %v, expected 0", pt.title, dev)
			}
		}
	}
}

func TestVariance(t *testing.T) {

	if v := NewFamily(GaussianFamily).Variance(7); v != 1 {
		t.Errorf("Gaussian variance %v, expected 1", v)
	}
	if v := NewFamily(PoissonFamily).Variance(5); v != 5 {
		t.Errorf("Poisson variance %v, expected 5", v)
	}
	if v := NewFamily(BinomialFamily).Variance(0.25); v != 0.1875 {
		t.Errorf("Binomial variance %v, expected 0.1875", v)
	}
}

func TestFamilyByName(t *testing.T) {

	for name, code := range map[string]FamilyType{
		"gaussian": GaussianFamily,
		"poisson":  PoissonFamily,
		"binomial": BinomialFamily,
	} {
		fam, err := FamilyByName(name)
		if err != nil {
			t.Fatal(err)
		}
		if fam.TypeCode != code {
			t.Errorf("%s resolved to %v", name, fam.TypeCode)
		}
	}

	if _, err := FamilyByName("gamma"); !errors.Is(err, ErrUnknownFamily) {
		t.Errorf("unknown family name did not fail: %v", err)
	}
}
