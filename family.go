package sgd

import (
	"fmt"
	"math"
)

// FamilyType is the type of GLM family used for fit diagnostics.
type FamilyType uint8

// GaussianFamily, ... are the supported model families.
const (
	GaussianFamily FamilyType = iota
	PoissonFamily
	BinomialFamily
)

// DevianceFunc evaluates and returns the total deviance for a fitted model.
// The arguments are the observed responses, the fitted mean values, and the
// weights.  The weights may be nil in which case all weights are taken to
// be 1.
type DevianceFunc func(y, mn, wt []float64) float64

// Family represents a generalized linear model family.  Families are used
// for post-hoc fit diagnostics, not inside the update loop.
type Family struct {

	// The name of the family
	Name string

	// The numeric code for the family
	TypeCode FamilyType

	// The GLM variance function, evaluated at a fitted mean
	Variance UniFunc

	// The deviance function for the family
	Deviance DevianceFunc
}

// NewFamily returns the family object corresponding to the given type code.
func NewFamily(fam FamilyType) *Family {

	switch fam {
	case GaussianFamily:
		return &gaussian
	case PoissonFamily:
		return &poisson
	case BinomialFamily:
		return &binomial
	default:
		msg := fmt.Sprintf("Family unknown: %v\n", fam)
		panic(msg)
	}
}

// FamilyByName resolves a model family from its external name, one of
// "gaussian", "poisson", or "binomial".
func FamilyByName(name string) (*Family, error) {

	switch name {
	case "gaussian":
		return &gaussian, nil
	case "poisson":
		return &poisson, nil
	case "binomial":
		return &binomial, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, name)
	}
}

var gaussian = Family{
	Name:     "Gaussian",
	TypeCode: GaussianFamily,
	Variance: gaussianVar,
	Deviance: gaussianDeviance,
}

var poisson = Family{
	Name:     "Poisson",
	TypeCode: PoissonFamily,
	Variance: poissonVar,
	Deviance: poissonDeviance,
}

var binomial = Family{
	Name:     "Binomial",
	TypeCode: BinomialFamily,
	Variance: binomialVar,
	Deviance: binomialDeviance,
}

func gaussianVar(u float64) float64 {
	return 1
}

func poissonVar(u float64) float64 {
	return u
}

func binomialVar(u float64) float64 {
	return u * (1 - u)
}

func gaussianDeviance(y, mn, wt []float64) float64 {

	var dev float64
	var w float64 = 1

	for i := range y {
		if wt != nil {
			w = wt[i]
		}
		r := y[i] - mn[i]
		dev += w * r * r
	}

	return dev
}

func poissonDeviance(y, mn, wt []float64) float64 {

	var dev float64
	var w float64 = 1

	for i := range y {
		if wt != nil {
			w = wt[i]
		}

		// The log term vanishes at y=0, leaving only the mean.
		if y[i] > 0 {
			dev += 2 * w * (y[i]*math.Log(y[i]/mn[i]) - (y[i] - mn[i]))
		} else {
			dev += 2 * w * mn[i]
		}
	}

	return dev
}

func binomialDeviance(y, mn, wt []float64) float64 {

	var dev float64
	var w float64 = 1

	for i := range y {
		if wt != nil {
			w = wt[i]
		}
		dev += 2 * w * (ylogy(y[i], mn[i]) + ylogy(1-y[i], 1-mn[i]))
	}

	return dev
}

// ylogy returns y*log(y/mu), taken to be 0 when y is 0.
func ylogy(y, mu float64) float64 {
	if y == 0 {
		return 0
	}
	return y * math.Log(y/mu)
}
