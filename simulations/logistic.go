// +build ignore

/*
This simulation generates binary data from a logistic regression model and
fits it online with implicit SGD using the adaptive diagonal learning rate.
The binomial deviance of the fitted probabilities is printed alongside the
deviance of the true model for comparison.
*/

package main

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/Hulalazz/sgd"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

func simulate(n int, theta []float64) *sgd.Dataset {

	rng := rand.NewSource(90123751)
	norm := distuv.Normal{Mu: 0, Sigma: 1, Src: rng}

	p := len(theta)
	x := mat.NewDense(n, p, nil)
	y := make([]float64, n)

	logistic, err := sgd.TransferByName("logistic")
	if err != nil {
		panic(err)
	}

	for i := 0; i < n; i++ {
		var eta float64
		for j := 0; j < p; j++ {
			v := norm.Rand()
			x.Set(i, j, v)
			eta += theta[j] * v
		}
		bern := distuv.Bernoulli{P: logistic.Val(eta), Src: rng}
		y[i] = bern.Rand()
	}

	ds, err := sgd.NewDataset(x, y)
	if err != nil {
		panic(err)
	}
	return ds
}

func fitted(theta *mat.VecDense, data *sgd.Dataset) []float64 {

	logistic, err := sgd.TransferByName("logistic")
	if err != nil {
		panic(err)
	}

	mn := make([]float64, data.NumObs())
	for i := range mn {
		pt := data.Row(i)
		var eta float64
		for j, v := range pt.X {
			eta += theta.AtVec(j) * v
		}
		mn[i] = logistic.Val(eta)
	}
	return mn
}

func main() {

	theta := []float64{1.2, -0.7, 0.3}
	data := simulate(8000, theta)

	e, err := sgd.NewExperiment(len(theta), "logistic")
	if err != nil {
		panic(err)
	}
	e, err = e.PxdimLearnRate().Done()
	if err != nil {
		panic(err)
	}

	out, err := e.Fit(data, make([]float64, len(theta)))
	if err != nil {
		panic(err)
	}

	last, err := out.LastEstimate()
	if err != nil {
		panic(err)
	}

	fam, err := sgd.FamilyByName("binomial")
	if err != nil {
		panic(err)
	}

	truth := mat.NewVecDense(len(theta), theta)

	fmt.Printf("estimate: %v\n", mat.Formatted(last.T()))
	fmt.Printf("fitted deviance: %f\n", fam.Deviance(data.Y(), fitted(last, data), nil))
	fmt.Printf("true model deviance: %f\n", fam.Deviance(data.Y(), fitted(truth, data), nil))
}
