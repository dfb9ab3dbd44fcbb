// +build ignore

/*
This simulation generates data from a Gaussian linear model and fits it
online with implicit SGD using the identity transfer and the scalar learning
rate schedule.  The final estimate and the deviance of the fitted means are
printed for a range of sample sizes.
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

	rng := rand.NewSource(4523745)
	norm := distuv.Normal{Mu: 0, Sigma: 1, Src: rng}

	p := len(theta)
	x := mat.NewDense(n, p, nil)
	y := make([]float64, n)

	for i := 0; i < n; i++ {
		var mn float64
		for j := 0; j < p; j++ {
			v := norm.Rand()
			x.Set(i, j, v)
			mn += theta[j] * v
		}
		y[i] = mn + norm.Rand()
	}

	ds, err := sgd.NewDataset(x, y)
	if err != nil {
		panic(err)
	}
	return ds
}

func main() {

	theta := []float64{1, -0.5, 0.25}

	for _, n := range []int{500, 2000, 10000} {

		data := simulate(n, theta)

		e, err := sgd.NewExperiment(len(theta), "identity")
		if err != nil {
			panic(err)
		}
		e, err = e.UnidimLearnRate(1, 1, 0.5, 1).Done()
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

		mn := make([]float64, n)
		for i := 0; i < n; i++ {
			pt := data.Row(i)
			var eta float64
			for j, v := range pt.X {
				eta += last.AtVec(j) * v
			}
			mn[i] = eta
		}

		fam, err := sgd.FamilyByName("gaussian")
		if err != nil {
			panic(err)
		}

		fmt.Printf("n=%d\n", n)
		fmt.Printf("estimate: %v\n", mat.Formatted(last.T()))
		fmt.Printf("deviance: %f\n\n", fam.Deviance(data.Y(), mn, nil))
	}
}
