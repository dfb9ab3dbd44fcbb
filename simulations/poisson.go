// +build ignore

/*
This simulation generates data from a Poisson log-linear model and fits it
online with implicit SGD using the exponential transfer, comparing the scalar
and the adaptive learning rate schedules on the same stream.
*/

package main

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"github.com/Hulalazz/sgd"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

func simulate(n int, theta []float64) *sgd.Dataset {

	rng := rand.NewSource(7423981)
	norm := distuv.Normal{Mu: 0, Sigma: 0.5, Src: rng}

	p := len(theta)
	x := mat.NewDense(n, p, nil)
	y := make([]float64, n)

	for i := 0; i < n; i++ {
		var eta float64
		for j := 0; j < p; j++ {
			v := norm.Rand()
			x.Set(i, j, v)
			eta += theta[j] * v
		}
		pois := distuv.Poisson{Lambda: math.Exp(eta), Src: rng}
		y[i] = pois.Rand()
	}

	ds, err := sgd.NewDataset(x, y)
	if err != nil {
		panic(err)
	}
	return ds
}

func main() {

	theta := []float64{0.8, -0.4}
	data := simulate(5000, theta)

	for _, adaptive := range []bool{false, true} {

		e, err := sgd.NewExperiment(len(theta), "exp")
		if err != nil {
			panic(err)
		}
		if adaptive {
			e = e.PxdimLearnRate()
		} else {
			e = e.UnidimLearnRate(1, 1, 0.6, 0.5)
		}
		e, err = e.Done()
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

		var risk float64
		for j := range theta {
			d := last.AtVec(j) - theta[j]
			risk += d * d
		}

		fmt.Printf("adaptive=%v\n", adaptive)
		fmt.Printf("estimate: %v\n", mat.Formatted(last.T()))
		fmt.Printf("risk: %e\n", risk)
		fmt.Printf("solver warnings: %d\n\n", len(out.Warnings()))
	}
}
