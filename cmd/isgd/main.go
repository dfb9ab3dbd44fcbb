/*
Command isgd fits a simulated generalized linear model online with implicit
SGD.  It generates n observations from a model matched to the chosen transfer
function (gaussian for identity, poisson for exp, binomial for logistic),
runs one online fitting pass, and prints the final estimate together with the
deviance of the fitted means.
*/

package main

import (
	"fmt"
	"log"
	"math"
	"os"

	"github.com/pkg/profile"
	"golang.org/x/exp/rand"
	"gopkg.in/urfave/cli.v1"

	"github.com/Hulalazz/sgd"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

func main() {

	app := cli.NewApp()
	app.Name = "isgd"
	app.Usage = "fit a simulated GLM online with implicit SGD"

	app.Flags = []cli.Flag{
		cli.IntFlag{Name: "n", Value: 10000, Usage: "number of observations"},
		cli.IntFlag{Name: "p", Value: 5, Usage: "number of covariates"},
		cli.StringFlag{Name: "transfer", Value: "identity", Usage: "transfer function: identity, exp, or logistic"},
		cli.BoolFlag{Name: "adaptive", Usage: "use the adaptive diagonal learning rate"},
		cli.Float64Flag{Name: "gamma", Value: 1, Usage: "scalar schedule gamma"},
		cli.Float64Flag{Name: "alpha", Value: 1, Usage: "scalar schedule alpha"},
		cli.Float64Flag{Name: "c", Value: 0.5, Usage: "scalar schedule decay exponent"},
		cli.Float64Flag{Name: "scale", Value: 1, Usage: "scalar schedule scale"},
		cli.BoolFlag{Name: "strict", Usage: "treat solver non-convergence as fatal"},
		cli.Uint64Flag{Name: "seed", Value: 42, Usage: "random seed"},
		cli.BoolFlag{Name: "profile", Usage: "write a CPU profile"},
	}

	app.Action = run

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {

	if c.Bool("profile") {
		defer profile.Start(profile.CPUProfile).Stop()
	}

	n := c.Int("n")
	p := c.Int("p")
	name := c.String("transfer")

	transfer, err := sgd.TransferByName(name)
	if err != nil {
		return err
	}

	theta := make([]float64, p)
	for j := range theta {
		theta[j] = 1 / float64(j+1)
		if j%2 == 1 {
			theta[j] = -theta[j]
		}
	}

	data, err := simulate(n, theta, transfer, c.Uint64("seed"))
	if err != nil {
		return err
	}

	e, err := sgd.NewExperiment(p, name)
	if err != nil {
		return err
	}
	if c.Bool("adaptive") {
		e = e.PxdimLearnRate()
	} else {
		e = e.UnidimLearnRate(c.Float64("gamma"), c.Float64("alpha"), c.Float64("c"), c.Float64("scale"))
	}
	e, err = e.Strict(c.Bool("strict")).Log(log.New(os.Stderr, "isgd: ", 0)).Done()
	if err != nil {
		return err
	}

	out, err := e.Fit(data, make([]float64, p))
	if err != nil {
		return err
	}

	last, err := out.LastEstimate()
	if err != nil {
		return err
	}

	fam, err := sgd.FamilyByName(familyFor(name))
	if err != nil {
		return err
	}

	mn := make([]float64, n)
	for i := range mn {
		pt := data.Row(i)
		var eta float64
		for j, v := range pt.X {
			eta += last.AtVec(j) * v
		}
		mn[i] = transfer.Val(eta)
	}

	fmt.Printf("truth:    %v\n", theta)
	fmt.Printf("estimate: %v\n", mat.Formatted(last.T()))
	fmt.Printf("deviance: %f\n", fam.Deviance(data.Y(), mn, nil))
	fmt.Printf("degenerate points: %d, solver warnings: %d\n", out.Degenerate(), len(out.Warnings()))

	return nil
}

func familyFor(transfer string) string {
	switch transfer {
	case "exp":
		return "poisson"
	case "logistic":
		return "binomial"
	default:
		return "gaussian"
	}
}

func simulate(n int, theta []float64, transfer *sgd.Transfer, seed uint64) (*sgd.Dataset, error) {

	rng := rand.NewSource(seed)
	norm := distuv.Normal{Mu: 0, Sigma: 1, Src: rng}

	// Smaller covariates keep exp(eta) in a reasonable range.
	sd := 1.0
	if transfer.TypeCode == sgd.ExpTransfer {
		sd = 0.5
	}

	p := len(theta)
	x := mat.NewDense(n, p, nil)
	y := make([]float64, n)

	for i := 0; i < n; i++ {
		var eta float64
		for j := 0; j < p; j++ {
			v := sd * norm.Rand()
			x.Set(i, j, v)
			eta += theta[j] * v
		}

		switch transfer.TypeCode {
		case sgd.ExpTransfer:
			pois := distuv.Poisson{Lambda: math.Exp(eta), Src: rng}
			y[i] = pois.Rand()
		case sgd.LogisticTransfer:
			bern := distuv.Bernoulli{P: transfer.Val(eta), Src: rng}
			y[i] = bern.Rand()
		default:
			y[i] = eta + norm.Rand()
		}
	}

	return sgd.NewDataset(x, y)
}
