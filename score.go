package sgd

// scoreCoeff is the scalar score coefficient of one implicit update: the
// one-dimensional section of the score function along the current covariate
// direction.  With eta the current linear predictor theta'x and normx2 the
// squared norm x'x,
//
//	val(ksi)    = y - h(eta + normx2*ksi)
//	deriv(ksi)  = h'(eta + normx2*ksi) * normx2
//	deriv2(ksi) = h''(eta + normx2*ksi) * normx2^2
//
// where h is the active transfer function.  The struct holds plain copies of
// the step inputs and is rebuilt for every data point, so no reference to
// engine state outlives the solve.
type scoreCoeff struct {
	h      *Transfer
	y      float64
	eta    float64
	normx2 float64
}

func (g scoreCoeff) val(ksi float64) float64 {
	return g.y - g.h.Val(g.eta+g.normx2*ksi)
}

func (g scoreCoeff) deriv(ksi float64) float64 {
	return g.h.Deriv(g.eta+g.normx2*ksi) * g.normx2
}

func (g scoreCoeff) deriv2(ksi float64) float64 {
	return g.h.Deriv2(g.eta+g.normx2*ksi) * g.normx2 * g.normx2
}
