package sgd

import (
	"fmt"
	"math"
)

// UniFunc is a scalar function of a scalar argument.
type UniFunc func(float64) float64

// VecFunc is a function with two float64 array arguments.
type VecFunc func([]float64, []float64)

// TransferType is used to specify a transfer function.
type TransferType uint8

// IdentityTransfer, etc. indicate the different transfer functions.
const (
	IdentityTransfer TransferType = iota
	ExpTransfer
	LogisticTransfer
)

// Transfer specifies a transfer function: the map from the linear predictor
// to the conditional mean of the model, together with its first two
// derivatives.  All members are pure numeric functions.
type Transfer struct {
	Name string

	TypeCode TransferType

	// Val calculates the transfer function.
	Val UniFunc

	// Deriv calculates the first derivative of the transfer function.
	Deriv UniFunc

	// Deriv2 calculates the second derivative of the transfer function.
	Deriv2 UniFunc

	// VecVal applies the transfer function elementwise, writing the
	// result to the second argument.
	VecVal VecFunc
}

// NewTransfer returns the transfer function object corresponding to the
// given type code.
func NewTransfer(transfer TransferType) *Transfer {

	switch transfer {
	case IdentityTransfer:
		return &identityTransfer
	case ExpTransfer:
		return &expTransfer
	case LogisticTransfer:
		return &logisticTransfer
	default:
		msg := fmt.Sprintf("Transfer unknown: %v\n", transfer)
		panic(msg)
	}
}

// TransferByName resolves a transfer function from its external name, one of
// "identity", "exp", or "logistic".  Unknown names are a configuration error.
func TransferByName(name string) (*Transfer, error) {

	switch name {
	case "identity":
		return &identityTransfer, nil
	case "exp":
		return &expTransfer, nil
	case "logistic":
		return &logisticTransfer, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransfer, name)
	}
}

var identityTransfer = Transfer{
	Name:     "Identity",
	TypeCode: IdentityTransfer,
	Val:      idVal,
	Deriv:    idDeriv,
	Deriv2:   idDeriv2,
	VecVal:   idVecVal,
}

var expTransfer = Transfer{
	Name:     "Exp",
	TypeCode: ExpTransfer,
	Val:      math.Exp,
	Deriv:    math.Exp,
	Deriv2:   math.Exp,
	VecVal:   expVecVal,
}

var logisticTransfer = Transfer{
	Name:     "Logistic",
	TypeCode: LogisticTransfer,
	Val:      sigmoid,
	Deriv:    sigmoidDeriv,
	Deriv2:   sigmoidDeriv2,
	VecVal:   sigmoidVecVal,
}

func idVal(u float64) float64 {
	return u
}

func idDeriv(u float64) float64 {
	return 1
}

func idDeriv2(u float64) float64 {
	return 0
}

func idVecVal(u []float64, v []float64) {
	copy(v, u)
}

func expVecVal(u []float64, v []float64) {
	for i := range u {
		v[i] = math.Exp(u[i])
	}
}

func sigmoid(u float64) float64 {
	return 1 / (1 + math.Exp(-u))
}

func sigmoidDeriv(u float64) float64 {
	sig := sigmoid(u)
	return sig * (1 - sig)
}

func sigmoidDeriv2(u float64) float64 {
	sig := sigmoid(u)
	return 2*sig*sig*sig - 3*sig*sig + 2*sig
}

func sigmoidVecVal(u []float64, v []float64) {
	for i := range u {
		v[i] = sigmoid(u[i])
	}
}
