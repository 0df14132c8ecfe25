package calc

import (
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// Func is a function from reals to reals. A function name followed by a term
// applies the function to that term, binding tighter than any binary
// operator: "sin 2^2" is "(sin 2)^2".
type Func func(x float64) float64

var globalfuncs = map[string]Func{
	"sin":   math.Sin,
	"cos":   math.Cos,
	"tan":   math.Tan,
	"asin":  math.Asin,
	"acos":  math.Acos,
	"atan":  math.Atan,
	"sinh":  math.Sinh,
	"cosh":  math.Cosh,
	"tanh":  math.Tanh,
	"asinh": math.Asinh,
	"acosh": math.Acosh,
	"atanh": math.Atanh,

	"log":   math.Log,
	"log10": math.Log10,
	"log2":  math.Log2,
	"exp":   math.Exp,
	"sqr":   func(x float64) float64 { return x * x },
	"sqrt":  math.Sqrt,
	"abs":   math.Abs,
	"sign":  sign,

	"deg":    func(x float64) float64 { return x * 180 / math.Pi },
	"rad":    func(x float64) float64 { return x * math.Pi / 180 },
	"erf":    math.Erf,
	"erfc":   math.Erfc,
	"gamma":  math.Gamma,
	"lgamma": lgamma,

	"ceil":  math.Ceil,
	"floor": math.Floor,
	"trunc": math.Trunc,
	"round": math.Round,
	// int converts toward zero.
	"int": math.Trunc,
}

// sign returns -1, 0, or 1 with the sign of x. Zeros and NaN are returned
// unchanged.
func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return x
	}
}

func lgamma(x float64) float64 {
	r, _ := math.Lgamma(x)
	return r
}

// constPrec is the precision in bits used to compute the default constants
// before rounding them to float64.
const constPrec = 128

var globalconsts = computeConsts()

// computeConsts computes the default constants. ans starts at zero.
func computeConsts() map[string]float64 {
	pi := bigfloat.Pi(new(big.Float).SetPrec(constPrec))
	one := new(big.Float).SetPrec(constPrec).SetInt64(1)
	e := bigfloat.Exp(new(big.Float).SetPrec(constPrec), one)
	tau := new(big.Float).SetPrec(constPrec).Mul(pi, big.NewFloat(2))
	// phi is the reciprocal golden ratio, (sqrt 5 - 1) / 2.
	phi := new(big.Float).SetPrec(constPrec).Sqrt(big.NewFloat(5))
	phi.Sub(phi, one).Quo(phi, big.NewFloat(2))
	f := func(x *big.Float) float64 {
		r, _ := x.Float64()
		return r
	}
	return map[string]float64{
		"pi":  f(pi),
		"e":   f(e),
		"tau": f(tau),
		"phi": f(phi),
		"inf": math.Inf(1),
		"nan": math.NaN(),
		"ans": 0,
	}
}
