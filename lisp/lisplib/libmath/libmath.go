// Package libmath provides trigonometric and other floating point functions.
// Angles are in radians.
package libmath

import (
	"math"

	"github.com/opensdraw/lcad/lisp"
)

// LoadPackage adds the math functions and constants to reg.
func LoadPackage(reg *lisp.Registry) error {
	reg.DefineConstant("pi", lisp.Float(math.Pi))
	reg.DefineConstant("e", lisp.Float(math.E))
	reg.DefineConstant("inf", lisp.Float(math.Inf(1)))
	for name, fn := range unary {
		reg.DefineBuiltin(name, lisp.Fixed(1), unaryBuiltin(name, fn))
	}
	reg.DefineBuiltin("atan2", lisp.Fixed(2), binaryBuiltin("atan2", math.Atan2))
	reg.DefineBuiltin("pow", lisp.Fixed(2), builtinPow)
	reg.DefineBuiltin("log", lisp.Range(1, 2), builtinLog)
	reg.DefineBuiltin("floor", lisp.Fixed(1), rounding("floor", math.Floor))
	reg.DefineBuiltin("ceil", lisp.Fixed(1), rounding("ceil", math.Ceil))
	reg.DefineBuiltin("round", lisp.Fixed(1), rounding("round", math.Round))
	return nil
}

var unary = map[string]func(float64) float64{
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
	"asin": math.Asin,
	"acos": math.Acos,
	"atan": math.Atan,
	"sqrt": math.Sqrt,
	"exp":  math.Exp,
}

func number(name string, v lisp.Value) (float64, error) {
	x, ok := lisp.ToFloat(v)
	if !ok {
		return 0, lisp.Errorf(lisp.TypeError, "%s: argument is not a number: %v", name, v)
	}
	return x, nil
}

func unaryBuiltin(name string, fn func(float64) float64) lisp.BuiltinFunc {
	return func(rt *lisp.Runtime, args []lisp.Value, kw map[string]lisp.Value) (lisp.Value, error) {
		x, err := number(name, args[0])
		if err != nil {
			return nil, err
		}
		return lisp.Float(fn(x)), nil
	}
}

func binaryBuiltin(name string, fn func(float64, float64) float64) lisp.BuiltinFunc {
	return func(rt *lisp.Runtime, args []lisp.Value, kw map[string]lisp.Value) (lisp.Value, error) {
		x, err := number(name, args[0])
		if err != nil {
			return nil, err
		}
		y, err := number(name, args[1])
		if err != nil {
			return nil, err
		}
		return lisp.Float(fn(x, y)), nil
	}
}

// rounding returns an integer result for finite arguments.
func rounding(name string, fn func(float64) float64) lisp.BuiltinFunc {
	return func(rt *lisp.Runtime, args []lisp.Value, kw map[string]lisp.Value) (lisp.Value, error) {
		if x, ok := args[0].(lisp.Int); ok {
			return x, nil
		}
		x, err := number(name, args[0])
		if err != nil {
			return nil, err
		}
		r := fn(x)
		if math.IsInf(r, 0) || math.IsNaN(r) || math.Abs(r) > math.MaxInt64/2 {
			return lisp.Float(r), nil
		}
		return lisp.Int(r), nil
	}
}

// builtinPow keeps integer results for integer bases and non-negative
// integer exponents.
func builtinPow(rt *lisp.Runtime, args []lisp.Value, kw map[string]lisp.Value) (lisp.Value, error) {
	b, bint := args[0].(lisp.Int)
	n, nint := args[1].(lisp.Int)
	if bint && nint && n >= 0 {
		z := lisp.Int(1)
		for i := lisp.Int(0); i < n; i++ {
			z *= b
		}
		return z, nil
	}
	return binaryBuiltin("pow", math.Pow)(rt, args, kw)
}

// builtinLog computes the natural logarithm, or the logarithm in the base
// given as a second argument.
func builtinLog(rt *lisp.Runtime, args []lisp.Value, kw map[string]lisp.Value) (lisp.Value, error) {
	x, err := number("log", args[0])
	if err != nil {
		return nil, err
	}
	if len(args) == 1 {
		return lisp.Float(math.Log(x)), nil
	}
	b, err := number("log", args[1])
	if err != nil {
		return nil, err
	}
	return lisp.Float(math.Log(x) / math.Log(b)), nil
}
