// Package librand provides random numbers drawn from the generator of the
// current run.  Every run starts from the same seed so output is repeatable
// unless a program reseeds explicitly.
package librand

import (
	"github.com/opensdraw/lcad/lisp"
)

// LoadPackage adds the random number functions to reg.
func LoadPackage(reg *lisp.Registry) error {
	for _, fn := range builtins {
		reg.Define(fn)
	}
	return nil
}

var builtins = []*lisp.Builtin{
	lisp.NewBuiltin("rand-seed", lisp.Fixed(1), builtinSeed),
	lisp.NewBuiltin("rand-uniform", lisp.Range(0, 2), builtinUniform),
	lisp.NewBuiltin("rand-integer", lisp.Fixed(2), builtinInteger),
	lisp.NewBuiltin("rand-gauss", lisp.Range(0, 2), builtinGauss),
	lisp.NewBuiltin("rand-choice", lisp.Fixed(1), builtinChoice),
}

func builtinSeed(rt *lisp.Runtime, args []lisp.Value, kw map[string]lisp.Value) (lisp.Value, error) {
	seed, ok := lisp.ToInt(args[0])
	if !ok {
		return nil, lisp.Errorf(lisp.TypeError, "rand-seed: seed is not an integer: %v", args[0])
	}
	rt.Context.Rand.Seed(int64(seed))
	return args[0], nil
}

// interval returns the bounds given as optional arguments.
func interval(name string, args []lisp.Value, lo, hi float64) (float64, float64, error) {
	switch len(args) {
	case 0:
		return lo, hi, nil
	case 2:
		a, ok := lisp.ToFloat(args[0])
		if !ok {
			return 0, 0, lisp.Errorf(lisp.TypeError, "%s: not a number: %v", name, args[0])
		}
		b, ok := lisp.ToFloat(args[1])
		if !ok {
			return 0, 0, lisp.Errorf(lisp.TypeError, "%s: not a number: %v", name, args[1])
		}
		return a, b, nil
	}
	err := lisp.ErrorConditionf(lisp.ArityError, "arity-error", "%s: expected 0 or 2 arguments, got %d", name, len(args))
	err.Expected = "0 or 2"
	err.Actual = len(args)
	return 0, 0, err
}

func builtinUniform(rt *lisp.Runtime, args []lisp.Value, kw map[string]lisp.Value) (lisp.Value, error) {
	lo, hi, err := interval("rand-uniform", args, 0, 1)
	if err != nil {
		return nil, err
	}
	return lisp.Float(lo + (hi-lo)*rt.Context.Rand.Float64()), nil
}

// builtinInteger returns an integer in the closed interval [start, end].
func builtinInteger(rt *lisp.Runtime, args []lisp.Value, kw map[string]lisp.Value) (lisp.Value, error) {
	start, ok := args[0].(lisp.Int)
	if !ok {
		return nil, lisp.Errorf(lisp.TypeError, "rand-integer: not an integer: %v", args[0])
	}
	end, ok := args[1].(lisp.Int)
	if !ok {
		return nil, lisp.Errorf(lisp.TypeError, "rand-integer: not an integer: %v", args[1])
	}
	if end < start {
		return nil, lisp.Errorf(lisp.RuntimeError, "rand-integer: empty interval [%d, %d]", start, end)
	}
	return start + lisp.Int(rt.Context.Rand.Int63n(int64(end-start)+1)), nil
}

func builtinGauss(rt *lisp.Runtime, args []lisp.Value, kw map[string]lisp.Value) (lisp.Value, error) {
	mean, sd, err := interval("rand-gauss", args, 0, 1)
	if err != nil {
		return nil, err
	}
	return lisp.Float(mean + sd*rt.Context.Rand.NormFloat64()), nil
}

func builtinChoice(rt *lisp.Runtime, args []lisp.Value, kw map[string]lisp.Value) (lisp.Value, error) {
	lis, ok := args[0].(*lisp.List)
	if !ok {
		return nil, lisp.Errorf(lisp.TypeError, "rand-choice: not a list: %v", args[0])
	}
	if lis.Len() == 0 {
		return nil, lisp.Errorf(lisp.RuntimeError, "rand-choice: empty list")
	}
	return lis.Cells[rt.Context.Rand.Intn(lis.Len())], nil
}
