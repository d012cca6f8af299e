package lisp

import (
	"bytes"
	"math"
	"strings"
)

var userBuiltins []*Builtin
var langBuiltins = []*Builtin{
	{"+", AtLeast(0), builtinAdd},
	{"-", AtLeast(1), builtinSub},
	{"*", AtLeast(0), builtinMul},
	{"/", AtLeast(2), builtinDiv},
	{"%", Fixed(2), builtinMod},
	{"=", AtLeast(2), builtinEq},
	{"!=", Fixed(2), builtinNotEq},
	{"<", AtLeast(2), builtinLT},
	{">", AtLeast(2), builtinGT},
	{"<=", AtLeast(2), builtinLEq},
	{">=", AtLeast(2), builtinGEq},
	{"not", Fixed(1), builtinNot},
	{"list", AtLeast(0), builtinList},
	{"aref", Fixed(2), builtinAref},
	{"len", Fixed(1), builtinLen},
	{"concat", AtLeast(0), builtinConcat},
	{"print", AtLeast(0), builtinPrint},
	{"number?", Fixed(1), typePredicate(LInt, LFloat)},
	{"string?", Fixed(1), typePredicate(LString)},
	{"boolean?", Fixed(1), typePredicate(LBool)},
	{"list?", Fixed(1), typePredicate(LList)},
	{"function?", Fixed(1), typePredicate(LFun)},
	{"part?", Fixed(1), typePredicate(LPart)},
	{"nil?", Fixed(1), typePredicate(LNil)},
	{"matrix?", Fixed(1), typePredicate(LMatrix)},
	{"vector?", Fixed(1), builtinIsVector},
	{"abs", Fixed(1), builtinAbs},
	{"min", AtLeast(1), builtinMin},
	{"max", AtLeast(1), builtinMax},
}

// RegisterDefaultBuiltin adds the given function to the list returned by
// DefaultBuiltins.
func RegisterDefaultBuiltin(name string, sig *Signature, fn BuiltinFunc) {
	userBuiltins = append(userBuiltins, NewBuiltin(name, sig, fn))
}

// DefaultBuiltins returns the functions added to every Registry created by
// NewRegistry.
func DefaultBuiltins() []*Builtin {
	fns := make([]*Builtin, 0, len(langBuiltins)+len(userBuiltins))
	fns = append(fns, langBuiltins...)
	fns = append(fns, userBuiltins...)
	return fns
}

func foldNum(args []Value, z Value, fn func(a, b Value) (Value, error)) (Value, error) {
	acc := z
	for _, v := range args {
		var err error
		acc, err = fn(acc, v)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func builtinAdd(rt *Runtime, args []Value, kw map[string]Value) (Value, error) {
	return foldNum(args, Int(0), addNum)
}

func builtinSub(rt *Runtime, args []Value, kw map[string]Value) (Value, error) {
	if len(args) == 1 {
		return subNum(Int(0), args[0])
	}
	return foldNum(args[1:], args[0], subNum)
}

func builtinMul(rt *Runtime, args []Value, kw map[string]Value) (Value, error) {
	return foldNum(args, Int(1), mulNum)
}

func builtinDiv(rt *Runtime, args []Value, kw map[string]Value) (Value, error) {
	return foldNum(args[1:], args[0], divNum)
}

func builtinMod(rt *Runtime, args []Value, kw map[string]Value) (Value, error) {
	return modNum(args[0], args[1])
}

func builtinEq(rt *Runtime, args []Value, kw map[string]Value) (Value, error) {
	for i := 1; i < len(args); i++ {
		if !Equal(args[0], args[i]) {
			return Bool(false), nil
		}
	}
	return Bool(true), nil
}

func builtinNotEq(rt *Runtime, args []Value, kw map[string]Value) (Value, error) {
	return Bool(!Equal(args[0], args[1])), nil
}

// compareChain returns a builtin testing that each adjacent pair of
// arguments satisfies ok.
func compareChain(name string, ok func(c int) bool) BuiltinFunc {
	return func(rt *Runtime, args []Value, kw map[string]Value) (Value, error) {
		for i := 1; i < len(args); i++ {
			c, err := compareNum(name, args[i-1], args[i])
			if err != nil {
				return nil, err
			}
			if !ok(c) {
				return Bool(false), nil
			}
		}
		return Bool(true), nil
	}
}

func builtinLT(rt *Runtime, args []Value, kw map[string]Value) (Value, error) {
	return compareChain("<", func(c int) bool { return c < 0 })(rt, args, kw)
}

func builtinGT(rt *Runtime, args []Value, kw map[string]Value) (Value, error) {
	return compareChain(">", func(c int) bool { return c > 0 })(rt, args, kw)
}

func builtinLEq(rt *Runtime, args []Value, kw map[string]Value) (Value, error) {
	return compareChain("<=", func(c int) bool { return c <= 0 })(rt, args, kw)
}

func builtinGEq(rt *Runtime, args []Value, kw map[string]Value) (Value, error) {
	return compareChain(">=", func(c int) bool { return c >= 0 })(rt, args, kw)
}

func builtinNot(rt *Runtime, args []Value, kw map[string]Value) (Value, error) {
	return Bool(!True(args[0])), nil
}

func builtinList(rt *Runtime, args []Value, kw map[string]Value) (Value, error) {
	return NewList(args...), nil
}

func builtinAref(rt *Runtime, args []Value, kw map[string]Value) (Value, error) {
	lis, ok := args[0].(*List)
	if !ok {
		return nil, Errorf(TypeError, "aref: not a list: %v", args[0])
	}
	i, err := listIndex(lis, args[1])
	if err != nil {
		return nil, err
	}
	return lis.Cells[i], nil
}

// listIndex validates v as an index into lis.
func listIndex(lis *List, v Value) (int, error) {
	i, ok := v.(Int)
	if !ok {
		return 0, Errorf(TypeError, "index is not an integer: %v", v)
	}
	if i < 0 || int(i) >= len(lis.Cells) {
		return 0, ErrorConditionf(RuntimeError, "index-out-of-range", "index out of range: %d (length %d)", i, len(lis.Cells))
	}
	return int(i), nil
}

func builtinLen(rt *Runtime, args []Value, kw map[string]Value) (Value, error) {
	switch v := args[0].(type) {
	case *List:
		return Int(len(v.Cells)), nil
	case String:
		return Int(len([]rune(string(v)))), nil
	}
	return nil, Errorf(TypeError, "len: not a list or string: %v", args[0])
}

// builtinConcat joins strings or lists.  All arguments must have the same
// type.
func builtinConcat(rt *Runtime, args []Value, kw map[string]Value) (Value, error) {
	if len(args) == 0 {
		return String(""), nil
	}
	switch args[0].(type) {
	case String:
		var buf strings.Builder
		for _, v := range args {
			s, ok := v.(String)
			if !ok {
				return nil, Errorf(TypeError, "concat: not a string: %v", v)
			}
			buf.WriteString(string(s))
		}
		return String(buf.String()), nil
	case *List:
		var cells []Value
		for _, v := range args {
			lis, ok := v.(*List)
			if !ok {
				return nil, Errorf(TypeError, "concat: not a list: %v", v)
			}
			cells = append(cells, lis.Cells...)
		}
		return NewList(cells...), nil
	}
	return nil, Errorf(TypeError, "concat: not a string or list: %v", args[0])
}

func builtinPrint(rt *Runtime, args []Value, kw map[string]Value) (Value, error) {
	var buf bytes.Buffer
	for _, v := range args {
		buf.WriteString(Display(v))
	}
	s := buf.String()
	buf.WriteString("\n")
	_, err := rt.Stdout.Write(buf.Bytes())
	if err != nil {
		return nil, Errorf(RuntimeError, "print: %v", err)
	}
	return String(s), nil
}

func typePredicate(types ...LValType) BuiltinFunc {
	return func(rt *Runtime, args []Value, kw map[string]Value) (Value, error) {
		for _, t := range types {
			if args[0].Type() == t {
				return Bool(true), nil
			}
		}
		return Bool(false), nil
	}
}

func builtinIsVector(rt *Runtime, args []Value, kw map[string]Value) (Value, error) {
	return Bool(IsVector(args[0])), nil
}

func builtinAbs(rt *Runtime, args []Value, kw map[string]Value) (Value, error) {
	switch x := args[0].(type) {
	case Int:
		if x < 0 {
			return -x, nil
		}
		return x, nil
	case Float:
		return Float(math.Abs(float64(x))), nil
	}
	return nil, Errorf(TypeError, "abs: not a number: %v", args[0])
}

func extremum(name string, args []Value, better func(c int) bool) (Value, error) {
	best := args[0]
	if !IsNumeric(best) {
		return nil, Errorf(TypeError, "%s: not a number: %v", name, best)
	}
	for _, v := range args[1:] {
		c, err := compareNum(name, v, best)
		if err != nil {
			return nil, err
		}
		if better(c) {
			best = v
		}
	}
	return best, nil
}

func builtinMin(rt *Runtime, args []Value, kw map[string]Value) (Value, error) {
	return extremum("min", args, func(c int) bool { return c < 0 })
}

func builtinMax(rt *Runtime, args []Value, kw map[string]Value) (Value, error) {
	return extremum("max", args, func(c int) bool { return c > 0 })
}
