// Package libmodel provides the forms that emit parts into the model of the
// current run and the forms that transform or group the parts emitted by
// their bodies.
package libmodel

import (
	"github.com/opensdraw/lcad/lisp"
	"github.com/opensdraw/lcad/model"
)

// LoadPackage adds the model functions and operators to reg.
func LoadPackage(reg *lisp.Registry) error {
	for _, fn := range builtins {
		reg.Define(fn)
	}
	for _, op := range ops {
		reg.Define(op)
	}
	return nil
}

var builtins = []*lisp.Builtin{
	lisp.NewBuiltin("part", lisp.Range(2, 3), builtinPart),
	lisp.NewBuiltin("header", lisp.Fixed(1), builtinHeader),
	lisp.NewBuiltin("comment", lisp.Fixed(1), builtinComment),
	lisp.NewBuiltin("vector", lisp.Fixed(3), builtinVector),
	lisp.NewBuiltin("matrix", lisp.Fixed(1), builtinMatrix),
	lisp.NewBuiltin("line", lisp.Range(2, 3), primitive(model.KindLine, 2)),
	lisp.NewBuiltin("triangle", lisp.Range(3, 4), primitive(model.KindTriangle, 3)),
	lisp.NewBuiltin("quadrilateral", lisp.Range(4, 5), primitive(model.KindQuadrilateral, 4)),
	lisp.NewBuiltin("optional-line", lisp.Range(4, 5), primitive(model.KindOptionalLine, 4)),
}

var ops = []*lisp.SpecialOp{
	lisp.NewSpecialOp("group", lisp.AtLeast(1), opGroup),
	lisp.NewSpecialOp("translate", lisp.AtLeast(1), transformOp("translate", translation)),
	lisp.NewSpecialOp("rotate", lisp.AtLeast(1), transformOp("rotate", rotation)),
	lisp.NewSpecialOp("mirror", lisp.AtLeast(1), transformOp("mirror", mirror)),
	lisp.NewSpecialOp("scale", lisp.AtLeast(1), transformOp("scale", scale)),
	lisp.NewSpecialOp("transform", lisp.AtLeast(1), transformOp("transform", ldraw)),
}

// builtinPart emits a part reference.  The color is passed through as
// written, numbers and strings alike.
func builtinPart(rt *lisp.Runtime, args []lisp.Value, kw map[string]lisp.Value) (lisp.Value, error) {
	id, err := text("part", args[0])
	if err != nil {
		return nil, err
	}
	color, err := text("part", args[1])
	if err != nil {
		return nil, err
	}
	step, err := stepArg(rt, "part", args[2:])
	if err != nil {
		return nil, err
	}
	return &lisp.PartHandle{Part: rt.Context.Model.AddPart(id, color, step)}, nil
}

func builtinHeader(rt *lisp.Runtime, args []lisp.Value, kw map[string]lisp.Value) (lisp.Value, error) {
	s, err := text("header", args[0])
	if err != nil {
		return nil, err
	}
	rt.Context.Model.AddHeader(s)
	return lisp.String(s), nil
}

func builtinComment(rt *lisp.Runtime, args []lisp.Value, kw map[string]lisp.Value) (lisp.Value, error) {
	s, err := text("comment", args[0])
	if err != nil {
		return nil, err
	}
	return &lisp.PartHandle{Part: rt.Context.Model.AddComment(s)}, nil
}

func builtinVector(rt *lisp.Runtime, args []lisp.Value, kw map[string]lisp.Value) (lisp.Value, error) {
	for _, v := range args {
		if !lisp.IsNumeric(v) {
			return nil, lisp.Errorf(lisp.TypeError, "vector: not a number: %v", v)
		}
	}
	return lisp.NewList(args...), nil
}

// builtinMatrix builds a matrix from either the twelve LDraw coefficients
// (x y z a b c d e f g h i) or a translation followed by rotation angles in
// degrees (x y z ax ay az).
func builtinMatrix(rt *lisp.Runtime, args []lisp.Value, kw map[string]lisp.Value) (lisp.Value, error) {
	lis, ok := args[0].(*lisp.List)
	if !ok || (lis.Len() != 6 && lis.Len() != 12) {
		return nil, lisp.Errorf(lisp.TypeError, "matrix: expected a list of 6 or 12 numbers: %v", args[0])
	}
	c, err := numbers("matrix", lis)
	if err != nil {
		return nil, err
	}
	if len(c) == 6 {
		m := model.Translation(c[0], c[1], c[2]).Mul(model.Rotation(c[3], c[4], c[5]))
		return &lisp.Matrix{M: m}, nil
	}
	var coeffs [12]float64
	copy(coeffs[:], c)
	return &lisp.Matrix{M: model.FromLDraw(coeffs)}, nil
}

// primitive returns a builtin emitting a geometric primitive with n vertices
// and an optional color.
func primitive(kind model.Kind, n int) lisp.BuiltinFunc {
	name := string(kind)
	return func(rt *lisp.Runtime, args []lisp.Value, kw map[string]lisp.Value) (lisp.Value, error) {
		vertices := make([]model.Vector, n)
		for i := range vertices {
			v, err := vector(name, args[i])
			if err != nil {
				return nil, err
			}
			vertices[i] = v
		}
		color := model.DefaultColor
		if len(args) > n {
			var err error
			color, err = text(name, args[n])
			if err != nil {
				return nil, err
			}
		}
		step, err := rt.StepOffset()
		if err != nil {
			return nil, err
		}
		p, err := rt.Context.Model.AddPrimitive(kind, vertices, color, step)
		if err != nil {
			return nil, lisp.Errorf(lisp.RuntimeError, "%v", err)
		}
		return &lisp.PartHandle{Part: p}, nil
	}
}

// opGroup evaluates its body with parts going to a new named group.
func opGroup(rt *lisp.Runtime, env *lisp.Env, call *lisp.SExpr) (lisp.Value, error) {
	v, err := rt.Eval(env, call.At(1))
	if err != nil {
		return nil, err
	}
	name, err := text("group", v)
	if err != nil {
		return nil, err
	}
	var ret lisp.Value = lisp.Nil{}
	err = rt.Context.Model.WithGroup(name, func() error {
		var err error
		ret, err = rt.EvalBlock(env, call.Rest(2))
		return err
	})
	if err != nil {
		return nil, lisp.AsError(err)
	}
	return ret, nil
}

// transformOp returns an operator evaluating its body with the current
// matrix multiplied by the transformation built from its first operand.
func transformOp(name string, build func(name string, v lisp.Value) (model.Matrix, error)) lisp.SpecialFunc {
	return func(rt *lisp.Runtime, env *lisp.Env, call *lisp.SExpr) (lisp.Value, error) {
		v, err := rt.Eval(env, call.At(1))
		if err != nil {
			return nil, err
		}
		m, err := build(name, v)
		if err != nil {
			return nil, err
		}
		var ret lisp.Value = lisp.Nil{}
		err = rt.Context.Model.WithMatrix(m, func() error {
			var err error
			ret, err = rt.EvalBlock(env, call.Rest(2))
			return err
		})
		if err != nil {
			return nil, err
		}
		return ret, nil
	}
}

func translation(name string, v lisp.Value) (model.Matrix, error) {
	x, err := vector(name, v)
	if err != nil {
		return model.Matrix{}, err
	}
	return model.Translation(x[0], x[1], x[2]), nil
}

func rotation(name string, v lisp.Value) (model.Matrix, error) {
	x, err := vector(name, v)
	if err != nil {
		return model.Matrix{}, err
	}
	return model.Rotation(x[0], x[1], x[2]), nil
}

func scale(name string, v lisp.Value) (model.Matrix, error) {
	x, err := vector(name, v)
	if err != nil {
		return model.Matrix{}, err
	}
	return model.Scale(x[0], x[1], x[2]), nil
}

// mirror reflects the axes whose component is 1.
func mirror(name string, v lisp.Value) (model.Matrix, error) {
	x, err := vector(name, v)
	if err != nil {
		return model.Matrix{}, err
	}
	return model.Mirror(x[0] == 1, x[1] == 1, x[2] == 1), nil
}

// ldraw accepts a matrix value or builds one from a position followed by the
// nine coefficients of the rotation matrix in row order.
func ldraw(name string, v lisp.Value) (model.Matrix, error) {
	if m, ok := v.(*lisp.Matrix); ok {
		return m.M, nil
	}
	lis, ok := v.(*lisp.List)
	if !ok || lis.Len() != 12 {
		return model.Matrix{}, lisp.Errorf(lisp.TypeError, "%s: expected a matrix or a list of 12 numbers: %v", name, v)
	}
	x, err := numbers(name, lis)
	if err != nil {
		return model.Matrix{}, err
	}
	var c [12]float64
	copy(c[:], x)
	return model.FromLDraw(c), nil
}

func numbers(name string, lis *lisp.List) ([]float64, error) {
	x := make([]float64, lis.Len())
	for i, cell := range lis.Cells {
		f, ok := lisp.ToFloat(cell)
		if !ok {
			return nil, lisp.Errorf(lisp.TypeError, "%s: not a number: %v", name, cell)
		}
		x[i] = f
	}
	return x, nil
}

// vector converts a list of at least three numbers.  Extra elements are
// ignored.
func vector(name string, v lisp.Value) (model.Vector, error) {
	lis, ok := v.(*lisp.List)
	if !ok || lis.Len() < 3 {
		return model.Vector{}, lisp.Errorf(lisp.TypeError, "%s: expected a list of 3 numbers: %v", name, v)
	}
	var x model.Vector
	for i := range x {
		f, ok := lisp.ToFloat(lis.Cells[i])
		if !ok {
			return model.Vector{}, lisp.Errorf(lisp.TypeError, "%s: not a number: %v", name, lis.Cells[i])
		}
		x[i] = f
	}
	return x, nil
}

// text returns the raw text of a string or number.
func text(name string, v lisp.Value) (string, error) {
	switch v.(type) {
	case lisp.String, lisp.Int, lisp.Float:
		return lisp.Display(v), nil
	}
	return "", lisp.Errorf(lisp.TypeError, "%s: expected a string or a number: %v", name, v)
}

// stepArg adds the optional step argument to the current step offset.
func stepArg(rt *lisp.Runtime, name string, args []lisp.Value) (float64, error) {
	offset, err := rt.StepOffset()
	if err != nil {
		return 0, err
	}
	if len(args) == 0 {
		return offset, nil
	}
	s, ok := lisp.ToFloat(args[0])
	if !ok {
		return 0, lisp.Errorf(lisp.TypeError, "%s: step is not a number: %v", name, args[0])
	}
	return s + offset, nil
}
