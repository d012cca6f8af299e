package lisp

import (
	"fmt"
)

var userSpecialOps []*SpecialOp
var langSpecialOps = []*SpecialOp{
	{"block", AtLeast(0), opBlock},
	{"if", Range(2, 3), opIf},
	{"cond", AtLeast(0), opCond},
	{"for", AtLeast(1), opFor},
	{"while", AtLeast(1), opWhile},
	{"def", AtLeast(2), opDef},
	{"set", AtLeast(2), opSet},
	{"lambda", AtLeast(1), opLambda},
	{"import", AtLeast(1), opImport},
	{"and", AtLeast(0), opAnd},
	{"or", AtLeast(0), opOr},
	{"debug-stack", Fixed(0), opDebugStack},
}

// RegisterDefaultSpecialOp adds the given operator to the list returned by
// DefaultSpecialOps.
func RegisterDefaultSpecialOp(name string, sig *Signature, fn SpecialFunc) {
	userSpecialOps = append(userSpecialOps, NewSpecialOp(name, sig, fn))
}

// DefaultSpecialOps returns the special operators added to every Registry
// created by NewRegistry.
func DefaultSpecialOps() []*SpecialOp {
	ops := make([]*SpecialOp, 0, len(langSpecialOps)+len(userSpecialOps))
	ops = append(ops, langSpecialOps...)
	ops = append(ops, userSpecialOps...)
	return ops
}

// opBlock evaluates its forms in a new child frame.
func opBlock(rt *Runtime, env *Env, call *SExpr) (Value, error) {
	return rt.EvalBlock(env, call.Rest(1))
}

func opIf(rt *Runtime, env *Env, call *SExpr) (Value, error) {
	test, err := rt.Eval(env, call.At(1))
	if err != nil {
		return nil, err
	}
	if True(test) {
		return rt.Eval(env, call.At(2))
	}
	if call.Len() < 4 {
		return Nil{}, nil
	}
	return rt.Eval(env, call.At(3))
}

// opCond evaluates clauses of the form (test body...).  A clause whose test is
// the symbol else or t always matches.  A clause without a body returns the
// value of its test.
func opCond(rt *Runtime, env *Env, call *SExpr) (Value, error) {
	for _, node := range call.Rest(1) {
		clause, ok := node.(*SExpr)
		if !ok || clause.Len() == 0 {
			return nil, rt.locate(Errorf(TypeError, "cond: clause is not a non-empty list: %v", node), node.Source())
		}
		var test Value = Bool(true)
		if name, ok := clause.Head(); !ok || name != "else" {
			var err error
			test, err = rt.Eval(env, clause.At(0))
			if err != nil {
				return nil, err
			}
		}
		if !True(test) {
			continue
		}
		if clause.Len() == 1 {
			return test, nil
		}
		return rt.evalBody(env, clause.Rest(1))
	}
	return Nil{}, nil
}

// opFor iterates its body with a loop variable.  The loop header is one of
// (i n), (i start stop), (i start step stop) or (i list).  Every iteration
// evaluates the body in a fresh child frame.
func opFor(rt *Runtime, env *Env, call *SExpr) (Value, error) {
	header, ok := call.At(1).(*SExpr)
	if !ok || header.Len() < 2 || header.Len() > 4 {
		return nil, rt.locate(Errorf(TypeError, "for: invalid loop header: %v", call.At(1)), call.At(1).Source())
	}
	sym, ok := header.At(0).(*Atom)
	if !ok || !sym.IsSymbol() || sym.IsKeyword() {
		return nil, rt.locate(Errorf(TypeError, "for: loop variable is not a symbol: %v", header.At(0)), header.At(0).Source())
	}
	bounds := make([]Value, header.Len()-1)
	for i := range bounds {
		v, err := rt.Eval(env, header.At(i+1))
		if err != nil {
			return nil, err
		}
		bounds[i] = v
	}
	body := call.Rest(2)
	if lis, ok := bounds[0].(*List); ok && len(bounds) == 1 {
		cells := append([]Value(nil), lis.Cells...)
		var ret Value = Nil{}
		for _, v := range cells {
			var err error
			ret, err = rt.forIteration(env, sym.Text(), v, body)
			if err != nil {
				return nil, err
			}
		}
		return ret, nil
	}
	r, err := newNumRange(bounds)
	if err != nil {
		return nil, rt.locate(err, header.Source())
	}
	var ret Value = Nil{}
	for i := 0; r.more(i); i++ {
		ret, err = rt.forIteration(env, sym.Text(), r.at(i), body)
		if err != nil {
			return nil, err
		}
	}
	return ret, nil
}

func (rt *Runtime) forIteration(env *Env, name string, v Value, body []Node) (Value, error) {
	frame := NewEnv(env)
	frame.Scope[name] = v
	return rt.evalBody(frame, body)
}

// numRange is the sequence start + i*step bounded by stop.
type numRange struct {
	start, step, stop Value
	float             bool
}

func newNumRange(bounds []Value) (*numRange, error) {
	for _, v := range bounds {
		if !IsNumeric(v) {
			return nil, Errorf(TypeError, "for: loop bound is not a number: %v", v)
		}
	}
	var r numRange
	switch len(bounds) {
	case 1:
		r.start, r.step, r.stop = Int(0), Int(1), bounds[0]
	case 2:
		r.start, r.step, r.stop = bounds[0], Int(1), bounds[1]
	default:
		r.start, r.step, r.stop = bounds[0], bounds[1], bounds[2]
	}
	for _, v := range []Value{r.start, r.step, r.stop} {
		if _, ok := v.(Float); ok {
			r.float = true
		}
	}
	if step, _ := ToFloat(r.step); step == 0 {
		return nil, Errorf(RuntimeError, "for: step is zero")
	}
	return &r, nil
}

func (r *numRange) at(i int) Value {
	if !r.float {
		return r.start.(Int) + Int(i)*r.step.(Int)
	}
	start, _ := ToFloat(r.start)
	step, _ := ToFloat(r.step)
	return Float(start + float64(i)*step)
}

func (r *numRange) more(i int) bool {
	cur, _ := ToFloat(r.at(i))
	stop, _ := ToFloat(r.stop)
	if step, _ := ToFloat(r.step); step < 0 {
		return cur > stop
	}
	return cur < stop
}

// opWhile evaluates its body in a fresh child frame for as long as the test,
// evaluated in the enclosing frame, is true.
func opWhile(rt *Runtime, env *Env, call *SExpr) (Value, error) {
	body := call.Rest(2)
	var ret Value = Nil{}
	for {
		test, err := rt.Eval(env, call.At(1))
		if err != nil {
			return nil, err
		}
		if !True(test) {
			return ret, nil
		}
		ret, err = rt.evalBody(NewEnv(env), body)
		if err != nil {
			return nil, err
		}
	}
}

// opDef binds name/value pairs in the current frame.  The form
// (def name (params) body) defines a function.
func opDef(rt *Runtime, env *Env, call *SExpr) (Value, error) {
	n := call.Len() - 1
	if params, ok := call.At(2).(*SExpr); ok && n == 3 {
		name, err := bindingName(rt, call.At(1))
		if err != nil {
			return nil, err
		}
		fn, err := makeClosure(name, params, call.Rest(3), env, call.Source())
		if err != nil {
			return nil, rt.locate(err, params.Source())
		}
		return fn, rt.define(env, name, fn, call.At(1))
	}
	if n%2 != 0 {
		err := ErrorConditionf(ArityError, "arity-error", "def: expected name/value pairs, got %d operands", n)
		err.Expected = "an even number"
		err.Actual = n
		return nil, err
	}
	var ret Value = Nil{}
	for i := 1; i < call.Len(); i += 2 {
		name, err := bindingName(rt, call.At(i))
		if err != nil {
			return nil, err
		}
		v, err := rt.Eval(env, call.At(i+1))
		if err != nil {
			return nil, err
		}
		err = rt.define(env, name, v, call.At(i))
		if err != nil {
			return nil, err
		}
		ret = v
	}
	return ret, nil
}

func (rt *Runtime) define(env *Env, name string, v Value, node Node) error {
	if _, ok := rt.lookupContext(name); ok {
		err := ErrorConditionf(RuntimeError, "read-only-binding", "cannot define %s", name)
		return rt.locate(err, node.Source())
	}
	if _, ok := rt.Registry.Lookup(name); ok && env != rt.Registry.Globals() {
		fmt.Fprintf(rt.Stderr, "%s: warning: %s shadows a built-in\n", node.Source(), name)
	}
	err := env.Define(name, v)
	if err != nil {
		return rt.locate(err, node.Source())
	}
	return nil
}

func bindingName(rt *Runtime, node Node) (string, error) {
	a, ok := node.(*Atom)
	if !ok || !a.IsSymbol() || a.IsKeyword() {
		return "", rt.locate(Errorf(TypeError, "not a symbol: %v", node), node.Source())
	}
	return a.Text(), nil
}

// opSet updates existing bindings.  A target of the form (aref list index)
// updates a list element.
func opSet(rt *Runtime, env *Env, call *SExpr) (Value, error) {
	n := call.Len() - 1
	if n%2 != 0 {
		err := ErrorConditionf(ArityError, "arity-error", "set: expected name/value pairs, got %d operands", n)
		err.Expected = "an even number"
		err.Actual = n
		return nil, err
	}
	var ret Value = Nil{}
	for i := 1; i < call.Len(); i += 2 {
		target := call.At(i)
		if ref, ok := target.(*SExpr); ok {
			v, err := rt.setElement(env, ref, call.At(i+1))
			if err != nil {
				return nil, err
			}
			ret = v
			continue
		}
		name, err := bindingName(rt, target)
		if err != nil {
			return nil, err
		}
		v, err := rt.Eval(env, call.At(i+1))
		if err != nil {
			return nil, err
		}
		err = env.Assign(name, v)
		if ErrorKindOf(err) == NameError {
			var handled bool
			handled, err = rt.assignContext(name, v)
			if !handled {
				err = unboundSymbol(name)
			}
		}
		if err != nil {
			return nil, rt.locate(err, target.Source())
		}
		ret = v
	}
	return ret, nil
}

func (rt *Runtime) setElement(env *Env, ref *SExpr, expr Node) (Value, error) {
	if name, ok := ref.Head(); !ok || name != "aref" || ref.Len() != 3 {
		return nil, rt.locate(Errorf(TypeError, "set: invalid target: %v", ref), ref.Source())
	}
	lv, err := rt.Eval(env, ref.At(1))
	if err != nil {
		return nil, err
	}
	iv, err := rt.Eval(env, ref.At(2))
	if err != nil {
		return nil, err
	}
	v, err := rt.Eval(env, expr)
	if err != nil {
		return nil, err
	}
	lis, ok := lv.(*List)
	if !ok {
		return nil, rt.locate(Errorf(TypeError, "set: not a list: %v", lv), ref.At(1).Source())
	}
	i, err := listIndex(lis, iv)
	if err != nil {
		return nil, rt.locate(err, ref.At(2).Source())
	}
	lis.Cells[i] = v
	return v, nil
}

func opLambda(rt *Runtime, env *Env, call *SExpr) (Value, error) {
	params, ok := call.At(1).(*SExpr)
	if !ok {
		return nil, rt.locate(Errorf(TypeError, "lambda: parameters are not a list: %v", call.At(1)), call.At(1).Source())
	}
	fn, err := makeClosure("lambda", params, call.Rest(2), env, call.Source())
	if err != nil {
		return nil, rt.locate(err, params.Source())
	}
	return fn, nil
}

// opImport loads modules and binds their exports as name:symbol, or as bare
// symbols when the :local qualifier is given.
func opImport(rt *Runtime, env *Env, call *SExpr) (Value, error) {
	var names []*Atom
	local := false
	for _, node := range call.Rest(1) {
		a, ok := node.(*Atom)
		if !ok || !a.IsSymbol() {
			return nil, rt.locate(Errorf(TypeError, "import: module name is not a symbol: %v", node), node.Source())
		}
		if a.IsKeyword() {
			if a.Text() != LocalImportKeyword {
				return nil, rt.locate(Errorf(TypeError, "import: unknown qualifier: %s", a.Text()), a.Source())
			}
			local = true
			continue
		}
		names = append(names, a)
	}
	for _, a := range names {
		mod, err := rt.Loader.Load(rt, a.Text())
		if err != nil {
			return nil, rt.locate(err, a.Source())
		}
		for _, sym := range mod.Env.Names() {
			v := mod.Env.Scope[sym]
			bound := sym
			if !local {
				bound = a.Text() + ModuleSeparator + sym
			}
			err := env.Define(bound, v)
			if err != nil {
				return nil, rt.locate(err, a.Source())
			}
		}
	}
	return Nil{}, nil
}

func opAnd(rt *Runtime, env *Env, call *SExpr) (Value, error) {
	var ret Value = Bool(true)
	for _, node := range call.Rest(1) {
		v, err := rt.Eval(env, node)
		if err != nil {
			return nil, err
		}
		if !True(v) {
			return v, nil
		}
		ret = v
	}
	return ret, nil
}

func opOr(rt *Runtime, env *Env, call *SExpr) (Value, error) {
	var ret Value = Bool(false)
	for _, node := range call.Rest(1) {
		v, err := rt.Eval(env, node)
		if err != nil {
			return nil, err
		}
		if True(v) {
			return v, nil
		}
		ret = v
	}
	return ret, nil
}

func opDebugStack(rt *Runtime, env *Env, call *SExpr) (Value, error) {
	_, err := rt.Stack.DebugPrint(rt.Stderr)
	if err != nil {
		return nil, Errorf(RuntimeError, "%v", err)
	}
	return Nil{}, nil
}
