package lisp

import (
	"github.com/opensdraw/lcad/parser/token"
)

// Eval evaluates node in env.  Literals evaluate to themselves, symbols are
// looked up and parenthesized expressions are function calls.
func (rt *Runtime) Eval(env *Env, node Node) (Value, error) {
	switch node := node.(type) {
	case *Atom:
		return rt.evalAtom(env, node)
	case *SExpr:
		return rt.evalSExpr(env, node)
	default:
		return nil, Errorf(RuntimeError, "invalid node: %T", node)
	}
}

func (rt *Runtime) evalAtom(env *Env, a *Atom) (Value, error) {
	if lit := a.Literal(); lit != nil {
		return lit, nil
	}
	v, ok := env.Lookup(a.Text())
	if ok {
		return v, nil
	}
	v, ok = rt.lookupContext(a.Text())
	if ok {
		return v, nil
	}
	return nil, rt.locate(unboundSymbol(a.Text()), a.Source())
}

func (rt *Runtime) evalSExpr(env *Env, call *SExpr) (Value, error) {
	if call.Len() == 0 {
		return NewList(), nil
	}
	head, err := rt.Eval(env, call.At(0))
	if err != nil {
		return nil, err
	}
	fn, ok := head.(Callable)
	if !ok {
		return nil, rt.locate(Errorf(TypeError, "not a function: %v", head), call.Source())
	}
	if op, ok := fn.(*SpecialOp); ok {
		return rt.callSpecialOp(env, op, call)
	}
	args, kw, err := rt.evalArgs(env, call)
	if err != nil {
		return nil, err
	}
	return rt.Apply(fn, args, kw, call.Source())
}

func (rt *Runtime) callSpecialOp(env *Env, op *SpecialOp, call *SExpr) (Value, error) {
	err := op.sig.CheckArity(op.name, call.Len()-1)
	if err != nil {
		return nil, rt.locate(err, call.Source())
	}
	err = rt.Stack.Push(op.name, call.Source(), false)
	if err != nil {
		return nil, rt.locate(err, call.Source())
	}
	v, err := op.fn(rt, env, call)
	rt.Stack.Pop()
	if err != nil {
		return nil, rt.locate(err, call.Source())
	}
	return orNil(v), nil
}

// evalArgs evaluates the operands of a normal call left to right.  A keyword
// atom names the argument that follows it and is not itself evaluated.
func (rt *Runtime) evalArgs(env *Env, call *SExpr) ([]Value, map[string]Value, error) {
	var args []Value
	var kw map[string]Value
	for i := 1; i < call.Len(); i++ {
		node := call.At(i)
		if a, ok := node.(*Atom); ok && a.IsKeyword() {
			name := a.Keyword()
			if i+1 >= call.Len() {
				return nil, nil, rt.locate(Errorf(TypeError, "missing value for keyword argument %s", a.Text()), a.Source())
			}
			if _, dup := kw[name]; dup {
				return nil, nil, rt.locate(Errorf(TypeError, "duplicate keyword argument %s", a.Text()), a.Source())
			}
			i++
			v, err := rt.Eval(env, call.At(i))
			if err != nil {
				return nil, nil, err
			}
			if kw == nil {
				kw = make(map[string]Value)
			}
			kw[name] = v
			continue
		}
		if kw != nil {
			return nil, nil, rt.locate(Errorf(TypeError, "positional argument follows keyword arguments"), node.Source())
		}
		v, err := rt.Eval(env, node)
		if err != nil {
			return nil, nil, err
		}
		args = append(args, v)
	}
	return args, kw, nil
}

// Call applies fn to positional arguments from Go code.
func (rt *Runtime) Call(fn Callable, args ...Value) (Value, error) {
	var site *token.Location
	if top := rt.Stack.Top(); top != nil {
		site = top.Source
	}
	return rt.Apply(fn, args, nil, site)
}

// Apply calls fn with evaluated arguments.  The signature of fn is checked
// before any of its body is evaluated.  Errors are located at site when they
// do not already carry a location.
func (rt *Runtime) Apply(fn Callable, args []Value, kw map[string]Value, site *token.Location) (Value, error) {
	sig := fn.Signature()
	err := sig.CheckArity(fn.Name(), len(args))
	if err != nil {
		return nil, rt.locate(err, site)
	}
	err = sig.CheckKeywords(fn.Name(), kw)
	if err != nil {
		return nil, rt.locate(err, site)
	}
	switch fn := fn.(type) {
	case *Builtin:
		return rt.applyBuiltin(fn, args, kw, site)
	case *Closure:
		return rt.applyClosure(fn, args, kw, site)
	default:
		return nil, rt.locate(Errorf(TypeError, "%s cannot be applied to evaluated arguments", fn.Name()), site)
	}
}

func (rt *Runtime) applyBuiltin(fn *Builtin, args []Value, kw map[string]Value, site *token.Location) (Value, error) {
	if len(fn.sig.Keywords) > 0 {
		full := make(map[string]Value, len(fn.sig.Keywords))
		for _, k := range fn.sig.Keywords {
			if k.Default != nil {
				full[k.Name] = k.Default
			}
		}
		for k, v := range kw {
			full[k] = v
		}
		kw = full
	}
	err := rt.Stack.Push(fn.name, site, false)
	if err != nil {
		return nil, rt.locate(err, site)
	}
	v, err := fn.fn(rt, args, kw)
	rt.Stack.Pop()
	if err != nil {
		return nil, rt.locate(err, site)
	}
	return orNil(v), nil
}

func (rt *Runtime) applyClosure(fn *Closure, args []Value, kw map[string]Value, site *token.Location) (Value, error) {
	err := rt.Stack.Push(fn.name, site, true)
	if err != nil {
		return nil, rt.locate(err, site)
	}
	v, err := rt.evalClosureBody(fn, args, kw)
	rt.Stack.Pop()
	if err != nil {
		lerr := rt.locate(err, site)
		lerr.Trace = append(lerr.Trace, TraceFrame{Name: fn.name, Source: site})
		return nil, lerr
	}
	return v, nil
}

func (rt *Runtime) evalClosureBody(fn *Closure, args []Value, kw map[string]Value) (Value, error) {
	frame := NewEnv(fn.env)
	for i, name := range fn.params {
		frame.Scope[name] = args[i]
	}
	for _, k := range fn.sig.Keywords {
		if v, ok := kw[k.Name]; ok {
			frame.Scope[k.Name] = v
			continue
		}
		if k.Expr == nil {
			frame.Scope[k.Name] = Nil{}
			continue
		}
		v, err := rt.Eval(frame, k.Expr)
		if err != nil {
			return nil, err
		}
		frame.Scope[k.Name] = v
	}
	return rt.evalBody(frame, fn.body)
}

// EvalBlock evaluates forms in a new child frame of env and returns the
// value of the last form.
func (rt *Runtime) EvalBlock(env *Env, forms []Node) (Value, error) {
	return rt.evalBody(NewEnv(env), forms)
}

// evalBody evaluates forms in order in env and returns the value of the last
// form or Nil if there are none.
func (rt *Runtime) evalBody(env *Env, forms []Node) (Value, error) {
	var ret Value = Nil{}
	for _, node := range forms {
		v, err := rt.Eval(env, node)
		if err != nil {
			return nil, err
		}
		ret = v
	}
	return ret, nil
}

// locate attaches a source location and the name of the innermost
// user-defined function to err if it does not already have a location.
func (rt *Runtime) locate(err error, source *token.Location) *Error {
	lerr := AsError(err)
	if lerr.Source == nil {
		lerr.Source = source
		if f := rt.Stack.TopClosure(); f != nil {
			lerr.Func = f.Name
		}
	}
	return lerr
}

func orNil(v Value) Value {
	if v == nil {
		return Nil{}
	}
	return v
}
