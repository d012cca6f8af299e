package lisp

// Registry holds the built-in functions, special operators and constants
// visible to every program.  They live in a single read-only frame which is
// the root of every top-level and module frame.
type Registry struct {
	globals *Env
}

// NewRegistry returns a Registry containing the constants, the default
// special operators and the default builtins.
func NewRegistry() *Registry {
	r := &Registry{globals: NewEnv(nil)}
	r.globals.ReadOnly = true
	r.DefineConstant("t", Bool(true))
	r.DefineConstant("true", Bool(true))
	r.DefineConstant("false", Bool(false))
	r.DefineConstant("nil", Nil{})
	for _, op := range DefaultSpecialOps() {
		r.Define(op)
	}
	for _, fn := range DefaultBuiltins() {
		r.Define(fn)
	}
	return r
}

// Define registers fn under its name, replacing any previous definition.
func (r *Registry) Define(fn Callable) {
	r.globals.Scope[fn.Name()] = fn
}

// DefineBuiltin registers a function receiving evaluated arguments.
func (r *Registry) DefineBuiltin(name string, sig *Signature, fn BuiltinFunc) {
	r.Define(NewBuiltin(name, sig, fn))
}

// DefineSpecialOp registers an operator receiving its unevaluated call
// expression.
func (r *Registry) DefineSpecialOp(name string, sig *Signature, fn SpecialFunc) {
	r.Define(NewSpecialOp(name, sig, fn))
}

// DefineConstant binds name to v.
func (r *Registry) DefineConstant(name string, v Value) {
	r.globals.Scope[name] = v
}

// Lookup returns the value registered under name.
func (r *Registry) Lookup(name string) (Value, bool) {
	v, ok := r.globals.Scope[name]
	return v, ok
}

// Globals returns the read-only frame holding the registered values.
func (r *Registry) Globals() *Env {
	return r.globals
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	return r.globals.Names()
}
