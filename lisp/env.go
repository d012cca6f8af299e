package lisp

import (
	"sort"
	"sync/atomic"
)

var envCount uint64

func getEnvID() uint {
	return uint(atomic.AddUint64(&envCount, 1))
}

// Env is one frame of a lexical scope chain.  Frames only reference their
// parent so a chain can never form a cycle.
type Env struct {
	ID       uint
	Scope    map[string]Value
	Parent   *Env
	ReadOnly bool
}

// NewEnv initializes and returns a new frame whose parent is parent.
func NewEnv(parent *Env) *Env {
	return &Env{
		ID:     getEnvID(),
		Scope:  make(map[string]Value),
		Parent: parent,
	}
}

// Lookup returns the value bound to name in the nearest frame of the chain.
func (env *Env) Lookup(name string) (Value, bool) {
	for e := env; e != nil; e = e.Parent {
		v, ok := e.Scope[name]
		if ok {
			return v, true
		}
	}
	return nil, false
}

// Get is like Lookup but returns a NameError for unbound names.
func (env *Env) Get(name string) (Value, error) {
	v, ok := env.Lookup(name)
	if !ok {
		return nil, unboundSymbol(name)
	}
	return v, nil
}

// Define binds name to v in env itself, shadowing any binding in a parent
// frame.
func (env *Env) Define(name string, v Value) error {
	if env.ReadOnly {
		return ErrorConditionf(RuntimeError, "read-only-binding", "cannot define %s in a read-only frame", name)
	}
	env.Scope[name] = v
	return nil
}

// Assign updates the nearest existing binding of name.  Assign never creates
// a binding: a NameError is returned when name is unbound in the whole chain.
func (env *Env) Assign(name string, v Value) error {
	for e := env; e != nil; e = e.Parent {
		if _, ok := e.Scope[name]; !ok {
			continue
		}
		if e.ReadOnly {
			return ErrorConditionf(RuntimeError, "read-only-binding", "cannot set built-in: %s", name)
		}
		e.Scope[name] = v
		return nil
	}
	return unboundSymbol(name)
}

// Names returns the names bound in env itself in sorted order.
func (env *Env) Names() []string {
	names := make([]string, 0, len(env.Scope))
	for k := range env.Scope {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Root returns the outermost frame of the chain.
func (env *Env) Root() *Env {
	e := env
	for e.Parent != nil {
		e = e.Parent
	}
	return e
}

func unboundSymbol(name string) *Error {
	return ErrorConditionf(NameError, "unbound-symbol", "unbound symbol: %s", name)
}
