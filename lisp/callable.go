package lisp

import "github.com/opensdraw/lcad/parser/token"

// Callable is a function value.  A callable either receives evaluated
// arguments (*Builtin, *Closure) or the unevaluated call expression
// (*SpecialOp).
type Callable interface {
	Value
	Name() string
	Signature() *Signature
}

// BuiltinFunc implements a Builtin.  Positional arguments have been checked
// against the builtin's Signature and kw holds every supplied keyword
// argument plus the defaults of omitted keywords.
type BuiltinFunc func(rt *Runtime, args []Value, kw map[string]Value) (Value, error)

// SpecialFunc implements a SpecialOp.  The call expression includes the
// operator itself at index 0.
type SpecialFunc func(rt *Runtime, env *Env, call *SExpr) (Value, error)

// Builtin is a function implemented in Go which receives evaluated
// arguments.
type Builtin struct {
	name string
	sig  *Signature
	fn   BuiltinFunc
}

// NewBuiltin returns a Builtin with the given name, signature and
// implementation.
func NewBuiltin(name string, sig *Signature, fn BuiltinFunc) *Builtin {
	return &Builtin{name: name, sig: sig, fn: fn}
}

func (*Builtin) isValue()               {}
func (*Builtin) Type() LValType         { return LFun }
func (b *Builtin) Name() string         { return b.name }
func (b *Builtin) Signature() *Signature { return b.sig }
func (b *Builtin) String() string       { return "<builtin " + b.name + ">" }

// SpecialOp is an operator implemented in Go which controls the evaluation
// of its own operands.
type SpecialOp struct {
	name string
	sig  *Signature
	fn   SpecialFunc
}

// NewSpecialOp returns a SpecialOp with the given name, operand signature and
// implementation.
func NewSpecialOp(name string, sig *Signature, fn SpecialFunc) *SpecialOp {
	return &SpecialOp{name: name, sig: sig, fn: fn}
}

func (*SpecialOp) isValue()               {}
func (*SpecialOp) Type() LValType         { return LFun }
func (op *SpecialOp) Name() string         { return op.name }
func (op *SpecialOp) Signature() *Signature { return op.sig }
func (op *SpecialOp) String() string       { return "<special-op " + op.name + ">" }

// Closure is a user-defined function.  It holds a reference to the live frame
// in which it was created, not a copy.
type Closure struct {
	name   string
	sig    *Signature
	params []string
	env    *Env
	body   []Node
	source *token.Location
}

func (*Closure) isValue()               {}
func (*Closure) Type() LValType         { return LFun }
func (c *Closure) Name() string         { return c.name }
func (c *Closure) Signature() *Signature { return c.sig }

// Source returns the location of the expression that created c.
func (c *Closure) Source() *token.Location { return c.source }

// Env returns the frame captured by c.
func (c *Closure) Env() *Env { return c.env }

func (c *Closure) String() string {
	return "<function " + c.name + ">"
}

// makeClosure builds a closure from a parameter list of the form
// (a b :k1 default1 :k2 default2).  Keyword parameters must follow all
// positional parameters and a keyword without a default defaults to nil.
func makeClosure(name string, params *SExpr, body []Node, env *Env, source *token.Location) (*Closure, error) {
	c := &Closure{
		name:   name,
		env:    env,
		body:   body,
		source: source,
	}
	seen := make(map[string]bool)
	var keywords []Keyword
	for i := 0; i < params.Len(); i++ {
		a, ok := params.At(i).(*Atom)
		if !ok || !a.IsSymbol() {
			return nil, Errorf(TypeError, "%s: parameter is not a symbol: %v", name, params.At(i))
		}
		if a.IsKeyword() {
			kw := Keyword{Name: a.Keyword()}
			if i+1 < params.Len() && !isKeywordNode(params.At(i+1)) {
				kw.Expr = params.At(i + 1)
				i++
			}
			if seen[kw.Name] {
				return nil, Errorf(TypeError, "%s: duplicate parameter: %s", name, kw.Name)
			}
			seen[kw.Name] = true
			keywords = append(keywords, kw)
			continue
		}
		if len(keywords) > 0 {
			return nil, Errorf(TypeError, "%s: positional parameter %s follows keyword parameters", name, a.Text())
		}
		if seen[a.Text()] {
			return nil, Errorf(TypeError, "%s: duplicate parameter: %s", name, a.Text())
		}
		seen[a.Text()] = true
		c.params = append(c.params, a.Text())
	}
	c.sig = Fixed(len(c.params)).WithKeywords(keywords...)
	return c, nil
}

func isKeywordNode(n Node) bool {
	a, ok := n.(*Atom)
	return ok && a.IsKeyword()
}
