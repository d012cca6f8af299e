// Package libtesting lets programs declare named tests and assertions.  Tests
// are collected into a TestSuite while a file is evaluated and run afterwards.
package libtesting

import (
	"fmt"

	"github.com/opensdraw/lcad/lisp"
	"github.com/opensdraw/lcad/parser/token"
)

// LoadPackage adds assert and a test operator collecting into a new suite to
// reg.  Use TestSuite.LoadPackage to keep a handle on the suite.
func LoadPackage(reg *lisp.Registry) error {
	return NewTestSuite().LoadPackage(reg)
}

// TestSuite is an ordered set of named tests.
type TestSuite struct {
	tests map[string]*Test
	order []string
}

// NewTestSuite returns an empty suite.
func NewTestSuite() *TestSuite {
	return &TestSuite{
		tests: make(map[string]*Test),
	}
}

// LoadPackage adds assert and a test operator adding tests to s to reg.
func (s *TestSuite) LoadPackage(reg *lisp.Registry) error {
	reg.DefineBuiltin("assert", lisp.Range(1, 2), builtinAssert)
	reg.DefineSpecialOp("test", lisp.AtLeast(1), s.OpTest)
	return nil
}

// Add appends t to the suite.  Test names must be unique.
func (s *TestSuite) Add(t *Test) error {
	if s.tests[t.Name] != nil {
		return fmt.Errorf("test with the same name already defined: %v", t.Name)
	}
	s.order = append(s.order, t.Name)
	s.tests[t.Name] = t
	return nil
}

// Len returns the number of tests in the suite.
func (s *TestSuite) Len() int {
	return len(s.order)
}

// Test returns the i-th test in definition order.
func (s *TestSuite) Test(i int) *Test {
	return s.tests[s.order[i]]
}

// OpTest implements (test name body...).  The body is evaluated later, by
// Test.Run, in a child of the frame where the test was declared.
func (s *TestSuite) OpTest(rt *lisp.Runtime, env *lisp.Env, call *lisp.SExpr) (lisp.Value, error) {
	name, err := rt.Eval(env, call.At(1))
	if err != nil {
		return nil, err
	}
	if name.Type() != lisp.LString {
		return nil, lisp.Errorf(lisp.TypeError, "test: first argument is not a string: %v", name.Type())
	}
	test := &Test{
		Name:   string(name.(lisp.String)),
		Source: call.Source(),
		env:    env,
		body:   call.Rest(2),
	}
	err = s.Add(test)
	if err != nil {
		return nil, lisp.Errorf(lisp.RuntimeError, "%v", err)
	}
	return lisp.Nil{}, nil
}

// Test is a named body of forms declared by a program.
type Test struct {
	Name   string
	Source *token.Location
	env    *lisp.Env
	body   []lisp.Node
}

// Run evaluates the body of t.  The test fails if evaluation returns an
// error.
func (t *Test) Run(rt *lisp.Runtime) error {
	_, err := rt.EvalBlock(t.env, t.body)
	return err
}

// builtinAssert raises an error when its first argument is false.
func builtinAssert(rt *lisp.Runtime, args []lisp.Value, kw map[string]lisp.Value) (lisp.Value, error) {
	if lisp.True(args[0]) {
		return lisp.Nil{}, nil
	}
	if len(args) > 1 {
		return nil, lisp.ErrorConditionf(lisp.RuntimeError, "assertion-failure", "assertion failed: %s", lisp.Display(args[1]))
	}
	return nil, lisp.ErrorConditionf(lisp.RuntimeError, "assertion-failure", "assertion failed")
}
