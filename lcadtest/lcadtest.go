// Package lcadtest runs language tests written either as tables of
// expressions in Go or as source files declaring tests with the test
// operator.
package lcadtest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/opensdraw/lcad/lisp"
	"github.com/opensdraw/lcad/lisp/lisplib"
	"github.com/opensdraw/lcad/lisp/lisplib/libtesting"
	"github.com/opensdraw/lcad/parser"
)

// Runner is a test runner.
type Runner struct {
	// Loader is the package loader used to initialize the test registry.
	// When Loader is nil lisplib.LoadLibrary is used.
	Loader func(*lisp.Registry) error
	// Config is applied to every runtime created by the runner.
	Config []lisp.Config
}

// NewRuntime returns a runtime whose test operator adds tests to suite.
func (r *Runner) NewRuntime(suite *libtesting.TestSuite, config ...lisp.Config) (*lisp.Runtime, error) {
	reg := lisp.NewRegistry()
	loader := r.Loader
	if loader == nil {
		loader = lisplib.LoadLibrary
	}
	err := loader(reg)
	if err != nil {
		return nil, fmt.Errorf("failed to load package library: %w", err)
	}
	if suite != nil {
		err = suite.LoadPackage(reg)
		if err != nil {
			return nil, fmt.Errorf("failed to load test package: %w", err)
		}
	}
	config = append([]lisp.Config{lisp.WithReader(parser.NewReader())}, append(r.Config, config...)...)
	rt, err := lisp.NewRuntime(reg, config...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize runtime: %w", err)
	}
	return rt, nil
}

// RunTestFile evaluates the file at path and then runs every test it
// declares as a subtest.  Each test runs against a fresh evaluation of the
// file.
func (r *Runner) RunTestFile(t *testing.T, path string) {
	source, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("Unable to read test file: %v", err)
		return
	}

	var names []string
	ok := t.Run("$load", func(t *testing.T) {
		suite, _, err := r.loadSuite(path, source)
		if err != nil {
			t.Error(err.Error())
			return
		}
		names = make([]string, suite.Len())
		for i := range names {
			names[i] = suite.Test(i).Name
		}
	})
	if !ok {
		return
	}

	for i := range names {
		// The result of t.Run is not checked so that one failing test does
		// not prevent the rest of the suite from running.
		t.Run(names[i], func(t *testing.T) {
			suite, rt, err := r.loadSuite(path, source)
			if err != nil {
				t.Error(err.Error())
				return
			}
			test := suite.Test(i)
			err = test.Run(rt)
			if err != nil {
				var buf bytes.Buffer
				lisp.Render(&buf, err)
				t.Errorf("%s: %s", test.Name, buf.String())
			}
		})
	}
}

func (r *Runner) loadSuite(path string, source []byte) (*libtesting.TestSuite, *lisp.Runtime, error) {
	suite := libtesting.NewTestSuite()
	rt, err := r.NewRuntime(suite, lisp.WithLibraryPath(filepath.Dir(path)))
	if err != nil {
		return nil, nil, err
	}
	_, err = rt.Load(rt.TopLevel(), filepath.Base(path), bytes.NewReader(source))
	if err != nil {
		var buf bytes.Buffer
		lisp.Render(&buf, err)
		return nil, nil, errors.New(buf.String())
	}
	return suite, rt, nil
}

// TestSequence is a sequence of expressions evaluated in order in the same
// top-level frame.
type TestSequence []struct {
	Expr   string // source text of one or more forms
	Result string // the printed value of the last form, or the error
	Output string // text written by print, checked when not empty
}

// TestSuite is a set of named TestSequences.
type TestSuite []struct {
	Name string
	TestSequence
}

// RunTestSuite runs each TestSequence in tests on an isolated runtime.  An
// error is compared to Result in the form "Kind: message".
func RunTestSuite(t *testing.T, tests TestSuite) {
	r := &Runner{}
	for i, test := range tests {
		var stdout bytes.Buffer
		rt, err := r.NewRuntime(nil, lisp.WithStdout(&stdout), lisp.WithStderr(&stdout))
		if err != nil {
			t.Fatalf("test %d %q: %v", i, test.Name, err)
		}
		env := rt.TopLevel()
		for j, expr := range test.TestSequence {
			stdout.Reset()
			result := EvalString(rt, env, expr.Expr)
			if result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
			if expr.Output != "" && stdout.String() != expr.Output {
				t.Errorf("test %d %q: expr %d: expected output %q (got %q)", i, test.Name, j, expr.Output, stdout.String())
			}
		}
	}
}

// EvalString evaluates src in env and returns the printed result.  Errors
// are returned as "Kind: message".
func EvalString(rt *lisp.Runtime, env *lisp.Env, src string) string {
	v, err := rt.LoadString(env, "test", src)
	if err != nil {
		lerr := lisp.AsError(err)
		return lerr.Kind.String() + ": " + lerr.Message
	}
	return v.String()
}
