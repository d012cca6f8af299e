package lisp

import (
	"bytes"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/opensdraw/lcad/model"
)

// DefaultSeed seeds the random number generator at the start of every run so
// repeated runs produce identical output.
const DefaultSeed = 1

// Reader parses a source stream into a sequence of top-level forms.
type Reader interface {
	Read(name string, r io.Reader) ([]Node, error)
}

// Context holds the state of one run of a program.  It is replaced for every
// frame index while function definitions and cached modules are kept.
type Context struct {
	FrameIndex int
	StepOffset Value
	Model      *model.Model
	Rand       *rand.Rand
}

// NewContext returns a Context for the given frame index with an empty
// model.
func NewContext(frame int) *Context {
	return &Context{
		FrameIndex: frame,
		StepOffset: Int(0),
		Model:      model.New(),
		Rand:       rand.New(rand.NewSource(DefaultSeed)),
	}
}

// Runtime is the state shared by all frames while evaluating a program.
type Runtime struct {
	Registry *Registry
	Loader   *Loader
	Stack    *CallStack
	Context  *Context
	Reader   Reader
	Stdout   io.Writer
	Stderr   io.Writer

	libPath []string
	files   []string
}

// NewRuntime returns a Runtime evaluating programs against the functions in
// reg.  If reg is nil a registry holding only the core language is used.
func NewRuntime(reg *Registry, config ...Config) (*Runtime, error) {
	if reg == nil {
		reg = NewRegistry()
	}
	rt := &Runtime{
		Registry: reg,
		Stack:    &CallStack{MaxHeight: DefaultMaxCallDepth},
		Context:  NewContext(0),
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}
	for _, fn := range config {
		err := fn(rt)
		if err != nil {
			return nil, err
		}
	}
	if rt.Loader == nil {
		rt.Loader = NewLoader()
	}
	rt.Loader.AddPath(rt.libPath...)
	return rt, nil
}

// Reset prepares rt for a new run with the given frame index.  The model,
// step offset and random number generator start over.  The module cache is
// kept.
func (rt *Runtime) Reset(frame int) {
	rt.Context = NewContext(frame)
	rt.Stack.Reset()
	rt.files = rt.files[:0]
}

// TopLevel returns a fresh top-level frame whose parent holds the registered
// functions.
func (rt *Runtime) TopLevel() *Env {
	return NewEnv(rt.Registry.Globals())
}

// CurrentFile returns the name of the source currently being evaluated.
func (rt *Runtime) CurrentFile() string {
	if len(rt.files) == 0 {
		return ""
	}
	return rt.files[len(rt.files)-1]
}

// CurrentDir returns the directory containing the script currently being
// evaluated.  Sources that are not files resolve relative to the working
// directory.
func (rt *Runtime) CurrentDir() string {
	name := rt.CurrentFile()
	if name == "" || strings.HasPrefix(name, "<") {
		return "."
	}
	return filepath.Dir(name)
}

// Load reads the source stream r and evaluates its forms in env.
func (rt *Runtime) Load(env *Env, name string, r io.Reader) (Value, error) {
	if rt.Reader == nil {
		return nil, Errorf(RuntimeError, "no reader configured")
	}
	nodes, err := rt.Reader.Read(name, r)
	if err != nil {
		return nil, err
	}
	rt.files = append(rt.files, name)
	defer func() { rt.files = rt.files[:len(rt.files)-1] }()
	return rt.EvalProgram(env, nodes)
}

// LoadFile evaluates the forms in the file at path.
func (rt *Runtime) LoadFile(env *Env, path string) (Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Kind: RuntimeError, Message: err.Error(), Cause: err}
	}
	defer f.Close()
	return rt.Load(env, path, f)
}

// LoadString evaluates the forms in source.
func (rt *Runtime) LoadString(env *Env, name, source string) (Value, error) {
	return rt.Load(env, name, bytes.NewBufferString(source))
}

// EvalProgram evaluates forms in order and returns the value of the last.
// An error aborts the remaining forms but does not undo earlier ones.
func (rt *Runtime) EvalProgram(env *Env, forms []Node) (Value, error) {
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

// StepOffset returns the current value of step-offset, calling it when it is
// a function.
func (rt *Runtime) StepOffset() (float64, error) {
	v := rt.Context.StepOffset
	if fn, ok := v.(Callable); ok {
		var err error
		v, err = rt.Call(fn)
		if err != nil {
			return 0, err
		}
	}
	x, ok := ToFloat(v)
	if !ok {
		return 0, Errorf(TypeError, "%s is not a number: %v", StepOffsetSymbol, v)
	}
	return x, nil
}

// lookupContext resolves the names held by the run context.
func (rt *Runtime) lookupContext(name string) (Value, bool) {
	switch name {
	case TimeIndexSymbol:
		return Int(rt.Context.FrameIndex), true
	case StepOffsetSymbol:
		return rt.Context.StepOffset, true
	}
	return nil, false
}

// assignContext updates the names held by the run context.
func (rt *Runtime) assignContext(name string, v Value) (bool, error) {
	switch name {
	case TimeIndexSymbol:
		return true, ErrorConditionf(RuntimeError, "read-only-binding", "cannot set %s", name)
	case StepOffsetSymbol:
		if _, ok := v.(Callable); !ok && !IsNumeric(v) {
			return true, Errorf(TypeError, "%s must be a number or a function: %v", name, v)
		}
		rt.Context.StepOffset = v
		return true, nil
	}
	return false, nil
}
