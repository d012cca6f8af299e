package lisp

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/opensdraw/lcad/parser/token"
)

// ErrorKind classifies an Error.
type ErrorKind uint

// Possible ErrorKind values
const (
	LexError ErrorKind = iota + 1
	ParseError
	NameError
	ArityError
	TypeError
	ImportError
	RuntimeError
)

var errorKindStrings = []string{
	0:            "Error",
	LexError:     "LexError",
	ParseError:   "ParseError",
	NameError:    "NameError",
	ArityError:   "ArityError",
	TypeError:    "TypeError",
	ImportError:  "ImportError",
	RuntimeError: "RuntimeError",
}

func (k ErrorKind) String() string {
	if int(k) >= len(errorKindStrings) {
		return errorKindStrings[0]
	}
	return errorKindStrings[k]
}

// TraceFrame is a function call enclosing the location of an Error.
type TraceFrame struct {
	Name   string
	Source *token.Location
}

// Error is the only error type produced by the reader and the evaluator.
// Source and Func are set where the error is raised.  Trace is extended as
// the error propagates out of each function call, so Trace[0] is the
// innermost call.
type Error struct {
	Kind      ErrorKind
	Condition string
	Message   string
	Source    *token.Location
	Func      string
	Trace     []TraceFrame

	// Expected and Actual describe an ArityError.
	Expected string
	Actual   int

	Cause error
}

// Errorf returns an Error of the given kind with a formatted message.
func Errorf(kind ErrorKind, format string, v ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, v...)}
}

// ErrorConditionf returns an Error of the given kind with a condition tag and
// a formatted message.
func ErrorConditionf(kind ErrorKind, condition string, format string, v ...interface{}) *Error {
	return &Error{Kind: kind, Condition: condition, Message: fmt.Sprintf(format, v...)}
}

// AsError converts err into an *Error.  Errors that are not already an *Error
// become a RuntimeError wrapping err.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var lerr *Error
	if errors.As(err, &lerr) {
		return lerr
	}
	return &Error{Kind: RuntimeError, Message: err.Error(), Cause: err}
}

// ErrorKindOf returns the kind of err or zero if err is not an *Error.
func ErrorKindOf(err error) ErrorKind {
	var lerr *Error
	if errors.As(err, &lerr) {
		return lerr.Kind
	}
	return 0
}

func (e *Error) Error() string {
	var buf bytes.Buffer
	if e.Source != nil {
		buf.WriteString(e.Source.String())
		buf.WriteString(": ")
	}
	buf.WriteString(e.Kind.String())
	buf.WriteString(": ")
	buf.WriteString(e.Message)
	return buf.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// MaxTraceLines is the number of distinct call frames written by WriteTrace.
const MaxTraceLines = 20

// WriteTrace writes the error followed by one line for each enclosing
// function call, innermost first.  Consecutive identical frames are written
// once with a repeat count.
func (e *Error) WriteTrace(w io.Writer) (int, error) {
	var buf bytes.Buffer
	buf.WriteString(e.Error())
	buf.WriteString("\n")
	if e.Func != "" && len(e.Trace) == 0 {
		fmt.Fprintf(&buf, "  in %s\n", e.Func)
	}
	lines := 0
	for i := 0; i < len(e.Trace); {
		if lines == MaxTraceLines {
			fmt.Fprintf(&buf, "  ... %d more frames\n", len(e.Trace)-i)
			break
		}
		f := e.Trace[i]
		n := 1
		for i+n < len(e.Trace) && sameFrame(e.Trace[i+n], f) {
			n++
		}
		fmt.Fprintf(&buf, "  in %s", f.Name)
		if f.Source != nil {
			fmt.Fprintf(&buf, " at %s", f.Source)
		}
		buf.WriteString("\n")
		if n > 1 {
			fmt.Fprintf(&buf, "  ... repeated %d more times\n", n-1)
		}
		lines++
		i += n
	}
	return w.Write(buf.Bytes())
}

func sameFrame(a, b TraceFrame) bool {
	if a.Name != b.Name {
		return false
	}
	if a.Source == nil || b.Source == nil {
		return a.Source == b.Source
	}
	return *a.Source == *b.Source
}

// Render is a helper for command line tools.  It writes err to w with its
// call trace when err is an *Error.
func Render(w io.Writer, err error) {
	var lerr *Error
	if errors.As(err, &lerr) {
		lerr.WriteTrace(w) //nolint:errcheck
		return
	}
	fmt.Fprintln(w, err)
}
