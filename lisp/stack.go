package lisp

import (
	"fmt"
	"io"

	"github.com/opensdraw/lcad/parser/token"
)

// CallStack is a function call stack.
type CallStack struct {
	Frames    []CallFrame
	MaxHeight int
}

// CallFrame is one frame in the CallStack
type CallFrame struct {
	Name    string
	Source  *token.Location
	Closure bool
}

// Height returns the number of frames on the stack.
func (s *CallStack) Height() int {
	return len(s.Frames)
}

// Top returns the CallFrame at the top of the stack or nil if none exists.
func (s *CallStack) Top() *CallFrame {
	if s == nil || len(s.Frames) == 0 {
		return nil
	}
	return &s.Frames[len(s.Frames)-1]
}

// TopClosure returns the innermost frame of a user-defined function or nil if
// no such frame exists.
func (s *CallStack) TopClosure() *CallFrame {
	if s == nil {
		return nil
	}
	for i := len(s.Frames) - 1; i >= 0; i-- {
		if s.Frames[i].Closure {
			return &s.Frames[i]
		}
	}
	return nil
}

// Push pushes a new frame onto s.  Push returns a RuntimeError instead if the
// stack has reached its maximum height.
func (s *CallStack) Push(name string, source *token.Location, closure bool) error {
	if s.MaxHeight > 0 && len(s.Frames) >= s.MaxHeight {
		return ErrorConditionf(RuntimeError, "stack-overflow", "maximum call depth exceeded (%d)", s.MaxHeight)
	}
	s.Frames = append(s.Frames, CallFrame{Name: name, Source: source, Closure: closure})
	return nil
}

// Pop removes the top CallFrame from the stack and returns it.
func (s *CallStack) Pop() CallFrame {
	if len(s.Frames) < 1 {
		panic("pop called on an empty stack")
	}
	f := s.Frames[len(s.Frames)-1]
	s.Frames[len(s.Frames)-1] = CallFrame{}
	s.Frames = s.Frames[:len(s.Frames)-1]
	return f
}

// Reset discards every frame.
func (s *CallStack) Reset() {
	s.Frames = s.Frames[:0]
}

// DebugPrint prints s
func (s *CallStack) DebugPrint(w io.Writer) (int, error) {
	n, err := fmt.Fprintf(w, "Stack Trace [%d frames -- entrypoint last]:\n", len(s.Frames))
	if err != nil {
		return n, err
	}
	for i := len(s.Frames) - 1; i >= 0; i-- {
		f := s.Frames[i]
		loc := "?"
		if f.Source != nil {
			loc = f.Source.String()
		}
		_n, err := fmt.Fprintf(w, "  height %d: %s at %s\n", i, f.Name, loc)
		n += _n
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
