package lisp

import "io"

// Config is a function that configures a Runtime.
type Config func(rt *Runtime) error

// WithStderr returns a Config that makes the runtime write warnings and
// debugging output to w instead of the default, os.Stderr.
func WithStderr(w io.Writer) Config {
	return func(rt *Runtime) error {
		rt.Stderr = w
		return nil
	}
}

// WithStdout returns a Config that makes print write to w instead of the
// default, os.Stdout.
func WithStdout(w io.Writer) Config {
	return func(rt *Runtime) error {
		rt.Stdout = w
		return nil
	}
}

// WithLibraryPath returns a Config that appends dirs to the directories
// searched by import after the directory of the importing script.
func WithLibraryPath(dirs ...string) Config {
	return func(rt *Runtime) error {
		rt.libPath = append(rt.libPath, dirs...)
		return nil
	}
}

// WithFrameIndex returns a Config that sets the value of time-index for the
// first run.
func WithFrameIndex(n int) Config {
	return func(rt *Runtime) error {
		rt.Context.FrameIndex = n
		return nil
	}
}

// WithMaxCallDepth returns a Config that aborts evaluation with a
// RuntimeError when calls nest deeper than n.  A value of zero disables the
// limit.
func WithMaxCallDepth(n int) Config {
	return func(rt *Runtime) error {
		if n < 0 {
			return Errorf(RuntimeError, "invalid maximum call depth: %d", n)
		}
		rt.Stack.MaxHeight = n
		return nil
	}
}

// WithReader returns a Config that makes the runtime use r to parse source
// streams.  There is no default Reader for a runtime.
func WithReader(r Reader) Config {
	return func(rt *Runtime) error {
		rt.Reader = r
		return nil
	}
}

// WithLoader returns a Config that makes the runtime resolve imports using l.
// Sharing a Loader between runtimes shares its module cache.
func WithLoader(l *Loader) Config {
	return func(rt *Runtime) error {
		rt.Loader = l
		return nil
	}
}
