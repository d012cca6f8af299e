// Package repl implements an interactive read-eval-print loop.
package repl

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/opensdraw/lcad/lisp"
)

// RunRepl reads expressions from the terminal and evaluates them in a single
// top-level frame of rt until the input is closed.
func RunRepl(rt *lisp.Runtime, prompt string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: prompt,
		Stdout: rt.Stdout,
		Stderr: rt.Stderr,
	})
	if err != nil {
		return err
	}
	defer rl.Close()
	return Run(rt, rl, prompt)
}

// LineReader is the source of input lines for Run.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

// Run evaluates the lines read from rl.  Input is accumulated while the
// expressions read so far are incomplete.
func Run(rt *lisp.Runtime, rl LineReader, prompt string) error {
	env := rt.TopLevel()
	contPrompt := strings.Repeat(" ", len(prompt)) // prompt had better be ascii...

	var buf []string
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buf = nil
			rl.SetPrompt(prompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		buf = append(buf, line)
		src := strings.Join(buf, "\n")
		if strings.TrimSpace(src) == "" {
			buf = nil
			continue
		}
		v, err := rt.LoadString(env, "<repl>", src)
		if err != nil && incomplete(err) {
			rl.SetPrompt(contPrompt)
			continue
		}
		buf = nil
		rl.SetPrompt(prompt)
		if err != nil {
			lisp.Render(rt.Stderr, err)
			rt.Stack.Reset()
			continue
		}
		fmt.Fprintln(rt.Stdout, v)
	}
}

// incomplete returns true if err was caused by input ending in the middle of
// an expression.
func incomplete(err error) bool {
	lerr := lisp.AsError(err)
	return lerr.Kind == lisp.ParseError && lerr.Condition == "unexpected-eof"
}
