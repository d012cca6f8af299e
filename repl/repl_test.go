package repl

import (
	"bytes"
	"io"
	"testing"

	"github.com/chzyer/readline"
	"github.com/opensdraw/lcad/lisp"
	"github.com/opensdraw/lcad/lisp/lisplib"
	"github.com/opensdraw/lcad/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptReader struct {
	lines   []string
	prompts []string
}

func (r *scriptReader) Readline() (string, error) {
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	if line == "^C" {
		return "", readline.ErrInterrupt
	}
	return line, nil
}

func (r *scriptReader) SetPrompt(prompt string) {
	r.prompts = append(r.prompts, prompt)
}

func TestRun(t *testing.T) {
	reg, err := lisplib.NewRegistry()
	require.NoError(t, err)
	var stdout, stderr bytes.Buffer
	rt, err := lisp.NewRuntime(reg,
		lisp.WithReader(parser.NewReader()),
		lisp.WithStdout(&stdout),
		lisp.WithStderr(&stderr))
	require.NoError(t, err)

	rl := &scriptReader{lines: []string{
		"(def x 2)",
		"",
		"(+ x",
		"   3)",
		"(print \"a\" x)",
		"(+ 1",
		"^C",
		"(undefined)",
		"(format \"{} {}\" x (* x x))",
	}}
	require.NoError(t, Run(rt, rl, "> "))

	assert.Equal(t, "2\n5\na2\n\"a2\"\n\"2 4\"\n", stdout.String())
	assert.Equal(t, "<repl>:1:2: NameError: unbound symbol: undefined\n", stderr.String())
	assert.Equal(t, []string{"> ", "  ", "> ", "> ", "  ", "> ", "> ", "> "}, rl.prompts)
}

func TestIncomplete(t *testing.T) {
	for src, expect := range map[string]bool{
		"(+ 1":        true,
		"(list (+ 1)": true,
		`"abc`:        false,
		"(+ 1))":      false,
		"(undefined)": false,
	} {
		_, err := parser.ParseString("test", src)
		if !expect && err == nil {
			continue
		}
		require.Error(t, err, src)
		assert.Equal(t, expect, incomplete(err), src)
	}
}
