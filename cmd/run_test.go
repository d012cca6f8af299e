package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/opensdraw/lcad/config"
	"github.com/opensdraw/lcad/lisp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunFrames(t *testing.T) {
	defer func() { runExpression, runPrint, runDump = false, false, false }()
	runExpression, runPrint, runDump = true, true, true

	srcs, err := runReadSources([]string{`(part "3001" 4)`, "(+ time-index 1)"})
	require.NoError(t, err)
	assert.Equal(t, "<arg2>", srcs[1].name)

	var stdout bytes.Buffer
	rt, err := newRuntime(config.Default(), lisp.WithStdout(&stdout))
	require.NoError(t, err)
	for frame := 2; frame < 4; frame++ {
		require.NoError(t, runFrameSources(rt, frame, srcs, true))
	}
	out := stdout.String()
	assert.Contains(t, out, "<part 3001 4>\n3\n--- # frame 2\n")
	assert.Contains(t, out, "<part 3001 4>\n4\n--- # frame 3\n")
	assert.Equal(t, 1, rt.Context.Model.Len())

	err = runFrameSources(rt, 0, []runSource{{name: "bad", text: []byte("(+ 1 \"a\")")}}, false)
	assert.Equal(t, lisp.TypeError, lisp.ErrorKindOf(err))
}

func TestTestFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gear_test.lcad")
	require.NoError(t, os.WriteFile(path, []byte(`
(def teeth 8)
(test "teeth" (assert (= teeth 8)))
(test "broken" (assert (= teeth 9) "wrong count"))
(test "parts" (part "3001" 4) (assert (= 1 1)))`), 0o600))

	failed, err := testFile(config.Default(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	_, err = testFile(config.Default(), filepath.Join(dir, "missing.lcad"))
	assert.Error(t, err)
}
