package parser_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opensdraw/lcad/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const benchSource = `
; a small model
(def brick (x y)
  (translate (list (* x 20) (* y 20) 0)
    (part "3001" 4)))

(for (i 10)
  (for (j 10)
    (brick i j)))
`

func TestParseString(t *testing.T) {
	forms, err := parser.ParseString("bench", benchSource)
	require.NoError(t, err)
	assert.Len(t, forms, 2)
	assert.Equal(t, "bench", forms[0].Source().File)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.lcad")
	require.NoError(t, os.WriteFile(path, []byte(benchSource), 0o600))
	forms, err := parser.ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, forms, 2)
	assert.Equal(t, path, forms[1].Source().File)
	assert.Equal(t, 7, forms[1].Source().Line)

	_, err = parser.ParseFile(filepath.Join(t.TempDir(), "missing.lcad"))
	assert.Error(t, err)
}

func BenchmarkParser(b *testing.B) {
	source := strings.Repeat(benchSource, 50)
	b.SetBytes(int64(len(source)))
	for i := 0; i < b.N; i++ {
		_, err := parser.ParseString("bench", source)
		if err != nil {
			b.Fatal(err)
		}
	}
}
