package lisp_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/opensdraw/lcad/lisp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, src := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(src), 0o600))
	}
}

func TestLoader_import(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"mod1.lcad":  "(def add1 (x) (+ x 1))\n(def k 10)",
		"main.lcad":  "(import mod1)\n(mod1:add1 mod1:k)",
		"local.lcad": "(import mod1 :local)\n(add1 k)",
		"bare.lcad":  "(import mod1)\n(add1 1)",
	})
	rt, _ := newRuntime(t)

	v, err := rt.LoadFile(rt.TopLevel(), filepath.Join(dir, "main.lcad"))
	require.NoError(t, err)
	assert.Equal(t, lisp.Int(11), v)

	v, err = rt.LoadFile(rt.TopLevel(), filepath.Join(dir, "local.lcad"))
	require.NoError(t, err)
	assert.Equal(t, lisp.Int(11), v)

	_, err = rt.LoadFile(rt.TopLevel(), filepath.Join(dir, "bare.lcad"))
	assert.Equal(t, lisp.NameError, lisp.ErrorKindOf(err))

	// Three scripts imported the module but its top level ran once.
	assert.Equal(t, 1, rt.Loader.LoadCount(filepath.Join(dir, "mod1.lcad")))
	assert.Equal(t, 1, rt.Loader.Modules())
}

func TestLoader_sharedCache(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"shapes.lcad": `(print "loading shapes")
(def frame () time-index)`,
		"a.lcad": "(import shapes)\n(shapes:frame)",
	})
	loader := lisp.NewLoader()
	rt1, out1 := newRuntime(t, lisp.WithLoader(loader))
	rt2, out2 := newRuntime(t, lisp.WithLoader(loader), lisp.WithFrameIndex(7))

	v, err := rt1.LoadFile(rt1.TopLevel(), filepath.Join(dir, "a.lcad"))
	require.NoError(t, err)
	assert.Equal(t, lisp.Int(0), v)
	v, err = rt2.LoadFile(rt2.TopLevel(), filepath.Join(dir, "a.lcad"))
	require.NoError(t, err)
	// The cached closure reads the frame index of the run calling it.
	assert.Equal(t, lisp.Int(7), v)

	rt1.Reset(3)
	v, err = rt1.LoadFile(rt1.TopLevel(), filepath.Join(dir, "a.lcad"))
	require.NoError(t, err)
	assert.Equal(t, lisp.Int(3), v)

	assert.Equal(t, "loading shapes\n", out1.String())
	assert.Equal(t, "", out2.String())
	assert.Equal(t, 1, loader.LoadCount(filepath.Join(dir, "shapes.lcad")))
}

func TestLoader_cycle(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.lcad":    "(import b)\n(def x 1)",
		"b.lcad":    "(import a)\n(def y 2)",
		"main.lcad": "(import a)",
	})
	rt, _ := newRuntime(t)
	for i := 0; i < 2; i++ {
		_, err := rt.LoadFile(rt.TopLevel(), filepath.Join(dir, "main.lcad"))
		require.Error(t, err)
		lerr := lisp.AsError(err)
		assert.Equal(t, lisp.ImportError, lerr.Kind)
		assert.Equal(t, "import-cycle", lerr.Condition)
		assert.Equal(t, "import cycle: a -> b -> a", lerr.Message)
		assert.Equal(t, "b.lcad", filepath.Base(lerr.Source.File))
	}
	// Failed loads are not cached so every attempt ran both modules again.
	assert.Equal(t, 0, rt.Loader.Modules())
	assert.Equal(t, 2, rt.Loader.LoadCount(filepath.Join(dir, "a.lcad")))
	assert.Equal(t, 2, rt.Loader.LoadCount(filepath.Join(dir, "b.lcad")))
}

func TestLoader_resolve(t *testing.T) {
	dir := t.TempDir()
	lib := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"gear.lcad":      "(def teeth 8)",
		"main.lcad":      "(import gear axle)\n(list gear:teeth axle:length)",
		"sub/inner.lcad": "(def z 1)",
		"nested.lcad":    "(import sub/inner)\nsub/inner:z",
	})
	writeFiles(t, lib, map[string]string{
		"gear.lcad": "(def teeth 24)",
		"axle.lcad": "(def length 6)",
	})
	rt, _ := newRuntime(t, lisp.WithLibraryPath(lib))
	assert.Equal(t, []string{lib}, rt.Loader.Paths())

	// The directory of the importing script is searched before the library
	// path.
	v, err := rt.LoadFile(rt.TopLevel(), filepath.Join(dir, "main.lcad"))
	require.NoError(t, err)
	assert.Equal(t, "(8 6)", v.String())

	v, err = rt.LoadFile(rt.TopLevel(), filepath.Join(dir, "nested.lcad"))
	require.NoError(t, err)
	assert.Equal(t, lisp.Int(1), v)

	for _, src := range []string{"(import nope)", "(import ../gear)", "(import 1)"} {
		_, err = rt.LoadString(rt.TopLevel(), "<test>", src)
		assert.Error(t, err, src)
	}
	_, err = rt.LoadString(rt.TopLevel(), "<test>", "(import nope)")
	assert.Equal(t, "module-not-found", lisp.AsError(err).Condition)

	_, err = rt.Loader.Resolve(dir, "gear")
	assert.NoError(t, err)
	_, err = rt.Loader.Resolve(dir, "/etc/passwd")
	assert.Equal(t, lisp.ImportError, lisp.ErrorKindOf(err))
}
