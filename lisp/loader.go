package lisp

import (
	"os"
	"path/filepath"
	"strings"
)

// Module is an evaluated source file.  Every binding in Env is exported.
type Module struct {
	Name string
	Path string
	Env  *Env
}

type loading struct {
	name string
	path string
}

// Loader resolves import names to files and caches evaluated modules by
// canonical path for the lifetime of the Loader.
type Loader struct {
	paths   []string
	modules map[string]*Module
	loading []loading
	loads   map[string]int
}

// NewLoader returns a Loader searching the given library directories after
// the directory of the importing script.
func NewLoader(paths ...string) *Loader {
	l := &Loader{
		modules: make(map[string]*Module),
		loads:   make(map[string]int),
	}
	l.AddPath(paths...)
	return l
}

// AddPath appends library directories to the search path.  Directories
// already present are ignored.
func (l *Loader) AddPath(dirs ...string) {
	for _, dir := range dirs {
		if dir == "" || l.hasPath(dir) {
			continue
		}
		l.paths = append(l.paths, dir)
	}
}

func (l *Loader) hasPath(dir string) bool {
	for _, p := range l.paths {
		if p == dir {
			return true
		}
	}
	return false
}

// Paths returns the library search path.
func (l *Loader) Paths() []string {
	return append([]string(nil), l.paths...)
}

// Resolve returns the canonical path of the module called name, searching
// dir and then the library path.
func (l *Loader) Resolve(dir, name string) (string, error) {
	if name == "" || strings.HasPrefix(name, ".") || filepath.IsAbs(name) {
		return "", ErrorConditionf(ImportError, "invalid-module-name", "invalid module name: %q", name)
	}
	file := filepath.FromSlash(name) + SourceExt
	for _, d := range append([]string{dir}, l.paths...) {
		candidate := filepath.Join(d, file)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		return canonicalPath(candidate)
	}
	return "", ErrorConditionf(ImportError, "module-not-found", "module not found: %s", name)
}

// Load returns the module called name, evaluating it with rt if it has not
// been loaded before.  The module is evaluated against a fresh Context so
// parts emitted by its top level are discarded.  A module which is still being loaded cannot be
// imported again.  Failed loads are not cached.
func (l *Loader) Load(rt *Runtime, name string) (*Module, error) {
	path, err := l.Resolve(rt.CurrentDir(), name)
	if err != nil {
		return nil, err
	}
	if mod, ok := l.modules[path]; ok {
		return mod, nil
	}
	for i, ld := range l.loading {
		if ld.path != path {
			continue
		}
		chain := make([]string, 0, len(l.loading)-i+1)
		for _, ld := range l.loading[i:] {
			chain = append(chain, ld.name)
		}
		chain = append(chain, name)
		return nil, ErrorConditionf(ImportError, "import-cycle", "import cycle: %s", strings.Join(chain, " -> "))
	}
	l.loading = append(l.loading, loading{name: name, path: path})
	defer func() { l.loading = l.loading[:len(l.loading)-1] }()

	l.loads[path]++
	env := NewEnv(rt.Registry.Globals())
	ctx := rt.Context
	rt.Context = NewContext(ctx.FrameIndex)
	_, err = rt.LoadFile(env, path)
	rt.Context = ctx
	if err != nil {
		return nil, err
	}
	mod := &Module{Name: name, Path: path, Env: env}
	l.modules[path] = mod
	return mod, nil
}

// LoadCount returns the number of times the top level of the module at path
// has been evaluated.
func (l *Loader) LoadCount(path string) int {
	canon, err := canonicalPath(path)
	if err != nil {
		return 0
	}
	return l.loads[canon]
}

// Modules returns the number of cached modules.
func (l *Loader) Modules() int {
	return len(l.modules)
}

func canonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &Error{Kind: ImportError, Message: err.Error(), Cause: err}
	}
	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", &Error{Kind: ImportError, Message: err.Error(), Cause: err}
	}
	return real, nil
}
