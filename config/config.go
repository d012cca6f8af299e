// Package config reads the YAML configuration file of the lcad command.
//
//	library_path:
//	  - lib
//	  - /usr/share/lcad
//	frames: 10
//	max_call_depth: 5000
//
// Relative library directories are resolved against the directory containing
// the configuration file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/opensdraw/lcad/lisp"
	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the lcad subcommands.
type Config struct {
	LibraryPath  []string `yaml:"library_path"`
	Frames       int      `yaml:"frames"`
	MaxCallDepth int      `yaml:"max_call_depth"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Frames:       1,
		MaxCallDepth: lisp.DefaultMaxCallDepth,
	}
}

// Load reads the configuration file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	dir := filepath.Dir(path)
	for i, p := range c.LibraryPath {
		if !filepath.IsAbs(p) {
			c.LibraryPath[i] = filepath.Join(dir, p)
		}
	}
	return c, nil
}

// Parse decodes a configuration from r.  Settings missing from r keep their
// default values and unknown settings are an error.
func Parse(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	err := dec.Decode(c)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	err = c.Validate()
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks that the settings are in range.
func (c *Config) Validate() error {
	if c.Frames < 1 {
		return fmt.Errorf("frames must be positive: %d", c.Frames)
	}
	if c.MaxCallDepth < 0 {
		return fmt.Errorf("max_call_depth must not be negative: %d", c.MaxCallDepth)
	}
	return nil
}

// RuntimeConfig returns the runtime options corresponding to c.
func (c *Config) RuntimeConfig() []lisp.Config {
	return []lisp.Config{
		lisp.WithLibraryPath(c.LibraryPath...),
		lisp.WithMaxCallDepth(c.MaxCallDepth),
	}
}
