package cmd

import (
	"fmt"
	"os"

	"github.com/opensdraw/lcad/config"
	"github.com/opensdraw/lcad/lisp"
	"github.com/opensdraw/lcad/lisp/lisplib"
	"github.com/opensdraw/lcad/parser"
	"github.com/spf13/cobra"
)

var (
	rootConfig  string
	rootLibPath []string
)

var rootCmd = &cobra.Command{
	Use:   "lcad",
	Short: "Build LDraw models with lisp programs",
	Long: `Evaluate lcad programs.  Programs place parts, lines and other primitives
into a model which can be dumped once for every requested frame.`,
	SilenceUsage: true,
}

// Execute runs the lcad command line.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the file named by --config, if any, and appends the
// directories given with --lib to its library path.
func loadConfig() (*config.Config, error) {
	c := config.Default()
	if rootConfig != "" {
		var err error
		c, err = config.Load(rootConfig)
		if err != nil {
			return nil, err
		}
	}
	c.LibraryPath = append(c.LibraryPath, rootLibPath...)
	return c, nil
}

// newRuntime returns a runtime holding the complete function library.
func newRuntime(c *config.Config, opts ...lisp.Config) (*lisp.Runtime, error) {
	reg, err := lisplib.NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to load library: %w", err)
	}
	return newRuntimeRegistry(reg, c, opts...)
}

func newRuntimeRegistry(reg *lisp.Registry, c *config.Config, opts ...lisp.Config) (*lisp.Runtime, error) {
	rtConfig := append([]lisp.Config{lisp.WithReader(parser.NewReader())}, c.RuntimeConfig()...)
	rt, err := lisp.NewRuntime(reg, append(rtConfig, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize runtime: %w", err)
	}
	return rt, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfig, "config", "",
		"Read settings from a YAML configuration file")
	rootCmd.PersistentFlags().StringArrayVarP(&rootLibPath, "lib", "L", nil,
		"Add a directory to the module search path (repeatable)")
}
