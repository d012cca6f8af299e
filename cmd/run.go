package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/opensdraw/lcad/lisp"
	"github.com/spf13/cobra"
)

var (
	runExpression bool
	runPrint      bool
	runDump       bool
	runFrame      int
	runFrames     int
)

type runSource struct {
	name string
	text []byte
}

var runCmd = &cobra.Command{
	Use:   "run [flags] FILE...",
	Short: "Run lcad programs",
	Long: `Run lcad programs supplied via the command line or files.

Every program is evaluated once per frame, starting at the frame index given
by --frame.  Each frame starts with an empty model, a step offset of zero and
a freshly seeded random number generator.  Imported modules are loaded once.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		srcs, err := runReadSources(args)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		c, err := loadConfig()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if cmd.Flags().Changed("frames") {
			c.Frames = runFrames
		}
		if err := c.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		rt, err := newRuntime(c)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for frame := runFrame; frame < runFrame+c.Frames; frame++ {
			err := runFrameSources(rt, frame, srcs, c.Frames > 1)
			if err != nil {
				lisp.Render(os.Stderr, err)
				os.Exit(1)
			}
		}
	},
}

func runFrameSources(rt *lisp.Runtime, frame int, srcs []runSource, multi bool) error {
	rt.Reset(frame)
	env := rt.TopLevel()
	for _, src := range srcs {
		v, err := rt.LoadString(env, src.name, string(src.text))
		if err != nil {
			return err
		}
		if runPrint {
			fmt.Fprintln(rt.Stdout, v)
		}
	}
	if !runDump {
		return nil
	}
	return runDumpModel(rt.Stdout, rt, frame, multi)
}

func runDumpModel(w io.Writer, rt *lisp.Runtime, frame int, multi bool) error {
	if multi {
		fmt.Fprintf(w, "--- # frame %d\n", frame)
	}
	return rt.Context.Model.WriteYAML(w)
}

func runReadSources(args []string) ([]runSource, error) {
	srcs := make([]runSource, len(args))
	if runExpression {
		for i := range args {
			srcs[i] = runSource{name: fmt.Sprintf("<arg%d>", i+1), text: []byte(args[i])}
		}
		return srcs, nil
	}
	for i, path := range args {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		srcs[i] = runSource{name: path, text: b}
	}
	return srcs, nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lcad expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print the value of each program to stdout")
	runCmd.Flags().BoolVar(&runDump, "dump", false,
		"Write the resulting model to stdout as YAML")
	runCmd.Flags().IntVar(&runFrame, "frame", 0,
		"Frame index of the first run")
	runCmd.Flags().IntVar(&runFrames, "frames", 1,
		"Number of consecutive frames to run")
}
