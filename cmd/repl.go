package cmd

import (
	"fmt"
	"os"

	"github.com/opensdraw/lcad/repl"
	"github.com/spf13/cobra"
)

var replPrompt string

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Evaluate lcad expressions interactively",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		c, err := loadConfig()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		rt, err := newRuntime(c)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		err = repl.RunRepl(rt, replPrompt)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().StringVar(&replPrompt, "prompt", "lcad> ", "Input prompt")
}
