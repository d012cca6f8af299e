package cmd

import (
	"fmt"
	"os"

	"github.com/opensdraw/lcad/lisp"
	"github.com/opensdraw/lcad/parser"
	"github.com/spf13/cobra"
)

var parseLocations bool

var parseCmd = &cobra.Command{
	Use:   "parse FILE...",
	Short: "Parse lcad files and print their forms",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, path := range args {
			forms, err := parser.ParseFile(path)
			if err != nil {
				lisp.Render(os.Stderr, err)
				os.Exit(1)
			}
			for _, form := range forms {
				if parseLocations {
					fmt.Printf("%s\t%s\n", form.Source(), form)
					continue
				}
				fmt.Println(form)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVarP(&parseLocations, "locations", "l", false,
		"Prefix each form with its source location")
}
