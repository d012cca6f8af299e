package cmd

import (
	"fmt"
	"os"

	"github.com/opensdraw/lcad/config"
	"github.com/opensdraw/lcad/lisp"
	"github.com/opensdraw/lcad/lisp/lisplib"
	"github.com/opensdraw/lcad/lisp/lisplib/libtesting"
	"github.com/spf13/cobra"
)

var testVerbose bool

var testCmd = &cobra.Command{
	Use:   "test FILE...",
	Short: "Run the tests declared in lcad files",
	Long: `Evaluate each file and run the tests it declares with the test operator.
The command fails if a file cannot be evaluated or any test fails.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := loadConfig()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		failed := 0
		for _, path := range args {
			n, err := testFile(c, path)
			if err != nil {
				lisp.Render(os.Stderr, err)
				failed++
				continue
			}
			failed += n
		}
		if failed > 0 {
			fmt.Fprintln(os.Stderr, "FAIL")
			os.Exit(1)
		}
		fmt.Println("PASS")
	},
}

// testFile runs the tests in path and returns the number of failed tests.
func testFile(c *config.Config, path string) (int, error) {
	suite := libtesting.NewTestSuite()
	reg, err := lisplib.NewRegistry()
	if err != nil {
		return 0, err
	}
	err = suite.LoadPackage(reg)
	if err != nil {
		return 0, err
	}
	rt, err := newRuntimeRegistry(reg, c)
	if err != nil {
		return 0, err
	}
	_, err = rt.LoadFile(rt.TopLevel(), path)
	if err != nil {
		return 0, err
	}
	failed := 0
	for i := 0; i < suite.Len(); i++ {
		test := suite.Test(i)
		rt.Reset(0)
		err := test.Run(rt)
		if err != nil {
			failed++
			fmt.Printf("--- FAIL: %s (%s)\n", test.Name, path)
			lisp.Render(os.Stdout, err)
			continue
		}
		if testVerbose {
			fmt.Printf("--- PASS: %s (%s)\n", test.Name, path)
		}
	}
	return failed, nil
}

func init() {
	rootCmd.AddCommand(testCmd)

	testCmd.Flags().BoolVarP(&testVerbose, "verbose", "v", false,
		"Report passing tests")
}
