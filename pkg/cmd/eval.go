package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flightdyn/fdcore/pkg/docfmt"
	"github.com/flightdyn/fdcore/pkg/expr"
	"github.com/flightdyn/fdcore/pkg/property"
)

var evalCmd = &cobra.Command{
	Use:   "eval [flags] document function-name",
	Short: "Build a document's functions and print one function's value.",
	Long: `Parse a configuration document, build and publish every top-level
function it declares, then read and print the named function's current
value from the Property Registry.`,
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)

		if len(args) != 2 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		f, err := os.Open(args[0])
		exitOnDocError(args[0], err)
		defer f.Close()

		root, err := docfmt.Parse(f)
		exitOnDocError(args[0], err)

		registry := property.NewRegistry()

		_, err = expr.BuildDocument(registry, root)
		exitOnDocError(args[0], err)

		node := registry.LookupNode(args[1])
		if node == nil {
			exitOnError(fmt.Errorf("%s: unknown function %q", args[0], args[1]))
		}

		fmt.Println(registry.Read(node))
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)
}
