package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/flightdyn/fdcore/pkg/docfmt"
	"github.com/flightdyn/fdcore/pkg/expr"
	"github.com/flightdyn/fdcore/pkg/property"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] document",
	Short: "Load and validate a configuration document.",
	Long: `Parse a configuration document and build every top-level function it
declares, reporting the first error encountered. Exits non-zero on any
MalformedDocument, UnknownOperator or MalformedTable failure.`,
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)

		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		f, err := os.Open(args[0])
		exitOnDocError(args[0], err)
		defer f.Close()

		root, err := docfmt.Parse(f)
		exitOnDocError(args[0], err)

		registry := property.NewRegistry()

		nodes, err := expr.BuildDocument(registry, root)
		exitOnDocError(args[0], err)

		log.Debugf("check: published %d functions", len(nodes))
		fmt.Printf("ok: %d functions published\n", len(nodes))
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
