package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/flightdyn/fdcore/pkg/docfmt"
	"github.com/flightdyn/fdcore/pkg/property"
	"github.com/flightdyn/fdcore/pkg/table"
)

// printTableValue formats a lookup result, labelling the axes when stdout
// is a terminal and keeping bare values when it isn't, so the table
// subcommand composes cleanly in a pipeline.
func printTableValue(label string, value float64) {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Printf("%s = %v\n", label, value)
		return
	}

	fmt.Println(value)
}

var tableCmd = &cobra.Command{
	Use:   "table [flags] document",
	Short: "Parse a standalone <table> document and query it directly.",
	Long: `Parse a document whose root element is a <table> and interpolate it at
the keys given by --row, --col and --table-key, bypassing the Property
Registry's axis bindings entirely.`,
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

		tbl, err := table.BuildFromElement(registry, root)
		exitOnDocError(args[0], err)

		row := GetFloat64(cmd, "row")

		switch tbl.Rank() {
		case table.Rank1D:
			printTableValue(fmt.Sprintf("table(%v)", row), tbl.Lookup1D(row))
		case table.Rank2D:
			col := GetFloat64(cmd, "col")
			printTableValue(fmt.Sprintf("table(%v, %v)", row, col), tbl.Lookup2D(row, col))
		case table.Rank3D:
			col := GetFloat64(cmd, "col")
			tkey := GetFloat64(cmd, "table-key")
			printTableValue(fmt.Sprintf("table(%v, %v, %v)", row, col, tkey), tbl.Lookup3D(row, col, tkey))
		}
	},
}

func init() {
	rootCmd.AddCommand(tableCmd)
	tableCmd.Flags().Float64("row", 0, "row axis key")
	tableCmd.Flags().Float64("col", 0, "column axis key (rank 2 and 3 only)")
	tableCmd.Flags().Float64("table-key", 0, "table axis key (rank 3 only)")
}
