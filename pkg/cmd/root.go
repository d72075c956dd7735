// Package cmd implements the fdcore command-line surface: load a
// configuration document, evaluate named functions, query tables directly,
// and drive a loaded script through N ticks.
package cmd

import (
	"fmt"
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is set at link time (-ldflags "-X ..."); when it is empty, the
// module version from the build info is reported instead.
var Version string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "fdcore",
	Short: "A standalone evaluation core for flight-dynamics expression models.",
	Long: `fdcore loads a property-and-expression configuration document, evaluates
named functions against the Property Registry, queries lookup tables
directly, and drives a loaded script through a fixed number of ticks.`,
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "version") {
			fmt.Print("fdcore ")
			if Version != "" {
				fmt.Printf("%s", Version)
			} else if info, ok := debug.ReadBuildInfo(); ok {
				fmt.Printf("%s", info.Main.Version)
			} else {
				fmt.Printf("(unknown version)")
			}
			fmt.Println()

			return
		}

		fmt.Println(cmd.UsageString())
	},
}

// Execute adds all child commands to the root command and runs it. This is
// called by main.main().
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Bool("version", false, "report the version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
}

// configureLogging applies the --verbose persistent flag, the way every
// fdcore subcommand does before doing real work.
func configureLogging(cmd *cobra.Command) {
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
}
