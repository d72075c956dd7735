package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/flightdyn/fdcore/pkg/property"
	"github.com/flightdyn/fdcore/pkg/script"
)

var scriptCmd = &cobra.Command{
	Use:   "script [flags] script-document",
	Short: "Load a script and drive it through a fixed number of ticks.",
	Long: `Load a <runscript> document against a fresh Property Registry and call
runOneTick repeatedly until it reports done or --max-ticks is reached,
printing sim-time-sec after every tick.`,
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)

		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		registry := property.NewRegistry()

		engine, err := script.NewEngine(registry)
		exitOnError(err)

		exitOnError(engine.LoadScript(args[0]))

		maxTicks := GetInt(cmd, "max-ticks")

		for i := 0; i < maxTicks; i++ {
			more, err := engine.RunOneTick()
			exitOnError(err)

			fmt.Printf("t=%v\n", engine.SimTime())

			if !more {
				log.Debugf("script: run settled after %d ticks", i+1)
				return
			}
		}

		fmt.Println("reached --max-ticks before the run settled")
	},
}

func init() {
	rootCmd.AddCommand(scriptCmd)
	scriptCmd.Flags().Int("max-ticks", 10000, "stop after this many ticks even if the run has not settled")
}
