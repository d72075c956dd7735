package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// GetFlag gets an expected boolean flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string flag, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetFloat64 gets an expected float64 flag, or exits if an error arises.
func GetFloat64(cmd *cobra.Command, flag string) float64 {
	r, err := cmd.Flags().GetFloat64(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetInt gets an expected int flag, or exits if an error arises.
func GetInt(cmd *cobra.Command, flag string) int {
	r, err := cmd.Flags().GetInt(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// exitOnError prints err and exits with status 1, the pattern this
// codebase's subcommands use for unrecoverable CLI-time failures.
func exitOnError(err error) {
	if err == nil {
		return
	}

	fmt.Println(err)
	os.Exit(1)
}

// exitOnDocError wraps err with the path of the document being loaded
// before exiting, so a failure during parsing or construction always names
// the file it came from.
func exitOnDocError(path string, err error) {
	if err == nil {
		return
	}

	exitOnError(fmt.Errorf("%s: %w", path, err))
}
