// ABOUTME: Version command printing build information.
// ABOUTME: Values are set at link time with -ldflags.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print version information",
	Annotations: map[string]string{"skipStore": "true"},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(out(cmd), "notely %s (commit %s, built %s)\n", version, commit, date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
