package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pyext version %s\n", Version)
		fmt.Fprintln(cmd.OutOrStdout(), "Python extension builder for pkg-config libraries")
	},
}
