package cli

import (
	"github.com/spf13/cobra"

	pyext "github.com/contriboss/python-extension-go"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Resolve and print the package descriptor",
	Long: `Query pkg-config for the configured library and print the resulting
package descriptor as YAML.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pkg, err := resolvePackage(cmd)
		if err != nil {
			return err
		}
		return pyext.WritePackageYAML(cmd.OutOrStdout(), pkg)
	},
}
