package cli

import (
	"github.com/spf13/cobra"

	pyext "github.com/contriboss/python-extension-go"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove generated and compiled files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pkg, err := resolvePackage(cmd)
		if err != nil {
			return err
		}
		opts := buildOpts
		if opts.Python == "" {
			opts.Python = config.Python
		}
		return pyext.NewBuilderFactory(logger).CleanAll(cmd.Context(), &opts, pkg)
	},
}

func init() {
	addBuildFlags(cleanCmd)
}
