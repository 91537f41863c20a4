package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	pyext "github.com/contriboss/python-extension-go"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that build tools and the library are available",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		failed := false

		report := func(what string, err error) {
			if err != nil {
				failed = true
				fmt.Fprintf(out, "✗ %s: %v\n", what, err)
				return
			}
			fmt.Fprintf(out, "✓ %s\n", what)
		}

		report("pkg-config", pyext.CheckRequiredTools([]pyext.ToolRequirement{pyext.PkgConfigRequirement(config.PkgConfig)}))

		pc := pyext.NewPkgConfig(config.PkgConfig, logger)
		if config.PkgConfigPath != "" {
			pc.Env = map[string]string{"PKG_CONFIG_PATH": config.PkgConfigPath}
		}
		report(config.Library, pc.Exists(cmd.Context(), config.Library))

		for _, builder := range pyext.NewBuilderFactory(logger).ListBuilders() {
			if checker, ok := builder.(pyext.ToolChecker); ok {
				report(builder.Name()+" builder tools", checker.CheckTools())
			}
		}

		if failed {
			return fmt.Errorf("environment is not ready to build %s", config.Name)
		}
		return nil
	},
}
