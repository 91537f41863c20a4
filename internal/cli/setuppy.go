package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	pyext "github.com/contriboss/python-extension-go"
)

var setupPyOutput string

var setupPyCmd = &cobra.Command{
	Use:   "setup-py",
	Short: "Write a setup.py with resolved pkg-config values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pkg, err := resolvePackage(cmd)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := pyext.RenderSetupPy(&buf, pkg); err != nil {
			return err
		}

		if setupPyOutput == "-" {
			_, err = cmd.OutOrStdout().Write(buf.Bytes())
			return err
		}
		if err := os.WriteFile(setupPyOutput, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", setupPyOutput, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", setupPyOutput)
		return nil
	},
}

func init() {
	setupPyCmd.Flags().StringVarP(&setupPyOutput, "output", "o", pyext.SetupPyFile, "output file, - for stdout")
}
