package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	pyext "github.com/contriboss/python-extension-go"
)

var buildOpts pyext.BuildConfig

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compile the extension module",
	Long: `Resolve the package descriptor and compile every extension module.

Examples:
  pyext build --source bindings/python --dest build/lib
  pyext build --builder setuppy
  pyext build --library libsigrok --forward-extra-flags`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	addBuildFlags(buildCmd)
	buildCmd.Flags().StringVar(&buildOpts.DestPath, "dest", "", "install directory for the built module")
	buildCmd.Flags().StringVar(&buildOpts.Builder, "builder", "", "force a builder (swig, setuppy)")
	buildCmd.Flags().StringVar(&buildOpts.Swig, "swig", "", "swig executable")
	buildCmd.Flags().StringVar(&buildOpts.CC, "cc", "", "C compiler (default $CC or cc)")
	buildCmd.Flags().BoolVarP(&buildOpts.Verbose, "verbose", "v", false, "show tool output")
	buildCmd.Flags().BoolVar(&buildOpts.CleanFirst, "clean-first", false, "clean before building")
}

// addBuildFlags registers the directory flags shared by build and clean.
func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&buildOpts.SourceDir, "source", ".", "directory with the interface file and modules")
	cmd.Flags().StringVar(&buildOpts.WorkDir, "work", "", "directory for generated files (default --source)")
	cmd.Flags().StringVar(&buildOpts.Python, "python", "", "Python interpreter (default $PYEXT_PYTHON or python3)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	pkg, err := resolvePackage(cmd)
	if err != nil {
		return err
	}

	opts := buildOpts
	if opts.Python == "" {
		opts.Python = config.Python
	}
	opts.StopOnFailure = true

	factory := pyext.NewBuilderFactory(logger)
	results, err := factory.BuildAll(cmd.Context(), &opts, pkg)

	out := cmd.OutOrStdout()
	for _, result := range results {
		if opts.Verbose {
			for _, line := range result.Output {
				fmt.Fprintln(out, line)
			}
		}
		if len(result.MissingDependencies) > 0 {
			fmt.Fprintf(out, "%s: missing tools: %v\n", result.Extension, result.MissingDependencies)
		}
		if result.Success {
			for _, path := range result.Extensions {
				fmt.Fprintf(out, "%s: %s\n", result.Extension, path)
			}
		}
	}

	if err != nil {
		return fmt.Errorf("building %s %s: %w", pkg.Name(), pkg.Version(), err)
	}
	return nil
}
