// Package cli implements the pyext command line.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	pyext "github.com/contriboss/python-extension-go"
)

// Version is the pyext release, overridden at link time.
var Version = "0.1.0"

var (
	cfgFile   string
	library   string
	pkgConfig string
	forward   bool
	debug     bool

	config *pyext.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "pyext",
	Short: "Build Python extensions against pkg-config libraries",
	Long: `pyext - Python extension builder

Resolves compiler flags, linker flags and version of a native library through
pkg-config and compiles a SWIG interface into an importable extension module.`,
	Version:           Version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext executes the root command with ctx, which is cancelled on interrupt
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./pyext.yaml)")
	rootCmd.PersistentFlags().StringVar(&library, "library", "", "pkg-config module to query (overrides config)")
	rootCmd.PersistentFlags().StringVar(&pkgConfig, "pkg-config", "", "pkg-config executable (default $PKG_CONFIG or pkg-config)")
	rootCmd.PersistentFlags().BoolVar(&forward, "forward-extra-flags", false, "forward flags without -I/-L/-l markers to the compiler")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add commands
	rootCmd.AddCommand(configureCmd)
	rootCmd.AddCommand(setupPyCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(sdistCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	config, err = pyext.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return err
	}

	// Override config with flags
	if library != "" {
		config.Library = library
	}
	if pkgConfig != "" {
		config.PkgConfig = pkgConfig
	}
	if forward {
		config.ForwardExtraFlags = true
	}

	logger.Debug("loaded config",
		zap.String("file", cfgFile),
		zap.String("library", config.Library),
		zap.Bool("forward_extra_flags", config.ForwardExtraFlags))

	return nil
}

// resolvePackage runs the pkg-config queries for the loaded config.
func resolvePackage(cmd *cobra.Command) (*pyext.Package, error) {
	pkg, err := pyext.NewConfigurator(nil, logger).Configure(cmd.Context(), config)
	if err != nil {
		return nil, fmt.Errorf("configuring %s: %w", config.Library, err)
	}
	return pkg, nil
}
