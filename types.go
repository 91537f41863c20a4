package pyext

import (
	"context"
	"os"
)

// BuildResult contains the output and status of a build operation.
//
// After a build completes, this structure provides:
//   - Success status indicating if the build completed without errors
//   - Output lines captured from the build tools (stdout/stderr)
//   - Extensions list of installed files (shared objects and wrapper modules)
//   - Error information if the build failed
type BuildResult struct {
	Extension           string   // Name of the extension module built
	Success             bool     // True if build completed successfully
	Output              []string // Lines of output from the build process
	Extensions          []string // Paths to built or installed files
	Error               error    // Error if build failed, nil otherwise
	MissingDependencies []string // Names of build tools that were missing
}

// BuildConfig contains configuration for the build process.
//
// Source paths:
//   - SourceDir: Directory holding the interface file and wrapper modules
//   - WorkDir: Directory for generated and intermediate files (default SourceDir)
//   - DestPath: Where the shared object and wrapper modules are copied
//
// Tools default to the first of the usual names found in PATH; CC also
// honours $CC.
type BuildConfig struct {
	// Source paths
	SourceDir string
	WorkDir   string
	DestPath  string

	// Builder forces a builder by name ("SWIG", "SetupPy"). Empty selects by source file.
	Builder string

	// Tools
	Python string
	Swig   string
	CC     string

	// Build arguments
	BuildArgs []string          // Additional arguments for the compile step
	Env       map[string]string // Environment variables for build tools

	// Build options
	Verbose    bool
	CleanFirst bool

	// Failure handling
	StopOnFailure bool
}

func (c *BuildConfig) workDir() string {
	if c.WorkDir != "" {
		return c.WorkDir
	}
	if c.SourceDir != "" {
		return c.SourceDir
	}
	return "."
}

func (c *BuildConfig) sourceDir() string {
	if c.SourceDir != "" {
		return c.SourceDir
	}
	return "."
}

func (c *BuildConfig) python() string {
	if c.Python != "" {
		return c.Python
	}
	if python := defaultPython(); python != "python3" {
		return python
	}
	return firstAvailable("python3", "python")
}

func (c *BuildConfig) swig() string {
	if c.Swig != "" {
		return c.Swig
	}
	return "swig"
}

func (c *BuildConfig) cc() string {
	if c.CC != "" {
		return c.CC
	}
	if cc := os.Getenv("CC"); cc != "" {
		return cc
	}
	return firstAvailable("cc", "gcc", "clang")
}

// CommonBuildSteps defines the configure → build → find pattern shared by builders.
//
//  1. Configure: Generate intermediate files (SWIG wrapper, setup.py)
//  2. Build: Compile the shared object
//  3. Find: Locate the compiled files in the work directory
type CommonBuildSteps struct {
	// ConfigureFunc prepares the build (e.g., run swig, render setup.py)
	ConfigureFunc func(ctx context.Context, config *BuildConfig, workDir string, result *BuildResult) error

	// BuildFunc compiles the extension (e.g., run cc, setup.py build_ext)
	BuildFunc func(ctx context.Context, config *BuildConfig, workDir string, result *BuildResult) error

	// FindFunc locates the compiled files after build completes
	FindFunc func(workDir string) ([]string, error)
}
