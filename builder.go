package pyext

import "context"

// Builder defines the interface that all extension builders must implement.
//
// Each builder handles one way of turning an Extension descriptor into a
// loadable shared object and must implement these four methods to integrate
// with the BuilderFactory.
//
// # Builder Lifecycle
//
//  1. CanBuild() - Factory calls this with the extension's primary source file
//  2. Build() - Factory calls this to compile the extension
//  3. Clean() - Optional cleanup of generated and compiled files
//
// # Thread Safety
//
// Builder implementations should be stateless apart from their logger.
type Builder interface {
	// Name returns the human-readable name of this builder.
	//
	// This name is used in error messages, logs and BuildConfig.Builder.
	Name() string

	// CanBuild checks if this builder can handle the given source file.
	//
	// The sourceFile is the first entry of Extension.Sources,
	// e.g. "libsigrok_python.i".
	CanBuild(sourceFile string) bool

	// Build compiles ext, which belongs to pkg, and returns the result.
	//
	// Returns:
	//   - BuildResult with Success=true and Extensions list on success
	//   - BuildResult with Success=false and Error on failure
	Build(ctx context.Context, config *BuildConfig, pkg *Package, ext Extension) (*BuildResult, error)

	// Clean removes build artifacts.
	//
	// Returns nil if there is nothing to clean.
	Clean(ctx context.Context, config *BuildConfig, pkg *Package, ext Extension) error
}
