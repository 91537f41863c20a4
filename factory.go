package pyext

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// BuilderFactory manages the registration and selection of extension builders.
//
// # Builder Selection
//
// When building an extension, the factory:
//  1. Uses BuildConfig.Builder when set, matched case-insensitively by Name()
//  2. Otherwise calls CanBuild() with the extension's first source file on
//     each registered builder in order
//  3. Returns ErrNoBuilder if no builder can handle it
//
// # Thread Safety
//
// BuilderFactory is NOT thread-safe for registration.
// Register all builders before concurrent use.
type BuilderFactory struct {
	builders []Builder
	logger   *zap.Logger
}

// NewBuilderFactory creates a factory with all standard builders registered.
//
// The standard builders are registered in this order:
//  1. SwigBuilder - .i interface files, compiled directly
//  2. SetupPyBuilder - anything setuptools can build
func NewBuilderFactory(logger *zap.Logger) *BuilderFactory {
	if logger == nil {
		logger = zap.NewNop()
	}
	factory := &BuilderFactory{logger: logger}

	// Register all standard builders in priority order
	factory.Register(NewSwigBuilder(logger))
	factory.Register(NewSetupPyBuilder(logger))

	return factory
}

// Register adds a new builder to the factory.
//
// Builders are checked in the order they are registered.
func (f *BuilderFactory) Register(builder Builder) {
	f.builders = append(f.builders, builder)
}

// BuilderFor returns the builder for the given source file. Only the base
// filename is used for matching.
func (f *BuilderFactory) BuilderFor(sourceFile string) (Builder, error) {
	filename := filepath.Base(sourceFile)

	for _, builder := range f.builders {
		if builder.CanBuild(filename) {
			return builder, nil
		}
	}

	return nil, fmt.Errorf("%w for source file: %s", ErrNoBuilder, filename)
}

// BuilderNamed returns the registered builder called name.
func (f *BuilderFactory) BuilderNamed(name string) (Builder, error) {
	for _, builder := range f.builders {
		if strings.EqualFold(builder.Name(), name) {
			return builder, nil
		}
	}
	return nil, fmt.Errorf("%w named %q", ErrNoBuilder, name)
}

// ListBuilders returns a copy of all registered builders.
func (f *BuilderFactory) ListBuilders() []Builder {
	return append([]Builder{}, f.builders...)
}

// BuildAll builds every extension of pkg in sequence.
//
// Returns one BuildResult per extension processed and the first error
// encountered. With config.StopOnFailure, processing stops after the first
// failed extension. A canceled context stops processing immediately.
func (f *BuilderFactory) BuildAll(ctx context.Context, config *BuildConfig, pkg *Package) ([]*BuildResult, error) {
	if err := pkg.Validate(); err != nil {
		return nil, err
	}

	extensions := pkg.Extensions()
	if len(extensions) == 0 {
		return nil, nil
	}

	var results []*BuildResult
	var firstError error

	record := func(err error) {
		if firstError == nil {
			firstError = err
		}
	}

	for _, ext := range extensions {
		// Check for context cancellation
		if ctxErr := ctx.Err(); ctxErr != nil {
			record(ctxErr)
			results = append(results, &BuildResult{Extension: ext.Name, Error: ctxErr})
			break
		}

		builder, err := f.selectBuilder(config, ext)
		if err != nil {
			record(err)
			results = append(results, &BuildResult{Extension: ext.Name, Error: err})
			if config.StopOnFailure {
				break
			}
			continue
		}

		if missing := f.missingTools(config, builder); len(missing) > 0 {
			err := fmt.Errorf("%w: %s", ErrToolNotFound, strings.Join(missing, ", "))
			record(err)
			results = append(results, &BuildResult{Extension: ext.Name, Error: err, MissingDependencies: missing})
			if config.StopOnFailure {
				break
			}
			continue
		}

		f.logger.Info("building extension",
			zap.String("package", pkg.Name()),
			zap.String("extension", ext.Name),
			zap.String("builder", builder.Name()))

		result, err := builder.Build(ctx, config, pkg, ext)
		if err != nil {
			record(err)
			// Ensure we have a result even if builder didn't return one
			if result == nil {
				result = &BuildResult{Extension: ext.Name, Error: err}
			}
			f.logger.Error("extension build failed", zap.String("extension", ext.Name), zap.Error(err))
		}

		results = append(results, result)

		if !result.Success && config.StopOnFailure {
			break
		}
	}

	return results, firstError
}

// CleanAll removes build artifacts of every extension of pkg.
func (f *BuilderFactory) CleanAll(ctx context.Context, config *BuildConfig, pkg *Package) error {
	for _, ext := range pkg.Extensions() {
		builder, err := f.selectBuilder(config, ext)
		if err != nil {
			return err
		}
		if err := builder.Clean(ctx, config, pkg, ext); err != nil {
			return &Error{Op: "clean", Package: pkg.Name(), Err: err}
		}
	}
	return nil
}

func (f *BuilderFactory) selectBuilder(config *BuildConfig, ext Extension) (Builder, error) {
	if config.Builder != "" {
		return f.BuilderNamed(config.Builder)
	}
	if len(ext.Sources) == 0 {
		return nil, fmt.Errorf("%w: extension %s has no sources", ErrNoBuilder, ext.Name)
	}
	return f.BuilderFor(ext.Sources[0])
}

// missingTools checks a ToolChecker's requirements, substituting the tool
// paths configured in config.
func (f *BuilderFactory) missingTools(config *BuildConfig, builder Builder) []string {
	checker, ok := builder.(ToolChecker)
	if !ok {
		return nil
	}

	reqs := checker.RequiredTools()
	for i, req := range reqs {
		var override string
		switch req.Name {
		case "swig":
			override = config.swig()
		case "cc":
			override = config.cc()
		case "python3":
			override = config.python()
		}
		if override != "" && override != req.Name {
			reqs[i] = ToolRequirement{Name: override, Optional: req.Optional, Purpose: req.Purpose}
		}
	}

	return MissingTools(reqs)
}
