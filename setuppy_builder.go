package pyext

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// SetupPyFile is the name of the generated packaging script.
const SetupPyFile = "setup.py"

// SetupPyBuilder hands the descriptor to setuptools.
//
// It renders a setup.py with every pkg-config value already resolved into
// the work directory and runs
//
//	python setup.py build_ext --build-lib <work> --build-temp <work>/build
//
// there, so setuptools drives swig and the compiler itself. Sources are
// referenced by absolute path and the source directory's own setup.py, if
// any, is never touched.
type SetupPyBuilder struct {
	logger *zap.Logger
}

// NewSetupPyBuilder creates a SetupPyBuilder.
func NewSetupPyBuilder(logger *zap.Logger) *SetupPyBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SetupPyBuilder{logger: logger}
}

// Name returns the builder name
func (b *SetupPyBuilder) Name() string {
	return "SetupPy"
}

// RequiredTools returns the tools needed for setuptools builds
func (b *SetupPyBuilder) RequiredTools() []ToolRequirement {
	return []ToolRequirement{
		{
			Name:         "python3",
			Alternatives: []string{"python"},
			Purpose:      "Python interpreter with setuptools",
		},
	}
}

// CheckTools verifies that Python is available
func (b *SetupPyBuilder) CheckTools() error {
	return CheckRequiredTools(b.RequiredTools())
}

// CanBuild checks if this builder can handle the source file
func (b *SetupPyBuilder) CanBuild(sourceFile string) bool {
	return MatchesExtension(sourceFile, ".i", ".c", ".cc", ".cpp", ".cxx")
}

// Build renders setup.py and runs build_ext
func (b *SetupPyBuilder) Build(ctx context.Context, config *BuildConfig, pkg *Package, ext Extension) (*BuildResult, error) {
	return runCommonBuild(ctx, config, pkg, ext, CommonBuildSteps{
		ConfigureFunc: func(ctx context.Context, config *BuildConfig, workDir string, result *BuildResult) error {
			return b.writeSetupPy(config, pkg, workDir, result)
		},
		BuildFunc: b.runBuildExt,
		FindFunc: func(workDir string) ([]string, error) {
			return findSharedObjects(workDir, ext.Name)
		},
	})
}

// Clean runs setup.py clean and removes what the build generated.
// A setup.py without the generated header is left in place.
func (b *SetupPyBuilder) Clean(ctx context.Context, config *BuildConfig, pkg *Package, ext Extension) error {
	workDir := config.workDir()
	setupPath := filepath.Join(workDir, SetupPyFile)

	generated, err := isGeneratedSetupPy(setupPath)
	if err != nil {
		return err
	}
	if generated {
		// Ignore errors - setuptools may not be importable any more
		_ = runTool(ctx, config, workDir, config.python(), []string{SetupPyFile, "clean", "--all"}, &BuildResult{})
	}

	var targets []string
	built, err := findSharedObjects(workDir, ext.Name)
	if err != nil {
		return err
	}
	for _, rel := range built {
		targets = append(targets, filepath.Join(workDir, rel))
	}

	// setuptools writes the swig wrapper next to the interface file
	if iface := ext.Interface(); iface != "" {
		src := filepath.Join(config.sourceDir(), iface)
		targets = append(targets, filepath.Join(filepath.Dir(src), wrapperFileName(iface)))
	}

	if !sameDir(workDir, config.sourceDir()) {
		for _, module := range pkg.PyModules() {
			targets = append(targets, filepath.Join(workDir, moduleFileName(module)))
		}
	}

	if generated {
		targets = append(targets, setupPath)
	}

	for _, target := range targets {
		if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
			return err
		}
		b.logger.Debug("removed", zap.String("path", target))
	}

	return nil
}

// writeSetupPy renders the descriptor into <work>/setup.py
func (b *SetupPyBuilder) writeSetupPy(config *BuildConfig, pkg *Package, workDir string, result *BuildResult) error {
	setupPath := filepath.Join(workDir, SetupPyFile)

	if _, err := os.Stat(setupPath); err == nil {
		generated, err := isGeneratedSetupPy(setupPath)
		if err != nil {
			return BuildError(b.Name(), result.Output, err)
		}
		if !generated {
			return BuildError(b.Name(), result.Output,
				fmt.Errorf("refusing to overwrite %s; set a separate work directory", setupPath))
		}
	}

	rendered, err := b.resolvedPackage(config, pkg, workDir)
	if err != nil {
		return BuildError(b.Name(), result.Output, err)
	}

	var buf bytes.Buffer
	if err := RenderSetupPy(&buf, rendered); err != nil {
		return BuildError(b.Name(), result.Output, err)
	}

	if err := os.WriteFile(setupPath, buf.Bytes(), 0o644); err != nil {
		return BuildError(b.Name(), result.Output, err)
	}

	b.logger.Debug("wrote setup.py", zap.String("path", setupPath))
	if config.Verbose {
		result.Output = append(result.Output, "Generated "+setupPath)
	}
	return nil
}

// resolvedPackage returns pkg with sources made absolute against the source
// directory and swig's shadow module directed into the work directory.
func (b *SetupPyBuilder) resolvedPackage(config *BuildConfig, pkg *Package, workDir string) (*Package, error) {
	srcAbs, err := filepath.Abs(config.sourceDir())
	if err != nil {
		return nil, err
	}
	workAbs, err := filepath.Abs(workDir)
	if err != nil {
		return nil, err
	}

	exts := pkg.Extensions()
	for i := range exts {
		for j, src := range exts[i].Sources {
			if !filepath.IsAbs(src) {
				exts[i].Sources[j] = filepath.Join(srcAbs, src)
			}
		}
		if exts[i].Interface() != "" {
			exts[i].SwigOpts = append(exts[i].SwigOpts, "-outdir", workAbs)
		}
	}

	return NewPackage(pkg.Name(), pkg.Version(), pkg.Description(), pkg.PyModules(), exts...), nil
}

// runBuildExt executes python setup.py build_ext
func (b *SetupPyBuilder) runBuildExt(ctx context.Context, config *BuildConfig, workDir string, result *BuildResult) error {
	workAbs, err := filepath.Abs(workDir)
	if err != nil {
		return err
	}

	if config.CleanFirst {
		_ = runTool(ctx, config, workDir, config.python(), []string{SetupPyFile, "clean", "--all"}, result)
	}

	args := []string{SetupPyFile, "build_ext", "--build-lib", workAbs, "--build-temp", filepath.Join(workAbs, "build")}
	args = append(args, config.BuildArgs...)

	if err := runTool(ctx, config, workDir, config.python(), args, result); err != nil {
		return BuildError(b.Name(), result.Output, err)
	}

	return nil
}

// isGeneratedSetupPy reports whether path holds a setup.py written by
// RenderSetupPy. A missing file is not generated.
func isGeneratedSetupPy(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return bytes.HasPrefix(data, []byte(setupPyHeader)), nil
}
