package pyext

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap"
)

// pythonBuildInfoScript prints the header directory and the extension suffix
// of the target interpreter, one per line.
const pythonBuildInfoScript = `import sysconfig
print(sysconfig.get_paths()["include"])
print(sysconfig.get_config_var("EXT_SUFFIX") or ".so")`

// SwigBuilder compiles a SWIG interface file into a Python extension.
//
// The workflow is swig → cc -shared:
//
//	swig -python <swig_opts> -outdir <work> -o <work>/<name>_wrap.c <src>.i
//	cc -shared -fPIC -I<python> -I<include_dirs> -o <work>/<ext><suffix> \
//	    <work>/<name>_wrap.c -L<library_dirs> -l<libraries>
//
// SWIG also writes the Python shadow module (e.g. libsigrok.py) into the
// work directory; it is installed alongside the shared object.
type SwigBuilder struct {
	logger *zap.Logger
}

// NewSwigBuilder creates a SwigBuilder.
func NewSwigBuilder(logger *zap.Logger) *SwigBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SwigBuilder{logger: logger}
}

// Name returns the builder name
func (b *SwigBuilder) Name() string {
	return "SWIG"
}

// RequiredTools returns the tools needed for SWIG builds
func (b *SwigBuilder) RequiredTools() []ToolRequirement {
	return []ToolRequirement{
		{
			Name:    "swig",
			Purpose: "SWIG interface generator",
		},
		{
			Name:         "cc",
			Alternatives: []string{"gcc", "clang"},
			Purpose:      "C compiler for the generated wrapper",
		},
		{
			Name:         "python3",
			Alternatives: []string{"python"},
			Purpose:      "Python interpreter for header and suffix lookup",
		},
	}
}

// CheckTools verifies that swig, a C compiler and Python are available
func (b *SwigBuilder) CheckTools() error {
	return CheckRequiredTools(b.RequiredTools())
}

// CanBuild checks if this builder can handle the source file
func (b *SwigBuilder) CanBuild(sourceFile string) bool {
	return MatchesPattern(sourceFile, `\.i$`)
}

// Build compiles the extension using the swig → cc workflow
func (b *SwigBuilder) Build(ctx context.Context, config *BuildConfig, pkg *Package, ext Extension) (*BuildResult, error) {
	iface := ext.Interface()
	if iface == "" {
		err := fmt.Errorf("%w: extension %s has no .i source", ErrInvalidPackage, ext.Name)
		return &BuildResult{Extension: ext.Name, Error: err}, err
	}

	wrapper := wrapperFileName(iface)

	return runCommonBuild(ctx, config, pkg, ext, CommonBuildSteps{
		ConfigureFunc: func(ctx context.Context, config *BuildConfig, workDir string, result *BuildResult) error {
			return b.runSwig(ctx, config, workDir, ext, iface, wrapper, result)
		},
		BuildFunc: func(ctx context.Context, config *BuildConfig, workDir string, result *BuildResult) error {
			return b.runCompiler(ctx, config, workDir, ext, wrapper, result)
		},
		FindFunc: func(workDir string) ([]string, error) {
			return findSharedObjects(workDir, ext.Name)
		},
	})
}

// Clean removes the generated wrapper and the compiled shared objects
func (b *SwigBuilder) Clean(ctx context.Context, config *BuildConfig, pkg *Package, ext Extension) error {
	workDir := config.workDir()

	var targets []string
	if iface := ext.Interface(); iface != "" {
		targets = append(targets, filepath.Join(workDir, wrapperFileName(iface)))
	}

	built, err := findSharedObjects(workDir, ext.Name)
	if err != nil {
		return err
	}
	for _, rel := range built {
		targets = append(targets, filepath.Join(workDir, rel))
	}

	// swig writes the shadow modules into the work dir; in-tree builds
	// leave them alone since they may be checked in.
	if !sameDir(workDir, config.sourceDir()) {
		for _, module := range pkg.PyModules() {
			targets = append(targets, filepath.Join(workDir, moduleFileName(module)))
		}
	}

	for _, target := range targets {
		if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
			return err
		}
		b.logger.Debug("removed", zap.String("path", target))
	}

	return nil
}

// runSwig generates the C wrapper and the Python shadow module
func (b *SwigBuilder) runSwig(ctx context.Context, config *BuildConfig, workDir string, ext Extension, iface, wrapper string, result *BuildResult) error {
	srcPath, err := filepath.Abs(filepath.Join(config.sourceDir(), iface))
	if err != nil {
		return err
	}
	if _, err := os.Stat(srcPath); err != nil {
		return BuildError(b.Name(), result.Output, fmt.Errorf("interface file: %w", err))
	}

	args := []string{"-python"}
	args = append(args, ext.SwigOpts...)
	args = append(args, "-outdir", ".", "-o", wrapper, srcPath)

	b.logger.Debug("running swig", zap.String("interface", srcPath), zap.Strings("args", args))

	if err := runTool(ctx, config, workDir, config.swig(), args, result); err != nil {
		return BuildError(b.Name(), result.Output, err)
	}

	// Verify the wrapper was generated
	if _, err := os.Stat(filepath.Join(workDir, wrapper)); os.IsNotExist(err) {
		return BuildError(b.Name(), result.Output, fmt.Errorf("wrapper %s not generated", wrapper))
	}

	return nil
}

// runCompiler compiles the wrapper into a shared object
func (b *SwigBuilder) runCompiler(ctx context.Context, config *BuildConfig, workDir string, ext Extension, wrapper string, result *BuildResult) error {
	pyInclude, suffix, err := pythonBuildInfo(ctx, config, result)
	if err != nil {
		return BuildError("Python", result.Output, err)
	}

	output := ext.Name + suffix
	args := compilerArgs(ext, pyInclude, wrapper, output)
	args = append(args, config.BuildArgs...)

	b.logger.Debug("compiling extension", zap.String("output", output), zap.Strings("args", args))

	if err := runTool(ctx, config, workDir, config.cc(), args, result); err != nil {
		return BuildError("Compile", result.Output, err)
	}

	return nil
}

// compilerArgs assembles the single cc invocation that compiles and links the
// wrapper. Link flags come after the source so static archives resolve.
func compilerArgs(ext Extension, pyInclude, wrapper, output string) []string {
	args := []string{"-shared", "-fPIC"}
	if runtime.GOOS == "darwin" {
		args = append(args, "-undefined", "dynamic_lookup")
	}
	if pyInclude != "" {
		args = append(args, IncludeMarker+pyInclude)
	}
	for _, dir := range ext.IncludeDirs {
		args = append(args, IncludeMarker+dir)
	}
	args = append(args, ext.ExtraCompileArgs...)
	args = append(args, "-o", output, wrapper)
	for _, dir := range ext.LibraryDirs {
		args = append(args, LibraryDirMarker+dir)
	}
	for _, lib := range ext.Libraries {
		args = append(args, LibraryMarker+lib)
	}
	args = append(args, ext.ExtraLinkArgs...)
	return args
}

// pythonBuildInfo asks the interpreter for its include dir and EXT_SUFFIX.
func pythonBuildInfo(ctx context.Context, config *BuildConfig, result *BuildResult) (include, suffix string, err error) {
	stdout, err := runToolStdout(ctx, config, config.workDir(), config.python(), []string{"-c", pythonBuildInfoScript}, result)
	if err != nil {
		return "", "", fmt.Errorf("querying %s: %w", config.python(), err)
	}

	var lines []string
	for _, line := range strings.Split(stdout, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) != 2 {
		return "", "", fmt.Errorf("unexpected output from %s: %q", config.python(), stdout)
	}

	return lines[0], lines[1], nil
}

// wrapperFileName maps foo.i to foo_wrap.c, the name swig itself would choose.
func wrapperFileName(iface string) string {
	base := filepath.Base(iface)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "_wrap.c"
}
