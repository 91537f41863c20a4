package pyext

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestBuilderFactory(t *testing.T) {
	factory := NewBuilderFactory(nil)

	// Test that all expected builders are registered
	builders := factory.ListBuilders()
	if len(builders) != 2 {
		t.Errorf("Expected 2 builders, got %d", len(builders))
	}

	testCases := []struct {
		sourceFile   string
		expectedName string
	}{
		{"libsigrok_python.i", "SWIG"},
		{"bindings/python/libsigrok_python.i", "SWIG"},
		{"module.c", "SetupPy"},
		{"src/module.cpp", "SetupPy"},
	}

	for _, tc := range testCases {
		t.Run(tc.sourceFile, func(t *testing.T) {
			builder, err := factory.BuilderFor(tc.sourceFile)
			if err != nil {
				t.Fatalf("Expected builder for %s, got error: %v", tc.sourceFile, err)
			}

			if builder.Name() != tc.expectedName {
				t.Errorf("Expected builder %s for %s, got %s", tc.expectedName, tc.sourceFile, builder.Name())
			}
		})
	}

	// Test unsupported source
	_, err := factory.BuilderFor("module.rs")
	if !errors.Is(err, ErrNoBuilder) {
		t.Errorf("Expected ErrNoBuilder for unsupported source, got %v", err)
	}
}

func TestBuilderNamed(t *testing.T) {
	factory := NewBuilderFactory(nil)

	for _, name := range []string{"swig", "SWIG", "setuppy", "SetupPy"} {
		if _, err := factory.BuilderNamed(name); err != nil {
			t.Errorf("BuilderNamed(%q) returned error: %v", name, err)
		}
	}

	if _, err := factory.BuilderNamed("cmake"); !errors.Is(err, ErrNoBuilder) {
		t.Errorf("expected ErrNoBuilder, got %v", err)
	}
}

func TestBuilderDetection(t *testing.T) {
	testCases := []struct {
		name         string
		builder      Builder
		validFiles   []string
		invalidFiles []string
	}{
		{
			name:         "SwigBuilder",
			builder:      NewSwigBuilder(nil),
			validFiles:   []string{"libsigrok_python.i", "x.i"},
			invalidFiles: []string{"x.c", "x.in", "setup.py"},
		},
		{
			name:         "SetupPyBuilder",
			builder:      NewSetupPyBuilder(nil),
			validFiles:   []string{"x.i", "x.c", "x.CPP", "x.cxx"},
			invalidFiles: []string{"x.py", "x.h", "Cargo.toml"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for _, file := range tc.validFiles {
				if !tc.builder.CanBuild(file) {
					t.Errorf("%s should be able to build %s", tc.name, file)
				}
			}

			for _, file := range tc.invalidFiles {
				if tc.builder.CanBuild(file) {
					t.Errorf("%s should not be able to build %s", tc.name, file)
				}
			}
		})
	}
}

func TestBuildAllRejectsInvalidPackage(t *testing.T) {
	factory := NewBuilderFactory(nil)

	results, err := factory.BuildAll(context.Background(), &BuildConfig{}, NewPackage("", "1.0", "", nil))
	if !errors.Is(err, ErrInvalidPackage) {
		t.Fatalf("expected ErrInvalidPackage, got %v", err)
	}
	if results != nil {
		t.Errorf("expected no results, got %v", results)
	}
}

func TestBuildAllWithoutExtensions(t *testing.T) {
	factory := NewBuilderFactory(nil)

	results, err := factory.BuildAll(context.Background(), &BuildConfig{}, NewPackage("pure", "1.0", "", []string{"pure"}))
	if err != nil {
		t.Errorf("Expected no error for package without extensions, got %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected 0 results, got %d", len(results))
	}
}

func TestBuildAllUnknownSource(t *testing.T) {
	factory := NewBuilderFactory(nil)
	pkg := NewPackage("x", "1.0", "", nil, Extension{Name: "_x", Sources: []string{"x.rs"}})

	results, err := factory.BuildAll(context.Background(), &BuildConfig{StopOnFailure: true}, pkg)
	if !errors.Is(err, ErrNoBuilder) {
		t.Errorf("Expected ErrNoBuilder, got %v", err)
	}
	if len(results) != 1 || results[0].Success {
		t.Error("Expected 1 failed result for unknown source")
	}
}

func TestBuildAllReportsMissingTools(t *testing.T) {
	factory := NewBuilderFactory(nil)
	config := &BuildConfig{
		SourceDir: t.TempDir(),
		Swig:      filepath.Join(t.TempDir(), "no-swig"),
	}

	results, err := factory.BuildAll(context.Background(), config, samplePackage())
	if !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("expected ErrToolNotFound, got %v", err)
	}
	if len(results) != 1 || len(results[0].MissingDependencies) == 0 {
		t.Fatalf("expected missing dependencies in result, got %+v", results)
	}
	if results[0].Extension != "_libsigrok" {
		t.Errorf("Extension = %q", results[0].Extension)
	}
}

func TestBuildAllCanceledContext(t *testing.T) {
	factory := NewBuilderFactory(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := factory.BuildAll(ctx, &BuildConfig{}, samplePackage())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(results) != 1 || results[0].Success {
		t.Errorf("expected one failed result, got %+v", results)
	}
}

func TestCheckRequiredTools(t *testing.T) {
	origLookPath := execLookPath
	defer func() { execLookPath = origLookPath }()

	execLookPath = func(name string) (string, error) {
		if name == "clang" || name == "swig" {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("not found")
	}

	reqs := []ToolRequirement{
		{Name: "swig", Purpose: "SWIG interface generator"},
		{Name: "cc", Alternatives: []string{"gcc", "clang"}, Purpose: "C compiler"},
		{Name: "ccache", Optional: true},
	}
	if err := CheckRequiredTools(reqs); err != nil {
		t.Errorf("expected requirements satisfied, got %v", err)
	}

	reqs = append(reqs, ToolRequirement{Name: "python3", Purpose: "interpreter"}, ToolRequirement{Name: "pkg-config"})
	err := CheckRequiredTools(reqs)
	if !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("expected ErrToolNotFound, got %v", err)
	}

	missing := MissingTools(reqs)
	if len(missing) != 2 || missing[0] != "python3 (interpreter)" || missing[1] != "pkg-config" {
		t.Errorf("MissingTools = %v", missing)
	}
}

func TestDefaultToolsResolveAlternatives(t *testing.T) {
	origLookPath := execLookPath
	defer func() { execLookPath = origLookPath }()
	t.Setenv("CC", "")
	t.Setenv("PYEXT_PYTHON", "")

	execLookPath = func(name string) (string, error) {
		if name == "gcc" || name == "python" || name == "swig" {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("not found")
	}

	config := &BuildConfig{}
	if got := config.cc(); got != "gcc" {
		t.Errorf("cc() = %q, want gcc", got)
	}
	if got := config.python(); got != "python" {
		t.Errorf("python() = %q, want python", got)
	}
	if missing := NewBuilderFactory(nil).missingTools(config, NewSwigBuilder(nil)); len(missing) != 0 {
		t.Errorf("expected no missing tools, got %v", missing)
	}

	execLookPath = func(string) (string, error) { return "", errors.New("not found") }
	if got := config.cc(); got != "cc" {
		t.Errorf("cc() with nothing in PATH = %q, want cc", got)
	}
	missing := NewBuilderFactory(nil).missingTools(config, NewSwigBuilder(nil))
	if len(missing) != 3 {
		t.Errorf("expected swig, cc and python3 missing, got %v", missing)
	}
}
