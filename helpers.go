package pyext

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
)

// execLookPath is replaced in tests.
var execLookPath = exec.LookPath

// sharedObjectPatterns are the file names a compiled extension can take.
var sharedObjectPatterns = []string{
	"*.so",    // Linux/Unix shared objects
	"*.dylib", // macOS
	"*.pyd",   // Windows
}

// MatchesPattern checks if a filename matches any of the given regex patterns.
//
// If a pattern is invalid regex, it is silently skipped.
//
//	if MatchesPattern(filename, `\.i$`) {
//	    // Handle SWIG interface
//	}
func MatchesPattern(filename string, patterns ...string) bool {
	for _, pattern := range patterns {
		if matched, _ := regexp.MatchString(pattern, filename); matched {
			return true
		}
	}
	return false
}

// MatchesExtension checks if a filename has any of the given extensions.
//
// This is a case-insensitive check; extensions may be given with or without
// the leading dot.
func MatchesExtension(filename string, extensions ...string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(strings.ToLower(filename), strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// BuildError creates a standardized build error with output context.
//
// With error and output:
//
//	SWIG build failed: exit status 1
//
//	Build output:
//	libsigrok_python.i:12: Error: Unable to find 'libsigrok/libsigrok.h'
//
// With output but no error:
//
//	SWIG build failed
//
//	Build output:
//	... output lines ...
func BuildError(builder string, output []string, err error) error {
	outputStr := strings.Join(output, "\n")

	var prefix string
	if err != nil {
		prefix = fmt.Sprintf("%s build failed: %v", builder, err)
	} else {
		prefix = fmt.Sprintf("%s build failed", builder)
	}

	if outputStr != "" {
		return fmt.Errorf("%s\n\nBuild output:\n%s", prefix, outputStr)
	}

	return fmt.Errorf("%s", prefix)
}

// runTool runs name with args in dir, appending its combined output to result.
func runTool(ctx context.Context, config *BuildConfig, dir, name string, args []string, result *BuildResult) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	// Set environment variables
	cmd.Env = os.Environ()
	for key, value := range config.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", key, value))
	}

	output, err := cmd.CombinedOutput()
	if trimmed := strings.TrimRight(string(output), "\n"); trimmed != "" {
		result.Output = append(result.Output, strings.Split(trimmed, "\n")...)
	}

	if config.Verbose {
		result.Output = append(result.Output,
			fmt.Sprintf("Running: %s %s", name, strings.Join(args, " ")),
			fmt.Sprintf("Working directory: %s", dir))
	}

	return err
}

// runToolStdout runs name like runTool but returns stdout separately.
// Stderr lines are appended to result for diagnostics only.
func runToolStdout(ctx context.Context, config *BuildConfig, dir, name string, args []string, result *BuildResult) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = os.Environ()
	for key, value := range config.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", key, value))
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if trimmed := strings.TrimRight(stderr.String(), "\n"); trimmed != "" {
		result.Output = append(result.Output, strings.Split(trimmed, "\n")...)
	}
	return stdout.String(), err
}

// firstAvailable returns the first of names found in PATH, or names[0].
func firstAvailable(names ...string) string {
	for _, name := range names {
		if _, err := execLookPath(name); err == nil {
			return name
		}
	}
	return names[0]
}

// findSharedObjects locates compiled files for extension name in dir.
// Paths are returned relative to dir.
func findSharedObjects(dir, name string) ([]string, error) {
	var found []string

	for _, pattern := range sharedObjectPatterns {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to glob pattern %s in %s: %v", pattern, dir, err)
		}

		for _, match := range matches {
			base := filepath.Base(match)
			if base != name && !strings.HasPrefix(base, name+".") {
				continue
			}
			if relPath, err := filepath.Rel(dir, match); err == nil {
				found = append(found, relPath)
			}
		}
	}

	return found, nil
}
