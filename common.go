package pyext

import (
	"context"
	"os"
)

// runCommonBuild executes the standard 3-step build process.
//
// # Process Flow
//
//  1. Create empty BuildResult
//  2. Create the work directory
//  3. Call ConfigureFunc to generate intermediate files
//  4. Call BuildFunc to compile the extension
//  5. Call FindFunc to locate compiled files
//  6. Install the compiled files and wrapper modules into DestPath
//
// If any step fails, processing stops and the error is returned
// with Success=false. Output collected so far stays on the result.
func runCommonBuild(ctx context.Context, config *BuildConfig, pkg *Package, ext Extension, steps CommonBuildSteps) (*BuildResult, error) {
	result := &BuildResult{
		Extension: ext.Name,
		Success:   false,
		Output:    []string{},
	}

	workDir := config.workDir()
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		result.Error = err
		return result, err
	}

	// Step 1: Configure/prepare the build
	if err := steps.ConfigureFunc(ctx, config, workDir, result); err != nil {
		result.Error = err
		return result, err
	}

	// Step 2: Build/compile the extension
	if err := steps.BuildFunc(ctx, config, workDir, result); err != nil {
		result.Error = err
		return result, err
	}

	// Step 3: Find the built extension files
	built, err := steps.FindFunc(workDir)
	if err != nil {
		result.Error = err
		return result, err
	}

	installed, err := finalizeExtensions(config, pkg, workDir, built)
	if err != nil {
		result.Error = err
		return result, err
	}

	result.Extensions = installed
	result.Success = true
	return result, nil
}
