package pyext

import (
	"fmt"
	"strings"
)

// ToolChecker is an optional interface for builders that require external tools.
//
// Builders can implement this interface to declare their tool dependencies
// and verify that required tools are available before attempting to build.
// BuilderFactory checks tools before calling Build and reports what is
// missing in BuildResult.MissingDependencies.
//
// # Example Implementation
//
//	func (b *SwigBuilder) RequiredTools() []ToolRequirement {
//	    return []ToolRequirement{
//	        {Name: "swig", Purpose: "SWIG interface generator"},
//	    }
//	}
//
//	func (b *SwigBuilder) CheckTools() error {
//	    return CheckRequiredTools(b.RequiredTools())
//	}
type ToolChecker interface {
	// RequiredTools returns the list of tools this builder needs.
	RequiredTools() []ToolRequirement

	// CheckTools verifies that all required tools are available.
	//
	// Optional tools don't cause errors if missing.
	CheckTools() error
}

// ToolRequirement describes a build tool dependency.
//
// Tool with alternatives:
//
//	ToolRequirement{
//	    Name: "cc",
//	    Alternatives: []string{"gcc", "clang"},
//	    Purpose: "C compiler",
//	}
type ToolRequirement struct {
	// Name is the primary tool binary name (e.g., "swig", "pkg-config").
	Name string

	// Alternatives are alternative tool names that can satisfy this requirement.
	Alternatives []string

	// Optional indicates this tool is optional and won't cause an error if missing.
	Optional bool

	// Purpose is a human-readable description of why this tool is needed.
	Purpose string
}

// CheckToolAvailable checks if a tool is available in the system PATH.
func CheckToolAvailable(tool string) error {
	if _, err := execLookPath(tool); err != nil {
		return fmt.Errorf("%s not found in PATH", tool)
	}
	return nil
}

// MissingTools returns the required tools that cannot be found, formatted as
// "name (purpose)". Alternatives satisfy a requirement; optional tools are
// never reported.
func MissingTools(requirements []ToolRequirement) []string {
	var missingTools []string

	for _, req := range requirements {
		// Try the primary tool
		found := CheckToolAvailable(req.Name) == nil

		// If not found, try alternatives
		if !found {
			for _, alt := range req.Alternatives {
				if CheckToolAvailable(alt) == nil {
					found = true
					break
				}
			}
		}

		if !found && !req.Optional {
			if req.Purpose != "" {
				missingTools = append(missingTools, fmt.Sprintf("%s (%s)", req.Name, req.Purpose))
			} else {
				missingTools = append(missingTools, req.Name)
			}
		}
	}

	return missingTools
}

// CheckRequiredTools verifies all required tools are available.
//
// Single missing tool:
//
//	swig (SWIG interface generator) not found in PATH
//
// Multiple missing tools:
//
//	missing required tools: swig (SWIG interface generator), cc (C compiler)
func CheckRequiredTools(requirements []ToolRequirement) error {
	missingTools := MissingTools(requirements)

	switch len(missingTools) {
	case 0:
		return nil
	case 1:
		return fmt.Errorf("%w: %s not found in PATH", ErrToolNotFound, missingTools[0])
	default:
		return fmt.Errorf("%w: missing required tools: %s", ErrToolNotFound, strings.Join(missingTools, ", "))
	}
}

// PkgConfigRequirement is the registry tool every configuration needs.
func PkgConfigRequirement(path string) ToolRequirement {
	if path == "" {
		path = DefaultPkgConfig
	}
	return ToolRequirement{
		Name:         path,
		Alternatives: []string{"pkgconf"},
		Purpose:      "library flag and version queries",
	}
}
