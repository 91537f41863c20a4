package pyext

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Extension describes one compiled extension module.
type Extension struct {
	Name             string   `yaml:"name"`
	Sources          []string `yaml:"sources"`
	SwigOpts         []string `yaml:"swig_opts,omitempty"`
	IncludeDirs      []string `yaml:"include_dirs"`
	LibraryDirs      []string `yaml:"library_dirs"`
	Libraries        []string `yaml:"libraries"`
	ExtraCompileArgs []string `yaml:"extra_compile_args,omitempty"`
	ExtraLinkArgs    []string `yaml:"extra_link_args,omitempty"`
}

// Interface returns the first SWIG interface file among the sources, or "".
func (e Extension) Interface() string {
	for _, src := range e.Sources {
		if strings.EqualFold(filepath.Ext(src), ".i") {
			return src
		}
	}
	return ""
}

func (e Extension) clone() Extension {
	return Extension{
		Name:             e.Name,
		Sources:          cloneStrings(e.Sources),
		SwigOpts:         cloneStrings(e.SwigOpts),
		IncludeDirs:      cloneStrings(e.IncludeDirs),
		LibraryDirs:      cloneStrings(e.LibraryDirs),
		Libraries:        cloneStrings(e.Libraries),
		ExtraCompileArgs: cloneStrings(e.ExtraCompileArgs),
		ExtraLinkArgs:    cloneStrings(e.ExtraLinkArgs),
	}
}

// Package is the resolved description handed to a builder.
//
// A Package is immutable once created: NewPackage copies its inputs and the
// accessors return copies.
type Package struct {
	name        string
	version     string
	description string
	pyModules   []string
	extensions  []Extension
}

// NewPackage assembles a package descriptor from resolved values.
func NewPackage(name, version, description string, pyModules []string, extensions ...Extension) *Package {
	exts := make([]Extension, 0, len(extensions))
	for _, ext := range extensions {
		exts = append(exts, ext.clone())
	}
	return &Package{
		name:        name,
		version:     version,
		description: description,
		pyModules:   cloneStrings(pyModules),
		extensions:  exts,
	}
}

// Name returns the distribution name.
func (p *Package) Name() string { return p.name }

// Version returns the version string as reported by pkg-config.
func (p *Package) Version() string { return p.version }

// Description returns the one-line package description.
func (p *Package) Description() string { return p.description }

// PyModules returns the plain Python modules shipped next to the extension.
func (p *Package) PyModules() []string { return cloneStrings(p.pyModules) }

// Extensions returns copies of the extension descriptors.
func (p *Package) Extensions() []Extension {
	exts := make([]Extension, 0, len(p.extensions))
	for _, ext := range p.extensions {
		exts = append(exts, ext.clone())
	}
	return exts
}

// Validate checks that the descriptor can be built. The version is taken
// verbatim from pkg-config and may be empty.
func (p *Package) Validate() error {
	if p.name == "" {
		return &Error{Op: "validate", Err: fmt.Errorf("%w: empty name", ErrInvalidPackage)}
	}
	for _, ext := range p.extensions {
		if ext.Name == "" {
			return &Error{Op: "validate", Package: p.name, Err: fmt.Errorf("%w: unnamed extension", ErrInvalidPackage)}
		}
		if len(ext.Sources) == 0 {
			return &Error{Op: "validate", Package: p.name, Err: fmt.Errorf("%w: extension %s has no sources", ErrInvalidPackage, ext.Name)}
		}
	}
	return nil
}

// packageDocument is the serialised form of a Package.
type packageDocument struct {
	Name        string      `yaml:"name"`
	Version     string      `yaml:"version"`
	Description string      `yaml:"description"`
	PyModules   []string    `yaml:"py_modules"`
	Extensions  []Extension `yaml:"ext_modules"`
}

// MarshalYAML implements yaml.Marshaler.
func (p *Package) MarshalYAML() (interface{}, error) {
	return packageDocument{
		Name:        p.name,
		Version:     p.version,
		Description: p.description,
		PyModules:   p.PyModules(),
		Extensions:  p.Extensions(),
	}, nil
}

// WritePackageYAML writes the descriptor to w as YAML.
func WritePackageYAML(w io.Writer, pkg *Package) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(pkg); err != nil {
		return fmt.Errorf("encoding package: %w", err)
	}
	return enc.Close()
}

func cloneStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return append([]string{}, values...)
}
