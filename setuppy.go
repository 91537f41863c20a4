package pyext

import (
	"fmt"
	"io"
	"strings"
	"text/template"
)

// setupPyHeader marks a setup.py as generated and safe to overwrite.
const setupPyHeader = "# Generated by pyext. Do not edit."

var setupPyTemplate = template.Must(template.New("setup.py").Funcs(template.FuncMap{
	"py":     pyString,
	"pylist": pyList,
}).Parse(setupPyHeader + `

from setuptools import setup, Extension

setup(
    name = {{py .Name}},
    version = {{py .Version}},
    description = {{py .Description}},
    py_modules = {{pylist .PyModules}},
    ext_modules = [
{{- range .Extensions}}
        Extension({{py .Name}},
            sources = {{pylist .Sources}},
            swig_opts = {{pylist .SwigOpts}},
            include_dirs = {{pylist .IncludeDirs}},
            library_dirs = {{pylist .LibraryDirs}},
            libraries = {{pylist .Libraries}},
            extra_compile_args = {{pylist .ExtraCompileArgs}},
            extra_link_args = {{pylist .ExtraLinkArgs}},
        ),
{{- end}}
    ],
)
`))

// RenderSetupPy writes a setup.py equivalent to pkg with all pkg-config
// values already resolved.
func RenderSetupPy(w io.Writer, pkg *Package) error {
	doc, err := pkg.MarshalYAML()
	if err != nil {
		return err
	}
	if err := setupPyTemplate.Execute(w, doc); err != nil {
		return fmt.Errorf("rendering setup.py: %w", err)
	}
	return nil
}

var pyEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`)

func pyString(s string) string {
	return "'" + pyEscaper.Replace(s) + "'"
}

func pyList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = pyString(v)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
