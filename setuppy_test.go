package pyext

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderSetupPy(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSetupPy(&buf, samplePackage()); err != nil {
		t.Fatalf("RenderSetupPy returned error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"from setuptools import setup, Extension",
		"name = 'libsigrok',",
		"version = '0.2.1',",
		"description = 'libsigrok API wrapper',",
		"py_modules = ['libsigrok'],",
		"Extension('_libsigrok',",
		"sources = ['libsigrok_python.i'],",
		"swig_opts = ['-I/usr/include/libsigrok'],",
		"include_dirs = ['/usr/include/libsigrok'],",
		"library_dirs = ['/usr/lib'],",
		"libraries = ['sigrok'],",
		"extra_compile_args = [],",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in setup.py:\n%s", want, out)
		}
	}
}

func TestPyStringEscaping(t *testing.T) {
	testCases := map[string]string{
		"plain":       `'plain'`,
		`it's`:        `'it\'s'`,
		`C:\include`:  `'C:\\include'`,
		"line\nbreak": `'line\nbreak'`,
		"":            `''`,
	}

	for in, want := range testCases {
		if got := pyString(in); got != want {
			t.Errorf("pyString(%q) = %s, want %s", in, got, want)
		}
	}

	if got := pyList(nil); got != "[]" {
		t.Errorf("pyList(nil) = %s", got)
	}
	if got := pyList([]string{"a", "b"}); got != "['a', 'b']" {
		t.Errorf("pyList = %s", got)
	}
}
