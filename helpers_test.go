package pyext

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

const fakePkgConfigScript = `#!/bin/sh
if [ "$2" = "missing" ]; then
	echo "Package missing was not found in the pkg-config search path." >&2
	exit 1
fi
case "$1" in
--cflags) echo "-I/usr/include/libsigrok -I/usr/include/glib-2.0 -DFOO -pthread" ;;
--libs) echo "-L/usr/lib -lsigrok -lglib-2.0 -pthread" ;;
--modversion) printf '  0.2.1-git-9a3f \n' ;;
--version) echo "0.29.2" ;;
--exists) exit 0 ;;
*) exit 2 ;;
esac
`

// writeScript writes an executable shell script into dir and returns its path.
func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fakes need /bin/sh")
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func fakePkgConfig(t *testing.T) string {
	t.Helper()
	return writeScript(t, t.TempDir(), "pkg-config", fakePkgConfigScript)
}

func TestMatchesPattern(t *testing.T) {
	testCases := []struct {
		filename string
		patterns []string
		expected bool
	}{
		{"libsigrok_python.i", []string{`\.i$`}, true},
		{"setup.py", []string{`setup\.py$`}, true},
		{"wrapper.c", []string{`\.i$`, `\.c$`}, true},
		{"interface.in", []string{`\.i$`}, false},
		{"anything", []string{`[`}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.filename, func(t *testing.T) {
			result := MatchesPattern(tc.filename, tc.patterns...)
			if result != tc.expected {
				t.Errorf("MatchesPattern(%s, %v) = %v, expected %v",
					tc.filename, tc.patterns, result, tc.expected)
			}
		})
	}
}

func TestMatchesExtension(t *testing.T) {
	testCases := []struct {
		filename   string
		extensions []string
		expected   bool
	}{
		{"module.py", []string{".py"}, true},
		{"MODULE.PY", []string{".py"}, true},
		{"wrap.cxx", []string{".c", ".cxx"}, true},
		{"file.rb", []string{".py", ".i"}, false},
		{"noext", []string{".py"}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.filename, func(t *testing.T) {
			result := MatchesExtension(tc.filename, tc.extensions...)
			if result != tc.expected {
				t.Errorf("MatchesExtension(%s, %v) = %v, expected %v",
					tc.filename, tc.extensions, result, tc.expected)
			}
		})
	}
}

func TestBuildError(t *testing.T) {
	output := []string{"line 1", "line 2", "error occurred"}

	err := BuildError("TestBuilder", output, nil)
	expected := "TestBuilder build failed\n\nBuild output:\nline 1\nline 2\nerror occurred"
	if err.Error() != expected {
		t.Errorf("BuildError output mismatch.\nExpected: %s\nGot: %s", expected, err.Error())
	}

	err = BuildError("SWIG", nil, os.ErrNotExist)
	if err.Error() != "SWIG build failed: file does not exist" {
		t.Errorf("unexpected error without output: %q", err.Error())
	}
}

func TestFindSharedObjectsMatchesExtensionName(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"_libsigrok.cpython-311-x86_64-linux-gnu.so",
		"_libsigrok.so",
		"_libsigrok_extra.so",
		"other.so",
		"_libsigrok.py",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	found, err := findSharedObjects(dir, "_libsigrok")
	if err != nil {
		t.Fatalf("findSharedObjects returned error: %v", err)
	}

	got := strings.Join(found, ",")
	if len(found) != 2 || !strings.Contains(got, "_libsigrok.so") || !strings.Contains(got, "_libsigrok.cpython-311-x86_64-linux-gnu.so") {
		t.Fatalf("unexpected matches: %v", found)
	}
}
