package pyext

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

var nativeLibraryExtensions = map[string]struct{}{
	".so":    {},
	".dylib": {},
	".pyd":   {},
	".dll":   {},
}

// finalizeExtensions copies compiled shared objects and the package's plain
// Python modules into config.DestPath and returns the installed paths.
//
// Without a DestPath nothing is copied and the built files are returned as
// paths under the work directory.
func finalizeExtensions(config *BuildConfig, pkg *Package, workDir string, built []string) ([]string, error) {
	if config.DestPath == "" {
		var paths []string
		for _, rel := range built {
			paths = append(paths, filepath.ToSlash(filepath.Join(workDir, rel)))
		}
		return paths, nil
	}

	var installed []string

	for _, rel := range built {
		if !isNativeLibrary(rel) {
			continue
		}

		srcPath := filepath.Join(workDir, rel)
		if info, err := os.Stat(srcPath); err != nil || !info.Mode().IsRegular() {
			continue
		}

		destPath := filepath.Join(config.DestPath, safeRelativePath(rel))
		if err := copyFile(srcPath, destPath); err != nil {
			return nil, err
		}
		installed = append(installed, filepath.ToSlash(destPath))
	}

	for _, module := range pkg.PyModules() {
		srcPath := locateModule(module, workDir, config.sourceDir())
		if srcPath == "" {
			continue
		}

		destPath := filepath.Join(config.DestPath, moduleFileName(module))
		if err := copyFile(srcPath, destPath); err != nil {
			return nil, err
		}
		installed = append(installed, filepath.ToSlash(destPath))
	}

	return installed, nil
}

// locateModule finds module's .py file, preferring generated copies in the
// work directory over the source directory.
func locateModule(module string, dirs ...string) string {
	name := moduleFileName(module)
	for _, dir := range uniqueStrings(dirs) {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate
		}
	}
	return ""
}

// moduleFileName maps a dotted module name to its relative .py path.
func moduleFileName(module string) string {
	return filepath.FromSlash(strings.ReplaceAll(module, ".", "/")) + ".py"
}

func isNativeLibrary(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := nativeLibraryExtensions[ext]
	return ok
}

func copyFile(srcPath, destPath string) error {
	info, err := os.Stat(srcPath)
	if err != nil {
		return err
	}

	dir := filepath.Dir(destPath)
	if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
		return mkErr
	}

	in, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}

	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}

func safeRelativePath(path string) string {
	clean := filepath.Clean(path)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return filepath.Base(path)
	}
	return clean
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{})
	var result []string

	for _, value := range values {
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
	}

	return result
}

// sameDir reports whether a and b name the same directory.
func sameDir(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
