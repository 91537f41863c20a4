package pyext

import (
	"archive/tar"
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/ulikunitz/xz"
)

// SourceArchiveName returns the conventional file name of pkg's source archive.
func SourceArchiveName(pkg *Package) string {
	return fmt.Sprintf("%s-%s.tar.xz", pkg.Name(), pkg.Version())
}

// WriteSourceArchive writes an xz-compressed tarball of pkg to w.
//
// Entries live under "<name>-<version>/" and hold every extension source and
// plain module read from srcDir, plus a rendered setup.py and a PKG-INFO
// file. A missing source file is an error; the archive is then incomplete and
// must be discarded by the caller.
func WriteSourceArchive(w io.Writer, pkg *Package, srcDir string) error {
	if err := pkg.Validate(); err != nil {
		return err
	}

	xw, err := xz.NewWriter(w)
	if err != nil {
		return fmt.Errorf("creating xz writer: %w", err)
	}
	tw := tar.NewWriter(xw)

	root := fmt.Sprintf("%s-%s", pkg.Name(), pkg.Version())
	modTime := time.Now().UTC().Truncate(time.Second)

	var files []string
	for _, ext := range pkg.Extensions() {
		files = append(files, ext.Sources...)
	}
	for _, module := range pkg.PyModules() {
		files = append(files, filepath.ToSlash(moduleFileName(module)))
	}

	for _, rel := range uniqueStrings(files) {
		data, err := os.ReadFile(filepath.Join(srcDir, filepath.FromSlash(rel)))
		if err != nil {
			return &Error{Op: "sdist", Package: pkg.Name(), Err: err}
		}
		if err := writeTarEntry(tw, path.Join(root, rel), data, modTime); err != nil {
			return err
		}
	}

	var setup bytes.Buffer
	if err := RenderSetupPy(&setup, pkg); err != nil {
		return err
	}
	if err := writeTarEntry(tw, path.Join(root, SetupPyFile), setup.Bytes(), modTime); err != nil {
		return err
	}

	if err := writeTarEntry(tw, path.Join(root, "PKG-INFO"), pkgInfo(pkg), modTime); err != nil {
		return err
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("closing tar: %w", err)
	}
	if err := xw.Close(); err != nil {
		return fmt.Errorf("closing xz: %w", err)
	}
	return nil
}

func writeTarEntry(tw *tar.Writer, name string, data []byte, modTime time.Time) error {
	hdr := &tar.Header{
		Name:    name,
		Mode:    0o644,
		Size:    int64(len(data)),
		ModTime: modTime,
		Format:  tar.FormatPAX,
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("writing header for %s: %w", name, err)
	}
	if _, err := tw.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// pkgInfo renders the core metadata fields (Metadata-Version 1.0).
func pkgInfo(pkg *Package) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Metadata-Version: 1.0\n")
	fmt.Fprintf(&buf, "Name: %s\n", pkg.Name())
	fmt.Fprintf(&buf, "Version: %s\n", pkg.Version())
	fmt.Fprintf(&buf, "Summary: %s\n", pkg.Description())
	return buf.Bytes()
}
