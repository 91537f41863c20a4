//go:build mage

package main

import (
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target to run when none is specified.
var Default = Test

// Vet runs go vet on all packages.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Test runs the unit tests.
func Test() error {
	mg.Deps(Vet)
	return sh.RunV("go", "test", "-race", "./...")
}

// Install builds the pyext binary into $GOBIN.
func Install() error {
	return sh.RunV("go", "install", "./cmd/pyext")
}

// Bindings builds the Python extension with pyext.
//
// PYEXT_SOURCE selects the binding directory (default bindings/python) and
// PYEXT_DEST the install directory (default build/lib). Intermediate files
// go to build/work.
func Bindings() error {
	mg.Deps(Install)

	if _, err := sh.Output("pkg-config", "--exists", "libsigrok"); err != nil {
		return mg.Fatalf(1, "libsigrok is not registered with pkg-config: %v", err)
	}

	return sh.RunV("pyext", "build",
		"--source", envOr("PYEXT_SOURCE", "bindings/python"),
		"--work", "build/work",
		"--dest", envOr("PYEXT_DEST", "build/lib"))
}

// Clean removes build output.
func Clean() error {
	return sh.Rm("build")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
