package pyext

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrToolNotFound indicates a required executable is not in PATH
	ErrToolNotFound = errors.New("tool not found")

	// ErrQueryFailed indicates pkg-config exited with a non-zero status
	ErrQueryFailed = errors.New("pkg-config query failed")

	// ErrInvalidPackage indicates the package descriptor is incomplete
	ErrInvalidPackage = errors.New("invalid package")

	// ErrNoBuilder indicates no registered builder accepts the extension
	ErrNoBuilder = errors.New("no builder found")
)

// QueryError describes a failed pkg-config invocation.
type QueryError struct {
	Op      string // --cflags, --libs, --modversion, --exists
	Library string
	Stderr  string
	Err     error
}

func (e *QueryError) Error() string {
	msg := fmt.Sprintf("pkg-config %s %s: %v", e.Op, e.Library, e.Err)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Error wraps an error with the operation and package it relates to.
type Error struct {
	Op      string // Operation that failed
	Package string // Package name if applicable
	Err     error  // Underlying error
}

func (e *Error) Error() string {
	if e.Package != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Package, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
