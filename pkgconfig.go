package pyext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// Default pkg-config settings.
const (
	DefaultPkgConfig   = "pkg-config"
	DefaultVersionFlag = "--modversion"
	pkgConfigEnv       = "PKG_CONFIG"
)

// PkgConfig queries the pkg-config registry for a library's build metadata.
//
// Every query spawns one child process and waits for it to exit. There is no
// retry and no fallback: a missing tool, an unknown library or a non-zero
// exit is returned to the caller as is.
type PkgConfig struct {
	// Path is the pkg-config executable. Empty means $PKG_CONFIG, then "pkg-config".
	Path string

	// VersionFlag selects the version query. Empty means --modversion.
	VersionFlag string

	// Env is appended to the inherited environment (e.g. PKG_CONFIG_PATH=...).
	Env map[string]string

	logger *zap.Logger
}

// NewPkgConfig creates a PkgConfig using the given executable path.
func NewPkgConfig(path string, logger *zap.Logger) *PkgConfig {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PkgConfig{Path: path, logger: logger}
}

// CFlags returns the compile flag tokens for lib.
func (p *PkgConfig) CFlags(ctx context.Context, lib string) ([]string, error) {
	out, err := p.query(ctx, "--cflags", lib)
	if err != nil {
		return nil, err
	}
	return SplitFlags(out), nil
}

// Libs returns the link flag tokens for lib.
func (p *PkgConfig) Libs(ctx context.Context, lib string) ([]string, error) {
	out, err := p.query(ctx, "--libs", lib)
	if err != nil {
		return nil, err
	}
	return SplitFlags(out), nil
}

// Version returns the registered version of lib, trimmed of surrounding
// whitespace and otherwise verbatim.
func (p *PkgConfig) Version(ctx context.Context, lib string) (string, error) {
	flag := p.VersionFlag
	if flag == "" {
		flag = DefaultVersionFlag
	}
	out, err := p.query(ctx, flag, lib)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Exists reports whether lib is registered with pkg-config.
func (p *PkgConfig) Exists(ctx context.Context, lib string) error {
	_, err := p.query(ctx, "--exists", lib)
	return err
}

// Executable resolves the pkg-config binary that queries will run.
func (p *PkgConfig) Executable() string {
	if p.Path != "" {
		return p.Path
	}
	if env := os.Getenv(pkgConfigEnv); env != "" {
		return env
	}
	return DefaultPkgConfig
}

func (p *PkgConfig) query(ctx context.Context, op, lib string) (string, error) {
	logger := p.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	tool := p.Executable()
	path, err := execLookPath(tool)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrToolNotFound, tool)
	}

	cmd := exec.CommandContext(ctx, path, op, lib)
	cmd.Env = os.Environ()
	for key, value := range p.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", key, value))
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("querying pkg-config",
		zap.String("tool", path),
		zap.String("op", op),
		zap.String("library", lib))

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			err = fmt.Errorf("%w: exit status %d", ErrQueryFailed, exitErr.ExitCode())
		}
		return "", &QueryError{Op: op, Library: lib, Stderr: stderr.String(), Err: err}
	}

	return stdout.String(), nil
}
