package pyext

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestPkgConfigQueries(t *testing.T) {
	pc := NewPkgConfig(fakePkgConfig(t), nil)
	ctx := context.Background()

	cflags, err := pc.CFlags(ctx, "libsigrok")
	if err != nil {
		t.Fatalf("CFlags returned error: %v", err)
	}
	wantCFlags := []string{"-I/usr/include/libsigrok", "-I/usr/include/glib-2.0", "-DFOO", "-pthread"}
	if !reflect.DeepEqual(cflags, wantCFlags) {
		t.Errorf("CFlags = %v, want %v", cflags, wantCFlags)
	}

	libs, err := pc.Libs(ctx, "libsigrok")
	if err != nil {
		t.Fatalf("Libs returned error: %v", err)
	}
	wantLibs := []string{"-L/usr/lib", "-lsigrok", "-lglib-2.0", "-pthread"}
	if !reflect.DeepEqual(libs, wantLibs) {
		t.Errorf("Libs = %v, want %v", libs, wantLibs)
	}

	version, err := pc.Version(ctx, "libsigrok")
	if err != nil {
		t.Fatalf("Version returned error: %v", err)
	}
	if version != "0.2.1-git-9a3f" {
		t.Errorf("Version = %q, want %q", version, "0.2.1-git-9a3f")
	}

	if err := pc.Exists(ctx, "libsigrok"); err != nil {
		t.Errorf("Exists returned error: %v", err)
	}
}

func TestPkgConfigVersionFlag(t *testing.T) {
	pc := NewPkgConfig(fakePkgConfig(t), nil)
	pc.VersionFlag = "--version"

	version, err := pc.Version(context.Background(), "libsigrok")
	if err != nil {
		t.Fatalf("Version returned error: %v", err)
	}
	if version != "0.29.2" {
		t.Errorf("Version = %q, want %q", version, "0.29.2")
	}
}

func TestPkgConfigNonZeroExit(t *testing.T) {
	pc := NewPkgConfig(fakePkgConfig(t), nil)

	_, err := pc.CFlags(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error for unknown library")
	}

	if !errors.Is(err, ErrQueryFailed) {
		t.Errorf("expected ErrQueryFailed, got %v", err)
	}

	var qerr *QueryError
	if !errors.As(err, &qerr) {
		t.Fatalf("expected *QueryError, got %T", err)
	}
	if qerr.Op != "--cflags" || qerr.Library != "missing" {
		t.Errorf("unexpected query error fields: %+v", qerr)
	}
	if !strings.Contains(err.Error(), "was not found") {
		t.Errorf("expected stderr in error message, got %q", err.Error())
	}
}

func TestPkgConfigMissingTool(t *testing.T) {
	pc := NewPkgConfig(filepath.Join(t.TempDir(), "no-such-pkg-config"), nil)

	_, err := pc.Libs(context.Background(), "libsigrok")
	if !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("expected ErrToolNotFound, got %v", err)
	}
}

func TestPkgConfigExecutableFromEnv(t *testing.T) {
	t.Setenv("PKG_CONFIG", "/opt/bin/pkgconf")

	if got := (&PkgConfig{}).Executable(); got != "/opt/bin/pkgconf" {
		t.Errorf("Executable() = %q, want $PKG_CONFIG", got)
	}
	if got := (&PkgConfig{Path: "custom"}).Executable(); got != "custom" {
		t.Errorf("Executable() = %q, want explicit path", got)
	}

	t.Setenv("PKG_CONFIG", "")
	if got := (&PkgConfig{}).Executable(); got != DefaultPkgConfig {
		t.Errorf("Executable() = %q, want %q", got, DefaultPkgConfig)
	}
}

func TestPkgConfigPassesEnv(t *testing.T) {
	script := writeScript(t, t.TempDir(), "pkg-config", `#!/bin/sh
echo "-I$PKG_CONFIG_PATH/include"
`)
	pc := NewPkgConfig(script, nil)
	pc.Env = map[string]string{"PKG_CONFIG_PATH": "/opt/sigrok"}

	cflags, err := pc.CFlags(context.Background(), "libsigrok")
	if err != nil {
		t.Fatalf("CFlags returned error: %v", err)
	}
	if !reflect.DeepEqual(cflags, []string{"-I/opt/sigrok/include"}) {
		t.Errorf("CFlags = %v", cflags)
	}
}

func TestPkgConfigCanceledContext(t *testing.T) {
	pc := NewPkgConfig(fakePkgConfig(t), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := pc.CFlags(ctx, "libsigrok"); err == nil {
		t.Fatal("expected error for canceled context")
	}
}
