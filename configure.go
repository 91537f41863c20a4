package pyext

import (
	"context"

	"go.uber.org/zap"
)

// Configurator resolves a Config into a Package descriptor using pkg-config.
type Configurator struct {
	pkgConfig *PkgConfig
	logger    *zap.Logger
}

// NewConfigurator creates a Configurator. A nil pkgConfig is built from the
// Config passed to Configure.
func NewConfigurator(pkgConfig *PkgConfig, logger *zap.Logger) *Configurator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Configurator{pkgConfig: pkgConfig, logger: logger}
}

// Configure queries compile flags, link flags and version for cfg.Library, in
// that order, and assembles the package descriptor.
//
// The first failing query aborts configuration; no partial descriptor is
// ever returned.
func (c *Configurator) Configure(ctx context.Context, cfg *Config) (*Package, error) {
	pc := c.pkgConfigFor(cfg)

	cflags, err := pc.CFlags(ctx, cfg.Library)
	if err != nil {
		return nil, &Error{Op: "configure", Package: cfg.Name, Err: err}
	}

	libs, err := pc.Libs(ctx, cfg.Library)
	if err != nil {
		return nil, &Error{Op: "configure", Package: cfg.Name, Err: err}
	}

	version, err := pc.Version(ctx, cfg.Library)
	if err != nil {
		return nil, &Error{Op: "configure", Package: cfg.Name, Err: err}
	}

	ext := Extension{
		Name:        cfg.ExtensionName,
		Sources:     cfg.Sources,
		SwigOpts:    cflags,
		IncludeDirs: IncludeDirs(cflags),
		LibraryDirs: LibraryDirs(libs),
		Libraries:   Libraries(libs),
	}

	extraCompile := Unrecognized(cflags, IncludeMarker)
	extraLink := Unrecognized(libs, LibraryDirMarker, LibraryMarker)
	if cfg.ForwardExtraFlags {
		ext.ExtraCompileArgs = extraCompile
		ext.ExtraLinkArgs = extraLink
	} else if len(extraCompile)+len(extraLink) > 0 {
		c.logger.Debug("dropping unrecognized flags",
			zap.String("library", cfg.Library),
			zap.Strings("cflags", extraCompile),
			zap.Strings("libs", extraLink))
	}

	pkg := NewPackage(cfg.Name, version, cfg.Description, cfg.PyModules, ext)
	if err := pkg.Validate(); err != nil {
		return nil, err
	}

	c.logger.Info("configured package",
		zap.String("name", pkg.Name()),
		zap.String("version", pkg.Version()),
		zap.Strings("include_dirs", ext.IncludeDirs),
		zap.Strings("library_dirs", ext.LibraryDirs),
		zap.Strings("libraries", ext.Libraries))

	return pkg, nil
}

func (c *Configurator) pkgConfigFor(cfg *Config) *PkgConfig {
	if c.pkgConfig != nil {
		return c.pkgConfig
	}
	pc := NewPkgConfig(cfg.PkgConfig, c.logger)
	pc.VersionFlag = cfg.VersionFlag
	if cfg.PkgConfigPath != "" {
		pc.Env = map[string]string{"PKG_CONFIG_PATH": cfg.PkgConfigPath}
	}
	return pc
}
