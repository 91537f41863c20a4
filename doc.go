// Package pyext builds Python native extensions against system libraries
// registered with pkg-config.
//
// It replaces the classic setup.py recipe that shells out to pkg-config,
// strips the -I/-L/-l prefixes from the returned flags and feeds them to
// distutils. The configuration step produces a Package descriptor, and a
// builder turns it into an importable shared object.
//
// # Basic Usage
//
// Resolve the descriptor for a library and build it:
//
//	cfg := pyext.DefaultConfig()
//	cfg.Library = "libsigrok"
//
//	configurator := pyext.NewConfigurator(nil, logger)
//	pkg, err := configurator.Configure(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//
//	factory := pyext.NewBuilderFactory(logger)
//	results, err := factory.BuildAll(ctx, &pyext.BuildConfig{
//	    SourceDir: "bindings/python",
//	    DestPath:  "build/lib",
//	}, pkg)
//
// # Architecture
//
//	Configurator
//	├── PkgConfig (--cflags, --libs, --modversion)
//	└── flags (IncludeDirs, LibraryDirs, Libraries)
//	      ↓
//	Package descriptor
//	      ↓
//	BuilderFactory
//	├── SwigBuilder (swig → cc -shared)
//	└── SetupPyBuilder (setup.py build_ext)
//
// Flags that carry none of the -I, -L or -l markers are dropped unless
// Config.ForwardExtraFlags is set, in which case they are forwarded as extra
// compile and link arguments.
//
// # Platform Support
//
// Linux and macOS. Windows builds work through SetupPyBuilder only.
package pyext
