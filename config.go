package pyext

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the project file LoadConfig reads when no path is given.
const DefaultConfigFile = "pyext.yaml"

const pythonEnv = "PYEXT_PYTHON"

// Config holds the project settings for one binding.
type Config struct {
	// Library is the pkg-config module name to query.
	Library string `yaml:"library"`

	// Package metadata
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	PyModules   []string `yaml:"py_modules"`

	// Extension module
	ExtensionName string   `yaml:"extension_name"`
	Sources       []string `yaml:"sources"`

	// ForwardExtraFlags passes flags without an -I/-L/-l marker through as
	// extra compile/link arguments instead of dropping them.
	ForwardExtraFlags bool `yaml:"forward_extra_flags"`

	// Tools
	PkgConfig     string `yaml:"pkg_config"`
	PkgConfigPath string `yaml:"pkg_config_path"`
	VersionFlag   string `yaml:"version_flag"`
	Python        string `yaml:"python"`
}

// DefaultConfig returns the settings for the libsigrok Python bindings.
func DefaultConfig() *Config {
	return &Config{
		Library:       "libsigrok",
		Name:          "libsigrok",
		Description:   "libsigrok API wrapper",
		PyModules:     []string{"libsigrok"},
		ExtensionName: "_libsigrok",
		Sources:       []string{"libsigrok_python.i"},
		PkgConfig:     os.Getenv(pkgConfigEnv),
		VersionFlag:   DefaultVersionFlag,
		Python:        defaultPython(),
	}
}

// LoadConfig loads configuration from file, layered over DefaultConfig.
//
// A missing file is not an error; the defaults are returned.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFile
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes cfg to path as YAML.
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = DefaultConfigFile
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func defaultPython() string {
	if python := os.Getenv(pythonEnv); python != "" {
		return python
	}
	return "python3"
}
