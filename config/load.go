package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Supported file formats.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// Environment variables that override file settings.
const (
	EnvInterval = "SYSDASH_INTERVAL"
	EnvLogLevel = "SYSDASH_LOG_LEVEL"
	EnvLogFile  = "SYSDASH_LOG_FILE"
)

// Load reads configuration from the first file found on the search path:
//  1. $XDG_CONFIG_HOME/sysdash/config.toml
//  2. $XDG_CONFIG_HOME/sysdash/config.yaml
//  3. the same two under ~/.config when XDG_CONFIG_HOME points elsewhere
//
// If no file exists, the defaults are used. Environment overrides apply
// either way.
func Load() (*Config, error) {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadFromFile(p)
		}
	}
	cfg := DefaultConfig()
	if err := finish(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile reads configuration from path. The format is chosen by the
// file extension. A missing file is an error: the caller asked for it.
func LoadFromFile(path string) (*Config, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f, format)
	if err != nil {
		return nil, fmt.Errorf("%w (file %s)", err, path)
	}
	return cfg, nil
}

// LoadFromReader decodes configuration in the given format over the
// defaults, then applies environment overrides and validation.
func LoadFromReader(r io.Reader, format string) (*Config, error) {
	cfg := DefaultConfig()
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
			return nil, fmt.Errorf("config: decode toml: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(cfg); err != nil && err != io.EOF {
			return nil, fmt.Errorf("config: decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("config: unsupported format %q", format)
	}
	if err := finish(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FormatFromPath picks a decoder from the file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("config: %s: unknown extension, want .toml, .yaml or .yml", path)
	}
}

func finish(cfg *Config) error {
	if err := applyEnvOverrides(cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

// applyEnvOverrides lets SYSDASH_* variables take precedence over the file.
func applyEnvOverrides(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv(EnvInterval)); v != "" {
		var d Duration
		if err := d.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("config: %s: %w", EnvInterval, err)
		}
		cfg.Refresh.Interval = d
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.General.LogLevel = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.General.LogFile = v
	}
	return nil
}

// configSearchPaths returns the ordered list of config file paths to try.
func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	dirs := []string{xdgConfigHome(home)}

	// If XDG_CONFIG_HOME was explicitly set, also try the fallback default.
	if def := filepath.Join(home, ".config"); dirs[0] != def {
		dirs = append(dirs, def)
	}

	var paths []string
	for _, d := range dirs {
		paths = append(paths,
			filepath.Join(d, "sysdash", "config.toml"),
			filepath.Join(d, "sysdash", "config.yaml"),
		)
	}
	return paths
}

// xdgConfigHome returns XDG_CONFIG_HOME or ~/.config as fallback.
func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}
