// Package config loads sysdash settings from TOML or YAML files with
// environment overrides.
package config

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"gitlab.com/tinyland/lab/sysdash/collectors/sysmetrics"
	"gitlab.com/tinyland/lab/sysdash/history"
	"gitlab.com/tinyland/lab/sysdash/monitor"
)

// Config is the root sysdash configuration.
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Refresh RefreshConfig `toml:"refresh" yaml:"refresh"`
	History HistoryConfig `toml:"history" yaml:"history"`
	Disk    DiskConfig    `toml:"disk" yaml:"disk"`
	Display DisplayConfig `toml:"display" yaml:"display"`
}

// GeneralConfig holds logging settings.
type GeneralConfig struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level" yaml:"log_level"`
	// LogFile receives structured logs. Empty discards them in the TUI and
	// writes to stderr in plain mode.
	LogFile string `toml:"log_file" yaml:"log_file"`
}

// RefreshConfig controls the refresh cycle.
type RefreshConfig struct {
	// Interval is the wait between cycles, 1s to 60s.
	Interval Duration `toml:"interval" yaml:"interval"`
	// CPUWindow is how long each CPU sample averages over.
	CPUWindow Duration `toml:"cpu_window" yaml:"cpu_window"`
}

// HistoryConfig sizes the in-memory sample window.
type HistoryConfig struct {
	MaxPoints int `toml:"max_points" yaml:"max_points"`
}

// DiskConfig selects which partitions are reported.
type DiskConfig struct {
	ExcludeFstypes []string `toml:"exclude_fstypes" yaml:"exclude_fstypes"`
}

// DisplayConfig holds rendering settings.
type DisplayConfig struct {
	// ProcessLimit caps the rows in the process table. Zero shows all.
	ProcessLimit int `toml:"process_limit" yaml:"process_limit"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	sm := sysmetrics.DefaultConfig()
	return &Config{
		General: GeneralConfig{
			LogLevel: "info",
		},
		Refresh: RefreshConfig{
			Interval:  Duration{monitor.DefaultInterval},
			CPUWindow: Duration{sm.CPUWindow},
		},
		History: HistoryConfig{
			MaxPoints: history.MaxHistoryPoints,
		},
		Disk: DiskConfig{
			ExcludeFstypes: sm.ExcludeFstypes,
		},
	}
}

// Validate rejects settings that cannot work and clamps the refresh
// interval into range.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.General.LogLevel); err != nil {
		return err
	}
	if c.Refresh.Interval.Duration < 0 {
		return fmt.Errorf("config: refresh.interval must be positive, got %s", c.Refresh.Interval)
	}
	c.Refresh.Interval.Duration = monitor.ClampInterval(c.Refresh.Interval.Duration)

	if c.Refresh.CPUWindow.Duration < 0 {
		return fmt.Errorf("config: refresh.cpu_window must be positive, got %s", c.Refresh.CPUWindow)
	}
	if c.Refresh.CPUWindow.Duration == 0 {
		c.Refresh.CPUWindow.Duration = sysmetrics.DefaultCPUWindow
	}
	if c.History.MaxPoints < 0 {
		return fmt.Errorf("config: history.max_points must be non-negative, got %d", c.History.MaxPoints)
	}
	if c.Display.ProcessLimit < 0 {
		return fmt.Errorf("config: display.process_limit must be non-negative, got %d", c.Display.ProcessLimit)
	}
	return nil
}

// SysMetrics returns the collector settings derived from c.
func (c *Config) SysMetrics() sysmetrics.Config {
	return sysmetrics.Config{
		CPUWindow:      c.Refresh.CPUWindow.Duration,
		ExcludeFstypes: c.Disk.ExcludeFstypes,
	}
}

// ParseLevel maps a level name to a slog.Level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("config: general.log_level must be debug, info, warn or error, got %q", s)
	}
}

// Duration wraps time.Duration for text decoding. It accepts Go duration
// strings ("5s", "1m30s") and bare numbers, read as seconds.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler, used by the TOML decoder.
func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		d.Duration = 0
		return nil
	}
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		d.Duration = time.Duration(secs * float64(time.Second))
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML accepts a scalar node, quoted or not.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", node.Line)
	}
	return d.UnmarshalText([]byte(node.Value))
}
