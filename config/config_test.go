package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

// clearEnv neutralises overrides that may be set on the host.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvInterval, EnvLogLevel, EnvLogFile} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.General.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.General.LogLevel)
	}
	if cfg.Refresh.Interval.Duration != 5*time.Second {
		t.Errorf("Interval = %v, want 5s", cfg.Refresh.Interval)
	}
	if cfg.Refresh.CPUWindow.Duration != 500*time.Millisecond {
		t.Errorf("CPUWindow = %v, want 500ms", cfg.Refresh.CPUWindow)
	}
	if cfg.History.MaxPoints != 60 {
		t.Errorf("MaxPoints = %d, want 60", cfg.History.MaxPoints)
	}
	want := []string{"squashfs", "tmpfs", "devtmpfs", "overlay"}
	if !reflect.DeepEqual(cfg.Disk.ExcludeFstypes, want) {
		t.Errorf("ExcludeFstypes = %v, want %v", cfg.Disk.ExcludeFstypes, want)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromReader_TOML(t *testing.T) {
	clearEnv(t)
	input := `
[general]
log_level = "debug"
log_file = "/tmp/sysdash.log"

[refresh]
interval = "10s"
cpu_window = "250ms"

[history]
max_points = 120

[disk]
exclude_fstypes = ["tmpfs"]

[display]
process_limit = 25
`
	cfg, err := LoadFromReader(strings.NewReader(input), FormatTOML)
	if err != nil {
		t.Fatalf("LoadFromReader() error: %v", err)
	}

	if cfg.General.LogLevel != "debug" || cfg.General.LogFile != "/tmp/sysdash.log" {
		t.Errorf("General = %+v", cfg.General)
	}
	if cfg.Refresh.Interval.Duration != 10*time.Second {
		t.Errorf("Interval = %v, want 10s", cfg.Refresh.Interval)
	}
	if cfg.Refresh.CPUWindow.Duration != 250*time.Millisecond {
		t.Errorf("CPUWindow = %v, want 250ms", cfg.Refresh.CPUWindow)
	}
	if cfg.History.MaxPoints != 120 {
		t.Errorf("MaxPoints = %d, want 120", cfg.History.MaxPoints)
	}
	if !reflect.DeepEqual(cfg.Disk.ExcludeFstypes, []string{"tmpfs"}) {
		t.Errorf("ExcludeFstypes = %v", cfg.Disk.ExcludeFstypes)
	}
	if cfg.Display.ProcessLimit != 25 {
		t.Errorf("ProcessLimit = %d, want 25", cfg.Display.ProcessLimit)
	}
}

func TestLoadFromReader_TOMLIntegerSeconds(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadFromReader(strings.NewReader("[refresh]\ninterval = 15\n"), FormatTOML)
	if err != nil {
		t.Fatalf("LoadFromReader() error: %v", err)
	}
	if cfg.Refresh.Interval.Duration != 15*time.Second {
		t.Errorf("Interval = %v, want 15s", cfg.Refresh.Interval)
	}
}

func TestLoadFromReader_YAML(t *testing.T) {
	clearEnv(t)
	input := `
general:
  log_level: warn
refresh:
  interval: 30
  cpu_window: 1s
history:
  max_points: 10
disk:
  exclude_fstypes: []
`
	cfg, err := LoadFromReader(strings.NewReader(input), FormatYAML)
	if err != nil {
		t.Fatalf("LoadFromReader() error: %v", err)
	}
	if cfg.General.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.General.LogLevel)
	}
	if cfg.Refresh.Interval.Duration != 30*time.Second {
		t.Errorf("Interval = %v, want 30s", cfg.Refresh.Interval)
	}
	if cfg.Refresh.CPUWindow.Duration != time.Second {
		t.Errorf("CPUWindow = %v, want 1s", cfg.Refresh.CPUWindow)
	}
	if cfg.History.MaxPoints != 10 {
		t.Errorf("MaxPoints = %d, want 10", cfg.History.MaxPoints)
	}
	if cfg.Disk.ExcludeFstypes == nil || len(cfg.Disk.ExcludeFstypes) != 0 {
		t.Errorf("ExcludeFstypes = %#v, want empty non-nil", cfg.Disk.ExcludeFstypes)
	}
}

func TestLoadFromReader_EmptyYAMLUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadFromReader(strings.NewReader(""), FormatYAML)
	if err != nil {
		t.Fatalf("LoadFromReader() error: %v", err)
	}
	if cfg.Refresh.Interval.Duration != 5*time.Second {
		t.Errorf("Interval = %v, want default 5s", cfg.Refresh.Interval)
	}
}

func TestLoadFromReader_Errors(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name   string
		input  string
		format string
		want   string
	}{
		{"bad toml", "[refresh\n", FormatTOML, "decode toml"},
		{"bad yaml", "refresh: [\n", FormatYAML, "decode yaml"},
		{"bad duration", "[refresh]\ninterval = \"soon\"\n", FormatTOML, "invalid duration"},
		{"yaml duration not scalar", "refresh:\n  interval: [1]\n", FormatYAML, "must be a scalar"},
		{"negative interval", "[refresh]\ninterval = \"-5s\"\n", FormatTOML, "refresh.interval"},
		{"negative history", "[history]\nmax_points = -1\n", FormatTOML, "history.max_points"},
		{"negative process limit", "[display]\nprocess_limit = -3\n", FormatTOML, "display.process_limit"},
		{"unknown level", "[general]\nlog_level = \"loud\"\n", FormatTOML, "log_level"},
		{"unknown format", "", "ini", "unsupported format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromReader(strings.NewReader(tt.input), tt.format)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestValidate_ClampsInterval(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want time.Duration
	}{
		{0, 5 * time.Second},
		{200 * time.Millisecond, time.Second},
		{45 * time.Second, 45 * time.Second},
		{2500 * time.Millisecond, 3 * time.Second},
		{10 * time.Minute, 60 * time.Second},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Refresh.Interval.Duration = tt.in
		if err := cfg.Validate(); err != nil {
			t.Fatalf("Validate(%v) error: %v", tt.in, err)
		}
		if got := cfg.Refresh.Interval.Duration; got != tt.want {
			t.Errorf("interval %v clamped to %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidate_ZeroCPUWindowUsesDefault(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Refresh.CPUWindow.Duration = 0
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.Refresh.CPUWindow.Duration != 500*time.Millisecond {
		t.Errorf("CPUWindow = %v, want 500ms", cfg.Refresh.CPUWindow)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv(EnvInterval, "20")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvLogFile, "/var/log/sysdash.log")

	cfg, err := LoadFromReader(strings.NewReader("[refresh]\ninterval = \"3s\"\n"), FormatTOML)
	if err != nil {
		t.Fatalf("LoadFromReader() error: %v", err)
	}
	if cfg.Refresh.Interval.Duration != 20*time.Second {
		t.Errorf("Interval = %v, want env override 20s", cfg.Refresh.Interval)
	}
	if cfg.General.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.General.LogLevel)
	}
	if cfg.General.LogFile != "/var/log/sysdash.log" {
		t.Errorf("LogFile = %q", cfg.General.LogFile)
	}
}

func TestApplyEnvOverrides_BadInterval(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvInterval, "often")
	if _, err := LoadFromReader(strings.NewReader(""), FormatTOML); err == nil {
		t.Error("expected error for invalid SYSDASH_INTERVAL")
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	yml := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(yml, []byte("refresh:\n  interval: 2s\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFromFile(yml)
	if err != nil {
		t.Fatalf("LoadFromFile() error: %v", err)
	}
	if cfg.Refresh.Interval.Duration != 2*time.Second {
		t.Errorf("Interval = %v, want 2s", cfg.Refresh.Interval)
	}

	if _, err := LoadFromFile(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("expected error for a missing explicit file")
	}
	if _, err := LoadFromFile(filepath.Join(dir, "config.ini")); err == nil {
		t.Error("expected error for unknown extension")
	}
}

func TestLoad_SearchPath(t *testing.T) {
	clearEnv(t)
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with no file error: %v", err)
	}
	if cfg.Refresh.Interval.Duration != 5*time.Second {
		t.Errorf("Interval = %v, want default", cfg.Refresh.Interval)
	}

	dir := filepath.Join(xdg, "sysdash")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("history:\n  max_points: 7\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.History.MaxPoints != 7 {
		t.Errorf("MaxPoints = %d, want 7 from config.yaml", cfg.History.MaxPoints)
	}

	// config.toml wins over config.yaml.
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[history]\nmax_points = 9\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.History.MaxPoints != 9 {
		t.Errorf("MaxPoints = %d, want 9 from config.toml", cfg.History.MaxPoints)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"info", slog.LevelInfo},
		{"DEBUG", slog.LevelDebug},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil {
			t.Errorf("ParseLevel(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDurationUnmarshalText(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"5s", 5 * time.Second},
		{"1m30s", 90 * time.Second},
		{"7", 7 * time.Second},
		{"0.5", 500 * time.Millisecond},
		{"", 0},
	}
	for _, tt := range tests {
		var d Duration
		if err := d.UnmarshalText([]byte(tt.in)); err != nil {
			t.Fatalf("UnmarshalText(%q) error: %v", tt.in, err)
		}
		if d.Duration != tt.want {
			t.Errorf("UnmarshalText(%q) = %v, want %v", tt.in, d.Duration, tt.want)
		}
	}
}

func TestSysMetrics(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Refresh.CPUWindow.Duration = time.Second
	cfg.Disk.ExcludeFstypes = []string{"nfs"}

	sm := cfg.SysMetrics()
	if sm.CPUWindow != time.Second {
		t.Errorf("CPUWindow = %v", sm.CPUWindow)
	}
	if !reflect.DeepEqual(sm.ExcludeFstypes, []string{"nfs"}) {
		t.Errorf("ExcludeFstypes = %v", sm.ExcludeFstypes)
	}
}
