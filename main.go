// sysdash is a live terminal dashboard for local system resources.
//
// It samples CPU, memory, disk and process metrics on a fixed interval,
// keeps a sliding window of recent samples, and renders gauges, trend
// charts and a searchable process table.
//
// Usage:
//
//	sysdash [flags]
//
// Flags:
//
//	-config string    Path to configuration file (default: ~/.config/sysdash/config.toml)
//	-interval int     Refresh interval in seconds, 1-60 (default from config, 5)
//	-once             Print one plain-text frame and exit
//	-plain            Stream plain-text frames instead of the interactive dashboard
//	-demo             Use a synthetic metric source
//	-log-file string  Write structured logs to this file
//	-verbose          Enable debug logging
//	-version          Print version and exit
//
// When stdout is not a terminal, -plain is implied.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/sysdash/collectors"
	"gitlab.com/tinyland/lab/sysdash/collectors/sysmetrics"
	"gitlab.com/tinyland/lab/sysdash/config"
	"gitlab.com/tinyland/lab/sysdash/display/color"
	"gitlab.com/tinyland/lab/sysdash/display/report"
	"gitlab.com/tinyland/lab/sysdash/display/tui"
	"gitlab.com/tinyland/lab/sysdash/history"
	"gitlab.com/tinyland/lab/sysdash/monitor"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// flags holds the parsed command line.
type flags struct {
	configPath string
	interval   int
	once       bool
	plain      bool
	demo       bool
	logFile    string
	verbose    bool
	version    bool
}

func parseFlags(args []string, stderr io.Writer) (flags, error) {
	var f flags
	fs := flag.NewFlagSet("sysdash", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.configPath, "config", "", "Path to configuration file (default: ~/.config/sysdash/config.toml)")
	fs.IntVar(&f.interval, "interval", 0, "Refresh interval in seconds, 1-60 (0 = from config)")
	fs.BoolVar(&f.once, "once", false, "Print one plain-text frame and exit")
	fs.BoolVar(&f.plain, "plain", false, "Stream plain-text frames instead of the interactive dashboard")
	fs.BoolVar(&f.demo, "demo", false, "Use a synthetic metric source")
	fs.StringVar(&f.logFile, "log-file", "", "Write structured logs to this file")
	fs.BoolVar(&f.verbose, "verbose", false, "Enable debug logging")
	fs.BoolVar(&f.version, "version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return f, err
	}
	if f.interval < 0 {
		return f, fmt.Errorf("-interval must be positive, got %d", f.interval)
	}
	return f, nil
}

// run executes sysdash and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	f, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "sysdash: %v\n", err)
		return 2
	}

	if f.version {
		fmt.Fprintf(stdout, "sysdash %s (%s) built %s\n", version, commit, date)
		return 0
	}

	cfg, err := loadConfig(f)
	if err != nil {
		fmt.Fprintf(stderr, "sysdash: %v\n", err)
		return 1
	}

	out, isFile := stdout.(*os.File)
	interactive := !f.once && !f.plain && isFile && color.IsTerminal(out)
	if isFile {
		color.Apply(out)
	} else {
		color.ForceDisable()
	}

	logger, closeLog, err := newLogger(cfg, !interactive, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "sysdash: %v\n", err)
		return 1
	}
	defer closeLog()

	var src collectors.Source
	if f.demo {
		src = collectors.NewMockSource()
	} else {
		src = sysmetrics.NewSysMetricsCollector(cfg.SysMetrics(), logger)
	}
	hist := history.New(cfg.History.MaxPoints)

	logger.Info("sysdash starting",
		"version", version,
		"interval", cfg.Refresh.Interval.Duration,
		"history", hist.Cap(),
		"interactive", interactive,
		"demo", f.demo,
	)

	switch {
	case f.once:
		err = runOnce(ctx, src, hist, cfg, stdout, logger)
	case interactive:
		err = runTUI(ctx, src, hist, cfg, logger)
	default:
		err = runPlain(ctx, src, hist, cfg, stdout, logger)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("sysdash stopped", "error", err)
		fmt.Fprintf(stderr, "sysdash: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(f flags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if f.configPath != "" {
		cfg, err = config.LoadFromFile(f.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if f.interval > 0 {
		cfg.Refresh.Interval.Duration = monitor.ClampInterval(time.Duration(f.interval) * time.Second)
	}
	if f.logFile != "" {
		cfg.General.LogFile = f.logFile
	}
	if f.verbose {
		cfg.General.LogLevel = "debug"
	}
	return cfg, nil
}

// newLogger builds the process logger. The interactive dashboard owns the
// terminal, so without a log file its logs are discarded.
func newLogger(cfg *config.Config, toStderr bool, stderr io.Writer) (*slog.Logger, func(), error) {
	level, err := config.ParseLevel(cfg.General.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	switch {
	case cfg.General.LogFile != "":
		lf, err := os.OpenFile(cfg.General.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return slog.New(slog.NewTextHandler(lf, opts)), func() { lf.Close() }, nil
	case toStderr:
		return slog.New(slog.NewTextHandler(stderr, opts)), func() {}, nil
	default:
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
}

func runOnce(ctx context.Context, src collectors.Source, hist *history.Buffer, cfg *config.Config, stdout io.Writer, logger *slog.Logger) error {
	host, err := src.HostInfo(ctx)
	if err != nil {
		logger.Warn("host info incomplete", "error", err)
	}
	reading := monitor.NewSampler(src, logger).Collect(ctx, monitor.Options{Processes: true})
	if err := ctx.Err(); err != nil {
		return err
	}
	hist.Append(reading.Sample)

	r := report.NewRenderer(stdout, report.Options{ProcessRows: cfg.Display.ProcessLimit, Host: host})
	return r.Render(reading, hist)
}

func runPlain(ctx context.Context, src collectors.Source, hist *history.Buffer, cfg *config.Config, stdout io.Writer, logger *slog.Logger) error {
	host, err := src.HostInfo(ctx)
	if err != nil {
		logger.Warn("host info incomplete", "error", err)
	}
	r := report.NewRenderer(stdout, report.Options{ProcessRows: cfg.Display.ProcessLimit, Host: host})
	runner := monitor.NewRunner(
		monitor.NewSampler(src, logger),
		hist,
		monitor.NewLoop(cfg.Refresh.Interval.Duration),
		monitor.Options{Processes: true},
		r.Render,
		logger,
	)
	stop := watchRefreshSignal(ctx, runner.Trigger)
	defer stop()
	return runner.Run(ctx)
}

func runTUI(ctx context.Context, src collectors.Source, hist *history.Buffer, cfg *config.Config, logger *slog.Logger) error {
	m := tui.New(tui.Options{
		Context:      ctx,
		Source:       src,
		History:      hist,
		Interval:     cfg.Refresh.Interval.Duration,
		ProcessLimit: cfg.Display.ProcessLimit,
		Zones:        zone.New(),
		Logger:       logger,
	})
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
