// Package main is the entry point for the Quill editor.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/dshills/quill/internal/app"
	"github.com/dshills/quill/internal/config"
	"github.com/dshills/quill/internal/config/watcher"
	"github.com/dshills/quill/internal/frontend"
	"github.com/dshills/quill/internal/plugin/lua"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	ConfigPath string
	LogLevel   string
	ReadOnly   bool
	Files      []string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	if fd := os.Stdout.Fd(); !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		fmt.Fprintln(os.Stderr, "Error: quill must run in a terminal")
		return 1
	}

	cfg, loaded, err := loadConfig(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}

	logger, closeLog, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	application, err := app.New(cfg, app.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	if err := openFiles(application, opts.Files, opts.ReadOnly); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	host, err := lua.NewHost(application)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to start lua: %v\n", err)
		return 1
	}
	defer host.Close()
	for _, script := range cfg.Plugins.Scripts {
		if err := host.LoadScript(script); err != nil {
			logger.Warn("%v", err)
			application.Whine(err.Error())
		}
	}

	fe, err := frontend.NewTerminal(application)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if loaded != "" {
		w, err := watcher.New(loaded, func(cfg config.Config, err error) {
			_ = fe.Post(func() { reload(application, cfg, err) })
		})
		if err != nil {
			logger.Warn("not watching %s: %v", loaded, err)
		} else {
			defer w.Close()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := fe.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// reload applies a changed configuration on the event loop.
func reload(a *app.Application, cfg config.Config, err error) {
	if err == nil {
		err = a.ApplyConfig(cfg)
	}
	if err != nil {
		a.Logger().Warn("config reload: %v", err)
		a.Whine(fmt.Sprintf("Config not reloaded: %v", err))
		return
	}
	a.Whine("Config reloaded")
}

// loadConfig reads the configuration and returns the path it came from.
// A missing default file is not an error.
func loadConfig(path string) (config.Config, string, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
		if path == "" {
			return config.Default(), "", nil
		}
	}

	cfg, err := config.Load(path)
	switch {
	case err == nil:
		return cfg, path, nil
	case !explicit && errors.Is(err, config.ErrFileNotFound):
		return config.Default(), "", nil
	default:
		return config.Config{}, "", err
	}
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "quill", "config.toml")
}

// newLogger logs to the configured file. Without one, logging is
// discarded so it cannot disturb the screen.
func newLogger(cfg config.LogConfig) (*app.Logger, func(), error) {
	level, err := app.ParseLogLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	lc := app.DefaultLoggerConfig()
	lc.Level = level
	lc.Output = io.Discard
	closeFn := func() {}

	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		lc.Output = f
		closeFn = func() { _ = f.Close() }
	}
	return app.NewLogger(lc), closeFn, nil
}

// openFiles loads each file into a session. Buffers are never written
// back.
func openFiles(a *app.Application, files []string, readOnly bool) error {
	if len(files) == 0 {
		a.NewSession(a.OpenBuffer(app.ScratchName, ""))
		return nil
	}
	for _, name := range files {
		data, err := os.ReadFile(name)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("reading %s: %w", name, err)
		}
		buf := a.OpenBuffer(filepath.Base(name), string(data))
		buf.ClearUndo()
		if readOnly {
			buf.SetWritable(false)
		}
		a.NewSession(buf)
	}
	return nil
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (TOML or YAML)")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&opts.ReadOnly, "readonly", false, "Open files read-only")
	flag.BoolVar(&opts.ReadOnly, "R", false, "Open files read-only (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Quill - a small Emacs-style editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: quill [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  quill                       Open the scratch buffer\n")
		fmt.Fprintf(os.Stderr, "  quill notes.txt             Edit a copy of a file\n")
		fmt.Fprintf(os.Stderr, "  quill -R notes.txt          View a file read-only\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Quill %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if _, err := app.ParseLogLevel(opts.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	opts.Files = flag.Args()
	return opts
}
