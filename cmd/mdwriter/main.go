// Package main is the entry point for the mdwriter markdown editor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/dshills/mdwriter/internal/app"
	"github.com/dshills/mdwriter/internal/config"
	"github.com/dshills/mdwriter/internal/logging"
	"github.com/dshills/mdwriter/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type flags struct {
	configPath string
	logLevel   string
	file       string
}

func main() {
	os.Exit(run())
}

func run() int {
	f := parseFlags()

	configPath := f.configPath
	if configPath == "" {
		if _, err := os.Stat(config.DefaultPath()); err == nil {
			configPath = config.DefaultPath()
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}

	// Logs go to a file; the terminal belongs to the editor.
	logFile := logging.OpenFile(logging.DefaultFileConfig(cfg.Log.File))
	defer logFile.Close()
	logger := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.Log.Level),
		Output: logFile,
		Prefix: "mdwriter",
	}).WithSession()
	logger.WithFields(map[string]any{"version": version, "commit": commit}).Info("starting")

	application, err := app.New(app.Options{
		Config:     cfg,
		ConfigPath: configPath,
		File:       f.file,
		Logger:     logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Ensure cleanup on all exit paths
	defer application.Shutdown()

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(term); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		logger.Error("%v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func parseFlags() flags {
	var f flags
	var showVersion bool
	var showHelp bool

	flag.StringVar(&f.configPath, "config", "", "Path to configuration file (.toml or .yaml)")
	flag.StringVar(&f.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "mdwriter - markdown editor with live preview\n\n")
		fmt.Fprintf(os.Stderr, "Usage: mdwriter [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
		vars := config.EnvVars()
		sort.Strings(vars)
		for _, name := range vars {
			fmt.Fprintf(os.Stderr, "  %s\n", name)
		}
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+S export markdown   Ctrl+W export HTML   Ctrl+E toggle preview\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+D toggle direction  Ctrl+T toggle theme  Ctrl+L clear (press twice)\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+A select all        Ctrl+Q quit\n")
		fmt.Fprintf(os.Stderr, "  Alt+b/i/s/c/k/l/g/u/o/q  bold, italic, strike, code, code block,\n")
		fmt.Fprintf(os.Stderr, "                           link, image, bullet, numbered, quote\n")
		fmt.Fprintf(os.Stderr, "\nBuilt-in formats (extend with [[formats]] in the config file):\n")
		var kinds []string
		for _, k := range config.Default().FormatTable().Kinds() {
			kinds = append(kinds, string(k))
		}
		sort.Strings(kinds)
		fmt.Fprintf(os.Stderr, "  %s\n", strings.Join(kinds, ", "))
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("mdwriter %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch f.logLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", f.logLevel)
		os.Exit(1)
	}

	if flag.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "Error: at most one file may be given\n")
		os.Exit(1)
	}
	f.file = flag.Arg(0)

	return f
}
