// Package main is the entry point for the gridkit terminal grid.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dshills/gridkit/internal/app"
	"github.com/dshills/gridkit/internal/input/terminal"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type cliOptions struct {
	app.Options
	logFile string
}

func main() {
	os.Exit(run())
}

func run() int {
	cli := parseFlags()

	logFile := cli.logFile
	if logFile == "" {
		logFile = defaultLogFile()
	}
	if logFile != "" {
		f, err := openLogFile(logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: open log file: %v\n", err)
			return 1
		}
		defer f.Close()
		cli.LogOutput = f
	}

	application, err := app.New(cli.Options)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Ensure cleanup on all exit paths
	defer application.Shutdown()

	screen, err := terminal.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	application.SetScreen(screen)

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
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

// defaultLogFile returns the log path used when -log-file is not given, or
// "" if the user cache directory is unknown.
func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "gridkit", "gridkit.log")
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

func parseFlags() cliOptions {
	var cli cliOptions
	var showVersion bool
	var showHelp bool

	flag.StringVar(&cli.ConfigPath, "config", "", "Path to property file (TOML or YAML)")
	flag.StringVar(&cli.ConfigPath, "c", "", "Path to property file (shorthand)")
	flag.BoolVar(&cli.Watch, "watch", true, "Reload the property file when it changes")
	flag.StringVar(&cli.ColumnsJSON, "columns-json", "", "JSON file of column definitions keyed by column index")
	flag.StringVar(&cli.ScriptPath, "script", "", "Lua feature script inserted at the head of the chain")
	flag.StringVar(&cli.ScriptPath, "s", "", "Lua feature script (shorthand)")
	flag.IntVar(&cli.Rows, "rows", 1000, "Number of data rows")
	flag.IntVar(&cli.Columns, "columns", 26, "Number of data columns")
	flag.StringVar(&cli.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&cli.logFile, "log-file", "", "Write logs to this file (default <user cache dir>/gridkit/gridkit.log)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "gridkit - virtualized data grid for the terminal\n\n")
		fmt.Fprintf(os.Stderr, "Usage: gridkit [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  gridkit                          Browse 1000x26 demo cells\n")
		fmt.Fprintf(os.Stderr, "  gridkit -c grid.toml             Apply properties and column overrides\n")
		fmt.Fprintf(os.Stderr, "  gridkit -columns-json cols.json  Load column definitions\n")
		fmt.Fprintf(os.Stderr, "  gridkit -s wheel.lua -log-file grid.log\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("gridkit %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if !app.ValidLogLevel(cli.LogLevel) {
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", cli.LogLevel)
		os.Exit(1)
	}

	return cli
}
