// Package main is the entry point for the Kestrel editor.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/kestrel-editor/kestrel/internal/app"
	"github.com/kestrel-editor/kestrel/internal/highlight"
	"github.com/kestrel-editor/kestrel/internal/tui"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	theme     string
	themeFile string
	logPath   string
	logLevel  string
	file      string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	logger := app.NullLogger
	if opts.logPath != "" {
		f, err := os.OpenFile(opts.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to open log file: %v\n", err)
			return 1
		}
		defer f.Close()
		logger = app.NewLogger(app.LoggerConfig{
			Level:  app.ParseLogLevel(opts.logLevel),
			Output: f,
			Prefix: "kestrel",
		})
	}

	themes := highlight.NewRegistry()
	if opts.themeFile != "" {
		data, err := os.ReadFile(opts.themeFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to read theme file: %v\n", err)
			return 1
		}
		t, err := highlight.LoadThemeJSON(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid theme file: %v\n", err)
			return 1
		}
		themes.Register(t)
	}

	editor := app.New(
		app.WithLogger(logger),
		app.WithThemes(themes),
		app.WithTheme(opts.theme),
	)

	ui, err := tui.New(editor)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		cancel()
	}()

	runErr := ui.Run(ctx, opts.file)
	ui.Close()

	if runErr != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		return 1
	}
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.theme, "theme", highlight.DefaultThemeName, "Color theme name")
	flag.StringVar(&opts.themeFile, "theme-file", "", "Path to a custom theme JSON file")
	flag.StringVar(&opts.logPath, "log", "", "Write logs to this file (logging is off without it)")
	flag.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Kestrel - a small text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: kestrel [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nThemes: %s\n", strings.Join(highlight.NewRegistry().SortedNames(), ", "))
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  Ctrl-N  new file      Ctrl-O  open file\n")
		fmt.Fprintf(os.Stderr, "  Ctrl-S  save          Ctrl-T  cycle theme\n")
		fmt.Fprintf(os.Stderr, "  Ctrl-Q  quit\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("Kestrel %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		os.Exit(0)
	}

	switch opts.logLevel {
	case "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		os.Exit(1)
	}

	if args := flag.Args(); len(args) > 0 {
		opts.file = args[0]
	}

	return opts
}
