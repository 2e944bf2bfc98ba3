// Package main is the entry point for the textforge editor.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/textforge/internal/app"
	"github.com/dshills/textforge/internal/config"
	"github.com/dshills/textforge/internal/script"
	"github.com/dshills/textforge/internal/session"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type cliOptions struct {
	configPath string
	scriptPath string
	filePath   string
	logLevel   string
	logFile    string
	files      []string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return 1
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.logFile != "" {
		cfg.Log.File = opts.logFile
	}

	logger, closeLog, err := buildLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()
	app.SetLogger(logger)

	var store *session.Store
	if cfg.Editor.AutoSession {
		store, err = session.NewStore()
		if err != nil {
			logger.Warn("session persistence disabled: %v", err)
		}
	}

	sess := app.NewSession(app.Options{
		Config: cfg,
		Logger: logger,
		Store:  store,
	})

	file := opts.filePath
	if file == "" && len(opts.files) > 0 {
		file = opts.files[0]
	}
	if file != "" {
		if err := sess.LoadFile(file); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	if opts.scriptPath != "" {
		return runScript(sess, opts.scriptPath, logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repl := app.NewREPL(sess, os.Stdin, os.Stdout)
	if opts.configPath != "" {
		updates := make(chan config.Config, 1)
		err := config.Watch(ctx, opts.configPath, func(c config.Config) {
			// Latest wins: displace a pending update rather than drop c.
			for {
				select {
				case updates <- c:
					return
				case <-updates:
				}
			}
		})
		if err != nil {
			logger.Warn("config watch disabled: %v", err)
		} else {
			repl.SetConfigUpdates(updates)
		}
	}
	if err := repl.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// runScript executes a Lua script against the session, then writes the
// result: back to the loaded file when one is bound, else to stdout.
func runScript(sess *app.Session, path string, logger *app.Logger) int {
	eng := script.New(sess)
	defer eng.Close()

	if err := eng.RunFile(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if sess.FilePath() != "" {
		if err := sess.SaveFile(""); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		logger.Info("script %s applied to %s", path, sess.FilePath())
		return 0
	}
	fmt.Print(sess.Text())
	if sess.Text() != "" {
		fmt.Println()
	}
	return 0
}

// buildLogger creates the application logger from config, directing
// output to the configured log file when set. The returned func closes
// the file.
func buildLogger(cfg config.Config) (*app.Logger, func(), error) {
	logCfg := app.DefaultLoggerConfig()
	logCfg.Level = app.ParseLogLevel(cfg.Log.Level)

	closer := func() {}
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		logCfg.Output = f
		closer = func() { f.Close() }
	}
	return app.NewLogger(logCfg), closer, nil
}

func parseFlags() cliOptions {
	var opts cliOptions
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.scriptPath, "script", "", "Run a Lua script instead of the interactive loop")
	flag.StringVar(&opts.scriptPath, "s", "", "Run a Lua script (shorthand)")
	flag.StringVar(&opts.filePath, "file", "", "File to open")
	flag.StringVar(&opts.filePath, "f", "", "File to open (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.logFile, "log-file", "", "Write logs to a file instead of stderr")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Textforge - headless text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: textforge [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  textforge                     Start with an empty buffer\n")
		fmt.Fprintf(os.Stderr, "  textforge notes.txt           Edit a file interactively\n")
		fmt.Fprintf(os.Stderr, "  textforge -s fix.lua file.go  Apply a script to a file\n")
		fmt.Fprintf(os.Stderr, "  echo add hi | textforge       Drive the editor from a pipe\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Textforge %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.logLevel {
	case "", "debug", "info", "warn", "error":
		// Valid
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		os.Exit(1)
	}

	opts.files = flag.Args()
	return opts
}
