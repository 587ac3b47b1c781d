// Package main is the cursortrail demo viewer: it opens a file read-only in
// a terminal and renders the fading cursor trail in the gutter as you move.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/cursortrail/internal/config"
	"github.com/dshills/cursortrail/internal/extension"
	"github.com/dshills/cursortrail/internal/host/term"
	"github.com/dshills/cursortrail/internal/log"
	"github.com/dshills/cursortrail/internal/theme"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  string
		themeDir    string
		logPath     string
		logLevel    string
		showVersion bool
	)
	flag.StringVar(&configPath, "config", "", "Path to a cursortrail.toml or .yaml config file")
	flag.StringVar(&themeDir, "themes", "", "Directory of colorscheme JSON files to load")
	flag.StringVar(&logPath, "log", "", "Write debug logs to this file")
	flag.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("cursortrail %s (%s)\n", version, commit)
		return 0
	}
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: cursortrail [flags] FILE")
		flag.PrintDefaults()
		return 2
	}

	logger := log.Discard()
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: opening log file: %v\n", err)
			return 1
		}
		defer f.Close()
		logger = log.New(log.Config{Level: log.ParseLevel(logLevel), Output: f, Prefix: "cursortrail"})
	}

	themes := theme.NewRegistry()
	if themeDir != "" {
		if err := theme.LoadDir(themes, themeDir); err != nil {
			logger.Warn("%v", err)
		}
	}

	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	h, err := term.New(flag.Arg(0), themes, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ext := extension.New(h, extension.WithLogger(logger))
	if err := ext.Setup(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer ext.Teardown()

	// Live-reload the config file: a successful load re-runs Setup.
	if configPath != "" {
		w, err := config.Watch(configPath, func(cfg config.Config, err error) {
			if err != nil {
				logger.Warn("config reload: %v", err)
				return
			}
			if err := ext.Setup(cfg); err != nil {
				logger.Warn("config reload rejected: %v", err)
			}
		})
		if err != nil {
			logger.Warn("config watch: %v", err)
		} else {
			defer w.Close()
		}
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		h.Close()
	}()

	if err := h.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
