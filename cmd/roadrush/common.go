package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/roadrush/internal/config"
)

// loadRoadConfig resolves --config and applies --difficulty.
func loadRoadConfig(path, difficulty string) (config.RoadConfig, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.RoadConfig{}, err
	}

	if difficulty != "" {
		preset := config.ParsePreset(difficulty)
		if preset == "" {
			return config.RoadConfig{}, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", difficulty)
		}
		config.ApplyPreset(&cfg, preset)
	}

	if err := cfg.Validate(); err != nil {
		return config.RoadConfig{}, err
	}
	return cfg, nil
}

// resolveSeed turns the "random" seed 0 into a time-based one.
func resolveSeed(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}

// terminalSize returns the size of stdout, or 80x24 if it is not a terminal.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

// newLogger builds the CLI logger. While a game owns the terminal, logs can
// only go to a file, so the default is to discard them.
// The returned function closes the log file.
func newLogger(path, level, prefix string) (*log.Logger, func(), error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var w io.Writer = io.Discard
	closeFn := func() {}
	switch path {
	case "":
	case "-":
		w = os.Stderr
	default:
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           lvl,
	})
	return logger, closeFn, nil
}

// shortID trims a session ID for display.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
