package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/roadrush/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "road.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadRoadConfig(t *testing.T) {
	path := writeConfig(t, "speed:\n  initial: 20\n")

	tests := []struct {
		name         string
		difficulty   string
		wantInitial  int
		wantAutoRamp bool
	}{
		{"file values", "", 20, true},
		{"fixed keeps speed", "fixed", 20, false},
		{"easy", "easy", 10, true},
		{"hard", "hard", 25, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loadRoadConfig(path, tt.difficulty)
			if err != nil {
				t.Fatalf("loadRoadConfig failed: %v", err)
			}
			if cfg.Speed.Initial != tt.wantInitial {
				t.Errorf("Speed.Initial = %d, want %d", cfg.Speed.Initial, tt.wantInitial)
			}
			if cfg.Speed.AutoRamp != tt.wantAutoRamp {
				t.Errorf("Speed.AutoRamp = %v, want %v", cfg.Speed.AutoRamp, tt.wantAutoRamp)
			}
			if cfg.World.Width != 640 {
				t.Errorf("World.Width = %d, want default 640", cfg.World.Width)
			}
		})
	}
}

func TestLoadRoadConfigErrors(t *testing.T) {
	t.Run("unknown difficulty", func(t *testing.T) {
		_, err := loadRoadConfig(writeConfig(t, ""), "insane")
		if err == nil || !strings.Contains(err.Error(), "insane") {
			t.Errorf("err = %v, want unknown difficulty error", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadRoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), "")
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("err = %v, want os.ErrNotExist", err)
		}
	})

	t.Run("invalid speed bounds", func(t *testing.T) {
		_, err := loadRoadConfig(writeConfig(t, "speed:\n  min: 40\n"), "")
		if !errors.Is(err, config.ErrInvalid) {
			t.Errorf("err = %v, want config.ErrInvalid", err)
		}
	})
}

func TestResolveSeed(t *testing.T) {
	if got := resolveSeed(42); got != 42 {
		t.Errorf("resolveSeed(42) = %d, want 42", got)
	}
	if got := resolveSeed(0); got == 0 {
		t.Error("resolveSeed(0) should pick a time-based seed")
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "road.log")
		logger, closeFn, err := newLogger(path, "info", "test")
		if err != nil {
			t.Fatalf("newLogger failed: %v", err)
		}
		logger.Info("hello", "frame", 7)
		logger.Debug("hidden")
		closeFn()

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read log: %v", err)
		}
		out := string(data)
		if !strings.Contains(out, "hello") || !strings.Contains(out, "frame=7") {
			t.Errorf("log missing entry: %q", out)
		}
		if strings.Contains(out, "hidden") {
			t.Errorf("debug entry written at info level: %q", out)
		}
	})

	t.Run("discard", func(t *testing.T) {
		logger, closeFn, err := newLogger("", "debug", "test")
		if err != nil {
			t.Fatalf("newLogger failed: %v", err)
		}
		defer closeFn()
		logger.Info("nowhere")
	})

	t.Run("bad level", func(t *testing.T) {
		if _, _, err := newLogger("", "loud", "test"); err == nil {
			t.Error("expected error for unknown level")
		}
	})
}

func TestShortID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"abc", "abc"},
		{"0123456789abcdef", "01234567"},
	}
	for _, tt := range tests {
		if got := shortID(tt.in); got != tt.want {
			t.Errorf("shortID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
