package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchBuiltin(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultRoadConfig()) {
		t.Errorf("embedded defaults differ from DefaultRoadConfig():\n got %+v\nwant %+v", cfg, DefaultRoadConfig())
	}
}

func TestDefaultDerivedValues(t *testing.T) {
	cfg := DefaultRoadConfig()

	left, right := cfg.RoadBounds()
	if left != 213 || right != 426 {
		t.Errorf("RoadBounds() = (%d, %d), expected (213, 426)", left, right)
	}
	if cfg.Lanes.Period() != 40 {
		t.Errorf("Period() = %d, expected 40", cfg.Lanes.Period())
	}
	if cfg.Timing.FrameDelay() != 50*time.Millisecond {
		t.Errorf("FrameDelay() = %v, expected 50ms", cfg.Timing.FrameDelay())
	}
}

func TestParsePartialOverride(t *testing.T) {
	cfg, err := Parse([]byte("speed:\n  initial: 20\n  auto_ramp: false\n"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if cfg.Speed.Initial != 20 || cfg.Speed.AutoRamp {
		t.Errorf("override not applied: %+v", cfg.Speed)
	}
	if cfg.Speed.Max != 35 || cfg.Obstacles.Width != 50 {
		t.Error("keys not present in the file should keep their defaults")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RoadConfig)
	}{
		{"road narrower than obstacle", func(c *RoadConfig) { c.World.Width = 120 }},
		{"road exactly obstacle width", func(c *RoadConfig) { c.World.Width = 150; c.Obstacles.Width = 50 }},
		{"zero height", func(c *RoadConfig) { c.World.Height = 0 }},
		{"min above max", func(c *RoadConfig) { c.Speed.Min = 40 }},
		{"initial below min", func(c *RoadConfig) { c.Speed.Initial = 1 }},
		{"initial above max", func(c *RoadConfig) { c.Speed.Initial = 99 }},
		{"zero ramp interval", func(c *RoadConfig) { c.Speed.RampInterval = 0 }},
		{"zero frame delay", func(c *RoadConfig) { c.Timing.FrameDelayMS = 0 }},
		{"negative gap", func(c *RoadConfig) { c.Lanes.GapHeight = -1 }},
		{"car too tall", func(c *RoadConfig) { c.Car.Height = 470 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultRoadConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, expected ErrInvalid", err)
			}
		})
	}

	if err := DefaultRoadConfig().Validate(); err != nil {
		t.Errorf("default config should be valid, got %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "road.yaml")
	if err := os.WriteFile(path, []byte("car:\n  side_step: 10\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Car.SideStep != 10 {
		t.Errorf("SideStep = %d, expected 10", cfg.Car.SideStep)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() with a missing custom path should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("world:\n  width: 90\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); !errors.Is(err, ErrInvalid) {
		t.Errorf("Load() of a degenerate road = %v, expected ErrInvalid", err)
	}
}

func TestMarshalSnapshot(t *testing.T) {
	cfg := DefaultRoadConfig()
	cfg.Speed.Initial = 25

	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	back, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() of marshalled config failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, back) {
		t.Errorf("snapshot changed the config:\n got %+v\nwant %+v", back, cfg)
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset   DifficultyPreset
		initial  int
		autoRamp bool
	}{
		{DifficultyEasy, 10, true},
		{DifficultyNormal, 15, true},
		{DifficultyHard, 25, true},
		{DifficultyFixed, 15, false},
		{"", 15, true},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultRoadConfig()
			ApplyPreset(&cfg, tc.preset)
			if cfg.Speed.Initial != tc.initial || cfg.Speed.AutoRamp != tc.autoRamp {
				t.Errorf("speed = %+v, expected initial %d auto_ramp %v", cfg.Speed, tc.initial, tc.autoRamp)
			}
		})
	}
}

func TestApplyPresetClampsToBounds(t *testing.T) {
	cfg := DefaultRoadConfig()
	cfg.Speed.Max = 20
	ApplyPreset(&cfg, DifficultyHard)
	if cfg.Speed.Initial != 20 {
		t.Errorf("hard preset should clamp to max, got %d", cfg.Speed.Initial)
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("hard") != DifficultyHard {
		t.Error("ParsePreset(hard) should return DifficultyHard")
	}
	if ParsePreset("insane") != "" {
		t.Error("unknown presets should map to the config default")
	}
}
