// Package config provides YAML-based game configuration loading and
// difficulty presets for the road game.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is returned when a configuration cannot produce a playable road.
var ErrInvalid = errors.New("config: invalid configuration")

// RoadConfig contains all configuration for the road game.
type RoadConfig struct {
	World     WorldConfig    `yaml:"world"`
	Car       CarConfig      `yaml:"car"`
	Obstacles ObstacleConfig `yaml:"obstacles"`
	Speed     SpeedConfig    `yaml:"speed"`
	Lanes     LaneConfig     `yaml:"lanes"`
	Timing    TimingConfig   `yaml:"timing"`
}

// WorldConfig defines the virtual screen the simulation runs in.
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// CarConfig defines the player car.
type CarConfig struct {
	Width        int `yaml:"width"`
	Height       int `yaml:"height"`
	BottomMargin int `yaml:"bottom_margin"`
	SideStep     int `yaml:"side_step"`
}

// ObstacleConfig defines obstacle size and spawning.
type ObstacleConfig struct {
	Width        int `yaml:"width"`
	Height       int `yaml:"height"`
	SpawnY       int `yaml:"spawn_y"`
	SpawnBase    int `yaml:"spawn_base"`
	SpawnRange   int `yaml:"spawn_range"`
	GuardHeights int `yaml:"guard_heights"`
}

// SpeedConfig defines speed bounds and the automatic ramp.
type SpeedConfig struct {
	Initial      int  `yaml:"initial"`
	Min          int  `yaml:"min"`
	Max          int  `yaml:"max"`
	Step         int  `yaml:"step"`
	AutoRamp     bool `yaml:"auto_ramp"`
	RampInterval int  `yaml:"ramp_interval"` // Score delta between automatic +1 steps
}

// LaneConfig defines the dashed lane divider pattern.
type LaneConfig struct {
	DashHeight int `yaml:"dash_height"`
	GapHeight  int `yaml:"gap_height"`
}

// Period returns the length of one dash plus one gap.
func (l LaneConfig) Period() int {
	return l.DashHeight + l.GapHeight
}

// TimingConfig defines frame pacing.
type TimingConfig struct {
	FrameDelayMS int `yaml:"frame_delay_ms"`
}

// FrameDelay returns the fixed pause between frames.
func (t TimingConfig) FrameDelay() time.Duration {
	return time.Duration(t.FrameDelayMS) * time.Millisecond
}

// RoadBounds returns the horizontal extent of the road: the middle third of the world.
func (c RoadConfig) RoadBounds() (left, right int) {
	return c.World.Width / 3, 2 * c.World.Width / 3
}

// Validate reports the first setting that would make the game ill-defined.
func (c RoadConfig) Validate() error {
	positive := []struct {
		name  string
		value int
	}{
		{"world.width", c.World.Width},
		{"world.height", c.World.Height},
		{"car.width", c.Car.Width},
		{"car.height", c.Car.Height},
		{"car.side_step", c.Car.SideStep},
		{"obstacles.width", c.Obstacles.Width},
		{"obstacles.height", c.Obstacles.Height},
		{"obstacles.spawn_range", c.Obstacles.SpawnRange},
		{"speed.min", c.Speed.Min},
		{"speed.step", c.Speed.Step},
		{"speed.ramp_interval", c.Speed.RampInterval},
		{"lanes.dash_height", c.Lanes.DashHeight},
		{"timing.frame_delay_ms", c.Timing.FrameDelayMS},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalid, p.name, p.value)
		}
	}

	if c.Lanes.GapHeight < 0 {
		return fmt.Errorf("%w: lanes.gap_height must not be negative", ErrInvalid)
	}
	if c.Obstacles.SpawnBase < 0 || c.Obstacles.GuardHeights < 0 {
		return fmt.Errorf("%w: obstacles.spawn_base and guard_heights must not be negative", ErrInvalid)
	}
	if c.Speed.Min > c.Speed.Max {
		return fmt.Errorf("%w: speed.min %d exceeds speed.max %d", ErrInvalid, c.Speed.Min, c.Speed.Max)
	}
	if c.Speed.Initial < c.Speed.Min || c.Speed.Initial > c.Speed.Max {
		return fmt.Errorf("%w: speed.initial %d outside [%d, %d]", ErrInvalid, c.Speed.Initial, c.Speed.Min, c.Speed.Max)
	}

	left, right := c.RoadBounds()
	if right-left <= c.Obstacles.Width {
		return fmt.Errorf("%w: road is %d wide, obstacles need more than %d", ErrInvalid, right-left, c.Obstacles.Width)
	}
	if right-left < c.Car.Width {
		return fmt.Errorf("%w: road is %d wide, car needs %d", ErrInvalid, right-left, c.Car.Width)
	}
	if c.Car.Height+c.Car.BottomMargin > c.World.Height {
		return fmt.Errorf("%w: car does not fit vertically", ErrInvalid)
	}

	return nil
}
