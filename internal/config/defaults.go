package config

import (
	_ "embed"
)

//go:embed defaults/road.yaml
var defaultRoadYAML []byte

// DefaultRoadConfig returns the built-in configuration.
// It matches defaults/road.yaml and is used if the embedded file fails to parse.
func DefaultRoadConfig() RoadConfig {
	return RoadConfig{
		World: WorldConfig{
			Width:  640,
			Height: 480,
		},
		Car: CarConfig{
			Width:        40,
			Height:       60,
			BottomMargin: 30,
			SideStep:     25,
		},
		Obstacles: ObstacleConfig{
			Width:        50,
			Height:       30,
			SpawnY:       -50,
			SpawnBase:    10,
			SpawnRange:   500,
			GuardHeights: 3,
		},
		Speed: SpeedConfig{
			Initial:      15,
			Min:          5,
			Max:          35,
			Step:         5,
			AutoRamp:     true,
			RampInterval: 2000,
		},
		Lanes: LaneConfig{
			DashHeight: 20,
			GapHeight:  20,
		},
		Timing: TimingConfig{
			FrameDelayMS: 50,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultRoadYAML
}
