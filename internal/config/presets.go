package config

// DifficultyPreset represents a named difficulty level.
// Presets only move the starting speed and toggle the linear ramp.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value into a preset.
// Unknown and empty values return "" so the config's own settings apply.
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialSpeedForPreset returns the starting speed for a preset.
func InitialSpeedForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 10
	case DifficultyHard:
		return 25
	default:
		return 15
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *RoadConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Speed.AutoRamp = false
	default:
		cfg.Speed.AutoRamp = true
		initial := InitialSpeedForPreset(preset)
		if initial < cfg.Speed.Min {
			initial = cfg.Speed.Min
		}
		if initial > cfg.Speed.Max {
			initial = cfg.Speed.Max
		}
		cfg.Speed.Initial = initial
	}
}
