package game

// Key is a raw key code as read from the input source.
type Key rune

// KeyEscape is the escape key code.
const KeyEscape Key = 27

// Command is a game command derived from a key press.
type Command int

const (
	CommandNone Command = iota
	CommandQuit
	CommandSteerLeft
	CommandSteerRight
	CommandSpeedUp
	CommandSpeedDown
	CommandRestart
)

// String returns a human-readable name for the command.
func (c Command) String() string {
	switch c {
	case CommandNone:
		return "None"
	case CommandQuit:
		return "Quit"
	case CommandSteerLeft:
		return "SteerLeft"
	case CommandSteerRight:
		return "SteerRight"
	case CommandSpeedUp:
		return "SpeedUp"
	case CommandSpeedDown:
		return "SpeedDown"
	case CommandRestart:
		return "Restart"
	default:
		return "Unknown"
	}
}

// MapKey translates a key into the command it means for the current outcome.
// Escape always quits; a/d/w/s only act while running and r only once the
// round is over. Everything else maps to CommandNone.
func MapKey(k Key, outcome Outcome) Command {
	if k == KeyEscape {
		return CommandQuit
	}

	switch outcome {
	case Running:
		switch k {
		case 'a', 'A':
			return CommandSteerLeft
		case 'd', 'D':
			return CommandSteerRight
		case 'w', 'W':
			return CommandSpeedUp
		case 's', 'S':
			return CommandSpeedDown
		}
	case Over:
		if k == 'r' || k == 'R' {
			return CommandRestart
		}
	}

	return CommandNone
}
