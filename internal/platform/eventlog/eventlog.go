// Package eventlog reports game events through a structured logger.
package eventlog

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/roadrush/internal/game"
)

// Sink logs round lifecycle events at info level and keys at debug level.
type Sink struct {
	logger *log.Logger
}

// New creates a sink writing to logger.
func New(logger *log.Logger) *Sink {
	return &Sink{logger: logger}
}

// Handle implements game.EventSink.
func (s *Sink) Handle(e game.Event) {
	switch e := e.(type) {
	case game.RoundStarted:
		s.logger.Info("round started", "round", e.Round, "frame", e.Frame)
	case game.RoundOver:
		s.logger.Info("round over",
			"round", e.Round,
			"frame", e.Frame,
			"score", e.Score,
			"speed", e.Speed,
			"obstacle", e.Slot,
		)
	case game.SessionQuit:
		s.logger.Info("quit", "round", e.Round, "frame", e.Frame)
	case game.KeyPressed:
		s.logger.Debug("key", "frame", e.Frame, "key", e.Key, "command", e.Command)
	}
}
