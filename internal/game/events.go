package game

// Event is something the frame controller reports to an EventSink.
type Event interface {
	event()
}

// RoundStarted is emitted when a round begins, including the first one.
type RoundStarted struct {
	Round int
	Frame int64
}

func (RoundStarted) event() {}

// KeyPressed is emitted for every key read from the input source.
type KeyPressed struct {
	Frame   int64
	Key     Key
	Command Command
}

func (KeyPressed) event() {}

// RoundOver is emitted when a collision ends a round.
type RoundOver struct {
	Round int
	Frame int64
	Score int64
	Speed int
	Slot  int // Obstacle slot that was hit
}

func (RoundOver) event() {}

// SessionQuit is emitted when the player quits.
type SessionQuit struct {
	Frame int64
	Round int
}

func (SessionQuit) event() {}

// EventSink receives controller events. Handle is called on the frame loop
// and must not block.
type EventSink interface {
	Handle(e Event)
}

// SinkFunc adapts a function to EventSink.
type SinkFunc func(e Event)

// Handle calls f(e).
func (f SinkFunc) Handle(e Event) {
	f(e)
}

// MultiSink forwards every event to each sink in order.
type MultiSink []EventSink

// Handle forwards e to all sinks.
func (m MultiSink) Handle(e Event) {
	for _, s := range m {
		if s != nil {
			s.Handle(e)
		}
	}
}

type discardSink struct{}

func (discardSink) Handle(Event) {}
