package game

import (
	"context"
	"time"

	"github.com/vovakirdan/roadrush/internal/core"
)

// InputSource is a non-blocking keyboard.
// The controller calls HasPendingKey exactly once per frame and ReadKey at
// most once, only after HasPendingKey returned true.
type InputSource interface {
	HasPendingKey() bool
	ReadKey() Key
}

// Renderer accepts the draw primitives the render phase emits, in world coordinates.
type Renderer interface {
	Clear()
	FillRect(c core.Color, a, b core.Point)
	Line(c core.Color, a, b core.Point)
	Text(c core.Color, at core.Point, s string)
}

// Pacer waits between frames.
type Pacer interface {
	Sleep(d time.Duration)
}

// PacerFunc adapts a function to Pacer.
type PacerFunc func(d time.Duration)

// Sleep calls f(d).
func (f PacerFunc) Sleep(d time.Duration) {
	f(d)
}

// WallClock paces frames with time.Sleep.
var WallClock Pacer = PacerFunc(time.Sleep)

// Controller runs the frame loop: poll input, update or restart, draw, pace.
type Controller struct {
	game     *Game
	input    InputSource
	renderer Renderer
	pacer    Pacer
	sink     EventSink
	delay    time.Duration
	frame    int64
	started  bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithPacer replaces the wall-clock pacer.
func WithPacer(p Pacer) Option {
	return func(c *Controller) {
		c.pacer = p
	}
}

// WithEventSink sets where round and key events are reported.
func WithEventSink(s EventSink) Option {
	return func(c *Controller) {
		if s != nil {
			c.sink = s
		}
	}
}

// NewController wires a game to its collaborators.
func NewController(g *Game, in InputSource, r Renderer, opts ...Option) *Controller {
	c := &Controller{
		game:     g,
		input:    in,
		renderer: r,
		pacer:    WallClock,
		sink:     discardSink{},
		delay:    g.Config().Timing.FrameDelay(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Game returns the controlled game.
func (c *Controller) Game() *Game {
	return c.game
}

// FrameCount returns how many frames have completed.
func (c *Controller) FrameCount() int64 {
	return c.frame
}

// Frame runs a single frame without pacing. It returns false once the player
// has quit; later calls do nothing.
func (c *Controller) Frame() bool {
	if c.game.Outcome() == Terminal {
		return false
	}
	if !c.started {
		c.started = true
		c.sink.Handle(RoundStarted{Round: c.game.Round(), Frame: c.frame})
	}

	cmd := CommandNone
	if c.input.HasPendingKey() {
		k := c.input.ReadKey()
		cmd = MapKey(k, c.game.Outcome())
		c.sink.Handle(KeyPressed{Frame: c.frame, Key: k, Command: cmd})
	}

	before := c.game.Outcome()
	c.game.Step(cmd)
	after := c.game.Outcome()

	switch {
	case after == Terminal:
		c.sink.Handle(SessionQuit{Frame: c.frame, Round: c.game.Round()})
	case before == Running && after == Over:
		s := c.game.State()
		c.sink.Handle(RoundOver{
			Round: c.game.Round(),
			Frame: c.frame,
			Score: s.Score,
			Speed: s.Speed,
			Slot:  c.game.HitSlot(),
		})
	case before == Over && after == Running:
		c.sink.Handle(RoundStarted{Round: c.game.Round(), Frame: c.frame})
	}

	if after != Terminal {
		Draw(c.game, c.renderer)
	}
	c.frame++
	return after != Terminal
}

// Run loops Frame and the fixed frame delay until the player quits or ctx is
// cancelled. Cancellation is only observed between frames.
func (c *Controller) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !c.Frame() {
			return nil
		}
		c.pacer.Sleep(c.delay)
	}
}
