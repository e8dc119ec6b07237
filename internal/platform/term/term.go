// Package term runs the game directly on a tcell screen with the classic
// loop: poll one key, update, draw, sleep. It is the alternative to the
// Bubble Tea frontend and paces frames itself.
package term

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/roadrush/internal/core"
	"github.com/vovakirdan/roadrush/internal/game"
)

// maxQueuedKeys bounds how many unread keys the keyboard buffers.
const maxQueuedKeys = 32

// Terminal owns a tcell screen and the goroutine reading its events.
type Terminal struct {
	screen  tcell.Screen
	buf     *core.Screen
	keys    chan game.Key
	resize  chan struct{}
	stop    chan struct{} // Closed when the user aborts a playback
	pending game.Key
	playing atomic.Bool
}

// Open initializes the user's terminal.
func Open() (*Terminal, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	return New(s), nil
}

// New wraps an initialized screen and starts polling it for events.
func New(s tcell.Screen) *Terminal {
	s.Clear()
	s.HideCursor()

	w, h := s.Size()
	t := &Terminal{
		screen: s,
		buf:    core.NewScreen(w, h),
		keys:   make(chan game.Key, maxQueuedKeys),
		resize: make(chan struct{}, 1),
		stop:   make(chan struct{}),
	}
	go t.poll()
	return t
}

// Close restores the terminal. The polling goroutine ends with it.
func (t *Terminal) Close() {
	t.screen.Fini()
}

// poll forwards tcell events until the screen is finalized.
func (t *Terminal) poll() {
	stopped := false
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}

		switch e := ev.(type) {
		case *tcell.EventResize:
			select {
			case t.resize <- struct{}{}:
			default:
			}
		case *tcell.EventKey:
			k, ok := keyFromEvent(e)
			if !ok {
				continue
			}
			if t.playing.Load() {
				if !stopped && (k == game.KeyEscape || k == 'q') {
					stopped = true
					close(t.stop)
				}
				continue
			}
			select {
			case t.keys <- k:
			default: // Drop keys past the buffer
			}
		}
	}
}

// keyFromEvent translates a tcell key event to a raw game key code.
// Arrow keys alias the letter bindings.
func keyFromEvent(e *tcell.EventKey) (game.Key, bool) {
	switch e.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return game.KeyEscape, true
	case tcell.KeyLeft:
		return 'a', true
	case tcell.KeyRight:
		return 'd', true
	case tcell.KeyUp:
		return 'w', true
	case tcell.KeyDown:
		return 's', true
	case tcell.KeyRune:
		return game.Key(e.Rune()), true
	}
	return 0, false
}

// HasPendingKey implements game.InputSource without blocking.
func (t *Terminal) HasPendingKey() bool {
	select {
	case k := <-t.keys:
		t.pending = k
		return true
	default:
		return false
	}
}

// ReadKey implements game.InputSource.
func (t *Terminal) ReadKey() game.Key {
	return t.pending
}

// Option configures a single Play call.
type Option func(*playOptions)

type playOptions struct {
	source game.InputSource
	sink   game.EventSink
}

// WithPlayback reads keys from a recording; the keyboard only stops playback.
func WithPlayback(src game.InputSource) Option {
	return func(o *playOptions) {
		o.source = src
	}
}

// WithEventSink sets where game events are reported.
func WithEventSink(s game.EventSink) Option {
	return func(o *playOptions) {
		o.sink = s
	}
}

// Play runs g until the player quits or ctx is cancelled and returns the
// controller so callers can read the final frame count.
func (t *Terminal) Play(ctx context.Context, g *game.Game, opts ...Option) (*game.Controller, error) {
	var o playOptions
	for _, opt := range opts {
		opt(&o)
	}

	var input game.InputSource = t
	if o.source != nil {
		input = o.source
		t.playing.Store(true)
		defer t.playing.Store(false)

		var cancel context.CancelFunc
		ctx, cancel = context.WithCancel(ctx)
		defer cancel()
		go func() {
			select {
			case <-t.stop:
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	world := g.Config().World
	canvas := core.NewCanvas(t.buf, world.Width, world.Height)

	ctrl := game.NewController(g, input, canvas,
		game.WithPacer(game.PacerFunc(t.presentAndWait)),
		game.WithEventSink(o.sink),
	)

	err := ctrl.Run(ctx)
	if o.source != nil && ctx.Err() != nil && err != nil {
		// Stopping a replay early is not a failure
		err = nil
	}
	return ctrl, err
}

// presentAndWait shows the frame just drawn, then sleeps for the frame delay.
func (t *Terminal) presentAndWait(d time.Duration) {
	select {
	case <-t.resize:
		w, h := t.screen.Size()
		t.buf.Resize(w, h)
		t.screen.Sync()
	default:
	}

	t.present()
	time.Sleep(d)
}

// present copies the cell buffer to the tcell screen.
func (t *Terminal) present() {
	w, h := t.buf.Width(), t.buf.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := t.buf.GetCell(x, y)
			t.screen.SetContent(x, y, c.Rune, nil, styleFor(c.Color))
		}
	}
	t.screen.Show()
}

// styles maps core.Color onto tcell styles.
var styles = map[core.Color]tcell.Style{
	core.ColorRed:      tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
	core.ColorGreen:    tcell.StyleDefault.Foreground(tcell.ColorGreen),
	core.ColorYellow:   tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
	core.ColorBlue:     tcell.StyleDefault.Foreground(tcell.ColorBlue),
	core.ColorMagenta:  tcell.StyleDefault.Foreground(tcell.ColorPurple),
	core.ColorCyan:     tcell.StyleDefault.Foreground(tcell.ColorTeal),
	core.ColorWhite:    tcell.StyleDefault.Foreground(tcell.ColorWhite),
	core.ColorOrange:   tcell.StyleDefault.Foreground(tcell.ColorOrange),
	core.ColorGray:     tcell.StyleDefault.Foreground(tcell.ColorGray),
	core.ColorDarkGray: tcell.StyleDefault.Foreground(tcell.ColorDimGray),
	core.ColorBlack:    tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGray),
}

func styleFor(c core.Color) tcell.Style {
	if st, ok := styles[c]; ok {
		return st
	}
	return tcell.StyleDefault
}
