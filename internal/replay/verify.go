package replay

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/roadrush/internal/config"
	"github.com/vovakirdan/roadrush/internal/core"
	"github.com/vovakirdan/roadrush/internal/game"
	"github.com/vovakirdan/roadrush/internal/storage"
)

// ErrDiverged is returned when a replay does not reproduce the recorded rounds.
var ErrDiverged = errors.New("replay: session diverged from recording")

// Reader is the read side of the session store.
type Reader interface {
	Session(id string) (*storage.Session, error)
	Keys(sessionID string) ([]storage.KeyEntry, error)
	Rounds(sessionID string) ([]storage.Round, error)
}

// Playback is everything needed to run a recorded session again.
type Playback struct {
	Session storage.Session
	Config  config.RoadConfig
	Keys    []storage.KeyEntry
	Rounds  []storage.Round
}

// Load reads a session and its journal.
func Load(r Reader, id string) (*Playback, error) {
	sess, err := r.Session(id)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Parse([]byte(sess.ConfigYAML))
	if err != nil {
		return nil, fmt.Errorf("replay: bad config snapshot in %s: %w", id, err)
	}

	keys, err := r.Keys(id)
	if err != nil {
		return nil, err
	}
	rounds, err := r.Rounds(id)
	if err != nil {
		return nil, err
	}

	return &Playback{Session: *sess, Config: cfg, Keys: keys, Rounds: rounds}, nil
}

// End returns the frame playback stops at. Unfinished sessions stop right
// after their last recorded key.
func (p *Playback) End() int64 {
	if p.Session.Finished() {
		return p.Session.Frames
	}
	if len(p.Keys) == 0 {
		return 0
	}
	return p.Keys[len(p.Keys)-1].Frame + 1
}

// NewGame creates the game the session was recorded against.
func (p *Playback) NewGame() (*game.Game, error) {
	return game.New(p.Config, p.Session.Seed)
}

// Source returns a fresh input source over the recorded keys.
func (p *Playback) Source() *Source {
	return NewSource(p.Keys, p.End())
}

// Report is the outcome of a verification run.
type Report struct {
	SessionID string
	Frames    int64
	Expected  []storage.Round
	Replayed  []storage.Round
}

// OK reports whether every recorded round was reproduced.
func (r Report) OK() bool {
	return r.firstMismatch() < 0
}

func (r Report) firstMismatch() int {
	n := len(r.Expected)
	if len(r.Replayed) < n {
		n = len(r.Replayed)
	}
	for i := 0; i < n; i++ {
		if r.Expected[i] != r.Replayed[i] {
			return i
		}
	}
	if len(r.Expected) != len(r.Replayed) {
		return n
	}
	return -1
}

// Verify replays a session headless and compares the rounds it produces
// with the recorded ones. The report is returned even when they diverge.
func Verify(r Reader, id string) (*Report, error) {
	p, err := Load(r, id)
	if err != nil {
		return nil, err
	}
	g, err := p.NewGame()
	if err != nil {
		return nil, err
	}

	report := &Report{SessionID: id, Expected: p.Rounds}
	var rounds roundTracker
	sink := game.SinkFunc(func(e game.Event) {
		if round, ok := rounds.observe(e); ok {
			report.Replayed = append(report.Replayed, round)
		}
	})

	c := game.NewController(g, p.Source(), nopRenderer{},
		game.WithPacer(game.PacerFunc(func(time.Duration) {})),
		game.WithEventSink(sink),
	)
	for c.Frame() {
	}
	report.Frames = c.FrameCount()

	if i := report.firstMismatch(); i >= 0 {
		return report, fmt.Errorf("%w: round %d", ErrDiverged, i+1)
	}
	return report, nil
}

type nopRenderer struct{}

func (nopRenderer) Clear()                                      {}
func (nopRenderer) FillRect(core.Color, core.Point, core.Point) {}
func (nopRenderer) Line(core.Color, core.Point, core.Point)     {}
func (nopRenderer) Text(core.Color, core.Point, string)         {}
