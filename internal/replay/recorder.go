// Package replay records play sessions into the storage journal and plays
// them back. A session is reproducible from its seed, its configuration
// snapshot and the key read on each frame.
package replay

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/roadrush/internal/config"
	"github.com/vovakirdan/roadrush/internal/game"
	"github.com/vovakirdan/roadrush/internal/storage"
)

// Journal is the write side of the session store.
type Journal interface {
	CreateSession(info storage.SessionInfo) (string, error)
	AppendKey(sessionID string, frame int64, key rune) error
	RecordRound(sessionID string, r storage.Round) error
	FinishSession(sessionID string, frames int64) error
}

// Recorder is a game.EventSink that journals keys and finished rounds.
// Recording stops at the first failed write; the game keeps running.
type Recorder struct {
	journal Journal
	id      string
	logger  *log.Logger
	rounds  roundTracker
	err     error
}

// Start opens a new session for a game about to be played and returns its recorder.
func Start(j Journal, cfg config.RoadConfig, seed int64, frontend, player string, logger *log.Logger) (*Recorder, error) {
	snapshot, err := config.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("replay: cannot snapshot config: %w", err)
	}

	id, err := j.CreateSession(storage.SessionInfo{
		Seed:       seed,
		ConfigYAML: string(snapshot),
		Frontend:   frontend,
		Player:     player,
	})
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Recorder{journal: j, id: id, logger: logger}, nil
}

// SessionID returns the ID of the session being recorded.
func (r *Recorder) SessionID() string {
	return r.id
}

// Handle implements game.EventSink.
func (r *Recorder) Handle(e game.Event) {
	if r.err != nil {
		return
	}

	if k, ok := e.(game.KeyPressed); ok {
		r.fail(r.journal.AppendKey(r.id, k.Frame, rune(k.Key)))
		return
	}
	if round, ok := r.rounds.observe(e); ok {
		r.fail(r.journal.RecordRound(r.id, round))
	}
}

func (r *Recorder) fail(err error) {
	if err == nil {
		return
	}
	r.err = err
	r.logger.Warn("recording stopped", "session", r.id, "error", err)
}

// Err returns the write error that stopped recording, if any.
func (r *Recorder) Err() error {
	return r.err
}

// Close finishes the session after the given number of frames.
func (r *Recorder) Close(frames int64) error {
	if err := r.journal.FinishSession(r.id, frames); err != nil {
		return err
	}
	return r.err
}

// roundTracker turns controller events into finished round records.
type roundTracker struct {
	start int64
}

func (t *roundTracker) observe(e game.Event) (storage.Round, bool) {
	switch e := e.(type) {
	case game.RoundStarted:
		t.start = e.Frame
	case game.RoundOver:
		return storage.Round{
			Number:     e.Round,
			StartFrame: t.start,
			EndFrame:   e.Frame,
			Score:      e.Score,
			Speed:      e.Speed,
		}, true
	}
	return storage.Round{}, false
}
