package game

import (
	"testing"
	"time"

	"github.com/vovakirdan/roadrush/internal/config"
	"github.com/vovakirdan/roadrush/internal/core"
)

// newTestGame builds a game from the default config.
func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g, err := New(config.DefaultRoadConfig(), seed)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return g
}

// clearObstacles retires every slot so a test can run frames without collisions.
func clearObstacles(g *Game) {
	g.pool.slots = [Capacity]Obstacle{}
}

// queueInput hands out keys one per read.
type queueInput struct {
	keys  []Key
	polls int
}

func (q *queueInput) HasPendingKey() bool {
	q.polls++
	return len(q.keys) > 0
}

func (q *queueInput) ReadKey() Key {
	k := q.keys[0]
	q.keys = q.keys[1:]
	return k
}

// frameInput delivers keys at fixed frame numbers.
type frameInput struct {
	keys  map[int64]Key
	frame int64
	ready bool
}

func (f *frameInput) HasPendingKey() bool {
	_, f.ready = f.keys[f.frame]
	f.frame++
	return f.ready
}

func (f *frameInput) ReadKey() Key {
	return f.keys[f.frame-1]
}

type drawCall struct {
	op    string
	color core.Color
	a, b  core.Point
	text  string
}

// recordingRenderer remembers every draw call.
type recordingRenderer struct {
	calls []drawCall
}

func (r *recordingRenderer) Clear() {
	r.calls = append(r.calls, drawCall{op: "clear"})
}

func (r *recordingRenderer) FillRect(c core.Color, a, b core.Point) {
	r.calls = append(r.calls, drawCall{op: "rect", color: c, a: a, b: b})
}

func (r *recordingRenderer) Line(c core.Color, a, b core.Point) {
	r.calls = append(r.calls, drawCall{op: "line", color: c, a: a, b: b})
}

func (r *recordingRenderer) Text(c core.Color, at core.Point, s string) {
	r.calls = append(r.calls, drawCall{op: "text", color: c, a: at, text: s})
}

func (r *recordingRenderer) reset() {
	r.calls = r.calls[:0]
}

// countingPacer records requested delays instead of sleeping.
type countingPacer struct {
	delays []time.Duration
}

func (p *countingPacer) Sleep(d time.Duration) {
	p.delays = append(p.delays, d)
}
