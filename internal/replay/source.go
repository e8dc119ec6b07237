package replay

import (
	"github.com/vovakirdan/roadrush/internal/game"
	"github.com/vovakirdan/roadrush/internal/storage"
)

// Source is a game.InputSource that hands out recorded keys on the frames
// they were read. It relies on the controller polling exactly once per frame.
// From frame end onwards it reports Esc so playback always terminates.
type Source struct {
	keys  []storage.KeyEntry
	next  int
	frame int64
	end   int64
	key   game.Key
}

// NewSource creates a source for keys sorted by frame.
func NewSource(keys []storage.KeyEntry, end int64) *Source {
	return &Source{keys: keys, end: end}
}

// HasPendingKey implements game.InputSource.
func (s *Source) HasPendingKey() bool {
	f := s.frame
	s.frame++

	for s.next < len(s.keys) && s.keys[s.next].Frame < f {
		s.next++
	}
	if s.next < len(s.keys) && s.keys[s.next].Frame == f {
		s.key = game.Key(s.keys[s.next].Key)
		s.next++
		return true
	}
	if f >= s.end {
		s.key = game.KeyEscape
		return true
	}
	return false
}

// ReadKey implements game.InputSource.
func (s *Source) ReadKey() game.Key {
	return s.key
}

// Frame returns how many frames have been polled.
func (s *Source) Frame() int64 {
	return s.frame
}

// Done reports whether every recorded key has been handed out.
func (s *Source) Done() bool {
	return s.next >= len(s.keys) && s.frame > s.end
}
