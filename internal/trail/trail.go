// Package trail maintains the per-buffer history of recently visited lines.
//
// Each buffer owns at most one trail: a bounded list of line positions
// ordered newest first. Trails are created lazily on the first recorded
// position and dropped when the buffer goes away.
package trail

import (
	"sync"

	"github.com/dshills/cursortrail/internal/host"
)

// Position is one recorded line in a trail. Marker holds the id of the
// gutter marker currently rendered for it, or zero when none is placed.
type Position struct {
	Line   int
	Marker host.MarkerID
}

// Store holds the trails of every tracked buffer.
//
// The store never talks to the host. Mutations that orphan a marker (eviction,
// clearing) hand the affected positions back to the caller, which is
// responsible for unplacing them.
type Store struct {
	mu     sync.Mutex
	limit  int
	trails map[host.BufferID][]Position
}

// NewStore creates a store holding at most limit positions per buffer.
func NewStore(limit int) *Store {
	if limit < 1 {
		limit = 1
	}
	return &Store{
		limit:  limit,
		trails: make(map[host.BufferID][]Position),
	}
}

// Limit returns the per-buffer position cap.
func (s *Store) Limit() int {
	return s.limit
}

// Record inserts line at the front of the buffer's trail.
//
// Recording the line already at the front is a no-op. Recording a line found
// deeper in the trail moves it to the front. When a new line pushes the trail
// past its limit the oldest position is evicted and returned so its marker
// can be released.
func (s *Store) Record(b host.BufferID, line int) (evicted Position, wasEvicted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.trails[b]

	if len(t) > 0 && t[0].Line == line {
		return Position{}, false
	}

	// At most one existing entry can match, by invariant.
	for i, p := range t {
		if p.Line == line {
			t = append(t[:i], t[i+1:]...)
			t = append([]Position{p}, t...)
			s.trails[b] = t
			return Position{}, false
		}
	}

	t = append([]Position{{Line: line}}, t...)
	if len(t) > s.limit {
		evicted = t[len(t)-1]
		t = t[:len(t)-1]
		wasEvicted = true
	}
	s.trails[b] = t
	return evicted, wasEvicted
}

// Attach associates a placed marker with the position for line. It is a
// no-op when the line is no longer in the trail.
func (s *Store) Attach(b host.BufferID, line int, m host.MarkerID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.trails[b]
	for i := range t {
		if t[i].Line == line {
			t[i].Marker = m
			return
		}
	}
}

// TakeMarkers clears and returns every marker id attached to the buffer's
// trail, in trail order. The positions themselves stay recorded.
func (s *Store) TakeMarkers(b host.BufferID) []host.MarkerID {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.trails[b]
	var ids []host.MarkerID
	for i := range t {
		if t[i].Marker != 0 {
			ids = append(ids, t[i].Marker)
			t[i].Marker = 0
		}
	}
	return ids
}

// Clear removes the buffer's trail entirely and returns its positions so
// any attached markers can be released.
func (s *Store) Clear(b host.BufferID) []Position {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.trails[b]
	delete(s.trails, b)
	return t
}

// Buffers returns every buffer with a non-empty trail.
func (s *Store) Buffers() []host.BufferID {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]host.BufferID, 0, len(s.trails))
	for b := range s.trails {
		out = append(out, b)
	}
	return out
}

// Get returns a snapshot of the buffer's trail, newest first. The returned
// slice is a copy; mutating it does not affect the store.
func (s *Store) Get(b host.BufferID) []Position {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.trails[b]
	out := make([]Position, len(t))
	copy(out, t)
	return out
}

// Len returns the current trail length for a buffer.
func (s *Store) Len(b host.BufferID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.trails[b])
}
