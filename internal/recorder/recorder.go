// Package recorder turns raw cursor movement into trail entries.
//
// Movement events arrive in bursts; the recorder debounces them per buffer
// and commits only after the cursor has been quiet for the configured
// window. At commit time the cursor line is re-read from the host, so the
// trail records where the cursor settled, not where the burst began.
package recorder

import (
	"time"

	"github.com/dshills/cursortrail/internal/host"
	"github.com/dshills/cursortrail/internal/log"
	"github.com/dshills/cursortrail/internal/marker"
	"github.com/dshills/cursortrail/internal/trail"
)

// Exclusions decides which buffers are never tracked.
type Exclusions interface {
	Excluded(buftype, filetype string) bool
}

// Recorder is the debounced position-recording pipeline for all buffers.
// Each buffer moves Idle -> Pending when a movement arrives and back to
// Idle when its timer fires or is cancelled.
type Recorder struct {
	host     host.Host
	store    *trail.Store
	renderer *marker.Renderer
	exclude  Exclusions
	logger   *log.Logger
	debounce *Debouncer[host.BufferID]
}

// New creates a recorder committing into store and redrawing via renderer.
func New(h host.Host, store *trail.Store, renderer *marker.Renderer, exclude Exclusions, wait time.Duration, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.Discard()
	}
	r := &Recorder{
		host:     h,
		store:    store,
		renderer: renderer,
		exclude:  exclude,
		logger:   logger.WithComponent("recorder"),
	}
	r.debounce = NewDebouncer(wait, h, r.commit)
	return r
}

// OnMove handles a raw cursor movement event. Excluded buffers are ignored
// entirely; otherwise the buffer's debounce timer is (re)armed.
func (r *Recorder) OnMove(ev host.Event) {
	b := ev.Buffer
	if !r.host.IsValid(b) {
		return
	}
	if r.exclude != nil && r.exclude.Excluded(r.host.Buftype(b), r.host.Filetype(b)) {
		return
	}
	r.debounce.Call(b)
}

// Cancel drops any pending commit for the buffer.
func (r *Recorder) Cancel(b host.BufferID) {
	r.debounce.Cancel(b)
}

// CancelAll drops every pending commit.
func (r *Recorder) CancelAll() {
	r.debounce.CancelAll()
}

// Pending reports whether the buffer has an uncommitted movement.
func (r *Recorder) Pending(b host.BufferID) bool {
	return r.debounce.Pending(b)
}

// commit runs when a buffer's quiet period elapses.
func (r *Recorder) commit(b host.BufferID) {
	if !r.host.IsValid(b) {
		return
	}

	// Only the newest movement's timer survives, so the event's line may be
	// stale. Read the line the cursor actually settled on.
	wins := r.host.BufferWindows(b)
	if len(wins) == 0 {
		return
	}
	line, err := r.host.CursorLine(wins[0])
	if err != nil {
		r.logger.Debug("cursor read failed for buffer %d: %v", b, err)
		return
	}

	if evicted, ok := r.store.Record(b, line); ok {
		r.renderer.Release(b, evicted.Marker)
	}
	res := r.renderer.Redraw(b)
	r.logger.Debug("recorded line %d in buffer %d (placed=%d skipped=%d omitted=%d)",
		line, b, res.Placed, res.Skipped, res.Omitted)
}
