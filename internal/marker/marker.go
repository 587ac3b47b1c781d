// Package marker renders a buffer's trail as host gutter markers.
//
// The renderer owns no trail state of its own; it reads the trail store and
// drives the host's marker primitives. Placement failures against lines that
// no longer exist are an expected outcome of concurrent editing: the marker
// is counted as omitted and nothing is surfaced to callers.
package marker

import (
	"fmt"
	"sync/atomic"

	"github.com/dshills/cursortrail/internal/host"
	"github.com/dshills/cursortrail/internal/log"
	"github.com/dshills/cursortrail/internal/trail"
)

// Options configures a Renderer for one configuration epoch.
type Options struct {
	// Glyph is the character shown at each marker.
	Glyph string

	// ActiveBufferOnly suppresses rendering in unfocused buffers.
	ActiveBufferOnly bool

	// SkipCurrentLine leaves the entry matching the buffer's cursor line
	// unmarked (trail_includes = "previous").
	SkipCurrentLine bool

	// StylePrefix namespaces the style and sign definitions registered with
	// the host. Defaults to "CursorTrail".
	StylePrefix string
}

// Result reports what a redraw did. Omitted counts markers the host refused
// to place, typically because the line vanished mid-edit.
type Result struct {
	Placed  int
	Skipped int
	Omitted int
}

// Renderer maps trails to host markers.
type Renderer struct {
	host   host.Host
	store  *trail.Store
	opts   Options
	logger *log.Logger
	nextID atomic.Int64
}

// New creates a renderer over the given host and store.
func New(h host.Host, store *trail.Store, opts Options, logger *log.Logger) *Renderer {
	if opts.StylePrefix == "" {
		opts.StylePrefix = "CursorTrail"
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &Renderer{
		host:   h,
		store:  store,
		opts:   opts,
		logger: logger.WithComponent("marker"),
	}
}

// StyleName returns the style name for a 1-based trail slot.
func (r *Renderer) StyleName(slot int) string {
	return fmt.Sprintf("%s%d", r.opts.StylePrefix, slot)
}

// SignName returns the sign name for a 1-based trail slot.
func (r *Renderer) SignName(slot int) string {
	return fmt.Sprintf("%sSign%d", r.opts.StylePrefix, slot)
}

// RedefineStyles (re)declares one style and one sign per gradient slot.
// Slot 1 carries the bold attribute. It is idempotent and safe to call on
// every colorscheme change.
func (r *Renderer) RedefineStyles(gradient []string) error {
	for i, hex := range gradient {
		slot := i + 1
		if err := r.host.DefineStyle(r.StyleName(slot), hex, slot == 1); err != nil {
			return fmt.Errorf("defining style %s: %w", r.StyleName(slot), err)
		}
		if err := r.host.DefineSign(r.SignName(slot), r.opts.Glyph, r.StyleName(slot)); err != nil {
			return fmt.Errorf("defining sign %s: %w", r.SignName(slot), err)
		}
	}
	return nil
}

// Redraw unplaces every marker for the buffer and re-places one marker per
// trail entry. Under ActiveBufferOnly the re-place phase is skipped entirely
// for unfocused buffers; their trails stay recorded and render on focus.
func (r *Renderer) Redraw(b host.BufferID) Result {
	r.unplaceAll(b)

	if r.opts.ActiveBufferOnly && r.host.CurrentBuffer() != b {
		return Result{}
	}
	return r.place(b)
}

// Hide unplaces all markers for the buffer without touching the trail.
func (r *Renderer) Hide(b host.BufferID) {
	r.unplaceAll(b)
}

// Show re-places all markers for the buffer without touching the trail.
func (r *Renderer) Show(b host.BufferID) Result {
	return r.place(b)
}

// Release unplaces a single marker, used when the store evicts a position.
func (r *Renderer) Release(b host.BufferID, m host.MarkerID) {
	if m == 0 {
		return
	}
	if err := r.host.Unplace(m, b); err != nil {
		r.logger.Debug("unplace of evicted marker failed: %v", err)
	}
}

func (r *Renderer) unplaceAll(b host.BufferID) {
	for _, id := range r.store.TakeMarkers(b) {
		if err := r.host.Unplace(id, b); err != nil {
			r.logger.Debug("unplace failed: %v", err)
		}
	}
}

func (r *Renderer) place(b host.BufferID) Result {
	var res Result

	skipLine, haveSkip := 0, false
	if r.opts.SkipCurrentLine {
		if wins := r.host.BufferWindows(b); len(wins) > 0 {
			if line, err := r.host.CursorLine(wins[0]); err == nil {
				skipLine, haveSkip = line, true
			}
		}
	}

	for i, p := range r.store.Get(b) {
		if haveSkip && p.Line == skipLine {
			res.Skipped++
			continue
		}
		id := host.MarkerID(r.nextID.Add(1))
		if err := r.host.Place(id, r.SignName(i+1), b, p.Line); err != nil {
			// Expected when the line no longer exists. The marker is
			// omitted; the position stays in the trail.
			res.Omitted++
			r.logger.Debug("marker omitted for buffer %d line %d: %v", b, p.Line, err)
			continue
		}
		r.store.Attach(b, p.Line, id)
		res.Placed++
	}
	return res
}
