package recorder

import (
	"sync"
	"time"

	"github.com/dshills/cursortrail/internal/host"
)

// Debouncer coalesces bursts of calls per key into a single callback after a
// quiet period. Each key owns at most one live timer; a newer call supersedes
// the pending one.
//
// Timers come from the host capability, so tests can drive the debouncer
// with a manual clock. A sequence number per key invalidates callbacks from
// timers that were superseded or cancelled after they were already scheduled.
//
// Thread-safety: all methods are safe for concurrent use. The callback is
// invoked without the internal lock held.
type Debouncer[K comparable] struct {
	mu      sync.Mutex
	delay   time.Duration
	timers  host.Timers
	fn      func(K)
	pending map[K]*pendingCall
}

type pendingCall struct {
	timer host.Timer
	seq   uint64
}

// NewDebouncer creates a keyed debouncer. fn runs after no call for key has
// arrived for at least delay.
func NewDebouncer[K comparable](delay time.Duration, timers host.Timers, fn func(K)) *Debouncer[K] {
	return &Debouncer[K]{
		delay:   delay,
		timers:  timers,
		fn:      fn,
		pending: make(map[K]*pendingCall),
	}
}

// Call schedules the callback for key, superseding any pending call.
func (d *Debouncer[K]) Call(key K) {
	d.mu.Lock()
	defer d.mu.Unlock()

	p := d.pending[key]
	if p == nil {
		p = &pendingCall{}
		d.pending[key] = p
	} else if p.timer != nil {
		p.timer.Stop()
	}
	p.seq++
	current := p.seq

	p.timer = d.timers.Start(d.delay, func() {
		d.mu.Lock()
		live, ok := d.pending[key]
		if !ok || live.seq != current {
			d.mu.Unlock()
			return
		}
		delete(d.pending, key)
		d.mu.Unlock()
		d.fn(key)
	})
}

// Cancel drops any pending call for key.
func (d *Debouncer[K]) Cancel(key K) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if p, ok := d.pending[key]; ok {
		if p.timer != nil {
			p.timer.Stop()
		}
		delete(d.pending, key)
	}
}

// CancelAll drops every pending call.
func (d *Debouncer[K]) CancelAll() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for key, p := range d.pending {
		if p.timer != nil {
			p.timer.Stop()
		}
		delete(d.pending, key)
	}
}

// Pending reports whether a call for key is waiting to fire.
func (d *Debouncer[K]) Pending(key K) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.pending[key]
	return ok
}
