// Package extension wires the trail pipeline together and owns its
// lifecycle: configuration validation, event subscriptions, user commands,
// and teardown.
//
// An Extension is an explicitly owned instance. Nothing here is package
// global, so several independent instances can run against separate hosts,
// which is how the tests exercise it.
package extension

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/cursortrail/internal/color"
	"github.com/dshills/cursortrail/internal/config"
	"github.com/dshills/cursortrail/internal/host"
	"github.com/dshills/cursortrail/internal/log"
	"github.com/dshills/cursortrail/internal/marker"
	"github.com/dshills/cursortrail/internal/recorder"
	"github.com/dshills/cursortrail/internal/trail"
)

// User command names registered with the host.
const (
	CommandClear    = "TrailClear"
	CommandClearAll = "TrailClearAll"
)

// Extension is the trail plugin runtime.
type Extension struct {
	h      host.Host
	logger *log.Logger

	mu       sync.Mutex
	active   bool
	cfg      config.Config
	colorIn  color.Input // pre-normalization input, for symbolic re-resolution
	base     color.HSL
	gradient []string
	store    *trail.Store
	rend     *marker.Renderer
	rec      *recorder.Recorder
	group    string
}

// Option configures an Extension.
type Option func(*Extension)

// WithLogger sets the extension logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Extension) {
		e.logger = l
	}
}

// New creates an inactive extension bound to a host. Call Setup to activate.
func New(h host.Host, opts ...Option) *Extension {
	e := &Extension{
		h:      h,
		logger: log.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Setup validates and applies a configuration, replacing all previous state
// and event subscriptions. On any failure the host is warned, no
// subscriptions are installed, and the extension stays inactive.
func (e *Extension) Setup(cfg config.Config) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.teardownLocked()

	if err := cfg.Validate(); err != nil {
		e.h.Notify(host.LevelWarn, "cursortrail: invalid configuration: "+err.Error())
		return err
	}

	base, err := color.Normalize(cfg.Color, e.h.GroupForeground)
	if err != nil {
		e.h.Notify(host.LevelWarn, "cursortrail: "+err.Error())
		return err
	}

	e.cfg = cfg
	e.colorIn = cfg.Color
	e.base = base
	e.gradient = color.Gradient(base, cfg.TrailLength)
	e.store = trail.NewStore(cfg.TrailLength)
	e.rend = marker.New(e.h, e.store, marker.Options{
		Glyph:            cfg.Character,
		ActiveBufferOnly: cfg.ActiveBufferOnly,
		SkipCurrentLine:  cfg.TrailIncludes == config.IncludePrevious,
	}, e.logger)
	e.rec = recorder.New(e.h, e.store, e.rend, cfg,
		time.Duration(cfg.DebounceMS)*time.Millisecond, e.logger)

	if err := e.rend.RedefineStyles(e.gradient); err != nil {
		e.h.Notify(host.LevelWarn, "cursortrail: "+err.Error())
		e.teardownLocked()
		return err
	}

	// Group names carry a per-setup id so two instances sharing a host can
	// never clear each other's subscriptions.
	e.group = "cursortrail-" + uuid.NewString()[:8]

	type sub struct {
		topic   host.Topic
		handler host.Handler
	}
	subs := []sub{
		{host.TopicCursorMoved, e.rec.OnMove},
		{host.TopicBufferDeleted, e.onBufferDeleted},
		{host.TopicColorschemeChanged, e.onColorschemeChanged},
	}
	if cfg.ActiveBufferOnly {
		subs = append(subs,
			sub{host.TopicFocusGained, e.onFocusGained},
			sub{host.TopicFocusLost, e.onFocusLost},
		)
	}
	for _, s := range subs {
		if err := e.h.Subscribe(e.group, s.topic, s.handler); err != nil {
			e.h.Notify(host.LevelWarn, "cursortrail: subscribing "+string(s.topic)+": "+err.Error())
			e.teardownLocked()
			return err
		}
	}

	if err := e.h.RegisterCommand(CommandClear, e.Clear); err != nil {
		e.logger.Warn("registering %s: %v", CommandClear, err)
	}
	if err := e.h.RegisterCommand(CommandClearAll, e.ClearAll); err != nil {
		e.logger.Warn("registering %s: %v", CommandClearAll, err)
	}

	e.active = true
	e.logger.Info("setup complete: trail_length=%d debounce=%dms color=%s",
		cfg.TrailLength, cfg.DebounceMS, base.Color().Hex())
	return nil
}

// Active reports whether the extension is set up and subscribed.
func (e *Extension) Active() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

// Gradient returns the current gradient colors, brightest first.
func (e *Extension) Gradient() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]string, len(e.gradient))
	copy(out, e.gradient)
	return out
}

// Clear clears the trail of the currently focused buffer.
func (e *Extension) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.active {
		return
	}
	e.clearBufferLocked(e.h.CurrentBuffer())
}

// ClearAll clears every tracked buffer's trail.
func (e *Extension) ClearAll() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.active {
		return
	}
	for _, b := range e.store.Buffers() {
		e.clearBufferLocked(b)
	}
}

// GetTrail returns a snapshot of a buffer's trail, newest first. With no
// argument it uses the currently focused buffer. It is callable while
// inactive and then returns an empty trail.
func (e *Extension) GetTrail(bufs ...host.BufferID) []trail.Position {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.active {
		return nil
	}
	b := e.h.CurrentBuffer()
	if len(bufs) > 0 {
		b = bufs[0]
	}
	return e.store.Get(b)
}

// Teardown deactivates the extension: subscriptions are dropped, pending
// timers cancelled, and all markers released.
func (e *Extension) Teardown() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.teardownLocked()
}

func (e *Extension) teardownLocked() {
	if e.group != "" {
		e.h.ClearGroup(e.group)
		e.group = ""
	}
	if e.active {
		e.h.UnregisterCommand(CommandClear)
		e.h.UnregisterCommand(CommandClearAll)
	}
	if e.rec != nil {
		e.rec.CancelAll()
	}
	if e.store != nil {
		for _, b := range e.store.Buffers() {
			e.clearBufferLocked(b)
		}
	}
	e.store = nil
	e.rend = nil
	e.rec = nil
	e.gradient = nil
	e.active = false
}

func (e *Extension) clearBufferLocked(b host.BufferID) {
	if e.rec != nil {
		e.rec.Cancel(b)
	}
	for _, p := range e.store.Clear(b) {
		if p.Marker != 0 {
			e.rend.Release(b, p.Marker)
		}
	}
}

func (e *Extension) onBufferDeleted(ev host.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.active {
		return
	}
	e.clearBufferLocked(ev.Buffer)
}

// onColorschemeChanged re-resolves a symbolic base color against the new
// scheme, regenerates the gradient, and redeclares the styles. Markers keep
// their sign names, so no redraw is needed; the styles update in place.
func (e *Extension) onColorschemeChanged(host.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.active {
		return
	}

	if e.colorIn.Symbolic() {
		base, err := color.Normalize(e.colorIn, e.h.GroupForeground)
		if err != nil {
			// Keep the previous base; the trail stays visible in stale colors.
			e.logger.Warn("colorscheme change: %v", err)
		} else {
			e.base = base
		}
	}

	e.gradient = color.Gradient(e.base, e.cfg.TrailLength)
	if err := e.rend.RedefineStyles(e.gradient); err != nil {
		e.logger.Warn("redefining styles: %v", err)
	}
}

func (e *Extension) onFocusGained(ev host.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.active {
		return
	}
	e.rend.Show(ev.Buffer)
}

func (e *Extension) onFocusLost(ev host.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.active {
		return
	}
	e.rend.Hide(ev.Buffer)
}
