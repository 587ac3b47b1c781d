// Package hosttest provides a scripted in-memory host for tests.
//
// Timers run on a manual clock: nothing fires until Advance is called, which
// makes debounce behavior fully deterministic. Buffers, windows, markers,
// commands, and notifications are plain maps the test can inspect and
// mutate.
package hosttest

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dshills/cursortrail/internal/host"
)

// Placement records one placed marker.
type Placement struct {
	ID     host.MarkerID
	Sign   string
	Buffer host.BufferID
	Line   int
}

// Style records a defined style.
type Style struct {
	FG   string
	Bold bool
}

// Sign records a defined sign.
type Sign struct {
	Glyph string
	Style string
}

// Notification records one notification sent to the user.
type Notification struct {
	Level   host.Level
	Message string
}

type buffer struct {
	buftype  string
	filetype string
	valid    bool
}

type window struct {
	buffer host.BufferID
	line   int
}

type subscription struct {
	topic   host.Topic
	handler host.Handler
}

type fakeTimer struct {
	h        *Host
	deadline time.Duration
	fn       func()
	stopped  bool
}

// Stop implements host.Timer.
func (t *fakeTimer) Stop() {
	t.h.mu.Lock()
	t.stopped = true
	t.h.mu.Unlock()
}

// Host is a scripted implementation of host.Host.
type Host struct {
	mu sync.Mutex

	now    time.Duration
	timers []*fakeTimer

	buffers    map[host.BufferID]*buffer
	windows    map[host.WindowID]*window
	current    host.BufferID
	currentWin host.WindowID

	styles map[string]Style
	signs  map[string]Sign
	placed map[host.MarkerID]Placement

	// FailPlacements marks buffer lines where Place returns an error,
	// simulating lines deleted out from under the extension.
	FailPlacements map[host.BufferID]map[int]bool

	groups   map[string][]subscription
	commands map[string]func()
	groupFG  map[string]string
	notes    []Notification
}

// New creates an empty scripted host.
func New() *Host {
	return &Host{
		buffers:        make(map[host.BufferID]*buffer),
		windows:        make(map[host.WindowID]*window),
		styles:         make(map[string]Style),
		signs:          make(map[string]Sign),
		placed:         make(map[host.MarkerID]Placement),
		FailPlacements: make(map[host.BufferID]map[int]bool),
		groups:         make(map[string][]subscription),
		commands:       make(map[string]func()),
		groupFG:        make(map[string]string),
	}
}

// AddBuffer scripts a buffer into existence.
func (h *Host) AddBuffer(b host.BufferID, buftype, filetype string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buffers[b] = &buffer{buftype: buftype, filetype: filetype, valid: true}
}

// RemoveBuffer marks a buffer as gone.
func (h *Host) RemoveBuffer(b host.BufferID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if buf, ok := h.buffers[b]; ok {
		buf.valid = false
	}
}

// AddWindow scripts a window showing a buffer with its cursor on line.
func (h *Host) AddWindow(w host.WindowID, b host.BufferID, line int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.windows[w] = &window{buffer: b, line: line}
}

// RemoveWindow closes a window.
func (h *Host) RemoveWindow(w host.WindowID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.windows, w)
}

// SetCursor moves a window's cursor.
func (h *Host) SetCursor(w host.WindowID, line int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if win, ok := h.windows[w]; ok {
		win.line = line
	}
}

// Focus makes the given window (and its buffer) current.
func (h *Host) Focus(w host.WindowID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if win, ok := h.windows[w]; ok {
		h.currentWin = w
		h.current = win.buffer
	}
}

// SetGroupForeground scripts a highlight group's foreground color.
func (h *Host) SetGroupForeground(name, hex string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.groupFG[name] = hex
}

// FailPlacement makes Place fail for a buffer line.
func (h *Host) FailPlacement(b host.BufferID, line int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.FailPlacements[b] == nil {
		h.FailPlacements[b] = make(map[int]bool)
	}
	h.FailPlacements[b][line] = true
}

// --- host.Windows ---

// CurrentBuffer implements host.Windows.
func (h *Host) CurrentBuffer() host.BufferID {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// CursorLine implements host.Windows.
func (h *Host) CursorLine(w host.WindowID) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	win, ok := h.windows[w]
	if !ok {
		return 0, errors.New("no such window")
	}
	return win.line, nil
}

// BufferWindows implements host.Windows.
func (h *Host) BufferWindows(b host.BufferID) []host.WindowID {
	h.mu.Lock()
	defer h.mu.Unlock()

	var out []host.WindowID
	for id, win := range h.windows {
		if win.buffer == b {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// --- host.Buffers ---

// IsValid implements host.Buffers.
func (h *Host) IsValid(b host.BufferID) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	buf, ok := h.buffers[b]
	return ok && buf.valid
}

// Buftype implements host.Buffers.
func (h *Host) Buftype(b host.BufferID) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if buf, ok := h.buffers[b]; ok {
		return buf.buftype
	}
	return ""
}

// Filetype implements host.Buffers.
func (h *Host) Filetype(b host.BufferID) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if buf, ok := h.buffers[b]; ok {
		return buf.filetype
	}
	return ""
}

// --- host.Markers ---

// DefineStyle implements host.Markers.
func (h *Host) DefineStyle(name, fg string, bold bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.styles[name] = Style{FG: fg, Bold: bold}
	return nil
}

// DefineSign implements host.Markers.
func (h *Host) DefineSign(name, glyph, style string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.signs[name] = Sign{Glyph: glyph, Style: style}
	return nil
}

// Place implements host.Markers.
func (h *Host) Place(id host.MarkerID, sign string, b host.BufferID, line int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.FailPlacements[b][line] {
		return fmt.Errorf("line %d not in buffer %d", line, b)
	}
	h.placed[id] = Placement{ID: id, Sign: sign, Buffer: b, Line: line}
	return nil
}

// Unplace implements host.Markers.
func (h *Host) Unplace(id host.MarkerID, b host.BufferID) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.placed[id]; !ok {
		return fmt.Errorf("marker %d not placed", id)
	}
	delete(h.placed, id)
	return nil
}

// --- host.Colors ---

// GroupForeground implements host.Colors.
func (h *Host) GroupForeground(name string) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fg, ok := h.groupFG[name]
	return fg, ok
}

// --- host.Timers ---

// Start implements host.Timers. The timer fires only via Advance.
func (h *Host) Start(d time.Duration, fn func()) host.Timer {
	h.mu.Lock()
	defer h.mu.Unlock()

	t := &fakeTimer{h: h, deadline: h.now + d, fn: fn}
	h.timers = append(h.timers, t)
	return t
}

// Advance moves the clock forward and fires due timers in deadline order.
func (h *Host) Advance(d time.Duration) {
	h.mu.Lock()
	h.now += d
	h.mu.Unlock()

	for {
		h.mu.Lock()
		var next *fakeTimer
		idx := -1
		for i, t := range h.timers {
			if t.stopped || t.deadline > h.now {
				continue
			}
			if next == nil || t.deadline < next.deadline {
				next = t
				idx = i
			}
		}
		if next == nil {
			h.mu.Unlock()
			return
		}
		h.timers = append(h.timers[:idx], h.timers[idx+1:]...)
		h.mu.Unlock()

		next.fn()
	}
}

// PendingTimers returns the number of live, unfired timers.
func (h *Host) PendingTimers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, t := range h.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// --- host.Events ---

// Subscribe implements host.Events.
func (h *Host) Subscribe(group string, t host.Topic, fn host.Handler) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.groups[group] = append(h.groups[group], subscription{topic: t, handler: fn})
	return nil
}

// ClearGroup implements host.Events.
func (h *Host) ClearGroup(group string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.groups, group)
}

// Emit dispatches an event to every matching subscription.
func (h *Host) Emit(ev host.Event) {
	h.mu.Lock()
	var handlers []host.Handler
	for _, subs := range h.groups {
		for _, s := range subs {
			if s.topic == ev.Topic {
				handlers = append(handlers, s.handler)
			}
		}
	}
	h.mu.Unlock()

	for _, fn := range handlers {
		fn(ev)
	}
}

// SubscriptionCount returns the number of live subscriptions across groups.
func (h *Host) SubscriptionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, subs := range h.groups {
		n += len(subs)
	}
	return n
}

// --- host.Commands ---

// RegisterCommand implements host.Commands.
func (h *Host) RegisterCommand(name string, fn func()) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.commands[name]; ok {
		return fmt.Errorf("command %q already registered", name)
	}
	h.commands[name] = fn
	return nil
}

// UnregisterCommand implements host.Commands.
func (h *Host) UnregisterCommand(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.commands, name)
}

// Invoke runs a registered command, reporting whether it existed.
func (h *Host) Invoke(name string) bool {
	h.mu.Lock()
	fn, ok := h.commands[name]
	h.mu.Unlock()
	if ok {
		fn()
	}
	return ok
}

// --- host.Notifier ---

// Notify implements host.Notifier.
func (h *Host) Notify(level host.Level, message string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.notes = append(h.notes, Notification{Level: level, Message: message})
}

// Notifications returns everything sent so far.
func (h *Host) Notifications() []Notification {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Notification, len(h.notes))
	copy(out, h.notes)
	return out
}

// --- inspection helpers ---

// PlacedLines returns the sorted lines with markers in a buffer.
func (h *Host) PlacedLines(b host.BufferID) []int {
	h.mu.Lock()
	defer h.mu.Unlock()

	var lines []int
	for _, p := range h.placed {
		if p.Buffer == b {
			lines = append(lines, p.Line)
		}
	}
	sort.Ints(lines)
	return lines
}

// Placements returns every placement in a buffer, unordered.
func (h *Host) Placements(b host.BufferID) []Placement {
	h.mu.Lock()
	defer h.mu.Unlock()

	var out []Placement
	for _, p := range h.placed {
		if p.Buffer == b {
			out = append(out, p)
		}
	}
	return out
}

// StyleDef returns a defined style.
func (h *Host) StyleDef(name string) (Style, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.styles[name]
	return s, ok
}

// SignDef returns a defined sign.
func (h *Host) SignDef(name string) (Sign, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.signs[name]
	return s, ok
}
