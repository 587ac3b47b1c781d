// Package host defines the capability surface the trail extension consumes
// from its editing host.
//
// The extension never touches a screen, a buffer, or a timer directly; it
// talks to these interfaces. A real host (see host/term) implements them over
// its own primitives, and tests drive the extension deterministically through
// the scripted implementation in host/hosttest.
package host

import "time"

// BufferID identifies a buffer within the host.
type BufferID int

// WindowID identifies a window within the host.
type WindowID int

// MarkerID identifies a placed marker instance. IDs are allocated by the
// extension; the host only needs them to be unique per placement.
type MarkerID int64

// Windows provides cursor and window introspection.
type Windows interface {
	// CurrentBuffer returns the buffer shown in the focused window.
	CurrentBuffer() BufferID

	// CursorLine returns the 1-based cursor line for a window.
	CursorLine(w WindowID) (int, error)

	// BufferWindows returns the windows currently showing a buffer.
	// Empty when the buffer is not displayed anywhere.
	BufferWindows(b BufferID) []WindowID
}

// Buffers provides buffer property lookup.
type Buffers interface {
	// IsValid reports whether the buffer still exists.
	IsValid(b BufferID) bool

	// Buftype returns the host's buffer type classification (e.g. "terminal").
	Buftype(b BufferID) string

	// Filetype returns the detected file type (e.g. "go", "help").
	Filetype(b BufferID) string
}

// Markers provides the host's gutter-marker primitives. All placements live
// under a namespace private to the extension.
type Markers interface {
	// DefineStyle declares (or redeclares) a named visual style.
	DefineStyle(name, fg string, bold bool) error

	// DefineSign declares (or redeclares) a named glyph marker bound to a style.
	DefineSign(name, glyph, style string) error

	// Place renders sign at buffer+line under the given instance id.
	Place(id MarkerID, sign string, b BufferID, line int) error

	// Unplace removes a previously placed marker instance.
	Unplace(id MarkerID, b BufferID) error
}

// Colors resolves symbolic style names to colors.
type Colors interface {
	// GroupForeground returns the foreground hex color of a named highlight
	// group, or false if the group is unknown in the active colorscheme.
	GroupForeground(name string) (string, bool)
}

// Timer is a pending single-shot callback.
type Timer interface {
	// Stop cancels the timer. Stopping an already-fired timer is a no-op.
	Stop()
}

// Timers schedules single-shot deferred callbacks.
type Timers interface {
	Start(d time.Duration, fn func()) Timer
}

// Topic names an event stream the host can deliver.
type Topic string

// Event topics the extension subscribes to.
const (
	TopicCursorMoved        Topic = "cursor.moved"
	TopicBufferDeleted      Topic = "buffer.deleted"
	TopicColorschemeChanged Topic = "colorscheme.changed"
	TopicFocusGained        Topic = "focus.gained"
	TopicFocusLost          Topic = "focus.lost"
)

// Event is a host-delivered occurrence. Fields beyond Topic are populated
// per topic: cursor and focus events carry Buffer and Window, cursor events
// also carry Line.
type Event struct {
	Topic  Topic
	Buffer BufferID
	Window WindowID
	Line   int
}

// Handler receives host events.
type Handler func(Event)

// Events registers callbacks for host events. Subscriptions are scoped to a
// named group so a re-setup can atomically drop and replace them.
type Events interface {
	Subscribe(group string, t Topic, h Handler) error
	ClearGroup(group string)
}

// Commands registers user-invocable commands with the host.
type Commands interface {
	RegisterCommand(name string, fn func()) error
	UnregisterCommand(name string)
}

// Level is a notification severity.
type Level string

const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warning"
	LevelError Level = "error"
)

// Notifier is the host's user-facing notification sink.
type Notifier interface {
	Notify(level Level, message string)
}

// Host aggregates the full capability surface.
type Host interface {
	Windows
	Buffers
	Markers
	Colors
	Timers
	Events
	Commands
	Notifier
}
