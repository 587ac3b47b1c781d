// Package term implements the host capability surface over a tcell terminal.
//
// It is a deliberately small host: a single read-only buffer shown in a
// single window, enough to run the trail extension live and watch the
// gutter fade as the cursor moves. The demo in cmd/cursortrail drives it.
package term

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/cursortrail/internal/host"
	"github.com/dshills/cursortrail/internal/log"
	"github.com/dshills/cursortrail/internal/theme"
)

const (
	mainBuffer host.BufferID = 1
	mainWindow host.WindowID = 1

	gutterWidth = 2
)

type styleDef struct {
	fg   string
	bold bool
}

type signDef struct {
	glyph string
	style string
}

type placement struct {
	sign string
	line int
}

type subscription struct {
	topic   host.Topic
	handler host.Handler
}

// Host is a tcell-backed editing host showing one file.
type Host struct {
	mu sync.Mutex

	screen tcell.Screen
	logger *log.Logger
	themes *theme.Registry

	name       string
	lines      []string
	cursorLine int // 1-based
	cursorCol  int
	scrollTop  int // first visible line, 0-based

	filetype string

	styles map[string]styleDef
	signs  map[string]signDef
	placed map[host.MarkerID]placement

	groups   map[string][]subscription
	commands map[string]func()

	status     string
	statusTime time.Time

	quit chan struct{}
}

// realTimer wraps time.Timer as a host.Timer.
type realTimer struct {
	t *time.Timer
}

// Stop implements host.Timer.
func (r realTimer) Stop() {
	r.t.Stop()
}

// New creates a host displaying the given file.
func New(path string, themes *theme.Registry, logger *log.Logger) (*Host, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}

	if logger == nil {
		logger = log.Discard()
	}
	if themes == nil {
		themes = theme.NewRegistry()
	}

	h := &Host{
		screen:     screen,
		logger:     logger.WithComponent("term"),
		themes:     themes,
		name:       path,
		lines:      strings.Split(strings.TrimSuffix(string(data), "\n"), "\n"),
		cursorLine: 1,
		filetype:   detectFiletype(path),
		styles:     make(map[string]styleDef),
		signs:      make(map[string]signDef),
		placed:     make(map[host.MarkerID]placement),
		groups:     make(map[string][]subscription),
		commands:   make(map[string]func()),
		quit:       make(chan struct{}),
	}
	return h, nil
}

func detectFiletype(path string) string {
	switch {
	case strings.HasSuffix(path, ".go"):
		return "go"
	case strings.HasSuffix(path, ".md"):
		return "markdown"
	case strings.HasSuffix(path, ".lua"):
		return "lua"
	default:
		return "text"
	}
}

// --- host.Windows ---

// CurrentBuffer implements host.Windows.
func (h *Host) CurrentBuffer() host.BufferID {
	return mainBuffer
}

// CursorLine implements host.Windows.
func (h *Host) CursorLine(w host.WindowID) (int, error) {
	if w != mainWindow {
		return 0, fmt.Errorf("no such window %d", w)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursorLine, nil
}

// BufferWindows implements host.Windows.
func (h *Host) BufferWindows(b host.BufferID) []host.WindowID {
	if b != mainBuffer {
		return nil
	}
	return []host.WindowID{mainWindow}
}

// --- host.Buffers ---

// IsValid implements host.Buffers.
func (h *Host) IsValid(b host.BufferID) bool {
	return b == mainBuffer
}

// Buftype implements host.Buffers.
func (h *Host) Buftype(b host.BufferID) string {
	return ""
}

// Filetype implements host.Buffers.
func (h *Host) Filetype(b host.BufferID) string {
	if b != mainBuffer {
		return ""
	}
	return h.filetype
}

// --- host.Markers ---

// DefineStyle implements host.Markers.
func (h *Host) DefineStyle(name, fg string, bold bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.styles[name] = styleDef{fg: fg, bold: bold}
	return nil
}

// DefineSign implements host.Markers.
func (h *Host) DefineSign(name, glyph, style string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.signs[name] = signDef{glyph: glyph, style: style}
	return nil
}

// Place implements host.Markers.
func (h *Host) Place(id host.MarkerID, sign string, b host.BufferID, line int) error {
	if b != mainBuffer {
		return fmt.Errorf("no such buffer %d", b)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if line < 1 || line > len(h.lines) {
		return fmt.Errorf("line %d out of range", line)
	}
	h.placed[id] = placement{sign: sign, line: line}
	return nil
}

// Unplace implements host.Markers.
func (h *Host) Unplace(id host.MarkerID, b host.BufferID) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.placed, id)
	return nil
}

// --- host.Colors ---

// GroupForeground implements host.Colors.
func (h *Host) GroupForeground(name string) (string, bool) {
	return h.themes.Lookup(name)
}

// --- host.Timers ---

// Start implements host.Timers.
func (h *Host) Start(d time.Duration, fn func()) host.Timer {
	return realTimer{t: time.AfterFunc(d, fn)}
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

func (h *Host) emit(ev host.Event) {
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

// --- host.Commands ---

// RegisterCommand implements host.Commands.
func (h *Host) RegisterCommand(name string, fn func()) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.commands[name] = fn
	return nil
}

// UnregisterCommand implements host.Commands.
func (h *Host) UnregisterCommand(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.commands, name)
}

func (h *Host) invoke(name string) {
	h.mu.Lock()
	fn := h.commands[name]
	h.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// --- host.Notifier ---

// Close asks a running event loop to exit.
func (h *Host) Close() {
	select {
	case <-h.quit:
	default:
		close(h.quit)
	}
}

// Notify implements host.Notifier. Messages show in the status line.
func (h *Host) Notify(level host.Level, message string) {
	h.mu.Lock()
	h.status = fmt.Sprintf("[%s] %s", level, message)
	h.statusTime = time.Now()
	h.mu.Unlock()
	h.logger.Info("notify %s: %s", level, message)
}
