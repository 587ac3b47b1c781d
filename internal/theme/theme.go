// Package theme provides named colorschemes and symbolic color lookup.
//
// A Scheme maps highlight-group names to foreground colors. The registry
// tracks the active scheme, backs the host's color-lookup capability, and
// notifies listeners when the scheme changes so dependent styles can be
// rebuilt.
package theme

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrUnknownScheme is returned when activating a scheme that was never added.
var ErrUnknownScheme = errors.New("unknown colorscheme")

// Scheme is a named set of highlight groups.
type Scheme struct {
	Name string

	// Groups maps a highlight-group name to its foreground hex color.
	Groups map[string]string
}

// Foreground returns the group's foreground color.
func (s Scheme) Foreground(group string) (string, bool) {
	fg, ok := s.Groups[group]
	return fg, ok
}

// GroupNames returns the scheme's group names, sorted.
func (s Scheme) GroupNames() []string {
	names := make([]string, 0, len(s.Groups))
	for name := range s.Groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks that every group color parses as a hex color.
func (s Scheme) Validate() error {
	if s.Name == "" {
		return errors.New("colorscheme has no name")
	}
	for group, fg := range s.Groups {
		hex := fg
		if !strings.HasPrefix(hex, "#") {
			hex = "#" + hex
		}
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("group %q: bad color %q: %w", group, fg, err)
		}
	}
	return nil
}

// ChangeListener is notified after the active scheme switches.
type ChangeListener func(name string)

// Registry holds named schemes and the active selection.
type Registry struct {
	mu        sync.RWMutex
	schemes   map[string]Scheme
	current   string
	listeners []ChangeListener
}

// NewRegistry creates a registry with the bundled default scheme active.
func NewRegistry() *Registry {
	def := DefaultScheme()
	return &Registry{
		schemes: map[string]Scheme{def.Name: def},
		current: def.Name,
	}
}

// Add registers a scheme, replacing any scheme with the same name.
func (r *Registry) Add(s Scheme) error {
	if err := s.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	r.schemes[s.Name] = s
	r.mu.Unlock()
	return nil
}

// Names returns the registered scheme names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.schemes))
	for name := range r.schemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Current returns the active scheme name.
func (r *Registry) Current() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// SetCurrent activates a scheme and notifies listeners.
func (r *Registry) SetCurrent(name string) error {
	r.mu.Lock()
	if _, ok := r.schemes[name]; !ok {
		r.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownScheme, name)
	}
	r.current = name
	listeners := make([]ChangeListener, len(r.listeners))
	copy(listeners, r.listeners)
	r.mu.Unlock()

	for _, l := range listeners {
		l(name)
	}
	return nil
}

// OnChange registers a listener for scheme switches.
func (r *Registry) OnChange(l ChangeListener) {
	r.mu.Lock()
	r.listeners = append(r.listeners, l)
	r.mu.Unlock()
}

// Lookup resolves a group name against the active scheme.
func (r *Registry) Lookup(group string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.schemes[r.current]
	if !ok {
		return "", false
	}
	return s.Foreground(group)
}

// DefaultScheme returns the bundled dark scheme.
func DefaultScheme() Scheme {
	return Scheme{
		Name: "midnight",
		Groups: map[string]string{
			"Normal":     "#c0caf5",
			"Comment":    "#565f89",
			"Identifier": "#7aa2f7",
			"Statement":  "#bb9af7",
			"Constant":   "#ff9e64",
			"String":     "#9ece6a",
			"Search":     "#e0af68",
			"Error":      "#f7768e",
			"LineNr":     "#3b4261",
		},
	}
}
