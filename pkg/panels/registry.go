// Package panels describes the admin-panel renderers that host form widgets
// and keeps a registry keyed by field kind.
package panels

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrPanelNotFound is returned when no panel is registered for a field kind.
var ErrPanelNotFound = errors.New("panels: panel not found")

// Panel identifies the admin-panel renderer that should host a widget.
type Panel struct {
	Name      string
	Classname string
}

// RichTextFieldPanel hosts rich-text widgets.
var RichTextFieldPanel = Panel{
	Name:      "RichTextFieldPanel",
	Classname: "full",
}

// FieldPanel hosts plain form widgets.
var FieldPanel = Panel{
	Name: "FieldPanel",
}

// Field kinds known to the default registry.
const (
	KindRichText = "richtext"
	KindText     = "text"
)

// Registry maps field kinds to panels.
type Registry struct {
	mu     sync.RWMutex
	panels map[string]Panel
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		panels: make(map[string]Panel),
	}
}

// Default returns a registry with the built-in kinds registered.
func Default() *Registry {
	registry := NewRegistry()
	registry.MustRegister(KindRichText, RichTextFieldPanel)
	registry.MustRegister(KindText, FieldPanel)
	return registry
}

// Register associates a panel with a field kind. Duplicate kinds return an
// error.
func (r *Registry) Register(kind string, panel Panel) error {
	kind = normalize(kind)
	if kind == "" {
		return fmt.Errorf("panels: field kind is required")
	}
	if strings.TrimSpace(panel.Name) == "" {
		return fmt.Errorf("panels: panel name is required for %q", kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.panels[kind]; exists {
		return fmt.Errorf("panels: kind %q already registered", kind)
	}
	r.panels[kind] = panel
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(kind string, panel Panel) {
	if err := r.Register(kind, panel); err != nil {
		panic(err)
	}
}

// Get retrieves the panel for a field kind.
func (r *Registry) Get(kind string) (Panel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	panel, ok := r.panels[normalize(kind)]
	if !ok {
		return Panel{}, fmt.Errorf("%w: %q", ErrPanelNotFound, kind)
	}
	return panel, nil
}

// List returns the registered kinds in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.panels))
	for kind := range r.panels {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// Has reports whether a kind is registered.
func (r *Registry) Has(kind string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.panels[normalize(kind)]
	return ok
}

func normalize(kind string) string {
	return strings.ToLower(strings.TrimSpace(kind))
}
