package widgets

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formgen-tinymce/pkg/panels"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetTinyMCE  = "tinymce"
	WidgetTextarea = "textarea"
)

// ErrUnknownWidget is returned by Build for names without a constructor.
var ErrUnknownWidget = errors.New("widgets: unknown widget")

// FormWidget is the render/extract contract shared by every widget.
type FormWidget interface {
	Render(name, value string, attrs map[string]string) (string, error)
	ValueFromForm(data url.Values, files map[string][]*multipart.FileHeader, name string) (string, bool, error)
}

// Field describes a form field the registry picks a widget for.
type Field struct {
	Name   string
	Kind   string
	Format string
	Hints  map[string]string
}

// Matcher decides whether a widget should handle the supplied field.
type Matcher func(field Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields based on explicit hints or registered
// matchers. Higher priority wins; ties fall back to registration order.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a matcher with the provided name and priority. The latest
// registration of a name wins during resolution.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field. An explicit `widget` hint is
// honoured before matcher evaluation.
func (r *Registry) Resolve(field Field) (string, bool) {
	if field.Hints != nil {
		if explicit := strings.TrimSpace(field.Hints["widget"]); explicit != "" {
			return explicit, true
		}
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	if len(rules) == 0 {
		return "", false
	}
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order > rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// Build resolves the widget for field and constructs it. Options apply to the
// rich-text widget; the plain textarea only honours attributes and templates.
func (r *Registry) Build(field Field, options ...Option) (FormWidget, error) {
	name, ok := r.Resolve(field)
	if !ok {
		return nil, fmt.Errorf("%w for field %q", ErrUnknownWidget, field.Name)
	}
	switch name {
	case WidgetTinyMCE:
		return NewRichTextArea(options...), nil
	case WidgetTextarea:
		cfg := newConfig(options)
		templates := cfg.templates
		if templates == nil && cfg.templateFS != nil {
			templates = mustEngine(cfg.templateFS)
		}
		return NewTextarea(cfg.attrs, templates), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownWidget, name)
	}
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetTinyMCE, 90, func(field Field) bool {
		if field.Kind == panels.KindRichText {
			return true
		}
		format := strings.ToLower(strings.TrimSpace(field.Format))
		return field.Kind == panels.KindText && (format == "html" || format == "richtext")
	})

	r.Register(WidgetTextarea, 10, func(field Field) bool {
		return field.Kind == panels.KindText
	})
}
