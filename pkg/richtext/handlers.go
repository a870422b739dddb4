package richtext

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// EntityKind distinguishes link entities (anchors) from embed entities.
type EntityKind string

const (
	EntityLink  EntityKind = "link"
	EntityEmbed EntityKind = "embed"
)

// storageTypeAttr is the attribute carrying the entity type in storage HTML.
func (k EntityKind) storageTypeAttr() string {
	if k == EntityEmbed {
		return "embedtype"
	}
	return "linktype"
}

// editorTypeAttr is the attribute carrying the entity type in editor HTML.
func (k EntityKind) editorTypeAttr() string {
	return "data-" + k.storageTypeAttr()
}

// Resolver looks up preview URLs for entities so the editor can show live
// links and thumbnails. Returning an empty string omits the preview.
type Resolver interface {
	ResolveURL(kind EntityKind, entityType, id string) (string, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(kind EntityKind, entityType, id string) (string, error)

// ResolveURL implements Resolver.
func (fn ResolverFunc) ResolveURL(kind EntityKind, entityType, id string) (string, error) {
	return fn(kind, entityType, id)
}

// EntityHandler converts the attributes of a single entity type between the
// storage and editor representations.
type EntityHandler interface {
	Kind() EntityKind
	Type() string
	Feature() Feature
	// ToEditor receives the storage attributes (without the type attribute)
	// and returns the editor attributes, type attribute included.
	ToEditor(attrs map[string]string, resolver Resolver) (map[string]string, error)
	// ToStorage receives the editor attributes and returns the storage
	// attributes, type attribute included.
	ToStorage(attrs map[string]string) map[string]string
}

// EditorAttributer is implemented by handlers that carry editor attributes
// beyond the type attribute. The sanitizer keeps them so ToStorage sees them.
type EditorAttributer interface {
	EditorAttributes() []string
}

// AttributeHandler is the EntityHandler used by the built-in entity types.
// Storage attributes are mirrored as `data-*` attributes in the editor.
type AttributeHandler struct {
	EntityKind   EntityKind
	EntityType   string
	Gate         Feature
	Attributes   []string
	PreviewAttr  string
	PreviewIDKey string
}

var (
	_ EntityHandler    = AttributeHandler{}
	_ EditorAttributer = AttributeHandler{}
)

func (h AttributeHandler) Kind() EntityKind { return h.EntityKind }
func (h AttributeHandler) Type() string     { return h.EntityType }
func (h AttributeHandler) Feature() Feature { return h.Gate }

// EditorAttributes implements EditorAttributer.
func (h AttributeHandler) EditorAttributes() []string {
	out := make([]string, 0, len(h.Attributes))
	for _, name := range h.Attributes {
		out = append(out, "data-"+name)
	}
	return out
}

// ToEditor implements EntityHandler.
func (h AttributeHandler) ToEditor(attrs map[string]string, resolver Resolver) (map[string]string, error) {
	out := map[string]string{
		h.EntityKind.editorTypeAttr(): h.EntityType,
	}
	for _, name := range h.Attributes {
		if value, ok := attrs[name]; ok {
			out["data-"+name] = value
		}
	}
	if alt, ok := attrs["alt"]; ok && h.EntityKind == EntityEmbed {
		out["alt"] = alt
	}
	if resolver == nil || h.PreviewAttr == "" {
		return out, nil
	}
	key := h.PreviewIDKey
	if key == "" {
		key = "id"
	}
	url, err := resolver.ResolveURL(h.EntityKind, h.EntityType, attrs[key])
	if err != nil {
		return nil, fmt.Errorf("richtext: resolve %s %s %q: %w", h.EntityType, h.EntityKind, attrs[key], err)
	}
	if url != "" {
		out[h.PreviewAttr] = url
	}
	return out, nil
}

// ToStorage implements EntityHandler.
func (h AttributeHandler) ToStorage(attrs map[string]string) map[string]string {
	out := map[string]string{
		h.EntityKind.storageTypeAttr(): h.EntityType,
	}
	for _, name := range h.Attributes {
		if value, ok := attrs["data-"+name]; ok {
			out[name] = value
		}
	}
	return out
}

// PageLinkHandler links to internal pages by id.
func PageLinkHandler() EntityHandler {
	return AttributeHandler{
		EntityKind:  EntityLink,
		EntityType:  "page",
		Gate:        FeatureLink,
		Attributes:  []string{"id"},
		PreviewAttr: "href",
	}
}

// DocumentLinkHandler links to documents by id.
func DocumentLinkHandler() EntityHandler {
	return AttributeHandler{
		EntityKind:  EntityLink,
		EntityType:  "document",
		Gate:        FeatureDocumentLink,
		Attributes:  []string{"id"},
		PreviewAttr: "href",
	}
}

// ImageEmbedHandler embeds images by id with a display format and alt text.
func ImageEmbedHandler() EntityHandler {
	return AttributeHandler{
		EntityKind:  EntityEmbed,
		EntityType:  "image",
		Gate:        FeatureImage,
		Attributes:  []string{"id", "format", "alt"},
		PreviewAttr: "src",
	}
}

// MediaEmbedHandler embeds external media (video, rich oEmbed content) by URL.
func MediaEmbedHandler() EntityHandler {
	return AttributeHandler{
		EntityKind:   EntityEmbed,
		EntityType:   "media",
		Gate:         FeatureEmbed,
		Attributes:   []string{"url"},
		PreviewAttr:  "src",
		PreviewIDKey: "url",
	}
}

// Handlers indexes entity handlers by kind and type. Later registrations
// replace earlier ones with the same kind and type. Handlers is safe for
// concurrent use.
type Handlers struct {
	mu     sync.RWMutex
	links  map[string]EntityHandler
	embeds map[string]EntityHandler
}

// NewHandlers builds a handler index.
func NewHandlers(handlers ...EntityHandler) *Handlers {
	h := &Handlers{
		links:  make(map[string]EntityHandler),
		embeds: make(map[string]EntityHandler),
	}
	for _, handler := range handlers {
		h.Register(handler)
	}
	return h
}

// DefaultHandlers returns the built-in page, document, image and media
// handlers.
func DefaultHandlers() *Handlers {
	return NewHandlers(
		PageLinkHandler(),
		DocumentLinkHandler(),
		ImageEmbedHandler(),
		MediaEmbedHandler(),
	)
}

// Register adds or replaces a handler. Nil handlers and empty types are
// ignored.
func (h *Handlers) Register(handler EntityHandler) {
	if h == nil || handler == nil {
		return
	}
	name := strings.ToLower(strings.TrimSpace(handler.Type()))
	if name == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	switch handler.Kind() {
	case EntityEmbed:
		h.embeds[name] = handler
	default:
		h.links[name] = handler
	}
}

// Lookup returns the handler for the entity type.
func (h *Handlers) Lookup(kind EntityKind, entityType string) (EntityHandler, bool) {
	if h == nil {
		return nil, false
	}
	name := strings.ToLower(strings.TrimSpace(entityType))
	h.mu.RLock()
	defer h.mu.RUnlock()
	var handler EntityHandler
	var ok bool
	if kind == EntityEmbed {
		handler, ok = h.embeds[name]
	} else {
		handler, ok = h.links[name]
	}
	return handler, ok
}

// types returns the registered entity types of a kind whose feature is enabled.
// A nil feature set enables every handler.
func (h *Handlers) types(kind EntityKind, features *FeatureSet) []string {
	var out []string
	h.enabled(kind, features, func(name string, _ EntityHandler) {
		out = append(out, name)
	})
	return out
}

// editorAttributes returns the sorted, de-duplicated editor attributes
// declared by the enabled handlers of a kind.
func (h *Handlers) editorAttributes(kind EntityKind, features *FeatureSet) []string {
	var out []string
	h.enabled(kind, features, func(_ string, handler EntityHandler) {
		if attributer, ok := handler.(EditorAttributer); ok {
			out = append(out, attributer.EditorAttributes()...)
		}
	})
	slices.Sort(out)
	return slices.Compact(out)
}

func (h *Handlers) enabled(kind EntityKind, features *FeatureSet, fn func(string, EntityHandler)) {
	if h == nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	source := h.links
	if kind == EntityEmbed {
		source = h.embeds
	}
	for name, handler := range source {
		if features != nil && !features.Has(handler.Feature()) {
			continue
		}
		fn(name, handler)
	}
}
