package richtext

import (
	"errors"
	"strings"

	"golang.org/x/mod/semver"
)

// ErrNilConverter is returned by helpers that require a converter.
var ErrNilConverter = errors.New("richtext: converter is nil")

// EditorHTMLMinVersion is the first host version that uses the feature-gated
// editor HTML converter.
const EditorHTMLMinVersion = "2.0"

// Converter maps rich text between storage and editor representations.
type Converter interface {
	// ToDisplay converts storage HTML into the HTML shown inside the editor.
	ToDisplay(storageHTML string) (string, error)
	// ToStorage whitelists editor HTML and converts it into storage HTML.
	ToStorage(displayHTML string) (string, error)
}

// ConverterOption configures converter construction.
type ConverterOption func(*converterConfig)

type converterConfig struct {
	resolver Resolver
	handlers *Handlers
}

// WithResolver supplies preview URL lookups for entity expansion.
func WithResolver(resolver Resolver) ConverterOption {
	return func(cfg *converterConfig) {
		cfg.resolver = resolver
	}
}

// WithHandlers replaces the built-in entity handlers.
func WithHandlers(handlers *Handlers) ConverterOption {
	return func(cfg *converterConfig) {
		if handlers != nil {
			cfg.handlers = handlers
		}
	}
}

func newConverterConfig(options []ConverterOption) converterConfig {
	cfg := converterConfig{handlers: DefaultHandlers()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

// NewConverter returns the converter variant matching the host version. Hosts
// at or above EditorHTMLMinVersion get an EditorHTMLConverter for the feature
// set; older hosts get a LegacyConverter, which ignores features. Versions that
// cannot be parsed are treated as current.
func NewConverter(hostVersion string, features FeatureSet, options ...ConverterOption) Converter {
	if UsesEditorHTML(hostVersion) {
		return NewEditorHTMLConverter(features, options...)
	}
	return NewLegacyConverter(options...)
}

// UsesEditorHTML reports whether the host version selects the feature-gated
// converter.
func UsesEditorHTML(hostVersion string) bool {
	version, ok := canonicalVersion(hostVersion)
	if !ok {
		return true
	}
	minimum, _ := canonicalVersion(EditorHTMLMinVersion)
	return semver.Compare(version, minimum) >= 0
}

func canonicalVersion(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}
	if !strings.HasPrefix(trimmed, "v") {
		trimmed = "v" + trimmed
	}
	if !semver.IsValid(trimmed) {
		return "", false
	}
	return semver.Canonical(trimmed), true
}

// EditorHTMLConverter is the feature-gated converter used by current hosts.
type EditorHTMLConverter struct {
	features FeatureSet
	rewriter rewriter
}

var _ Converter = (*EditorHTMLConverter)(nil)

// NewEditorHTMLConverter builds a converter restricted to the feature set.
func NewEditorHTMLConverter(features FeatureSet, options ...ConverterOption) *EditorHTMLConverter {
	cfg := newConverterConfig(options)
	set := NewFeatureSet(features.List()...)
	return &EditorHTMLConverter{
		features: set,
		rewriter: rewriter{
			handlers: cfg.handlers,
			resolver: cfg.resolver,
			features: &set,
		},
	}
}

// Features returns the enabled feature set.
func (c *EditorHTMLConverter) Features() FeatureSet {
	return NewFeatureSet(c.features.List()...)
}

// ToDisplay implements Converter.
func (c *EditorHTMLConverter) ToDisplay(storageHTML string) (string, error) {
	return c.rewriter.expand(storageHTML)
}

// ToStorage implements Converter.
func (c *EditorHTMLConverter) ToStorage(displayHTML string) (string, error) {
	if displayHTML == "" {
		return "", nil
	}
	cleaned := whitelistPolicy(c.rewriter.features, c.rewriter.handlers).Sanitize(displayHTML)
	return c.rewriter.contract(cleaned)
}

// LegacyConverter serves hosts older than 2.0. It expands every registered
// entity and whitelists against the full element set.
type LegacyConverter struct {
	rewriter rewriter
}

var _ Converter = (*LegacyConverter)(nil)

// NewLegacyConverter builds the pre-2.0 converter.
func NewLegacyConverter(options ...ConverterOption) *LegacyConverter {
	cfg := newConverterConfig(options)
	return &LegacyConverter{
		rewriter: rewriter{
			handlers: cfg.handlers,
			resolver: cfg.resolver,
		},
	}
}

// ToDisplay implements Converter.
func (c *LegacyConverter) ToDisplay(storageHTML string) (string, error) {
	return c.rewriter.expand(storageHTML)
}

// ToStorage implements Converter.
func (c *LegacyConverter) ToStorage(displayHTML string) (string, error) {
	if displayHTML == "" {
		return "", nil
	}
	cleaned := whitelistPolicy(nil, c.rewriter.handlers).Sanitize(displayHTML)
	return c.rewriter.contract(cleaned)
}
