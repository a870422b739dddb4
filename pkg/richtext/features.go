package richtext

import (
	"slices"
	"strings"
)

// Feature names a unit of rich-text capability that gates conversion rules.
type Feature string

// Built-in features.
const (
	FeatureH1            Feature = "h1"
	FeatureH2            Feature = "h2"
	FeatureH3            Feature = "h3"
	FeatureH4            Feature = "h4"
	FeatureH5            Feature = "h5"
	FeatureH6            Feature = "h6"
	FeatureBold          Feature = "bold"
	FeatureItalic        Feature = "italic"
	FeatureOrderedList   Feature = "ol"
	FeatureUnorderedList Feature = "ul"
	FeatureHR            Feature = "hr"
	FeatureLink          Feature = "link"
	FeatureDocumentLink  Feature = "document-link"
	FeatureImage         Feature = "image"
	FeatureEmbed         Feature = "embed"
	FeatureCode          Feature = "code"
	FeatureSuperscript   Feature = "superscript"
	FeatureSubscript     Feature = "subscript"
	FeatureStrikethrough Feature = "strikethrough"
	FeatureBlockquote    Feature = "blockquote"
)

// featureElements lists the plain elements each feature whitelists. Entity
// features (links, embeds) are handled by EntityHandler registrations.
var featureElements = map[Feature][]string{
	FeatureH1:            {"h1"},
	FeatureH2:            {"h2"},
	FeatureH3:            {"h3"},
	FeatureH4:            {"h4"},
	FeatureH5:            {"h5"},
	FeatureH6:            {"h6"},
	FeatureBold:          {"b", "strong"},
	FeatureItalic:        {"i", "em"},
	FeatureOrderedList:   {"ol", "li"},
	FeatureUnorderedList: {"ul", "li"},
	FeatureHR:            {"hr"},
	FeatureLink:          nil,
	FeatureDocumentLink:  nil,
	FeatureImage:         nil,
	FeatureEmbed:         nil,
	FeatureCode:          {"code"},
	FeatureSuperscript:   {"sup"},
	FeatureSubscript:     {"sub"},
	FeatureStrikethrough: {"s", "del"},
	FeatureBlockquote:    {"blockquote"},
}

// baseElements survive whitelisting regardless of the feature set.
var baseElements = []string{"p", "br"}

var defaultFeatures = []Feature{
	FeatureH2, FeatureH3, FeatureH4,
	FeatureBold, FeatureItalic,
	FeatureOrderedList, FeatureUnorderedList,
	FeatureHR,
	FeatureLink, FeatureDocumentLink,
	FeatureImage, FeatureEmbed,
}

// IsKnown reports whether the feature is registered.
func IsKnown(feature Feature) bool {
	_, ok := featureElements[feature]
	return ok
}

// KnownFeatures returns every registered feature in sorted order.
func KnownFeatures() []Feature {
	out := make([]Feature, 0, len(featureElements))
	for feature := range featureElements {
		out = append(out, feature)
	}
	slices.Sort(out)
	return out
}

// FeatureSet is an ordered, de-duplicated set of known features. The zero
// value is an empty set.
type FeatureSet struct {
	items []Feature
}

// NewFeatureSet builds a set from the supplied features, preserving first
// occurrence order. Unknown features are dropped.
func NewFeatureSet(features ...Feature) FeatureSet {
	items := make([]Feature, 0, len(features))
	for _, feature := range features {
		feature = Feature(strings.ToLower(strings.TrimSpace(string(feature))))
		if !IsKnown(feature) || slices.Contains(items, feature) {
			continue
		}
		items = append(items, feature)
	}
	return FeatureSet{items: items}
}

// ParseFeatures is NewFeatureSet for plain strings, typically read from
// configuration files.
func ParseFeatures(names []string) FeatureSet {
	features := make([]Feature, 0, len(names))
	for _, name := range names {
		features = append(features, Feature(name))
	}
	return NewFeatureSet(features...)
}

// DefaultFeatures returns the feature set used when a widget does not name one.
func DefaultFeatures() FeatureSet {
	return NewFeatureSet(defaultFeatures...)
}

// AllFeatures returns a set containing every known feature.
func AllFeatures() FeatureSet {
	return NewFeatureSet(KnownFeatures()...)
}

// Has reports whether the feature is enabled.
func (s FeatureSet) Has(feature Feature) bool {
	return slices.Contains(s.items, feature)
}

// List returns a copy of the enabled features in insertion order.
func (s FeatureSet) List() []Feature {
	return slices.Clone(s.items)
}

// Len returns the number of enabled features.
func (s FeatureSet) Len() int {
	return len(s.items)
}

// Key returns an order-independent identifier for the set.
func (s FeatureSet) Key() string {
	names := make([]string, 0, len(s.items))
	for _, feature := range s.items {
		names = append(names, string(feature))
	}
	slices.Sort(names)
	return strings.Join(names, ",")
}

func (s FeatureSet) elements() []string {
	out := slices.Clone(baseElements)
	for _, feature := range s.items {
		for _, el := range featureElements[feature] {
			if !slices.Contains(out, el) {
				out = append(out, el)
			}
		}
	}
	return out
}
