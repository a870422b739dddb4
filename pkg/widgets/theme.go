package widgets

import (
	"strings"

	theme "github.com/goliatone/go-theme"
)

// resolvePartial returns the first template registered for any of the keys,
// checking the selected variant before the base manifest.
func resolvePartial(selection *theme.Selection, fallback string, keys ...string) string {
	if selection == nil || selection.Manifest == nil {
		return fallback
	}
	manifest := selection.Manifest
	for _, key := range keys {
		if variant, ok := manifest.Variants[selection.Variant]; ok {
			if candidate := strings.TrimSpace(variant.Templates[key]); candidate != "" {
				return candidate
			}
		}
		if candidate := strings.TrimSpace(manifest.Templates[key]); candidate != "" {
			return candidate
		}
	}
	return fallback
}
