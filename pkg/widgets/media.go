package widgets

import (
	"html"
	"slices"
	"strings"
)

// Default asset locations used by RichTextArea.Media.
const (
	DefaultEditorScript = "/static/tinymce/tinymce.min.js"
	DefaultInitScript   = "/static/tinymce-widget/" + InitScriptName
)

// Script describes a JavaScript dependency a widget needs on the page.
type Script struct {
	Src   string
	Defer bool
	Attrs map[string]string
}

// Media bundles the stylesheets and scripts a widget depends on.
type Media struct {
	Stylesheets []string
	Scripts     []Script
}

// Clone deep-copies the media declaration.
func (m Media) Clone() Media {
	out := Media{
		Stylesheets: slices.Clone(m.Stylesheets),
		Scripts:     make([]Script, len(m.Scripts)),
	}
	for idx, script := range m.Scripts {
		out.Scripts[idx] = Script{
			Src:   script.Src,
			Defer: script.Defer,
			Attrs: cloneAttrs(script.Attrs),
		}
	}
	if len(out.Scripts) == 0 {
		out.Scripts = nil
	}
	return out
}

// Merge returns the union of both declarations, keeping first occurrence
// order and dropping duplicate sources.
func (m Media) Merge(other Media) Media {
	out := Media{}
	seenStyles := make(map[string]struct{})
	seenScripts := make(map[string]struct{})
	for _, media := range []Media{m, other} {
		for _, href := range media.Stylesheets {
			if href == "" {
				continue
			}
			if _, exists := seenStyles[href]; exists {
				continue
			}
			seenStyles[href] = struct{}{}
			out.Stylesheets = append(out.Stylesheets, href)
		}
		for _, script := range media.Scripts {
			if script.Src == "" {
				continue
			}
			if _, exists := seenScripts[script.Src]; exists {
				continue
			}
			seenScripts[script.Src] = struct{}{}
			out.Scripts = append(out.Scripts, Script{
				Src:   script.Src,
				Defer: script.Defer,
				Attrs: cloneAttrs(script.Attrs),
			})
		}
	}
	return out
}

// HTML renders link and script tags for the declared assets.
func (m Media) HTML() string {
	var builder strings.Builder
	for _, href := range m.Stylesheets {
		builder.WriteString(`<link rel="stylesheet" href="`)
		builder.WriteString(html.EscapeString(href))
		builder.WriteString(`">`)
		builder.WriteByte('\n')
	}
	for _, script := range m.Scripts {
		builder.WriteString(`<script src="`)
		builder.WriteString(html.EscapeString(script.Src))
		builder.WriteString(`"`)
		if script.Defer {
			builder.WriteString(` defer`)
		}
		for _, key := range sortedKeys(script.Attrs) {
			builder.WriteByte(' ')
			builder.WriteString(html.EscapeString(key))
			builder.WriteString(`="`)
			builder.WriteString(html.EscapeString(script.Attrs[key]))
			builder.WriteString(`"`)
		}
		builder.WriteString(`></script>`)
		builder.WriteByte('\n')
	}
	return builder.String()
}

func defaultMedia() Media {
	return Media{
		Scripts: []Script{
			{Src: DefaultEditorScript},
			{Src: DefaultInitScript},
		},
	}
}

func sortedKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
