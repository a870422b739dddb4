package widgets

import (
	"fmt"
	"mime/multipart"
	"net/url"

	rendertemplate "github.com/goliatone/go-formgen-tinymce/pkg/render/template"
)

var defaultTextareaAttrs = map[string]string{
	"cols": "40",
	"rows": "10",
}

// Textarea renders a multi-line text input.
type Textarea struct {
	attrs     map[string]string
	template  string
	templates rendertemplate.TemplateRenderer
}

// NewTextarea builds a textarea with the given attributes. A nil renderer uses
// the embedded templates.
func NewTextarea(attrs map[string]string, renderer rendertemplate.TemplateRenderer) *Textarea {
	if renderer == nil {
		renderer = defaultTemplates()
	}
	return &Textarea{
		attrs:     cloneAttrs(attrs),
		template:  TextareaTemplate,
		templates: renderer,
	}
}

// Attrs returns a copy of the configured attributes.
func (t *Textarea) Attrs() map[string]string {
	return cloneAttrs(t.attrs)
}

// BuildAttrs layers the default cols/rows, the widget attributes and the
// per-render attributes, later layers winning.
func (t *Textarea) BuildAttrs(extra map[string]string) map[string]string {
	out := cloneAttrs(defaultTextareaAttrs)
	for key, value := range t.attrs {
		out[key] = value
	}
	for key, value := range extra {
		out[key] = value
	}
	return out
}

// Render writes the textarea markup. An empty value renders an empty control.
func (t *Textarea) Render(name, value string, attrs map[string]string) (string, error) {
	final := t.BuildAttrs(attrs)
	keys := sortedKeys(final)
	pairs := make([]map[string]any, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, map[string]any{"name": key, "value": final[key]})
	}

	payload := map[string]any{
		"widget": map[string]any{
			"name":      name,
			"value":     value,
			"has_value": value != "",
			"attrs":     pairs,
		},
	}
	rendered, err := t.templates.RenderTemplate(t.template, payload)
	if err != nil {
		return "", fmt.Errorf("widgets: render template %q: %w", t.template, err)
	}
	return rendered, nil
}

// ValueFromForm returns the submitted value for name. The boolean is false when
// the field was not submitted. Repeated keys resolve to the last value.
func (t *Textarea) ValueFromForm(data url.Values, _ map[string][]*multipart.FileHeader, name string) (string, bool, error) {
	values, ok := data[name]
	if !ok {
		return "", false, nil
	}
	if len(values) == 0 {
		return "", true, nil
	}
	return values[len(values)-1], true, nil
}
