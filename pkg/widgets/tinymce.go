package widgets

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/url"

	"github.com/goliatone/go-formgen-tinymce/pkg/locale"
	"github.com/goliatone/go-formgen-tinymce/pkg/panels"
	"github.com/goliatone/go-formgen-tinymce/pkg/richtext"
)

// RichTextArea is a textarea enhanced with the TinyMCE editor.
type RichTextArea struct {
	base        *Textarea
	buttons     Buttons
	menus       Menus
	options     map[string]any
	features    richtext.FeatureSet
	converter   richtext.Converter
	locale      locale.Provider
	initializer string
	media       Media
	panel       panels.Panel
}

// NewRichTextArea builds the widget. Every option is optional; defaults give
// the three-row toolbar, the editor's own menubar, the default options and
// the default feature set.
func NewRichTextArea(options ...Option) *RichTextArea {
	cfg := newConfig(options)

	features := richtext.DefaultFeatures()
	if cfg.features != nil {
		features = *cfg.features
	}

	converter := cfg.converter
	if converter == nil {
		converter = richtext.NewConverter(cfg.hostVersion, features, cfg.converterOptions...)
	}

	templates := cfg.templates
	if templates == nil {
		if cfg.templateFS != nil {
			templates = mustEngine(cfg.templateFS)
		} else {
			templates = defaultTemplates()
		}
	}
	base := NewTextarea(cfg.attrs, templates)
	base.template = resolvePartial(cfg.selection, TextareaTemplate, PartialTinyMCE, PartialTextarea)

	media := defaultMedia()
	if cfg.media != nil {
		media = cfg.media.Clone()
	}

	return &RichTextArea{
		base:        base,
		buttons:     cfg.buttons,
		menus:       cfg.menus,
		options:     cfg.options,
		features:    features,
		converter:   converter,
		locale:      cfg.locale,
		initializer: cfg.initializer,
		media:       media,
		panel:       cfg.panel,
	}
}

// Render converts the stored value into editor HTML and renders the textarea.
func (w *RichTextArea) Render(name, value string, attrs map[string]string) (string, error) {
	translated := ""
	if value != "" {
		display, err := w.converter.ToDisplay(value)
		if err != nil {
			return "", fmt.Errorf("widgets: convert %q for editor: %w", name, err)
		}
		translated = display
	}
	return w.base.Render(name, translated, attrs)
}

// RenderWithScript renders the textarea followed by an inline script that boots
// the editor. Without an id attribute there is nothing to target and only the
// textarea is returned.
func (w *RichTextArea) RenderWithScript(name, value string, attrs map[string]string) (string, error) {
	markup, err := w.Render(name, value, attrs)
	if err != nil {
		return "", err
	}
	id := w.base.BuildAttrs(attrs)["id"]
	if id == "" {
		return markup, nil
	}
	js, err := w.RenderJSInit(id, name, value)
	if err != nil {
		return "", err
	}
	return markup + "<script>" + js + "</script>", nil
}

// RenderJSInit returns `<initializer>(<id>, <arguments>);` with both arguments
// JSON encoded.
func (w *RichTextArea) RenderJSInit(id, _ string, _ string) (string, error) {
	encodedID, err := json.Marshal(id)
	if err != nil {
		return "", fmt.Errorf("widgets: encode element id: %w", err)
	}
	encodedArgs, err := json.Marshal(w.InitArguments())
	if err != nil {
		return "", fmt.Errorf("widgets: encode init arguments: %w", err)
	}
	return fmt.Sprintf("%s(%s, %s);", w.initializer, encodedID, encodedArgs), nil
}

// InitArguments builds the options object handed to the initializer: the
// configured options, then `language` and `toolbar`, then `menubar` when the
// menus are not left to the editor default. Each call returns a new map.
func (w *RichTextArea) InitArguments() map[string]any {
	args := cloneOptions(w.options)
	args["language"] = locale.Current(w.locale)

	if len(w.buttons) > 0 {
		args["toolbar"] = w.buttons.Toolbar()
	} else {
		args["toolbar"] = false
	}

	if menubar, ok := w.menus.menubar(); ok {
		args["menubar"] = menubar
	}
	return args
}

// ValueFromForm reads the submitted editor HTML and converts it to storage
// HTML. The boolean is false when the field was not submitted.
func (w *RichTextArea) ValueFromForm(data url.Values, files map[string][]*multipart.FileHeader, name string) (string, bool, error) {
	raw, ok, err := w.base.ValueFromForm(data, files, name)
	if err != nil || !ok {
		return "", ok, err
	}
	cleaned, err := w.converter.ToStorage(raw)
	if err != nil {
		return "", true, fmt.Errorf("widgets: convert %q for storage: %w", name, err)
	}
	return cleaned, true, nil
}

// Panel returns the admin panel that hosts this widget.
func (w *RichTextArea) Panel() panels.Panel {
	return w.panel
}

// Media returns the assets the widget needs on the page.
func (w *RichTextArea) Media() Media {
	return w.media.Clone()
}

// Buttons returns a copy of the toolbar layout.
func (w *RichTextArea) Buttons() Buttons {
	return w.buttons.Clone()
}

// Menus returns the menubar configuration.
func (w *RichTextArea) Menus() Menus {
	return w.menus.clone()
}

// Options returns a copy of the merged editor options.
func (w *RichTextArea) Options() map[string]any {
	return cloneOptions(w.options)
}

// Features returns the feature set the converter was built for.
func (w *RichTextArea) Features() richtext.FeatureSet {
	return richtext.NewFeatureSet(w.features.List()...)
}

// Converter returns the converter resolved at construction.
func (w *RichTextArea) Converter() richtext.Converter {
	return w.converter
}

// Initializer returns the JavaScript initializer function name.
func (w *RichTextArea) Initializer() string {
	return w.initializer
}

// Attrs returns a copy of the widget's HTML attributes.
func (w *RichTextArea) Attrs() map[string]string {
	return w.base.Attrs()
}
