package widgets

import (
	"io/fs"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formgen-tinymce/pkg/locale"
	"github.com/goliatone/go-formgen-tinymce/pkg/panels"
	rendertemplate "github.com/goliatone/go-formgen-tinymce/pkg/render/template"
	"github.com/goliatone/go-formgen-tinymce/pkg/richtext"
)

// DefaultInitializer is the JavaScript function that boots the editor.
const DefaultInitializer = "makeTinyMCEEditable"

// Option configures a RichTextArea before construction.
type Option func(*config)

type config struct {
	attrs            map[string]string
	buttons          Buttons
	menus            Menus
	options          map[string]any
	features         *richtext.FeatureSet
	hostVersion      string
	converter        richtext.Converter
	converterOptions []richtext.ConverterOption
	locale           locale.Provider
	templates        rendertemplate.TemplateRenderer
	templateFS       fs.FS
	selection        *theme.Selection
	initializer      string
	media            *Media
	panel            panels.Panel
}

func newConfig(options []Option) config {
	cfg := config{
		attrs:       map[string]string{},
		buttons:     DefaultButtons(),
		menus:       MenusDefault(),
		options:     DefaultOptions(),
		locale:      locale.Default(),
		initializer: DefaultInitializer,
		panel:       panels.RichTextFieldPanel,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

// WithAttrs sets HTML attributes for the textarea.
func WithAttrs(attrs map[string]string) Option {
	return func(cfg *config) {
		cfg.attrs = cloneAttrs(attrs)
	}
}

// WithButtons replaces the toolbar layout. An empty or nil layout disables the
// toolbar.
func WithButtons(buttons Buttons) Option {
	return func(cfg *config) {
		cfg.buttons = buttons.Clone()
	}
}

// WithMenus configures the menubar.
func WithMenus(menus Menus) Option {
	return func(cfg *config) {
		cfg.menus = menus.clone()
	}
}

// WithOptions overlays editor options onto the defaults, one top-level key at
// a time.
func WithOptions(options map[string]any) Option {
	return func(cfg *config) {
		cfg.options = mergeOptions(cfg.options, options)
	}
}

// WithFeatures restricts the rich-text features the converter honours. Calling
// it with no features enables none; omit it to get the default set.
func WithFeatures(features ...richtext.Feature) Option {
	return func(cfg *config) {
		set := richtext.NewFeatureSet(features...)
		cfg.features = &set
	}
}

// WithFeatureSet is WithFeatures for an existing set.
func WithFeatureSet(set richtext.FeatureSet) Option {
	return WithFeatures(set.List()...)
}

// WithHostVersion selects the converter variant for the host framework
// version. Ignored when WithConverter is used.
func WithHostVersion(version string) Option {
	return func(cfg *config) {
		cfg.hostVersion = strings.TrimSpace(version)
	}
}

// WithConverter injects a converter, bypassing version selection.
func WithConverter(converter richtext.Converter) Option {
	return func(cfg *config) {
		if converter != nil {
			cfg.converter = converter
		}
	}
}

// WithResolver supplies preview URLs for links and embeds shown in the editor.
func WithResolver(resolver richtext.Resolver) Option {
	return func(cfg *config) {
		cfg.converterOptions = append(cfg.converterOptions, richtext.WithResolver(resolver))
	}
}

// WithEntityHandlers replaces the built-in link and embed handlers.
func WithEntityHandlers(handlers *richtext.Handlers) Option {
	return func(cfg *config) {
		cfg.converterOptions = append(cfg.converterOptions, richtext.WithHandlers(handlers))
	}
}

// WithLocaleProvider supplies the current UI language.
func WithLocaleProvider(provider locale.Provider) Option {
	return func(cfg *config) {
		if provider != nil {
			cfg.locale = provider
		}
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templates = renderer
		}
	}
}

// WithTemplatesFS adds a template source checked before the embedded bundle.
// Ignored when WithTemplateRenderer is used.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithThemeSelection lets a go-theme selection override the textarea template
// through the `forms.tinymce` or `forms.textarea` partials.
func WithThemeSelection(selection *theme.Selection) Option {
	return func(cfg *config) {
		cfg.selection = selection
	}
}

// WithInitializer overrides the JavaScript initializer function name.
func WithInitializer(name string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.initializer = trimmed
		}
	}
}

// WithMedia replaces the default asset declaration.
func WithMedia(media Media) Option {
	return func(cfg *config) {
		cloned := media.Clone()
		cfg.media = &cloned
	}
}

// WithPanel overrides the admin panel descriptor.
func WithPanel(panel panels.Panel) Option {
	return func(cfg *config) {
		if strings.TrimSpace(panel.Name) != "" {
			cfg.panel = panel
		}
	}
}
