package widgets

import (
	"embed"
	"fmt"
	"io/fs"
	"sync"

	rendertemplate "github.com/goliatone/go-formgen-tinymce/pkg/render/template"
	"github.com/goliatone/go-formgen-tinymce/pkg/render/template/gotemplate"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

// InitScriptName is the embedded script defining the editor initializer.
const InitScriptName = "tinymce-editor.js"

// Template names resolved against the embedded bundle.
const (
	TextareaTemplate = "templates/textarea.tmpl"
)

// Theme partial keys checked before falling back to TextareaTemplate.
const (
	PartialTinyMCE  = "forms.tinymce"
	PartialTextarea = "forms.textarea"
)

var (
	defaultEngineOnce sync.Once
	defaultEngine     rendertemplate.TemplateRenderer
)

// TemplatesFS exposes the embedded widget templates.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the embedded browser assets (the initializer script) so
// callers can serve them next to the editor bundle.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}

func defaultTemplates() rendertemplate.TemplateRenderer {
	defaultEngineOnce.Do(func() {
		defaultEngine = mustEngine()
	})
	return defaultEngine
}

// mustEngine builds a pongo2 engine over the extra sources followed by the
// embedded bundle, so callers can shadow any built-in template.
func mustEngine(extra ...fs.FS) rendertemplate.TemplateRenderer {
	options := make([]gotemplate.Option, 0, len(extra)+1)
	for _, files := range extra {
		options = append(options, gotemplate.WithFS(files))
	}
	options = append(options, gotemplate.WithFS(TemplatesFS()))
	engine, err := gotemplate.New(options...)
	if err != nil {
		panic(fmt.Errorf("widgets: configure template engine: %w", err))
	}
	return engine
}
