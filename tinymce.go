package tinymce

import (
	"fmt"

	"github.com/goliatone/go-formgen-tinymce/pkg/config"
	"github.com/goliatone/go-formgen-tinymce/pkg/panels"
	"github.com/goliatone/go-formgen-tinymce/pkg/richtext"
	"github.com/goliatone/go-formgen-tinymce/pkg/widgets"
)

// RichTextArea aliases the TinyMCE widget so callers can stay on the root
// package for the common cases.
type RichTextArea = widgets.RichTextArea

// Option configures a RichTextArea.
type Option = widgets.Option

// Converter aliases the storage/editor HTML converter contract.
type Converter = richtext.Converter

// Panel aliases the admin panel descriptor returned by RichTextArea.Panel.
type Panel = panels.Panel

// New builds a TinyMCE widget with the supplied options.
func New(options ...Option) *RichTextArea {
	return widgets.NewRichTextArea(options...)
}

// NewFromConfig builds the named editor from a configuration document. extra
// options are applied after the document's, so they win.
func NewFromConfig(doc *config.Document, editor string, extra ...Option) (*RichTextArea, error) {
	cfg, err := doc.Editor(editor)
	if err != nil {
		return nil, fmt.Errorf("tinymce: %w", err)
	}
	options := append(cfg.WidgetOptions(), extra...)
	return widgets.NewRichTextArea(options...), nil
}
