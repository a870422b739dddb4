package tinymce

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-formgen-tinymce/pkg/config"
	"github.com/goliatone/go-formgen-tinymce/pkg/widgets"
)

func TestAssetsFSContainsInitializer(t *testing.T) {
	data, err := fs.ReadFile(AssetsFS(), widgets.InitScriptName)
	if err != nil {
		t.Fatalf("expected initializer script to be readable: %v", err)
	}
	if !strings.Contains(string(data), "window.makeTinyMCEEditable") {
		t.Fatalf("expected script to export makeTinyMCEEditable")
	}
}

func TestEmbeddedTemplatesContainsTextarea(t *testing.T) {
	if _, err := fs.Stat(EmbeddedTemplates(), widgets.TextareaTemplate); err != nil {
		t.Fatalf("expected textarea template: %v", err)
	}
}

func TestNewFromConfigAppliesExtraOptionsLast(t *testing.T) {
	doc, err := ParseConfig([]byte("initializer: fromFile\nmenus: false\n"), "inline.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	w, err := NewFromConfig(doc, "", widgets.WithInitializer("fromCode"))
	if err != nil {
		t.Fatalf("new from config: %v", err)
	}
	if w.Initializer() != "fromCode" {
		t.Fatalf("expected extra option to win, got %q", w.Initializer())
	}
	if w.InitArguments()["menubar"] != false {
		t.Fatalf("expected menubar false from config")
	}

	if _, err := NewFromConfig(doc, "other"); !errors.Is(err, config.ErrEditorNotFound) {
		t.Fatalf("expected ErrEditorNotFound, got %v", err)
	}
}
