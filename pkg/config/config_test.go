package config_test

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formgen-tinymce/pkg/config"
	"github.com/goliatone/go-formgen-tinymce/pkg/richtext"
	"github.com/goliatone/go-formgen-tinymce/pkg/widgets"
)

const singleEditor = `
initializer: bootEditor
host_version: "2.16"
language: de-de
attrs:
  class: rich
buttons:
  - [[undo, redo], [bold, italic]]
  - [[link]]
menus: [tools, format]
options:
  height: 300
  browser_spellcheck: false
features: [bold, italic, link]
`

func TestParseSingleEditor(t *testing.T) {
	doc, err := config.Parse([]byte(singleEditor), "editor.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff([]string{config.DefaultEditor}, doc.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	cfg, err := doc.Editor("")
	if err != nil {
		t.Fatalf("editor: %v", err)
	}
	w := widgets.NewRichTextArea(cfg.WidgetOptions()...)

	if w.Initializer() != "bootEditor" {
		t.Fatalf("expected initializer bootEditor, got %q", w.Initializer())
	}
	args := w.InitArguments()
	want := map[string]any{
		"browser_spellcheck":                false,
		"noneditable_leave_contenteditable": true,
		"language_load":                     true,
		"height":                            300,
		"language":                          "de_DE",
		"toolbar":                           []string{"undo redo | bold italic", "link"},
		"menubar":                           "tools format",
	}
	if diff := cmp.Diff(want, args); diff != "" {
		t.Fatalf("init arguments mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]string{"class": "rich"}, w.Attrs()); diff != "" {
		t.Fatalf("attrs mismatch (-want +got):\n%s", diff)
	}
	wantFeatures := []richtext.Feature{richtext.FeatureBold, richtext.FeatureItalic, richtext.FeatureLink}
	if diff := cmp.Diff(wantFeatures, w.Features().List()); diff != "" {
		t.Fatalf("features mismatch (-want +got):\n%s", diff)
	}
}

func TestParseNamedEditors(t *testing.T) {
	doc, err := config.Parse([]byte(`
editors:
  default:
    menus: false
  minimal:
    buttons: []
    features: []
    menus: "edit view"
`), "editors.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff([]string{"default", "minimal"}, doc.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	def, err := doc.Editor("default")
	if err != nil {
		t.Fatalf("default editor: %v", err)
	}
	if !def.Menus.Menus().IsDisabled() {
		t.Fatalf("expected menus disabled")
	}

	minimal, err := doc.Editor("minimal")
	if err != nil {
		t.Fatalf("minimal editor: %v", err)
	}
	w := widgets.NewRichTextArea(minimal.WidgetOptions()...)
	args := w.InitArguments()
	if args["toolbar"] != false {
		t.Fatalf("expected toolbar disabled, got %#v", args["toolbar"])
	}
	if args["menubar"] != "edit view" {
		t.Fatalf("expected menubar from string, got %#v", args["menubar"])
	}
	if w.Features().Len() != 0 {
		t.Fatalf("expected no features, got %v", w.Features().List())
	}

	if _, err := doc.Editor("missing"); !errors.Is(err, config.ErrEditorNotFound) {
		t.Fatalf("expected ErrEditorNotFound, got %v", err)
	}
}

func TestWidgetOptionsLeaveDefaultsForAbsentKeys(t *testing.T) {
	doc, err := config.Parse([]byte(`{"options": {"height": 200}}`), "editor.json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg, _ := doc.Editor("")

	args := widgets.NewRichTextArea(cfg.WidgetOptions()...).InitArguments()
	if _, ok := args["menubar"]; ok {
		t.Fatalf("expected menubar to be unset")
	}
	if diff := cmp.Diff(widgets.DefaultButtons().Toolbar(), args["toolbar"]); diff != "" {
		t.Fatalf("toolbar mismatch (-want +got):\n%s", diff)
	}
	if args["height"] != 200 {
		t.Fatalf("expected height 200, got %#v", args["height"])
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := config.Parse([]byte("  \n"), "blank.yaml"); !errors.Is(err, config.ErrEmptyConfig) {
		t.Fatalf("expected ErrEmptyConfig, got %v", err)
	}
	if _, err := config.Parse([]byte("- a\n- b\n"), "list.yaml"); err == nil {
		t.Fatalf("expected error for non-mapping document")
	}
	if _, err := config.Parse([]byte("features: [bold, marquee]\n"), "bad.yaml"); err == nil {
		t.Fatalf("expected error for unknown feature")
	}
	if _, err := config.Parse([]byte("menus: {a: b}\n"), "menus.yaml"); err == nil {
		t.Fatalf("expected error for mapping menus")
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"config/tinymce.yaml": {Data: []byte("media:\n  scripts: [/assets/tinymce.js]\n  stylesheets: [/assets/editor.css]\n")},
	}

	doc, err := config.LoadFS(fsys, "config/tinymce.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg, _ := doc.Editor("")
	media := widgets.NewRichTextArea(cfg.WidgetOptions()...).Media()
	want := widgets.Media{
		Stylesheets: []string{"/assets/editor.css"},
		Scripts:     []widgets.Script{{Src: "/assets/tinymce.js", Attrs: map[string]string{}}},
	}
	if diff := cmp.Diff(want, media); diff != "" {
		t.Fatalf("media mismatch (-want +got):\n%s", diff)
	}

	if _, err := config.LoadFS(fsys, "missing.yaml"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
