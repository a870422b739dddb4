package widgets

import (
	"errors"
	"testing"

	"github.com/goliatone/go-formgen-tinymce/pkg/panels"
)

func TestResolve_ExplicitWidgetWins(t *testing.T) {
	reg := NewRegistry()
	field := Field{
		Kind:  panels.KindRichText,
		Hints: map[string]string{"widget": "custom-editor"},
	}

	if got, ok := reg.Resolve(field); !ok || got != "custom-editor" {
		t.Fatalf("expected explicit widget to win, got %q (ok=%v)", got, ok)
	}
}

func TestResolve_Builtins(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		name   string
		field  Field
		expect string
		ok     bool
	}{
		{name: "richtext kind", field: Field{Kind: panels.KindRichText}, expect: WidgetTinyMCE, ok: true},
		{name: "text with html format", field: Field{Kind: panels.KindText, Format: "HTML"}, expect: WidgetTinyMCE, ok: true},
		{name: "plain text", field: Field{Kind: panels.KindText}, expect: WidgetTextarea, ok: true},
		{name: "unknown kind", field: Field{Kind: "number"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := reg.Resolve(tc.field)
			if ok != tc.ok || got != tc.expect {
				t.Fatalf("expected %q (ok=%v), got %q (ok=%v)", tc.expect, tc.ok, got, ok)
			}
		})
	}
}

func TestRegister_PriorityAndLatestWins(t *testing.T) {
	reg := NewRegistry()
	reg.Register("markdown", 95, func(field Field) bool { return field.Format == "markdown" })
	reg.Register("first", 5, func(Field) bool { return true })
	reg.Register("second", 5, func(Field) bool { return true })

	if got, _ := reg.Resolve(Field{Kind: panels.KindText, Format: "markdown"}); got != "markdown" {
		t.Fatalf("expected higher priority matcher, got %q", got)
	}
	if got, _ := reg.Resolve(Field{Kind: "number"}); got != "second" {
		t.Fatalf("expected latest registration to win ties, got %q", got)
	}
}

func TestBuild(t *testing.T) {
	reg := NewRegistry()

	widget, err := reg.Build(Field{Name: "body", Kind: panels.KindRichText})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, ok := widget.(*RichTextArea); !ok {
		t.Fatalf("expected rich text widget, got %T", widget)
	}

	widget, err = reg.Build(Field{Name: "notes", Kind: panels.KindText}, WithAttrs(map[string]string{"rows": "3"}))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	textarea, ok := widget.(*Textarea)
	if !ok {
		t.Fatalf("expected textarea, got %T", widget)
	}
	if textarea.BuildAttrs(nil)["rows"] != "3" {
		t.Fatalf("expected attrs to apply, got %v", textarea.BuildAttrs(nil))
	}

	if _, err := reg.Build(Field{Name: "age", Kind: "number"}); !errors.Is(err, ErrUnknownWidget) {
		t.Fatalf("expected ErrUnknownWidget, got %v", err)
	}
	if _, err := reg.Build(Field{Name: "x", Hints: map[string]string{"widget": "nope"}}); !errors.Is(err, ErrUnknownWidget) {
		t.Fatalf("expected ErrUnknownWidget for unknown hint, got %v", err)
	}
}

func TestTextareaValueFromForm(t *testing.T) {
	textarea := NewTextarea(nil, nil)

	if _, ok, _ := textarea.ValueFromForm(nil, nil, "body"); ok {
		t.Fatalf("expected absent value for nil data")
	}
	got, ok, err := textarea.ValueFromForm(map[string][]string{"body": {"a", "b"}}, nil, "body")
	if err != nil || !ok || got != "b" {
		t.Fatalf("expected last value, got %q ok=%v err=%v", got, ok, err)
	}
}
