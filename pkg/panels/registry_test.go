package panels_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formgen-tinymce/pkg/panels"
)

func TestDefaultRegistryResolvesRichText(t *testing.T) {
	registry := panels.Default()

	panel, err := registry.Get(" RichText ")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if diff := cmp.Diff(panels.RichTextFieldPanel, panel); diff != "" {
		t.Fatalf("panel mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"richtext", "text"}, registry.List()); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistryRejectsDuplicatesAndBlanks(t *testing.T) {
	registry := panels.NewRegistry()
	if err := registry.Register("markdown", panels.FieldPanel); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := registry.Register("markdown", panels.FieldPanel); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if err := registry.Register(" ", panels.FieldPanel); err == nil {
		t.Fatalf("expected blank kind to fail")
	}
	if err := registry.Register("x", panels.Panel{}); err == nil {
		t.Fatalf("expected unnamed panel to fail")
	}
}

func TestRegistryGetMissing(t *testing.T) {
	_, err := panels.NewRegistry().Get("richtext")
	if !errors.Is(err, panels.ErrPanelNotFound) {
		t.Fatalf("expected ErrPanelNotFound, got %v", err)
	}
}
