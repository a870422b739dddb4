package richtext_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/goliatone/go-formgen-tinymce/pkg/richtext"
)

func staticResolver(urls map[string]string) richtext.Resolver {
	return richtext.ResolverFunc(func(_ richtext.EntityKind, entityType, id string) (string, error) {
		return urls[entityType+":"+id], nil
	})
}

func TestUsesEditorHTML(t *testing.T) {
	cases := map[string]bool{
		"2.0":     true,
		"2.16.1":  true,
		"10.0":    true,
		"v2.3":    true,
		"1.13":    false,
		"v1.9":    false,
		"":        true,
		"garbage": true,
	}
	for version, want := range cases {
		if got := richtext.UsesEditorHTML(version); got != want {
			t.Fatalf("UsesEditorHTML(%q): want %v, got %v", version, want, got)
		}
	}
}

func TestNewConverterSelectsVariantOnce(t *testing.T) {
	if _, ok := richtext.NewConverter("2.4", richtext.DefaultFeatures()).(*richtext.EditorHTMLConverter); !ok {
		t.Fatalf("expected editor HTML converter for 2.4")
	}
	if _, ok := richtext.NewConverter("1.13", richtext.DefaultFeatures()).(*richtext.LegacyConverter); !ok {
		t.Fatalf("expected legacy converter for 1.13")
	}
}

func TestEditorHTMLToDisplayExpandsPageLinks(t *testing.T) {
	conv := richtext.NewEditorHTMLConverter(richtext.DefaultFeatures(),
		richtext.WithResolver(staticResolver(map[string]string{"page:3": "/pages/3/"})),
	)

	got, err := conv.ToDisplay(`<p>See <a linktype="page" id="3">home</a></p>`)
	if err != nil {
		t.Fatalf("to display: %v", err)
	}
	want := `<p>See <a data-id="3" data-linktype="page" href="/pages/3/">home</a></p>`
	if got != want {
		t.Fatalf("display mismatch\nwant: %s\n got: %s", want, got)
	}
}

func TestEditorHTMLToDisplayExpandsImageEmbeds(t *testing.T) {
	conv := richtext.NewEditorHTMLConverter(richtext.DefaultFeatures())

	got, err := conv.ToDisplay(`<embed embedtype="image" id="7" format="left" alt="A cat"/>`)
	if err != nil {
		t.Fatalf("to display: %v", err)
	}
	want := `<img alt="A cat" data-alt="A cat" data-embedtype="image" data-format="left" data-id="7"/>`
	if got != want {
		t.Fatalf("display mismatch\nwant: %s\n got: %s", want, got)
	}
}

func TestEditorHTMLToDisplayUnwrapsDisabledLinkTypes(t *testing.T) {
	conv := richtext.NewEditorHTMLConverter(richtext.NewFeatureSet(richtext.FeatureBold))

	got, err := conv.ToDisplay(`<p><a linktype="page" id="3">home</a></p>`)
	if err != nil {
		t.Fatalf("to display: %v", err)
	}
	if got != `<p>home</p>` {
		t.Fatalf("expected disabled link to be unwrapped, got %s", got)
	}
}

func TestEditorHTMLToDisplayPropagatesResolverErrors(t *testing.T) {
	boom := errors.New("lookup failed")
	conv := richtext.NewEditorHTMLConverter(richtext.DefaultFeatures(),
		richtext.WithResolver(richtext.ResolverFunc(func(richtext.EntityKind, string, string) (string, error) {
			return "", boom
		})),
	)

	_, err := conv.ToDisplay(`<a linktype="document" id="9">doc</a>`)
	if !errors.Is(err, boom) {
		t.Fatalf("expected resolver error, got %v", err)
	}
}

func TestEditorHTMLToStorageContractsEntities(t *testing.T) {
	conv := richtext.NewEditorHTMLConverter(richtext.DefaultFeatures())

	got, err := conv.ToStorage(`<p>See <a data-id="3" data-linktype="page" href="/pages/3/">home</a></p>`)
	if err != nil {
		t.Fatalf("to storage: %v", err)
	}
	if want := `<p>See <a id="3" linktype="page">home</a></p>`; got != want {
		t.Fatalf("storage mismatch\nwant: %s\n got: %s", want, got)
	}

	got, err = conv.ToStorage(`<img alt="A cat" data-alt="A cat" data-embedtype="image" data-format="left" data-id="7" src="/img/7.jpg">`)
	if err != nil {
		t.Fatalf("to storage: %v", err)
	}
	if want := `<embed alt="A cat" embedtype="image" format="left" id="7"/>`; got != want {
		t.Fatalf("storage mismatch\nwant: %s\n got: %s", want, got)
	}
}

func TestEditorHTMLToStorageWhitelistsByFeature(t *testing.T) {
	conv := richtext.NewEditorHTMLConverter(richtext.NewFeatureSet(richtext.FeatureBold))

	got, err := conv.ToStorage(`<p><b>x</b><i>y</i><a href="http://example.com">z</a></p><script>alert(1)</script>`)
	if err != nil {
		t.Fatalf("to storage: %v", err)
	}
	if want := `<p><b>x</b>yz</p>`; got != want {
		t.Fatalf("storage mismatch\nwant: %s\n got: %s", want, got)
	}

	got, err = conv.ToStorage(`<p>a</p><img data-embedtype="image" data-id="7">`)
	if err != nil {
		t.Fatalf("to storage: %v", err)
	}
	if got != `<p>a</p>` {
		t.Fatalf("expected disabled embed to be dropped, got %s", got)
	}
}

func TestEditorHTMLToStorageKeepsExternalLinks(t *testing.T) {
	conv := richtext.NewEditorHTMLConverter(richtext.DefaultFeatures())

	got, err := conv.ToStorage(`<p><a href="https://example.com/" onclick="x()">ext</a></p>`)
	if err != nil {
		t.Fatalf("to storage: %v", err)
	}
	if want := `<p><a href="https://example.com/">ext</a></p>`; got != want {
		t.Fatalf("storage mismatch\nwant: %s\n got: %s", want, got)
	}
}

func TestLegacyConverterIgnoresFeatures(t *testing.T) {
	conv := richtext.NewConverter("1.13", richtext.NewFeatureSet(richtext.FeatureBold))

	got, err := conv.ToStorage(`<h5>t</h5><blockquote>q</blockquote>`)
	if err != nil {
		t.Fatalf("to storage: %v", err)
	}
	if want := `<h5>t</h5><blockquote>q</blockquote>`; got != want {
		t.Fatalf("storage mismatch\nwant: %s\n got: %s", want, got)
	}

	display, err := conv.ToDisplay(`<a linktype="page" id="1">x</a>`)
	if err != nil {
		t.Fatalf("to display: %v", err)
	}
	if want := `<a data-id="1" data-linktype="page">x</a>`; display != want {
		t.Fatalf("display mismatch\nwant: %s\n got: %s", want, display)
	}
}

func TestConvertersHandleEmptyInput(t *testing.T) {
	for _, conv := range []richtext.Converter{
		richtext.NewEditorHTMLConverter(richtext.DefaultFeatures()),
		richtext.NewLegacyConverter(),
	} {
		if got, err := conv.ToDisplay(""); err != nil || got != "" {
			t.Fatalf("expected empty display, got %q (%v)", got, err)
		}
		if got, err := conv.ToStorage(""); err != nil || got != "" {
			t.Fatalf("expected empty storage, got %q (%v)", got, err)
		}
	}
}

func TestCustomHandlersReplaceDefaults(t *testing.T) {
	handlers := richtext.NewHandlers(richtext.AttributeHandler{
		EntityKind: richtext.EntityLink,
		EntityType: "product",
		Gate:       richtext.FeatureLink,
		Attributes: []string{"id", "sku"},
	})
	conv := richtext.NewEditorHTMLConverter(richtext.DefaultFeatures(), richtext.WithHandlers(handlers))

	display, err := conv.ToDisplay(`<a linktype="product" id="4" sku="X1">buy</a><a linktype="page" id="2">gone</a>`)
	if err != nil {
		t.Fatalf("to display: %v", err)
	}
	if want := `<a data-id="4" data-linktype="product" data-sku="X1">buy</a>gone`; display != want {
		t.Fatalf("display mismatch\nwant: %s\n got: %s", want, display)
	}

	stored, err := conv.ToStorage(display)
	if err != nil {
		t.Fatalf("to storage: %v", err)
	}
	if want := `<a id="4" linktype="product" sku="X1">buy</a>gone`; stored != want {
		t.Fatalf("storage mismatch\nwant: %s\n got: %s", want, stored)
	}
}

func TestCustomEmbedAttributesSurviveStorage(t *testing.T) {
	handlers := richtext.DefaultHandlers()
	handlers.Register(richtext.AttributeHandler{
		EntityKind: richtext.EntityEmbed,
		EntityType: "chart",
		Gate:       richtext.FeatureEmbed,
		Attributes: []string{"dataset", "kind"},
	})
	conv := richtext.NewEditorHTMLConverter(richtext.DefaultFeatures(), richtext.WithHandlers(handlers))

	got, err := conv.ToStorage(`<img data-embedtype="chart" data-dataset="sales" data-kind="bar" data-extra="x">`)
	if err != nil {
		t.Fatalf("to storage: %v", err)
	}
	if want := `<embed dataset="sales" embedtype="chart" kind="bar"/>`; got != want {
		t.Fatalf("storage mismatch\nwant: %s\n got: %s", want, got)
	}
}

func TestHandlersConcurrentRegisterAndConvert(t *testing.T) {
	handlers := richtext.DefaultHandlers()
	conv := richtext.NewEditorHTMLConverter(richtext.DefaultFeatures(), richtext.WithHandlers(handlers))

	var wg sync.WaitGroup
	for idx := 0; idx < 8; idx++ {
		wg.Add(2)
		go func(idx int) {
			defer wg.Done()
			handlers.Register(richtext.AttributeHandler{
				EntityKind: richtext.EntityLink,
				EntityType: fmt.Sprintf("kind%d", idx),
				Gate:       richtext.FeatureLink,
				Attributes: []string{"id"},
			})
		}(idx)
		go func() {
			defer wg.Done()
			if _, err := conv.ToStorage(`<a data-linktype="page" data-id="1">x</a>`); err != nil {
				t.Errorf("to storage: %v", err)
			}
		}()
	}
	wg.Wait()

	if _, ok := handlers.Lookup(richtext.EntityLink, "kind7"); !ok {
		t.Fatalf("expected kind7 handler to be registered")
	}
}
