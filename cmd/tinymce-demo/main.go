package main

import (
	"embed"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	tinymce "github.com/goliatone/go-formgen-tinymce"
	"github.com/goliatone/go-formgen-tinymce/pkg/locale"
	rendertemplate "github.com/goliatone/go-formgen-tinymce/pkg/render/template"
	"github.com/goliatone/go-formgen-tinymce/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formgen-tinymce/pkg/richtext"
	"github.com/goliatone/go-formgen-tinymce/pkg/widgets"
)

//go:embed templates/*.tmpl
var pageTemplates embed.FS

const (
	fieldName = "body"
	fieldID   = "id_body"
)

// documentStore keeps the single demo document in memory.
type documentStore struct {
	mu   sync.RWMutex
	body string
}

func (s *documentStore) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.body
}

func (s *documentStore) Set(body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.body = body
}

type server struct {
	widget  *widgets.RichTextArea
	pages   rendertemplate.TemplateRenderer
	store   *documentStore
	lang    string
	origins []string
}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	configPath := flag.String("config", "", "editor configuration file (YAML or JSON)")
	editor := flag.String("editor", "", "editor name inside the configuration file")
	lang := flag.String("lang", locale.DefaultLanguage, "editor UI language")
	tinymceDir := flag.String("tinymce-dir", "", "directory holding the TinyMCE distribution (served at /static/tinymce)")
	allowOrigin := flag.String("allow-origin", "", "comma separated origins allowed to post the form")
	flag.Parse()

	langSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "lang" {
			langSet = true
		}
	})

	widget, err := buildWidget(*configPath, *editor, *lang, langSet)
	if err != nil {
		log.Fatalf("Failed to build widget: %v", err)
	}
	run(*addr, *tinymceDir, *allowOrigin, widget, *lang)
}

// buildWidget applies the -lang locale only when the flag was given so a
// configured `language` key is not overridden by the flag default.
func buildWidget(configPath, editor, lang string, langSet bool) (*widgets.RichTextArea, error) {
	options := []widgets.Option{widgets.WithResolver(demoResolver())}
	if langSet || configPath == "" {
		options = append(options, widgets.WithLocaleProvider(locale.Static(lang)))
	}
	if configPath == "" {
		return tinymce.New(options...), nil
	}
	doc, err := tinymce.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return tinymce.NewFromConfig(doc, editor, options...)
}

func run(addr, tinymceDir, allowOrigin string, widget *widgets.RichTextArea, lang string) {
	pages, err := gotemplate.New(gotemplate.WithFS(pageTemplates))
	if err != nil {
		log.Fatalf("Failed to configure templates: %v", err)
	}
	srv := &server{
		widget: widget,
		pages:  pages,
		store:  &documentStore{body: `<p>Welcome to the <b>demo</b>.</p>`},
		lang:   lang,
	}
	for _, origin := range strings.Split(allowOrigin, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			srv.origins = append(srv.origins, origin)
		}
	}

	r := newRouter(srv)
	if tinymceDir != "" {
		r.Static("/static/tinymce", tinymceDir)
	}
	log.Printf("tinymce demo listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func newRouter(srv *server) *gin.Engine {
	r := gin.Default()
	if len(srv.origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: srv.origins,
			AllowMethods: []string{http.MethodGet, http.MethodPost},
			AllowHeaders: []string{"Content-Type"},
		}))
	}
	r.StaticFS("/static/tinymce-widget", http.FS(tinymce.AssetsFS()))
	r.GET("/", srv.showForm)
	r.POST("/", srv.saveForm)
	r.GET("/stored", srv.showStored)
	return r
}

func (s *server) showForm(c *gin.Context) {
	stored := s.store.Get()
	field, err := s.widget.RenderWithScript(fieldName, stored, map[string]string{"id": fieldID})
	if err != nil {
		c.String(http.StatusInternalServerError, "render field: %v", err)
		return
	}
	page, err := s.pages.RenderTemplate("templates/page", map[string]any{
		"title":    "Rich text demo",
		"lang":     s.lang,
		"label":    "Body",
		"field_id": fieldID,
		"field":    field,
		"media":    s.widget.Media().HTML(),
		"stored":   stored,
	})
	if err != nil {
		c.String(http.StatusInternalServerError, "render page: %v", err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

func (s *server) saveForm(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "parse form: %v", err)
		return
	}
	value, ok, err := s.widget.ValueFromForm(c.Request.PostForm, nil, fieldName)
	if err != nil {
		c.String(http.StatusUnprocessableEntity, "invalid rich text: %v", err)
		return
	}
	if ok {
		s.store.Set(value)
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *server) showStored(c *gin.Context) {
	c.String(http.StatusOK, s.store.Get())
}

// demoResolver points page and document links at predictable admin URLs and
// images at a placeholder renderer.
func demoResolver() richtext.Resolver {
	return richtext.ResolverFunc(func(kind richtext.EntityKind, entityType, id string) (string, error) {
		switch {
		case kind == richtext.EntityLink && entityType == "page":
			return fmt.Sprintf("/pages/%s/", id), nil
		case kind == richtext.EntityLink && entityType == "document":
			return fmt.Sprintf("/documents/%s/", id), nil
		case kind == richtext.EntityEmbed && entityType == "image":
			return fmt.Sprintf("/images/%s/preview", id), nil
		default:
			return "", nil
		}
	})
}
