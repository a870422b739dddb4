// Package config loads rich-text widget configuration from YAML (or JSON)
// documents and turns it into widget options.
//
// A document either describes a single editor:
//
//	host_version: "2.16"
//	language: de-de
//	buttons: [[[undo, redo], [bold, italic]]]
//	menus: false
//	options: {height: 300}
//	features: [bold, italic, link]
//
// or several named editors under an `editors` key, in which case the editor
// called `default` is used when no name is given.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formgen-tinymce/pkg/locale"
	"github.com/goliatone/go-formgen-tinymce/pkg/richtext"
	"github.com/goliatone/go-formgen-tinymce/pkg/widgets"
)

// DefaultEditor names the editor used when a document defines a single one or
// callers ask for an empty name.
const DefaultEditor = "default"

// ErrEmptyConfig is returned for documents without any content.
var ErrEmptyConfig = errors.New("config: empty configuration")

// ErrEditorNotFound is returned when a named editor is missing.
var ErrEditorNotFound = errors.New("config: editor not found")

// Config describes one rich-text editor.
type Config struct {
	Initializer string            `yaml:"initializer"`
	HostVersion string            `yaml:"host_version"`
	Language    string            `yaml:"language"`
	Attrs       map[string]string `yaml:"attrs"`
	Buttons     *widgets.Buttons  `yaml:"buttons"`
	Menus       MenuSetting       `yaml:"menus"`
	Options     map[string]any    `yaml:"options"`
	Features    *[]string         `yaml:"features"`
	Media       *MediaConfig      `yaml:"media"`
}

// MediaConfig lists asset URLs that replace the default editor assets.
type MediaConfig struct {
	Scripts     []string `yaml:"scripts"`
	Stylesheets []string `yaml:"stylesheets"`
}

// MenuSetting accepts `false` (disabled), a list or space separated string of
// menu ids, or nothing at all (editor default). `true` is the editor default.
type MenuSetting struct {
	menus widgets.Menus
}

// Menus returns the widget menus value.
func (m MenuSetting) Menus() widgets.Menus {
	return m.menus
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *MenuSetting) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() == "!!null" {
			m.menus = widgets.MenusDefault()
			return nil
		}
		if node.ShortTag() == "!!bool" {
			var enabled bool
			if err := node.Decode(&enabled); err != nil {
				return err
			}
			if enabled {
				m.menus = widgets.MenusDefault()
			} else {
				m.menus = widgets.MenusDisabled()
			}
			return nil
		}
		m.menus = widgets.MenuList(strings.Fields(node.Value)...)
		return nil
	case yaml.SequenceNode:
		var ids []string
		if err := node.Decode(&ids); err != nil {
			return err
		}
		m.menus = widgets.MenuList(ids...)
		return nil
	default:
		return fmt.Errorf("config: menus must be false, a list or a string (line %d)", node.Line)
	}
}

// Document holds every editor defined by a configuration source.
type Document struct {
	Source  string
	editors map[string]Config
}

// Editor returns the named editor. An empty name selects DefaultEditor.
func (d *Document) Editor(name string) (Config, error) {
	key := strings.TrimSpace(name)
	if key == "" {
		key = DefaultEditor
	}
	if d == nil {
		return Config{}, fmt.Errorf("%w: %q", ErrEditorNotFound, key)
	}
	cfg, ok := d.editors[key]
	if !ok {
		return Config{}, fmt.Errorf("%w: %q", ErrEditorNotFound, key)
	}
	return cfg, nil
}

// Names lists the defined editors in sorted order.
func (d *Document) Names() []string {
	if d == nil {
		return nil
	}
	names := make([]string, 0, len(d.editors))
	for name := range d.editors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadFile reads and parses a configuration file from disk.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFS reads and parses a configuration file from fsys.
func LoadFS(fsys fs.FS, path string) (*Document, error) {
	if fsys == nil {
		return nil, fmt.Errorf("config: read %s: nil filesystem", path)
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes a YAML or JSON document. source is only used in errors.
func Parse(data []byte, source string) (*Document, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyConfig, source)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", source, err)
	}
	if len(root.Content) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyConfig, source)
	}
	body := root.Content[0]
	if body.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("config: parse %s: expected a mapping at the top level", source)
	}

	editors := make(map[string]Config)
	if hasKey(body, "editors") {
		var file struct {
			Editors map[string]Config `yaml:"editors"`
		}
		if err := body.Decode(&file); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", source, err)
		}
		for name, cfg := range file.Editors {
			key := strings.TrimSpace(name)
			if key == "" {
				return nil, fmt.Errorf("config: file %s defines an editor with an empty name", source)
			}
			editors[key] = cfg
		}
	} else {
		var cfg Config
		if err := body.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", source, err)
		}
		editors[DefaultEditor] = cfg
	}

	for name, cfg := range editors {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("config: %s: editor %q: %w", source, name, err)
		}
	}
	return &Document{Source: source, editors: editors}, nil
}

// Validate rejects unknown feature names.
func (c Config) Validate() error {
	if c.Features == nil {
		return nil
	}
	for _, name := range *c.Features {
		if !richtext.IsKnown(richtext.Feature(strings.ToLower(strings.TrimSpace(name)))) {
			return fmt.Errorf("unknown feature %q", name)
		}
	}
	return nil
}

// WidgetOptions converts the configuration into widget options. Keys that are
// absent leave the widget defaults in place.
func (c Config) WidgetOptions() []widgets.Option {
	var options []widgets.Option
	if c.Initializer != "" {
		options = append(options, widgets.WithInitializer(c.Initializer))
	}
	if c.HostVersion != "" {
		options = append(options, widgets.WithHostVersion(c.HostVersion))
	}
	if c.Language != "" {
		options = append(options, widgets.WithLocaleProvider(locale.Static(c.Language)))
	}
	if len(c.Attrs) > 0 {
		options = append(options, widgets.WithAttrs(c.Attrs))
	}
	if c.Buttons != nil {
		options = append(options, widgets.WithButtons(*c.Buttons))
	}
	if !c.Menus.menus.IsDefault() {
		options = append(options, widgets.WithMenus(c.Menus.menus))
	}
	if len(c.Options) > 0 {
		options = append(options, widgets.WithOptions(c.Options))
	}
	if c.Features != nil {
		options = append(options, widgets.WithFeatureSet(richtext.ParseFeatures(*c.Features)))
	}
	if c.Media != nil {
		media := widgets.Media{Stylesheets: slices.Clone(c.Media.Stylesheets)}
		for _, src := range c.Media.Scripts {
			media.Scripts = append(media.Scripts, widgets.Script{Src: src})
		}
		options = append(options, widgets.WithMedia(media))
	}
	return options
}

func hasKey(mapping *yaml.Node, key string) bool {
	for idx := 0; idx+1 < len(mapping.Content); idx += 2 {
		if mapping.Content[idx].Value == key {
			return true
		}
	}
	return false
}
