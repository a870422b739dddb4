package widgets

import (
	"slices"
	"strings"

	"github.com/mohae/deepcopy"
)

// Buttons lays out the editor toolbar: rows of groups of button names.
type Buttons [][][]string

// DefaultButtons returns a fresh copy of the default three-row toolbar.
func DefaultButtons() Buttons {
	return Buttons{
		{
			{"undo", "redo"},
			{"styleselect"},
			{"bold", "italic"},
		},
		{
			{"bullist", "numlist", "outdent", "indent"},
			{"table"},
			{"link", "unlink"},
		},
		{
			{"wagtaildoclink", "wagtailimage", "wagtailembed"},
			{"pastetext", "fullscreen"},
		},
	}
}

// Clone deep-copies the layout. The clone of a nil layout is an empty,
// non-nil layout.
func (b Buttons) Clone() Buttons {
	out := make(Buttons, 0, len(b))
	for _, row := range b {
		groups := make([][]string, 0, len(row))
		for _, group := range row {
			groups = append(groups, slices.Clone(group))
		}
		out = append(out, groups)
	}
	return out
}

// Toolbar renders each row as its groups joined by " | ", with the buttons of
// a group joined by a single space.
func (b Buttons) Toolbar() []string {
	rows := make([]string, 0, len(b))
	for _, row := range b {
		groups := make([]string, 0, len(row))
		for _, group := range row {
			groups = append(groups, strings.Join(group, " "))
		}
		rows = append(rows, strings.Join(groups, " | "))
	}
	return rows
}

type menusMode int

const (
	menusDefault menusMode = iota
	menusDisabled
	menusList
)

// Menus selects the editor menubar: the editor's built-in default, disabled,
// or an explicit list of menu ids.
type Menus struct {
	mode menusMode
	ids  []string
}

// MenusDefault leaves the menubar to the editor's built-in configuration.
func MenusDefault() Menus {
	return Menus{}
}

// MenusDisabled turns the menubar off.
func MenusDisabled() Menus {
	return Menus{mode: menusDisabled}
}

// MenuList shows the given menus in order.
func MenuList(ids ...string) Menus {
	return Menus{mode: menusList, ids: slices.Clone(ids)}
}

// IsDefault reports whether the editor default applies.
func (m Menus) IsDefault() bool { return m.mode == menusDefault }

// IsDisabled reports whether the menubar is turned off.
func (m Menus) IsDisabled() bool { return m.mode == menusDisabled }

// IDs returns a copy of the configured menu ids.
func (m Menus) IDs() []string { return slices.Clone(m.ids) }

func (m Menus) clone() Menus {
	return Menus{mode: m.mode, ids: slices.Clone(m.ids)}
}

// menubar returns the value for the `menubar` init argument and whether it
// should be set at all.
func (m Menus) menubar() (any, bool) {
	switch {
	case m.mode == menusDisabled:
		return false, true
	case m.mode == menusList && len(m.ids) > 0:
		return strings.Join(m.ids, " "), true
	default:
		return nil, false
	}
}

// DefaultOptions returns a fresh copy of the built-in editor options.
func DefaultOptions() map[string]any {
	return map[string]any{
		"browser_spellcheck":                true,
		"noneditable_leave_contenteditable": true,
		"language_load":                     true,
	}
}

// mergeOptions overlays overrides onto base key by key. Nested values are
// replaced wholesale, never merged.
func mergeOptions(base, overrides map[string]any) map[string]any {
	out := cloneOptions(base)
	for key, value := range cloneOptions(overrides) {
		out[key] = value
	}
	return out
}

func cloneOptions(src map[string]any) map[string]any {
	if src == nil {
		return map[string]any{}
	}
	copied, ok := deepcopy.Copy(src).(map[string]any)
	if !ok || copied == nil {
		return map[string]any{}
	}
	return copied
}

func cloneAttrs(src map[string]string) map[string]string {
	out := make(map[string]string, len(src))
	for key, value := range src {
		out[key] = value
	}
	return out
}
