// Package widgets provides form widgets rendered through the template seam.
//
// Textarea is the plain multi-line input. RichTextArea wraps it with the
// TinyMCE editor: on render it converts stored HTML into editor HTML through a
// richtext.Converter, it emits the `makeTinyMCEEditable(id, options);` call that
// boots the editor with the configured toolbar, menus and options, and on
// submit it converts the editor HTML back into whitelisted storage HTML.
//
// Widgets are configured once at construction and are read-only afterwards,
// so a single instance can serve concurrent requests.
package widgets
