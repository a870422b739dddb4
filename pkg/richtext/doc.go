// Package richtext converts rich text between the storage representation kept
// in the content store and the editor representation shown inside TinyMCE.
//
// Storage HTML carries entity references such as `<a linktype="page" id="3">`
// and `<embed embedtype="image" id="7" format="left"/>`. Editor HTML carries the
// same entities as `data-*` attributes on ordinary anchors and images so the
// editor can preview and edit them. The set of enabled features decides which
// elements survive whitelisting and which entity types are expanded.
//
// Two converter variants exist: EditorHTMLConverter for current hosts, which is
// feature gated, and LegacyConverter for hosts older than 2.0, which applies a
// fixed whitelist. NewConverter picks one from a host version string so callers
// never branch on versions themselves.
package richtext
