// Package tinymce wires the TinyMCE rich-text editor into go-formgen style
// forms.
//
// The widget renders a textarea, emits the JavaScript call that boots the
// editor, converts stored HTML into editor HTML on render and converts
// submitted editor HTML back into whitelisted storage HTML:
//
//	w := tinymce.New(
//	  widgets.WithMenus(widgets.MenusDisabled()),
//	  widgets.WithFeatures(richtext.FeatureBold, richtext.FeatureLink),
//	)
//	markup, err := w.RenderWithScript("body", stored, map[string]string{"id": "id_body"})
//	...
//	clean, ok, err := w.ValueFromForm(r.PostForm, nil, "body")
package tinymce
