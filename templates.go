package tinymce

import (
	"io/fs"

	"github.com/goliatone/go-formgen-tinymce/pkg/widgets"
)

// EmbeddedTemplates exposes the built-in widget templates so callers can
// reuse or extend them without importing the widgets package directly.
func EmbeddedTemplates() fs.FS {
	return widgets.TemplatesFS()
}
