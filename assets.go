package tinymce

import (
	"io/fs"

	"github.com/goliatone/go-formgen-tinymce/pkg/widgets"
)

// AssetsFS exposes the browser shim that defines the editor initializer so Go
// applications can serve it next to the TinyMCE bundle.
//
// Typical mount:
//
//	mux.Handle("/static/tinymce-widget/",
//	  http.StripPrefix("/static/tinymce-widget/",
//	    http.FileServerFS(tinymce.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return widgets.AssetsFS()
}
