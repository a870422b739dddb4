// Package template defines the template rendering seam widgets render their
// markup through. The gotemplate sub-package provides the default pongo2
// backed engine; callers can inject any implementation of TemplateRenderer.
package template
