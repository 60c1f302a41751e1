package presenter

import (
	"io/fs"

	"github.com/goliatone/go-presenter/pkg/render/templates"
)

// EmbeddedTemplates exposes the built-in partials so callers can serve or
// extend them without importing the templates package directly.
func EmbeddedTemplates() fs.FS {
	return templates.FS()
}
