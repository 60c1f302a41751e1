// Package templates embeds the default partials rendered by presenter
// helpers.
package templates

import (
	"embed"
	"io/fs"
)

//go:embed shared/*.tpl
var files embed.FS

// Extension is the file extension of the embedded partials.
const Extension = ".tpl"

// FS returns the embedded partials rooted at the template directory.
func FS() fs.FS {
	return files
}
