// Package template defines the renderer contract presenter helpers render
// partials through. Engines live in sub-packages.
package template
