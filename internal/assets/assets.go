// Package assets provides the embedded base stylesheet for rendered
// documentation.
package assets

import _ "embed"

//go:embed styles/base.css
var baseCSS string

// BaseCSS returns the base stylesheet: layout rules for source excerpts and
// object wrappers. Syntax colors are generated separately from the chroma
// style.
func BaseCSS() string {
	return baseCSS
}
