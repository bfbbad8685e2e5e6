package astdocs

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown  = errors.New("markdown content cannot be empty")
	ErrHTMLConversion = errors.New("HTML conversion failed")

	// Excerpt resolution errors. A %%%SOURCE marker pointing at an
	// unreadable file is a documentation-build defect and fails the render.
	ErrSourceRead    = errors.New("source file read failed")
	ErrExcerptRender = errors.New("source excerpt rendering failed")

	// Stylesheet generation errors.
	ErrStylesheetRender = errors.New("stylesheet rendering failed")
)
