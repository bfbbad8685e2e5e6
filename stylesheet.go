package astdocs

import (
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/carnarez/goldmark-astdocs/internal/assets"
)

// StylesheetCSS returns the stylesheet for rendered documents: base layout
// rules for excerpt and wrapper elements plus the chroma classes for the
// given syntax style. Unknown style names fall back to chroma's default
// colors rather than failing, since the markup itself is style-independent.
func StylesheetCSS(styleName string) (string, error) {
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	formatter := chromahtml.New(
		chromahtml.WithClasses(true),
		chromahtml.WithLineNumbers(true),
	)

	var buf strings.Builder
	if err := formatter.WriteCSS(&buf, style); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStylesheetRender, err)
	}

	return assets.BaseCSS() + "\n" + buf.String(), nil
}
