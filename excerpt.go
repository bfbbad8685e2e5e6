package astdocs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// excerptResolver reads a line range from a source file and renders it as a
// collapsible, line-numbered HTML listing. Pure given immutable file content.
type excerptResolver struct {
	root string
}

// newExcerptResolver creates a resolver joining marker paths onto root.
func newExcerptResolver(root string) *excerptResolver {
	if root == "" {
		root = "."
	}
	return &excerptResolver{root: root}
}

// renderExcerpt returns the HTML fragment for lines [start, end] of the file
// at path, resolved against the configured root. Lines are 1-based and
// inclusive; end == 0 extends the range to the last line. A start past the
// end of the file yields an empty listing, not an error.
func (r *excerptResolver) renderExcerpt(path string, start, end int) (string, error) {
	full := filepath.Join(r.root, path)
	data, err := os.ReadFile(full) // #nosec G304 -- path comes from generated markers
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSourceRead, err)
	}

	lines := strings.Split(string(data), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1] // drop the empty element after a trailing newline
	}

	if end == 0 || end > len(lines) {
		end = len(lines)
	}
	var src string
	if start <= len(lines) {
		src = strings.Join(lines[start-1:end], "\n")
	}

	listing, err := highlightExcerpt(full, src, start)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExcerptRender, err)
	}

	var b strings.Builder
	b.WriteString("<details class=\"astdocs-source\">\n")
	b.WriteString("<summary>source</summary>\n")
	b.WriteString(listing)
	b.WriteString("</details>")
	return b.String(), nil
}

// highlightExcerpt renders src as a line-numbered listing whose numbering
// starts at baseLine. The lexer is picked from the file name, falling back to
// plain text. Class-based output keeps the markup style-independent; colors
// come from the generated stylesheet.
func highlightExcerpt(filename, src string, baseLine int) (string, error) {
	lexer := lexers.Match(filepath.Base(filename))
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, src)
	if err != nil {
		return "", err
	}

	formatter := chromahtml.New(
		chromahtml.WithClasses(true),
		chromahtml.WithLineNumbers(true),
		chromahtml.BaseLineNumber(baseLine),
	)

	var buf strings.Builder
	if err := formatter.Format(&buf, styles.Fallback, iterator); err != nil {
		return "", err
	}

	out := buf.String()
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out, nil
}
