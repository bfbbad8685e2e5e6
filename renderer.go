package astdocs

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"regexp"
	"sort"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

// Compile-time interface implementation checks.
// These ensure implementations satisfy their interfaces at compile time,
// catching signature mismatches before runtime.
var (
	_ goldmark.Extender     = (*Extension)(nil)
	_ parser.ASTTransformer = (*spanTransformer)(nil)
	_ LineTransform         = (*SourcePass)(nil)
)

// Line ending normalization.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// htmlTemplate wraps goldmark's fragment output in a complete HTML5 document.
const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
%s
</style>
</head>
<body>
%s
</body>
</html>`

// prioritizedTransform pairs a line transform with its run order.
type prioritizedTransform struct {
	transform LineTransform
	priority  int
}

// Renderer drives the document pipeline: prioritized line passes over the
// raw input, then goldmark parsing and rendering with the marker extension
// attached. Safe for concurrent use once constructed; all per-render state is
// local to the Render call.
type Renderer struct {
	cfg            rendererConfig
	lineTransforms []prioritizedTransform
	md             goldmark.Markdown
}

// NewRenderer creates a Renderer with default configuration. Use options to
// customize behavior (e.g., WithSourceRoot, WithSyntaxStyle).
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		cfg: rendererConfig{sourceRoot: ".", style: DefaultSyntaxStyle},
	}
	for _, opt := range opts {
		opt(r)
	}

	ext := NewExtension(r.cfg.sourceRoot)

	// The source pass holds priority 0: markers are consumed before any
	// other line transform can see or mangle them.
	r.lineTransforms = append(r.lineTransforms, prioritizedTransform{transform: ext.SourcePass(), priority: 0})
	sort.SliceStable(r.lineTransforms, func(i, j int) bool {
		return r.lineTransforms[i].priority < r.lineTransforms[j].priority
	})

	if r.cfg.stylesheet == "" {
		css, err := StylesheetCSS(r.cfg.style)
		if err != nil {
			return nil, err
		}
		r.cfg.stylesheet = css
	}

	r.md = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // external stylesheet control, matches excerpt markup
				),
			),
			ext,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			htmlrenderer.WithXHTML(),
			// Unsafe rendering keeps the injected excerpt markup intact: the
			// source pass re-injects pre-rendered HTML lines that must pass
			// through verbatim.
			htmlrenderer.WithUnsafe(),
		),
	)

	return r, nil
}

// Render runs the full pipeline and returns the rendered document. The
// context is used for cancellation between stages. A %%%SOURCE marker whose
// file cannot be read fails the render (errors.Is ErrSourceRead).
func (r *Renderer) Render(ctx context.Context, input Input) (*Result, error) {
	if input.Markdown == "" {
		return nil, ErrEmptyMarkdown
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lines := strings.Split(normalizeLineEndings(input.Markdown), "\n")

	var err error
	for _, pt := range r.lineTransforms {
		lines, err = pt.transform.TransformLines(lines)
		if err != nil {
			return nil, fmt.Errorf("line pass failed: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	body, err := r.toHTML(ctx, strings.Join(lines, "\n"))
	if err != nil {
		return nil, err
	}

	title := input.Title
	if title == "" {
		title = DefaultTitle
	}

	doc := fmt.Sprintf(htmlTemplate, html.EscapeString(title), sanitizeCSS(r.cfg.stylesheet), body)
	return &Result{HTML: []byte(doc)}, nil
}

// toHTML converts preprocessed content to an HTML fragment. Goldmark has no
// native context support, so conversion runs in a goroutine and cancellation
// is handled with a select.
func (r *Renderer) toHTML(ctx context.Context, content string) (string, error) {
	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return res.html, res.err
	}
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// sanitizeCSS escapes sequences that could break out of the <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
