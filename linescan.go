package astdocs

import "strings"

// LineTransform is a pre-parse pass over the raw markdown lines. The Renderer
// runs registered transforms in ascending priority order before goldmark ever
// sees the document.
type LineTransform interface {
	TransformLines(lines []string) ([]string, error)
}

// SourcePass replaces %%%SOURCE markers with inlined source excerpts. The
// replacement is pre-rendered HTML, spliced back in as individual raw lines
// so downstream passes treat it as an opaque HTML block.
type SourcePass struct {
	resolver *excerptResolver
}

// NewSourcePass creates the pass. root is the path prefix applied to marker
// paths ("." when empty).
func NewSourcePass(root string) *SourcePass {
	return &SourcePass{resolver: newExcerptResolver(root)}
}

// TransformLines scans each line outside fenced code blocks for a %%%SOURCE
// marker and splices the rendered excerpt in its place, followed by one blank
// line that terminates the raw HTML block so an adjacent marker line stays
// visible to the block passes. Lines without markers pass through unchanged.
// A marker whose file cannot be read fails the whole pass: a dangling source
// reference must surface, not degrade.
func (p *SourcePass) TransformLines(lines []string) ([]string, error) {
	out := make([]string, 0, len(lines))
	fence := 0 // width of the open code fence, 0 when outside

	for _, line := range lines {
		if fence > 0 {
			if closesFence(line, fence) {
				fence = 0
			}
			out = append(out, line)
			continue
		}

		if strings.HasPrefix(line, "```") {
			fence = leadingBackticks(line)
			out = append(out, line)
			continue
		}

		ref, matched, ok := parseSourceRef(line)
		if !ok {
			out = append(out, line)
			continue
		}

		fragment, err := p.resolver.renderExcerpt(ref.Path, ref.Start, ref.End)
		if err != nil {
			return nil, err
		}

		replaced := strings.Replace(line, matched, fragment, 1)
		out = append(out, strings.Split(replaced, "\n")...)
		out = append(out, "")
	}

	return out, nil
}

// leadingBackticks counts the backticks prefixing line.
func leadingBackticks(line string) int {
	n := 0
	for n < len(line) && line[n] == '`' {
		n++
	}
	return n
}

// closesFence reports whether line is a bare closing fence of at least width
// backticks.
func closesFence(line string, width int) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < width {
		return false
	}
	return strings.Count(trimmed, "`") == len(trimmed)
}
