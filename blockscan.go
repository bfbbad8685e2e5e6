package astdocs

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// spanTransformer wraps marker-delimited block spans in ObjectDef containers.
// It registers ahead of every other AST transformer so no generic rule sees
// the marker lines.
type spanTransformer struct{}

// Transform implements parser.ASTTransformer.
func (t *spanTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	wrapSpans(doc, reader.Source())
}

// wrapSpans processes the block children of parent, replacing every
// well-formed %%%START..%%%END span with an ObjectDef wrapper. Block
// containers (blockquotes, list items) are recursed into; nested marker
// pairs are handled by recursing into each wrapper once it is built.
func wrapSpans(parent ast.Node, source []byte) {
	node := parent.FirstChild()
	for node != nil {
		if hasBlockChildren(node) {
			wrapSpans(node, source)
			node = node.NextSibling()
			continue
		}

		marker, line, ok := startMarker(node, source)
		if !ok {
			node = node.NextSibling()
			continue
		}
		node = wrapSpan(parent, node, marker, line, source)
	}
}

// wrapSpan consumes the span opened by the %%%START marker at line startLine
// of startNode and returns the node at which scanning resumes.
//
// When the matching %%%END is found, the blocks from startNode through the
// terminating block move into a new ObjectDef appended in their place, both
// marker lines are stripped, and content trailing the end marker on the same
// block is re-queued after the wrapper. An unbounded span degrades: the start
// marker line is stripped and no wrapper is created.
func wrapSpan(parent, startNode ast.Node, marker delimiter, startLine int, source []byte) ast.Node {
	endNode, endLine, found := findTerminator(startNode, startLine, marker.Kind, source)
	if !found {
		next := startNode.NextSibling()
		if removeLine(startNode, startLine) {
			parent.RemoveChild(parent, startNode)
		}
		return next
	}

	wrapper := NewObjectDef(marker.Kind, marker.Name)
	parent.InsertBefore(parent, startNode, wrapper)

	// Content after the end marker on the terminating block stays outside.
	tail := detachAfter(endNode, endLine)

	for n := startNode; ; {
		next := n.NextSibling()
		wrapper.AppendChild(wrapper, n)
		if n == endNode {
			break
		}
		n = next
	}

	if tail != nil {
		parent.InsertAfter(parent, wrapper, tail)
	}

	// Strip the marker lines themselves. On a shared block the end marker
	// sits on a higher line index, so it goes first.
	if endNode == startNode {
		_ = removeLine(endNode, endLine)
		if removeLine(startNode, startLine) {
			wrapper.RemoveChild(wrapper, startNode)
		}
	} else {
		if removeLine(endNode, endLine) {
			wrapper.RemoveChild(wrapper, endNode)
		}
		if removeLine(startNode, startLine) {
			wrapper.RemoveChild(wrapper, startNode)
		}
	}

	// Nested pairs now live inside the wrapper.
	wrapSpans(wrapper, source)

	return wrapper.NextSibling()
}

// findTerminator scans forward from the start marker keeping a nesting
// counter for same-kind pairs: a %%%START of the same kind increments it, a
// %%%END decrements it. It returns the block and line index of the end
// marker that brings the counter back to zero, or found=false when the span
// is unbounded. Depth counting matches on kind alone; well-formed generator
// output is strictly nested, so names are not cross-checked here.
func findTerminator(startNode ast.Node, startLine int, kind string, source []byte) (ast.Node, int, bool) {
	depth := 1
	node, line := startNode, startLine+1

	for node != nil {
		if segments := markerLines(node); segments != nil {
			for ; line < segments.Len(); line++ {
				txt := lineText(segments.At(line), source)
				if d, ok := parseStart(txt); ok && d.Kind == kind {
					depth++
					continue
				}
				if d, ok := parseEnd(txt); ok && d.Kind == kind {
					depth--
					if depth == 0 {
						return node, line, true
					}
				}
			}
		}
		node = node.NextSibling()
		line = 0
	}

	return nil, 0, false
}

// startMarker locates the first %%%START line in a block.
func startMarker(node ast.Node, source []byte) (delimiter, int, bool) {
	segments := markerLines(node)
	if segments == nil {
		return delimiter{}, 0, false
	}
	for i := 0; i < segments.Len(); i++ {
		if d, ok := parseStart(lineText(segments.At(i), source)); ok {
			return d, i, true
		}
	}
	return delimiter{}, 0, false
}

// markerLines returns the raw line segments of a block that can carry marker
// lines. Code blocks never participate: markers inside them are literal
// content.
func markerLines(node ast.Node) *text.Segments {
	switch node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return node.Lines()
	}
	return nil
}

// lineText returns the trimmed text of a raw line segment.
func lineText(seg text.Segment, source []byte) string {
	return strings.TrimSpace(string(seg.Value(source)))
}

// hasBlockChildren reports whether node is a container whose children are
// themselves blocks (blockquote, list, list item and so on), as opposed to a
// leaf block holding inline content.
func hasBlockChildren(node ast.Node) bool {
	if node.Type() != ast.TypeBlock {
		return false
	}
	first := node.FirstChild()
	return first != nil && first.Type() == ast.TypeBlock
}

// removeLine strips raw line idx from a leaf block: the line segment itself
// and every inline child laid out within it. Reports whether the block is
// empty afterwards, in which case the caller removes it.
func removeLine(node ast.Node, idx int) bool {
	segments := node.Lines()
	seg := segments.At(idx)

	var prev ast.Node
	child := node.FirstChild()
	for child != nil {
		next := child.NextSibling()
		at := inlineStart(child)
		if at >= seg.Start && at < seg.Stop {
			node.RemoveChild(node, child)
		} else if at >= 0 && at < seg.Start {
			prev = child
		}
		child = next
	}

	// Dropping the last line leaves a dangling break on the line before it.
	if idx == segments.Len()-1 {
		if t, ok := prev.(*ast.Text); ok {
			t.SetSoftLineBreak(false)
			t.SetHardLineBreak(false)
		}
	}

	kept := text.NewSegments()
	for i := 0; i < segments.Len(); i++ {
		if i != idx {
			kept.Append(segments.At(i))
		}
	}
	node.SetLines(kept)

	return kept.Len() == 0 && node.FirstChild() == nil
}

// detachAfter splits everything laid out after line idx of a leaf block into
// a fresh paragraph, so content trailing an end marker is rendered outside
// the wrapper. Returns nil when the marker line is the last one.
func detachAfter(node ast.Node, idx int) ast.Node {
	segments := node.Lines()
	if idx >= segments.Len()-1 {
		return nil
	}
	seg := segments.At(idx)

	tail := ast.NewParagraph()
	tailSegments := text.NewSegments()
	for i := idx + 1; i < segments.Len(); i++ {
		tailSegments.Append(segments.At(i))
	}
	tail.SetLines(tailSegments)

	child := node.FirstChild()
	for child != nil {
		next := child.NextSibling()
		if inlineStart(child) >= seg.Stop {
			tail.AppendChild(tail, child)
		}
		child = next
	}

	kept := text.NewSegments()
	for i := 0; i <= idx; i++ {
		kept.Append(segments.At(i))
	}
	node.SetLines(kept)

	return tail
}

// inlineStart returns the source offset where an inline node begins, or -1
// when it cannot be determined. Undetermined nodes are left in place.
func inlineStart(n ast.Node) int {
	if t, ok := n.(*ast.Text); ok {
		return t.Segment.Start
	}
	start := -1
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := c.(*ast.Text); ok {
			start = t.Segment.Start
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return start
}
