package astdocs

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// Extension wires the astdocs marker passes into a goldmark pipeline.
//
// Extend registers the %%%START/%%%END span pass as an AST transformer ahead
// of every other transformer, plus the ObjectDef renderer. The %%%SOURCE pass
// operates on raw lines before parsing, which goldmark has no hook for: hosts
// driving goldmark themselves obtain it from SourcePass and run it over the
// input lines first. Renderer does both automatically.
type Extension struct {
	sourceRoot string
}

// NewExtension creates the extension. sourceRoot is the path prefix applied
// to %%%SOURCE marker paths ("." when empty).
func NewExtension(sourceRoot string) *Extension {
	if sourceRoot == "" {
		sourceRoot = "."
	}
	return &Extension{sourceRoot: sourceRoot}
}

// SourcePass returns the line pass resolving %%%SOURCE markers against the
// configured source root.
func (e *Extension) SourcePass() *SourcePass {
	return NewSourcePass(e.sourceRoot)
}

// Extend implements goldmark.Extender.
func (e *Extension) Extend(md goldmark.Markdown) {
	md.Parser().AddOptions(
		parser.WithASTTransformers(
			// Priority 0 keeps marker handling ahead of every other
			// registered transformer.
			util.Prioritized(&spanTransformer{}, 0),
		),
	)
	md.Renderer().AddOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(newObjectDefHTMLRenderer(), 500),
		),
	)
}
