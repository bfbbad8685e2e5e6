package astdocs

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// objectDefHTMLRenderer renders ObjectDef nodes as container divs carrying
// the kind-derived class, e.g. <div class="functiondef-object">.
type objectDefHTMLRenderer struct{}

func newObjectDefHTMLRenderer() renderer.NodeRenderer {
	return &objectDefHTMLRenderer{}
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *objectDefHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindObjectDef, r.renderObjectDef)
}

func (r *objectDefHTMLRenderer) renderObjectDef(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ObjectDef)
	if entering {
		// The class is derived from an [A-Z]+ token; no escaping needed.
		_, _ = w.WriteString(`<div class="`)
		_, _ = w.WriteString(n.Class())
		_, _ = w.WriteString("\">\n")
	} else {
		_, _ = w.WriteString("</div>\n")
	}
	return ast.WalkContinue, nil
}
