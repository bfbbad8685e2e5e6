package astdocs

import "github.com/yuin/goldmark/ast"

// ObjectDef is a container block wrapping the span of blocks between a
// %%%START marker and its matching %%%END marker.
type ObjectDef struct {
	ast.BaseBlock

	// MarkerKind is the uppercase generator token, e.g. "FUNCTIONDEF".
	MarkerKind string
	// QualifiedName is the dotted name of the documented object.
	QualifiedName string
}

// KindObjectDef is the node kind of ObjectDef.
var KindObjectDef = ast.NewNodeKind("ObjectDef")

// NewObjectDef creates an ObjectDef for the given marker kind and name.
func NewObjectDef(kind, name string) *ObjectDef {
	return &ObjectDef{MarkerKind: kind, QualifiedName: name}
}

// Kind implements ast.Node.Kind.
func (n *ObjectDef) Kind() ast.NodeKind {
	return KindObjectDef
}

// Class returns the CSS class derived from the marker kind,
// e.g. "functiondef-object".
func (n *ObjectDef) Class() string {
	return objectClass(n.MarkerKind)
}

// Dump implements ast.Node.Dump.
func (n *ObjectDef) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"MarkerKind":    n.MarkerKind,
		"QualifiedName": n.QualifiedName,
	}, nil)
}
