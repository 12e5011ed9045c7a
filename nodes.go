package methods

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression.
type node struct {
	kind nodeKind

	// text is the raw literal token for nodeLit and the operator name for
	// nodeCall.
	text string
	// pos is the offset of text in the parsed source.
	pos int

	args []*node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeLit  // text is a literal token, evaluated lazily
	nodeCall // text is the operator, args are the argument expressions
)

func (k nodeKind) String() string {
	switch k {
	case nodeNone:
		return "None"
	case nodeLit:
		return "Lit"
	case nodeCall:
		return "Call"
	default:
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

func (n *node) fmt(b *strings.Builder) {
	switch n.kind {
	case nodeNone:
		// Invalid nodes use invalid characters.
		b.WriteString("$#$")
	case nodeLit:
		b.WriteString(n.text)
	case nodeCall:
		b.WriteByte('(')
		b.WriteString(n.text)
		for _, a := range n.args {
			b.WriteByte(' ')
			a.fmt(b)
		}
		b.WriteByte(')')
	default:
		panic("methods: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}
