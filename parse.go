package methods

import (
	"github.com/pkg/errors"
)

// Expr = Literal | '(' Call ')'
// Call = operator { Expr }
// Literal = string | number

// Expr is a parsed call expression. Literal arguments are kept as raw text
// and are validated when the expression is evaluated.
type Expr struct {
	// n is the root call node.
	n *node
}

// Op returns the operator name of the expression.
func (e *Expr) Op() string {
	return e.n.text
}

// Args returns the raw text of each argument expression.
func (e *Expr) Args() []string {
	r := make([]string, len(e.n.args))
	for i, a := range e.n.args {
		r[i] = a.String()
	}
	return r
}

func (e *Expr) String() string {
	return e.n.String()
}

// ParseCall parses the body of a call expression, i.e. the text between its
// enclosing brackets. Error positions are byte offsets into body.
func ParseCall(body string) (*Expr, error) {
	scan := lex(body)
	n, err := parsebody(scan, 0)
	if err != nil {
		return nil, err
	}
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenEOF:
	case tokenClose:
		return nil, unexpected(tok.pos)
	default:
		panic("methods: parsebody ended on " + tok.String())
	}
	return &Expr{n: n}, nil
}

// parsebody parses an operator followed by any number of argument
// expressions. It stops at a close bracket or EOF and pushes that token.
// start is the position reported if the operator is missing.
func parsebody(scan *lexer, start int) (*node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	if tok.kind != tokenAtom {
		pos := tok.pos
		if tok.kind == tokenEOF || tok.kind == tokenClose {
			pos = start
		}
		return nil, errors.WithStack(&SyntaxError{Offset: pos, Msg: "Expected operator"})
	}
	n := &node{kind: nodeCall, text: tok.text, pos: tok.pos}
	for {
		a, err := parseexpr(scan)
		if err != nil {
			return nil, err
		}
		if a == nil {
			return n, nil
		}
		n.args = append(n.args, a)
	}
}

// parseexpr parses a single argument expression. If the next token ends the
// enclosing call, parseexpr pushes it and returns nil with no error.
func parseexpr(scan *lexer) (*node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenAtom, tokenString:
		return &node{kind: nodeLit, text: tok.text, pos: tok.pos}, nil
	case tokenOpen:
		n, err := parsebody(scan, tok.pos+1)
		if err != nil {
			return nil, err
		}
		end, err := scan.next()
		if err != nil {
			return nil, err
		}
		if end.kind != tokenClose {
			return nil, errors.WithStack(&SyntaxError{
				Offset: end.pos,
				Msg:    "Reached end of expression while parsing",
			})
		}
		return n, nil
	case tokenClose, tokenEOF:
		scan.push(tok)
		return nil, nil
	default:
		panic("methods: unknown token: " + tok.String())
	}
}
