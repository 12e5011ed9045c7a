package methods

import (
	"strconv"

	"github.com/pkg/errors"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int8

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenAtom is a run of characters that is not whitespace, a bracket,
	// or a string. It is an operator name or a numeric literal.
	tokenAtom
	// tokenString is a double-quoted string, quotes included.
	tokenString
	// tokenOpen is an open bracket, (.
	tokenOpen
	// tokenClose is a close bracket, ).
	tokenClose
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenEOF:
		return "EOF"
	case tokenAtom:
		return "Atom"
	case tokenString:
		return "String"
	case tokenOpen:
		return "Open"
	case tokenClose:
		return "Close"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

type lexer struct {
	src string
	off int
	p   lexToken
	eof bool
}

func lex(src string) *lexer {
	return &lexer{src: src}
}

// push unreads a token so that it is the next token returned from next. Panics
// if there is already a pushed token.
func (l *lexer) push(tok lexToken) {
	if l.p.kind != tokenNone {
		panic("methods: double push")
	}
	l.p = tok
}

// next scans the next token from the input. The first time the end of input
// is reached, the result is an EOF token with a nil error. After that, the
// result is an empty token and errEOF.
func (l *lexer) next() (lexToken, error) {
	if l.p.kind != tokenNone {
		tok := l.p
		l.p = lexToken{}
		return tok, nil
	}
	if l.eof {
		return lexToken{}, errors.WithStack(errEOF)
	}
	for l.off < len(l.src) && isSpace(l.src[l.off]) {
		l.off++
	}
	tok := lexToken{pos: l.off}
	if l.off >= len(l.src) {
		tok.kind = tokenEOF
		l.eof = true
		return tok, nil
	}
	switch l.src[l.off] {
	case '(':
		l.off++
		tok.text = "("
		tok.kind = tokenOpen
	case ')':
		l.off++
		tok.text = ")"
		tok.kind = tokenClose
	case '"':
		k := l.off + 1
		for k < len(l.src) && l.src[k] != '"' {
			k++
		}
		if k >= len(l.src) {
			l.off = len(l.src)
			return tok, errors.WithStack(&SyntaxError{
				Offset: len(l.src),
				Msg:    "Reached end of string while parsing",
			})
		}
		tok.text = l.src[tok.pos : k+1]
		tok.kind = tokenString
		l.off = k + 1
	default:
		for l.off < len(l.src) && !isSpace(l.src[l.off]) && l.src[l.off] != '(' && l.src[l.off] != ')' {
			l.off++
		}
		tok.text = l.src[tok.pos:l.off]
		tok.kind = tokenAtom
	}
	return tok, nil
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// errEOF is returned when scanning past the EOF token.
var errEOF = errors.New("scan past end of input")
