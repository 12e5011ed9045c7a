package methods

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// LiteralKind is the type of a literal value.
type LiteralKind int8

const (
	// String is a double-quoted string literal.
	String LiteralKind = iota + 1
	// Int is a sequence of decimal digits.
	Int
	// Float is a sequence of decimal digits with one decimal point.
	Float
)

func (k LiteralKind) String() string {
	switch k {
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	default:
		return "invalid"
	}
}

// Literal is a self-contained value token.
type Literal struct {
	Kind LiteralKind
	// Text is the token verbatim, including the quotes of a string.
	Text string
}

func (l Literal) String() string {
	return l.Text
}

// Evaluate classifies and validates a literal token. If the token is
// malformed, the error is a *SyntaxError (possibly wrapped) giving the
// offset of the problem within the token. An empty token returns ErrEmpty.
func Evaluate(token string) (Literal, error) {
	if token == "" {
		return Literal{}, errors.WithStack(ErrEmpty)
	}
	if token[0] == '"' {
		if len(token) < 2 || token[len(token)-1] != '"' {
			return Literal{}, errors.WithStack(&SyntaxError{
				Offset: len(token),
				Msg:    "Reached end of string while parsing",
			})
		}
		return Literal{Kind: String, Text: token}, nil
	}
	points := 0
	for i := 0; i < len(token); i++ {
		switch c := token[i]; {
		case '0' <= c && c <= '9':
			// do nothing
		case c == '.':
			points++
		default:
			return Literal{}, unexpected(i)
		}
	}
	// Multiple points are reported only after every character is known to
	// be valid, and at the second point rather than the first.
	if points > 1 {
		first := strings.IndexByte(token, '.')
		return Literal{}, unexpected(first + 1 + strings.IndexByte(token[first+1:], '.'))
	}
	if points == 1 {
		return Literal{Kind: Float, Text: token}, nil
	}
	return Literal{Kind: Int, Text: token}, nil
}

// Diagnose writes the pointer diagnostic for an error in line: the message,
// the line itself, and a caret under the offending column. Columns count
// characters rather than bytes. If err carries no position, only the message
// is written.
func Diagnose(w io.Writer, line string, err error) error {
	var ie InputError
	if !errors.As(err, &ie) || ie.Pos() < 0 {
		_, err := io.WriteString(w, err.Error()+"\n")
		return err
	}
	col := utf8.RuneCountInString(line[:min(ie.Pos(), len(line))])
	msg := err.Error()
	var se *SyntaxError
	if errors.As(err, &se) {
		msg = se.Msg
		if msg == "" {
			msg = unexpectedMsg(col)
		}
	}
	var b strings.Builder
	b.WriteString(msg)
	b.WriteByte('\n')
	b.WriteString(line)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("-", col))
	b.WriteString("^\n")
	_, werr := io.WriteString(w, b.String())
	return werr
}
