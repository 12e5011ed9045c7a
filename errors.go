package methods

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// InputError is an error with position information. Every error resulting from
// malformed input implements InputError.
type InputError interface {
	error
	// Pos returns the zero-based byte offset in the console line of the
	// character that caused the error.
	Pos() int
}

// SyntaxError indicates a malformed literal or call expression.
type SyntaxError struct {
	// Offset is the zero-based byte offset of the offending character. For
	// input that ends early, it is the length of the input in bytes.
	// Diagnose converts it to a character column.
	Offset int
	// Msg describes the problem. If it is empty, the problem is an
	// unexpected character at Offset.
	Msg string
}

func (err *SyntaxError) Error() string {
	if err.Msg == "" {
		return unexpectedMsg(err.Offset)
	}
	return err.Msg
}

func unexpectedMsg(off int) string {
	return "Unexpected character encountered at offset " + strconv.Itoa(off)
}

func (err *SyntaxError) Pos() int {
	return err.Offset
}

// unexpected creates a SyntaxError for an invalid character at off.
func unexpected(off int) error {
	return errors.WithStack(&SyntaxError{Offset: off})
}

// shift moves the position of a SyntaxError within err by n bytes. Errors
// without positions are returned unchanged.
func shift(err error, n int) error {
	var se *SyntaxError
	if n != 0 && errors.As(err, &se) {
		se.Offset += n
	}
	return err
}

// Error kinds reported by the Call Dispatcher. Match them with errors.Is.
var (
	// ErrUnresolvedOperator means the subject has no method with the name.
	ErrUnresolvedOperator = errors.New("unresolved operator")
	// ErrNoMatchingOverload means no method with the name accepts the
	// arguments.
	ErrNoMatchingOverload = errors.New("no matching overload")
	// ErrAmbiguousOverload means several methods accept the arguments
	// equally well.
	ErrAmbiguousOverload = errors.New("ambiguous overload")
	// ErrInvocation means the invoked method reported failure.
	ErrInvocation = errors.New("invocation failed")
	// ErrEmpty is returned when evaluating an empty token.
	ErrEmpty = errors.New("empty expression")
)

// Stage identifies where a call expression failed.
type Stage int8

const (
	StageParse Stage = iota
	StageResolve
	StageEvaluate
	StageCoerce
	StageInvoke
)

func (s Stage) String() string {
	switch s {
	case StageParse:
		return "parse"
	case StageResolve:
		return "resolve"
	case StageEvaluate:
		return "evaluate"
	case StageCoerce:
		return "coerce"
	case StageInvoke:
		return "invoke"
	default:
		return "Stage(" + strconv.Itoa(int(s)) + ")"
	}
}

// DispatchError is an error from evaluating a call expression.
type DispatchError struct {
	// Stage is the stage of dispatch that failed.
	Stage Stage
	// Op is the operator name of the failing call, if it was parsed.
	Op string
	// Err is the underlying error.
	Err error
}

func (err *DispatchError) Error() string {
	if err.Op == "" {
		return err.Stage.String() + ": " + err.Err.Error()
	}
	return err.Stage.String() + " " + err.Op + ": " + err.Err.Error()
}

func (err *DispatchError) Unwrap() error {
	return err.Err
}

// Format implements fmt.Formatter. The %+v verb includes the stack trace of
// the underlying error.
func (err *DispatchError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		io.WriteString(s, err.Error())
		fmt.Fprintf(s, "\n%+v", err.Err)
		return
	}
	io.WriteString(s, err.Error())
}

// Pos returns the position of the underlying syntax error, or -1 if there
// is none.
func (err *DispatchError) Pos() int {
	var se *SyntaxError
	if errors.As(err.Err, &se) {
		return se.Offset
	}
	return -1
}

var (
	_ InputError = (*SyntaxError)(nil)
	_ InputError = (*DispatchError)(nil)
)
