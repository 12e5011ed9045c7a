package methods

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// HelpText is printed when a console starts and on the ? command.
const HelpText = `q           : Quit the program.
v           : Toggle verbose mode (stack traces).
f           : List all known functions.
?           : Print this helpful text.
<expression>: Evaluate the expression.
Expressions can be integers, floats, strings (surrounded in double quotes) or function
 calls of the form '(identifier {expression}*)'.
`

// Prompt precedes each line read by a console.
const Prompt = "> "

// LineReader reads a line of input after displaying a prompt. At the end of
// input, Prompt returns io.EOF.
type LineReader interface {
	Prompt(prompt string) (string, error)
}

// ScanReader is a LineReader for non-interactive input. It writes prompts
// itself.
type ScanReader struct {
	s *bufio.Scanner
	w io.Writer
}

// NewScanReader creates a LineReader that reads lines from r and writes
// prompts to w.
func NewScanReader(r io.Reader, w io.Writer) *ScanReader {
	return &ScanReader{s: bufio.NewScanner(r), w: w}
}

func (r *ScanReader) Prompt(prompt string) (string, error) {
	io.WriteString(r.w, prompt)
	if !r.s.Scan() {
		if err := r.s.Err(); err != nil {
			return "", errors.WithStack(err)
		}
		return "", io.EOF
	}
	return r.s.Text(), nil
}

// Session is the state of a console.
type Session struct {
	// ID identifies the session in logs.
	ID string
	// Verbose is whether errors are printed with stack traces.
	Verbose bool
	// Running is false once the console has stopped.
	Running bool
	// Subject is the value whose methods are called.
	Subject any
	// Registry lists the subject's methods.
	Registry Registry
}

// Console is an interactive loop that evaluates expressions against a
// subject. It is not safe to use a Console concurrently.
type Console struct {
	sess  Session
	in    LineReader
	out   io.Writer
	disp  *Dispatcher
	log   *slog.Logger
	level *slog.LevelVar
}

// NewConsole creates a console reading from in. It recognizes every Option.
func NewConsole(in LineReader, reg Registry, subj any, opts ...Option) *Console {
	c := Console{
		sess: Session{
			ID:       uuid.NewString(),
			Running:  true,
			Subject:  subj,
			Registry: reg,
		},
		in:  in,
		out: io.Discard,
		log: discard,
	}
	for _, opt := range opts {
		switch opt := opt.(type) {
		case verboseopt:
			c.sess.Verbose = bool(opt)
		case outputopt:
			if opt.w != nil {
				c.out = opt.w
			}
		case loggeropt:
			if opt.l != nil {
				c.log = opt.l
			}
		case levelopt:
			c.level = opt.v
		}
	}
	c.log = c.log.With(slog.String("session", c.sess.ID))
	c.setLevel()
	// The last Logger option wins, so the dispatcher logs with the session.
	c.disp = NewDispatcher(reg, subj, append(opts[:len(opts):len(opts)], Logger(c.log))...)
	return &c
}

// Session returns a copy of the console's session state.
func (c *Console) Session() Session {
	return c.sess
}

// Run prints the help text, then reads and handles lines until the q command
// or the end of input, and finally prints a farewell. The returned error is
// any error reading input other than io.EOF.
func (c *Console) Run() error {
	io.WriteString(c.out, HelpText)
	var err error
	for c.sess.Running {
		var line string
		line, err = c.in.Prompt(Prompt)
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = nil
				fmt.Fprintln(c.out)
			}
			c.sess.Running = false
			break
		}
		c.Handle(line)
	}
	fmt.Fprintln(c.out, "Bye")
	return err
}

// Handle processes a single line of input.
func (c *Console) Handle(line string) {
	if line == "" {
		return
	}
	c.log.Debug("line", slog.String("text", line))
	if len(line) == 1 {
		switch line[0] {
		case 'q':
			c.sess.Running = false
		case '?':
			io.WriteString(c.out, HelpText)
		case 'v':
			c.toggleVerbose()
		case 'f':
			c.listFunctions()
		default:
			c.value(line)
		}
		return
	}
	if line[0] == '(' {
		c.function(line)
		return
	}
	c.value(line)
}

func (c *Console) toggleVerbose() {
	c.sess.Verbose = !c.sess.Verbose
	c.setLevel()
	if c.sess.Verbose {
		fmt.Fprintln(c.out, "Verbose on")
	} else {
		fmt.Fprintln(c.out, "Verbose off")
	}
}

func (c *Console) setLevel() {
	if c.level == nil {
		return
	}
	if c.sess.Verbose {
		c.level.Set(slog.LevelDebug)
	} else {
		c.level.Set(slog.LevelWarn)
	}
}

func (c *Console) listFunctions() {
	for _, m := range c.sess.Registry.List(c.sess.Subject) {
		fmt.Fprintln(c.out, FormatMethod(m))
	}
}

func (c *Console) value(line string) {
	l, err := Evaluate(line)
	if err != nil {
		c.report(line, err)
		return
	}
	fmt.Fprintln(c.out, l.Text)
}

func (c *Console) function(line string) {
	if line[len(line)-1] != ')' {
		c.report(line, errors.WithStack(&SyntaxError{
			Offset: len(line),
			Msg:    "Reached end of expression while parsing",
		}))
		return
	}
	r, err := c.disp.Dispatch(line[1 : len(line)-1])
	if err != nil {
		// The body starts one byte into the line.
		c.report(line, shift(err, 1))
		return
	}
	if r != nil {
		fmt.Fprintln(c.out, Format(r))
	}
}

// report prints the diagnostic for an error in line, plus its stack trace in
// verbose mode.
func (c *Console) report(line string, err error) {
	c.log.Debug("failed", slog.String("line", line), slog.Any("err", err))
	Diagnose(c.out, line, err)
	if c.sess.Verbose {
		fmt.Fprintf(c.out, "%+v\n", err)
	}
}
