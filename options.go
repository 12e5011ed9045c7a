package methods

import (
	"io"
	"log/slog"
)

// Option is an option used when creating a Dispatcher or Console. Options
// that do not apply to the thing being created are ignored.
type Option interface {
	option()
}

type (
	precopt    uint
	loggeropt  struct{ l *slog.Logger }
	verboseopt bool
	outputopt  struct{ w io.Writer }
	levelopt   struct{ v *slog.LevelVar }
)

func (precopt) option()    {}
func (loggeropt) option()  {}
func (verboseopt) option() {}
func (outputopt) option()  {}
func (levelopt) option()   {}

// Prec sets the precision in bits of big.Float arguments created from
// literals. The default is 64.
func Prec(prec uint) Option {
	return precopt(prec)
}

// Logger sets the logger used to trace parsing, resolution, and
// invocation. The default discards everything.
func Logger(l *slog.Logger) Option {
	return loggeropt{l}
}

// Verbose sets the initial verbosity of a console.
func Verbose(v bool) Option {
	return verboseopt(v)
}

// Output sets the writer to which a console prints results and
// diagnostics. The default is io.Discard.
func Output(w io.Writer) Option {
	return outputopt{w}
}

// LogLevel gives a console a level to adjust when verbosity is toggled. The
// console sets it to Debug while verbose and Warn otherwise. It should be the
// level of the handler behind the Logger option.
func LogLevel(v *slog.LevelVar) Option {
	return levelopt{v}
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))
