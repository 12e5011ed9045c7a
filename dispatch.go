package methods

import (
	"log/slog"
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// Dispatcher evaluates call expressions against the methods of a subject. It
// is not safe to use a Dispatcher concurrently.
type Dispatcher struct {
	reg  Registry
	subj any
	prec uint
	log  *slog.Logger
}

// NewDispatcher creates a dispatcher for a subject. It recognizes the Prec
// and Logger options.
func NewDispatcher(reg Registry, subj any, opts ...Option) *Dispatcher {
	d := Dispatcher{reg: reg, subj: subj, prec: 64, log: discard}
	for _, opt := range opts {
		switch opt := opt.(type) {
		case precopt:
			d.prec = uint(opt)
		case loggeropt:
			if opt.l != nil {
				d.log = opt.l
			}
		}
	}
	return &d
}

// Dispatch parses and evaluates the body of a call expression, i.e. the
// text between its enclosing brackets, and returns the result of the call.
// The result is nil if the method returns nothing. Any error is a
// *DispatchError; error positions are byte offsets into body.
func (d *Dispatcher) Dispatch(body string) (any, error) {
	e, err := ParseCall(body)
	if err != nil {
		return nil, &DispatchError{Stage: StageParse, Err: err}
	}
	d.log.Debug("parsed", slog.String("expr", e.String()))
	return d.Eval(e)
}

// Eval evaluates a parsed call expression.
func (d *Dispatcher) Eval(e *Expr) (any, error) {
	v, err := d.call(e.n)
	if err != nil {
		return nil, err
	}
	if !v.IsValid() {
		return nil, nil
	}
	return v.Interface(), nil
}

// call resolves, evaluates, and invokes a call node. The result is the zero
// Value if the method has no result.
func (d *Dispatcher) call(n *node) (reflect.Value, error) {
	cands := d.reg.Resolve(d.subj, n.text, len(n.args))
	d.log.Debug("resolve", slog.String("op", n.text), slog.Int("argc", len(n.args)), slog.Int("candidates", len(cands)))
	if len(cands) == 0 {
		if !d.named(n.text) {
			return reflect.Value{}, &DispatchError{Stage: StageResolve, Op: n.text, Err: errors.WithStack(ErrUnresolvedOperator)}
		}
		return reflect.Value{}, &DispatchError{
			Stage: StageResolve,
			Op:    n.text,
			Err:   errors.Wrapf(ErrNoMatchingOverload, "%d arguments", len(n.args)),
		}
	}

	// Evaluate every argument before invoking anything.
	args := make([]value, len(n.args))
	for i, a := range n.args {
		switch a.kind {
		case nodeLit:
			l, err := Evaluate(a.text)
			if err != nil {
				return reflect.Value{}, &DispatchError{Stage: StageEvaluate, Op: n.text, Err: shift(err, a.pos)}
			}
			args[i] = literal(l)
		case nodeCall:
			v, err := d.call(a)
			if err != nil {
				return reflect.Value{}, err
			}
			if !v.IsValid() {
				return reflect.Value{}, &DispatchError{
					Stage: StageEvaluate,
					Op:    n.text,
					Err:   errors.Errorf("argument %d: %s returns no value", i+1, a.text),
				}
			}
			args[i] = typed(v)
		default:
			panic("methods: invalid argument node " + a.kind.String())
		}
	}

	best, cost, tie := -1, 0, false
	var in []reflect.Value
	for k, m := range cands {
		conv, total, ok := d.convert(args, m)
		if !ok {
			continue
		}
		d.log.Debug("candidate", slog.String("method", FormatMethod(m)), slog.Int("cost", total))
		switch {
		case best < 0 || total < cost:
			best, cost, tie, in = k, total, false, conv
		case total == cost:
			tie = true
		}
	}
	if best < 0 {
		return reflect.Value{}, &DispatchError{
			Stage: StageCoerce,
			Op:    n.text,
			Err:   errors.Wrapf(ErrNoMatchingOverload, "arguments (%s)", describeArgs(args)),
		}
	}
	if tie {
		return reflect.Value{}, &DispatchError{
			Stage: StageCoerce,
			Op:    n.text,
			Err:   errors.Wrapf(ErrAmbiguousOverload, "arguments (%s)", describeArgs(args)),
		}
	}

	m := cands[best]
	d.log.Debug("invoke", slog.String("method", FormatMethod(m)))
	r, err := m.Call(in)
	if err != nil {
		return reflect.Value{}, &DispatchError{Stage: StageInvoke, Op: n.text, Err: err}
	}
	switch {
	case m.Result == nil:
		return reflect.Value{}, nil
	case r == nil:
		return reflect.Zero(m.Result), nil
	}
	return reflect.ValueOf(r), nil
}

// convert coerces each argument to the corresponding parameter of m and
// returns the total cost.
func (d *Dispatcher) convert(args []value, m Method) ([]reflect.Value, int, bool) {
	in := make([]reflect.Value, len(args))
	total := 0
	for i, a := range args {
		r, c, ok := coerce(a, m.Params[i], d.prec)
		if !ok {
			return nil, 0, false
		}
		in[i] = r
		total += c
	}
	return in, total, true
}

// named reports whether the subject has any method with the given name.
func (d *Dispatcher) named(name string) bool {
	for _, m := range d.reg.List(d.subj) {
		if m.Name == name {
			return true
		}
	}
	return false
}

func describeArgs(args []value) string {
	s := make([]string, len(args))
	for i, a := range args {
		s[i] = a.String()
	}
	return strings.Join(s, ", ")
}
