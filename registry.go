package methods

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Registry enumerates the methods that can be called on a subject. A registry
// never modifies the subject.
type Registry interface {
	// List returns every method callable on subj, in no particular order.
	List(subj any) []Method
	// Resolve returns the methods on subj named name which take argc
	// arguments.
	Resolve(subj any, name string, argc int) []Method
}

// Method describes a callable operation on a subject.
type Method struct {
	// Name is the name by which the console calls the method.
	Name string
	// Params is the type of each parameter.
	Params []reflect.Type
	// Result is the type of the method's value, or nil if it has none. A
	// trailing error result is not included.
	Result reflect.Type

	fn   reflect.Value
	errs bool
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// describe creates a Method for a function value. The result is false if the
// function's signature cannot be called from an expression: it is variadic
// or returns more than a value and an error.
func describe(name string, fn reflect.Value) (Method, bool) {
	t := fn.Type()
	if t.IsVariadic() {
		return Method{}, false
	}
	m := Method{Name: name, fn: fn}
	nout := t.NumOut()
	if nout > 0 && t.Out(nout-1) == errorType {
		m.errs = true
		nout--
	}
	switch nout {
	case 0: // do nothing
	case 1:
		m.Result = t.Out(0)
	default:
		return Method{}, false
	}
	m.Params = make([]reflect.Type, t.NumIn())
	for i := range m.Params {
		m.Params[i] = t.In(i)
	}
	return m, true
}

// Call invokes the method. args must have already been converted to the
// parameter types. If the method returns a non-nil error or panics, the
// result is an error that matches ErrInvocation.
func (m Method) Call(args []reflect.Value) (r any, err error) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		perr, ok := p.(error)
		if !ok {
			perr = errors.Errorf("%v", p)
		}
		err = errors.WithStack(&invocationError{name: m.Name, err: perr, panicked: true})
	}()
	out := m.fn.Call(args)
	if m.errs {
		if e := out[len(out)-1]; !e.IsNil() {
			return nil, errors.WithStack(&invocationError{name: m.Name, err: e.Interface().(error)})
		}
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0].Interface(), nil
}

// invocationError is the failure of a called method.
type invocationError struct {
	name     string
	err      error
	panicked bool
}

func (err *invocationError) Error() string {
	if err.panicked {
		return err.name + " panicked: " + err.err.Error()
	}
	return err.name + ": " + err.err.Error()
}

func (err *invocationError) Unwrap() error {
	return err.err
}

func (err *invocationError) Is(target error) bool {
	return target == ErrInvocation
}

// FormatMethod formats a method descriptor as it appears in function
// listings, e.g. "(add int int) : int".
func FormatMethod(m Method) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(m.Name)
	for _, p := range m.Params {
		b.WriteByte(' ')
		b.WriteString(typeName(p))
	}
	b.WriteString(") : ")
	b.WriteString(typeName(m.Result))
	return b.String()
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "void"
	}
	return t.String()
}

func resolve(all []Method, name string, argc int) []Method {
	var r []Method
	for _, m := range all {
		if m.Name == name && len(m.Params) == argc {
			r = append(r, m)
		}
	}
	return r
}

// Methods is a Registry exposing the exported methods of a subject through
// reflection. The first letter of each method name is lowercased, so that a
// method Add is called as (add ...).
type Methods struct{}

func (Methods) List(subj any) []Method {
	if subj == nil {
		return nil
	}
	v := reflect.ValueOf(subj)
	t := v.Type()
	r := make([]Method, 0, t.NumMethod())
	for i := 0; i < t.NumMethod(); i++ {
		m, ok := describe(lowerFirst(t.Method(i).Name), v.Method(i))
		if ok {
			r = append(r, m)
		}
	}
	return r
}

func (reg Methods) Resolve(subj any, name string, argc int) []Method {
	return resolve(reg.List(subj), name, argc)
}

func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[n:]
}

// Funcs is a Registry of plain functions. Unlike Methods, several functions
// may share a name; the dispatcher chooses among them by argument types.
// Funcs ignores the subject it is given. Each element must be a function.
type Funcs map[string][]any

func (f Funcs) List(subj any) []Method {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	slices.Sort(names)
	var r []Method
	for _, name := range names {
		for _, fn := range f[name] {
			v := reflect.ValueOf(fn)
			if v.Kind() != reflect.Func {
				panic(fmt.Sprintf("methods: Funcs entry %s is %T, not a function", name, fn))
			}
			if m, ok := describe(name, v); ok {
				r = append(r, m)
			}
		}
	}
	return r
}

func (f Funcs) Resolve(subj any, name string, argc int) []Method {
	return resolve(Funcs{name: f[name]}.List(subj), name, argc)
}

var (
	_ Registry = Methods{}
	_ Registry = Funcs(nil)
)
