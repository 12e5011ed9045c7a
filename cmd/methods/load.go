package main

import (
	"fmt"
	"os"
	"plugin"
	"strings"

	"github.com/pkg/errors"

	"github.com/zephyrtronium/methods"
	"github.com/zephyrtronium/methods/commands"
)

var (
	errNoLibrary = errors.New("Could not find library")
	errNoType    = errors.New("Could not find type")
)

// loadError is a failure to load a subject. It matches its kind with
// errors.Is.
type loadError struct {
	kind   error
	detail string
}

func (err *loadError) Error() string {
	return err.kind.Error() + ": " + err.detail
}

func (err *loadError) Is(target error) bool {
	return target == err.kind
}

func notFound(kind error, format string, args ...any) error {
	return errors.WithStack(&loadError{kind: kind, detail: fmt.Sprintf(format, args...)})
}

// load finds the subject named typeName in a library. The library is either
// "builtin" or the path of a Go plugin exporting a variable named typeName.
// A plugin variable of type methods.Funcs is used as a table of functions;
// any other variable has its methods called through reflection.
func load(library, typeName string, prec uint) (commands.Subject, error) {
	if library == "builtin" {
		s, ok := commands.Lookup(typeName, prec)
		if !ok {
			return commands.Subject{}, notFound(errNoType, "%s (builtin has %s)", typeName, strings.Join(commands.Names, ", "))
		}
		return s, nil
	}
	if _, err := os.Stat(library); err != nil {
		return commands.Subject{}, notFound(errNoLibrary, "%v", err)
	}
	if !strings.HasSuffix(library, ".so") {
		return commands.Subject{}, notFound(errNoLibrary, "%s is not a Go plugin", library)
	}
	p, err := plugin.Open(library)
	if err != nil {
		return commands.Subject{}, notFound(errNoLibrary, "%v", err)
	}
	sym, err := p.Lookup(typeName)
	if err != nil {
		return commands.Subject{}, notFound(errNoType, "%v", err)
	}
	return symbolSubject(sym), nil
}

// symbolSubject chooses the registry for a symbol exported by a plugin.
// Exported variables are looked up as pointers, so a *methods.Funcs is the
// usual form of a function table.
func symbolSubject(sym plugin.Symbol) commands.Subject {
	switch s := sym.(type) {
	case *methods.Funcs:
		return commands.Subject{Registry: *s}
	case methods.Funcs:
		return commands.Subject{Registry: s}
	default:
		return commands.Subject{Value: sym, Registry: methods.Methods{}}
	}
}
