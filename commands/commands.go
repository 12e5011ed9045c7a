// Package commands provides the subjects built into the methods console.
package commands

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/zephyrtronium/bigfloat"

	"github.com/zephyrtronium/methods"
)

// Commands is the default subject. Its exported methods are called through
// reflection.
type Commands struct {
	// Prec is the precision of big.Float results. Zero means 64.
	Prec uint
}

func (c Commands) prec() uint {
	if c.Prec == 0 {
		return 64
	}
	return c.Prec
}

func (Commands) Add(a, b int) int { return a + b }
func (Commands) Sub(a, b int) int { return a - b }
func (Commands) Mul(a, b int) int { return a * b }

// Div divides integers, truncating toward zero.
func (Commands) Div(a, b int) (int, error) {
	if b == 0 {
		return 0, errors.New("division by zero")
	}
	return a / b, nil
}

// Quo divides floating-point numbers.
func (Commands) Quo(a, b float64) float64 { return a / b }

func (Commands) Concat(a, b string) string { return a + b }
func (Commands) Upper(s string) string     { return strings.ToUpper(s) }
func (Commands) Len(s string) int          { return len(s) }

// Repeat repeats s n times.
func (Commands) Repeat(s string, n int) (string, error) {
	if n < 0 {
		return "", errors.Errorf("negative repeat count %d", n)
	}
	return strings.Repeat(s, n), nil
}

// Pi returns π.
func (c Commands) Pi() *big.Float {
	return bigfloat.Pi(new(big.Float).SetPrec(c.prec()))
}

// Exp returns e**x.
func (c Commands) Exp(x *big.Float) *big.Float {
	return bigfloat.Exp(new(big.Float).SetPrec(c.prec()), x)
}

// Ln returns the natural logarithm of x.
func (c Commands) Ln(x *big.Float) (*big.Float, error) {
	if x.Sign() <= 0 {
		return nil, errors.WithStack(DomainError{X: x, Func: "ln"})
	}
	return bigfloat.Log(new(big.Float).SetPrec(c.prec()), x), nil
}

// Pow returns x**y. A negative x requires an integer y.
func (c Commands) Pow(x, y *big.Float) (*big.Float, error) {
	if !x.Signbit() {
		return bigfloat.Pow(new(big.Float).SetPrec(c.prec()), x, y), nil
	}
	if !y.IsInt() {
		return nil, errors.WithStack(DomainError{X: x, Arg: 1, Func: "pow"})
	}
	z := bigfloat.Pow(new(big.Float).SetPrec(c.prec()), new(big.Float).Abs(x), y)
	if n, _ := y.Int(nil); n.Bit(0) == 1 {
		z.Neg(z)
	}
	return z, nil
}

// Sqrt returns the square root of x.
func (c Commands) Sqrt(x *big.Float) (*big.Float, error) {
	if x.Sign() < 0 {
		return nil, errors.WithStack(DomainError{X: x, Func: "sqrt"})
	}
	return new(big.Float).SetPrec(c.prec()).Sqrt(x), nil
}

// DomainError is an error returned when a function is called on arguments
// outside its domain. DomainError unwraps to big.ErrNaN.
type DomainError struct {
	// X is the out-of-domain argument.
	X *big.Float
	// Arg is the 1-based index of the argument, or 0 if the function takes
	// only one.
	Arg int
	// Func is a name identifying the function.
	Func string
}

func (err DomainError) Error() string {
	r := err.X.String() + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}

func (err DomainError) Unwrap() error {
	return big.ErrNaN{}
}

// Math is a subject of overloaded arithmetic functions. It ignores the
// subject value it is given.
var Math = methods.Funcs{
	"add": {
		func(a, b int) int { return a + b },
		func(a, b float64) float64 { return a + b },
		func(a, b string) string { return a + b },
	},
	"neg": {
		func(a int) int { return -a },
		func(a float64) float64 { return -a },
	},
	"max": {
		func(a, b int) int { return max(a, b) },
		func(a, b float64) float64 { return max(a, b) },
	},
	// Either overload of scale needs the same conversions for two integer
	// arguments, so calling it that way is ambiguous.
	"scale": {
		func(a int64, b float64) float64 { return float64(a) * b },
		func(a float64, b int64) float64 { return a * float64(b) },
	},
	"sqrt": {
		func(x float64) (float64, error) {
			if x < 0 {
				return 0, errors.WithStack(DomainError{X: big.NewFloat(x), Func: "sqrt"})
			}
			return math.Sqrt(x), nil
		},
	},
}

// Subject is a value together with the registry that exposes its methods.
type Subject struct {
	Value    any
	Registry methods.Registry
}

// Names lists the built-in subjects.
var Names = []string{"Commands", "Math"}

// Lookup finds a built-in subject by name. prec is the precision of
// big.Float results.
func Lookup(name string, prec uint) (Subject, bool) {
	switch name {
	case "Commands":
		return Subject{Value: Commands{Prec: prec}, Registry: methods.Methods{}}, true
	case "Math":
		return Subject{Registry: Math}, true
	}
	return Subject{}, false
}
