package methods

import (
	"math"
	"math/big"
	"reflect"
	"strconv"
)

// value is an evaluated argument. It is either an untyped literal, which
// takes the type of whichever parameter it is coerced to, or the typed result
// of a nested call.
type value struct {
	lit Literal
	v   reflect.Value
}

func literal(l Literal) value {
	return value{lit: l}
}

func typed(v reflect.Value) value {
	return value{v: v}
}

func (v value) String() string {
	if v.lit.Kind != 0 {
		return v.lit.Kind.String() + " " + v.lit.Text
	}
	return typeName(v.v.Type())
}

// Costs of coercing an argument to a parameter type. The dispatcher selects
// the overload with the lowest total cost.
const (
	costExact = iota
	costWiden
	costConvert
	costBig
	costAny
)

var (
	bigFloatType = reflect.TypeOf((*big.Float)(nil))
	bigIntType   = reflect.TypeOf((*big.Int)(nil))
)

// coerce converts an argument to a parameter type. ok is false if the
// argument cannot be converted.
func coerce(arg value, t reflect.Type, prec uint) (r reflect.Value, cost int, ok bool) {
	if arg.lit.Kind != 0 {
		return coerceLit(arg.lit, t, prec)
	}
	return coerceTyped(arg.v, t, prec)
}

func coerceLit(l Literal, t reflect.Type, prec uint) (reflect.Value, int, bool) {
	switch l.Kind {
	case String:
		s := l.Text[1 : len(l.Text)-1]
		switch {
		case t.Kind() == reflect.String:
			return reflect.ValueOf(s).Convert(t), costExact, true
		case t.Kind() == reflect.Interface && reflect.TypeOf(s).Implements(t):
			return reflect.ValueOf(s).Convert(t), costAny, true
		}
	case Int:
		switch t.Kind() {
		case reflect.Int:
			if x, err := strconv.ParseInt(l.Text, 10, t.Bits()); err == nil {
				return reflect.ValueOf(x).Convert(t), costExact, true
			}
		case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if x, err := strconv.ParseInt(l.Text, 10, t.Bits()); err == nil {
				return reflect.ValueOf(x).Convert(t), costWiden, true
			}
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			if x, err := strconv.ParseUint(l.Text, 10, t.Bits()); err == nil {
				return reflect.ValueOf(x).Convert(t), costWiden, true
			}
		case reflect.Float32, reflect.Float64:
			if x, err := strconv.ParseFloat(l.Text, t.Bits()); err == nil {
				return reflect.ValueOf(x).Convert(t), costConvert, true
			}
		case reflect.Interface:
			if x, err := strconv.ParseInt(l.Text, 10, 0); err == nil && reflect.TypeOf(0).Implements(t) {
				return reflect.ValueOf(int(x)).Convert(t), costAny, true
			}
		}
		switch t {
		case bigIntType:
			if x, ok := new(big.Int).SetString(l.Text, 10); ok {
				return reflect.ValueOf(x), costConvert, true
			}
		case bigFloatType:
			if x, ok := parseBig(l.Text, prec); ok {
				return reflect.ValueOf(x), costBig, true
			}
		}
	case Float:
		switch t.Kind() {
		case reflect.Float64:
			if x, err := strconv.ParseFloat(l.Text, 64); err == nil {
				return reflect.ValueOf(x).Convert(t), costExact, true
			}
		case reflect.Float32:
			if x, err := strconv.ParseFloat(l.Text, 32); err == nil {
				return reflect.ValueOf(x).Convert(t), costWiden, true
			}
		case reflect.Interface:
			if x, err := strconv.ParseFloat(l.Text, 64); err == nil && reflect.TypeOf(x).Implements(t) {
				return reflect.ValueOf(x).Convert(t), costAny, true
			}
		}
		if t == bigFloatType {
			if x, ok := parseBig(l.Text, prec); ok {
				return reflect.ValueOf(x), costBig, true
			}
		}
	}
	return reflect.Value{}, 0, false
}

// parseBig parses a decimal number to the given precision.
func parseBig(s string, prec uint) (*big.Float, bool) {
	x, _, err := new(big.Float).SetPrec(prec).Parse(s, 10)
	if err != nil {
		return nil, false
	}
	return x, true
}

func coerceTyped(v reflect.Value, t reflect.Type, prec uint) (reflect.Value, int, bool) {
	src := v.Type()
	switch {
	case src == t:
		return v, costExact, true
	case t.Kind() == reflect.Interface:
		if src.Implements(t) {
			return v.Convert(t), costAny, true
		}
		return reflect.Value{}, 0, false
	case src.AssignableTo(t):
		return v.Convert(t), costWiden, true
	}
	switch {
	case isInt(src.Kind()) && isInt(t.Kind()), isUint(src.Kind()) && isUint(t.Kind()):
		if t.Bits() >= src.Bits() {
			return v.Convert(t), costWiden, true
		}
	case isFloat(src.Kind()) && isFloat(t.Kind()):
		if t.Bits() >= src.Bits() {
			return v.Convert(t), costWiden, true
		}
	case (isInt(src.Kind()) || isUint(src.Kind())) && isFloat(t.Kind()):
		return v.Convert(t), costConvert, true
	case src.Kind() == reflect.String && t.Kind() == reflect.String:
		return v.Convert(t), costWiden, true
	case t == bigFloatType:
		x := new(big.Float).SetPrec(prec)
		switch {
		case isInt(src.Kind()):
			x.SetInt64(v.Int())
		case isUint(src.Kind()):
			x.SetUint64(v.Uint())
		case isFloat(src.Kind()) && !math.IsNaN(v.Float()):
			x.SetFloat64(v.Float())
		default:
			return reflect.Value{}, 0, false
		}
		return reflect.ValueOf(x), costBig, true
	}
	return reflect.Value{}, 0, false
}

func isInt(k reflect.Kind) bool {
	return reflect.Int <= k && k <= reflect.Int64
}

func isUint(k reflect.Kind) bool {
	return reflect.Uint <= k && k <= reflect.Uintptr
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}
