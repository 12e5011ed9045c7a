package methods

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"
)

// Format returns the canonical textual representation of a call result.
// Strings are quoted so that they read back as string literals.
func Format(r any) string {
	switch r := r.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(r)
	case *big.Float:
		if r == nil {
			return "nil"
		}
		return r.Text('g', -1)
	case *big.Int:
		if r == nil {
			return "nil"
		}
		return r.String()
	case float32:
		return strconv.FormatFloat(float64(r), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(r, 'g', -1, 64)
	case fmt.Stringer:
		return r.String()
	}
	v := reflect.ValueOf(r)
	switch {
	case isInt(v.Kind()):
		return strconv.FormatInt(v.Int(), 10)
	case isUint(v.Kind()):
		return strconv.FormatUint(v.Uint(), 10)
	case v.Kind() == reflect.String:
		return strconv.Quote(v.String())
	case v.Kind() == reflect.Bool:
		return strconv.FormatBool(v.Bool())
	}
	return fmt.Sprint(r)
}
