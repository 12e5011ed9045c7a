//go:build go1.18
// +build go1.18

package methods_test

import (
	"errors"
	"testing"

	"github.com/zephyrtronium/methods"
)

func FuzzEvaluate(f *testing.F) {
	f.Add("12")
	f.Add("1.2.3")
	f.Add(`"abc`)
	f.Fuzz(func(t *testing.T, s string) {
		l, err := methods.Evaluate(s)
		if err == nil {
			if l.Text != s {
				t.Fatalf("%q evaluated to %q", s, l.Text)
			}
			return
		}
		if l != (methods.Literal{}) {
			t.Fatalf("%q has both value %v and error %v", s, l, err)
		}
		if s == "" {
			return
		}
		var se *methods.SyntaxError
		if !errors.As(err, &se) {
			t.Fatalf("%q: want *SyntaxError, got %v", s, err)
		}
		if se.Offset < 0 || se.Offset > len(s) {
			t.Fatalf("%q: offset %d out of range", s, se.Offset)
		}
	})
}
