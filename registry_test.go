package methods

import (
	"errors"
	"math/big"
	"reflect"
	"sort"
	"testing"
)

type testSubject struct{}

func (testSubject) Add(a, b int) int              { return a + b }
func (testSubject) Greet(name string) string      { return "hello, " + name }
func (testSubject) Half(x float64) float64        { return x / 2 }
func (testSubject) Big(x *big.Float) *big.Float   { return x }
func (testSubject) Nil() *big.Float               { return nil }
func (testSubject) Nothing()                      {}
func (testSubject) Fail() error                   { return errors.New("boom") }
func (testSubject) Panic() int                    { panic("oops") }
func (testSubject) Pair() (int, int)              { return 1, 2 }
func (testSubject) Sum(xs ...int) int             { return len(xs) }
func (testSubject) Check(ok bool) (string, error) { return "checked", nil }

func TestMethodsList(t *testing.T) {
	ms := Methods{}.List(testSubject{})
	var names []string
	for _, m := range ms {
		names = append(names, m.Name)
	}
	sort.Strings(names)
	want := []string{"add", "big", "check", "fail", "greet", "half", "nil", "nothing", "panic"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("wrong methods:\nwant %q\ngot  %q", want, names)
	}
}

func TestMethodsListNil(t *testing.T) {
	if ms := (Methods{}).List(nil); len(ms) != 0 {
		t.Errorf("nil subject has methods %v", ms)
	}
}

func TestFormatMethod(t *testing.T) {
	want := map[string]string{
		"add":     "(add int int) : int",
		"greet":   "(greet string) : string",
		"big":     "(big *big.Float) : *big.Float",
		"nothing": "(nothing) : void",
		"fail":    "(fail) : void",
		"check":   "(check bool) : string",
	}
	for _, m := range (Methods{}).List(testSubject{}) {
		w, ok := want[m.Name]
		if !ok {
			continue
		}
		if got := FormatMethod(m); got != w {
			t.Errorf("want %q, got %q", w, got)
		}
	}
}

func TestMethodsResolve(t *testing.T) {
	cases := []struct {
		name string
		argc int
		n    int
	}{
		{"add", 2, 1},
		{"add", 1, 0},
		{"add", 3, 0},
		{"nothing", 0, 1},
		{"Add", 2, 0},
		{"sum", 0, 0},
		{"missing", 0, 0},
	}
	for _, c := range cases {
		if got := (Methods{}).Resolve(testSubject{}, c.name, c.argc); len(got) != c.n {
			t.Errorf("%s/%d: want %d candidates, got %d", c.name, c.argc, c.n, len(got))
		}
	}
}

func TestFuncsList(t *testing.T) {
	f := Funcs{
		"b": {func(int) int { return 0 }, func(string) int { return 0 }},
		"a": {func() {}},
		"c": {func(...int) {}},
	}
	ms := f.List(nil)
	var got []string
	for _, m := range ms {
		got = append(got, FormatMethod(m))
	}
	want := []string{"(a) : void", "(b int) : int", "(b string) : int"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("wrong listing:\nwant %q\ngot  %q", want, got)
	}
	if r := f.Resolve(nil, "b", 1); len(r) != 2 {
		t.Errorf("want 2 overloads of b, got %d", len(r))
	}
	if r := f.Resolve(nil, "z", 0); len(r) != 0 {
		t.Errorf("want no overloads of z, got %d", len(r))
	}
}

func TestFuncsNotFunc(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("listing a non-function did not panic")
		}
	}()
	Funcs{"x": {1}}.List(nil)
}

func TestMethodCall(t *testing.T) {
	cases := []struct {
		name string
		args []reflect.Value
		want any
		err  bool
	}{
		{"add", []reflect.Value{reflect.ValueOf(1), reflect.ValueOf(2)}, 3, false},
		{"nothing", nil, nil, false},
		{"check", []reflect.Value{reflect.ValueOf(true)}, "checked", false},
		{"fail", nil, nil, true},
		{"panic", nil, nil, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ms := (Methods{}).Resolve(testSubject{}, c.name, len(c.args))
			if len(ms) != 1 {
				t.Fatalf("want 1 method, got %d", len(ms))
			}
			r, err := ms[0].Call(c.args)
			if c.err {
				if !errors.Is(err, ErrInvocation) {
					t.Errorf("want ErrInvocation, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(r, c.want) {
				t.Errorf("want %#v, got %#v", c.want, r)
			}
		})
	}
}

func TestInvocationMessages(t *testing.T) {
	ms := (Methods{}).Resolve(testSubject{}, "fail", 0)
	_, err := ms[0].Call(nil)
	if got, want := err.Error(), "fail: boom"; got != want {
		t.Errorf("want %q, got %q", want, got)
	}
	ms = (Methods{}).Resolve(testSubject{}, "panic", 0)
	_, err = ms[0].Call(nil)
	if got, want := err.Error(), "panic panicked: oops"; got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}
