package methods

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func newTestConsole(in string, out *bytes.Buffer, opts ...Option) *Console {
	r := NewScanReader(strings.NewReader(in), out)
	return NewConsole(r, Methods{}, testSubject{}, append(opts, Output(out))...)
}

func TestConsoleRun(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"quit", "q\n", "> Bye\n"},
		{"eof", "", "> \nBye\n"},
		{"values", "2\n\n\"abc\"\n12.5\nq\n", "> 2\n> > \"abc\"\n> 12.5\n> Bye\n"},
		{"call", "(add 2 3)\nq\n", "> 5\n> Bye\n"},
		{"stops-at-q", "q\n(add 9 9)\n", "> Bye\n"},
		{"continues-after-error", "x\n1\nq\n", "> Unexpected character encountered at offset 0\nx\n^\n> 1\n> Bye\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var out bytes.Buffer
			con := newTestConsole(c.in, &out)
			if err := con.Run(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := out.String(); got != HelpText+c.want {
				t.Errorf("wrong output:\nwant %q\ngot  %q", HelpText+c.want, got)
			}
			if con.Session().Running {
				t.Error("console still running after Run")
			}
		})
	}
}

type failReader struct{}

func (failReader) Prompt(string) (string, error) {
	return "", errors.New("broken terminal")
}

func TestConsoleReadError(t *testing.T) {
	var out bytes.Buffer
	con := NewConsole(failReader{}, Methods{}, testSubject{}, Output(&out))
	if err := con.Run(); err == nil {
		t.Error("no error from broken reader")
	}
	if !strings.HasSuffix(out.String(), "Bye\n") {
		t.Errorf("no farewell after read error: %q", out.String())
	}
}

func TestConsoleHandle(t *testing.T) {
	cases := []struct {
		name string
		line string
		want string
	}{
		{"empty", "", ""},
		{"int", "7", "7\n"},
		{"float", "12.5", "12.5\n"},
		{"string", `"a b"`, "\"a b\"\n"},
		{"help", "?", HelpText},
		{"bad-char", "12a", "Unexpected character encountered at offset 2\n12a\n--^\n"},
		{"second-point", "1.2.3", "Unexpected character encountered at offset 3\n1.2.3\n---^\n"},
		{"unterminated", `"abc`, "Reached end of string while parsing\n\"abc\n----^\n"},
		{"lone-paren", "(", "Unexpected character encountered at offset 0\n(\n^\n"},
		{"single-other", "x", "Unexpected character encountered at offset 0\nx\n^\n"},
		{"call", "(add 2 3)", "5\n"},
		{"nested", "(add (add 1 2) 3)", "6\n"},
		{"call-string", `(greet "x")`, "\"hello, x\"\n"},
		{"call-float", "(half 3)", "1.5\n"},
		{"void", "(nothing)", ""},
		{"call-literal-error", "(add 1 2x)", "Unexpected character encountered at offset 8\n(add 1 2x)\n--------^\n"},
		{"unclosed", "(add 1 2", "Reached end of expression while parsing\n(add 1 2\n--------^\n"},
		{"no-operator", "()", "Expected operator\n()\n-^\n"},
		{"multibyte-unterminated", `"é`, "Reached end of string while parsing\n\"é\n--^\n"},
		{"multibyte-call", `(add "é" 1x)`, "Unexpected character encountered at offset 10\n(add \"é\" 1x)\n----------^\n"},
		{"unresolved", "(foo 1)", "resolve foo: unresolved operator\n"},
		{"invoke", "(fail)", "invoke fail: fail: boom\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var out bytes.Buffer
			con := newTestConsole("", &out)
			con.Handle(c.line)
			if got := out.String(); got != c.want {
				t.Errorf("%q: wrong output:\nwant %q\ngot  %q", c.line, c.want, got)
			}
			if !con.Session().Running {
				t.Errorf("%q stopped the console", c.line)
			}
		})
	}
}

func TestConsoleQuit(t *testing.T) {
	var out bytes.Buffer
	con := newTestConsole("", &out)
	con.Handle("q")
	if con.Session().Running {
		t.Error("q did not stop the console")
	}
	if out.Len() != 0 {
		t.Errorf("q printed %q", out.String())
	}
}

func TestConsoleVerbose(t *testing.T) {
	var out bytes.Buffer
	level := new(slog.LevelVar)
	con := newTestConsole("", &out, LogLevel(level))
	if con.Session().Verbose {
		t.Fatal("console starts verbose")
	}
	if level.Level() != slog.LevelWarn {
		t.Errorf("quiet log level is %v", level.Level())
	}
	con.Handle("v")
	if !con.Session().Verbose {
		t.Error("v did not turn verbose on")
	}
	if level.Level() != slog.LevelDebug {
		t.Errorf("verbose log level is %v", level.Level())
	}
	con.Handle("v")
	if con.Session().Verbose {
		t.Error("v twice did not restore verbose")
	}
	if got, want := out.String(), "Verbose on\nVerbose off\n"; got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestConsoleVerboseTrace(t *testing.T) {
	var out bytes.Buffer
	con := newTestConsole("", &out, Verbose(true))
	con.Handle("12a")
	s := out.String()
	if !strings.HasPrefix(s, "Unexpected character encountered at offset 2\n12a\n--^\n") {
		t.Errorf("missing diagnostic:\n%s", s)
	}
	if !strings.Contains(s, "literal.go") {
		t.Errorf("missing stack trace:\n%s", s)
	}

	out.Reset()
	con.Handle("(foo)")
	if !strings.Contains(out.String(), "dispatch.go") {
		t.Errorf("missing stack trace:\n%s", out.String())
	}
}

func TestConsoleListFunctions(t *testing.T) {
	var out bytes.Buffer
	con := newTestConsole("", &out)
	con.Handle("f")
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	ms := (Methods{}).List(testSubject{})
	if len(lines) != len(ms) {
		t.Fatalf("want %d lines, got %d:\n%s", len(ms), len(lines), out.String())
	}
	for i, m := range ms {
		if lines[i] != FormatMethod(m) {
			t.Errorf("line %d: want %q, got %q", i, FormatMethod(m), lines[i])
		}
	}
}

func TestConsoleSession(t *testing.T) {
	a := NewConsole(failReader{}, Methods{}, testSubject{})
	b := NewConsole(failReader{}, Methods{}, testSubject{})
	if a.Session().ID == "" || a.Session().ID == b.Session().ID {
		t.Errorf("bad session IDs %q and %q", a.Session().ID, b.Session().ID)
	}
	if _, ok := a.Session().Subject.(testSubject); !ok {
		t.Errorf("wrong subject %#v", a.Session().Subject)
	}
}

func TestConsoleLogsSession(t *testing.T) {
	var out, logs bytes.Buffer
	l := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	con := newTestConsole("", &out, Logger(l))
	con.Handle("(add 1 2)")
	if !strings.Contains(logs.String(), "session="+con.Session().ID) {
		t.Errorf("logs lack session id:\n%s", logs.String())
	}
	if !strings.Contains(logs.String(), "msg=invoke") {
		t.Errorf("dispatcher did not log with the console logger:\n%s", logs.String())
	}
}
