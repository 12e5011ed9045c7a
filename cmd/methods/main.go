package main

import (
	"flag"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/pkg/errors"

	"github.com/zephyrtronium/methods"
)

// Exit statuses, one per category of startup failure.
const (
	exitOK = iota
	exitFlag
	exitArgs
	exitMissing
	exitHelp
	exitLibrary
	exitType
	exitInput
)

const synopsisText = `Synopsis:
  methods
  methods { -h | -? | -help }+
  methods {-v -verbose}* [-p <bits>] <library> [<type-name>]
Arguments:
  <library>:   The Go plugin (.so) that contains the subject to load, or "builtin".
  <type-name>: The name of the subject containing exported methods to call. [Default="Commands"]
Qualifiers:
  -v -verbose: Print out detailed errors, warning, and tracking.
  -h -? -help: Print out a detailed help message.
  -p <bits>:   Precision of big.Float arguments made from literals. [Default=64]
`

const description = `
This program interprets commands of the format '(<method> {arg}*)' on the command line, finds corresponding
methods in <type-name>, and executes them, printing the result to stdout.
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// config is the resolved command line.
type config struct {
	verbose  bool
	help     bool
	prec     uint
	library  string
	typeName string
}

// parseArgs parses flags interleaved with positional arguments. The result
// is an exit status other than exitOK if the arguments are malformed.
func parseArgs(args []string, elog *log.Logger) (config, int) {
	cfg := config{prec: 64, typeName: "Commands"}
	fs := flag.NewFlagSet("methods", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&cfg.verbose, "v", false, "verbose")
	fs.BoolVar(&cfg.verbose, "verbose", false, "verbose")
	fs.BoolVar(&cfg.help, "h", false, "help")
	fs.BoolVar(&cfg.help, "?", false, "help")
	fs.BoolVar(&cfg.help, "help", false, "help")
	fs.UintVar(&cfg.prec, "p", 64, "precision")
	var pos []string
	for rest := args; ; {
		if err := fs.Parse(rest); err != nil {
			elog.Println("Unrecognized qualifier:", err)
			return cfg, exitFlag
		}
		if fs.NArg() == 0 {
			break
		}
		pos = append(pos, fs.Arg(0))
		rest = fs.Args()[1:]
	}
	switch len(pos) {
	case 2:
		cfg.typeName = pos[1]
		fallthrough
	case 1:
		cfg.library = pos[0]
	case 0: // do nothing
	default:
		elog.Println("This program takes at most two command-line arguments")
		return cfg, exitArgs
	}
	if cfg.prec == 0 {
		elog.Printf("precision (%d) must be positive", cfg.prec)
		return cfg, exitFlag
	}
	return cfg, exitOK
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		io.WriteString(stdout, synopsisText)
		return exitOK
	}
	elog := log.New(stderr, "", 0)
	cfg, code := parseArgs(args, elog)
	if code != exitOK {
		elog.Print(synopsisText)
		return code
	}
	switch {
	case cfg.help && cfg.library == "":
		io.WriteString(stdout, synopsisText)
		io.WriteString(stdout, description)
		return exitOK
	case cfg.help:
		elog.Println("Qualifier '-help' (-h, -?) should not appear with any command-line arguments")
		elog.Print(synopsisText)
		return exitHelp
	case cfg.library == "":
		elog.Println("Missing <library> argument")
		elog.Print(synopsisText)
		return exitMissing
	}

	subj, err := load(cfg.library, cfg.typeName, cfg.prec)
	if err != nil {
		elog.Println(err)
		elog.Print(synopsisText)
		if errors.Is(err, errNoLibrary) {
			return exitLibrary
		}
		return exitType
	}

	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	in, done := lineReader(stdin, stdout)
	defer done()
	c := methods.NewConsole(in, subj.Registry, subj.Value,
		methods.Verbose(cfg.verbose),
		methods.Output(stdout),
		methods.Logger(logger),
		methods.LogLevel(level),
		methods.Prec(cfg.prec),
	)
	if err := c.Run(); err != nil {
		elog.Println(err)
		return exitInput
	}
	return exitOK
}
