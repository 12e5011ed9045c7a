package main

import (
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	"github.com/pkg/errors"

	"github.com/zephyrtronium/methods"
)

const historyFile = ".methods_history"

// lineReader chooses how to read console input. Terminals get line editing
// and history; anything else is scanned line by line. done must be called
// when the console stops.
func lineReader(stdin io.Reader, stdout io.Writer) (r methods.LineReader, done func()) {
	f, ok := stdin.(*os.File)
	if !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return methods.NewScanReader(stdin, stdout), func() {}
	}

	ln := liner.NewLiner()
	ln.SetCtrlCAborts(true)
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		if _, ok := <-sigc; ok {
			ln.Close()
			os.Exit(130)
		}
	}()

	done = func() {
		signal.Stop(sigc)
		close(sigc)
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
		ln.Close()
	}
	return linerReader{ln}, done
}

// linerReader adapts a liner.State to methods.LineReader. Ctrl-C discards the
// current line instead of ending input.
type linerReader struct {
	ln *liner.State
}

func (r linerReader) Prompt(prompt string) (string, error) {
	line, err := r.ln.Prompt(prompt)
	switch {
	case errors.Is(err, liner.ErrPromptAborted):
		return "", nil
	case err != nil:
		return "", err
	}
	if strings.TrimSpace(line) != "" {
		r.ln.AppendHistory(line)
	}
	return line, nil
}
