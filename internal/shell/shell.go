// Package shell implements the interactive contact manager session:
// a Bubble Tea prompt when attached to a terminal, with a plain
// line-reader loop as fallback.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/smileynet/rolodex/internal/command"
)

const (
	banner     = "Welcome to the assistant bot!"
	farewell   = "Good bye!"
	promptText = "Enter a command: "
)

// Options configures an interactive session.
type Options struct {
	Dispatcher *command.Dispatcher
	Save       func() error // Called once when the session ends.
	Input      io.Reader    // Plain-mode input (default: os.Stdin).
	Output     io.Writer    // Output destination (default: os.Stdout).
	ForcePlain bool         // Force the plain loop even on a TTY.
}

// Run executes the session until the user exits, then saves the book.
// It picks the Bubble Tea UI when output is a TTY, the plain loop
// otherwise. ForcePlain overrides TTY detection.
func Run(opts Options) error {
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	if opts.ForcePlain || !isTTY(opts.Output) {
		return runPlain(opts)
	}

	m := NewModel(opts.Dispatcher, opts.Save)
	p := tea.NewProgram(m, tea.WithOutput(opts.Output))

	final, err := p.Run()
	if err != nil {
		// The terminal UI failed to start; fall back to the plain loop.
		return runPlain(opts)
	}
	if fm, ok := final.(Model); ok {
		return fm.saveErr
	}
	return nil
}

// isTTY reports whether w is connected to a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// runPlain reads command lines until exit or EOF, dispatching each one.
// The book is saved before the farewell is printed.
func runPlain(opts Options) error {
	w := opts.Output
	_, _ = fmt.Fprintln(w, banner)

	sc := bufio.NewScanner(opts.Input)
	for {
		_, _ = fmt.Fprint(w, promptText)
		if !sc.Scan() {
			// EOF behaves like exit.
			_, _ = fmt.Fprintln(w)
			return finish(w, opts.Save)
		}

		reply, quit := opts.Dispatcher.Dispatch(sc.Text())
		if quit {
			return finish(w, opts.Save)
		}
		if reply != "" {
			_, _ = fmt.Fprintln(w, reply)
		}
	}
}

// finish saves the book, prints the farewell, and returns the save error.
func finish(w io.Writer, save func() error) error {
	var err error
	if save != nil {
		err = save()
	}
	_, _ = fmt.Fprintln(w, farewell)
	return err
}
