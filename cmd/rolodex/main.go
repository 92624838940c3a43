package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/smileynet/rolodex/internal/book"
	"github.com/smileynet/rolodex/internal/command"
	"github.com/smileynet/rolodex/internal/config"
	"github.com/smileynet/rolodex/internal/contact"
	"github.com/smileynet/rolodex/internal/shell"
	"github.com/smileynet/rolodex/internal/storage"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for rolodex.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`

	Shell        ShellCmd        `cmd:"" default:"1" help:"Open the interactive session (default)."`
	Add          AddCmd          `cmd:"" help:"Add a contact, appending a phone number if given."`
	Change       ChangeCmd       `cmd:"" help:"Replace one of a contact's phone numbers."`
	Phone        PhoneCmd        `cmd:"" help:"List a contact's phone numbers."`
	All          AllCmd          `cmd:"" help:"List every contact."`
	AddBirthday  AddBirthdayCmd  `cmd:"" name:"add-birthday" help:"Set a contact's birthday (DD.MM.YYYY)."`
	ShowBirthday ShowBirthdayCmd `cmd:"" name:"show-birthday" help:"Show a contact's birthday."`
	Birthdays    BirthdaysCmd    `cmd:"" help:"List birthdays within the upcoming window."`
	Remove       RemoveCmd       `cmd:"" help:"Delete a contact."`
}

// loadConfig loads layered config from user and project paths with env overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/rolodex/config.yaml"),
		".rolodex/config.yaml",
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// bookSaver abstracts persistence for testing one-shot command wiring.
type bookSaver interface {
	Save(*book.Book) error
}

// operation is one command applied to a loaded book.
type operation func(b *book.Book, cfg *config.Config) (string, error)

// oneShot loads config and book, applies op, saves when mutate is set,
// and prints the reply.
func oneShot(w io.Writer, mutate bool, op operation) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store := storage.NewFileStore(cfg.Storage.Path)
	b, err := store.Load()
	if err != nil {
		return err
	}
	return runOp(w, b, cfg, store, mutate, op)
}

// runOp applies op against a loaded book, enabling testable wiring.
func runOp(w io.Writer, b *book.Book, cfg *config.Config, store bookSaver, mutate bool, op operation) error {
	reply, err := op(b, cfg)
	if err != nil {
		return err
	}
	if mutate {
		if err := store.Save(b); err != nil {
			return err
		}
	}
	_, _ = fmt.Fprintln(w, reply)
	return nil
}

// ShellCmd opens the interactive session.
type ShellCmd struct {
	Plain bool `help:"Force plain text input/output even if stdout is a TTY." default:"false"`
}

// Run loads the book and hands control to the interactive session.
// The book is saved once, when the session ends.
func (s *ShellCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("shell: %w", err)
	}

	store := storage.NewFileStore(cfg.Storage.Path)
	b, err := store.Load()
	if err != nil {
		return fmt.Errorf("shell: %w", err)
	}

	return shell.Run(shell.Options{
		Dispatcher: command.NewDispatcher(b, cfg.Book.UpcomingWindow),
		Save:       func() error { return store.Save(b) },
		ForcePlain: s.Plain,
	})
}

// AddCmd adds a contact, appending a phone number if given.
type AddCmd struct {
	Name  string `arg:"" help:"Contact name."`
	Phone string `arg:"" optional:"" help:"Phone number (10 digits)."`
}

// Run executes the add command.
func (a *AddCmd) Run() error {
	return oneShot(os.Stdout, true, func(b *book.Book, _ *config.Config) (string, error) {
		return command.Add(b, a.Name, a.Phone)
	})
}

// ChangeCmd replaces one of a contact's phone numbers.
type ChangeCmd struct {
	Name string `arg:"" help:"Contact name."`
	Old  string `arg:"" help:"Phone number to replace."`
	New  string `arg:"" help:"Replacement phone number (10 digits)."`
}

// Run executes the change command.
func (c *ChangeCmd) Run() error {
	return oneShot(os.Stdout, true, func(b *book.Book, _ *config.Config) (string, error) {
		return command.Change(b, c.Name, c.Old, c.New)
	})
}

// PhoneCmd lists a contact's phone numbers.
type PhoneCmd struct {
	Name string `arg:"" help:"Contact name."`
}

// Run executes the phone command.
func (p *PhoneCmd) Run() error {
	return oneShot(os.Stdout, false, func(b *book.Book, _ *config.Config) (string, error) {
		return command.Phones(b, p.Name)
	})
}

// AllCmd lists every contact.
type AllCmd struct{}

// Run executes the all command.
func (a *AllCmd) Run() error {
	return oneShot(os.Stdout, false, func(b *book.Book, _ *config.Config) (string, error) {
		return command.All(b), nil
	})
}

// AddBirthdayCmd sets a contact's birthday.
type AddBirthdayCmd struct {
	Name string `arg:"" help:"Contact name."`
	Date string `arg:"" help:"Birthday as DD.MM.YYYY."`
}

// Run executes the add-birthday command.
func (a *AddBirthdayCmd) Run() error {
	return oneShot(os.Stdout, true, func(b *book.Book, _ *config.Config) (string, error) {
		return command.AddBirthday(b, a.Name, a.Date)
	})
}

// ShowBirthdayCmd shows a contact's birthday.
type ShowBirthdayCmd struct {
	Name string `arg:"" help:"Contact name."`
}

// Run executes the show-birthday command.
func (s *ShowBirthdayCmd) Run() error {
	return oneShot(os.Stdout, false, func(b *book.Book, _ *config.Config) (string, error) {
		return command.ShowBirthday(b, s.Name)
	})
}

// BirthdaysCmd lists birthdays within the configured upcoming window.
type BirthdaysCmd struct{}

// Run executes the birthdays command.
func (c *BirthdaysCmd) Run() error {
	return oneShot(os.Stdout, false, func(b *book.Book, cfg *config.Config) (string, error) {
		return command.Birthdays(b, time.Now(), cfg.Book.UpcomingWindow), nil
	})
}

// RemoveCmd deletes a contact.
type RemoveCmd struct {
	Name string `arg:"" help:"Contact name."`
}

// Run executes the remove command.
func (r *RemoveCmd) Run() error {
	return oneShot(os.Stdout, true, func(b *book.Book, _ *config.Config) (string, error) {
		return command.Remove(b, r.Name)
	})
}

// Exit codes.
const (
	exitSuccess = 0
	exitCommand = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code. Validation and
// lookup failures exit 1; config and storage failures exit 2.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	for _, known := range []error{
		contact.ErrNameRequired,
		contact.ErrInvalidPhone,
		contact.ErrInvalidBirthday,
		contact.ErrPhoneNotFound,
		book.ErrContactNotFound,
		command.ErrBirthdayNotFound,
	} {
		if errors.Is(err, known) {
			return exitCommand
		}
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli, kong.Vars{"version": version + " " + commit + " " + date})
	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
