// Package command implements the contact manager's command operations:
// a thin, error-translating layer between a command surface (interactive
// shell or one-shot CLI) and the address book.
package command

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/smileynet/rolodex/internal/book"
	"github.com/smileynet/rolodex/internal/contact"
)

// ErrBirthdayNotFound carries the exact text shown to the user.
var ErrBirthdayNotFound = errors.New("Birthday not found.")

// usageError reports a command invoked with too few arguments.
type usageError struct {
	usage string
}

func (e usageError) Error() string { return "Usage: " + e.usage }

// Parse splits a command line into a verb and its arguments.
func Parse(line string) (verb string, args []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}

// Add creates a record for name if absent, otherwise reuses the existing
// one, and appends phone if given. The record is kept even when the
// phone fails validation.
func Add(b *book.Book, name, phone string) (string, error) {
	rec, ok := b.Find(name)
	msg := "Contact updated."
	if !ok {
		var err error
		rec, err = contact.NewRecord(name)
		if err != nil {
			return "", err
		}
		b.Add(rec)
		msg = "Contact added."
	}
	if phone != "" {
		if err := rec.AddPhone(phone); err != nil {
			return "", err
		}
	}
	return msg, nil
}

// Change replaces oldPhone with newPhone on the named contact.
func Change(b *book.Book, name, oldPhone, newPhone string) (string, error) {
	rec, ok := b.Find(name)
	if !ok {
		return "", book.ErrContactNotFound
	}
	if err := rec.EditPhone(oldPhone, newPhone); err != nil {
		return "", err
	}
	return "Phone number updated.", nil
}

// Phones lists the named contact's phone numbers.
func Phones(b *book.Book, name string) (string, error) {
	rec, ok := b.Find(name)
	if !ok {
		return "", book.ErrContactNotFound
	}
	numbers := make([]string, len(rec.Phones()))
	for i, p := range rec.Phones() {
		numbers[i] = p.String()
	}
	return fmt.Sprintf("%s: %s", rec.Name(), strings.Join(numbers, ", ")), nil
}

// All renders the whole book.
func All(b *book.Book) string {
	return b.String()
}

// AddBirthday sets the named contact's birthday from a DD.MM.YYYY string.
func AddBirthday(b *book.Book, name, date string) (string, error) {
	rec, ok := b.Find(name)
	if !ok {
		return "", book.ErrContactNotFound
	}
	if err := rec.AddBirthday(date); err != nil {
		return "", err
	}
	return "Birthday added.", nil
}

// ShowBirthday shows the named contact's birthday.
func ShowBirthday(b *book.Book, name string) (string, error) {
	rec, ok := b.Find(name)
	if !ok {
		return "", book.ErrContactNotFound
	}
	bd, ok := rec.Birthday()
	if !ok {
		return "", ErrBirthdayNotFound
	}
	return fmt.Sprintf("%s: %s", rec.Name(), bd), nil
}

// Birthdays lists contacts whose birthday falls within window days of
// today, in the book's insertion order.
func Birthdays(b *book.Book, today time.Time, window int) string {
	upcoming := b.UpcomingBirthdays(today, window)
	if len(upcoming) == 0 {
		return "No upcoming birthdays."
	}
	lines := make([]string, len(upcoming))
	for i, u := range upcoming {
		lines[i] = fmt.Sprintf("%s: %s", u.Name, u.Birthday)
	}
	return strings.Join(lines, "\n")
}

// Remove deletes the named contact from the book.
func Remove(b *book.Book, name string) (string, error) {
	if err := b.Delete(name); err != nil {
		return "", err
	}
	return "Contact removed.", nil
}

// Dispatcher routes parsed command lines to operations against one book.
type Dispatcher struct {
	Book   *book.Book
	Now    func() time.Time // Clock for birthday queries; nil means time.Now.
	Window int              // Days ahead for the birthdays verb.
}

// NewDispatcher creates a Dispatcher over b using the real clock.
func NewDispatcher(b *book.Book, window int) *Dispatcher {
	return &Dispatcher{Book: b, Now: time.Now, Window: window}
}

func (d *Dispatcher) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// Dispatch runs one command line and returns the reply to display and
// whether the session should end. Errors never escape: they are
// converted to "Error: <message>" replies so the loop always continues.
func (d *Dispatcher) Dispatch(line string) (reply string, quit bool) {
	verb, args := Parse(line)
	switch verb {
	case "":
		return "", false
	case "hello":
		return "How can I help you?", false
	case "close", "exit":
		return "Good bye!", true
	case "add", "change", "phone", "all", "add-birthday", "show-birthday", "birthdays", "remove":
		reply, err := d.exec(verb, args)
		if err != nil {
			return "Error: " + err.Error(), false
		}
		return reply, false
	default:
		return "Invalid command.", false
	}
}

// exec runs a book operation, checking argument counts first.
func (d *Dispatcher) exec(verb string, args []string) (string, error) {
	switch verb {
	case "add":
		if len(args) < 1 {
			return "", usageError{"add NAME [PHONE]"}
		}
		phone := ""
		if len(args) > 1 {
			phone = args[1]
		}
		return Add(d.Book, args[0], phone)
	case "change":
		if len(args) < 3 {
			return "", usageError{"change NAME OLD NEW"}
		}
		return Change(d.Book, args[0], args[1], args[2])
	case "phone":
		if len(args) < 1 {
			return "", usageError{"phone NAME"}
		}
		return Phones(d.Book, args[0])
	case "all":
		return All(d.Book), nil
	case "add-birthday":
		if len(args) < 2 {
			return "", usageError{"add-birthday NAME DD.MM.YYYY"}
		}
		return AddBirthday(d.Book, args[0], args[1])
	case "show-birthday":
		if len(args) < 1 {
			return "", usageError{"show-birthday NAME"}
		}
		return ShowBirthday(d.Book, args[0])
	case "birthdays":
		return Birthdays(d.Book, d.now(), d.Window), nil
	case "remove":
		if len(args) < 1 {
			return "", usageError{"remove NAME"}
		}
		return Remove(d.Book, args[0])
	default:
		return "Invalid command.", nil
	}
}
