// Package book implements the address book: an insertion-ordered
// collection of contact records keyed by name.
package book

import (
	"errors"
	"strings"
	"time"

	"github.com/smileynet/rolodex/internal/contact"
)

// ErrContactNotFound carries the exact text shown to the user.
var ErrContactNotFound = errors.New("Contact not found.")

// Book maps names to contact records, remembering insertion order for
// rendering and birthday scans.
type Book struct {
	names   []string
	records map[string]*contact.Record
}

// New creates an empty Book.
func New() *Book {
	return &Book{records: make(map[string]*contact.Record)}
}

// Add inserts a record keyed by its name. Adding a record whose name is
// already present overwrites that slot, keeping its position.
func (b *Book) Add(rec *contact.Record) {
	name := rec.Name().String()
	if _, ok := b.records[name]; !ok {
		b.names = append(b.names, name)
	}
	b.records[name] = rec
}

// Find returns the record for name, if present. Exact key lookup.
func (b *Book) Find(name string) (*contact.Record, bool) {
	rec, ok := b.records[name]
	return rec, ok
}

// Delete removes the record for name.
func (b *Book) Delete(name string) error {
	if _, ok := b.records[name]; !ok {
		return ErrContactNotFound
	}
	delete(b.records, name)
	for i, n := range b.names {
		if n == name {
			b.names = append(b.names[:i], b.names[i+1:]...)
			break
		}
	}
	return nil
}

// Len returns the number of records.
func (b *Book) Len() int { return len(b.names) }

// Records returns all records in insertion order.
func (b *Book) Records() []*contact.Record {
	recs := make([]*contact.Record, len(b.names))
	for i, name := range b.names {
		recs[i] = b.records[name]
	}
	return recs
}

// Upcoming is one entry in an upcoming-birthdays scan.
type Upcoming struct {
	Name     string
	Birthday contact.Birthday
}

// UpcomingBirthdays returns the records whose next birthday falls within
// window days of today, inclusive on both ends (today counts as day 0).
// Results are in insertion order, not sorted by date.
func (b *Book) UpcomingBirthdays(today time.Time, window int) []Upcoming {
	var upcoming []Upcoming
	for _, rec := range b.Records() {
		days, ok := rec.DaysToBirthday(today)
		if !ok {
			continue
		}
		if days >= 0 && days <= window {
			bd, _ := rec.Birthday()
			upcoming = append(upcoming, Upcoming{
				Name:     rec.Name().String(),
				Birthday: bd,
			})
		}
	}
	return upcoming
}

// String renders every record on its own line, in insertion order.
func (b *Book) String() string {
	if b.Len() == 0 {
		return "Address book is empty."
	}
	lines := make([]string, len(b.names))
	for i, rec := range b.Records() {
		lines[i] = rec.String()
	}
	return strings.Join(lines, "\n")
}
