// Package contact implements the contact record: validated name, phone
// numbers, and an optional birthday.
package contact

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Validation errors carry the exact text shown to the user; the command
// layer prefixes them with "Error: " verbatim.
var (
	ErrNameRequired    = errors.New("Name is required.")
	ErrInvalidPhone    = errors.New("Invalid phone number format. It must be 10 digits.")
	ErrInvalidBirthday = errors.New("Invalid date format. Use DD.MM.YYYY")
	ErrPhoneNotFound   = errors.New("Phone number not found.")
)

// Name is a non-empty contact name.
type Name string

// ParseName validates and returns a Name.
func ParseName(s string) (Name, error) {
	if s == "" {
		return "", ErrNameRequired
	}
	return Name(s), nil
}

func (n Name) String() string { return string(n) }

// Phone is a phone number of exactly ten decimal digits.
type Phone string

// ParsePhone validates and returns a Phone.
func ParsePhone(s string) (Phone, error) {
	if len(s) != 10 {
		return "", ErrInvalidPhone
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return "", ErrInvalidPhone
		}
	}
	return Phone(s), nil
}

func (p Phone) String() string { return string(p) }

// BirthdayLayout is the wire and display format for birthdays.
const BirthdayLayout = "02.01.2006"

// Birthday is a calendar date.
type Birthday struct {
	date time.Time
}

// ParseBirthday parses a DD.MM.YYYY string into a Birthday.
// Impossible calendar dates (e.g. 31.02.2000) are rejected.
func ParseBirthday(s string) (Birthday, error) {
	d, err := time.Parse(BirthdayLayout, s)
	if err != nil {
		return Birthday{}, ErrInvalidBirthday
	}
	return Birthday{date: d}, nil
}

// String formats the birthday as DD.MM.YYYY.
func (b Birthday) String() string { return b.date.Format(BirthdayLayout) }

// Date returns the underlying calendar date.
func (b Birthday) Date() time.Time { return b.date }

// next returns the first occurrence of the birthday's month/day that is
// on or after start. start must be a UTC midnight; the occurrence is
// built in UTC too, so the subtraction in DaysUntil counts calendar
// days regardless of DST transitions in the caller's zone.
func (b Birthday) next(start time.Time) time.Time {
	occ := time.Date(start.Year(), b.date.Month(), b.date.Day(), 0, 0, 0, 0, time.UTC)
	if occ.Before(start) {
		occ = time.Date(start.Year()+1, b.date.Month(), b.date.Day(), 0, 0, 0, 0, time.UTC)
	}
	return occ
}

// DaysUntil returns the number of calendar days from today to the next
// occurrence of the birthday. Zero means the birthday is today.
func (b Birthday) DaysUntil(today time.Time) int {
	y, m, d := today.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int(b.next(start).Sub(start).Hours() / 24)
}

// Record is one person: a name, an ordered list of phone numbers
// (duplicates allowed), and at most one birthday.
type Record struct {
	name     Name
	phones   []Phone
	birthday *Birthday
}

// NewRecord creates a Record with a validated name and no phones.
func NewRecord(name string) (*Record, error) {
	n, err := ParseName(name)
	if err != nil {
		return nil, err
	}
	return &Record{name: n}, nil
}

// Name returns the record's name.
func (r *Record) Name() Name { return r.name }

// Phones returns the phone list in insertion order.
func (r *Record) Phones() []Phone { return r.phones }

// Birthday returns the birthday and whether one is set.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// AddPhone validates and appends a phone number. Duplicates are not
// checked; insertion order is preserved.
func (r *Record) AddPhone(number string) error {
	p, err := ParsePhone(number)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone removes the first phone matching number exactly.
func (r *Record) RemovePhone(number string) error {
	for i, p := range r.phones {
		if string(p) == number {
			r.phones = append(r.phones[:i], r.phones[i+1:]...)
			return nil
		}
	}
	return ErrPhoneNotFound
}

// EditPhone replaces old with new in place. The replacement is atomic:
// if new fails validation, old remains present.
func (r *Record) EditPhone(oldNumber, newNumber string) error {
	idx := -1
	for i, p := range r.phones {
		if string(p) == oldNumber {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrPhoneNotFound
	}
	p, err := ParsePhone(newNumber)
	if err != nil {
		return err
	}
	r.phones[idx] = p
	return nil
}

// FindPhone returns the phone matching number exactly, if present.
func (r *Record) FindPhone(number string) (Phone, bool) {
	for _, p := range r.phones {
		if string(p) == number {
			return p, true
		}
	}
	return "", false
}

// AddBirthday parses a DD.MM.YYYY date and sets it as the birthday,
// overwriting any existing one.
func (r *Record) AddBirthday(dateStr string) error {
	b, err := ParseBirthday(dateStr)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

// DaysToBirthday returns the day count from today to the next occurrence
// of the birthday, or false if no birthday is set.
func (r *Record) DaysToBirthday(today time.Time) (int, bool) {
	if r.birthday == nil {
		return 0, false
	}
	return r.birthday.DaysUntil(today), true
}

// String renders a one-line summary of the record.
func (r *Record) String() string {
	numbers := make([]string, len(r.phones))
	for i, p := range r.phones {
		numbers[i] = string(p)
	}
	s := fmt.Sprintf("Contact name: %s, phones: %s", r.name, strings.Join(numbers, "; "))
	if r.birthday != nil {
		s += fmt.Sprintf(", birthday: %s", r.birthday)
	}
	return s
}
