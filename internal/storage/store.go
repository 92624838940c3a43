// Package storage implements address book persistence to a YAML file.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/smileynet/rolodex/internal/book"
	"github.com/smileynet/rolodex/internal/contact"
)

// FileStore persists one address book as a YAML file.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore that reads and writes the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the file path the store reads and writes.
func (s *FileStore) Path() string { return s.path }

// bookFile is the on-disk YAML document.
type bookFile struct {
	Contacts []contactEntry `yaml:"contacts"`
}

// contactEntry is one serialized contact. Phone order is preserved and
// the birthday uses the DD.MM.YYYY display format.
type contactEntry struct {
	Name     string   `yaml:"name"`
	Phones   []string `yaml:"phones,omitempty"`
	Birthday string   `yaml:"birthday,omitempty"`
}

// Save writes the book to the store's file, overwriting it. The parent
// directory is created if missing.
func (s *FileStore) Save(b *book.Book) error {
	doc := bookFile{Contacts: make([]contactEntry, 0, b.Len())}
	for _, rec := range b.Records() {
		entry := contactEntry{Name: rec.Name().String()}
		for _, p := range rec.Phones() {
			entry.Phones = append(entry.Phones, p.String())
		}
		if bd, ok := rec.Birthday(); ok {
			entry.Birthday = bd.String()
		}
		doc.Contacts = append(doc.Contacts, entry)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("storage: creating directory: %w", err)
		}
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("storage: marshaling: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("storage: writing %s: %w", s.path, err)
	}
	return nil
}

// Load reads the book from the store's file. A missing file is not an
// error: it yields an empty book. Any other failure (unreadable file,
// bad YAML, entries failing validation) is returned to the caller.
func (s *FileStore) Load() (*book.Book, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return book.New(), nil
		}
		return nil, fmt.Errorf("storage: reading %s: %w", s.path, err)
	}

	var doc bookFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("storage: parsing %s: %w", s.path, err)
	}

	b := book.New()
	for _, entry := range doc.Contacts {
		rec, err := contact.NewRecord(entry.Name)
		if err != nil {
			return nil, fmt.Errorf("storage: %s: contact %q: %w", s.path, entry.Name, err)
		}
		for _, number := range entry.Phones {
			if err := rec.AddPhone(number); err != nil {
				return nil, fmt.Errorf("storage: %s: contact %q: phone %q: %w", s.path, entry.Name, number, err)
			}
		}
		if entry.Birthday != "" {
			if err := rec.AddBirthday(entry.Birthday); err != nil {
				return nil, fmt.Errorf("storage: %s: contact %q: birthday %q: %w", s.path, entry.Name, entry.Birthday, err)
			}
		}
		b.Add(rec)
	}
	return b, nil
}
