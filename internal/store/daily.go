// Package store persists daily summary documents and transcripts as
// per-date files under configurable directories.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/hmiyata/mailbrief/internal/summarizer"
)

// emptyStatus is recorded on documents written for days with no qualifying
// emails, so "ran, found nothing" is distinguishable from "never ran".
const emptyStatus = "No important unread emails found"

// Document is the per-date collection of summary records plus metadata.
// email_count always equals the length of the emails list after a write.
type Document struct {
	Date        string                   `yaml:"date"`
	ProcessedAt string                   `yaml:"processed_at"`
	EmailCount  int                      `yaml:"email_count"`
	Status      string                   `yaml:"status,omitempty"`
	Emails      []summarizer.EmailSummary `yaml:"emails"`
}

// DailyStore reads and writes daily summary documents. All writes are full
// atomic rewrites (temp file + rename); no partial-append primitive exists.
type DailyStore struct {
	dir string
	log zerolog.Logger
	now func() time.Time
}

func NewDailyStore(dir string, log zerolog.Logger) *DailyStore {
	return &DailyStore{dir: dir, log: log, now: time.Now}
}

// Path returns the document path for a date.
func (s *DailyStore) Path(date string) string {
	return filepath.Join(s.dir, date+".yaml")
}

// Exists reports whether a document exists for the date.
func (s *DailyStore) Exists(date string) bool {
	_, err := os.Stat(s.Path(date))
	return err == nil
}

// Append adds a record to the end of the date's document, creating the
// document if absent. Existing entries and their order are preserved; the
// count and processed_at metadata are recomputed on every write.
func (s *DailyStore) Append(record summarizer.EmailSummary, date string) (string, error) {
	if err := validateDate(date); err != nil {
		return "", err
	}
	if err := s.ensureDir(); err != nil {
		return "", err
	}

	doc, err := s.loadOrNew(date)
	if err != nil {
		return "", err
	}

	doc.Emails = append(doc.Emails, record)
	doc.EmailCount = len(doc.Emails)
	doc.ProcessedAt = s.now().Format(time.RFC3339)
	doc.Status = ""

	path := s.Path(date)
	if err := s.writeDocument(path, doc); err != nil {
		return "", err
	}

	s.log.Debug().Str("path", path).Int("email_count", doc.EmailCount).Msg("appended summary record")
	return path, nil
}

// WriteEmpty records a document with zero emails for the date. If a
// document already holds emails it is left untouched; writing an empty
// document twice yields the same result.
func (s *DailyStore) WriteEmpty(date string) (string, error) {
	if err := validateDate(date); err != nil {
		return "", err
	}
	if err := s.ensureDir(); err != nil {
		return "", err
	}

	path := s.Path(date)

	if s.Exists(date) {
		doc, err := s.Load(date)
		if err == nil && doc.EmailCount > 0 {
			s.log.Info().Str("path", path).Msg("document already has emails, leaving as is")
			return path, nil
		}
	}

	doc := &Document{
		Date:        date,
		ProcessedAt: s.now().Format(time.RFC3339),
		EmailCount:  0,
		Status:      emptyStatus,
		Emails:      []summarizer.EmailSummary{},
	}

	if err := s.writeDocument(path, doc); err != nil {
		return "", err
	}

	s.log.Info().Str("path", path).Msg("wrote empty daily document")
	return path, nil
}

// Load reads a date's document. Missing pieces are repaired rather than
// rejected: an absent emails list becomes empty and a stale count is
// recomputed.
func (s *DailyStore) Load(date string) (*Document, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path(date))
	if err != nil {
		return nil, fmt.Errorf("store: failed to read %s: %w", s.Path(date), err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("store: failed to parse %s: %w", s.Path(date), err)
	}

	if doc.Date == "" {
		doc.Date = date
	}
	if doc.Emails == nil {
		doc.Emails = []summarizer.EmailSummary{}
	}
	doc.EmailCount = len(doc.Emails)

	return &doc, nil
}

func (s *DailyStore) loadOrNew(date string) (*Document, error) {
	if !s.Exists(date) {
		return &Document{Date: date, Emails: []summarizer.EmailSummary{}}, nil
	}
	return s.Load(date)
}

// writeDocument writes the document to a temporary file in the same
// directory and renames it into place, so a crash mid-write never leaves a
// truncated document. Files are owner-only.
func (s *DailyStore) writeDocument(path string, doc *Document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("store: failed to marshal document: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("store: failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("store: failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("store: failed to set permissions on %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store: failed to close %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("store: failed to replace %s: %w", path, err)
	}
	return nil
}

func (s *DailyStore) ensureDir() error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("store: failed to create output directory %s: %w", s.dir, err)
	}
	return nil
}

func validateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("store: invalid date %q (expected YYYY-MM-DD): %w", date, err)
	}
	return nil
}
