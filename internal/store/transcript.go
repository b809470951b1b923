package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// TranscriptStore writes one plain-text transcript file per date.
// Transcripts are overwritten on regeneration, never appended.
type TranscriptStore struct {
	dir string
	log zerolog.Logger
}

func NewTranscriptStore(dir string, log zerolog.Logger) *TranscriptStore {
	return &TranscriptStore{dir: dir, log: log}
}

// Path returns the transcript path for a date.
func (s *TranscriptStore) Path(date string) string {
	return filepath.Join(s.dir, date+".txt")
}

// Exists reports whether a transcript exists for the date.
func (s *TranscriptStore) Exists(date string) bool {
	_, err := os.Stat(s.Path(date))
	return err == nil
}

// Write persists transcript content for a date, replacing any previous
// transcript atomically. Empty content is rejected.
func (s *TranscriptStore) Write(content, date string) (string, error) {
	if err := validateDate(date); err != nil {
		return "", err
	}
	if content == "" {
		return "", fmt.Errorf("store: transcript content must not be empty")
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return "", fmt.Errorf("store: failed to create transcript directory %s: %w", s.dir, err)
	}

	path := s.Path(date)

	tmp, err := os.CreateTemp(s.dir, "."+date+".txt.tmp-*")
	if err != nil {
		return "", fmt.Errorf("store: failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return "", fmt.Errorf("store: failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return "", fmt.Errorf("store: failed to set permissions on %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("store: failed to close %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return "", fmt.Errorf("store: failed to replace %s: %w", path, err)
	}

	s.log.Info().Str("path", path).Msg("wrote transcript")
	return path, nil
}

// Read returns the transcript content for a date.
func (s *TranscriptStore) Read(date string) (string, error) {
	if err := validateDate(date); err != nil {
		return "", err
	}
	data, err := os.ReadFile(s.Path(date))
	if err != nil {
		return "", fmt.Errorf("store: failed to read %s: %w", s.Path(date), err)
	}
	return string(data), nil
}
