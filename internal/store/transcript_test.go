package store

import (
	"os"
	"runtime"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func newTestTranscripts(t *testing.T) *TranscriptStore {
	t.Helper()
	return NewTranscriptStore(t.TempDir(), zerolog.Nop())
}

func TestTranscriptWriteAndRead(t *testing.T) {
	s := newTestTranscripts(t)

	path, err := s.Write("Good morning! Here's your briefing.", "2024-01-17")
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !strings.HasSuffix(path, "2024-01-17.txt") {
		t.Errorf("Unexpected path: %s", path)
	}

	content, err := s.Read("2024-01-17")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if content != "Good morning! Here's your briefing." {
		t.Errorf("Content = %q", content)
	}
}

func TestTranscriptOverwrittenOnRegeneration(t *testing.T) {
	s := newTestTranscripts(t)

	if _, err := s.Write("first version", "2024-01-17"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := s.Write("second version", "2024-01-17"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	content, err := s.Read("2024-01-17")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if content != "second version" {
		t.Errorf("Content = %q, want overwrite semantics", content)
	}
}

func TestTranscriptEmptyContentRejected(t *testing.T) {
	s := newTestTranscripts(t)
	if _, err := s.Write("", "2024-01-17"); err == nil {
		t.Error("Expected error for empty content")
	}
}

func TestTranscriptInvalidDateRejected(t *testing.T) {
	s := newTestTranscripts(t)
	if _, err := s.Write("content", "January 17"); err == nil {
		t.Error("Expected error for invalid date")
	}
}

func TestTranscriptFilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file mode semantics differ on windows")
	}
	s := newTestTranscripts(t)
	path, err := s.Write("content", "2024-01-17")
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("File permissions = %o, want 600", perm)
	}
}

func TestTranscriptExists(t *testing.T) {
	s := newTestTranscripts(t)
	if s.Exists("2024-01-17") {
		t.Error("Exists before write")
	}
	if _, err := s.Write("content", "2024-01-17"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !s.Exists("2024-01-17") {
		t.Error("Missing after write")
	}
}
