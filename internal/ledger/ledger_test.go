package ledger

import (
	"path/filepath"
	"testing"
)

func TestLedger_MarkAndSeen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")

	l, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer l.Close()

	if l.Seen("abc123") {
		t.Error("Expected fresh ledger not to contain 'abc123'")
	}

	if err := l.MarkSeen("abc123"); err != nil {
		t.Fatalf("MarkSeen failed: %v", err)
	}

	if !l.Seen("abc123") {
		t.Error("Expected 'abc123' to be seen after MarkSeen")
	}

	if l.Count() != 1 {
		t.Errorf("Expected count 1, got %d", l.Count())
	}
}

func TestLedger_MarkSeenIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")

	l, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer l.Close()

	for i := 0; i < 3; i++ {
		if err := l.MarkSeen("same-id"); err != nil {
			t.Fatalf("MarkSeen iteration %d failed: %v", i, err)
		}
	}

	if l.Count() != 1 {
		t.Errorf("Expected count 1 after repeated marks, got %d", l.Count())
	}
}

func TestLedger_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")

	l, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	ids := []string{"one", "two", "three"}
	for _, id := range ids {
		if err := l.MarkSeen(id); err != nil {
			t.Fatalf("MarkSeen(%s) failed: %v", id, err)
		}
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Reopen simulates a process restart.
	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer reopened.Close()

	for _, id := range ids {
		if !reopened.Seen(id) {
			t.Errorf("Expected '%s' to survive reopen", id)
		}
	}
	if reopened.Seen("four") {
		t.Error("Unexpected identity 'four' in reopened ledger")
	}
}

func TestLedger_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "ledger.db")

	l, err := Open(path)
	if err != nil {
		t.Fatalf("Open with nested path failed: %v", err)
	}
	defer l.Close()

	if err := l.MarkSeen("x"); err != nil {
		t.Errorf("MarkSeen failed: %v", err)
	}
}
