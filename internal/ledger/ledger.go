// Package ledger persists the identities of items that have already been
// collected, so the same feed entry is never processed twice across runs.
package ledger

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Ledger is a durable append-only set of item identities. All identities are
// loaded into memory on open; MarkSeen writes through to disk before the
// identity becomes visible via Seen. Entries are never removed. A single
// writer per ledger file is assumed.
type Ledger struct {
	db   *sql.DB
	seen map[string]struct{}
}

// Open opens (or creates) a ledger at the given path and loads all recorded
// identities into memory.
func Open(path string) (*Ledger, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger database: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS seen (
		id        TEXT PRIMARY KEY,
		marked_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create ledger schema: %w", err)
	}

	l := &Ledger{db: db, seen: make(map[string]struct{})}
	if err := l.load(); err != nil {
		db.Close()
		return nil, err
	}

	return l, nil
}

func (l *Ledger) load() error {
	rows, err := l.db.Query("SELECT id FROM seen")
	if err != nil {
		return fmt.Errorf("failed to load ledger entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		l.seen[id] = struct{}{}
	}

	return rows.Err()
}

// Seen reports whether an identity has already been recorded.
func (l *Ledger) Seen(id string) bool {
	_, ok := l.seen[id]
	return ok
}

// MarkSeen records an identity. The write hits durable storage before the
// in-memory set is updated, so a crash cannot lose a recorded identity.
// Marking an already-seen identity is a no-op.
func (l *Ledger) MarkSeen(id string) error {
	if _, err := l.db.Exec("INSERT OR IGNORE INTO seen (id) VALUES (?)", id); err != nil {
		return fmt.Errorf("failed to record identity: %w", err)
	}
	l.seen[id] = struct{}{}
	return nil
}

// Count returns the number of recorded identities.
func (l *Ledger) Count() int {
	return len(l.seen)
}

// Close closes the underlying database.
func (l *Ledger) Close() error {
	return l.db.Close()
}
