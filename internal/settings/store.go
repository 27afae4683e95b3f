// Package settings is the local key-value store for per-fundraiser boolean
// flags ("marked as donated"). Flags persist across sessions with no expiry.
// They are a non-authoritative UI hint; the server-side donated set on the
// user's profile remains the source of truth.
package settings

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS donation_flags (
	fundraiser_id TEXT PRIMARY KEY,
	marked        INTEGER NOT NULL DEFAULT 0
);`

// Store is a sqlite-backed flag store.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the settings database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open settings db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply settings schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SetMarked records the flag for a fundraiser, overwriting any prior value.
func (s *Store) SetMarked(ctx context.Context, fundraiserID string, marked bool) error {
	v := 0
	if marked {
		v = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO donation_flags (fundraiser_id, marked) VALUES (?, ?)
		 ON CONFLICT(fundraiser_id) DO UPDATE SET marked = excluded.marked`,
		fundraiserID, v)
	if err != nil {
		return fmt.Errorf("set marked flag for '%s': %w", fundraiserID, err)
	}
	return nil
}

// IsMarked reports the flag for a fundraiser; an absent row is false.
func (s *Store) IsMarked(ctx context.Context, fundraiserID string) (bool, error) {
	var v int
	err := s.db.QueryRowContext(ctx,
		`SELECT marked FROM donation_flags WHERE fundraiser_id = ?`, fundraiserID).Scan(&v)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read marked flag for '%s': %w", fundraiserID, err)
	}
	return v != 0, nil
}
