// maint.go implements database maintenance.
//
// Checkpoint uses TRUNCATE mode, which flushes the WAL and removes the
// -wal/-shm files; it is called on graceful shutdown. Vacuum rebuilds the
// file to reclaim pages freed by deletes and imports.

package store

import (
	"context"
	"fmt"
)

// Checkpoint writes all WAL data back to the main database file and truncates
// the WAL.
func (s *SQLiteStore) Checkpoint(ctx context.Context) error {
	if err := s.check(); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `PRAGMA wal_checkpoint(TRUNCATE)`); err != nil {
		return fmt.Errorf("WAL checkpoint: %w", err)
	}
	return nil
}

// Vacuum rebuilds the database file.
func (s *SQLiteStore) Vacuum(ctx context.Context) error {
	if err := s.check(); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `VACUUM`); err != nil {
		return fmt.Errorf("vacuum: %w", err)
	}
	return nil
}
