// bundle.go implements full-database export and import.
//
// Export reads all three collections inside one read transaction so the
// snapshot is consistent. Import clears and refills them inside one write
// transaction: a failure part way through rolls back to the state before
// the import, never leaving a half-restored database. Tag counts are taken
// from the bundle as-is.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jpl-au/anondocs/internal/validate"
)

// Export returns a snapshot of every document, tag and setting.
func (s *SQLiteStore) Export(ctx context.Context) (Result[Bundle], error) {
	if err := s.check(); err != nil {
		return Result[Bundle]{}, err
	}
	b, err := s.export(ctx)
	if err != nil {
		return degrade[Bundle](s, "export", err), nil
	}
	return ok(b), nil
}

func (s *SQLiteStore) export(ctx context.Context) (Bundle, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Bundle{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var b Bundle
	if b.Documents, err = queryDocuments(ctx, tx, `SELECT `+docColumns+` FROM documents d ORDER BY d.created_at, d.id`); err != nil {
		return Bundle{}, fmt.Errorf("documents: %w", err)
	}
	if b.Tags, err = listTags(ctx, tx); err != nil {
		return Bundle{}, fmt.Errorf("tags: %w", err)
	}
	if b.Settings, err = listSettings(ctx, tx); err != nil {
		return Bundle{}, fmt.Errorf("settings: %w", err)
	}
	return b, nil
}

// Import replaces the database contents with the bundle.
func (s *SQLiteStore) Import(ctx context.Context, b Bundle) error {
	for _, t := range b.Tags {
		if err := validate.Tag(t.Name); err != nil {
			return fmt.Errorf("import: %w", err)
		}
		if t.DocumentCount < 0 {
			return fmt.Errorf("import: tag %s has negative count %d", t.Name, t.DocumentCount)
		}
	}

	return s.Tx(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{"document_tags", "documents", "tags", "settings"} {
			if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
				return fmt.Errorf("import: clear %s: %w", table, err)
			}
		}

		for _, d := range b.Documents {
			if err := putDoc(ctx, tx, d); err != nil {
				return fmt.Errorf("import: %w", err)
			}
		}
		for _, t := range b.Tags {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO tags (name, document_count) VALUES (?, ?)
				ON CONFLICT(name) DO UPDATE SET document_count = excluded.document_count
			`, t.Name, t.DocumentCount); err != nil {
				return fmt.Errorf("import: tag %s: %w", t.Name, err)
			}
		}
		for _, st := range b.Settings {
			if st.Key == "" {
				return fmt.Errorf("import: setting with empty key")
			}
			if err := putSetting(ctx, tx, st.Key, st.Value); err != nil {
				return fmt.Errorf("import: %w", err)
			}
		}
		return nil
	})
}
