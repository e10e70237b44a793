// write.go implements document writes.
//
// Put and Remove are the raw operations: they maintain the document_tags
// index but leave tag counts alone. Save and Delete wrap them in a
// transaction with the matching count adjustments, computed from the tag-set
// difference, so the count invariant holds without caller bookkeeping.
// Every write returns its error to the caller.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jpl-au/anondocs/internal/validate"
)

// Put inserts or replaces a document by id.
func (s *SQLiteStore) Put(ctx context.Context, doc Document) error {
	return s.Tx(ctx, func(tx *sql.Tx) error {
		return putDoc(ctx, tx, doc)
	})
}

// Save stores a document and adjusts tag counts: +1 for each tag added
// since the stored version, -1 for each removed.
func (s *SQLiteStore) Save(ctx context.Context, doc Document) error {
	return s.Tx(ctx, func(tx *sql.Tx) error {
		prev, err := documentTags(ctx, tx, doc.ID)
		if err != nil {
			return err
		}
		if err := putDoc(ctx, tx, doc); err != nil {
			return err
		}
		// putDoc has normalised the set; read what was actually stored.
		next, err := documentTags(ctx, tx, doc.ID)
		if err != nil {
			return err
		}
		added, removed := Diff(prev, next)
		for _, t := range added {
			if err := bump(ctx, tx, t, 1); err != nil {
				return err
			}
		}
		for _, t := range removed {
			if err := bump(ctx, tx, t, -1); err != nil {
				return err
			}
		}
		return nil
	})
}

// Remove deletes a document and its index rows. Idempotent.
func (s *SQLiteStore) Remove(ctx context.Context, id string) error {
	return s.Tx(ctx, func(tx *sql.Tx) error {
		return removeDoc(ctx, tx, id)
	})
}

// Delete removes a document and decrements each of its tags. Idempotent:
// a missing id changes nothing.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	return s.Tx(ctx, func(tx *sql.Tx) error {
		prev, err := documentTags(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := removeDoc(ctx, tx, id); err != nil {
			return err
		}
		for _, t := range prev {
			if err := bump(ctx, tx, t, -1); err != nil {
				return err
			}
		}
		return nil
	})
}

// putDoc writes the document row and replaces its index rows.
func putDoc(ctx context.Context, tx *sql.Tx, doc Document) error {
	if err := validate.ID(doc.ID); err != nil {
		return err
	}
	tags, err := validate.Tags(doc.Tags)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (id, title, content, created_at, updated_at, encrypted)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			encrypted = excluded.encrypted
	`, doc.ID, doc.Title, doc.Content, doc.CreatedAt, doc.UpdatedAt, doc.Encrypted)
	if err != nil {
		return fmt.Errorf("put document %s: %w", doc.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM document_tags WHERE document_id = ?`, doc.ID); err != nil {
		return fmt.Errorf("clear tags for %s: %w", doc.ID, err)
	}
	for i, t := range tags {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO document_tags (document_id, tag, position) VALUES (?, ?, ?)`,
			doc.ID, t, i); err != nil {
			return fmt.Errorf("index tag %s for %s: %w", t, doc.ID, err)
		}
	}
	return nil
}

// removeDoc deletes the document row and its index rows.
func removeDoc(ctx context.Context, tx *sql.Tx, id string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM document_tags WHERE document_id = ?`, id); err != nil {
		return fmt.Errorf("remove tags for %s: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id); err != nil {
		return fmt.Errorf("remove document %s: %w", id, err)
	}
	return nil
}
