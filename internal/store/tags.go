// tags.go implements the tag index and tag reference counts.
//
// Two structures back tagging. document_tags is the secondary index from
// tag to document, rewritten with the document on every store. tags holds
// the per-tag document count, maintained incrementally by bumps and never
// recomputed from a scan.
//
// Design: each bump is a single UPSERT statement, so two bumps on the same
// tag serialise inside SQLite and the read-modify-write cannot interleave.
// Counts clamp at zero and rows are kept at zero rather than removed.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jpl-au/anondocs/internal/validate"
)

// ByTag returns documents carrying tag. The match is exact and
// case-sensitive.
func (s *SQLiteStore) ByTag(ctx context.Context, tag string) (Result[[]Document], error) {
	if err := s.check(); err != nil {
		return Result[[]Document]{}, err
	}
	docs, err := queryDocuments(ctx, s.db, `SELECT `+docColumns+`
		FROM documents d
		INNER JOIN document_tags dt ON dt.document_id = d.id
		WHERE dt.tag = ?`, tag)
	if err != nil {
		return degrade[[]Document](s, "by tag "+tag, err), nil
	}
	return ok(docs), nil
}

// ListTags returns all tags, most used first. Ties are broken by name so the
// order is stable.
func (s *SQLiteStore) ListTags(ctx context.Context) (Result[[]Tag], error) {
	if err := s.check(); err != nil {
		return Result[[]Tag]{}, err
	}
	tags, err := listTags(ctx, s.db)
	if err != nil {
		return degrade[[]Tag](s, "list tags", err), nil
	}
	return ok(tags), nil
}

func listTags(ctx context.Context, q queryer) ([]Tag, error) {
	rows, err := q.QueryContext(ctx, `SELECT name, document_count FROM tags ORDER BY document_count DESC, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []Tag{}
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.Name, &t.DocumentCount); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// BumpTagCount adjusts a tag's document count by delta. A positive bump
// creates the tag on first use; a negative bump never takes the count below
// zero.
func (s *SQLiteStore) BumpTagCount(ctx context.Context, name string, delta int) error {
	if err := s.check(); err != nil {
		return err
	}
	if err := validate.Tag(name); err != nil {
		return err
	}
	return bump(ctx, s.db, name, delta)
}

// bump runs the single-statement count update on either the database or an
// open transaction.
func bump(ctx context.Context, ex execer, name string, delta int) error {
	var q string
	switch delta {
	case 1:
		q = `INSERT INTO tags (name, document_count) VALUES (?, 1)
			ON CONFLICT(name) DO UPDATE SET document_count = document_count + 1`
	case -1:
		q = `INSERT INTO tags (name, document_count) VALUES (?, 0)
			ON CONFLICT(name) DO UPDATE SET document_count = MAX(document_count - 1, 0)`
	default:
		return fmt.Errorf("%w: got %d", ErrInvalidDelta, delta)
	}
	if _, err := ex.ExecContext(ctx, q, name); err != nil {
		return fmt.Errorf("bump tag %s: %w", name, err)
	}
	return nil
}

// documentTags returns the tag set currently indexed for a document.
func documentTags(ctx context.Context, tx *sql.Tx, id string) ([]string, error) {
	rows, err := tx.QueryContext(ctx, `SELECT tag FROM document_tags WHERE document_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("read tags for %s: %w", id, err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// Diff returns the tags present in next but not prev (added) and those
// present in prev but not next (removed). Order follows the input slices.
func Diff(prev, next []string) (added, removed []string) {
	in := func(set []string, t string) bool {
		for _, v := range set {
			if v == t {
				return true
			}
		}
		return false
	}
	for _, t := range next {
		if !in(prev, t) && !in(added, t) {
			added = append(added, t)
		}
	}
	for _, t := range prev {
		if !in(next, t) && !in(removed, t) {
			removed = append(removed, t)
		}
	}
	return added, removed
}
