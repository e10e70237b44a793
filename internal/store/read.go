// read.go implements point lookup, full scan and storage statistics.

package store

import (
	"context"
	"errors"
)

// Get retrieves a document by id.
func (s *SQLiteStore) Get(ctx context.Context, id string) (Result[*Document], error) {
	if err := s.check(); err != nil {
		return Result[*Document]{}, err
	}
	row := s.db.QueryRowContext(ctx, `SELECT `+docColumns+` FROM documents d WHERE d.id = ?`, id)
	doc, err := scanDocument(row)
	if errors.Is(err, ErrNotFound) {
		return Result[*Document]{}, ErrNotFound
	}
	if err != nil {
		return degrade[*Document](s, "get "+id, err), nil
	}
	return ok(doc), nil
}

// All returns every stored document.
func (s *SQLiteStore) All(ctx context.Context) (Result[[]Document], error) {
	if err := s.check(); err != nil {
		return Result[[]Document]{}, err
	}
	docs, err := queryDocuments(ctx, s.db, `SELECT `+docColumns+` FROM documents d`)
	if err != nil {
		return degrade[[]Document](s, "all documents", err), nil
	}
	return ok(docs), nil
}

// Stats counts rows in each collection and reports the database file size
// from the page count, so it works for any journal mode.
func (s *SQLiteStore) Stats(ctx context.Context) (Result[Stats], error) {
	if err := s.check(); err != nil {
		return Result[Stats]{}, err
	}
	var st Stats
	row := s.db.QueryRowContext(ctx, `SELECT
		(SELECT COUNT(*) FROM documents),
		(SELECT COUNT(*) FROM documents WHERE encrypted = 1),
		(SELECT COUNT(*) FROM tags),
		(SELECT COUNT(*) FROM settings)`)
	if err := row.Scan(&st.Documents, &st.Encrypted, &st.Tags, &st.Settings); err != nil {
		return degrade[Stats](s, "stats", err), nil
	}

	var pages, size int64
	if err := s.db.QueryRowContext(ctx, `PRAGMA page_count`).Scan(&pages); err != nil {
		return degrade[Stats](s, "stats page_count", err), nil
	}
	if err := s.db.QueryRowContext(ctx, `PRAGMA page_size`).Scan(&size); err != nil {
		return degrade[Stats](s, "stats page_size", err), nil
	}
	st.SizeBytes = pages * size
	return ok(st), nil
}
