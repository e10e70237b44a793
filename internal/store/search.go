// search.go implements substring search across documents.
//
// Design: the match runs in Go over a full scan rather than in SQL.
// SQLite's lower() only folds ASCII, and case-insensitive matching must
// treat "Ünïcode" and "ünïcode" alike. Document counts for a personal
// notebook are small enough that the scan is not a concern.

package store

import (
	"context"
	"strings"
)

// Search returns documents whose title or content contains query,
// ignoring case. An empty query matches every document.
func (s *SQLiteStore) Search(ctx context.Context, query string) (Result[[]Document], error) {
	res, err := s.All(ctx)
	if err != nil || res.Degraded {
		return res, err
	}

	q := strings.ToLower(query)
	matches := []Document{}
	for _, d := range res.Value {
		if strings.Contains(strings.ToLower(d.Title), q) || strings.Contains(strings.ToLower(d.Content), q) {
			matches = append(matches, d)
		}
	}
	return ok(matches), nil
}
