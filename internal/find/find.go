// Package find searches document titles and plaintext content.
//
// Matching is a case-insensitive substring test. Encrypted content is
// ciphertext, so encrypted documents only match on their title.
package find

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/jpl-au/anondocs/internal/format"
	"github.com/jpl-au/anondocs/internal/ls"
	"github.com/jpl-au/anondocs/internal/service"
	"github.com/jpl-au/anondocs/internal/store"
)

// ErrEmptyQuery is returned for a blank query.
var ErrEmptyQuery = errors.New("empty search query")

// Options configures a search operation.
type Options struct {
	IDs bool // only output ids
}

// Result contains the outcome of a search operation.
type Result struct {
	Query     string
	Documents []store.Document
	Degraded  bool
}

// ToJSON converts the result to JSON-serializable format.
func (r Result) ToJSON() any {
	return map[string]any{
		"query":     r.Query,
		"documents": ls.Entries(r.Documents),
		"degraded":  r.Degraded,
	}
}

// Run searches documents and writes output to w.
func Run(ctx context.Context, w io.Writer, svc service.Service, query string, opts Options) (Result, error) {
	result := Result{Query: query}
	if strings.TrimSpace(query) == "" {
		return result, ErrEmptyQuery
	}

	res, err := svc.Search(ctx, query)
	if err != nil {
		return result, err
	}
	result.Documents = res.Value
	result.Degraded = res.Degraded

	if opts.IDs {
		return result, format.IDs(w, res.Value)
	}
	return result, format.SearchResults(w, res.Value, query)
}
