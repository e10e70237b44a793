// Package ls lists documents with tag filtering and sorting.
//
// Listings never carry content: encrypted content is ciphertext and plain
// content can be large. Long format reports its size instead.
package ls

import (
	"context"
	"io"

	"github.com/jpl-au/anondocs/internal/format"
	"github.com/jpl-au/anondocs/internal/service"
	"github.com/jpl-au/anondocs/internal/store"
)

// Options configures a list operation.
type Options struct {
	Tag  string // exact tag filter
	Sort string // one of service.SortOrders
	Long bool   // long format with metadata
	IDs  bool   // ids only
}

// Result contains the outcome of a list operation.
type Result struct {
	Documents []store.Document

	// Degraded is set when storage could not be read and the listing is
	// empty for that reason rather than because nothing matched.
	Degraded bool
}

// Entry is the JSON form of a listed document.
type Entry struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	CreatedAt int64    `json:"createdAt"`
	UpdatedAt int64    `json:"updatedAt"`
	Encrypted bool     `json:"encrypted"`
	Tags      []string `json:"tags"`
	Size      int      `json:"size"`
}

// Entries converts documents to their listing form.
func Entries(docs []store.Document) []Entry {
	out := make([]Entry, len(docs))
	for i, d := range docs {
		out[i] = Entry{
			ID:        d.ID,
			Title:     d.Title,
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
			Encrypted: d.Encrypted,
			Tags:      d.Tags,
			Size:      len(d.Content),
		}
	}
	return out
}

// ToJSON converts the result to JSON-serializable format.
func (r Result) ToJSON() any {
	return map[string]any{
		"documents": Entries(r.Documents),
		"degraded":  r.Degraded,
	}
}

// Run lists documents and writes formatted output to w.
func Run(ctx context.Context, w io.Writer, svc service.Service, opts Options) (Result, error) {
	var result Result

	res, err := svc.List(ctx, service.ListOptions{Tag: opts.Tag, Sort: opts.Sort})
	if err != nil {
		return result, err
	}
	result.Documents = res.Value
	result.Degraded = res.Degraded

	switch {
	case opts.IDs:
		err = format.IDs(w, res.Value)
	case opts.Long:
		err = format.Long(w, res.Value)
	default:
		err = format.List(w, res.Value)
	}
	return result, err
}
