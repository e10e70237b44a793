// read.go implements document retrieval for the Service layer.
//
// Get returns documents exactly as stored. Read additionally decrypts, so
// plaintext of an encrypted document only exists in the returned copy.

package document

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/jpl-au/anondocs/internal/service"
	"github.com/jpl-au/anondocs/internal/store"
)

// Get returns the stored form of a document.
func (s *Service) Get(ctx context.Context, id string) (*store.Document, error) {
	res, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", id, err)
	}
	if res.Degraded {
		return nil, unavailable("get "+id, res.Cause)
	}
	return res.Value, nil
}

// Read returns a document with plaintext content.
func (s *Service) Read(ctx context.Context, id, password string) (*store.Document, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !doc.Encrypted {
		return doc, nil
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}
	plain, err := s.crypto.Decrypt(doc.Content, password)
	if err != nil {
		return nil, err
	}
	doc.Content = string(plain)
	return doc, nil
}

// List returns all documents, or those carrying opts.Tag, sorted.
func (s *Service) List(ctx context.Context, opts service.ListOptions) (store.Result[[]store.Document], error) {
	if opts.Sort != "" && !slices.Contains(service.SortOrders, opts.Sort) {
		return store.Result[[]store.Document]{}, fmt.Errorf("unknown sort %q (valid: %s)",
			opts.Sort, strings.Join(service.SortOrders, ", "))
	}

	var res store.Result[[]store.Document]
	var err error
	if opts.Tag != "" {
		res, err = s.store.ByTag(ctx, opts.Tag)
	} else {
		res, err = s.store.All(ctx)
	}
	if err != nil {
		return res, err
	}
	sortDocs(res.Value, opts.Sort)
	return res, nil
}

// Search returns documents whose title or plaintext content contains
// query, most recently modified first.
func (s *Service) Search(ctx context.Context, query string) (store.Result[[]store.Document], error) {
	res, err := s.store.Search(ctx, query)
	if err != nil {
		return res, err
	}
	sortDocs(res.Value, service.SortModified)
	return res, nil
}

// sortDocs orders docs in place. Ties fall back to id so output is stable.
func sortDocs(docs []store.Document, order string) {
	slices.SortFunc(docs, func(a, b store.Document) int {
		var c int
		switch order {
		case service.SortCreated:
			c = cmpDesc(a.CreatedAt, b.CreatedAt)
		case service.SortTitle:
			c = strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		default:
			c = cmpDesc(a.UpdatedAt, b.UpdatedAt)
		}
		if c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

func cmpDesc(a, b int64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	default:
		return 0
	}
}
