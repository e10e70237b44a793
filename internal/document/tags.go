// tags.go implements document tagging operations for the Service layer.
//
// Tags are part of the document row, so tagging rewrites the document
// through store.Save and the tag index counts follow from the set difference.

package document

import (
	"context"
	"errors"
	"slices"

	"github.com/jpl-au/anondocs/internal/store"
	"github.com/jpl-au/anondocs/internal/validate"
)

var errNoTags = errors.New("no tags given")

// Tag adds labels to a document. Labels it already has are ignored.
func (s *Service) Tag(ctx context.Context, id string, tags ...string) error {
	return s.retag(ctx, "tag", id, tags, func(cur, in []string) []string {
		for _, t := range in {
			if !slices.Contains(cur, t) {
				cur = append(cur, t)
			}
		}
		return cur
	})
}

// Untag removes labels from a document. Labels it does not have are ignored.
func (s *Service) Untag(ctx context.Context, id string, tags ...string) error {
	return s.retag(ctx, "untag", id, tags, func(cur, in []string) []string {
		return slices.DeleteFunc(cur, func(t string) bool { return slices.Contains(in, t) })
	})
}

func (s *Service) retag(ctx context.Context, op, id string, tags []string, apply func(cur, in []string) []string) error {
	if len(tags) == 0 {
		return errNoTags
	}
	in, err := validate.Tags(tags)
	if err != nil {
		return err
	}
	doc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	next := apply(slices.Clone(doc.Tags), in)
	if slices.Equal(next, doc.Tags) {
		return nil
	}
	doc.Tags = next
	doc.UpdatedAt = s.now().UnixMilli()
	if err := s.store.Save(ctx, *doc); err != nil {
		return s.saveFailed(op, err)
	}
	return nil
}

// Tags returns the tag index, highest count first.
func (s *Service) Tags(ctx context.Context) (store.Result[[]store.Tag], error) {
	return s.store.ListTags(ctx)
}
