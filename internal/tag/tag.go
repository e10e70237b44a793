// Package tag provides document tagging operations for the CLI layer.
//
// Add and Remove report the document's tag set after the change; List
// prints the tag index with per-tag document counts.
package tag

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jpl-au/anondocs/internal/format"
	"github.com/jpl-au/anondocs/internal/service"
	"github.com/jpl-au/anondocs/internal/store"
)

// Result contains the outcome of a tag operation.
type Result struct {
	ID       string      `json:"id,omitempty"`
	Action   string      `json:"action,omitempty"`
	Tags     []string    `json:"tags,omitempty"`  // document tags after the change
	Index    []store.Tag `json:"index,omitempty"` // tag index for List
	Degraded bool        `json:"degraded,omitempty"`
}

// Add adds tags to a document.
func Add(ctx context.Context, w io.Writer, svc service.Service, id string, tags ...string) (Result, error) {
	result := Result{ID: id, Action: "add"}
	if err := svc.Tag(ctx, id, tags...); err != nil {
		return result, err
	}
	return current(ctx, w, svc, result, "Tagged")
}

// Remove removes tags from a document.
func Remove(ctx context.Context, w io.Writer, svc service.Service, id string, tags ...string) (Result, error) {
	result := Result{ID: id, Action: "remove"}
	if err := svc.Untag(ctx, id, tags...); err != nil {
		return result, err
	}
	return current(ctx, w, svc, result, "Untagged")
}

func current(ctx context.Context, w io.Writer, svc service.Service, result Result, verb string) (Result, error) {
	doc, err := svc.Get(ctx, result.ID)
	if err != nil {
		return result, err
	}
	result.Tags = doc.Tags
	fmt.Fprintf(w, "%s %s: [%s]\n", verb, result.ID, strings.Join(doc.Tags, ", "))
	return result, nil
}

// List prints the tag index, highest count first. Tags with no documents
// are kept in the index and listed with a zero count.
func List(ctx context.Context, w io.Writer, svc service.Service) (Result, error) {
	result := Result{Action: "list"}
	res, err := svc.Tags(ctx)
	if err != nil {
		return result, err
	}
	result.Index = res.Value
	result.Degraded = res.Degraded
	return result, format.Tags(w, res.Value)
}
