// Package rm deletes documents.
//
// Deletion is permanent: there is no trash. Tag counts follow the removed
// tags, and share tokens pointing at the document are revoked first unless
// share.revoke_on_delete is off.
package rm

import (
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/anondocs/internal/service"
)

// Result contains the outcome of a delete operation.
type Result struct {
	Deleted []string `json:"deleted"`
	Revoked int64    `json:"revoked"` // share tokens revoked with the documents
}

// Run deletes each id in order and stops at the first failure. Documents
// deleted before the failure stay deleted and are listed in the result.
func Run(ctx context.Context, w io.Writer, svc service.Service, ids []string) (Result, error) {
	result := Result{Deleted: []string{}}

	for _, id := range ids {
		n, err := svc.Delete(ctx, id)
		if err != nil {
			return result, fmt.Errorf("rm %s: %w", id, err)
		}
		result.Deleted = append(result.Deleted, id)
		result.Revoked += n

		if n > 0 {
			fmt.Fprintf(w, "Deleted %s (revoked %d share(s))\n", id, n)
		} else {
			fmt.Fprintf(w, "Deleted %s\n", id)
		}
	}
	return result, nil
}
