// Package vacuum collects expired share records and compacts the database
// file. Documents are never touched: deletion is already permanent.
package vacuum

import (
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/anondocs/internal/format"
	"github.com/jpl-au/anondocs/internal/progress"
	"github.com/jpl-au/anondocs/internal/service"
)

// Options configures vacuum.
type Options struct {
	DryRun bool // report expired shares without deleting anything
}

// Result reports what vacuum did.
type Result struct {
	Collected  int64    `json:"collected"` // expired shares deleted (or that would be)
	Tokens     []string `json:"-"`         // expired tokens, dry run only
	SizeBefore int64    `json:"size_before"`
	SizeAfter  int64    `json:"size_after,omitempty"`
	DryRun     bool     `json:"dry_run,omitempty"`
}

// Run collects expired shares and rebuilds the database file.
func Run(ctx context.Context, w io.Writer, svc service.Service, opts Options) (Result, error) {
	result := Result{DryRun: opts.DryRun}
	result.SizeBefore = size(ctx, svc)

	if opts.DryRun {
		return preview(ctx, w, svc, result)
	}

	spin := progress.NewSpinner("Vacuuming")
	spin.Start()
	n, err := svc.Vacuum(ctx)
	spin.Stop()
	if err != nil {
		return result, err
	}
	result.Collected = n
	result.SizeAfter = size(ctx, svc)

	if n == 0 {
		fmt.Fprintln(w, "No expired shares")
	} else {
		fmt.Fprintf(w, "Collected %d expired share(s)\n", n)
	}
	fmt.Fprintf(w, "Database %s -> %s\n", format.HumanSize(result.SizeBefore), format.HumanSize(result.SizeAfter))
	return result, nil
}

// preview lists the shares a real run would collect.
func preview(ctx context.Context, w io.Writer, svc service.Service, result Result) (Result, error) {
	recs, err := svc.Shares(ctx)
	if err != nil {
		return result, err
	}
	now := svc.Now()
	for _, r := range recs {
		if r.Live(now) {
			continue
		}
		fmt.Fprintf(w, "Would collect share for %s (expired %s)\n",
			r.DocumentID, r.ExpiresAt.Format("2006-01-02 15:04"))
		result.Tokens = append(result.Tokens, r.Token)
		result.Collected++
	}
	if result.Collected == 0 {
		fmt.Fprintln(w, "No expired shares")
	} else {
		fmt.Fprintf(w, "\nWould collect %d share(s)\n", result.Collected)
	}
	return result, nil
}

// size reports the database size, or 0 when storage cannot be read.
func size(ctx context.Context, svc service.Service) int64 {
	res, err := svc.Stats(ctx)
	if err != nil {
		return 0
	}
	return res.Value.SizeBytes
}
