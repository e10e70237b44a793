// Package format provides output formatting utilities for CLI display.
//
// Centralises formatting logic so that command implementations focus on
// business logic while this package handles presentation concerns like
// column alignment and size display.
package format

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jpl-au/anondocs/internal/share"
	"github.com/jpl-au/anondocs/internal/store"
)

// HumanSize formats a byte count as human-readable (e.g., "1.2K", "3.4M").
func HumanSize(bytes int64) string {
	const (
		_        = iota
		KB int64 = 1 << (10 * iota)
		MB
		GB
	)
	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1fG", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.1fM", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1fK", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}

// lock marks encrypted documents in listings.
func lock(d store.Document) string {
	if d.Encrypted {
		return "[locked] "
	}
	return ""
}

// List prints documents in simple list format.
func List(w io.Writer, docs []store.Document) error {
	for _, doc := range docs {
		fmt.Fprintf(w, "%s  %s%s\n", doc.ID, lock(doc), doc.Title)
	}
	return nil
}

// Long prints documents with update time, size and tags.
//
// Fixed-width columns come first so variable-length titles and tag lists
// do not disrupt alignment.
func Long(w io.Writer, docs []store.Document) error {
	if len(docs) == 0 {
		return nil
	}

	maxID := 2
	for _, doc := range docs {
		if len(doc.ID) > maxID {
			maxID = len(doc.ID)
		}
	}

	fmt.Fprintf(w, "%-*s  %-16s  %6s  %s\n", maxID, "ID", "UPDATED", "SIZE", "TITLE")
	for _, doc := range docs {
		updated := doc.Updated().Format("2006-01-02 15:04")
		tags := ""
		if len(doc.Tags) > 0 {
			tags = "  [" + strings.Join(doc.Tags, ", ") + "]"
		}
		fmt.Fprintf(w, "%-*s  %s  %6s  %s%s%s\n",
			maxID, doc.ID, updated, HumanSize(int64(len(doc.Content))), lock(doc), doc.Title, tags)
	}
	return nil
}

// IDs prints just document ids, one per line.
func IDs(w io.Writer, docs []store.Document) error {
	for _, doc := range docs {
		fmt.Fprintln(w, doc.ID)
	}
	return nil
}

// SearchResults prints matching lines of plaintext documents and a title
// line for everything else.
func SearchResults(w io.Writer, docs []store.Document, query string) error {
	q := strings.ToLower(query)
	for _, doc := range docs {
		if doc.Encrypted {
			fmt.Fprintf(w, "%s: %s%s\n", doc.ID, lock(doc), doc.Title)
			continue
		}
		matched := false
		for i, line := range strings.Split(doc.Content, "\n") {
			if strings.Contains(strings.ToLower(line), q) {
				display := line
				if len(display) > 80 {
					display = display[:77] + "..."
				}
				fmt.Fprintf(w, "%s:%d: %s\n", doc.ID, i+1, display)
				matched = true
			}
		}
		if !matched {
			fmt.Fprintf(w, "%s: %s\n", doc.ID, doc.Title)
		}
	}
	return nil
}

// Tags prints the tag index, highest count first.
func Tags(w io.Writer, tags []store.Tag) error {
	for _, t := range tags {
		fmt.Fprintf(w, "%5d  %s\n", t.DocumentCount, t.Name)
	}
	return nil
}

// Shares prints share records with their state at now.
func Shares(w io.Writer, recs []share.Record, now time.Time) error {
	if len(recs) == 0 {
		return nil
	}
	fmt.Fprintf(w, "%-16s  %-16s  %-8s  %s\n", "TOKEN", "EXPIRES", "STATE", "DOCUMENT")
	for _, r := range recs {
		state := "live"
		if !r.Live(now) {
			state = "expired"
		}
		if r.RequiresPassword && state == "live" {
			state = "locked"
		}
		fmt.Fprintf(w, "%-16s  %s  %-8s  %s\n",
			r.Token, r.ExpiresAt.Format("2006-01-02 15:04"), state, r.DocumentID)
	}
	return nil
}

// Stats prints storage usage.
func Stats(w io.Writer, s store.Stats) error {
	fmt.Fprintf(w, "Documents:  %d (%d encrypted)\n", s.Documents, s.Encrypted)
	fmt.Fprintf(w, "Tags:       %d\n", s.Tags)
	fmt.Fprintf(w, "Settings:   %d\n", s.Settings)
	fmt.Fprintf(w, "Size:       %s\n", HumanSize(s.SizeBytes))
	return nil
}
