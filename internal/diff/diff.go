// Package diff computes and formats line differences between documents.
// Encrypted documents are compared on their plaintext, so callers decrypt
// before calling Compute.
package diff

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is the number of unchanged lines shown before/after changes.
// When equal sections exceed 2*contextLines, they're collapsed with "...".
const contextLines = 3

// Options configures a diff operation.
type Options struct {
	Other       string // second document id
	FileContent string // filesystem content (for -f)
	FileLabel   string // label for FileContent, usually the file path
	Password    string // password for encrypted documents on either side
}

// Differ is the interface for diff operations.
type Differ interface {
	Diff(ctx context.Context, id string, opts Options) (Result, error)
}

// Run executes a diff operation and writes output to w.
func Run(ctx context.Context, w io.Writer, svc Differ, id string, opts Options, colour bool) (Result, error) {
	r, err := svc.Diff(ctx, id, opts)
	if err != nil {
		return r, err
	}

	fmt.Fprint(w, r.Format(colour))
	return r, nil
}

// Result holds diff output.
type Result struct {
	Old  string `json:"old"`  // old label
	New  string `json:"new"`  // new label
	Diff string `json:"diff"` // plain diff text
}

// Empty reports whether the two sides were identical.
func (r Result) Empty() bool {
	for _, line := range strings.Split(r.Diff, "\n") {
		if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "+ ") {
			return false
		}
	}
	return true
}

// Compute returns a diff between old and new content.
func Compute(oldContent, newContent, oldLabel, newLabel string) Result {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldContent, newContent)
	d := dmp.DiffMain(a, b, false)
	d = dmp.DiffCharsToLines(d, lines)

	return Result{
		Old:  oldLabel,
		New:  newLabel,
		Diff: format(d),
	}
}

// format converts diffs to unified-style text.
func format(diffs []diffmatchpatch.Diff) string {
	var b strings.Builder
	for _, d := range diffs {
		text := strings.TrimSuffix(d.Text, "\n")
		if text == "" {
			continue
		}
		lines := strings.Split(text, "\n")
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			for _, l := range lines {
				b.WriteString("- " + l + "\n")
			}
		case diffmatchpatch.DiffInsert:
			for _, l := range lines {
				b.WriteString("+ " + l + "\n")
			}
		case diffmatchpatch.DiffEqual:
			if len(lines) > 2*contextLines {
				for _, l := range lines[:contextLines] {
					b.WriteString("  " + l + "\n")
				}
				b.WriteString("  ...\n")
				for _, l := range lines[len(lines)-contextLines:] {
					b.WriteString("  " + l + "\n")
				}
			} else {
				for _, l := range lines {
					b.WriteString("  " + l + "\n")
				}
			}
		}
	}
	return b.String()
}

var (
	removed = color.New(color.FgRed)
	added   = color.New(color.FgGreen)
	header  = color.New(color.Bold)
)

// Colourise adds ANSI colours to diff output.
func Colourise(d string) string {
	var b strings.Builder
	for _, line := range strings.Split(d, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "- "):
			b.WriteString(removed.Sprint(line) + "\n")
		case strings.HasPrefix(line, "+ "):
			b.WriteString(added.Sprint(line) + "\n")
		default:
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// Format returns the full diff with header.
func (r Result) Format(colour bool) string {
	h := fmt.Sprintf("--- %s\n+++ %s\n", r.Old, r.New)
	if colour {
		return header.Sprint(h) + Colourise(r.Diff)
	}
	return h + r.Diff
}
