// Package cat writes a document's content, decrypted when needed, with
// optional line numbers and a line range.
package cat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jpl-au/anondocs/internal/service"
	"github.com/jpl-au/anondocs/internal/store"
)

// minLineNumWidth is the minimum column width for line numbers.
const minLineNumWidth = 6

// maxLine bounds a single scanned line.
const maxLine = 16 * 1024 * 1024

// Options configures a cat operation.
type Options struct {
	Password    string // needed for encrypted documents
	LineNumbers bool   // -n
	StartLine   int    // first line to show, 1-indexed, 0 = start
	EndLine     int    // last line to show, 1-indexed, 0 = end
}

// Result contains the outcome of a cat operation.
type Result struct {
	Document *store.Document
}

// Run reads a document and writes its content to w.
func Run(ctx context.Context, w io.Writer, svc service.Service, id string, opts Options) (Result, error) {
	var result Result

	doc, err := svc.Read(ctx, id, opts.Password)
	if err != nil {
		return result, err
	}
	result.Document = doc

	if opts.StartLine == 0 && opts.EndLine == 0 && !opts.LineNumbers {
		_, err := io.WriteString(w, doc.Content)
		return result, err
	}
	return result, writeLines(w, doc.Content, opts)
}

func writeLines(w io.Writer, content string, opts Options) error {
	trailing := strings.HasSuffix(content, "\n")
	total := strings.Count(content, "\n") + 1
	if trailing {
		total--
	}

	start, end := 1, total
	if opts.StartLine > 0 {
		start = opts.StartLine
	}
	if opts.EndLine > 0 && opts.EndLine < end {
		end = opts.EndLine
	}
	width := max(len(strconv.Itoa(end)), minLineNumWidth)

	sc := bufio.NewScanner(strings.NewReader(content))
	sc.Buffer(make([]byte, 64*1024), maxLine)
	n := 0
	for sc.Scan() {
		n++
		if n < start {
			continue
		}
		if n > end {
			break
		}
		if opts.LineNumbers {
			fmt.Fprintf(w, "%*d\t%s", width, n, sc.Text())
		} else {
			fmt.Fprint(w, sc.Text())
		}
		if n < end || trailing {
			fmt.Fprintln(w)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading content: %w", err)
	}
	return nil
}

// ParseLineRange parses "10:20", "5:" or ":15" into 1-indexed bounds,
// where 0 means open.
func ParseLineRange(s string) (start, end int, err error) {
	from, to, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid line range %q: expected format START:END", s)
	}
	if from != "" {
		if start, err = strconv.Atoi(from); err != nil || start < 1 {
			return 0, 0, fmt.Errorf("invalid start line %q", from)
		}
	}
	if to != "" {
		if end, err = strconv.Atoi(to); err != nil || end < 1 {
			return 0, 0, fmt.Errorf("invalid end line %q", to)
		}
	}
	if start > 0 && end > 0 && start > end {
		return 0, 0, fmt.Errorf("start line %d is greater than end line %d", start, end)
	}
	return start, end, nil
}
