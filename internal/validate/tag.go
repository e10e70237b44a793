// tag.go implements tag string validation and tag-set parsing.
//
// Tags are user-defined labels matched exactly (case-sensitive). Only
// clearly broken inputs (empty, null bytes, commas) are rejected; commas
// are reserved because the CLI and the original client both accept tags
// as a comma-separated list.

package validate

import (
	"fmt"
	"strings"
)

// Tag validates a tag string.
func Tag(t string) error {
	if t == "" {
		return fmt.Errorf("%w: empty tag", ErrInvalidTag)
	}
	if strings.ContainsRune(t, 0) {
		return fmt.Errorf("%w: null byte in tag", ErrInvalidTag)
	}
	if strings.ContainsRune(t, ',') {
		return fmt.Errorf("%w: comma in tag %q", ErrInvalidTag, t)
	}
	return nil
}

// Tags validates every tag and returns the set with duplicates removed,
// keeping first-seen order.
func Tags(tags []string) ([]string, error) {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if err := Tag(t); err != nil {
			return nil, err
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out, nil
}

// ParseTags splits a comma-separated list, trimming whitespace and
// dropping empty entries.
func ParseTags(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
