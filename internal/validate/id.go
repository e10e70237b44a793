// id.go implements document identifier validation.
//
// Identifiers are opaque strings assigned once at creation. Imported
// bundles may carry identifiers minted elsewhere (the original browser
// client used "doc_<millis>_<random>"), so only clearly broken input is
// rejected: empty, null bytes, whitespace, and the characters that would
// corrupt a share link fragment.

package validate

import (
	"fmt"
	"strings"
	"unicode"
)

// MaxIDLength bounds identifiers so they stay usable inside share links.
const MaxIDLength = 128

// ID validates a document identifier.
func ID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidID)
	}
	if len(id) > MaxIDLength {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidID, MaxIDLength)
	}
	if strings.ContainsRune(id, 0) {
		return fmt.Errorf("%w: null byte in id", ErrInvalidID)
	}
	if strings.ContainsAny(id, "#&=?/") {
		return fmt.Errorf("%w: %q contains a reserved link character", ErrInvalidID, id)
	}
	for _, r := range id {
		if unicode.IsSpace(r) {
			return fmt.Errorf("%w: whitespace in id", ErrInvalidID)
		}
	}
	return nil
}
