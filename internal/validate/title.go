package validate

import (
	"fmt"
	"strings"
)

// Title validates a document title. Empty titles are allowed (the editor
// shows "Untitled"); null bytes are not. maxLen of 0 disables the limit.
func Title(t string, maxLen int) error {
	if strings.ContainsRune(t, 0) {
		return fmt.Errorf("%w: null byte in title", ErrInvalidTitle)
	}
	if maxLen > 0 && len(t) > maxLen {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrTitleTooLong, len(t), maxLen)
	}
	return nil
}
