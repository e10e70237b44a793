// content.go implements document content validation.
//
// Only size is checked. Content is plaintext markup or a ciphertext
// envelope and the store does not interpret either.

package validate

import "fmt"

// Content validates document content size. maxLen of 0 means no limit.
func Content(content string, maxLen int64) error {
	if maxLen > 0 && int64(len(content)) > maxLen {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrContentTooLarge, len(content), maxLen)
	}
	return nil
}
