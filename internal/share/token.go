package share

import (
	"fmt"
	"io"
)

// Alphabet is the character set for tokens and share ids.
const Alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Token and share id lengths.
const (
	TokenLength   = 16
	ShareIDLength = 12
)

// randomString draws n characters uniformly from Alphabet. Bytes at or above
// the largest multiple of len(Alphabet) are discarded so every character is
// equally likely.
func randomString(r io.Reader, n int) (string, error) {
	const limit = 256 - 256%len(Alphabet)

	out := make([]byte, 0, n)
	buf := make([]byte, n*2)
	for len(out) < n {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", fmt.Errorf("read random: %w", err)
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, Alphabet[int(b)%len(Alphabet)])
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}

// NewShareID returns a short identifier for the direct link form.
func NewShareID(r io.Reader) (string, error) {
	return randomString(r, ShareIDLength)
}

// ValidToken reports whether s has the shape of a token.
func ValidToken(s string) bool {
	if len(s) != TokenLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}
