// Package crypto implements password-based authenticated encryption of
// document bodies and an independent integrity hash.
//
// The envelope layout is part of the on-disk format:
//
//	base64( salt[16] || nonce[12] || AES-256-GCM ciphertext+tag )
//
// The key is derived with PBKDF2-SHA256 at 100,000 iterations. Changing any
// of these constants breaks decryption of previously stored documents.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Envelope format constants.
const (
	Iterations  = 100000
	SaltSize    = 16
	NonceSize   = 12
	KeySize     = 32
	MinEnvelope = SaltSize + NonceSize
)

// MinPasswordLength is the shortest password accepted for new encryptions.
const MinPasswordLength = 8

var (
	// ErrDecryptionFailed covers every authentication failure: wrong
	// password, corrupted data, or input that was never ciphertext.
	// The cause is deliberately not reported.
	ErrDecryptionFailed = errors.New("decryption failed")
	// ErrInvalidEnvelope is returned when the input cannot be an envelope:
	// not base64, or shorter than salt plus nonce once decoded.
	ErrInvalidEnvelope = errors.New("invalid envelope")
	// ErrCrypto wraps failures of the underlying primitives.
	ErrCrypto = errors.New("crypto failure")
	// ErrWeakPassword is returned by ValidatePassword.
	ErrWeakPassword = errors.New("password too short")
)

// Engine encrypts and decrypts document content. The zero value is not
// usable; construct with New.
type Engine struct {
	iterations int
	rand       io.Reader
}

// Option configures an Engine.
type Option func(*Engine)

// WithIterations overrides the KDF iteration count. Envelopes produced
// with a non-default count cannot be read by a default Engine, so this is
// only for tests.
func WithIterations(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.iterations = n
		}
	}
}

// WithRand sets the source of salts and nonces.
func WithRand(r io.Reader) Option {
	return func(e *Engine) {
		if r != nil {
			e.rand = r
		}
	}
}

// New returns an Engine using the fixed envelope parameters.
func New(opts ...Option) *Engine {
	e := &Engine{iterations: Iterations, rand: rand.Reader}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encrypt seals plaintext under a key derived from password. A fresh salt
// and nonce are drawn on every call.
func (e *Engine) Encrypt(plaintext []byte, password string) (string, error) {
	head := make([]byte, MinEnvelope)
	if _, err := io.ReadFull(e.rand, head); err != nil {
		return "", fmt.Errorf("%w: read random: %w", ErrCrypto, err)
	}
	salt, nonce := head[:SaltSize], head[SaltSize:]

	gcm, err := e.aead(password, salt)
	if err != nil {
		return "", err
	}

	out := make([]byte, MinEnvelope, MinEnvelope+len(plaintext)+gcm.Overhead())
	copy(out, head)
	out = gcm.Seal(out, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt opens an envelope produced by Encrypt.
func (e *Engine) Decrypt(envelope, password string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(envelope))
	if err != nil || len(data) < MinEnvelope {
		return nil, ErrInvalidEnvelope
	}
	salt := data[:SaltSize]
	nonce := data[SaltSize:MinEnvelope]
	body := data[MinEnvelope:]

	gcm, err := e.aead(password, salt)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, nonce, body, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

// aead derives the key and builds the GCM instance. The derived key is
// wiped once the cipher has expanded it.
func (e *Engine) aead(password string, salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key([]byte(password), salt, e.iterations, KeySize, sha256.New)
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCrypto, err)
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, NonceSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCrypto, err)
	}
	return gcm, nil
}

// IsLikelyEncrypted reports whether s has the shape of an envelope. It is
// a heuristic for imported data, never a replacement for Document.Encrypted.
func IsLikelyEncrypted(s string) bool {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	return err == nil && len(data) >= MinEnvelope
}

// Hash returns the lowercase hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// VerifyIntegrity reports whether data hashes to expected.
func VerifyIntegrity(data []byte, expected string) bool {
	got := Hash(data)
	want := strings.ToLower(strings.TrimSpace(expected))
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

// ValidatePassword rejects passwords too short to encrypt with.
func ValidatePassword(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return fmt.Errorf("%w: need at least %d characters", ErrWeakPassword, MinPasswordLength)
	}
	return nil
}

// UserMessage maps an Encrypt/Decrypt error to the text shown to users.
// Both envelope and authentication failures read the same so the message
// cannot be used to probe which one occurred.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrDecryptionFailed), errors.Is(err, ErrInvalidEnvelope):
		return "incorrect password"
	case errors.Is(err, ErrWeakPassword):
		return err.Error()
	default:
		return "encryption failed"
	}
}
