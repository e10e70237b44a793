package crypto_test

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/jpl-au/anondocs/internal/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// fastEngine keeps property tests quick. Envelope layout is identical to
// the default engine; only the KDF cost differs.
func fastEngine() *crypto.Engine {
	return crypto.New(crypto.WithIterations(64))
}

// passwords excludes NUL: HMAC zero-pads its key, so "a" and "a\x00"
// derive the same key and are not distinct passwords.
var passwords = rapid.StringMatching(`[ -~]{0,40}`)

// --- Round trip ---

func TestEngine_RoundTripDefaultParameters(t *testing.T) {
	e := crypto.New()

	env, err := e.Encrypt([]byte("<p>hi</p>"), "secret123")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(env)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(raw), crypto.MinEnvelope)
	assert.True(t, crypto.IsLikelyEncrypted(env))

	got, err := e.Decrypt(env, "secret123")
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>", string(got))
}

func TestEngine_RoundTripProperty(t *testing.T) {
	e := fastEngine()
	rapid.Check(t, func(t *rapid.T) {
		plaintext := rapid.SliceOf(rapid.Byte()).Draw(t, "plaintext")
		password := passwords.Draw(t, "password")

		env, err := e.Encrypt(plaintext, password)
		require.NoError(t, err)

		got, err := e.Decrypt(env, password)
		require.NoError(t, err)
		if !bytes.Equal(plaintext, got) {
			t.Fatalf("round trip mismatch: %q != %q", got, plaintext)
		}
	})
}

func TestEngine_WrongPasswordProperty(t *testing.T) {
	e := fastEngine()
	rapid.Check(t, func(t *rapid.T) {
		plaintext := rapid.SliceOf(rapid.Byte()).Draw(t, "plaintext")
		w1 := passwords.Draw(t, "w1")
		w2 := passwords.Filter(func(s string) bool { return s != w1 }).Draw(t, "w2")

		env, err := e.Encrypt(plaintext, w1)
		require.NoError(t, err)

		_, err = e.Decrypt(env, w2)
		if !errors.Is(err, crypto.ErrDecryptionFailed) {
			t.Fatalf("expected ErrDecryptionFailed, got %v", err)
		}
	})
}

func TestEngine_IterationsArePartOfFormat(t *testing.T) {
	env, err := fastEngine().Encrypt([]byte("x"), "password")
	require.NoError(t, err)

	_, err = crypto.New().Decrypt(env, "password")
	assert.ErrorIs(t, err, crypto.ErrDecryptionFailed)
}

// --- Nonce uniqueness ---

func TestEngine_SaltAndNonceUnique(t *testing.T) {
	e := crypto.New(crypto.WithIterations(1))
	seen := make(map[string]struct{}, 10000)

	for i := 0; i < 10000; i++ {
		env, err := e.Encrypt([]byte("same"), "same password")
		require.NoError(t, err)
		raw, err := base64.StdEncoding.DecodeString(env)
		require.NoError(t, err)

		head := string(raw[:crypto.MinEnvelope])
		_, dup := seen[head]
		require.False(t, dup, "salt/nonce pair repeated at call %d", i)
		seen[head] = struct{}{}
	}
	assert.Len(t, seen, 10000)
}

func TestEngine_RandomFailureIsCryptoError(t *testing.T) {
	e := crypto.New(crypto.WithRand(bytes.NewReader(make([]byte, 4))))
	_, err := e.Encrypt([]byte("x"), "password")
	assert.ErrorIs(t, err, crypto.ErrCrypto)
}

// --- Envelope validation ---

func TestEngine_EnvelopeLengthFloor(t *testing.T) {
	e := fastEngine()
	for n := 0; n < crypto.MinEnvelope; n++ {
		env := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{0xA5}, n))
		_, err := e.Decrypt(env, "password")
		assert.ErrorIs(t, err, crypto.ErrInvalidEnvelope, "decoded length %d", n)
		assert.NotErrorIs(t, err, crypto.ErrDecryptionFailed, "decoded length %d", n)
	}
}

func TestEngine_NotBase64(t *testing.T) {
	_, err := fastEngine().Decrypt("<p>plain markup</p>", "password")
	assert.ErrorIs(t, err, crypto.ErrInvalidEnvelope)
}

func TestEngine_ForeignBytesFailOpaquely(t *testing.T) {
	env := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte("x"), 64))
	_, err := fastEngine().Decrypt(env, "password")
	assert.ErrorIs(t, err, crypto.ErrDecryptionFailed)
}

func TestEngine_TamperDetected(t *testing.T) {
	e := fastEngine()
	env, err := e.Encrypt([]byte("payload"), "password")
	require.NoError(t, err)

	raw, _ := base64.StdEncoding.DecodeString(env)
	raw[len(raw)-1] ^= 0x01
	_, err = e.Decrypt(base64.StdEncoding.EncodeToString(raw), "password")
	assert.ErrorIs(t, err, crypto.ErrDecryptionFailed)
}

func TestIsLikelyEncrypted(t *testing.T) {
	assert.False(t, crypto.IsLikelyEncrypted("hello world"))
	assert.False(t, crypto.IsLikelyEncrypted(base64.StdEncoding.EncodeToString(make([]byte, 27))))
	assert.True(t, crypto.IsLikelyEncrypted(base64.StdEncoding.EncodeToString(make([]byte, 28))))
}

// --- Integrity ---

func TestHashAndVerify(t *testing.T) {
	data := []byte("abc")
	h := crypto.Hash(data)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", h)
	assert.True(t, crypto.VerifyIntegrity(data, h))
	assert.True(t, crypto.VerifyIntegrity(data, "  BA7816BF8F01CFEA414140DE5DAE2223B00361A396177A9CB410FF61F20015AD\n"))
	assert.False(t, crypto.VerifyIntegrity([]byte("abd"), h))
	assert.False(t, crypto.VerifyIntegrity(data, ""))
}

// --- Passwords and messages ---

func TestValidatePassword(t *testing.T) {
	assert.ErrorIs(t, crypto.ValidatePassword("short"), crypto.ErrWeakPassword)
	assert.ErrorIs(t, crypto.ValidatePassword(""), crypto.ErrWeakPassword)
	assert.NoError(t, crypto.ValidatePassword("secret123"))
	assert.NoError(t, crypto.ValidatePassword("ünïcödé!"))
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "incorrect password", crypto.UserMessage(crypto.ErrDecryptionFailed))
	assert.Equal(t, "incorrect password", crypto.UserMessage(crypto.ErrInvalidEnvelope))
	assert.Equal(t, "encryption failed", crypto.UserMessage(crypto.ErrCrypto))
	assert.Empty(t, crypto.UserMessage(nil))
}
