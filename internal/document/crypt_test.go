package document_test

import (
	"context"
	"testing"

	"github.com/jpl-au/anondocs/internal/crypto"
	"github.com/jpl-au/anondocs/internal/document"
	"github.com/jpl-au/anondocs/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_EncryptScenario(t *testing.T) {
	env := setupService(t)
	ctx := context.Background()

	_, err := env.svc.Write(ctx, "d1", "A", service.WriteOptions{Tags: []string{"work"}})
	require.NoError(t, err)

	require.NoError(t, env.svc.Encrypt(ctx, "d1", "secret123"))

	stored, err := env.svc.Get(ctx, "d1")
	require.NoError(t, err)
	assert.True(t, stored.Encrypted)
	assert.NotEqual(t, "A", stored.Content)
	assert.True(t, crypto.IsLikelyEncrypted(stored.Content))
	assert.Equal(t, []string{"work"}, stored.Tags, "tags survive encryption")

	_, err = env.svc.Read(ctx, "d1", "")
	assert.ErrorIs(t, err, document.ErrPasswordRequired)

	_, err = env.svc.Read(ctx, "d1", "wrongpass")
	assert.ErrorIs(t, err, crypto.ErrDecryptionFailed)
	assert.Equal(t, "incorrect password", crypto.UserMessage(err))

	doc, err := env.svc.Read(ctx, "d1", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "A", doc.Content)

	assert.ErrorIs(t, env.svc.Encrypt(ctx, "d1", "secret123"), document.ErrAlreadyEncrypted)
}

func TestService_EncryptRejectsWeakPassword(t *testing.T) {
	env := setupService(t)
	ctx := context.Background()

	_, err := env.svc.Write(ctx, "d1", "A", service.WriteOptions{})
	require.NoError(t, err)

	assert.ErrorIs(t, env.svc.Encrypt(ctx, "d1", "short"), crypto.ErrWeakPassword)
	_, err = env.svc.Write(ctx, "d2", "B", service.WriteOptions{Password: "short"})
	assert.ErrorIs(t, err, crypto.ErrWeakPassword)

	doc, err := env.svc.Get(ctx, "d1")
	require.NoError(t, err)
	assert.False(t, doc.Encrypted)
}

func TestService_Decrypt(t *testing.T) {
	env := setupService(t)
	ctx := context.Background()

	_, err := env.svc.Write(ctx, "d1", "A", service.WriteOptions{Password: "secret123"})
	require.NoError(t, err)

	assert.ErrorIs(t, env.svc.Decrypt(ctx, "d1", ""), document.ErrPasswordRequired)
	assert.ErrorIs(t, env.svc.Decrypt(ctx, "d1", "wrongpass"), crypto.ErrDecryptionFailed)

	require.NoError(t, env.svc.Decrypt(ctx, "d1", "secret123"))
	doc, err := env.svc.Get(ctx, "d1")
	require.NoError(t, err)
	assert.False(t, doc.Encrypted)
	assert.Equal(t, "A", doc.Content)

	assert.ErrorIs(t, env.svc.Decrypt(ctx, "d1", "secret123"), document.ErrNotEncrypted)
}

func TestService_WriteOverEncrypted(t *testing.T) {
	env := setupService(t)
	ctx := context.Background()

	_, err := env.svc.Write(ctx, "d1", "v1", service.WriteOptions{Password: "secret123"})
	require.NoError(t, err)

	_, err = env.svc.Write(ctx, "d1", "v2", service.WriteOptions{})
	assert.ErrorIs(t, err, document.ErrPasswordRequired)

	_, err = env.svc.Write(ctx, "d1", "v2", service.WriteOptions{Password: "different1"})
	assert.ErrorIs(t, err, crypto.ErrDecryptionFailed)

	_, err = env.svc.Write(ctx, "d1", "v2", service.WriteOptions{Password: "secret123"})
	require.NoError(t, err)

	doc, err := env.svc.Read(ctx, "d1", "secret123")
	require.NoError(t, err)
	assert.True(t, doc.Encrypted)
	assert.Equal(t, "v2", doc.Content)
}
