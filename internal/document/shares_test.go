package document_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jpl-au/anondocs/internal/crypto"
	"github.com/jpl-au/anondocs/internal/document"
	"github.com/jpl-au/anondocs/internal/service"
	"github.com/jpl-au/anondocs/internal/share"
	"github.com/jpl-au/anondocs/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_ShareExpiry(t *testing.T) {
	env := setupService(t)
	ctx := context.Background()

	_, err := env.svc.Write(ctx, "d1", "A", service.WriteOptions{})
	require.NoError(t, err)

	rec, err := env.svc.Share(ctx, "d1")
	require.NoError(t, err)
	assert.False(t, rec.RequiresPassword)

	res, err := env.svc.Resolve(ctx, rec.Token)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, "d1", res.Record.DocumentID)

	env.clk.Advance(31 * 24 * time.Hour)

	res, err = env.svc.Resolve(ctx, rec.Token)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, share.ReasonExpired, res.Reason)

	res, err = env.svc.Resolve(ctx, rec.Token)
	require.NoError(t, err)
	assert.Equal(t, share.ReasonNotFound, res.Reason)
}

func TestService_ShareMissingDocument(t *testing.T) {
	env := setupService(t)

	_, err := env.svc.Share(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestService_OpenTokenLink(t *testing.T) {
	env := setupService(t)
	ctx := context.Background()

	_, err := env.svc.Write(ctx, "plain", "hello", service.WriteOptions{})
	require.NoError(t, err)
	_, err = env.svc.Write(ctx, "locked", "secret", service.WriteOptions{Password: "secret123"})
	require.NoError(t, err)

	rec, err := env.svc.Share(ctx, "plain")
	require.NoError(t, err)

	for _, link := range []string{rec.Token, env.svc.TokenLink(rec.Token), "https://x.test/app#key=" + rec.Token} {
		doc, err := env.svc.OpenLink(ctx, link, "")
		require.NoError(t, err, link)
		assert.Equal(t, "hello", doc.Content)
	}

	locked, err := env.svc.Share(ctx, "locked")
	require.NoError(t, err)
	assert.True(t, locked.RequiresPassword)

	_, err = env.svc.OpenLink(ctx, locked.Token, "")
	assert.ErrorIs(t, err, document.ErrPasswordRequired)

	doc, err := env.svc.OpenLink(ctx, locked.Token, "secret123")
	require.NoError(t, err)
	assert.Equal(t, "secret", doc.Content)
}

func TestService_OpenExpiredAndRevoked(t *testing.T) {
	env := setupService(t)
	ctx := context.Background()

	_, err := env.svc.Write(ctx, "d1", "A", service.WriteOptions{})
	require.NoError(t, err)

	a, err := env.svc.Share(ctx, "d1")
	require.NoError(t, err)
	b, err := env.svc.Share(ctx, "d1")
	require.NoError(t, err)

	require.NoError(t, env.svc.Revoke(ctx, a.Token))
	_, err = env.svc.OpenLink(ctx, a.Token, "")
	assert.ErrorIs(t, err, share.ErrNotFound)

	env.clk.Advance(share.TTL)
	_, err = env.svc.OpenLink(ctx, b.Token, "")
	assert.ErrorIs(t, err, share.ErrExpired)
}

func TestService_DeleteRevokesShares(t *testing.T) {
	env := setupService(t)
	ctx := context.Background()

	_, err := env.svc.Write(ctx, "d1", "A", service.WriteOptions{})
	require.NoError(t, err)
	rec, err := env.svc.Share(ctx, "d1")
	require.NoError(t, err)
	_, err = env.svc.Share(ctx, "d1")
	require.NoError(t, err)

	n, err := env.svc.Delete(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	res, err := env.svc.Resolve(ctx, rec.Token)
	require.NoError(t, err)
	assert.Equal(t, share.ReasonNotFound, res.Reason)

	recs, err := env.svc.Shares(ctx)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestService_DeleteKeepsSharesWhenConfigured(t *testing.T) {
	env := setupService(t)
	off := false
	env.cfg.Share.RevokeOnDelete = &off
	ctx := context.Background()

	_, err := env.svc.Write(ctx, "d1", "A", service.WriteOptions{})
	require.NoError(t, err)
	rec, err := env.svc.Share(ctx, "d1")
	require.NoError(t, err)

	n, err := env.svc.Delete(ctx, "d1")
	require.NoError(t, err)
	assert.Zero(t, n)

	// The token still resolves but leads nowhere.
	res, err := env.svc.Resolve(ctx, rec.Token)
	require.NoError(t, err)
	assert.True(t, res.Valid)

	_, err = env.svc.OpenLink(ctx, rec.Token, "")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestService_LinkPlain(t *testing.T) {
	env := setupService(t)
	env.cfg.Share.BaseURL = "https://docs.example/app"
	ctx := context.Background()

	_, err := env.svc.Write(ctx, "d1", "A", service.WriteOptions{})
	require.NoError(t, err)

	link, err := env.svc.Link(ctx, "d1", "")
	require.NoError(t, err)
	assert.Equal(t, "https://docs.example/app#view=d1", link)

	doc, err := env.svc.OpenLink(ctx, link, "")
	require.NoError(t, err)
	assert.Equal(t, "A", doc.Content)
}

func TestService_LinkEncrypted(t *testing.T) {
	env := setupService(t)
	ctx := context.Background()

	_, err := env.svc.Write(ctx, "d1", "A", service.WriteOptions{Password: "secret123"})
	require.NoError(t, err)

	_, err = env.svc.Link(ctx, "d1", "")
	assert.ErrorIs(t, err, document.ErrPasswordRequired)
	_, err = env.svc.Link(ctx, "d1", "wrongpass")
	assert.ErrorIs(t, err, crypto.ErrDecryptionFailed)

	link, err := env.svc.Link(ctx, "d1", "secret123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "#encrypted=d1&share="), link)

	l, err := share.ParseLink(link)
	require.NoError(t, err)
	assert.Len(t, l.ShareID, share.ShareIDLength)

	doc, err := env.svc.OpenLink(ctx, link, "secret123")
	require.NoError(t, err)
	assert.Equal(t, "A", doc.Content)
}

func TestService_OpenDirectLinkNeedsEncrypted(t *testing.T) {
	env := setupService(t)
	ctx := context.Background()

	_, err := env.svc.Write(ctx, "d1", "A", service.WriteOptions{})
	require.NoError(t, err)

	_, err = env.svc.OpenLink(ctx, "#encrypted=d1&share=abcdefabcdef", "")
	assert.ErrorIs(t, err, document.ErrNotEncrypted)

	_, err = env.svc.OpenLink(ctx, "not a link", "")
	assert.ErrorIs(t, err, share.ErrInvalidLink)
}
