package rm_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/jpl-au/anondocs/internal/config"
	"github.com/jpl-au/anondocs/internal/crypto"
	"github.com/jpl-au/anondocs/internal/document"
	"github.com/jpl-au/anondocs/internal/rm"
	"github.com/jpl-au/anondocs/internal/service"
	"github.com/jpl-au/anondocs/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) *document.Service {
	t.Helper()
	dbPath, err := document.Init(true, "", t.TempDir())
	require.NoError(t, err)
	svc, err := document.Open(dbPath,
		document.WithConfig(&config.Config{}),
		document.WithEngine(crypto.New(crypto.WithIterations(64))))
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestRun_DeletesAndRevokes(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	_, err := svc.Write(ctx, "d1", "one", service.WriteOptions{})
	require.NoError(t, err)
	_, err = svc.Write(ctx, "d2", "two", service.WriteOptions{})
	require.NoError(t, err)
	_, err = svc.Share(ctx, "d1")
	require.NoError(t, err)

	var buf bytes.Buffer
	res, err := rm.Run(ctx, &buf, svc, []string{"d1", "d2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"d1", "d2"}, res.Deleted)
	assert.EqualValues(t, 1, res.Revoked)
	assert.Equal(t, "Deleted d1 (revoked 1 share(s))\nDeleted d2\n", buf.String())

	_, err = svc.Get(ctx, "d1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRun_StopsAtMissing(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	_, err := svc.Write(ctx, "d1", "one", service.WriteOptions{})
	require.NoError(t, err)

	var buf bytes.Buffer
	res, err := rm.Run(ctx, &buf, svc, []string{"d1", "missing", "d3"})
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Equal(t, []string{"d1"}, res.Deleted)
}
