package find_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/jpl-au/anondocs/internal/config"
	"github.com/jpl-au/anondocs/internal/crypto"
	"github.com/jpl-au/anondocs/internal/document"
	"github.com/jpl-au/anondocs/internal/find"
	"github.com/jpl-au/anondocs/internal/service"
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

func TestRun_MatchesLines(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	_, err := svc.Write(ctx, "d1", "first line\nThe Needle here\n", service.WriteOptions{Title: "Notes"})
	require.NoError(t, err)
	_, err = svc.Write(ctx, "d2", "nothing relevant", service.WriteOptions{Title: "Other"})
	require.NoError(t, err)

	var buf bytes.Buffer
	res, err := find.Run(ctx, &buf, svc, "needle", find.Options{})
	require.NoError(t, err)
	require.Len(t, res.Documents, 1)
	assert.Equal(t, "d1:2: The Needle here\n", buf.String())
}

func TestRun_EncryptedMatchesTitleOnly(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	_, err := svc.Write(ctx, "d1", "needle inside", service.WriteOptions{Title: "Private", Password: "secret123"})
	require.NoError(t, err)

	var buf bytes.Buffer
	res, err := find.Run(ctx, &buf, svc, "needle", find.Options{})
	require.NoError(t, err)
	assert.Empty(t, res.Documents)

	buf.Reset()
	res, err = find.Run(ctx, &buf, svc, "priv", find.Options{IDs: true})
	require.NoError(t, err)
	require.Len(t, res.Documents, 1)
	assert.Equal(t, "d1\n", buf.String())
}

func TestRun_EmptyQuery(t *testing.T) {
	svc := setupService(t)
	var buf bytes.Buffer
	_, err := find.Run(context.Background(), &buf, svc, "  ", find.Options{})
	assert.ErrorIs(t, err, find.ErrEmptyQuery)
}
