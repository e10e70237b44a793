package importer_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jpl-au/anondocs/internal/config"
	"github.com/jpl-au/anondocs/internal/crypto"
	"github.com/jpl-au/anondocs/internal/document"
	"github.com/jpl-au/anondocs/internal/exporter"
	"github.com/jpl-au/anondocs/internal/importer"
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

// backup writes a backup of a store holding one tagged document.
func backup(t *testing.T) string {
	t.Helper()
	src := setupService(t)
	_, err := src.Write(context.Background(), "d1", "A", service.WriteOptions{Tags: []string{"work"}})
	require.NoError(t, err)

	dst := filepath.Join(t.TempDir(), "backup.json")
	_, err = exporter.Run(context.Background(), &bytes.Buffer{}, src, dst, exporter.Options{})
	require.NoError(t, err)
	return dst
}

func TestRun_RoundTrip(t *testing.T) {
	path := backup(t)
	svc := setupService(t)
	ctx := context.Background()

	res, err := importer.Run(ctx, &bytes.Buffer{}, svc, path, importer.Options{})
	require.NoError(t, err)
	assert.True(t, res.Verified)
	assert.Equal(t, 1, res.Documents)

	doc, err := svc.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "A", doc.Content)
	assert.Equal(t, []string{"work"}, doc.Tags)
}

func TestRun_ChecksumMismatch(t *testing.T) {
	path := backup(t)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, bytes.Replace(data, []byte(`"A"`), []byte(`"B"`), 1), 0600))

	svc := setupService(t)
	ctx := context.Background()
	_, err = svc.Write(ctx, "keep", "x", service.WriteOptions{})
	require.NoError(t, err)

	_, err = importer.Run(ctx, &bytes.Buffer{}, svc, path, importer.Options{})
	assert.ErrorIs(t, err, importer.ErrChecksumMismatch)

	_, err = svc.Get(ctx, "keep")
	require.NoError(t, err, "store untouched")

	res, err := importer.Run(ctx, &bytes.Buffer{}, svc, path, importer.Options{NoVerify: true})
	require.NoError(t, err)
	assert.False(t, res.Verified)
	doc, err := svc.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "B", doc.Content)
}

func TestRun_NoSidecar(t *testing.T) {
	path := backup(t)
	require.NoError(t, os.Remove(path+exporter.ChecksumSuffix))

	var out bytes.Buffer
	res, err := importer.Run(context.Background(), &out, setupService(t), path, importer.Options{})
	require.NoError(t, err)
	assert.False(t, res.Verified)
	assert.Contains(t, out.String(), "skipping verification")
}

func TestRun_DryRun(t *testing.T) {
	path := backup(t)
	svc := setupService(t)
	ctx := context.Background()

	res, err := importer.Run(ctx, &bytes.Buffer{}, svc, path, importer.Options{DryRun: true})
	require.NoError(t, err)
	assert.True(t, res.DryRun)
	assert.Equal(t, 1, res.Documents)

	_, err = svc.Get(ctx, "d1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRun_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := importer.Run(context.Background(), &bytes.Buffer{}, setupService(t), path, importer.Options{})
	assert.ErrorContains(t, err, "decode backup")
}

func TestRun_BrowserClientBackup(t *testing.T) {
	// Timestamps as the browser client writes them: ISO-8601 strings.
	bundle := `{
		"documents": [{
			"id": "doc_1700000000000_abc",
			"title": "Notes",
			"content": "<p>hi</p>",
			"createdAt": "2024-01-01T00:00:00.000Z",
			"updatedAt": "2024-01-02T03:04:05.678Z",
			"encrypted": false,
			"tags": ["work"]
		}],
		"tags": [{"name": "work", "documentCount": 1}],
		"settings": [{"key": "appSettings", "value": {"theme": "dark"}}]
	}`
	path := filepath.Join(t.TempDir(), "anondocs-backup-2024-01-02.json")
	require.NoError(t, os.WriteFile(path, []byte(bundle), 0600))

	svc := setupService(t)
	ctx := context.Background()

	res, err := importer.Run(ctx, &bytes.Buffer{}, svc, path, importer.Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Documents)

	doc, err := svc.Get(ctx, "doc_1700000000000_abc")
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>", doc.Content)
	assert.Equal(t, []string{"work"}, doc.Tags)
	assert.Equal(t, int64(1704067200000), doc.CreatedAt)
	assert.Equal(t, int64(1704164645678), doc.UpdatedAt)
}
