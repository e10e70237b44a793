package exporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jpl-au/anondocs/internal/config"
	"github.com/jpl-au/anondocs/internal/crypto"
	"github.com/jpl-au/anondocs/internal/document"
	"github.com/jpl-au/anondocs/internal/exporter"
	"github.com/jpl-au/anondocs/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixed = time.Date(2026, 3, 1, 9, 0, 0, 123_000_000, time.UTC)

func setupService(t *testing.T) *document.Service {
	t.Helper()
	dbPath, err := document.Init(true, "", t.TempDir())
	require.NoError(t, err)
	svc, err := document.Open(dbPath,
		document.WithConfig(&config.Config{}),
		document.WithClock(func() time.Time { return fixed }),
		document.WithEngine(crypto.New(crypto.WithIterations(64))))
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestBackupName(t *testing.T) {
	assert.Equal(t, "anondocs-backup-2026-03-01T09-00-00-123Z.json", exporter.BackupName(fixed))
}

func TestRun_WritesBundleAndChecksum(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	_, err := svc.Write(ctx, "d1", "A", service.WriteOptions{Tags: []string{"work"}})
	require.NoError(t, err)

	dst := filepath.Join(t.TempDir(), "backup.json")
	var out bytes.Buffer
	res, err := exporter.Run(ctx, &out, svc, dst, exporter.Options{})
	require.NoError(t, err)

	assert.Equal(t, dst, res.Path)
	assert.Equal(t, 1, res.Documents)
	assert.Equal(t, 1, res.Tags)
	assert.Contains(t, out.String(), "Exported 1 documents")

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "documents")
	assert.Contains(t, raw, "tags")
	assert.Contains(t, raw, "settings")

	sum, err := os.ReadFile(dst + exporter.ChecksumSuffix)
	require.NoError(t, err)
	assert.Equal(t, res.Checksum+"  backup.json\n", string(sum))
	assert.True(t, crypto.VerifyIntegrity(data, strings.Fields(string(sum))[0]))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestRun_DirectoryUsesBackupName(t *testing.T) {
	svc := setupService(t)
	dir := t.TempDir()

	res, err := exporter.Run(context.Background(), &bytes.Buffer{}, svc, dir, exporter.Options{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, exporter.BackupName(fixed)), res.Path)
	assert.FileExists(t, res.Path)
}

func TestRun_RefusesOverwrite(t *testing.T) {
	svc := setupService(t)
	dst := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, os.WriteFile(dst, []byte("keep"), 0600))

	_, err := exporter.Run(context.Background(), &bytes.Buffer{}, svc, dst, exporter.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file exists")

	_, err = exporter.Run(context.Background(), &bytes.Buffer{}, svc, dst, exporter.Options{Force: true})
	require.NoError(t, err)
}

func TestRun_RefusesDegraded(t *testing.T) {
	svc := setupService(t)
	require.NoError(t, svc.DB().Close())

	dst := filepath.Join(t.TempDir(), "backup.json")
	_, err := exporter.Run(context.Background(), &bytes.Buffer{}, svc, dst, exporter.Options{})
	assert.ErrorIs(t, err, exporter.ErrDegraded)
	assert.NoFileExists(t, dst)
}
