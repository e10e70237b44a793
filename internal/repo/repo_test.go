package repo_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jpl-au/anondocs/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBFileName(t *testing.T) {
	assert.Equal(t, "anondocs.db", repo.DBFileName(""))
	assert.Equal(t, "anondocs-work.db", repo.DBFileName("work"))
	assert.Equal(t, "custom.db", repo.DBFileName("custom.db"))
}

func TestInitAndDiscover(t *testing.T) {
	root := t.TempDir()
	t.Chdir(root)

	path, err := repo.Init(false, "", "")
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.FileExists(t, filepath.Join(root, repo.Dir, ".gitignore"))

	_, err = repo.Init(false, "", "")
	assert.Error(t, err, "second init without force must fail")

	_, err = repo.Init(true, "", "")
	require.NoError(t, err)

	sub := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0755))
	t.Chdir(sub)

	found, err := repo.Discover("")
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(found)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDiscoverNotInitialised(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := repo.Discover("missing-db-name")
	assert.ErrorIs(t, err, repo.ErrNotInitialised)
}

func TestListDBs(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := repo.Init(false, "", "")
	require.NoError(t, err)
	_, err = repo.Init(false, "work", "")
	require.NoError(t, err)

	dbs, err := repo.ListDBs("")
	require.NoError(t, err)
	names := []string{}
	for _, d := range dbs {
		names = append(names, d.Name)
	}
	assert.ElementsMatch(t, []string{"", "work"}, names)
}
