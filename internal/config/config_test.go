package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jpl-au/anondocs/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp moves into a fresh directory with HOME pointed at another, so
// both config scopes resolve inside the test's sandbox.
func chdirTemp(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func TestDefaults(t *testing.T) {
	var c config.Config
	assert.Equal(t, config.DefaultMaxTitle, c.MaxTitle())
	assert.Equal(t, int64(config.DefaultMaxContent), c.MaxContent())
	assert.True(t, c.RevokeOnDelete())
	assert.Equal(t, "warn", c.LogLevel())
	assert.Empty(t, c.BaseURL())
}

func TestSetGet(t *testing.T) {
	var c config.Config

	require.NoError(t, c.Set("share.revoke_on_delete", "false"))
	require.NoError(t, c.Set("limits.max_title", "64"))
	require.NoError(t, c.Set("share.base_url", "https://docs.example/"))
	require.NoError(t, c.Set("log.level", "DEBUG"))

	assert.False(t, c.RevokeOnDelete())
	assert.Equal(t, 64, c.MaxTitle())
	v, err := c.Get("log.level")
	require.NoError(t, err)
	assert.Equal(t, "debug", v)
	assert.True(t, c.IsSet("limits.max_title"))
	assert.False(t, c.IsSet("limits.max_content"))
	assert.Len(t, c.All(), len(config.ValidKeys()))
}

func TestSetInvalid(t *testing.T) {
	var c config.Config

	assert.ErrorIs(t, c.Set("share.revoke_on_delete", "yes"), config.ErrInvalidValue)
	assert.ErrorIs(t, c.Set("limits.max_title", "0"), config.ErrInvalidValue)
	assert.ErrorIs(t, c.Set("limits.max_content", "abc"), config.ErrInvalidValue)
	assert.ErrorIs(t, c.Set("log.level", "loud"), config.ErrInvalidValue)
	assert.ErrorIs(t, c.Set("nope", "x"), config.ErrUnknownKey)
	_, err := c.Get("nope")
	assert.ErrorIs(t, err, config.ErrUnknownKey)
}

func TestSaveAndLoadScopes(t *testing.T) {
	chdirTemp(t)

	global := &config.Config{}
	require.NoError(t, global.Set("author.name", "global"))
	require.NoError(t, global.SaveScope(config.ScopeGlobal))

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.ScopeGlobal, cfg.Scope())
	assert.Equal(t, "global", cfg.Author.Name)

	local := &config.Config{}
	require.NoError(t, local.Set("author.name", "local"))
	require.NoError(t, local.SaveScope(config.ScopeLocal))

	cfg, err = config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.ScopeLocal, cfg.Scope())
	assert.Equal(t, "local", cfg.Author.Name)
}

func TestLoadRejectsOutOfBounds(t *testing.T) {
	chdirTemp(t)

	require.NoError(t, os.MkdirAll(config.Dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(config.Dir, "config.yaml"),
		[]byte("limits:\n  max_title: 0\n"), 0644))

	_, err := config.Load()
	assert.ErrorIs(t, err, config.ErrInvalidValue)
}

func TestLoadMalformed(t *testing.T) {
	chdirTemp(t)

	require.NoError(t, os.MkdirAll(config.Dir, 0755))
	require.NoError(t, os.WriteFile(config.LocalPath(), []byte("limits: [\n"), 0644))

	_, err := config.Load()
	assert.Error(t, err)
}
