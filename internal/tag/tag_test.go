package tag_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/jpl-au/anondocs/internal/config"
	"github.com/jpl-au/anondocs/internal/crypto"
	"github.com/jpl-au/anondocs/internal/document"
	"github.com/jpl-au/anondocs/internal/service"
	"github.com/jpl-au/anondocs/internal/tag"
	"github.com/jpl-au/anondocs/internal/validate"
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

func TestAddRemoveList(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	_, err := svc.Write(ctx, "d1", "content", service.WriteOptions{})
	require.NoError(t, err)

	var buf bytes.Buffer
	res, err := tag.Add(ctx, &buf, svc, "d1", "work", "draft")
	require.NoError(t, err)
	assert.Equal(t, []string{"work", "draft"}, res.Tags)
	assert.Equal(t, "Tagged d1: [work, draft]\n", buf.String())

	buf.Reset()
	res, err = tag.Remove(ctx, &buf, svc, "d1", "draft")
	require.NoError(t, err)
	assert.Equal(t, []string{"work"}, res.Tags)

	buf.Reset()
	res, err = tag.List(ctx, &buf, svc)
	require.NoError(t, err)
	require.Len(t, res.Index, 2)
	assert.Equal(t, "work", res.Index[0].Name)
	assert.Equal(t, 1, res.Index[0].DocumentCount)
	assert.Equal(t, "draft", res.Index[1].Name)
	assert.Equal(t, 0, res.Index[1].DocumentCount)
	assert.Equal(t, "    1  work\n    0  draft\n", buf.String())
}

func TestAdd_InvalidTag(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	_, err := svc.Write(ctx, "d1", "content", service.WriteOptions{})
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = tag.Add(ctx, &buf, svc, "d1", "bad,tag")
	assert.ErrorIs(t, err, validate.ErrInvalidTag)
}
