package vacuum_test

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jpl-au/anondocs/internal/config"
	"github.com/jpl-au/anondocs/internal/crypto"
	"github.com/jpl-au/anondocs/internal/document"
	"github.com/jpl-au/anondocs/internal/service"
	"github.com/jpl-au/anondocs/internal/vacuum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func setupService(t *testing.T) (*document.Service, *clock) {
	t.Helper()
	clk := &clock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	dbPath, err := document.Init(true, "", t.TempDir())
	require.NoError(t, err)
	svc, err := document.Open(dbPath,
		document.WithConfig(&config.Config{}),
		document.WithClock(clk.Now),
		document.WithEngine(crypto.New(crypto.WithIterations(64))))
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc, clk
}

func TestRun_DryRunThenCollect(t *testing.T) {
	svc, clk := setupService(t)
	ctx := context.Background()
	_, err := svc.Write(ctx, "d1", "content", service.WriteOptions{})
	require.NoError(t, err)
	old, err := svc.Share(ctx, "d1")
	require.NoError(t, err)

	clk.Advance(31 * 24 * time.Hour)
	fresh, err := svc.Share(ctx, "d1")
	require.NoError(t, err)

	var buf bytes.Buffer
	res, err := vacuum.Run(ctx, &buf, svc, vacuum.Options{DryRun: true})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Collected)
	assert.Equal(t, []string{old.Token}, res.Tokens)
	assert.Contains(t, buf.String(), "Would collect 1 share(s)")

	recs, err := svc.Shares(ctx)
	require.NoError(t, err)
	assert.Len(t, recs, 2)

	buf.Reset()
	res, err = vacuum.Run(ctx, &buf, svc, vacuum.Options{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Collected)
	assert.Positive(t, res.SizeAfter)

	recs, err = svc.Shares(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, fresh.Token, recs[0].Token)
}

func TestRun_NothingToCollect(t *testing.T) {
	svc, _ := setupService(t)
	var buf bytes.Buffer
	res, err := vacuum.Run(context.Background(), &buf, svc, vacuum.Options{})
	require.NoError(t, err)
	assert.Zero(t, res.Collected)
	assert.Contains(t, buf.String(), "No expired shares")
}
