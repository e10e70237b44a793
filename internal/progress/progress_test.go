package progress

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpinner_NoTTYWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "deriving key", false)

	s.Start()
	assert.False(t, s.Active())
	s.Stop()

	assert.Empty(t, buf.String())
}

func TestRun_ReturnsResult(t *testing.T) {
	v, err := Run("working", func() (int, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestRun_ReturnsError(t *testing.T) {
	want := errors.New("boom")
	_, err := Run("working", func() (string, error) { return "", want })
	assert.ErrorIs(t, err, want)
}
