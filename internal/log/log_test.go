package log

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useTempDB points the logger at a per-test database.
func useTempDB(t *testing.T) {
	t.Helper()
	tmpDir := t.TempDir()
	orig := dbPathFunc
	dbPathFunc = func() string {
		return filepath.Join(tmpDir, "log", "test.db")
	}
	t.Cleanup(func() {
		Close()
		dbPathFunc = orig
	})
}

func openLogDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", DBPath())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLogger_OpenCreatesFile(t *testing.T) {
	useTempDB(t)

	require.NoError(t, Open())
	require.NoError(t, Open())
	assert.FileExists(t, DBPath())
}

func TestLogger_Entry(t *testing.T) {
	useTempDB(t)
	require.NoError(t, Open())
	SetProject("/test/project/.anondocs")

	Event("document:cat", "read").
		Author("test-user").
		Document("d1").
		Detail("encrypted", true).
		Write(nil)

	db := openLogDB(t)
	var source, action, document, project, detail string
	var success bool
	err := db.QueryRow("SELECT source, action, document, project, success, detail FROM log WHERE id = 1").
		Scan(&source, &action, &document, &project, &success, &detail)
	require.NoError(t, err)
	assert.Equal(t, "document:cat", source)
	assert.Equal(t, "read", action)
	assert.Equal(t, "d1", document)
	assert.Len(t, project, 16)
	assert.True(t, success)
	assert.JSONEq(t, `{"encrypted":true}`, detail)
}

func TestLogger_ErrorEntry(t *testing.T) {
	useTempDB(t)
	require.NoError(t, Open())

	Event("document:cat", "read").Document("missing").Write(errors.New("document not found"))

	db := openLogDB(t)
	var success bool
	var msg string
	require.NoError(t, db.QueryRow("SELECT success, error FROM log ORDER BY id DESC LIMIT 1").Scan(&success, &msg))
	assert.False(t, success)
	assert.Equal(t, "document not found", msg)
}

func TestLogger_ShareTokenNotStored(t *testing.T) {
	useTempDB(t)
	require.NoError(t, Open())

	const token = "abcdefghij012345"
	Event("share:open", "resolve").Share(token).Resolved("d1").Write(nil)

	db := openLogDB(t)
	var share, resolved string
	require.NoError(t, db.QueryRow("SELECT share, resolved FROM log").Scan(&share, &resolved))
	assert.Equal(t, ShareRef(token), share)
	assert.Len(t, share, shareHashLen)
	assert.NotContains(t, share, token)
	assert.Equal(t, "d1", resolved)
}

func TestLogger_NoOpWhenClosed(t *testing.T) {
	useTempDB(t)
	Close()

	// Must not panic or create the database.
	Event("document:ls", "list").Write(nil)
	assert.NoFileExists(t, DBPath())
}

func TestHash_Stable(t *testing.T) {
	assert.Equal(t, hash("/a/.anondocs"), hash("/a/.anondocs"))
	assert.NotEqual(t, hash("/a/.anondocs"), hash("/b/.anondocs"))
}
