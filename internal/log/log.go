// Package log provides audit logging for anondocs operations.
// Logs are stored in ~/.anondocs/log/anondocs-log.db and record CLI commands
// and MCP tool invocations across stores.
//
// # Fluent API
//
//	log.Event("document:cat", "read").
//		Author(cmd.Author()).
//		Document(id).
//		Write(err)
//
//	log.Event("share:open", "resolve").
//		Share(token).
//		Resolved(rec.DocumentID).
//		Write(err)
//
// The source parameter follows the format "{extension}:{command}" for CLI
// commands or "mcp:{tool}" for MCP tools.
//
// Nothing secret reaches the log. Passwords are never passed in, and share
// tokens are bearer credentials, so Share stores a truncated hash instead.
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jpl-au/anondocs/internal/crypto"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source   string // e.g., "document:cat", "mcp:anondocs_read"
	Author   string // who performed the action
	Action   string // verb: read, write, delete, encrypt, issue, resolve, etc.
	Document string // input: document id requested
	Share    string // input: truncated hash of the share token

	// Resolved is the document a share or link led to (output).
	Resolved string

	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool
	Error   string
	Detail  map[string]any
}

// shareHashLen is how much of the token hash is kept: enough to correlate
// entries, far too little to recover the token.
const shareHashLen = 12

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write].
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Author sets who performed the operation. MCP tools use "mcp".
func (b *Builder) Author(author string) *Builder {
	b.entry.Author = author
	return b
}

// Document sets the document id this operation targets.
func (b *Builder) Document(id string) *Builder {
	b.entry.Document = id
	return b
}

// Share records which share token was used, as a truncated hash.
func (b *Builder) Share(token string) *Builder {
	if token != "" {
		b.entry.Share = ShareRef(token)
	}
	return b
}

// Resolved sets the document a share token or link resolved to.
func (b *Builder) Resolved(id string) *Builder {
	b.entry.Resolved = id
	return b
}

// Detail adds a key-value pair to the entry's detail map.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the entry, deriving success/failure from err.
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// ShareRef returns the log form of a share token.
func ShareRef(token string) string {
	return crypto.Hash([]byte(token))[:shareHashLen]
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0700); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetProject sets the store identifier for subsequent log entries.
// The dir should be the absolute path to the .anondocs directory.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dir)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
