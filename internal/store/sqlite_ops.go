// sqlite_ops.go provides SQLite connection management and low-level operations.
//
// Separated to isolate SQLite-specific concerns (pragmas, connection pooling,
// driver registration) from business logic. This is the only file that imports
// the SQLite driver.
//
// Design: WAL mode with busy timeout balances concurrency and durability.
// WAL allows concurrent readers during writes (the MCP server reads while the
// CLI writes). The 5-second busy timeout prevents "database is locked"
// errors without waiting forever on stuck connections.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	// Register sqlite driver
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite with WAL mode for concurrent access.
type SQLiteStore struct {
	db    *sql.DB
	log   *zap.Logger
	ready atomic.Bool
}

// Compile-time interface compliance check.
var _ Store = (*SQLiteStore)(nil)

// Option configures a SQLiteStore.
type Option func(*SQLiteStore)

// WithLogger sets the logger used to report masked read failures.
func WithLogger(l *zap.Logger) Option {
	return func(s *SQLiteStore) {
		if l != nil {
			s.log = l
		}
	}
}

// Open opens the SQLite database file at `path` and returns a configured
// SQLiteStore. The store refuses all operations until Init has run. The
// caller should call Close on the returned store.
func Open(path string, opts ...Option) (*SQLiteStore, error) {
	// Per-connection settings go in the DSN so every pooled connection gets
	// them, not just the first. Transactions begin IMMEDIATE: Save reads
	// the old tag set before writing, and a deferred transaction could not
	// upgrade to a write lock under contention.
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	// WAL mode: readers do not block the writer and vice versa. Persistent
	// in the file, so once is enough.
	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Init creates tables and indexes if they don't exist and marks the store
// ready. Safe to call multiple times.
func (s *SQLiteStore) Init() error {
	if err := execSchema(s.db); err != nil {
		return err
	}
	s.ready.Store(true)
	return nil
}

// Close releases the database connection. Later calls on the store return
// ErrNotInitialized.
func (s *SQLiteStore) Close() error {
	s.ready.Store(false)
	return s.db.Close()
}

// DB exposes the underlying connection for packages that keep their own
// tables alongside the core schema.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// check fails fast when the store has not been initialised.
func (s *SQLiteStore) check() error {
	if s == nil || !s.ready.Load() {
		return ErrNotInitialized
	}
	return nil
}

// degrade records a masked read failure and returns the empty result.
func degrade[T any](s *SQLiteStore, op string, err error) Result[T] {
	s.log.Warn("storage read degraded", zap.String("op", op), zap.Error(err))
	return Result[T]{Degraded: true, Cause: fmt.Errorf("%s: %w", op, err)}
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// scanner abstracts sql.Row and sql.Rows, enabling a single scan function
// to handle both single-row and multi-row queries.
type scanner interface {
	Scan(dest ...any) error
}

// docColumns selects a document with its tags folded into a JSON array in
// tag order, so one row carries the whole document.
const docColumns = `d.id, d.title, d.content, d.created_at, d.updated_at, d.encrypted,
	(SELECT json_group_array(tag) FROM (
		SELECT tag FROM document_tags WHERE document_id = d.id ORDER BY position
	))`

// scanDoc extracts a Document from a row selected with docColumns.
func scanDoc(sc scanner) (Document, error) {
	var d Document
	var tags string

	if err := sc.Scan(&d.ID, &d.Title, &d.Content, &d.CreatedAt, &d.UpdatedAt, &d.Encrypted, &tags); err != nil {
		return d, err
	}
	if err := json.Unmarshal([]byte(tags), &d.Tags); err != nil {
		return d, fmt.Errorf("decode tags for %s: %w", d.ID, err)
	}
	if d.Tags == nil {
		d.Tags = []string{}
	}
	return d, nil
}

// scanDocument converts sql.ErrNoRows to ErrNotFound for consistent error handling.
func scanDocument(row *sql.Row) (*Document, error) {
	d, err := scanDoc(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan document: %w", err)
	}
	return &d, nil
}

// scanDocuments iterates over query results, collecting documents into a
// non-nil slice.
func scanDocuments(rows *sql.Rows) ([]Document, error) {
	docs := []Document{}
	for rows.Next() {
		d, err := scanDoc(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// queryDocuments runs a document query and collects the rows.
func queryDocuments(ctx context.Context, q queryer, query string, args ...any) ([]Document, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDocuments(rows)
}

// Tx executes fn within a database transaction, handling Begin/Commit/Rollback
// automatically. If fn returns an error the transaction is rolled back;
// otherwise it is committed. Rollback is deferred to handle panics and early
// returns.
//
//	err := s.Tx(ctx, func(tx *sql.Tx) error {
//	    if _, err := tx.ExecContext(ctx, `UPDATE ...`); err != nil {
//	        return err  // triggers rollback
//	    }
//	    return nil  // triggers commit
//	})
func (s *SQLiteStore) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	if err := s.check(); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
