// Package share implements the share registry: random bearer tokens that
// make a document addressable for a fixed period.
//
// A token grants addressability, not access. Resolving a token yields a
// document id; if that document is encrypted its password is still needed
// to read it.
//
// Liveness is never stored. Each read compares the record's expiry with
// the registry clock, and an expired record found by Resolve is deleted
// before Resolve returns.
package share

import (
	"context"
	"crypto/rand"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/jpl-au/anondocs/internal/store"
	"go.uber.org/zap"
)

//go:embed sql/*.sql
var schemas embed.FS

// TTL is how long an issued token stays live.
const TTL = 30 * 24 * time.Hour

// issueAttempts bounds retries on a token collision.
const issueAttempts = 3

var (
	// ErrNotFound is returned for an unknown or revoked token.
	ErrNotFound = errors.New("share not found")
	// ErrExpired is returned for a token past its expiry.
	ErrExpired = errors.New("share expired")
)

// Reason explains why a token did not resolve.
type Reason string

const (
	ReasonNotFound Reason = "NotFound"
	ReasonExpired  Reason = "Expired"
)

// Record is a stored share.
type Record struct {
	Token            string    `json:"token"`
	DocumentID       string    `json:"documentId"`
	CreatedAt        time.Time `json:"createdAt"`
	ExpiresAt        time.Time `json:"expiresAt"`
	RequiresPassword bool      `json:"requiresPassword"`
}

// Live reports whether the record is usable at now.
func (r Record) Live(now time.Time) bool {
	return now.Before(r.ExpiresAt)
}

// Resolution is the outcome of Resolve.
type Resolution struct {
	Valid  bool   `json:"valid"`
	Record Record `json:"record,omitzero"`
	Reason Reason `json:"reason,omitempty"`
}

// Err converts an invalid resolution to ErrNotFound or ErrExpired.
func (r Resolution) Err() error {
	switch {
	case r.Valid:
		return nil
	case r.Reason == ReasonExpired:
		return ErrExpired
	default:
		return ErrNotFound
	}
}

// Registry stores share records in the document database.
type Registry struct {
	db   *sql.DB
	now  func() time.Time
	rand io.Reader
	ttl   time.Duration
	log   *zap.Logger
	ready atomic.Bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// WithRand replaces crypto/rand as the token source.
func WithRand(rd io.Reader) Option {
	return func(r *Registry) {
		if rd != nil {
			r.rand = rd
		}
	}
}

// WithTTL overrides the token lifetime.
func WithTTL(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.ttl = d
		}
	}
}

// WithLogger sets the operational logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// New returns a Registry over db. Call Init before use.
func New(db *sql.DB, opts ...Option) *Registry {
	r := &Registry{
		db:   db,
		now:  time.Now,
		rand: rand.Reader,
		ttl:  TTL,
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Init creates the shares table if it does not exist.
func (r *Registry) Init() error {
	if err := store.ExecEmbedded(r.db, schemas, "sql"); err != nil {
		return fmt.Errorf("share schema: %w", err)
	}
	r.ready.Store(true)
	return nil
}

// check fails fast when Init has not run.
func (r *Registry) check() error {
	if r == nil || !r.ready.Load() {
		return store.ErrNotInitialized
	}
	return nil
}

// Now returns the registry clock's current time.
func (r *Registry) Now() time.Time {
	return r.now()
}

// Issue creates a token for documentID.
func (r *Registry) Issue(ctx context.Context, documentID string, requiresPassword bool) (Record, error) {
	if err := r.check(); err != nil {
		return Record{}, err
	}
	if documentID == "" {
		return Record{}, fmt.Errorf("issue share: empty document id")
	}
	now := r.now()
	rec := Record{
		DocumentID:       documentID,
		CreatedAt:        now,
		ExpiresAt:        now.Add(r.ttl),
		RequiresPassword: requiresPassword,
	}

	for attempt := 0; attempt < issueAttempts; attempt++ {
		tok, err := randomString(r.rand, TokenLength)
		if err != nil {
			return Record{}, fmt.Errorf("issue share: %w", err)
		}
		res, err := r.db.ExecContext(ctx, `
			INSERT INTO shares (token, document_id, created_at, expires_at, requires_password)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(token) DO NOTHING
		`, tok, documentID, rec.CreatedAt.UnixMilli(), rec.ExpiresAt.UnixMilli(), requiresPassword)
		if err != nil {
			return Record{}, fmt.Errorf("issue share: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return Record{}, fmt.Errorf("issue share: %w", err)
		}
		if n == 1 {
			rec.Token = tok
			return rec, nil
		}
	}
	return Record{}, fmt.Errorf("issue share: token collision after %d attempts", issueAttempts)
}

// Resolve looks up a token. An expired record is deleted before the
// resolution is returned, so resolving it again reports NotFound. The
// returned error is reserved for storage failures.
func (r *Registry) Resolve(ctx context.Context, token string) (Resolution, error) {
	if err := r.check(); err != nil {
		return Resolution{}, err
	}
	rec, err := r.get(ctx, token)
	if errors.Is(err, ErrNotFound) {
		return Resolution{Reason: ReasonNotFound}, nil
	}
	if err != nil {
		return Resolution{}, err
	}

	if !rec.Live(r.now()) {
		if err := r.Revoke(ctx, token); err != nil {
			return Resolution{}, err
		}
		r.log.Debug("expired share removed on resolve",
			zap.String("document", rec.DocumentID),
			zap.Time("expired", rec.ExpiresAt))
		return Resolution{Reason: ReasonExpired}, nil
	}
	return Resolution{Valid: true, Record: rec}, nil
}

// Revoke deletes a token. Revoking an unknown token is not an error.
func (r *Registry) Revoke(ctx context.Context, token string) error {
	if err := r.check(); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM shares WHERE token = ?`, token); err != nil {
		return fmt.Errorf("revoke share: %w", err)
	}
	return nil
}

// RevokeDocument deletes every token pointing at documentID and returns how
// many were removed.
func (r *Registry) RevokeDocument(ctx context.Context, documentID string) (int64, error) {
	if err := r.check(); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM shares WHERE document_id = ?`, documentID)
	if err != nil {
		return 0, fmt.Errorf("revoke shares for %s: %w", documentID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("revoke shares for %s: %w", documentID, err)
	}
	return n, nil
}

// List returns every record, newest first. Expired records that have not
// yet been collected are included; check Live.
func (r *Registry) List(ctx context.Context) ([]Record, error) {
	if err := r.check(); err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT token, document_id, created_at, expires_at, requires_password
		FROM shares ORDER BY created_at DESC, token DESC`)
	if err != nil {
		return nil, fmt.Errorf("list shares: %w", err)
	}
	defer rows.Close()

	recs := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("list shares: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// GC deletes every expired record and returns how many were removed.
func (r *Registry) GC(ctx context.Context) (int64, error) {
	if err := r.check(); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM shares WHERE expires_at <= ?`, r.now().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("collect expired shares: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("collect expired shares: %w", err)
	}
	if n > 0 {
		r.log.Debug("expired shares collected", zap.Int64("count", n))
	}
	return n, nil
}

func (r *Registry) get(ctx context.Context, token string) (Record, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT token, document_id, created_at, expires_at, requires_password
		FROM shares WHERE token = ?`, token)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("resolve share: %w", err)
	}
	return rec, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (Record, error) {
	var rec Record
	var created, expires int64
	if err := sc.Scan(&rec.Token, &rec.DocumentID, &created, &expires, &rec.RequiresPassword); err != nil {
		return Record{}, err
	}
	rec.CreatedAt = time.UnixMilli(created)
	rec.ExpiresAt = time.UnixMilli(expires)
	return rec, nil
}
