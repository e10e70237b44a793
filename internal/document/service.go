// Package document provides higher-level document operations backed by a
// Store implementation. It exposes a Service which composes the document
// store, the crypto engine and the share registry over one database.
package document

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/jpl-au/anondocs/internal/config"
	"github.com/jpl-au/anondocs/internal/crypto"
	"github.com/jpl-au/anondocs/internal/log"
	"github.com/jpl-au/anondocs/internal/repo"
	"github.com/jpl-au/anondocs/internal/service"
	"github.com/jpl-au/anondocs/internal/share"
	"github.com/jpl-au/anondocs/internal/store"
	"go.uber.org/zap"
)

// DefaultTitle is given to new documents written without a title.
const DefaultTitle = "Untitled Document"

var (
	// ErrNotEncrypted is returned when an operation needs an encrypted document.
	ErrNotEncrypted = errors.New("document is not encrypted")
	// ErrAlreadyEncrypted is returned when encrypting an encrypted document.
	ErrAlreadyEncrypted = errors.New("document is already encrypted")
	// ErrPasswordRequired is returned when an encrypted document is read
	// without a password.
	ErrPasswordRequired = errors.New("password required")
	// ErrUnavailable is returned when storage could not be read.
	ErrUnavailable = errors.New("storage unavailable")
)

// SaveError reports a storage write failure. Its message is deliberately
// generic; the cause is logged and kept for errors.Is.
type SaveError struct {
	Op  string
	Err error
}

func (e *SaveError) Error() string { return "failed to save" }
func (e *SaveError) Unwrap() error { return e.Err }

// Service provides higher-level document operations backed by a Store.
type Service struct {
	store  *store.SQLiteStore
	crypto *crypto.Engine
	shares *share.Registry
	cfg    *config.Config
	log    *zap.Logger
	now    func() time.Time
	rand   io.Reader
	dbPath string
}

var _ service.Service = (*Service)(nil)

// Option configures a Service.
type Option func(*Service)

// WithConfig uses cfg instead of loading configuration from disk.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) { s.cfg = cfg }
}

// WithLogger sets the operational logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock replaces time.Now for timestamps and share expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithEngine replaces the default crypto engine.
func WithEngine(e *crypto.Engine) Option {
	return func(s *Service) {
		if e != nil {
			s.crypto = e
		}
	}
}

// WithRand replaces crypto/rand for share tokens and share ids.
func WithRand(r io.Reader) Option {
	return func(s *Service) {
		if r != nil {
			s.rand = r
		}
	}
}

// New creates a new Service, discovering the DB by walking up the directory tree.
// The db parameter specifies which database to use (empty for default).
// Returns repo.ErrNotInitialised if no matching database is found.
func New(db string, opts ...Option) (*Service, error) {
	dbPath, err := repo.Discover(db)
	if err != nil {
		return nil, err
	}
	return Open(dbPath, opts...)
}

// Open creates a Service over the database file at dbPath.
func Open(dbPath string, opts ...Option) (*Service, error) {
	s := &Service{
		log:    zap.NewNop(),
		now:    time.Now,
		rand:   rand.Reader,
		dbPath: dbPath,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cfg == nil {
		cfg, err := config.Load()
		if err != nil {
			return nil, err // config.Load provides detailed, actionable error messages
		}
		s.cfg = cfg
	}
	if s.crypto == nil {
		s.crypto = crypto.New()
	}

	st, err := store.Open(dbPath, store.WithLogger(s.log))
	if err != nil {
		return nil, err
	}
	if err := st.Init(); err != nil {
		st.Close()
		return nil, err
	}

	reg := share.New(st.DB(),
		share.WithClock(s.now),
		share.WithRand(s.rand),
		share.WithLogger(s.log))
	if err := reg.Init(); err != nil {
		st.Close()
		return nil, err
	}

	s.store = st
	s.shares = reg
	return s, nil
}

// Init initialises a new anondocs store.
// If dir is empty, uses current directory; otherwise uses dir.
// The db parameter specifies which database to create (empty for default).
//
// Note: Init does not write config. Config is managed separately via "anondocs config".
func Init(force bool, db, dir string) (string, error) {
	return repo.Init(force, db, dir)
}

// Close checkpoints the WAL and closes the database connection.
func (s *Service) Close() error {
	if err := s.store.Checkpoint(context.Background()); err != nil {
		log.Event("service:close", "checkpoint").
			Detail("error", err.Error()).
			Write(err)
	}
	return s.store.Close()
}

// Config returns the configuration the service was opened with.
func (s *Service) Config() *config.Config {
	return s.cfg
}

// Now returns the service clock's current time.
func (s *Service) Now() time.Time {
	return s.now()
}

// DB returns the underlying database connection for extensions.
func (s *Service) DB() *sql.DB {
	return s.store.DB()
}

// DBPath returns the path to the database file.
func (s *Service) DBPath() string {
	return s.dbPath
}

// Dir returns the .anondocs directory holding the database.
func (s *Service) Dir() string {
	return filepath.Dir(s.dbPath)
}

// saveFailed logs a storage write failure and hides its detail from the
// returned message.
func (s *Service) saveFailed(op string, err error) error {
	var se *SaveError
	if errors.As(err, &se) {
		return err
	}
	s.log.Error("storage write failed", zap.String("op", op), zap.Error(err))
	return &SaveError{Op: op, Err: err}
}

// unavailable converts a degraded read into an error for callers that
// need a value.
func unavailable(op string, cause error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, cause)
}
