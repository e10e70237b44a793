// context.go defines the Context interface for extension access to anondocs
// internals.
//
// Extensions receive Context during Init(), not at construction: they
// register before the service exists and are wired once the store opens.

package extension

import (
	"database/sql"

	"github.com/jpl-au/anondocs/internal/config"
	"github.com/jpl-au/anondocs/internal/service"
	"go.uber.org/zap"
)

// Context provides extensions controlled access to anondocs internals.
type Context interface {
	// Service returns the document service.
	Service() service.Service

	// DB exposes the database for extensions keeping their own tables.
	// Extensions must not modify the documents, tags or shares tables.
	DB() *sql.DB

	// Config returns the merged user configuration.
	Config() *config.Config

	// Logger returns the operational logger.
	Logger() *zap.Logger
}

type extContext struct {
	svc service.Service
	db  *sql.DB
	cfg *config.Config
	log *zap.Logger
}

// NewContext creates a new extension context. A nil logger is replaced
// with a no-op logger.
func NewContext(svc service.Service, db *sql.DB, cfg *config.Config, log *zap.Logger) Context {
	if log == nil {
		log = zap.NewNop()
	}
	return &extContext{
		svc: svc,
		db:  db,
		cfg: cfg,
		log: log,
	}
}

func (c *extContext) Service() service.Service { return c.svc }

func (c *extContext) DB() *sql.DB { return c.db }

func (c *extContext) Config() *config.Config { return c.cfg }

func (c *extContext) Logger() *zap.Logger { return c.log }
