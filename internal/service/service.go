// Package service defines the shared interface for document operations.
// Commands, MCP tools and extensions depend on this interface rather than
// concrete implementations, enabling testing with mocks.
package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/jpl-au/anondocs/internal/diff"
	"github.com/jpl-au/anondocs/internal/settings"
	"github.com/jpl-au/anondocs/internal/share"
	"github.com/jpl-au/anondocs/internal/store"
)

// Sort orders for List.
const (
	SortModified = "modified"
	SortCreated  = "created"
	SortTitle    = "title"
)

// SortOrders lists the accepted ListOptions.Sort values.
var SortOrders = []string{SortModified, SortCreated, SortTitle}

// WriteOptions controls Write.
type WriteOptions struct {
	// Title replaces the title. Empty keeps the current title, or
	// DefaultTitle for a new document.
	Title string

	// Tags replaces the tag set when non-nil.
	Tags []string

	// Password encrypts the content. Required when the document is already
	// encrypted, and must match its current password.
	Password string
}

// ListOptions controls List.
type ListOptions struct {
	Tag  string // exact tag filter, empty for all
	Sort string // one of SortOrders, empty for SortModified
}

// Service defines all document operations.
//
// Obtain one with document.New and always call Close when done:
//
//	svc, err := document.New("")
//	if err != nil {
//	    return err
//	}
//	defer svc.Close()
//	doc, err := svc.Read(ctx, id, password)
type Service interface {
	// Close checkpoints and releases database resources.
	Close() error

	// Write creates a document when id is empty (or unknown) and updates it
	// otherwise. Tag counts follow the change. Returns the stored document.
	Write(ctx context.Context, id, content string, opts WriteOptions) (*store.Document, error)

	// Get returns a document as stored: encrypted content stays ciphertext.
	Get(ctx context.Context, id string) (*store.Document, error)

	// Read returns a document with its content decrypted. Password is
	// ignored for plaintext documents.
	Read(ctx context.Context, id, password string) (*store.Document, error)

	// List returns documents, optionally filtered by tag, sorted.
	List(ctx context.Context, opts ListOptions) (store.Result[[]store.Document], error)

	// Search matches query against titles and plaintext content, newest first.
	Search(ctx context.Context, query string) (store.Result[[]store.Document], error)

	// Delete removes a document. When share.revoke_on_delete is set its
	// share tokens are revoked first; the count revoked is returned.
	Delete(ctx context.Context, id string) (int64, error)

	// Encrypt encrypts a plaintext document in place.
	Encrypt(ctx context.Context, id, password string) error

	// Decrypt permanently removes encryption from a document.
	Decrypt(ctx context.Context, id, password string) error

	// Tag adds tags to a document. Tags already present are ignored.
	Tag(ctx context.Context, id string, tags ...string) error

	// Untag removes tags from a document. Absent tags are ignored.
	Untag(ctx context.Context, id string, tags ...string) error

	// Tags returns the tag index, highest count first.
	Tags(ctx context.Context) (store.Result[[]store.Tag], error)

	// Diff compares a document with another document or file content.
	Diff(ctx context.Context, id string, opts diff.Options) (diff.Result, error)

	// Share issues a share token for a document.
	Share(ctx context.Context, id string) (share.Record, error)

	// TokenLink renders a share token as a link under share.base_url.
	TokenLink(token string) string

	// Link returns a shareable link: a view link for plaintext documents,
	// a direct link for encrypted ones (password verified first).
	Link(ctx context.Context, id, password string) (string, error)

	// Resolve looks up a share token.
	Resolve(ctx context.Context, token string) (share.Resolution, error)

	// OpenLink follows a share link or bare token to its document and
	// decrypts it when needed.
	OpenLink(ctx context.Context, link, password string) (*store.Document, error)

	// Revoke invalidates a share token.
	Revoke(ctx context.Context, token string) error

	// Shares lists share records, newest first.
	Shares(ctx context.Context) ([]share.Record, error)

	// CollectShares deletes expired share records.
	CollectShares(ctx context.Context) (int64, error)

	// Export returns a full snapshot for backup.
	Export(ctx context.Context) (store.Result[store.Bundle], error)

	// Import replaces all documents, tags and settings with b.
	Import(ctx context.Context, b store.Bundle) error

	// Stats reports storage usage.
	Stats(ctx context.Context) (store.Result[store.Stats], error)

	// Settings returns the typed application settings. degraded is set when
	// storage could not be read and defaults were returned.
	Settings(ctx context.Context) (app settings.App, degraded bool, err error)

	// SaveSettings validates and stores the application settings.
	SaveSettings(ctx context.Context, app settings.App) error

	// Vacuum collects expired shares and rebuilds the database file.
	// Returns the number of shares collected.
	Vacuum(ctx context.Context) (int64, error)

	// Checkpoint flushes the WAL into the main database file.
	Checkpoint(ctx context.Context) error

	// Now returns the service clock's current time.
	Now() time.Time

	// DB returns the underlying SQLite connection for extension tables.
	// Do not close it directly; use Close.
	DB() *sql.DB

	// Dir returns the .anondocs directory holding the database.
	Dir() string
}
