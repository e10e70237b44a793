// interfaces.go defines the storage abstraction for document persistence.
//
// The interfaces are granular (Reader, Writer, Searcher, etc.) so consumers
// only depend on the capabilities they need.
//
// Design: reads and writes fail differently. Reads return a Result and mask
// storage failures as a degraded empty value so callers stay usable. Writes
// return the error: a save that did not happen must never look like one
// that did. Every method returns ErrNotInitialized before Init has run.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
)

// Reader defines point and full-scan retrieval.
type Reader interface {
	// Get returns the document with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (Result[*Document], error)

	// All returns every document in storage order. Callers sort.
	All(ctx context.Context) (Result[[]Document], error)

	// Stats reports document, tag and setting counts and database size.
	Stats(ctx context.Context) (Result[Stats], error)
}

// Writer defines document mutation.
type Writer interface {
	// Put inserts or replaces a document by id and rewrites its tag index
	// rows. Tag counts are not touched; use Save for that.
	Put(ctx context.Context, doc Document) error

	// Save stores a document and adjusts tag counts by the difference
	// between its previous and new tag sets, atomically.
	Save(ctx context.Context, doc Document) error

	// Remove deletes a document and its tag index rows. Tag counts are not
	// touched. Removing a missing id is not an error.
	Remove(ctx context.Context, id string) error

	// Delete removes a document and decrements the count of each of its
	// tags, atomically. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error
}

// Searcher defines filtered retrieval.
type Searcher interface {
	// Search matches query as a case-insensitive substring of title or
	// content. Encrypted content is ciphertext and will not match plaintext.
	Search(ctx context.Context, query string) (Result[[]Document], error)

	// ByTag returns documents carrying tag, matched exactly.
	ByTag(ctx context.Context, tag string) (Result[[]Document], error)
}

// Tagger defines the tag index.
type Tagger interface {
	// ListTags returns every tag ordered by document count, highest first.
	ListTags(ctx context.Context) (Result[[]Tag], error)

	// BumpTagCount adds delta (+1 or -1) to a tag's count, clamped at zero.
	BumpTagCount(ctx context.Context, name string, delta int) error
}

// Settings defines the key/value settings map.
type Settings interface {
	// Setting returns the raw JSON value for key, or nil when unset.
	Setting(ctx context.Context, key string) (Result[json.RawMessage], error)

	// PutSetting stores value (JSON-encoded) under key, replacing any
	// previous value.
	PutSetting(ctx context.Context, key string, value any) error
}

// Porter defines full-database snapshot and restore.
type Porter interface {
	// Export returns every document, tag and setting.
	Export(ctx context.Context) (Result[Bundle], error)

	// Import replaces all documents, tags and settings with the bundle's
	// contents. Runs in one transaction: on failure nothing changes.
	Import(ctx context.Context, b Bundle) error
}

// Maintainer defines database maintenance.
type Maintainer interface {
	// Checkpoint flushes the WAL into the main database file.
	Checkpoint(ctx context.Context) error

	// Vacuum rebuilds the database file, reclaiming free pages.
	Vacuum(ctx context.Context) error
}

// Store composes all storage capabilities.
type Store interface {
	Reader
	Writer
	Searcher
	Tagger
	Settings
	Porter
	Maintainer

	Init() error
	Close() error
	DB() *sql.DB
	Tx(ctx context.Context, fn func(tx *sql.Tx) error) error
}
