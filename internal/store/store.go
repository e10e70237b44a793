// Package store defines document persistence types and the Store interface.
// Implementations handle the actual database operations while consumers
// depend only on this interface, enabling testing and alternative backends.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Document is a single stored document. Content holds plaintext markup
// when Encrypted is false and a crypto envelope when it is true.
type Document struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	CreatedAt int64    `json:"createdAt"` // Unix milliseconds
	UpdatedAt int64    `json:"updatedAt"` // Unix milliseconds
	Encrypted bool     `json:"encrypted"`
	Tags      []string `json:"tags"`
}

// Created returns CreatedAt as a time.
func (d *Document) Created() time.Time {
	return time.UnixMilli(d.CreatedAt)
}

// Updated returns UpdatedAt as a time.
func (d *Document) Updated() time.Time {
	return time.UnixMilli(d.UpdatedAt)
}

// UnmarshalJSON decodes a document, accepting timestamps either as unix
// milliseconds or as RFC 3339 strings. Backups written by the browser
// client carry ISO-8601 strings; backups written here carry numbers.
func (d *Document) UnmarshalJSON(data []byte) error {
	type plain Document
	var aux struct {
		*plain
		CreatedAt json.RawMessage `json:"createdAt"`
		UpdatedAt json.RawMessage `json:"updatedAt"`
	}
	aux.plain = (*plain)(d)
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var err error
	if d.CreatedAt, err = parseMillis(aux.CreatedAt); err != nil {
		return fmt.Errorf("document %s createdAt: %w", d.ID, err)
	}
	if d.UpdatedAt, err = parseMillis(aux.UpdatedAt); err != nil {
		return fmt.Errorf("document %s updatedAt: %w", d.ID, err)
	}
	return nil
}

// parseMillis reads a JSON number of milliseconds or an RFC 3339 string.
// A missing or null value is zero.
func parseMillis(raw json.RawMessage) (int64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return 0, err
		}
		return t.UnixMilli(), nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, err
	}
	return int64(f), nil
}

// Tag is an entry in the tag index. DocumentCount is maintained
// incrementally; rows are kept at zero rather than removed.
type Tag struct {
	Name          string `json:"name"`
	DocumentCount int    `json:"documentCount"`
}

// Setting is a single key/value pair. Value is arbitrary JSON.
type Setting struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// Bundle is the full-database snapshot used for backup and restore.
type Bundle struct {
	Documents []Document `json:"documents"`
	Tags      []Tag      `json:"tags"`
	Settings  []Setting  `json:"settings"`
}

// Stats summarises storage usage.
type Stats struct {
	Documents int64 `json:"documents"`
	Encrypted int64 `json:"encrypted"`
	Tags      int64 `json:"tags"`
	Settings  int64 `json:"settings"`
	SizeBytes int64 `json:"size_bytes"`
}

// Result carries the outcome of a read. A storage failure does not fail the
// read: Value is left empty, Degraded is set and Cause records what went
// wrong. Callers that only care about data can use Value directly; callers
// that must tell "nothing there" from "could not look" check Degraded.
type Result[T any] struct {
	Value    T
	Degraded bool
	Cause    error
}

// ok wraps a successful read.
func ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}
