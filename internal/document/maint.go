// maint.go implements backup, settings and database maintenance for the
// Service layer.

package document

import (
	"context"
	"fmt"

	"github.com/jpl-au/anondocs/internal/diff"
	"github.com/jpl-au/anondocs/internal/settings"
	"github.com/jpl-au/anondocs/internal/store"
)

// Diff compares a document's plaintext with another document or with
// file content.
func (s *Service) Diff(ctx context.Context, id string, opts diff.Options) (diff.Result, error) {
	a, err := s.Read(ctx, id, opts.Password)
	if err != nil {
		return diff.Result{}, err
	}
	if opts.Other != "" {
		b, err := s.Read(ctx, opts.Other, opts.Password)
		if err != nil {
			return diff.Result{}, err
		}
		return diff.Compute(a.Content, b.Content, a.ID, b.ID), nil
	}
	label := opts.FileLabel
	if label == "" {
		label = "file"
	}
	return diff.Compute(a.Content, opts.FileContent, a.ID, label), nil
}

// Export returns a full snapshot of documents, tags and settings.
func (s *Service) Export(ctx context.Context) (store.Result[store.Bundle], error) {
	return s.store.Export(ctx)
}

// Import replaces the store's contents with b in one transaction.
func (s *Service) Import(ctx context.Context, b store.Bundle) error {
	if err := s.store.Import(ctx, b); err != nil {
		return s.saveFailed("import", err)
	}
	return nil
}

// Stats reports storage usage.
func (s *Service) Stats(ctx context.Context) (store.Result[store.Stats], error) {
	return s.store.Stats(ctx)
}

// Settings returns the typed application settings.
func (s *Service) Settings(ctx context.Context) (settings.App, bool, error) {
	return settings.Load(ctx, s.store)
}

// SaveSettings validates and stores the application settings.
func (s *Service) SaveSettings(ctx context.Context, app settings.App) error {
	if err := app.Validate(); err != nil {
		return err
	}
	if err := settings.Save(ctx, s.store, app); err != nil {
		return s.saveFailed("settings", err)
	}
	return nil
}

// Vacuum collects expired shares, then rebuilds the database file.
func (s *Service) Vacuum(ctx context.Context) (int64, error) {
	n, err := s.shares.GC(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.store.Vacuum(ctx); err != nil {
		return n, fmt.Errorf("vacuum: %w", err)
	}
	return n, nil
}

// Checkpoint flushes the WAL to the main database file.
func (s *Service) Checkpoint(ctx context.Context) error {
	return s.store.Checkpoint(ctx)
}
