// write.go implements document creation, update, and deletion operations.
//
// Separated from service.go to isolate mutating operations. Every write goes
// through store.Save or store.Delete so tag counts follow the change in the
// same transaction.
//
// Design: inputs are validated here, before the store is touched, so a
// validation failure reaches the caller verbatim while a storage failure is
// reported as "failed to save" with the cause in the operational log.

package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jpl-au/anondocs/internal/crypto"
	"github.com/jpl-au/anondocs/internal/service"
	"github.com/jpl-au/anondocs/internal/store"
	"github.com/jpl-au/anondocs/internal/validate"
)

// Write creates or updates a document.
func (s *Service) Write(ctx context.Context, id, content string, opts service.WriteOptions) (*store.Document, error) {
	now := s.now().UnixMilli()

	var prev *store.Document
	if id != "" {
		if err := validate.ID(id); err != nil {
			return nil, err
		}
		d, err := s.Get(ctx, id)
		switch {
		case err == nil:
			prev = d
		case errors.Is(err, store.ErrNotFound):
		default:
			return nil, err
		}
	} else {
		u, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("generate id: %w", err)
		}
		id = u.String()
	}

	doc := store.Document{ID: id, Title: DefaultTitle, CreatedAt: now, Tags: []string{}}
	if prev != nil {
		doc = *prev
	}
	if opts.Title != "" {
		doc.Title = opts.Title
	}
	if err := validate.Title(doc.Title, s.cfg.MaxTitle()); err != nil {
		return nil, err
	}
	if opts.Tags != nil {
		tags, err := validate.Tags(opts.Tags)
		if err != nil {
			return nil, err
		}
		doc.Tags = tags
	}

	stored := content
	if prev != nil && prev.Encrypted {
		// Overwriting an encrypted document proves the password first so a
		// typo cannot silently re-key it.
		if opts.Password == "" {
			return nil, ErrPasswordRequired
		}
		if _, err := s.crypto.Decrypt(prev.Content, opts.Password); err != nil {
			return nil, err
		}
	} else if opts.Password != "" {
		if err := crypto.ValidatePassword(opts.Password); err != nil {
			return nil, err
		}
	}
	if opts.Password != "" {
		env, err := s.crypto.Encrypt([]byte(content), opts.Password)
		if err != nil {
			return nil, err
		}
		stored = env
		doc.Encrypted = true
	}
	if err := validate.Content(stored, s.cfg.MaxContent()); err != nil {
		return nil, err
	}

	doc.Content = stored
	doc.UpdatedAt = now
	if err := s.store.Save(ctx, doc); err != nil {
		return nil, s.saveFailed("write", err)
	}
	return &doc, nil
}

// Delete removes a document and its tag references. Share tokens pointing
// at it are revoked first when configured, so a failure part way leaves the
// document in place rather than reachable by a stale token.
func (s *Service) Delete(ctx context.Context, id string) (int64, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return 0, err
	}

	var revoked int64
	if s.cfg.RevokeOnDelete() {
		n, err := s.shares.RevokeDocument(ctx, id)
		if err != nil {
			return 0, s.saveFailed("delete", err)
		}
		revoked = n
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return revoked, s.saveFailed("delete", err)
	}
	return revoked, nil
}
