// crypt.go implements turning encryption on and off for stored documents.

package document

import (
	"context"

	"github.com/jpl-au/anondocs/internal/crypto"
	"github.com/jpl-au/anondocs/internal/validate"
)

// Encrypt replaces a plaintext document's content with its envelope.
func (s *Service) Encrypt(ctx context.Context, id, password string) error {
	if err := crypto.ValidatePassword(password); err != nil {
		return err
	}
	doc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if doc.Encrypted {
		return ErrAlreadyEncrypted
	}

	env, err := s.crypto.Encrypt([]byte(doc.Content), password)
	if err != nil {
		return err
	}
	if err := validate.Content(env, s.cfg.MaxContent()); err != nil {
		return err
	}

	doc.Content = env
	doc.Encrypted = true
	doc.UpdatedAt = s.now().UnixMilli()
	if err := s.store.Save(ctx, *doc); err != nil {
		return s.saveFailed("encrypt", err)
	}
	return nil
}

// Decrypt stores a document's plaintext in place of its envelope.
func (s *Service) Decrypt(ctx context.Context, id, password string) error {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !doc.Encrypted {
		return ErrNotEncrypted
	}
	if password == "" {
		return ErrPasswordRequired
	}

	plain, err := s.crypto.Decrypt(doc.Content, password)
	if err != nil {
		return err
	}

	doc.Content = string(plain)
	doc.Encrypted = false
	doc.UpdatedAt = s.now().UnixMilli()
	if err := s.store.Save(ctx, *doc); err != nil {
		return s.saveFailed("decrypt", err)
	}
	return nil
}
