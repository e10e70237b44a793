// shares.go connects documents to the share registry: issuing tokens,
// building links and following them back to a readable document.

package document

import (
	"context"

	"github.com/jpl-au/anondocs/internal/share"
	"github.com/jpl-au/anondocs/internal/store"
)

// Share issues a token for a document. Tokens for encrypted documents are
// marked as needing the password.
func (s *Service) Share(ctx context.Context, id string) (share.Record, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return share.Record{}, err
	}
	rec, err := s.shares.Issue(ctx, doc.ID, doc.Encrypted)
	if err != nil {
		return share.Record{}, s.saveFailed("share", err)
	}
	return rec, nil
}

// TokenLink renders a token as a link under the configured base URL.
func (s *Service) TokenLink(token string) string {
	return share.TokenLink(s.cfg.BaseURL(), token)
}

// Link returns a link to a document. Plaintext documents get a view link.
// Encrypted documents get a direct link, generated only after password
// proves it can open the document.
func (s *Service) Link(ctx context.Context, id, password string) (string, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	base := s.cfg.BaseURL()
	if !doc.Encrypted {
		return share.ViewLink(base, doc.ID), nil
	}
	if password == "" {
		return "", ErrPasswordRequired
	}
	if _, err := s.crypto.Decrypt(doc.Content, password); err != nil {
		return "", err
	}
	sid, err := share.NewShareID(s.rand)
	if err != nil {
		return "", err
	}
	return share.DirectLink(base, doc.ID, sid), nil
}

// Resolve looks up a share token.
func (s *Service) Resolve(ctx context.Context, token string) (share.Resolution, error) {
	return s.shares.Resolve(ctx, token)
}

// OpenLink follows link to its document. link may be a full URL, a
// fragment or a bare token. A token that resolves to a deleted document
// reports store.ErrNotFound.
func (s *Service) OpenLink(ctx context.Context, link, password string) (*store.Document, error) {
	l, err := parseLink(link)
	if err != nil {
		return nil, err
	}

	switch {
	case l.HasToken():
		res, err := s.shares.Resolve(ctx, l.Token)
		if err != nil {
			return nil, err
		}
		if err := res.Err(); err != nil {
			return nil, err
		}
		return s.Read(ctx, res.Record.DocumentID, password)
	case l.HasDirect():
		doc, err := s.Get(ctx, l.DocumentID)
		if err != nil {
			return nil, err
		}
		if !doc.Encrypted {
			return nil, ErrNotEncrypted
		}
		return s.Read(ctx, doc.ID, password)
	default:
		return s.Read(ctx, l.ViewID, password)
	}
}

func parseLink(s string) (share.Link, error) {
	if share.ValidToken(s) {
		return share.Link{Token: s}, nil
	}
	return share.ParseLink(s)
}

// Revoke invalidates a share token.
func (s *Service) Revoke(ctx context.Context, token string) error {
	if err := s.shares.Revoke(ctx, token); err != nil {
		return s.saveFailed("revoke", err)
	}
	return nil
}

// Shares lists share records, newest first.
func (s *Service) Shares(ctx context.Context) ([]share.Record, error) {
	return s.shares.List(ctx)
}

// CollectShares deletes expired share records.
func (s *Service) CollectShares(ctx context.Context) (int64, error) {
	return s.shares.GC(ctx)
}
