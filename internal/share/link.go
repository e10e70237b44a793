// link.go builds and parses share links.
//
// Three fragment forms exist:
//
//	#key=<token>                          token form, resolved through the registry
//	#encrypted=<docID>&share=<shareID>    direct form, password sent separately
//	#view=<docID>                         plain link to an unencrypted document
//
// Any parameter may also travel in the query string (?key=<token>). A link
// may carry more than one form; ParseLink reports every one present and
// leaves the choice to the caller.

package share

import (
	"errors"
	"net/url"
	"strings"
)

// ErrInvalidLink is returned when no recognised parameter is present.
var ErrInvalidLink = errors.New("not a share link")

// Link holds the parameters found in a share link.
type Link struct {
	Token      string `json:"token,omitempty"`
	DocumentID string `json:"documentId,omitempty"`
	ShareID    string `json:"shareId,omitempty"`
	ViewID     string `json:"viewId,omitempty"`
}

// HasToken reports whether the token form is present.
func (l Link) HasToken() bool { return l.Token != "" }

// HasDirect reports whether the direct form is present. Both parameters are
// required, matching how the link is built.
func (l Link) HasDirect() bool { return l.DocumentID != "" && l.ShareID != "" }

// HasView reports whether the view form is present.
func (l Link) HasView() bool { return l.ViewID != "" }

// TokenLink returns base#key=<token>.
func TokenLink(base, token string) string {
	return base + "#" + url.Values{"key": {token}}.Encode()
}

// DirectLink returns base#encrypted=<docID>&share=<shareID>.
func DirectLink(base, docID, shareID string) string {
	return base + "#encrypted=" + url.QueryEscape(docID) + "&share=" + url.QueryEscape(shareID)
}

// ViewLink returns base#view=<docID>.
func ViewLink(base, docID string) string {
	return base + "#" + url.Values{"view": {docID}}.Encode()
}

// ParseLink extracts link parameters from a full URL, a bare fragment
// ("#key=..."), or a fragment without the leading '#'. Parameters are read
// from both the query string and the fragment; where both carry the same
// parameter the fragment wins.
func ParseLink(s string) (Link, error) {
	s = strings.TrimSpace(s)

	var frag string
	if i := strings.IndexByte(s, '#'); i >= 0 {
		s, frag = s[:i], s[i+1:]
	}
	var query string
	if i := strings.IndexByte(s, '?'); i >= 0 {
		query = s[i+1:]
	} else if !strings.Contains(s, "://") {
		query = s
	}

	vals, err := url.ParseQuery(query)
	if err != nil {
		return Link{}, ErrInvalidLink
	}
	fvals, err := url.ParseQuery(frag)
	if err != nil {
		return Link{}, ErrInvalidLink
	}
	for k, v := range fvals {
		vals[k] = v
	}

	l := Link{
		Token:      vals.Get("key"),
		DocumentID: vals.Get("encrypted"),
		ShareID:    vals.Get("share"),
		ViewID:     vals.Get("view"),
	}
	if !l.HasToken() && !l.HasDirect() && !l.HasView() {
		return Link{}, ErrInvalidLink
	}
	return l, nil
}
