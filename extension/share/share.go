// Package share provides the share extension: bearer tokens that make a
// document addressable for 30 days, and the links that carry them.
// Registers commands: share (issue, open, link, revoke, ls, gc) and the
// matching MCP tools.
//
// A token grants addressability, not access. Opening a token that points
// at an encrypted document still needs the document's password.
package share

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jpl-au/anondocs/cmd"
	"github.com/jpl-au/anondocs/extension"
	"github.com/jpl-au/anondocs/internal/document"
	"github.com/jpl-au/anondocs/internal/format"
	"github.com/jpl-au/anondocs/internal/log"
	"github.com/jpl-au/anondocs/internal/progress"
	"github.com/jpl-au/anondocs/internal/service"
	"github.com/jpl-au/anondocs/internal/share"
	"github.com/jpl-au/anondocs/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the share extension.
type Extension struct {
	svc service.Service
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "share".
func (e *Extension) Name() string { return "share" }

// Init connects to the shared service.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the share command with its subcommands.
func (e *Extension) Commands() []*cobra.Command {
	c := &cobra.Command{
		Use:   "share",
		Short: "Issue and follow share links",
		Long: `Issue share tokens for documents, open them, and revoke them.

Tokens expire 30 days after issue. Links are built under the share.base_url
config value.`,
	}
	c.AddCommand(
		e.newIssueCmd(),
		e.newOpenCmd(),
		e.newLinkCmd(),
		e.newRevokeCmd(),
		e.newLsCmd(),
		e.newGCCmd(),
	)
	return []*cobra.Command{c}
}

// issueResult is the JSON form of an issued share.
type issueResult struct {
	Token            string    `json:"token"`
	Link             string    `json:"link"`
	DocumentID       string    `json:"documentId"`
	ExpiresAt        time.Time `json:"expiresAt"`
	RequiresPassword bool      `json:"requiresPassword"`
}

func (e *Extension) newIssueCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "issue <id>",
		Short: "Issue a share token for a document",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runIssue,
	}
	c.Flags().Bool(extension.FlagPasswordRequired, false, "Refuse unless the document is encrypted")
	return c
}

func (e *Extension) runIssue(c *cobra.Command, args []string) error {
	ctx := c.Context()
	id := args[0]
	needPw, _ := c.Flags().GetBool(extension.FlagPasswordRequired)

	b := log.Event("share:issue", "issue").Author(cmd.Author()).Document(id)

	if needPw {
		doc, err := e.svc.Get(ctx, id)
		if err != nil {
			return cmd.Fail(b, fmt.Errorf("share issue %q: %w", id, err))
		}
		if !doc.Encrypted {
			return cmd.Fail(b, fmt.Errorf("share issue %q: %w", id, document.ErrNotEncrypted))
		}
	}

	rec, err := e.svc.Share(ctx, id)
	if err != nil {
		return cmd.Fail(b, fmt.Errorf("share issue %q: %w", id, err))
	}
	b.Share(rec.Token).Write(nil)

	res := issueResult{
		Token:            rec.Token,
		Link:             e.svc.TokenLink(rec.Token),
		DocumentID:       rec.DocumentID,
		ExpiresAt:        rec.ExpiresAt,
		RequiresPassword: rec.RequiresPassword,
	}
	if !cmd.JSON() {
		fmt.Fprintln(cmd.Out(), res.Link)
		fmt.Fprintf(cmd.Out(), "Expires %s\n", res.ExpiresAt.Format("2006-01-02 15:04"))
		if res.RequiresPassword {
			fmt.Fprintln(cmd.Out(), "The document is encrypted: recipients need its password.")
		}
	}
	return cmd.PrintJSON(res)
}

func (e *Extension) newOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <token|link>",
		Short: "Open a shared document",
		Long: `Print the document a share link or token points to. Encrypted documents
prompt for their password.`,
		Args: cobra.ExactArgs(1),
		RunE: e.runOpen,
	}
}

func (e *Extension) runOpen(c *cobra.Command, args []string) error {
	link := args[0]
	b := log.Event("share:open", "resolve").Author(cmd.Author())
	if share.ValidToken(link) {
		b.Share(link)
	} else if l, err := share.ParseLink(link); err == nil && l.HasToken() {
		b.Share(l.Token)
	}

	doc, err := Open(c.Context(), e.svc, link, func() (string, error) {
		return cmd.Password("Password: ")
	})
	if err != nil {
		return cmd.Fail(b, fmt.Errorf("share open: %w", err))
	}
	b.Resolved(doc.ID).Write(nil)

	if cmd.JSON() {
		return cmd.PrintJSON(doc)
	}
	_, err = io.WriteString(cmd.Out(), doc.Content)
	return err
}

// Open follows link, asking password for one only if the target turns out
// to be encrypted.
func Open(ctx context.Context, svc service.Service, link string, password func() (string, error)) (*store.Document, error) {
	doc, err := svc.OpenLink(ctx, link, "")
	if !errors.Is(err, document.ErrPasswordRequired) {
		return doc, err
	}
	pw, err := password()
	if err != nil {
		return nil, err
	}
	return progress.Run("Decrypting", func() (*store.Document, error) {
		return svc.OpenLink(ctx, link, pw)
	})
}

func (e *Extension) newLinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "link <id>",
		Short: "Print a direct link to a document",
		Long: `Print a link that opens the document without a share token. Plaintext
documents get a view link. Encrypted documents get a direct link, printed
only after the password is verified.`,
		Args: cobra.ExactArgs(1),
		RunE: e.runLink,
	}
}

func (e *Extension) runLink(c *cobra.Command, args []string) error {
	ctx := c.Context()
	id := args[0]
	b := log.Event("share:link", "link").Author(cmd.Author()).Document(id)

	doc, err := e.svc.Get(ctx, id)
	if err != nil {
		return cmd.Fail(b, fmt.Errorf("share link %q: %w", id, err))
	}
	var pw string
	if doc.Encrypted {
		if pw, err = cmd.Password(fmt.Sprintf("Password for %s: ", id)); err != nil {
			return cmd.Fail(b, err)
		}
	}

	link, err := progress.Run("Verifying", func() (string, error) {
		return e.svc.Link(ctx, id, pw)
	})
	if err != nil {
		return cmd.Fail(b, fmt.Errorf("share link %q: %w", id, err))
	}
	b.Write(nil)

	if !cmd.JSON() {
		fmt.Fprintln(cmd.Out(), link)
	}
	return cmd.PrintJSON(map[string]string{"id": id, "link": link})
}

func (e *Extension) newRevokeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revoke <token>...",
		Short: "Revoke share tokens",
		Args:  cobra.MinimumNArgs(1),
		RunE:  e.runRevoke,
	}
}

func (e *Extension) runRevoke(c *cobra.Command, args []string) error {
	for _, tok := range args {
		b := log.Event("share:revoke", "revoke").Author(cmd.Author()).Share(tok)
		if err := e.svc.Revoke(c.Context(), tok); err != nil {
			return cmd.Fail(b, fmt.Errorf("share revoke: %w", err))
		}
		b.Write(nil)
		if !cmd.JSON() {
			fmt.Fprintf(cmd.Out(), "Revoked %s\n", tok)
		}
	}
	return cmd.PrintJSON(map[string]any{"revoked": args})
}

func (e *Extension) newLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List share tokens",
		Long:  `List share tokens, newest first. Expired tokens show until collected.`,
		Args:  cobra.NoArgs,
		RunE:  e.runLs,
	}
}

func (e *Extension) runLs(c *cobra.Command, _ []string) error {
	b := log.Event("share:ls", "list").Author(cmd.Author())
	recs, err := e.svc.Shares(c.Context())
	if err != nil {
		return cmd.Fail(b, fmt.Errorf("share ls: %w", err))
	}
	b.Detail("count", len(recs)).Write(nil)

	if cmd.JSON() {
		return cmd.PrintJSON(recs)
	}
	return format.Shares(cmd.Out(), recs, e.svc.Now())
}

func (e *Extension) newGCCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gc",
		Short: "Delete expired share tokens",
		Args:  cobra.NoArgs,
		RunE:  e.runGC,
	}
}

func (e *Extension) runGC(c *cobra.Command, _ []string) error {
	b := log.Event("share:gc", "gc").Author(cmd.Author())
	n, err := e.svc.CollectShares(c.Context())
	if err != nil {
		return cmd.Fail(b, fmt.Errorf("share gc: %w", err))
	}
	b.Detail("count", n).Write(nil)

	if !cmd.JSON() {
		fmt.Fprintf(cmd.Out(), "Collected %d expired share(s)\n", n)
	}
	return cmd.PrintJSON(map[string]int64{"collected": n})
}
