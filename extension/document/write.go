// write.go implements the "anondocs write" command for creating and
// updating documents.
//
// Content comes from -f or stdin. With --password-stdin the first stdin
// line is the password and the rest is content, so the password is read
// before the content.

package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/anondocs/cmd"
	"github.com/jpl-au/anondocs/extension"
	"github.com/jpl-au/anondocs/internal/diff"
	"github.com/jpl-au/anondocs/internal/log"
	"github.com/jpl-au/anondocs/internal/progress"
	"github.com/jpl-au/anondocs/internal/service"
	"github.com/jpl-au/anondocs/internal/store"
	"github.com/jpl-au/anondocs/internal/validate"
	"github.com/spf13/cobra"
)

// writeResult contains the outcome of a write operation.
type writeResult struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Encrypted bool     `json:"encrypted"`
	Tags      []string `json:"tags"`
	Created   bool     `json:"created"`
}

func (e *Extension) newWriteCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "write [id]",
		Short: "Create or update a document",
		Long: `Create or update a document. Content is read from stdin or -f.

Without an id a new document is created and its id printed. An unknown id
creates a document with that id. Updating an encrypted document needs its
password and keeps it encrypted.

  echo "# Notes" | anondocs write --title Notes --tag work,draft
  anondocs write 0192... -f notes.md
  anondocs write --encrypt -f diary.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: e.runWrite,
	}
	c.Flags().StringP(extension.FlagFile, "f", "", "Read content from file")
	c.Flags().StringP(extension.FlagTitle, "t", "", "Document title")
	c.Flags().String(extension.FlagTag, "", "Comma-separated tags (replaces existing; empty clears)")
	c.Flags().BoolP(extension.FlagEncrypt, "e", false, "Encrypt with a password")
	c.Flags().Bool(extension.FlagDiff, false, "Print the change against the stored content")
	return c
}

func (e *Extension) runWrite(c *cobra.Command, args []string) error {
	ctx := c.Context()
	var id string
	if len(args) > 0 {
		id = args[0]
	}
	title, _ := c.Flags().GetString(extension.FlagTitle)
	file, _ := c.Flags().GetString(extension.FlagFile)
	encrypt, _ := c.Flags().GetBool(extension.FlagEncrypt)
	showDiff, _ := c.Flags().GetBool(extension.FlagDiff)

	b := log.Event("document:write", "write").Author(cmd.Author()).Document(id)

	opts := service.WriteOptions{Title: title}
	if c.Flags().Changed(extension.FlagTag) {
		raw, _ := c.Flags().GetString(extension.FlagTag)
		opts.Tags = validate.ParseTags(raw)
		if opts.Tags == nil {
			opts.Tags = []string{}
		}
	}

	existing, err := e.existing(ctx, id)
	if err != nil {
		return cmd.Fail(b, fmt.Errorf("write %q: %w", id, err))
	}

	switch {
	case existing != nil && existing.Encrypted:
		opts.Password, err = cmd.Password(fmt.Sprintf("Password for %s: ", id))
	case encrypt:
		opts.Password, err = cmd.NewPassword()
	}
	if err != nil {
		return cmd.Fail(b, err)
	}

	content, err := readContent(file)
	if err != nil {
		return cmd.Fail(b, err)
	}

	if showDiff && existing != nil && !cmd.JSON() {
		if err := e.printDiff(ctx, existing, content, opts.Password); err != nil {
			return cmd.Fail(b, err)
		}
	}

	doc, err := progress.Run("Saving", func() (*store.Document, error) {
		return e.svc.Write(ctx, id, content, opts)
	})
	if doc != nil {
		b.Document(doc.ID)
	}
	b.Detail("encrypted", opts.Password != "")
	if err != nil {
		return cmd.Fail(b, fmt.Errorf("write: %w", err))
	}
	b.Write(nil)

	if !cmd.JSON() {
		fmt.Fprintf(cmd.Out(), "Wrote %s\n", doc.ID)
	}
	return cmd.PrintJSON(writeResult{
		ID:        doc.ID,
		Title:     doc.Title,
		Encrypted: doc.Encrypted,
		Tags:      doc.Tags,
		Created:   existing == nil,
	})
}

// existing returns the stored document for id, or nil when it is new.
func (e *Extension) existing(ctx context.Context, id string) (*store.Document, error) {
	if id == "" {
		return nil, nil
	}
	doc, err := e.svc.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return doc, err
}

func (e *Extension) printDiff(ctx context.Context, old *store.Document, content, password string) error {
	prev := old.Content
	if old.Encrypted {
		doc, err := e.svc.Read(ctx, old.ID, password)
		if err != nil {
			return err
		}
		prev = doc.Content
	}
	r := diff.Compute(prev, content, old.ID, old.ID+" (new)")
	fmt.Fprint(cmd.Out(), r.Format(true))
	return nil
}

func readContent(file string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read file %q: %w", file, err)
		}
		return string(data), nil
	}
	if cmd.StdinIsTerminal() {
		return "", fmt.Errorf("no content: pipe it on stdin or use -f")
	}
	data, err := io.ReadAll(cmd.Stdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}
