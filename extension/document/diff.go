// diff.go implements the "anondocs diff" command.
//
// A document is compared with a second document or with a file on disk.
// Encrypted sides are decrypted first, with one password for both.

package document

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/anondocs/cmd"
	"github.com/jpl-au/anondocs/extension"
	"github.com/jpl-au/anondocs/internal/diff"
	"github.com/jpl-au/anondocs/internal/log"
	"github.com/jpl-au/anondocs/internal/progress"
	"github.com/spf13/cobra"
)

func (e *Extension) newDiffCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "diff <id> [other-id]",
		Short: "Show differences between documents",
		Long: `Show line differences between two documents, or between a document
and a file.

  anondocs diff 0192a 0192b
  anondocs diff 0192a -f ./notes.md`,
		Args: cobra.RangeArgs(1, 2),
		RunE: e.runDiff,
	}
	c.Flags().StringP(extension.FlagFile, "f", "", "Compare with a file instead of a document")
	c.Flags().Bool(extension.FlagRaw, false, "Output without colour")
	return c
}

func (e *Extension) runDiff(c *cobra.Command, args []string) error {
	ctx := c.Context()
	id := args[0]
	file, _ := c.Flags().GetString(extension.FlagFile)
	raw, _ := c.Flags().GetBool(extension.FlagRaw)

	b := log.Event("document:diff", "diff").Author(cmd.Author()).Document(id)

	var opts diff.Options
	switch {
	case len(args) == 2 && file != "":
		return cmd.PrintJSONError(fmt.Errorf("give a second document or -f, not both"))
	case len(args) == 2:
		opts.Other = args[1]
		b.Detail("other", opts.Other)
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("reading file %s: %w", file, err))
		}
		opts.FileContent = string(data)
		opts.FileLabel = file
	default:
		return cmd.PrintJSONError(fmt.Errorf("nothing to compare: give a second document or -f <file>"))
	}

	pw, err := e.diffPassword(ctx, id, opts.Other)
	if err != nil {
		return cmd.Fail(b, err)
	}
	opts.Password = pw

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}
	r, err := progress.Run("Comparing", func() (diff.Result, error) {
		return diff.Run(ctx, w, e.svc, id, opts, !raw)
	})
	if err != nil {
		return cmd.Fail(b, fmt.Errorf("diff %q: %w", id, err))
	}
	b.Write(nil)
	return cmd.PrintJSON(r)
}

// diffPassword asks once if either side is encrypted.
func (e *Extension) diffPassword(ctx context.Context, id, other string) (string, error) {
	for _, d := range []string{id, other} {
		if d == "" {
			continue
		}
		doc, err := e.svc.Get(ctx, d)
		if err != nil {
			return "", err
		}
		if doc.Encrypted {
			return cmd.Password("Password: ")
		}
	}
	return "", nil
}
