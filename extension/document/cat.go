// cat.go implements the "anondocs cat" command for reading documents.
//
// Terminal output is rendered with glamour; pipes get the raw markup.
// Encrypted documents prompt for their password.

package document

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/jpl-au/anondocs/cmd"
	"github.com/jpl-au/anondocs/extension"
	"github.com/jpl-au/anondocs/internal/cat"
	"github.com/jpl-au/anondocs/internal/log"
	"github.com/jpl-au/anondocs/internal/progress"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (e *Extension) newCatCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "cat <id>",
		Short: "Read a document",
		Long:  `Output the contents of a document, decrypting it when needed.`,
		Args:  cobra.ExactArgs(1),
		RunE:  e.runCat,
	}
	c.Flags().BoolP(extension.FlagNumber, "n", false, "Number all output lines")
	c.Flags().StringP(extension.FlagLines, "l", "", "Line range (e.g., 10:20, 5:, :15)")
	c.Flags().Bool(extension.FlagRaw, false, "Output raw markup without rendering")
	return c
}

func (e *Extension) runCat(c *cobra.Command, args []string) error {
	ctx := c.Context()
	id := args[0]
	lineNums, _ := c.Flags().GetBool(extension.FlagNumber)
	lineRange, _ := c.Flags().GetString(extension.FlagLines)
	raw, _ := c.Flags().GetBool(extension.FlagRaw)

	b := log.Event("document:cat", "read").Author(cmd.Author()).Document(id)

	opts := cat.Options{LineNumbers: lineNums}
	if lineRange != "" {
		start, end, err := cat.ParseLineRange(lineRange)
		if err != nil {
			return cmd.PrintJSONError(err)
		}
		opts.StartLine, opts.EndLine = start, end
	}

	pw, err := e.passwordFor(ctx, id)
	if err != nil {
		return cmd.Fail(b, fmt.Errorf("cat %q: %w", id, err))
	}
	opts.Password = pw

	var buf bytes.Buffer
	result, err := progress.Run("Decrypting", func() (cat.Result, error) {
		return cat.Run(ctx, &buf, e.svc, id, opts)
	})
	if err != nil {
		return cmd.Fail(b, fmt.Errorf("cat %q: %w", id, err))
	}
	b.Write(nil)

	if cmd.JSON() {
		return cmd.PrintJSON(result.Document)
	}

	if !raw && !lineNums && term.IsTerminal(int(os.Stdout.Fd())) {
		if rendered, err := glamour.Render(buf.String(), "dark"); err == nil {
			fmt.Fprint(cmd.Out(), rendered)
			return nil
		}
	}
	_, err = io.Copy(cmd.Out(), &buf)
	return err
}
