// ls.go implements the "anondocs ls" command for listing documents.

package document

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jpl-au/anondocs/cmd"
	"github.com/jpl-au/anondocs/extension"
	"github.com/jpl-au/anondocs/internal/log"
	"github.com/jpl-au/anondocs/internal/ls"
	"github.com/jpl-au/anondocs/internal/service"
	"github.com/spf13/cobra"
)

func (e *Extension) newLsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "ls",
		Short: "List documents",
		Long: `List documents, most recently modified first.

Encrypted documents are marked [locked]; their titles stay readable.`,
		Args: cobra.NoArgs,
		RunE: e.runLs,
	}
	c.Flags().String(extension.FlagTag, "", "Filter by tag (exact match)")
	c.Flags().StringP(extension.FlagSort, "s", service.SortModified,
		"Sort by: "+strings.Join(service.SortOrders, ", "))
	c.Flags().BoolP(extension.FlagLong, "l", false, "Long format with metadata")
	c.Flags().Bool(extension.FlagIDs, false, "Print ids only")
	_ = c.RegisterFlagCompletionFunc(extension.FlagSort, func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return service.SortOrders, cobra.ShellCompDirectiveNoFileComp
	})
	return c
}

func (e *Extension) runLs(c *cobra.Command, _ []string) error {
	var opts ls.Options
	opts.Tag, _ = c.Flags().GetString(extension.FlagTag)
	opts.Sort, _ = c.Flags().GetString(extension.FlagSort)
	opts.Long, _ = c.Flags().GetBool(extension.FlagLong)
	opts.IDs, _ = c.Flags().GetBool(extension.FlagIDs)

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	result, err := ls.Run(c.Context(), w, e.svc, opts)

	b := log.Event("document:ls", "list").
		Author(cmd.Author()).
		Detail("tag", opts.Tag).
		Detail("count", len(result.Documents))
	if err != nil {
		return cmd.Fail(b, fmt.Errorf("ls: %w", err))
	}
	b.Detail("degraded", result.Degraded).Write(nil)

	if result.Degraded {
		fmt.Fprintln(os.Stderr, "warning: storage unavailable, listing may be incomplete")
	}
	return cmd.PrintJSON(result.ToJSON())
}
