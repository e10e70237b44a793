// Package search provides the search extension: a case-insensitive
// substring search over titles and plaintext content.
// Registers commands: search.
package search

import (
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/anondocs/cmd"
	"github.com/jpl-au/anondocs/extension"
	"github.com/jpl-au/anondocs/internal/find"
	"github.com/jpl-au/anondocs/internal/log"
	"github.com/jpl-au/anondocs/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the search extension.
type Extension struct {
	svc service.Service
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "search".
func (e *Extension) Name() string { return "search" }

// Init connects to the shared service.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the search command.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{e.newSearchCmd()}
}

// MCPTools returns nil - the MCP search tool is in internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

func (e *Extension) newSearchCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "search <query>",
		Short: "Search documents",
		Long: `Find documents whose title or content contains query, ignoring case.

Encrypted content is never searched: encrypted documents match on their
title only.`,
		Args: cobra.ExactArgs(1),
		RunE: e.runSearch,
	}
	c.Flags().Bool(extension.FlagIDs, false, "Print ids only")
	return c
}

func (e *Extension) runSearch(c *cobra.Command, args []string) error {
	query := args[0]
	var opts find.Options
	opts.IDs, _ = c.Flags().GetBool(extension.FlagIDs)

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	result, err := find.Run(c.Context(), w, e.svc, query, opts)

	b := log.Event("search:search", "search").
		Author(cmd.Author()).
		Detail("count", len(result.Documents))
	if err != nil {
		return cmd.Fail(b, fmt.Errorf("search: %w", err))
	}
	b.Write(nil)

	if result.Degraded {
		fmt.Fprintln(os.Stderr, "warning: storage unavailable, results may be incomplete")
	}
	return cmd.PrintJSON(result.ToJSON())
}
