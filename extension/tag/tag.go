// Package tag provides the tag extension for anondocs.
// It registers commands: tag (with subcommands add, rm, ls).
package tag

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jpl-au/anondocs/cmd"
	"github.com/jpl-au/anondocs/extension"
	"github.com/jpl-au/anondocs/internal/log"
	"github.com/jpl-au/anondocs/internal/service"
	"github.com/jpl-au/anondocs/internal/tag"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the tag extension.
type Extension struct {
	svc service.Service
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "tag".
func (e *Extension) Name() string { return "tag" }

// Init receives the shared service from the extension context.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the tag command with its subcommands (add, rm, ls).
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{e.newTagCmd()}
}

// MCPTools returns nil - MCP tagging tools are in internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// --- tag command with subcommands ---

func (e *Extension) newTagCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "tag",
		Short: "Manage document tags",
		Long: `Add and remove document tags, and list the tag index.

Tags are matched exactly and may not contain commas.`,
	}
	c.AddCommand(e.newTagAddCmd())
	c.AddCommand(e.newTagRmCmd())
	c.AddCommand(e.newTagLsCmd())
	return c
}

func (e *Extension) newTagAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <id> <tag>...",
		Short: "Add tags to a document",
		Args:  cobra.MinimumNArgs(2),
		RunE:  e.runTagAdd,
	}
}

func (e *Extension) newTagRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id> <tag>...",
		Short: "Remove tags from a document",
		Args:  cobra.MinimumNArgs(2),
		RunE:  e.runTagRm,
	}
}

func (e *Extension) newTagLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List all tags with their document counts",
		Args:    cobra.NoArgs,
		RunE:    e.runTagLs,
	}
}

func (e *Extension) runTagAdd(c *cobra.Command, args []string) error {
	id, tags := args[0], args[1:]
	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	l := log.Event("tag:add", "tag").
		Author(cmd.Author()).
		Document(id).
		Detail("tags", strings.Join(tags, ","))

	result, err := tag.Add(c.Context(), w, e.svc, id, tags...)
	if err != nil {
		return cmd.Fail(l, fmt.Errorf("tag add %q: %w", id, err))
	}
	l.Write(nil)
	return cmd.PrintJSON(result)
}

func (e *Extension) runTagRm(c *cobra.Command, args []string) error {
	id, tags := args[0], args[1:]
	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	l := log.Event("tag:rm", "untag").
		Author(cmd.Author()).
		Document(id).
		Detail("tags", strings.Join(tags, ","))

	result, err := tag.Remove(c.Context(), w, e.svc, id, tags...)
	if err != nil {
		return cmd.Fail(l, fmt.Errorf("tag rm %q: %w", id, err))
	}
	l.Write(nil)
	return cmd.PrintJSON(result)
}

func (e *Extension) runTagLs(c *cobra.Command, _ []string) error {
	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	l := log.Event("tag:ls", "list_tags").Author(cmd.Author())

	result, err := tag.List(c.Context(), w, e.svc)
	if err != nil {
		return cmd.Fail(l, fmt.Errorf("tag ls: %w", err))
	}
	l.Detail("count", len(result.Index)).Write(nil)

	if result.Degraded {
		fmt.Fprintln(os.Stderr, "warning: storage unavailable, tag list may be incomplete")
	}
	return cmd.PrintJSON(result.Index)
}
