// init.go implements "anondocs init". Init runs before a store exists and
// creates the database with its schema. Config is separate: see
// "anondocs config".

package core

import (
	"fmt"
	"path/filepath"

	"github.com/jpl-au/anondocs/cmd"
	"github.com/jpl-au/anondocs/extension"
	"github.com/jpl-au/anondocs/internal/document"
	"github.com/jpl-au/anondocs/internal/log"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "init",
		Short: "Initialise a new anondocs store",
		Long: `Creates a .anondocs/anondocs.db database in the current directory.

Use --db to create additional databases:
  anondocs init --db work    # creates .anondocs/anondocs-work.db

Use --dir to create in a different directory:
  anondocs init --dir /path/to/project

The store directory is gitignored: documents and share tokens are private.`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}
	c.Flags().Bool(extension.FlagForce, false, "Reinitialise an existing store")
	return c
}

func runInit(c *cobra.Command, _ []string) error {
	force, _ := c.Flags().GetBool(extension.FlagForce)
	db, dir := cmd.DB(), cmd.Dir()

	path, err := document.Init(force, db, dir)

	b := log.Event("core:init", "init").
		Author(cmd.Author()).
		Detail("db", db).
		Detail("dir", dir).
		Detail("force", force)
	if err != nil {
		return cmd.Fail(b, fmt.Errorf("init: %w", err))
	}
	b.Write(nil)

	if rel, err := filepath.Rel(".", path); err == nil && dir == "" {
		path = rel
	}
	if !cmd.JSON() {
		fmt.Fprintf(cmd.Out(), "Initialised anondocs store in %s\n", path)
	}
	return cmd.PrintJSON(map[string]string{"path": path})
}
