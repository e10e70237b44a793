// db.go implements "anondocs db". It lists the databases in the store
// directory without opening them, so it works on locked or damaged files.

package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jpl-au/anondocs/cmd"
	"github.com/jpl-au/anondocs/internal/format"
	"github.com/jpl-au/anondocs/internal/log"
	"github.com/jpl-au/anondocs/internal/repo"
	"github.com/spf13/cobra"
)

func newDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "db",
		Short: "List databases",
		Long: `List the databases in the store directory.

  anondocs db               # list databases
  anondocs db --dir /path   # list databases in another directory

Select one for other commands with --db or ANONDOCS_DB.`,
		Args: cobra.NoArgs,
		RunE: runDB,
	}
}

func runDB(_ *cobra.Command, _ []string) error {
	dir := cmd.Dir()
	storeDir := ""
	if dir != "" {
		storeDir = filepath.Join(dir, repo.Dir)
	}

	b := log.Event("core:db", "list").Author(cmd.Author()).Detail("dir", dir)
	dbs, err := repo.ListDBs(storeDir)
	if err != nil {
		return cmd.Fail(b, fmt.Errorf("db list: %w", err))
	}
	b.Detail("count", len(dbs)).Write(nil)

	if cmd.JSON() {
		return cmd.PrintJSON(dbs)
	}
	if len(dbs) == 0 {
		fmt.Fprintln(cmd.Out(), "No databases found")
		return nil
	}

	current := repo.DBFileName(cmd.DB())
	for _, db := range dbs {
		mark := " "
		if db.File == current {
			mark = "*"
		}
		size := "-"
		if fi, err := os.Stat(db.Path); err == nil {
			size = format.HumanSize(fi.Size())
		}
		fmt.Fprintf(cmd.Out(), "%s %-24s %6s\n", mark, db.File, size)
	}
	return nil
}
