// vacuum.go implements "anondocs vacuum": collect expired share tokens and
// compact the database file.

package core

import (
	"fmt"
	"io"

	"github.com/jpl-au/anondocs/cmd"
	"github.com/jpl-au/anondocs/extension"
	"github.com/jpl-au/anondocs/internal/log"
	"github.com/jpl-au/anondocs/internal/vacuum"
	"github.com/spf13/cobra"
)

func (e *Extension) newVacuumCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "vacuum",
		Short: "Collect expired shares and compact the database",
		Long: `Delete expired share tokens and rebuild the database file.

Deleted documents are already gone: vacuum reclaims the space they used.`,
		Args: cobra.NoArgs,
		RunE: e.runVacuum,
	}
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Show expired shares without deleting them")
	return c
}

func (e *Extension) runVacuum(c *cobra.Command, _ []string) error {
	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)
	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	b := log.Event("core:vacuum", "vacuum").Author(cmd.Author()).Detail("dry_run", dryRun)
	result, err := vacuum.Run(c.Context(), w, e.ext.Service(), vacuum.Options{DryRun: dryRun})
	if err != nil {
		return cmd.Fail(b, fmt.Errorf("vacuum: %w", err))
	}
	b.Detail("count", result.Collected).Write(nil)
	return cmd.PrintJSON(result)
}
