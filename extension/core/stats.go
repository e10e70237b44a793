// stats.go implements "anondocs stats".

package core

import (
	"fmt"
	"os"

	"github.com/jpl-au/anondocs/cmd"
	"github.com/jpl-au/anondocs/internal/format"
	"github.com/jpl-au/anondocs/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show storage usage",
		Args:  cobra.NoArgs,
		RunE:  e.runStats,
	}
}

func (e *Extension) runStats(c *cobra.Command, _ []string) error {
	b := log.Event("core:stats", "stats").Author(cmd.Author())
	res, err := e.ext.Service().Stats(c.Context())
	if err != nil {
		return cmd.Fail(b, fmt.Errorf("stats: %w", err))
	}
	b.Detail("degraded", res.Degraded).Write(nil)

	if res.Degraded {
		fmt.Fprintln(os.Stderr, "warning: storage unavailable, statistics may be incomplete")
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"stats": res.Value, "degraded": res.Degraded})
	}
	return format.Stats(cmd.Out(), res.Value)
}
