// rm.go implements the "anondocs rm" command. Deletion is permanent.

package document

import (
	"io"

	"github.com/jpl-au/anondocs/cmd"
	"github.com/jpl-au/anondocs/internal/log"
	"github.com/jpl-au/anondocs/internal/rm"
	"github.com/spf13/cobra"
)

func (e *Extension) newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>...",
		Short: "Delete documents",
		Long: `Permanently delete documents. Their tags are released and, unless
share.revoke_on_delete is false, their share links stop working.`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.runRm,
	}
}

func (e *Extension) runRm(c *cobra.Command, args []string) error {
	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	result, err := rm.Run(c.Context(), w, e.svc, args)

	for _, id := range result.Deleted {
		log.Event("document:rm", "delete").Author(cmd.Author()).Document(id).Write(nil)
	}
	if err != nil {
		failed := args[len(result.Deleted)]
		b := log.Event("document:rm", "delete").Author(cmd.Author()).Document(failed)
		return cmd.Fail(b, err)
	}
	return cmd.PrintJSON(result)
}
