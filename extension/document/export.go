// export.go implements "anondocs export" and "anondocs import", the full
// backup and restore of documents, tags and settings.
//
// Share tokens are not part of a backup: they are bearer credentials and
// a restored store starts with none.

package document

import (
	"fmt"
	"io"

	"github.com/jpl-au/anondocs/cmd"
	"github.com/jpl-au/anondocs/extension"
	"github.com/jpl-au/anondocs/internal/exporter"
	"github.com/jpl-au/anondocs/internal/importer"
	"github.com/jpl-au/anondocs/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newExportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "export <file|dir>",
		Short: "Back up the store to a JSON file",
		Long: `Write every document, tag and setting to a JSON backup, with a
<file>.sha256 checksum beside it. Given a directory, the backup is named
anondocs-backup-<timestamp>.json.

Encrypted documents stay encrypted in the backup.`,
		Args: cobra.ExactArgs(1),
		RunE: e.runExport,
	}
	c.Flags().Bool(extension.FlagForce, false, "Overwrite an existing backup")
	return c
}

func (e *Extension) runExport(c *cobra.Command, args []string) error {
	force, _ := c.Flags().GetBool(extension.FlagForce)
	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	result, err := exporter.Run(c.Context(), w, e.svc, args[0], exporter.Options{Force: force})

	b := log.Event("document:export", "export").
		Author(cmd.Author()).
		Detail("path", result.Path).
		Detail("documents", result.Documents)
	if err != nil {
		return cmd.Fail(b, fmt.Errorf("export: %w", err))
	}
	b.Write(nil)
	return cmd.PrintJSON(result)
}

func (e *Extension) newImportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "import <file>",
		Short: "Restore the store from a JSON backup",
		Long: `Replace every document, tag and setting with the contents of a
backup. The replacement is all-or-nothing. When <file>.sha256 exists the
backup must match it; --no-verify skips the check.`,
		Args: cobra.ExactArgs(1),
		RunE: e.runImport,
	}
	c.Flags().Bool(extension.FlagNoVerify, false, "Skip checksum verification")
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Show what would be imported")
	return c
}

func (e *Extension) runImport(c *cobra.Command, args []string) error {
	var opts importer.Options
	opts.NoVerify, _ = c.Flags().GetBool(extension.FlagNoVerify)
	opts.DryRun, _ = c.Flags().GetBool(extension.FlagDryRun)
	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	result, err := importer.Run(c.Context(), w, e.svc, args[0], opts)

	b := log.Event("document:import", "import").
		Author(cmd.Author()).
		Detail("path", args[0]).
		Detail("documents", result.Documents).
		Detail("verified", result.Verified).
		Detail("dry_run", opts.DryRun)
	if err != nil {
		return cmd.Fail(b, fmt.Errorf("import: %w", err))
	}
	b.Write(nil)
	return cmd.PrintJSON(result)
}
