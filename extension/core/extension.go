// Package core provides the core extension for anondocs.
// It registers commands: init, config, settings, stats, vacuum, serve, db,
// guide, version.
package core

import (
	"github.com/jpl-au/anondocs/extension"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct {
	ext extension.Context
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Storeless     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "core".
func (e *Extension) Name() string { return "core" }

// Init keeps the extension context for the commands that need a store.
func (e *Extension) Init(ctx extension.Context) error {
	e.ext = ctx
	return nil
}

// Commands returns all core CLI commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newInitCmd(),
		newConfigCmd(),
		e.newSettingsCmd(),
		e.newStatsCmd(),
		e.newVacuumCmd(),
		newServeCmd(),
		newDBCmd(),
		newGuideCmd(),
		newVersionCmd(),
	}
}

// MCPTools returns nil. Store-level tools live in internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// NoStoreCommands returns commands that run without the shared service.
// serve opens its own store so it can start uninitialised.
// db only reads the store directory. guide and version need no store.
func (e *Extension) NoStoreCommands() []string {
	return []string{"serve", "db", "guide", "version"}
}
