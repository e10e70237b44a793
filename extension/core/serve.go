// serve.go implements "anondocs serve". Serve blocks handling MCP requests
// over stdio and opens its own store so that it can start before one exists.

package core

import (
	"fmt"

	"github.com/jpl-au/anondocs/cmd"
	"github.com/jpl-au/anondocs/internal/config"
	"github.com/jpl-au/anondocs/internal/document"
	"github.com/jpl-au/anondocs/internal/mcp"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio.

Use --db to serve a specific database:
  anondocs serve --db work    # serve anondocs-work.db`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
}

func runServe(c *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}
	logger := cmd.Logger(cfg)
	defer func() { _ = logger.Sync() }()

	return mcp.Serve(c.Context(), mcp.Options{
		DB:     cmd.DB(),
		Dir:    cmd.Dir(),
		Config: cfg,
		Logger: logger,
		Open: func() (*document.Service, error) {
			return cmd.OpenService(cfg, logger)
		},
	})
}
