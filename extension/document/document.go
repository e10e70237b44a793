// Package document provides the document extension for core CRUD operations.
// Registers commands: write, cat, ls, rm, encrypt, decrypt, diff, export,
// import.
//
// Each command file isolates its own flag handling and output formatting;
// the work itself happens in the matching internal package.

package document

import (
	"context"
	"fmt"

	"github.com/jpl-au/anondocs/cmd"
	"github.com/jpl-au/anondocs/extension"
	"github.com/jpl-au/anondocs/internal/config"
	"github.com/jpl-au/anondocs/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the document extension.
type Extension struct {
	svc service.Service
	cfg *config.Config
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "document".
func (e *Extension) Name() string { return "document" }

// Init connects to the shared service for document operations.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	e.cfg = ctx.Config()
	return nil
}

// Commands returns the document commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newWriteCmd(),
		e.newCatCmd(),
		e.newLsCmd(),
		e.newRmCmd(),
		e.newEncryptCmd(),
		e.newDecryptCmd(),
		e.newDiffCmd(),
		e.newExportCmd(),
		e.newImportCmd(),
	}
}

// MCPTools returns nil - document MCP tools are provided by internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// passwordFor asks for a password only when the document is encrypted.
func (e *Extension) passwordFor(ctx context.Context, id string) (string, error) {
	doc, err := e.svc.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if !doc.Encrypted {
		return "", nil
	}
	return cmd.Password(fmt.Sprintf("Password for %s: ", id))
}
