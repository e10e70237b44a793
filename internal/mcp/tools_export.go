// tools_export.go implements anondocs_export and anondocs_import, the
// backup file round trip.

package mcp

import (
	"context"
	"io"

	"github.com/jpl-au/anondocs/internal/exporter"
	"github.com/jpl-au/anondocs/internal/importer"
	"github.com/jpl-au/anondocs/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// exportStore handles anondocs_export tool calls.
func (h *handlers) exportStore(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	dest, err := req.RequireString("dest")
	if err != nil {
		return mcp.NewToolResultError("dest is required"), nil //nolint:nilerr
	}

	b := log.Event("mcp:anondocs_export", "export").Author("mcp").Detail("dest", dest)
	result, err := exporter.Run(ctx, io.Discard, svc, dest, exporter.Options{Force: getBool(req, "force", false)})
	if err != nil {
		b.Write(err)
		return errorResult(err), nil
	}
	b.Detail("documents", result.Documents).Write(nil)
	return jsonResult(result)
}

// importStore handles anondocs_import tool calls.
func (h *handlers) importStore(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}

	opts := importer.Options{
		NoVerify: getBool(req, "no_verify", false),
		DryRun:   getBool(req, "dry_run", false),
	}
	b := log.Event("mcp:anondocs_import", "import").Author("mcp").Detail("path", path).Detail("dry_run", opts.DryRun)
	result, err := importer.Run(ctx, io.Discard, svc, path, opts)
	if err != nil {
		b.Write(err)
		return errorResult(err), nil
	}
	b.Detail("documents", result.Documents).Write(nil)
	return jsonResult(result)
}
