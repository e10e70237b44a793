// tools_diff.go implements anondocs_diff.

package mcp

import (
	"context"

	"github.com/jpl-au/anondocs/internal/diff"
	"github.com/jpl-au/anondocs/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// diffDocuments handles anondocs_diff tool calls.
func (h *handlers) diffDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil //nolint:nilerr
	}
	other, err := req.RequireString("other")
	if err != nil {
		return mcp.NewToolResultError("other is required"), nil //nolint:nilerr
	}

	result, err := svc.Diff(ctx, id, diff.Options{
		Other:    other,
		Password: getString(req, "password", ""),
	})
	log.Event("mcp:anondocs_diff", "diff").Author("mcp").Document(id).Detail("other", other).Write(err)
	if err != nil {
		return errorResult(err), nil
	}
	if result.Empty() {
		return mcp.NewToolResultText("no differences"), nil
	}
	return mcp.NewToolResultText(result.Format(false)), nil
}
