// tools_search.go implements anondocs_search.

package mcp

import (
	"context"
	"io"

	"github.com/jpl-au/anondocs/internal/find"
	"github.com/jpl-au/anondocs/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// searchDocuments handles anondocs_search tool calls.
func (h *handlers) searchDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query is required"), nil //nolint:nilerr
	}

	b := log.Event("mcp:anondocs_search", "search").Author("mcp")
	result, err := find.Run(ctx, io.Discard, svc, query, find.Options{})
	if err != nil {
		b.Write(err)
		return errorResult(err), nil
	}
	b.Detail("count", len(result.Documents)).Detail("degraded", result.Degraded).Write(nil)
	return jsonResult(result.ToJSON())
}
