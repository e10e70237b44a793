// tools_init.go implements anondocs_init. It works without an existing
// store; every other store tool requires one.

package mcp

import (
	"context"

	"github.com/jpl-au/anondocs/internal/document"
	"github.com/jpl-au/anondocs/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
)

// initStore handles anondocs_init tool calls.
func (h *handlers) initStore(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.service() != nil {
		return mcp.NewToolResultError("store already initialised"), nil
	}

	path, err := document.Init(false, h.opts.DB, h.opts.Dir)
	log.Event("mcp:anondocs_init", "init").Author("mcp").Detail("db", h.opts.DB).Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	svc, err := h.opts.Open()
	if err != nil {
		return mcp.NewToolResultError("init succeeded but failed to open store: " + err.Error()), nil
	}
	h.attach(svc)

	h.log.Info("store initialised", zap.String("path", path))
	return mcp.NewToolResultText("store initialised"), nil
}
