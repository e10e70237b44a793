// mcp.go defines types for MCP tool registration by extensions.
//
// Not every extension has MCP tools; most document tools live in
// internal/mcp. Extension tools are registered alongside them when the
// server starts.

package extension

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jpl-au/anondocs/internal/crypto"
	"github.com/jpl-au/anondocs/internal/document"
	"github.com/mark3labs/mcp-go/mcp"
)

// MCPTool pairs an MCP tool definition with its handler.
type MCPTool struct {
	Tool    mcp.Tool
	Handler MCPHandler
}

// MCPHandler processes MCP tool requests. extCtx is nil when the server
// runs without a store.
type MCPHandler func(ctx context.Context, extCtx Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)

// Tools collects the MCP tools of every registered extension, in
// registration order.
func Tools() []MCPTool {
	var tools []MCPTool
	for _, e := range All() {
		tools = append(tools, e.MCPTools()...)
	}
	return tools
}

// ErrorResult converts err to a tool error with the same wording the CLI
// uses. Crypto failures never reveal more than "incorrect password" and
// storage write failures read "failed to save".
func ErrorResult(err error) *mcp.CallToolResult {
	var se *document.SaveError
	switch {
	case errors.Is(err, crypto.ErrDecryptionFailed), errors.Is(err, crypto.ErrInvalidEnvelope),
		errors.Is(err, crypto.ErrWeakPassword), errors.Is(err, crypto.ErrCrypto):
		return mcp.NewToolResultError(crypto.UserMessage(err))
	case errors.As(err, &se):
		return mcp.NewToolResultError(se.Error())
	}
	return mcp.NewToolResultError(err.Error())
}

// JSONResult returns v as pretty-printed JSON text.
func JSONResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
