// tools_guide.go implements anondocs_guide. It works without a store.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jpl-au/anondocs/guide"
	"github.com/mark3labs/mcp-go/mcp"
)

// getGuide handles anondocs_guide tool calls.
func (h *handlers) getGuide(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic := getString(req, "topic", "")
	content, err := guide.Get(topic)
	if errors.Is(err, guide.ErrNotFound) {
		available, _ := guide.List()
		return mcp.NewToolResultError(fmt.Sprintf("guide %q not found. Available: %s", topic, strings.Join(available, ", "))), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(content), nil
}
