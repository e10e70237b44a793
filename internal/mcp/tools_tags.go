// tools_tags.go implements MCP tools for tags. Adding a tag a document
// already has, or removing one it lacks, succeeds without change.

package mcp

import (
	"context"
	"io"
	"strings"

	"github.com/jpl-au/anondocs/internal/log"
	"github.com/jpl-au/anondocs/internal/service"
	"github.com/jpl-au/anondocs/internal/tag"
	"github.com/mark3labs/mcp-go/mcp"
)

// tagAdd handles anondocs_tag_add tool calls.
func (h *handlers) tagAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.retag(ctx, req, "tag_add", tag.Add)
}

// tagRemove handles anondocs_tag_remove tool calls.
func (h *handlers) tagRemove(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.retag(ctx, req, "tag_remove", tag.Remove)
}

type tagFunc func(context.Context, io.Writer, service.Service, string, ...string) (tag.Result, error)

func (h *handlers) retag(ctx context.Context, req mcp.CallToolRequest, action string, fn tagFunc) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil //nolint:nilerr
	}
	tags := getStrings(req, "tags")
	if len(tags) == 0 {
		return mcp.NewToolResultError("tags is required"), nil
	}

	result, err := fn(ctx, io.Discard, svc, id, tags...)
	log.Event("mcp:anondocs_"+action, action).Author("mcp").Document(id).Detail("tags", strings.Join(tags, ",")).Write(err)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(result)
}

// listTags handles anondocs_tags tool calls.
func (h *handlers) listTags(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}

	result, err := tag.List(ctx, io.Discard, svc)
	log.Event("mcp:anondocs_tags", "list_tags").Author("mcp").Detail("count", len(result.Index)).Write(err)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(map[string]any{"tags": result.Index, "degraded": result.Degraded})
}
