// tools_documents.go implements MCP tools for document operations. They
// mirror the CLI commands (ls, cat, write, rm, encrypt, decrypt) but return
// JSON for the client. Errors are returned as tool error results so the
// client gets feedback it can act on.

package mcp

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/jpl-au/anondocs/internal/cat"
	"github.com/jpl-au/anondocs/internal/log"
	"github.com/jpl-au/anondocs/internal/ls"
	"github.com/jpl-au/anondocs/internal/rm"
	"github.com/jpl-au/anondocs/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
)

// listDocuments handles anondocs_list tool calls. It goes through
// internal/ls so sorting and filtering match the CLI.
func (h *handlers) listDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}

	opts := ls.Options{
		Tag:  getString(req, "tag", ""),
		Sort: getString(req, "sort", ""),
	}
	if opts.Sort != "" && !slices.Contains(service.SortOrders, opts.Sort) {
		return mcp.NewToolResultError(fmt.Sprintf("invalid sort %q: must be one of %v", opts.Sort, service.SortOrders)), nil
	}

	b := log.Event("mcp:anondocs_list", "list").Author("mcp").Detail("tag", opts.Tag)
	result, err := ls.Run(ctx, io.Discard, svc, opts)
	if err != nil {
		b.Write(err)
		return errorResult(err), nil
	}
	b.Detail("count", len(result.Documents)).Detail("degraded", result.Degraded).Write(nil)
	return jsonResult(result.ToJSON())
}

// readDocument handles anondocs_read tool calls.
func (h *handlers) readDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil //nolint:nilerr
	}

	b := log.Event("mcp:anondocs_read", "read").Author("mcp").Document(id)
	result, err := cat.Run(ctx, io.Discard, svc, id, cat.Options{Password: getString(req, "password", "")})
	b.Write(err)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(result.Document)
}

// writeDocument handles anondocs_write tool calls.
func (h *handlers) writeDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content is required"), nil //nolint:nilerr
	}
	id := getString(req, "id", "")

	opts := service.WriteOptions{
		Title:    getString(req, "title", ""),
		Tags:     getStrings(req, "tags"),
		Password: getString(req, "password", ""),
	}

	b := log.Event("mcp:anondocs_write", "write").Author("mcp").Document(id).Detail("encrypted", opts.Password != "")
	doc, err := svc.Write(ctx, id, content, opts)
	if err != nil {
		b.Write(err)
		return errorResult(err), nil
	}
	b.Document(doc.ID).Write(nil)

	return jsonResult(map[string]any{
		"id":        doc.ID,
		"title":     doc.Title,
		"encrypted": doc.Encrypted,
		"tags":      doc.Tags,
		"updatedAt": doc.UpdatedAt,
	})
}

// deleteDocument handles anondocs_delete tool calls.
func (h *handlers) deleteDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil //nolint:nilerr
	}

	b := log.Event("mcp:anondocs_delete", "delete").Author("mcp").Document(id)
	result, err := rm.Run(ctx, io.Discard, svc, []string{id})
	if err != nil {
		b.Write(err)
		return errorResult(err), nil
	}
	b.Detail("revoked", result.Revoked).Write(nil)
	return jsonResult(result)
}

// encryptDocument handles anondocs_encrypt tool calls.
func (h *handlers) encryptDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.crypt(ctx, req, "encrypt", service.Service.Encrypt)
}

// decryptDocument handles anondocs_decrypt tool calls.
func (h *handlers) decryptDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.crypt(ctx, req, "decrypt", service.Service.Decrypt)
}

func (h *handlers) crypt(ctx context.Context, req mcp.CallToolRequest, action string, fn func(service.Service, context.Context, string, string) error) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil //nolint:nilerr
	}
	pw, err := req.RequireString("password")
	if err != nil || pw == "" {
		return mcp.NewToolResultError("password is required"), nil //nolint:nilerr
	}

	err = fn(svc, ctx, id, pw)
	log.Event("mcp:anondocs_"+action, action).Author("mcp").Document(id).Write(err)
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%sed %s", action, id)), nil
}
