// mcp.go exposes the share registry as MCP tools.

package share

import (
	"context"
	"errors"
	"fmt"

	"github.com/jpl-au/anondocs/extension"
	"github.com/jpl-au/anondocs/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// errNoStore is returned by tools called before the store exists.
var errNoStore = errors.New("store not initialised - call anondocs_init first")

// MCPTools returns the share tools.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{
		{
			Tool: mcp.NewTool("anondocs_share_issue",
				mcp.WithDescription("Issue a 30-day share token for a document. Returns the token and link."),
				mcp.WithString("id", mcp.Required(), mcp.Description("Document id")),
			),
			Handler: issueTool,
		},
		{
			Tool: mcp.NewTool("anondocs_share_open",
				mcp.WithDescription("Open a shared document from a share link or bare token"),
				mcp.WithString("link", mcp.Required(), mcp.Description("Share link, fragment or token")),
				mcp.WithString("password", mcp.Description("Password, if the document is encrypted")),
			),
			Handler: openTool,
		},
		{
			Tool: mcp.NewTool("anondocs_share_revoke",
				mcp.WithDescription("Revoke a share token"),
				mcp.WithString("token", mcp.Required(), mcp.Description("Share token")),
			),
			Handler: revokeTool,
		},
		{
			Tool: mcp.NewTool("anondocs_share_list",
				mcp.WithDescription("List share tokens, newest first, with expiry"),
			),
			Handler: listTool,
		},
	}
}

func issueTool(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if extCtx == nil {
		return mcp.NewToolResultError(errNoStore.Error()), nil
	}
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	svc := extCtx.Service()
	b := log.Event("mcp:anondocs_share_issue", "issue").Document(id)

	rec, err := svc.Share(ctx, id)
	b.Share(rec.Token).Write(err)
	if err != nil {
		return extension.ErrorResult(fmt.Errorf("share %q: %w", id, err)), nil
	}
	return extension.JSONResult(issueResult{
		Token:            rec.Token,
		Link:             svc.TokenLink(rec.Token),
		DocumentID:       rec.DocumentID,
		ExpiresAt:        rec.ExpiresAt,
		RequiresPassword: rec.RequiresPassword,
	})
}

func openTool(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if extCtx == nil {
		return mcp.NewToolResultError(errNoStore.Error()), nil
	}
	link, err := req.RequireString("link")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	pw, _ := req.RequireString("password")
	b := log.Event("mcp:anondocs_share_open", "resolve")

	doc, err := extCtx.Service().OpenLink(ctx, link, pw)
	if err != nil {
		b.Write(err)
		return extension.ErrorResult(fmt.Errorf("open: %w", err)), nil
	}
	b.Resolved(doc.ID).Write(nil)
	return mcp.NewToolResultText(doc.Content), nil
}

func revokeTool(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if extCtx == nil {
		return mcp.NewToolResultError(errNoStore.Error()), nil
	}
	tok, err := req.RequireString("token")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	err = extCtx.Service().Revoke(ctx, tok)
	log.Event("mcp:anondocs_share_revoke", "revoke").Share(tok).Write(err)
	if err != nil {
		return extension.ErrorResult(err), nil
	}
	return mcp.NewToolResultText("revoked"), nil
}

func listTool(ctx context.Context, extCtx extension.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if extCtx == nil {
		return mcp.NewToolResultError(errNoStore.Error()), nil
	}
	recs, err := extCtx.Service().Shares(ctx)
	log.Event("mcp:anondocs_share_list", "list").Detail("count", len(recs)).Write(err)
	if err != nil {
		return extension.ErrorResult(err), nil
	}
	return extension.JSONResult(map[string]any{"shares": recs})
}
