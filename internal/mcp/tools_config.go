// tools_config.go implements MCP tools for config and application
// settings. Config changes apply to the running server because the store
// shares the server's *config.Config.

package mcp

import (
	"context"
	"fmt"

	"github.com/jpl-au/anondocs/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// configGet handles anondocs_config_get tool calls.
func (h *handlers) configGet(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.opts.Config
	key := getString(req, "key", "")
	if key == "" {
		log.Event("mcp:anondocs_config_get", "list").Author("mcp").Write(nil)
		return jsonResult(cfg.All())
	}

	v, err := cfg.Get(key)
	log.Event("mcp:anondocs_config_get", "get").Author("mcp").Detail("key", key).Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]string{key: v})
}

// configSet handles anondocs_config_set tool calls. The value is not
// logged.
func (h *handlers) configSet(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError("key is required"), nil //nolint:nilerr
	}
	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value is required"), nil //nolint:nilerr
	}

	b := log.Event("mcp:anondocs_config_set", "set").Author("mcp").Detail("key", key)
	cfg := h.opts.Config
	if err := cfg.Set(key, value); err != nil {
		b.Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	err = cfg.Save()
	b.Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s = %s", key, value)), nil
}

// settings handles anondocs_settings tool calls: all settings with no
// arguments, or a change when field and value are given.
func (h *handlers) settings(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, res := h.requireInit()
	if res != nil {
		return res, nil
	}

	app, degraded, err := svc.Settings(ctx)
	if err != nil {
		return errorResult(err), nil
	}

	field := getString(req, "field", "")
	args, _ := req.Params.Arguments.(map[string]any)
	value, hasValue := args["value"].(string)
	if field == "" {
		log.Event("mcp:anondocs_settings", "get").Author("mcp").Detail("degraded", degraded).Write(nil)
		return jsonResult(map[string]any{"settings": app, "degraded": degraded})
	}
	if !hasValue {
		v, err := app.Get(field)
		log.Event("mcp:anondocs_settings", "get").Author("mcp").Detail("field", field).Write(err)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(map[string]string{field: v})
	}

	b := log.Event("mcp:anondocs_settings", "set").Author("mcp").Detail("field", field)
	if err := app.Set(field, value); err != nil {
		b.Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	err = svc.SaveSettings(ctx, app)
	b.Write(err)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(map[string]any{"settings": app})
}
