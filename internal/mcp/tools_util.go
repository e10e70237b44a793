// tools_util.go extracts typed parameters from MCP's generic argument map.
// Optional parameters fall back to a default rather than failing the call.

package mcp

import (
	"github.com/jpl-au/anondocs/extension"
	"github.com/mark3labs/mcp-go/mcp"
)

// getString returns a string parameter, or def when absent.
func getString(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

// getBool returns a boolean parameter, or def when absent or not a JSON
// boolean.
func getBool(req mcp.CallToolRequest, name string, def bool) bool {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return def
	}
	if v, ok := args[name].(bool); ok {
		return v
	}
	return def
}

// getStrings returns a string array parameter. Non-string elements are
// skipped. A bare string is treated as a one-element array.
func getStrings(req mcp.CallToolRequest, name string) []string {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return nil
	}
	switch v := args[name].(type) {
	case string:
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// jsonResult returns v as pretty-printed JSON text.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	return extension.JSONResult(v)
}

// errorResult converts err to a tool error using the shared wording.
func errorResult(err error) *mcp.CallToolResult {
	return extension.ErrorResult(err)
}
