// Package mcp implements the Model Context Protocol server, exposing
// anondocs operations to LLM clients over stdio.
package mcp

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/jpl-au/anondocs/extension"
	"github.com/jpl-au/anondocs/internal/config"
	"github.com/jpl-au/anondocs/internal/document"
	"github.com/jpl-au/anondocs/internal/repo"
	"github.com/jpl-au/anondocs/internal/version"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// ErrNotInitialised is returned by tools when the store has not been
// initialised. The client should call anondocs_init first.
const ErrNotInitialised = "store not initialised - call anondocs_init first"

// Options configures Serve.
type Options struct {
	DB     string // database name, for init
	Dir    string // project directory, for init
	Config *config.Config
	Logger *zap.Logger

	// Open opens the store. Returning repo.ErrNotInitialised starts the
	// server in uninitialised mode.
	Open func() (*document.Service, error)
}

// Serve starts the MCP server over stdio and blocks until the client
// disconnects or ctx is cancelled.
//
// The server starts even if no store exists, so a client can call
// anondocs_init rather than failing with an opaque error.
func Serve(ctx context.Context, opts Options) error {
	h := newHandlers(opts)

	svc, err := opts.Open()
	switch {
	case errors.Is(err, repo.ErrNotInitialised):
		h.log.Info("store not initialised, waiting for anondocs_init")
	case err != nil:
		h.log.Error("failed to open store", zap.Error(err))
		return err
	default:
		h.attach(svc)
	}
	defer h.close()

	s := newServer(h)
	h.log.Info("MCP server ready", zap.String("version", version.Version), zap.String("transport", "stdio"))

	stdio := server.NewStdioServer(s)
	err = stdio.Listen(ctx, os.Stdin, os.Stdout)
	if errors.Is(err, context.Canceled) {
		h.log.Info("server stopped")
		return nil
	}
	return err
}

// newServer builds the MCP server with every tool and resource registered.
func newServer(h *handlers) *server.MCPServer {
	s := server.NewMCPServer(
		"anondocs",
		version.Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	registerResources(s, h)
	registerTools(s, h)
	registerExtensionTools(s, h)
	return s
}

// handlers provides MCP request handlers with access to the document
// store. svc is nil until the store exists.
type handlers struct {
	opts Options
	log  *zap.Logger

	mu  sync.RWMutex
	svc *document.Service
	ext extension.Context
}

func newHandlers(opts Options) *handlers {
	l := opts.Logger
	if l == nil {
		l = zap.NewNop()
	}
	if opts.Config == nil {
		opts.Config = &config.Config{}
	}
	return &handlers{opts: opts, log: l.Named("mcp")}
}

// attach makes svc the active store.
func (h *handlers) attach(svc *document.Service) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.svc = svc
	h.ext = extension.NewContext(svc, svc.DB(), h.opts.Config, h.log)
}

func (h *handlers) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.svc != nil {
		if err := h.svc.Close(); err != nil {
			h.log.Warn("close store", zap.Error(err))
		}
		h.svc = nil
		h.ext = nil
	}
}

// service returns the active store, or nil.
func (h *handlers) service() *document.Service {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.svc
}

// requireInit returns the active store, or an error result when there is
// none.
func (h *handlers) requireInit() (*document.Service, *mcp.CallToolResult) {
	svc := h.service()
	if svc == nil {
		return nil, mcp.NewToolResultError(ErrNotInitialised)
	}
	return svc, nil
}

// registerExtensionTools adds the tools contributed by extensions. The
// extension context is looked up per call so tools work after
// anondocs_init.
func registerExtensionTools(s *server.MCPServer, h *handlers) {
	for _, t := range extension.Tools() {
		handler := t.Handler
		name := t.Tool.Name
		s.AddTool(t.Tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			h.mu.RLock()
			extCtx := h.ext
			h.mu.RUnlock()
			h.log.Debug("tool call", zap.String("tool", name))
			return handler(ctx, extCtx, req)
		})
	}
}

// registerTools exposes the core store operations as MCP tools.
func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcp.NewTool("anondocs_init",
			mcp.WithDescription("Initialise a new anondocs store. Call this first if other tools return 'store not initialised'."),
		),
		h.initStore,
	)

	s.AddTool(
		mcp.NewTool("anondocs_guide",
			mcp.WithDescription("Usage guide. Topics: encryption, share, backup. Empty for the main page."),
			mcp.WithString("topic", mcp.Description("Guide topic")),
		),
		h.getGuide,
	)

	s.AddTool(
		mcp.NewTool("anondocs_list",
			mcp.WithDescription("List documents. Encrypted documents show metadata only."),
			mcp.WithString("tag", mcp.Description("Only documents with this exact tag")),
			mcp.WithString("sort", mcp.Description("Sort order: modified (default), created or title")),
		),
		h.listDocuments,
	)

	s.AddTool(
		mcp.NewTool("anondocs_read",
			mcp.WithDescription("Read a document's content"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Document id")),
			mcp.WithString("password", mcp.Description("Password, if the document is encrypted")),
		),
		h.readDocument,
	)

	s.AddTool(
		mcp.NewTool("anondocs_write",
			mcp.WithDescription("Create a document, or update one when id is given"),
			mcp.WithString("id", mcp.Description("Document id to update; omit to create")),
			mcp.WithString("content", mcp.Required(), mcp.Description("Document content (markdown)")),
			mcp.WithString("title", mcp.Description("Document title")),
			mcp.WithArray("tags", mcp.Description("Replace the document's tags"), mcp.WithStringItems()),
			mcp.WithString("password", mcp.Description("Encrypt with this password. Required to update an encrypted document.")),
		),
		h.writeDocument,
	)

	s.AddTool(
		mcp.NewTool("anondocs_delete",
			mcp.WithDescription("Permanently delete a document. Its share tokens are revoked."),
			mcp.WithString("id", mcp.Required(), mcp.Description("Document id")),
		),
		h.deleteDocument,
	)

	s.AddTool(
		mcp.NewTool("anondocs_encrypt",
			mcp.WithDescription("Encrypt a plaintext document with a password"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Document id")),
			mcp.WithString("password", mcp.Required(), mcp.Description("New password")),
		),
		h.encryptDocument,
	)

	s.AddTool(
		mcp.NewTool("anondocs_decrypt",
			mcp.WithDescription("Remove encryption from a document"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Document id")),
			mcp.WithString("password", mcp.Required(), mcp.Description("Current password")),
		),
		h.decryptDocument,
	)

	s.AddTool(
		mcp.NewTool("anondocs_search",
			mcp.WithDescription("Case-insensitive search over titles and plaintext content. Encrypted documents match by title only."),
			mcp.WithString("query", mcp.Required(), mcp.Description("Search text")),
		),
		h.searchDocuments,
	)

	s.AddTool(
		mcp.NewTool("anondocs_diff",
			mcp.WithDescription("Show differences between two documents"),
			mcp.WithString("id", mcp.Required(), mcp.Description("First document id")),
			mcp.WithString("other", mcp.Required(), mcp.Description("Second document id")),
			mcp.WithString("password", mcp.Description("Password for encrypted documents")),
		),
		h.diffDocuments,
	)

	s.AddTool(
		mcp.NewTool("anondocs_tag_add",
			mcp.WithDescription("Add tags to a document"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Document id")),
			mcp.WithArray("tags", mcp.Required(), mcp.Description("Tags to add"), mcp.WithStringItems()),
		),
		h.tagAdd,
	)

	s.AddTool(
		mcp.NewTool("anondocs_tag_remove",
			mcp.WithDescription("Remove tags from a document"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Document id")),
			mcp.WithArray("tags", mcp.Required(), mcp.Description("Tags to remove"), mcp.WithStringItems()),
		),
		h.tagRemove,
	)

	s.AddTool(
		mcp.NewTool("anondocs_tags",
			mcp.WithDescription("List all tags with their document counts"),
		),
		h.listTags,
	)

	s.AddTool(
		mcp.NewTool("anondocs_export",
			mcp.WithDescription("Write a backup of all documents, tags and settings"),
			mcp.WithString("dest", mcp.Required(), mcp.Description("Backup file or directory")),
			mcp.WithBoolean("force", mcp.Description("Overwrite an existing file")),
		),
		h.exportStore,
	)

	s.AddTool(
		mcp.NewTool("anondocs_import",
			mcp.WithDescription("Replace the store's contents with a backup"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Backup file")),
			mcp.WithBoolean("no_verify", mcp.Description("Skip the checksum check")),
			mcp.WithBoolean("dry_run", mcp.Description("Report what would be imported")),
		),
		h.importStore,
	)

	s.AddTool(
		mcp.NewTool("anondocs_config_get",
			mcp.WithDescription("Get a configuration value"),
			mcp.WithString("key", mcp.Description("Config key, or empty for all")),
		),
		h.configGet,
	)

	s.AddTool(
		mcp.NewTool("anondocs_config_set",
			mcp.WithDescription("Set a configuration value"),
			mcp.WithString("key", mcp.Required(), mcp.Description("Config key")),
			mcp.WithString("value", mcp.Required(), mcp.Description("Value to set")),
		),
		h.configSet,
	)

	s.AddTool(
		mcp.NewTool("anondocs_settings",
			mcp.WithDescription("Get application settings, or change one when field and value are given"),
			mcp.WithString("field", mcp.Description("theme, autoLock, autoLockTime or biometricEnabled")),
			mcp.WithString("value", mcp.Description("New value")),
		),
		h.settings,
	)
}
