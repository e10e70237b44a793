// resources.go serves documents as MCP resources, so a client can load
// one into context without a tool call. Only plaintext documents are
// served: there is no way to pass a password with a resource read.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jpl-au/anondocs/internal/document"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const documentURIPrefix = "anondocs://documents/"

var (
	// ErrInvalidURI indicates a malformed resource URI.
	ErrInvalidURI = errors.New("invalid URI")
	// ErrEmptyID indicates a resource URI without a document id.
	ErrEmptyID = errors.New("empty document id")
)

func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			documentURIPrefix+"{id}",
			"Document",
			mcp.WithTemplateDescription("Read a plaintext document by id"),
			mcp.WithTemplateMIMEType("text/markdown"),
		),
		h.readResource,
	)
}

// readResource handles anondocs://documents/{id} resource requests.
func (h *handlers) readResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	svc := h.service()
	if svc == nil {
		return nil, errors.New(ErrNotInitialised)
	}
	id, err := parseDocumentURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	doc, err := svc.Read(ctx, id, "")
	if errors.Is(err, document.ErrPasswordRequired) {
		return nil, fmt.Errorf("%s is encrypted: use anondocs_read with a password", id)
	}
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     doc.Content,
		},
	}, nil
}

// parseDocumentURI extracts the id from anondocs://documents/{id}.
func parseDocumentURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, documentURIPrefix) {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	id := strings.TrimPrefix(uri, documentURIPrefix)
	if id == "" {
		return "", ErrEmptyID
	}
	if strings.Contains(id, "/") {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	return id, nil
}
