package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/localstore/localstore/internal/metrics"
	"github.com/localstore/localstore/internal/storage"
)

// registerResources registers the static root-collection resource and the
// URI template. Both route reads to the same handler; the SDK matches the
// requested URI against them before dispatching.
func (s *Server) registerResources() {
	for _, d := range s.store.Resources() {
		s.mcpServer.AddResource(&mcp.Resource{
			URI:         d.URI,
			Name:        d.Name,
			Description: d.Description,
			MIMEType:    d.MIMEType,
		}, s.handleReadResource)
	}

	for _, d := range s.store.Templates() {
		s.mcpServer.AddResourceTemplate(&mcp.ResourceTemplate{
			URITemplate: d.URI,
			Name:        d.Name,
			Description: d.Description,
			MIMEType:    d.MIMEType,
		}, s.handleReadResource)
	}
}

// handleReadResource serves resources/read. Errors propagate to the SDK's
// fault handling rather than a result envelope; only tool calls use the
// IsError envelope.
func (s *Server) handleReadResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := req.Params.URI

	content, err := s.store.Read(uri)
	if err != nil {
		s.metrics.RecordResourceRead(metrics.StatusError)
		s.logger.Error("resource read failed", "uri", uri, "error", err)
		return nil, err
	}

	s.metrics.RecordResourceRead(metrics.StatusOK)
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: storage.MIMEType,
				Text:     content,
			},
		},
	}, nil
}
