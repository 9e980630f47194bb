package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/localstore/localstore/internal/metrics"
)

// WriteFileInput defines the input schema for the write_file tool.
// Both fields are required; the SDK validates arguments against the
// inferred schema before the handler runs, so a schema violation never
// reaches the filesystem.
type WriteFileInput struct {
	Path    string `json:"path" jsonschema_description:"The file path to write, relative to the server's base directory"`
	Content string `json:"content" jsonschema_description:"The content to write to the file"`
}

// registerTools registers all tools in a fixed order.
func (s *Server) registerTools() error {
	if err := s.registerWriteFile(); err != nil {
		return fmt.Errorf("register write_file: %w", err)
	}
	return nil
}

// registerWriteFile registers the write_file tool with its inferred input
// schema and inline handler.
func (s *Server) registerWriteFile() error {
	inputSchema, err := jsonschema.For[WriteFileInput](nil)
	if err != nil {
		return fmt.Errorf("schema for write_file: %w", err)
	}

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "write_file",
		Description: "Write content to a file. Path is relative to server's base directory.",
		InputSchema: inputSchema,
	}, s.WriteFile)

	return nil
}

// WriteFile handles the write_file MCP tool call.
//
// Domain failures come back as an IsError result so the caller always
// receives a well-formed payload; only unexpected system errors surface
// as protocol faults. A success payload is the JSON serialization of
// {path, bytes_written, modified_at}, with modified_at taken from the
// post-write stat.
func (s *Server) WriteFile(ctx context.Context, req *mcp.CallToolRequest, input WriteFileInput) (*mcp.CallToolResult, any, error) {
	logger := s.logger.With("tool", "write_file", "request_id", uuid.NewString())
	logger.Info("tool call", "path", input.Path, "bytes", len(input.Content))

	result, err := s.store.Write(input.Path, input.Content)
	if err != nil {
		s.metrics.RecordToolCall("write_file", metrics.StatusError)
		logger.Error("write failed", "error", err)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
			IsError: true,
		}, nil, nil
	}

	payload, err := json.Marshal(result)
	if err != nil {
		s.metrics.RecordToolCall("write_file", metrics.StatusError)
		return nil, nil, fmt.Errorf("marshal write result: %w", err)
	}

	s.metrics.RecordToolCall("write_file", metrics.StatusOK)
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(payload)}},
	}, nil, nil
}
