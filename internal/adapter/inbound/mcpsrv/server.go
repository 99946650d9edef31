// Package mcpsrv is the inbound adapter: it exposes the tool registry on
// a mark3labs/mcp-go server and forwards calls to the dispatcher.
package mcpsrv

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	mcpGoServer "github.com/mark3labs/mcp-go/server"

	"github.com/tracekit/jirabridge/internal/domain"
)

// Dispatcher is the slice of the usecase layer this adapter needs.
type Dispatcher interface {
	Dispatch(ctx context.Context, name string, args map[string]any) (*domain.ToolResult, *domain.ToolError)
}

// errorPayload is the structured error object surfaced to the host.
type errorPayload struct {
	Code          domain.ErrorCode `json:"code"`
	Message       string           `json:"message"`
	OriginalError string           `json:"originalError,omitempty"`
}

// resultEnvelope wraps a payload when warnings are present.
type resultEnvelope struct {
	Result   any              `json:"result"`
	Warnings []domain.Warning `json:"warnings"`
}

// Register adds every tool spec to the MCP server. Each handler delegates
// to the dispatcher; tool failures come back as error results, never as
// protocol errors, so the host always receives the structured taxonomy.
func Register(srv *mcpGoServer.MCPServer, specs []domain.ToolSpec, dispatcher Dispatcher, logger *slog.Logger) {
	log := logger.With("component", "mcpsrv")
	for _, spec := range specs {
		spec := spec
		tool := mcp.NewToolWithRawSchema(spec.Name, spec.Description, spec.InputSchema)
		srv.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			result, terr := dispatcher.Dispatch(ctx, spec.Name, req.GetArguments())
			if terr != nil {
				return errorResult(terr)
			}
			return successResult(result)
		})
		log.Debug("Registered tool.", slog.String("tool", spec.Name))
	}
	log.Info("Tool registration complete.", slog.Int("count", len(specs)))
}

func successResult(result *domain.ToolResult) (*mcp.CallToolResult, error) {
	var payload any = result.Payload
	if len(result.Warnings) > 0 {
		payload = resultEnvelope{Result: result.Payload, Warnings: result.Warnings}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tool result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

func errorResult(terr *domain.ToolError) (*mcp.CallToolResult, error) {
	payload := errorPayload{Code: terr.Code, Message: terr.Message}
	if terr.Err != nil {
		payload.OriginalError = terr.Err.Error()
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tool error: %w", err)
	}
	return mcp.NewToolResultError(string(data)), nil
}
