package mcpadapter

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Hemanth-2OOT/Care-cloud/internal/api"
	"github.com/Hemanth-2OOT/Care-cloud/internal/engine"
	"github.com/Hemanth-2OOT/Care-cloud/internal/models"
)

// AnalyzeInput is the MCP tool input schema (matches the HTTP API field names).
type AnalyzeInput struct {
	Content       string `json:"content" jsonschema:"message text to analyze"`
	RequesterName string `json:"requester_name,omitempty" jsonschema:"display name of the child or session owner"`
}

// NewAnalyzeHandler returns a tool handler backed by the engine.
// Pass the returned function to mcp.AddTool.
func NewAnalyzeHandler(eng *engine.Engine) func(context.Context, *mcp.CallToolRequest, AnalyzeInput) (*mcp.CallToolResult, api.AnalysisResponse, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, api.AnalysisResponse, error) {
		return AnalyzeContent(ctx, eng, req, input)
	}
}

// AnalyzeContent runs the analysis pipeline and returns the verdict in the
// HTTP API response shape.
func AnalyzeContent(
	ctx context.Context,
	eng *engine.Engine,
	req *mcp.CallToolRequest,
	input AnalyzeInput,
) (*mcp.CallToolResult, api.AnalysisResponse, error) {
	verdict, err := eng.Analyze(ctx, models.AnalysisRequest{
		Content:       input.Content,
		RequesterName: input.RequesterName,
	})
	if err != nil {
		return nil, api.AnalysisResponse{}, err
	}

	return nil, api.NewAnalysisResponse(verdict), nil
}
