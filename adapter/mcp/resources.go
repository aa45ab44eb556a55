package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"
)

// RegisterResources registers MCP resources describing the ranking model.
func RegisterResources(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}

	srv.Resource("taskrank://strategies").
		Name("Strategies").
		Description("Scoring strategies and how each combines urgency, effort, importance and dependencies").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			data, err := json.MarshalIndent(listStrategies(), "", "  ")
			if err != nil {
				return nil, err
			}
			return &mcp.ResourceContent{
				URI:      uri,
				MimeType: "application/json",
				Text:     string(data),
			}, nil
		})

	return nil
}
