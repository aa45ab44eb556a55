package mcp

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"
)

// RegisterPrompts registers MCP prompts for common ranking workflows.
func RegisterPrompts(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}

	srv.Prompt("prioritize_tasks").
		Description("Collect a task list, rank it and explain what to work on next.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return &mcp.PromptResult{
				Description: "Task prioritization",
				Messages: []mcp.PromptMessage{
					{
						Role: string(mcp.RoleUser),
						Content: mcp.TextContent{
							Type: "text",
							Text: `Help me decide what to work on next.

1. Ask me for my tasks if I have not listed them. For each one I need a title,
   a due date (YYYY-MM-DD), an estimate in hours and an importance from 1 to 10.
   Note which tasks depend on others.
2. Read taskrank://strategies and pick a strategy that fits what I tell you
   (default smart_balance).
3. Call tasks.analyze with the tasks and strategy.
4. Present the top three tasks with their explanation. Point out any task that is
   part of a circular dependency and suggest how to break the cycle.`,
						},
					},
				},
			}, nil
		})

	return nil
}
