package mcp

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/taskrank/adapter/cli"
	"github.com/felixgeelhaar/taskrank/internal/ranking/application"
	"github.com/felixgeelhaar/taskrank/internal/ranking/application/commands"
	"github.com/felixgeelhaar/taskrank/internal/ranking/application/queries"
	"github.com/felixgeelhaar/taskrank/internal/ranking/domain"
)

type analyzeInput struct {
	Tasks    []application.TaskInput `json:"tasks" jsonschema:"required"`
	Strategy string                  `json:"strategy,omitempty"`
}

type suggestInput struct {
	Tasks    []application.TaskInput `json:"tasks,omitempty"`
	Strategy string                  `json:"strategy,omitempty"`
	Limit    int                     `json:"limit,omitempty"`
}

type strategyDTO struct {
	Name    string `json:"name"`
	Formula string `json:"formula"`
	Default bool   `json:"default,omitempty"`
}

func registerTaskTools(srv *mcp.Server, deps ToolDependencies) error {
	app := deps.App

	srv.Tool("tasks.analyze").
		Description("Rank tasks by priority score. Each task needs title, due_date (YYYY-MM-DD), estimated_hours and importance (1-10); id and dependencies are optional. Strategy is one of smart_balance, fastest, high_impact, deadline.").
		Handler(analyzeHandler(app))

	srv.Tool("tasks.suggest").
		Description("Return the tasks to work on next. Without tasks it explains how to get suggestions.").
		Handler(suggestHandler(app))

	srv.Tool("tasks.strategies").
		Description("List scoring strategies and their formulas").
		Handler(func(ctx context.Context, input struct{}) ([]strategyDTO, error) {
			return listStrategies(), nil
		})

	return nil
}

func analyzeHandler(app *cli.App) func(context.Context, analyzeInput) (*commands.AnalyzeTasksResult, error) {
	return func(ctx context.Context, input analyzeInput) (*commands.AnalyzeTasksResult, error) {
		if app == nil || app.AnalyzeTasksHandler == nil {
			return nil, errors.New("ranking not initialized")
		}
		return app.AnalyzeTasksHandler.Handle(ctx, commands.AnalyzeTasksCommand{
			Tasks:    input.Tasks,
			Strategy: input.Strategy,
		})
	}
}

func suggestHandler(app *cli.App) func(context.Context, suggestInput) (*queries.SuggestTasksResult, error) {
	return func(ctx context.Context, input suggestInput) (*queries.SuggestTasksResult, error) {
		if app == nil || app.SuggestTasksHandler == nil {
			return nil, errors.New("ranking not initialized")
		}
		return app.SuggestTasksHandler.Handle(ctx, queries.SuggestTasksQuery{
			Tasks:    input.Tasks,
			Strategy: input.Strategy,
			Limit:    input.Limit,
		})
	}
}

func listStrategies() []strategyDTO {
	all := domain.Strategies()
	out := make([]strategyDTO, 0, len(all))
	for _, s := range all {
		out = append(out, strategyDTO{
			Name:    s.String(),
			Formula: s.Formula(),
			Default: s == domain.DefaultStrategy,
		})
	}
	return out
}
