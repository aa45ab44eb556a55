package mcp

import (
	"github.com/felixgeelhaar/taskrank/adapter/cli"
	"github.com/felixgeelhaar/taskrank/internal/app"
)

// NewCLIApp creates a CLI application instance backed by the provided container.
func NewCLIApp(container *app.Container) *cli.App {
	return cli.NewApp(
		container.AnalyzeTasksHandler,
		container.SuggestTasksHandler,
		container.Config,
		container.Health,
	).WithLogger(container.Logger)
}
