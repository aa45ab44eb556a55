package cli

import (
	"log/slog"

	"github.com/felixgeelhaar/taskrank/internal/ranking/application/commands"
	"github.com/felixgeelhaar/taskrank/internal/ranking/application/queries"
	"github.com/felixgeelhaar/taskrank/pkg/config"
	"github.com/felixgeelhaar/taskrank/pkg/observability"
)

// App holds the CLI application dependencies.
type App struct {
	AnalyzeTasksHandler *commands.AnalyzeTasksHandler
	SuggestTasksHandler *queries.SuggestTasksHandler

	Config *config.Config
	Health *observability.HealthRegistry
	Logger *slog.Logger
}

// NewApp creates a new CLI application.
func NewApp(
	analyze *commands.AnalyzeTasksHandler,
	suggest *queries.SuggestTasksHandler,
	cfg *config.Config,
	health *observability.HealthRegistry,
) *App {
	return &App{
		AnalyzeTasksHandler: analyze,
		SuggestTasksHandler: suggest,
		Config:              cfg,
		Health:              health,
	}
}

// WithLogger sets the logger used by long-running commands.
func (a *App) WithLogger(l *slog.Logger) *App {
	a.Logger = l
	return a
}

var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
