package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/taskrank/adapter/cli"
	"github.com/felixgeelhaar/taskrank/adapter/cli/mcp"
	"github.com/felixgeelhaar/taskrank/adapter/cli/rank"
	"github.com/felixgeelhaar/taskrank/internal/app"
	mcpinternal "github.com/felixgeelhaar/taskrank/internal/mcp"
	"github.com/felixgeelhaar/taskrank/pkg/config"
	"github.com/felixgeelhaar/taskrank/pkg/observability"
)

func main() {
	logger := observability.LoggerFromEnv()

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	cli.SetLogger(logger)
	cli.SetAppFactory(buildApp)

	for _, cmd := range rank.Commands() {
		cli.AddCommand(cmd)
	}
	cli.AddCommand(mcp.Cmd)

	if err := cli.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildApp(ctx context.Context, configFile string, logger *slog.Logger) (*cli.App, func(), error) {
	var files []string
	if configFile != "" {
		files = append(files, configFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	if os.Getenv("TASKRANK_LOG_LEVEL") == "" && cfg.LogLevel != "" {
		logger = observability.NewLogger(observability.LogConfig{
			Level:       cfg.LogLevel,
			Format:      observability.LogFormat(cfg.LogFormat),
			ServiceName: "taskrank",
		})
		cli.SetLogger(logger)
	}

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize container: %w", err)
	}
	return mcpinternal.NewCLIApp(container), container.Close, nil
}
