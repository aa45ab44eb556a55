package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/felixgeelhaar/taskrank/adapter/api"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP ranking API",
	Long: `Start the HTTP API.

Routes:
  POST /api/v1/tasks/analyze   rank a task set
  GET  /api/v1/tasks/suggest   guidance on picking the next tasks
  POST /api/v1/tasks/suggest   the leading tasks of a ranking
  GET  /health                 component health`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.AnalyzeTasksHandler == nil {
			return errors.New("application not initialized")
		}

		server := newAPIServer(app)

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-cmd.Context().Done():
		}

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	},
}

func newAPIServer(app *App) *api.Server {
	log := app.Logger
	if log == nil {
		log = Logger()
	}

	cfg := api.DefaultServerConfig()
	if app.Config != nil {
		if app.Config.HTTPAddr != "" {
			cfg.Addr = app.Config.HTTPAddr
		}
		if app.Config.HTTPReadTimeout > 0 {
			cfg.ReadTimeout = app.Config.HTTPReadTimeout
		}
		if app.Config.HTTPWriteTimeout > 0 {
			cfg.WriteTimeout = app.Config.HTTPWriteTimeout
		}
		if app.Config.HTTPIdleTimeout > 0 {
			cfg.IdleTimeout = app.Config.HTTPIdleTimeout
		}
	}
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}

	handler := api.NewTasksHandler(api.TasksHandlerConfig{
		Analyze: app.AnalyzeTasksHandler,
		Suggest: app.SuggestTasksHandler,
		Logger:  log,
	})
	return api.NewServer(cfg, handler, app.Health, log)
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides HTTP_ADDR)")
	rootCmd.AddCommand(serveCmd)
}
