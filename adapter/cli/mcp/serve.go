package mcp

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/taskrank/adapter/cli"
	mcpinternal "github.com/felixgeelhaar/taskrank/internal/mcp"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Config == nil {
			return errors.New("application not initialized")
		}

		cfg := *app.Config
		if serveAddr != "" {
			cfg.MCPAddr = serveAddr
		}

		logger := app.Logger
		if logger == nil {
			logger = cli.Logger()
		}

		err := mcpinternal.Serve(cmd.Context(), &cfg, app, logger)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides MCP_ADDR)")
}
