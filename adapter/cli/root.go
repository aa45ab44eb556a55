package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/felixgeelhaar/taskrank/pkg/observability"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	logger  *slog.Logger

	appFactory AppFactory
	appCleanup func()
)

// AppFactory builds the App once flags are parsed. configFile is the --config value.
type AppFactory func(ctx context.Context, configFile string, logger *slog.Logger) (*App, func(), error)

type commandContext struct {
	correlationID uuid.UUID
	startedAt     time.Time
}

type commandContextKey struct{}

// NoAppAnnotation marks commands that run without the App.
const NoAppAnnotation = "taskrank/no-app"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "taskrank",
	Short: "taskrank - rank tasks by what to work on next",
	Long: `taskrank scores a set of tasks by urgency, effort, importance and
how many other tasks each one blocks, then ranks them.

Circular dependencies are detected and penalized so they surface in the explanation.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if logger == nil {
			logger = slog.Default()
		}
		if verbose {
			logger = observability.NewLogger(observability.LogConfig{
				Level:  "debug",
				Format: observability.LogFormatText,
				Output: cmd.ErrOrStderr(),
			})
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		info := commandContext{
			correlationID: uuid.New(),
			startedAt:     time.Now(),
		}
		ctx = observability.WithCorrelationID(ctx, info.correlationID.String())
		cmd.SetContext(context.WithValue(ctx, commandContextKey{}, info))
		logger.Debug("command start",
			"command", cmd.CommandPath(),
			"correlation_id", info.correlationID.String(),
		)

		if app == nil && appFactory != nil && cmd.Annotations[NoAppAnnotation] == "" {
			built, cleanup, err := appFactory(ctx, cfgFile, logger)
			if err != nil {
				return err
			}
			app = built
			appCleanup = cleanup
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger == nil {
			logger = slog.Default()
		}
		if appCleanup != nil {
			appCleanup()
			appCleanup = nil
		}
		info, ok := cmd.Context().Value(commandContextKey{}).(commandContext)
		if !ok {
			return
		}
		logger.Debug("command end",
			"command", cmd.CommandPath(),
			"correlation_id", info.correlationID.String(),
			"duration_ms", time.Since(info.startedAt).Milliseconds(),
		)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "env file to load instead of .env")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// AddCommand adds a command to the root command.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// Root returns the root command.
func Root() *cobra.Command {
	return rootCmd
}

// SetAppFactory registers how the App is built for commands that need it.
func SetAppFactory(f AppFactory) {
	appFactory = f
}

// SetLogger sets the CLI logger.
func SetLogger(l *slog.Logger) {
	logger = l
}

// Logger returns the CLI logger.
func Logger() *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
