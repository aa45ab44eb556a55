package cli

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/taskrank/internal/ranking/domain"
	"github.com/spf13/cobra"
)

// Build metadata, injected with -ldflags "-X github.com/felixgeelhaar/taskrank/adapter/cli.Version=...".
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// versionCmd prints build metadata and the ranking strategies this binary understands,
// so scripts can check strategy support before submitting tasks.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the taskrank version and supported strategies",
	Annotations: map[string]string{
		NoAppAnnotation: "true",
	},
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "taskrank %s\n", Version)
		fmt.Fprintf(out, "  commit: %s\n", Commit)
		fmt.Fprintf(out, "  built:  %s\n", BuildDate)
		fmt.Fprintf(out, "  strategies: %s (default %s)\n", strategyNames(), domain.DefaultStrategy)
	},
}

func strategyNames() string {
	strategies := domain.Strategies()
	names := make([]string, len(strategies))
	for i, s := range strategies {
		names[i] = s.String()
	}
	return strings.Join(names, ", ")
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
