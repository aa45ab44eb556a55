package rank

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/taskrank/adapter/cli"
	"github.com/felixgeelhaar/taskrank/internal/ranking/application/queries"
	"github.com/spf13/cobra"
)

var (
	suggestFile     string
	suggestStrategy string
	suggestLimit    int
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Show the tasks to work on next",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.SuggestTasksHandler == nil {
			return fmt.Errorf("application not initialized")
		}

		doc, err := readTasks(cmd, suggestFile)
		if err != nil {
			return err
		}
		strategy := doc.Strategy
		if suggestStrategy != "" {
			strategy = suggestStrategy
		}

		result, err := app.SuggestTasksHandler.Handle(cmd.Context(), queries.SuggestTasksQuery{
			Tasks:    doc.Tasks,
			Strategy: strategy,
			Limit:    suggestLimit,
		})
		if err != nil {
			if printValidationErrors(cmd.ErrOrStderr(), err) {
				return fmt.Errorf("validation failed")
			}
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, result.Detail)
		for i, title := range topTitles(result.Suggestions) {
			fmt.Fprintf(out, "%d. %s\n", i+1, title)
		}
		if len(result.Suggestions) > 0 {
			fmt.Fprintln(out, strings.Repeat("-", 40))
			fmt.Fprintf(out, "strategy: %s\n", result.Strategy)
		}
		return nil
	},
}

func init() {
	suggestCmd.Flags().StringVarP(&suggestFile, "file", "f", "", "JSON task file (default: stdin)")
	suggestCmd.Flags().StringVarP(&suggestStrategy, "strategy", "s", "", "scoring strategy")
	suggestCmd.Flags().IntVarP(&suggestLimit, "limit", "n", 0, "number of tasks to suggest (default SUGGEST_LIMIT)")
}
