package rank

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/felixgeelhaar/taskrank/adapter/cli"
	"github.com/felixgeelhaar/taskrank/internal/ranking/application"
	"github.com/felixgeelhaar/taskrank/internal/ranking/application/commands"
	"github.com/spf13/cobra"
)

var (
	analyzeFile     string
	analyzeStrategy string
	analyzeTop      int
	analyzeJSON     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Rank a task set",
	Long: `Rank tasks read from a JSON file or stdin.

Input is either an array of tasks or {"tasks": [...], "strategy": "..."}.
Each task has title, due_date (YYYY-MM-DD), estimated_hours, importance (1-10)
and optionally id and dependencies (ids of tasks it depends on).

Strategies: smart_balance (default), fastest, high_impact, deadline.

Examples:
  taskrank analyze -f tasks.json
  taskrank analyze -f tasks.json --strategy deadline --top 5
  cat tasks.json | taskrank analyze --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.AnalyzeTasksHandler == nil {
			return fmt.Errorf("application not initialized")
		}

		doc, err := readTasks(cmd, analyzeFile)
		if err != nil {
			return err
		}
		strategy := doc.Strategy
		if analyzeStrategy != "" {
			strategy = analyzeStrategy
		}

		result, err := app.AnalyzeTasksHandler.Handle(cmd.Context(), commands.AnalyzeTasksCommand{
			Tasks:    doc.Tasks,
			Strategy: strategy,
		})
		if err != nil {
			if printValidationErrors(cmd.ErrOrStderr(), err) {
				return fmt.Errorf("%d tasks submitted, validation failed", len(doc.Tasks))
			}
			return fmt.Errorf("failed to analyze tasks: %w", err)
		}

		out := cmd.OutOrStdout()
		if analyzeJSON {
			return writeJSON(out, result)
		}
		printRanking(out, result, analyzeTop)
		return nil
	},
}

func printRanking(w io.Writer, result *commands.AnalyzeTasksResult, top int) {
	if len(result.Tasks) == 0 {
		fmt.Fprintln(w, "No tasks to rank.")
		return
	}

	fmt.Fprintf(w, "Ranked %d tasks (strategy: %s)\n", len(result.Tasks), result.Strategy)
	fmt.Fprintln(w, strings.Repeat("-", 60))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSCORE\tBAND\tQUADRANT\tDUE\tTITLE")
	for i, t := range result.Tasks {
		fmt.Fprintf(tw, "%d\t%.2f\t%s\t%s\t%s\t%s\n", i+1, t.Score, t.Band, t.Quadrant, t.DueDate, t.Title)
	}
	_ = tw.Flush()

	if len(result.CyclicIDs) > 0 {
		ids := make([]string, 0, len(result.CyclicIDs))
		for _, id := range result.CyclicIDs {
			ids = append(ids, fmt.Sprintf("%d", id))
		}
		fmt.Fprintf(w, "\nCircular dependencies between tasks: %s\n", strings.Join(ids, ", "))
	}

	if top <= 0 {
		return
	}
	if top > len(result.Tasks) {
		top = len(result.Tasks)
	}
	fmt.Fprintf(w, "\nWork on next:\n")
	for i, t := range result.Tasks[:top] {
		fmt.Fprintf(w, "%d. %s\n   %s\n", i+1, t.Title, t.Explanation)
	}
}

// topTitles lists task titles in ranked order.
func topTitles(tasks []application.ScoredTaskDTO) []string {
	titles := make([]string, 0, len(tasks))
	for _, t := range tasks {
		titles = append(titles, t.Title)
	}
	return titles
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "JSON task file (default: stdin)")
	analyzeCmd.Flags().StringVarP(&analyzeStrategy, "strategy", "s", "", "scoring strategy (overrides the file)")
	analyzeCmd.Flags().IntVarP(&analyzeTop, "top", "n", 3, "number of tasks to highlight, 0 to skip")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the full result as JSON")
}
