package rank

import (
	"fmt"
	"text/tabwriter"

	"github.com/felixgeelhaar/taskrank/adapter/cli"
	"github.com/felixgeelhaar/taskrank/internal/ranking/domain"
	"github.com/spf13/cobra"
)

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List scoring strategies",
	Annotations: map[string]string{
		cli.NoAppAnnotation: "true",
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "STRATEGY\tFORMULA")
		for _, s := range domain.Strategies() {
			name := s.String()
			if s == domain.DefaultStrategy {
				name += " (default)"
			}
			fmt.Fprintf(tw, "%s\t%s\n", name, s.Formula())
		}
		return tw.Flush()
	},
}
