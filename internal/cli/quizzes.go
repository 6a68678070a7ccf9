package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"space-stem-quiz/internal/config"
)

// NewQuizzesCmd prints the quiz catalog.
func NewQuizzesCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "quizzes",
		Short: "List available quizzes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOptional(*configPath)
			if err != nil {
				return err
			}
			source, closeSource, err := openQuizSource(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeSource()

			entries, err := source.ListQuizzes(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tLEVEL\tQUESTIONS\tMAX XP\tMINUTES")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n", e.ID, e.Title, e.Level, e.Questions, e.MaxXP, e.EstimatedMinutes)
			}
			return w.Flush()
		},
	}
}
