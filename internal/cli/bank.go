package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"space-stem-quiz/internal/bank"
)

// NewBankCmd groups quiz bank maintenance commands.
func NewBankCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bank",
		Short: "Quiz bank tools",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "validate <file>...",
		Short: "Check quiz bank files against the schema and question rules",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var failed int
			for _, path := range args {
				quiz, err := bank.LoadFile(path)
				if err != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s: %v\n", path, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %s (%d questions, %d XP)\n", path, quiz.ID, len(quiz.Questions), quiz.MaxXP())
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d bank files are invalid", failed, len(args))
			}
			return nil
		},
	})
	return cmd
}
