package cli

import (
	"os"
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"space-stem-quiz/internal/app"
	"space-stem-quiz/internal/config"
	"space-stem-quiz/internal/event"
	"space-stem-quiz/internal/infra/memory"
	"space-stem-quiz/internal/tui"
)

// NewPlayCmd runs the terminal quiz for the logged-in explorer.
func NewPlayCmd(configPath *string) *cobra.Command {
	var quizID string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := config.LoadOptional(*configPath)
			if err != nil {
				return err
			}

			profile, err := openProfile(*configPath)
			if err != nil {
				return err
			}
			user, err := currentUser(ctx, profile)
			profile.Close()
			if err != nil {
				return err
			}

			source, closeSource, err := openQuizSource(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeSource()

			// the alt screen owns stdout while playing
			if f, err := tea.LogToFile(filepath.Join(os.TempDir(), "space-stem.log"), "space-stem"); err == nil {
				defer f.Close()
			}

			service := app.NewQuizService(
				memory.NewSessionStore(),
				memory.NewQuizRepository(source, config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)),
				app.WithCompletionSink(event.NewLogSink(nil)),
			)
			return tui.Run(ctx, service, source, user,
				tui.WithQuiz(quizID),
				tui.WithFeedbackDelay(config.TTLDuration(cfg.Quiz.FeedbackDelay, 0)),
			)
		},
	}
	cmd.Flags().StringVar(&quizID, "quiz", "", "open this quiz id directly")
	return cmd
}
