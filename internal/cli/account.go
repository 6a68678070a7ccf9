package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"space-stem-quiz/internal/auth"
	"space-stem-quiz/internal/config"
	"space-stem-quiz/internal/domain"
	"space-stem-quiz/internal/infra/sqlite"
)

func openProfile(configPath string) (*sqlite.ProfileStore, error) {
	cfg, err := config.LoadOptional(configPath)
	if err != nil {
		return nil, err
	}
	path := cfg.Profile.Path
	if path == "" {
		path, err = sqlite.DefaultPath()
		if err != nil {
			return nil, err
		}
	} else if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create profile dir: %w", err)
	}
	return sqlite.Open(path)
}

// currentUser returns the logged-in player or a hint to log in.
func currentUser(ctx context.Context, profile *sqlite.ProfileStore) (domain.User, error) {
	user, err := profile.CurrentUser(ctx)
	if errors.Is(err, domain.ErrUnauthorized) {
		return domain.User{}, errors.New("not logged in; run `space-stem login --email <email> --password <password>` first")
	}
	return user, err
}

func NewLoginCmd(configPath *string) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as one of the demo explorers",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := auth.DefaultDirectory().Login(cmd.Context(), email, password)
			switch {
			case errors.Is(err, domain.ErrUserNotFound):
				return fmt.Errorf("no account for %s", email)
			case errors.Is(err, domain.ErrInvalidPassword):
				return errors.New("password must be at least 3 characters")
			case err != nil:
				return err
			}

			profile, err := openProfile(*configPath)
			if err != nil {
				return err
			}
			defer profile.Close()
			if err := profile.SaveUser(cmd.Context(), user); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome aboard, %s!\n", auth.DisplayName(user))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func NewLogoutCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the logged-in explorer",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := openProfile(*configPath)
			if err != nil {
				return err
			}
			defer profile.Close()
			if err := profile.ClearUser(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func NewWhoamiCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in explorer",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := openProfile(*configPath)
			if err != nil {
				return err
			}
			defer profile.Close()
			user, err := currentUser(cmd.Context(), profile)
			if err != nil {
				return err
			}
			detail := user.Grade
			if user.Role == domain.RoleTeacher {
				detail = user.Subject
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> %s, %s\n", auth.DisplayName(user), user.Email, user.Role, detail)
			return nil
		},
	}
}
