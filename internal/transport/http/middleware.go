package http

import (
	"context"
	"net/http"
	"strings"

	"space-stem-quiz/internal/auth"
	"space-stem-quiz/internal/domain"
)

type contextKey string

const userKey contextKey = "user"

// Authenticate resolves the bearer token to a directory user and stores it in the request context.
func Authenticate(tokens *auth.TokenService, dir *auth.Directory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeError(w, http.StatusUnauthorized, "expected Authorization: Bearer <token>")
				return
			}

			user, err := resolveUser(r.Context(), tokens, dir, parts[1])
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(fn)
	}
}

// UserFromContext returns the user set by Authenticate.
func UserFromContext(ctx context.Context) (domain.User, bool) {
	user, ok := ctx.Value(userKey).(domain.User)
	return user, ok
}

func resolveUser(ctx context.Context, tokens *auth.TokenService, dir *auth.Directory, token string) (domain.User, error) {
	userID, err := tokens.Verify(token)
	if err != nil {
		return domain.User{}, err
	}
	return dir.Lookup(ctx, userID)
}
