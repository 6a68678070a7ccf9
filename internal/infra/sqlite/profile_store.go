package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"

	"space-stem-quiz/internal/domain"
)

// currentUserKey is where the logged-in user is kept.
const currentUserKey = "space_stem_user"

const schema = `CREATE TABLE IF NOT EXISTS profile (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

// ProfileStore persists the local player profile in a small SQLite file.
type ProfileStore struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn, applies pragmas and creates the schema.
func Open(dsn string) (*ProfileStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &ProfileStore{db: db}, nil
}

func (s *ProfileStore) Close() error {
	return s.db.Close()
}

// SaveUser records user as the current user, replacing any previous one.
func (s *ProfileStore) SaveUser(ctx context.Context, user domain.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO profile (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		currentUserKey, string(payload), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// CurrentUser returns the logged-in user. A missing or unreadable record means nobody is
// logged in and yields ErrUnauthorized.
func (s *ProfileStore) CurrentUser(ctx context.Context) (domain.User, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM profile WHERE key = ?`, currentUserKey).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrUnauthorized
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("load user: %w", err)
	}
	var user domain.User
	if err := json.Unmarshal([]byte(payload), &user); err != nil || user.ID == "" {
		return domain.User{}, domain.ErrUnauthorized
	}
	return user, nil
}

// ClearUser logs the current user out.
func (s *ProfileStore) ClearUser(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM profile WHERE key = ?`, currentUserKey); err != nil {
		return fmt.Errorf("clear user: %w", err)
	}
	return nil
}

// applyPragmas configures SQLite for single-user use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultPath resolves the profile database path in priority order:
// SPACE_STEM_PROFILE, then $XDG_DATA_HOME/space-stem/profile.db, then
// ~/.local/share/space-stem/profile.db.
func DefaultPath() (string, error) {
	if p := os.Getenv("SPACE_STEM_PROFILE"); p != "" {
		return p, ensureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "space-stem", "profile.db")
	return p, ensureDir(p)
}

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
