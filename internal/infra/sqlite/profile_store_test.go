package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"space-stem-quiz/internal/domain"
)

func openTestStore(t *testing.T) *ProfileStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "profile.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestProfileStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	_, err := s.CurrentUser(ctx)
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	alex := domain.User{ID: "1", Name: "Alex Space Explorer", Email: "alex@spacestem.com", Role: domain.RoleStudent, Grade: "3rd Grade", Avatar: "🚀"}
	require.NoError(t, s.SaveUser(ctx, alex))

	got, err := s.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, alex, got)

	luna := domain.User{ID: "2", Name: "Luna Star Student", Role: domain.RoleStudent}
	require.NoError(t, s.SaveUser(ctx, luna))
	got, err = s.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2", got.ID)

	require.NoError(t, s.ClearUser(ctx))
	_, err = s.CurrentUser(ctx)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestProfileStoreCorruptRecord(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	_, err := s.db.Exec(`INSERT INTO profile (key, value, updated_at) VALUES (?, ?, ?)`, currentUserKey, "{broken", "now")
	require.NoError(t, err)

	_, err = s.CurrentUser(ctx)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestDefaultPathHonoursEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SPACE_STEM_PROFILE", filepath.Join(dir, "nested", "me.db"))

	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "nested", "me.db"), p)
	_, err = os.Stat(filepath.Join(dir, "nested"))
	require.NoError(t, err)

	t.Setenv("SPACE_STEM_PROFILE", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err = DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "space-stem", "profile.db"), p)
}
