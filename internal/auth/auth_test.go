package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"space-stem-quiz/internal/domain"
)

func TestLogin(t *testing.T) {
	dir := DefaultDirectory()
	ctx := context.Background()

	user, err := dir.Login(ctx, "luna@spacestem.com", "stars")
	require.NoError(t, err)
	assert.Equal(t, "2", user.ID)
	assert.Equal(t, "4th Grade", user.Grade)

	_, err = dir.Login(ctx, "luna@spacestem.com", "ab")
	require.ErrorIs(t, err, domain.ErrInvalidPassword)

	_, err = dir.Login(ctx, "pluto@spacestem.com", "secret")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLookup(t *testing.T) {
	dir := DefaultDirectory()

	teacher, err := dir.Lookup(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleTeacher, teacher.Role)
	assert.Equal(t, "Science & Math", teacher.Subject)

	_, err = dir.Lookup(context.Background(), "42")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Len(t, dir.Users(), 3)
}

func TestRequireRole(t *testing.T) {
	student := domain.User{ID: "1", Role: domain.RoleStudent}

	assert.False(t, RequireRole(nil))
	assert.True(t, RequireRole(&student))
	assert.True(t, RequireRole(&student, domain.RoleStudent, domain.RoleTeacher))
	assert.False(t, RequireRole(&student, domain.RoleTeacher))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "🚀 Alex Space Explorer", DisplayName(domain.User{Name: "Alex Space Explorer", Avatar: "🚀"}))
	assert.Equal(t, "Nobody", DisplayName(domain.User{Name: "Nobody"}))
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, ttl, err := svc.Issue(domain.User{ID: "1", Role: domain.RoleStudent})
	require.NoError(t, err)
	assert.Equal(t, time.Hour, ttl)

	sub, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "1", sub)
}

func TestTokenRejectsForgedAndExpired(t *testing.T) {
	svc := NewTokenService("test-secret", time.Minute)
	token, _, err := svc.Issue(domain.User{ID: "1"})
	require.NoError(t, err)

	other := NewTokenService("other-secret", time.Minute)
	_, err = other.Verify(token)
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = svc.Verify(token)
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.Verify("not-a-token")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}
