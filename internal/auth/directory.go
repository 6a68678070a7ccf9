package auth

import (
	"context"
	"fmt"
	"strings"

	"space-stem-quiz/internal/domain"
)

const minPasswordLength = 3

// Directory is the fixed set of demo accounts.
type Directory struct {
	users []domain.User
}

func NewDirectory(users ...domain.User) *Directory {
	return &Directory{users: users}
}

// DefaultDirectory holds the two demo students and the demo teacher.
func DefaultDirectory() *Directory {
	return NewDirectory(
		domain.User{ID: "1", Name: "Alex Space Explorer", Email: "alex@spacestem.com", Role: domain.RoleStudent, Grade: "3rd Grade", Avatar: "🚀"},
		domain.User{ID: "2", Name: "Luna Star Student", Email: "luna@spacestem.com", Role: domain.RoleStudent, Grade: "4th Grade", Avatar: "🌟"},
		domain.User{ID: "3", Name: "Ms. Galaxy Teacher", Email: "galaxy@spacestem.com", Role: domain.RoleTeacher, Subject: "Science & Math", Avatar: "👩‍🚀"},
	)
}

// Login looks up the account by email. Passwords are not stored; any password of at least
// three characters is accepted.
func (d *Directory) Login(_ context.Context, email, password string) (domain.User, error) {
	email = strings.TrimSpace(email)
	for _, u := range d.users {
		if u.Email != email {
			continue
		}
		if len(password) < minPasswordLength {
			return domain.User{}, domain.ErrInvalidPassword
		}
		return u, nil
	}
	return domain.User{}, fmt.Errorf("%w: %s", domain.ErrUserNotFound, email)
}

// Lookup resolves a user id, as carried in a token subject.
func (d *Directory) Lookup(_ context.Context, id string) (domain.User, error) {
	for _, u := range d.users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, fmt.Errorf("%w: id %s", domain.ErrUserNotFound, id)
}

// Users lists the demo accounts.
func (d *Directory) Users() []domain.User {
	return append([]domain.User(nil), d.users...)
}

// RequireRole reports whether user may pass; with no roles any user passes.
func RequireRole(user *domain.User, roles ...domain.Role) bool {
	if user == nil {
		return false
	}
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if user.Role == r {
			return true
		}
	}
	return false
}

// DisplayName prefixes the user's name with their avatar.
func DisplayName(user domain.User) string {
	if user.Avatar == "" {
		return user.Name
	}
	return user.Avatar + " " + user.Name
}
