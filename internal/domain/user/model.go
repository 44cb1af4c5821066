package user

import (
	"context"
	"strings"
	"time"
)

// Principal is the authenticated caller as reported by the identity provider.
type Principal struct {
	UserID string
	Email  string
	Name   string
}

// DisplayName falls back to the local part of the email when the identity
// provider does not return a name.
func (p Principal) DisplayName() string {
	if name := strings.TrimSpace(p.Name); name != "" {
		return name
	}
	if local, _, ok := strings.Cut(strings.TrimSpace(p.Email), "@"); ok && local != "" {
		return local
	}
	return p.UserID
}

// User is the local profile row referenced by teams and contest entries.
type User struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository describes user persistence needs from use cases.
type Repository interface {
	Upsert(ctx context.Context, u User) error
	GetByID(ctx context.Context, userID string) (User, bool, error)
}
