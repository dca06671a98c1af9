// Package access answers who is calling and whether they may act on a world.
// The implementation here is a static allow list; real identity lives outside
// this service.
package access

//go:generate mockgen -destination=mock/mock_checker.go -package=mockaccess -source=checker.go

import (
	"context"
	"strings"

	apperr "github.com/KirkDiggler/tabletop-ledger/internal/errors"
)

// User is the caller of a command
type User struct {
	ID   string
	Name string
}

// Checker resolves the caller and checks world access
type Checker interface {
	ResolveCurrentUser(ctx context.Context) (*User, error)
	CheckWorldAccess(ctx context.Context, user *User, worldID string) error
}

type userKey struct{}

// WithUser returns a context carrying user
func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// StaticConfig holds configuration for the static checker
type StaticConfig struct {
	// AllowedUsers may act on every world. Empty allows everyone.
	AllowedUsers []string
}

type staticChecker struct {
	allowed map[string]bool
}

// NewStaticChecker creates a checker backed by a fixed allow list
func NewStaticChecker(cfg *StaticConfig) Checker {
	c := &staticChecker{allowed: make(map[string]bool)}
	if cfg != nil {
		for _, id := range cfg.AllowedUsers {
			if id = strings.TrimSpace(id); id != "" {
				c.allowed[id] = true
			}
		}
	}
	return c
}

func (c *staticChecker) ResolveCurrentUser(ctx context.Context) (*User, error) {
	user, ok := ctx.Value(userKey{}).(*User)
	if !ok || user == nil || user.ID == "" {
		return nil, apperr.PermissionDenied("no user on the request")
	}
	return user, nil
}

func (c *staticChecker) CheckWorldAccess(ctx context.Context, user *User, worldID string) error {
	if user == nil {
		return apperr.PermissionDenied("user is required")
	}
	if strings.TrimSpace(worldID) == "" {
		return apperr.Validation("worldId is required")
	}
	if len(c.allowed) == 0 || c.allowed[user.ID] {
		return nil
	}
	return apperr.PermissionDenied("user cannot act on this world").
		WithMeta("user_id", user.ID).
		WithMeta("world_id", worldID)
}
