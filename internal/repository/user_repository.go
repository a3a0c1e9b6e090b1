package repository

import (
	"context"

	"github.com/edricd/backend/internal/model"
)

// UserRepository persists user accounts.
type UserRepository interface {
	// Create inserts the user and fills in the generated ID and CreatedAt.
	// Returns ErrDuplicateUsername when the username is already taken.
	Create(ctx context.Context, user *model.User) error

	// FindByUsername returns the user with the given username, or ErrNotFound.
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// Ping checks database connectivity.
	Ping(ctx context.Context) error
}
