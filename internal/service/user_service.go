package service

import (
	"context"

	"github.com/edricd/backend/internal/model"
)

// UserService handles account registration.
type UserService interface {
	// Register validates, hashes and stores a new account, returning the
	// generated user ID. Failures are *Error values so the caller can
	// render a user-facing message without a server error status.
	Register(ctx context.Context, input *model.RegistrationInput) (int64, error)
}
