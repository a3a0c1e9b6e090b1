package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/edricd/backend/internal/model"
	"github.com/edricd/backend/internal/repository"
	"github.com/edricd/backend/pkg/auth"
)

const (
	maxUsernameLength = 50
	maxPasswordLength = 255
)

// userServiceImpl is the production implementation of UserService.
type userServiceImpl struct {
	repo   repository.UserRepository
	hasher auth.PasswordHasher
}

// NewUserService creates a UserService. repo may be nil when the store is
// not configured; Register then reports a configuration failure.
func NewUserService(repo repository.UserRepository, hasher auth.PasswordHasher) UserService {
	return &userServiceImpl{repo: repo, hasher: hasher}
}

// Register trims and validates the input, hashes the password and inserts
// the user. Username uniqueness is left to the store's constraint.
func (s *userServiceImpl) Register(ctx context.Context, input *model.RegistrationInput) (int64, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return 0, newError(KindValidation, "username is required", nil)
	}
	if len([]rune(username)) > maxUsernameLength {
		return 0, newError(KindValidation, "username is too long", nil)
	}
	if strings.TrimSpace(input.Password) == "" {
		return 0, newError(KindValidation, "password is required", nil)
	}
	if len(input.Password) > maxPasswordLength {
		return 0, newError(KindValidation, "password is too long", nil)
	}

	if s.repo == nil {
		slog.Error("user store not configured")
		return 0, newError(KindConfiguration, "registration is not available", nil)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		// bcrypt only fails on over-long plaintext; treat as client input.
		return 0, newError(KindValidation, "password is too long", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         strings.TrimSpace(input.Role),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return 0, newError(KindDuplicate, "username already exists", nil)
		}
		slog.Error("user insert failed", "error", err, "username", username)
		return 0, newError(KindStore, "failed to create user", err)
	}

	slog.Info("user created", "user_id", user.ID, "username", username)
	return user.ID, nil
}
