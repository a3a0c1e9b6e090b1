package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/edricd/backend/internal/model"
	"github.com/edricd/backend/internal/repository"
)

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

type mockUserRepository struct {
	createFunc func(ctx context.Context, user *model.User) error
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	user.ID = 1
	return nil
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return nil, repository.ErrNotFound
}

func (m *mockUserRepository) Ping(ctx context.Context) error { return nil }

type mockHasher struct {
	hashFunc func(plaintext string) (string, error)
}

func (m *mockHasher) Hash(plaintext string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(plaintext)
	}
	return "hashed:" + plaintext, nil
}

func (m *mockHasher) Verify(hash, plaintext string) bool {
	return hash == "hashed:"+plaintext
}

// ---------------------------------------------------------------------------
// Register tests
// ---------------------------------------------------------------------------

func TestUserService_Register_UsernameRequired(t *testing.T) {
	svc := NewUserService(&mockUserRepository{}, &mockHasher{})

	_, err := svc.Register(context.Background(), &model.RegistrationInput{Username: "   ", Password: "pw"})
	se := AsError(err)
	if se.Kind != KindValidation {
		t.Errorf("expected KindValidation, got %v", se.Kind)
	}
	if se.Message != "username is required" {
		t.Errorf("unexpected message %q", se.Message)
	}
}

func TestUserService_Register_UsernameTooLong(t *testing.T) {
	svc := NewUserService(&mockUserRepository{}, &mockHasher{})

	_, err := svc.Register(context.Background(), &model.RegistrationInput{
		Username: strings.Repeat("a", 51),
		Password: "pw",
	})
	if AsError(err).Kind != KindValidation {
		t.Errorf("expected KindValidation, got %v", AsError(err).Kind)
	}
}

func TestUserService_Register_PasswordRequired(t *testing.T) {
	svc := NewUserService(&mockUserRepository{}, &mockHasher{})

	for _, pw := range []string{"", "   ", "\t\n"} {
		_, err := svc.Register(context.Background(), &model.RegistrationInput{Username: "alice", Password: pw})
		se := AsError(err)
		if se.Kind != KindValidation || se.Message != "password is required" {
			t.Errorf("password %q: expected validation failure, got %v %q", pw, se.Kind, se.Message)
		}
	}
}

func TestUserService_Register_TrimsUsername(t *testing.T) {
	var created *model.User
	repo := &mockUserRepository{
		createFunc: func(ctx context.Context, user *model.User) error {
			created = user
			user.ID = 7
			return nil
		},
	}
	svc := NewUserService(repo, &mockHasher{})

	id, err := svc.Register(context.Background(), &model.RegistrationInput{Username: "  alice  ", Password: "pw"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 7 {
		t.Errorf("expected id=7, got %d", id)
	}
	if created.Username != "alice" {
		t.Errorf("expected trimmed username, got %q", created.Username)
	}
}

func TestUserService_Register_PasswordIsHashedBeforeStore(t *testing.T) {
	var created *model.User
	repo := &mockUserRepository{
		createFunc: func(ctx context.Context, user *model.User) error {
			created = user
			return nil
		},
	}
	svc := NewUserService(repo, &mockHasher{})

	if _, err := svc.Register(context.Background(), &model.RegistrationInput{Username: "alice", Password: "s3cret"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.PasswordHash == "s3cret" {
		t.Error("plaintext password must never reach the store")
	}
	if created.PasswordHash != "hashed:s3cret" {
		t.Errorf("expected hasher output stored, got %q", created.PasswordHash)
	}
}

func TestUserService_Register_DuplicateUsername(t *testing.T) {
	repo := &mockUserRepository{
		createFunc: func(ctx context.Context, user *model.User) error {
			return repository.ErrDuplicateUsername
		},
	}
	svc := NewUserService(repo, &mockHasher{})

	_, err := svc.Register(context.Background(), &model.RegistrationInput{Username: "alice", Password: "pw"})
	se := AsError(err)
	if se.Kind != KindDuplicate {
		t.Errorf("expected KindDuplicate, got %v", se.Kind)
	}
	if se.Message != "username already exists" {
		t.Errorf("unexpected message %q", se.Message)
	}
}

func TestUserService_Register_StoreFailure(t *testing.T) {
	repo := &mockUserRepository{
		createFunc: func(ctx context.Context, user *model.User) error {
			return errors.New("connection reset by peer")
		},
	}
	svc := NewUserService(repo, &mockHasher{})

	_, err := svc.Register(context.Background(), &model.RegistrationInput{Username: "alice", Password: "pw"})
	se := AsError(err)
	if se.Kind != KindStore {
		t.Errorf("expected KindStore, got %v", se.Kind)
	}
	if strings.Contains(se.Message, "connection reset") {
		t.Error("storage internals must not leak into the user-facing message")
	}
}

func TestUserService_Register_StoreNotConfigured(t *testing.T) {
	svc := NewUserService(nil, &mockHasher{})

	_, err := svc.Register(context.Background(), &model.RegistrationInput{Username: "alice", Password: "pw"})
	if AsError(err).Kind != KindConfiguration {
		t.Errorf("expected KindConfiguration, got %v", AsError(err).Kind)
	}
}

// TestUserService_Register_ConcurrentDuplicate simulates the store's unique
// constraint: of two concurrent registrations for one username, exactly one
// wins and the loser sees a duplicate failure, not a crash.
func TestUserService_Register_ConcurrentDuplicate(t *testing.T) {
	var mu sync.Mutex
	taken := make(map[string]bool)
	repo := &mockUserRepository{
		createFunc: func(ctx context.Context, user *model.User) error {
			mu.Lock()
			defer mu.Unlock()
			if taken[user.Username] {
				return repository.ErrDuplicateUsername
			}
			taken[user.Username] = true
			user.ID = int64(len(taken))
			return nil
		},
	}
	svc := NewUserService(repo, &mockHasher{})

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.Register(context.Background(), &model.RegistrationInput{Username: "alice", Password: "pw"})
		}(i)
	}
	wg.Wait()

	var successes, duplicates int
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		case AsError(err).Kind == KindDuplicate:
			duplicates++
		}
	}
	if successes != 1 || duplicates != 1 {
		t.Errorf("expected exactly one winner and one duplicate, got %d/%d", successes, duplicates)
	}
	if len(taken) != 1 {
		t.Errorf("expected exactly one stored row, got %d", len(taken))
	}
}

func TestUserService_Register_HashFailure(t *testing.T) {
	hasher := &mockHasher{
		hashFunc: func(plaintext string) (string, error) {
			return "", errors.New("password length exceeds 72 bytes")
		},
	}
	svc := NewUserService(&mockUserRepository{}, hasher)

	_, err := svc.Register(context.Background(), &model.RegistrationInput{Username: "alice", Password: "pw"})
	if AsError(err).Kind != KindValidation {
		t.Errorf("expected KindValidation, got %v", AsError(err).Kind)
	}
}
