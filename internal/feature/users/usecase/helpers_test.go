package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"user_backend/internal/feature/users/adapters"
	"user_backend/internal/feature/users/domain/entity"
	"user_backend/internal/feature/users/domain/repository"
)

// mockHashProvider is a mock implementation of HashProvider.
// By default it prefixes the plain text with "hashed:".
type mockHashProvider struct {
	GenerateHashFunc func(plain string) (string, error)
	CompareHashFunc  func(plain, hash string) (bool, error)
}

func (m *mockHashProvider) GenerateHash(_ context.Context, plain string) (string, error) {
	if m.GenerateHashFunc != nil {
		return m.GenerateHashFunc(plain)
	}
	return "hashed:" + plain, nil
}

func (m *mockHashProvider) CompareHash(_ context.Context, plain, hash string) (bool, error) {
	if m.CompareHashFunc != nil {
		return m.CompareHashFunc(plain, hash)
	}
	return strings.TrimPrefix(hash, "hashed:") == plain, nil
}

// failingUserRepository wraps a UserRepository and fails the overridden methods.
type failingUserRepository struct {
	repository.UserRepository
	err error
}

func (r *failingUserRepository) Update(context.Context, *entity.User) error {
	return r.err
}

func (r *failingUserRepository) Insert(context.Context, *entity.User) error {
	return r.err
}

var errStore = errors.New("store unavailable")

func newRepo() repository.UserRepository {
	return adapters.NewUserInMemory()
}

// seedUser stores a user whose password is the mock hash of plain.
func seedUser(t *testing.T, repo repository.UserRepository, name, email, plain string) *entity.User {
	t.Helper()
	u := entity.NewUser(entity.UserProps{Name: name, Email: email, Password: "hashed:" + plain}, "")
	require.NoError(t, repo.Insert(context.Background(), u))
	return u
}
