package usecase

import (
	"context"
	"fmt"

	"user_backend/internal/feature/users/domain/repository"
	"user_backend/internal/shared/domainerr"
)

type SignInInput struct {
	Email    string
	Password string
}

type signIn struct {
	users  repository.UserRepository
	hasher HashProvider
}

func NewSignIn(users repository.UserRepository, hasher HashProvider) *signIn {
	return &signIn{users: users, hasher: hasher}
}

// Execute はメールアドレスとパスワードでユーザーを認証します。
func (uc *signIn) Execute(ctx context.Context, in SignInInput) (UserOutput, error) {
	if in.Email == "" || in.Password == "" {
		return UserOutput{}, domainerr.NewBadRequest("Missing email or password")
	}

	user, err := uc.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return UserOutput{}, err
	}

	ok, err := uc.hasher.CompareHash(ctx, in.Password, user.Password())
	if err != nil {
		return UserOutput{}, fmt.Errorf("failed to compare password: %w", err)
	}
	if !ok {
		return UserOutput{}, domainerr.NewAuthentication("Password does not match")
	}
	return userOutputFrom(user), nil
}
