package usecase

import (
	"context"
	"fmt"

	"user_backend/internal/feature/users/domain/entity"
	"user_backend/internal/feature/users/domain/repository"
	"user_backend/internal/shared/domainerr"
)

type SignUpInput struct {
	Name     string
	Email    string
	Password string
}

type signUp struct {
	users  repository.UserRepository
	hasher HashProvider
}

func NewSignUp(users repository.UserRepository, hasher HashProvider) *signUp {
	return &signUp{users: users, hasher: hasher}
}

// Execute はユーザーを登録します。
// パスワードをハッシュ化してからルールで検証し、メールアドレスの重複を確認して保存します。
func (uc *signUp) Execute(ctx context.Context, in SignUpInput) (UserOutput, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return UserOutput{}, domainerr.NewBadRequest("Some necessary input data not provided")
	}

	hash, err := uc.hasher.GenerateHash(ctx, in.Password)
	if err != nil {
		return UserOutput{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entity.NewUser(entity.UserProps{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
	}, "")
	if err := user.Validate(); err != nil {
		return UserOutput{}, err
	}

	if err := uc.users.EmailExists(ctx, in.Email); err != nil {
		return UserOutput{}, err
	}

	if err := uc.users.Insert(ctx, user); err != nil {
		return UserOutput{}, err
	}
	return userOutputFrom(user), nil
}
