package usecase

import (
	"context"
	"fmt"

	"user_backend/internal/feature/users/domain/repository"
	"user_backend/internal/shared/domainerr"
)

type UpdatePasswordInput struct {
	ID          string
	OldPassword string
	NewPassword string
}

type updatePassword struct {
	users  repository.UserRepository
	hasher HashProvider
}

func NewUpdatePassword(users repository.UserRepository, hasher HashProvider) *updatePassword {
	return &updatePassword{users: users, hasher: hasher}
}

// Execute は現在のパスワードを確認してからパスワードを変更します。
// 新しいパスワードはハッシュ化する前に平文のまま検証します。
func (uc *updatePassword) Execute(ctx context.Context, in UpdatePasswordInput) (UserOutput, error) {
	if in.ID == "" || in.OldPassword == "" || in.NewPassword == "" {
		return UserOutput{}, domainerr.NewBadRequest("Missing necessary properties")
	}

	user, err := uc.users.FindByID(ctx, in.ID)
	if err != nil {
		return UserOutput{}, err
	}

	ok, err := uc.hasher.CompareHash(ctx, in.OldPassword, user.Password())
	if err != nil {
		return UserOutput{}, fmt.Errorf("failed to compare password: %w", err)
	}
	if !ok {
		return UserOutput{}, domainerr.NewInvalidPassword("Old password does not match")
	}

	user.SetPassword(in.NewPassword)
	if err := user.Validate(); err != nil {
		return UserOutput{}, err
	}

	hash, err := uc.hasher.GenerateHash(ctx, in.NewPassword)
	if err != nil {
		return UserOutput{}, fmt.Errorf("failed to hash password: %w", err)
	}
	user.SetPassword(hash)

	if err := uc.users.Update(ctx, user); err != nil {
		return UserOutput{}, err
	}
	return userOutputFrom(user), nil
}
