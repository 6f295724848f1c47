package usecase

import (
	"context"

	"user_backend/internal/feature/users/domain/repository"
	"user_backend/internal/shared/domainerr"
)

type UpdateUserInput struct {
	ID   string
	Name string
}

type updateUser struct {
	users repository.UserRepository
}

func NewUpdateUser(users repository.UserRepository) *updateUser {
	return &updateUser{users: users}
}

// Execute はユーザー名を更新します。
func (uc *updateUser) Execute(ctx context.Context, in UpdateUserInput) (UserOutput, error) {
	if in.ID == "" || in.Name == "" {
		return UserOutput{}, domainerr.NewBadRequest("Missing id or name property")
	}

	user, err := uc.users.FindByID(ctx, in.ID)
	if err != nil {
		return UserOutput{}, err
	}
	user.SetName(in.Name)
	if err := user.Validate(); err != nil {
		return UserOutput{}, err
	}
	if err := uc.users.Update(ctx, user); err != nil {
		return UserOutput{}, err
	}
	return userOutputFrom(user), nil
}
