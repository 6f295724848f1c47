package usecase

import (
	"context"

	"user_backend/internal/feature/users/domain/repository"
	"user_backend/internal/shared/domainerr"
)

type GetUserInput struct {
	ID string
}

type getUser struct {
	users repository.UserRepository
}

func NewGetUser(users repository.UserRepository) *getUser {
	return &getUser{users: users}
}

func (uc *getUser) Execute(ctx context.Context, in GetUserInput) (UserOutput, error) {
	if in.ID == "" {
		return UserOutput{}, domainerr.NewBadRequest("Missing id")
	}
	user, err := uc.users.FindByID(ctx, in.ID)
	if err != nil {
		return UserOutput{}, err
	}
	return userOutputFrom(user), nil
}
