package usecase

import (
	"context"

	"user_backend/internal/feature/users/domain/repository"
	"user_backend/internal/shared/domainerr"
)

type DeleteUserInput struct {
	ID string
}

type deleteUser struct {
	users repository.UserRepository
}

func NewDeleteUser(users repository.UserRepository) *deleteUser {
	return &deleteUser{users: users}
}

func (uc *deleteUser) Execute(ctx context.Context, in DeleteUserInput) error {
	if in.ID == "" {
		return domainerr.NewBadRequest("Missing id property")
	}
	return uc.users.Delete(ctx, in.ID)
}
