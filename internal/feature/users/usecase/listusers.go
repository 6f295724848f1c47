package usecase

import (
	"context"

	"user_backend/internal/feature/users/domain/repository"
	"user_backend/internal/shared/domainerr"
	sharedrepo "user_backend/internal/shared/repository"
)

// ListUsersInput は一覧取得の条件です。Page と PerPage は必須です。
type ListUsersInput struct {
	Page    int
	PerPage int
	Sort    string
	SortDir string
	Filter  string
}

type listUsers struct {
	users repository.UserRepository
}

func NewListUsers(users repository.UserRepository) *listUsers {
	return &listUsers{users: users}
}

func (uc *listUsers) Execute(ctx context.Context, in ListUsersInput) (PaginationOutput[UserOutput], error) {
	if in.Page == 0 || in.PerPage == 0 {
		return PaginationOutput[UserOutput]{}, domainerr.NewBadRequest("Missing page or perPage search property")
	}

	params := sharedrepo.NewSearchParams(sharedrepo.SearchInput{
		Page:    in.Page,
		PerPage: in.PerPage,
		Sort:    in.Sort,
		SortDir: in.SortDir,
		Filter:  in.Filter,
	})
	res, err := uc.users.Search(ctx, params)
	if err != nil {
		return PaginationOutput[UserOutput]{}, err
	}
	return paginationOutputFrom(res, userOutputFrom), nil
}
