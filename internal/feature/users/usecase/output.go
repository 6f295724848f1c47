package usecase

import (
	"time"

	"user_backend/internal/feature/users/domain/entity"
	"user_backend/internal/shared/repository"
)

// UserOutput はユースケースが返すユーザーの表現です。Password はハッシュです。
type UserOutput struct {
	ID        string
	Name      string
	Email     string
	Password  string
	CreatedAt time.Time
}

func userOutputFrom(u *entity.User) UserOutput {
	return UserOutput{
		ID:        u.ID(),
		Name:      u.Name(),
		Email:     u.Email(),
		Password:  u.Password(),
		CreatedAt: u.CreatedAt(),
	}
}

// PaginationOutput はページング済みの一覧です。
type PaginationOutput[T any] struct {
	Items       []T
	Total       int
	CurrentPage int
	LastPage    int
	PerPage     int
}

func paginationOutputFrom[E, T any](res repository.SearchResult[E], mapItem func(E) T) PaginationOutput[T] {
	items := make([]T, len(res.Items))
	for i, item := range res.Items {
		items[i] = mapItem(item)
	}
	return PaginationOutput[T]{
		Items:       items,
		Total:       res.Total,
		CurrentPage: res.CurrentPage,
		LastPage:    res.LastPage,
		PerPage:     res.PerPage,
	}
}
