package dto

import (
	"time"

	"user_backend/internal/feature/users/usecase"
)

// UserView はレスポンスとして返すユーザーの表現です。パスワードは含みません。
type UserView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUserView は UserOutput から UserView を生成します。
func NewUserView(out usecase.UserOutput) UserView {
	return UserView{
		ID:        out.ID,
		Name:      out.Name,
		Email:     out.Email,
		CreatedAt: out.CreatedAt.UTC(),
	}
}

// UserPaginationView はページング済みのユーザー一覧です。
type UserPaginationView struct {
	Items       []UserView `json:"items"`
	Total       int        `json:"total"`
	CurrentPage int        `json:"currentPage"`
	LastPage    int        `json:"lastPage"`
	PerPage     int        `json:"perPage"`
}

func NewUserPaginationView(out usecase.PaginationOutput[usecase.UserOutput]) UserPaginationView {
	items := make([]UserView, len(out.Items))
	for i, item := range out.Items {
		items[i] = NewUserView(item)
	}
	return UserPaginationView{
		Items:       items,
		Total:       out.Total,
		CurrentPage: out.CurrentPage,
		LastPage:    out.LastPage,
		PerPage:     out.PerPage,
	}
}

// TokenResponse はサインイン成功時のレスポンスです。
type TokenResponse struct {
	Token string `json:"token"`
}
