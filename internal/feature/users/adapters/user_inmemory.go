// Package adapters はusersフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"slices"

	"user_backend/internal/feature/users/domain/entity"
	domainrepo "user_backend/internal/feature/users/domain/repository"
	"user_backend/internal/shared/domainerr"
	"user_backend/internal/shared/repository"
)

// userInMemory はUserRepositoryのインメモリ実装です。テストとローカル開発で使用します。
type userInMemory struct {
	*repository.InMemoryRepository[*entity.User]
}

// userInMemoryがUserRepositoryを実装していることをコンパイル時に検証します。
var _ domainrepo.UserRepository = (*userInMemory)(nil)

// NewUserInMemory は空のuserInMemoryを生成します。
// 検索は名前の部分一致（大文字小文字を区別しない）、既定ソートは createdAt の降順です。
func NewUserInMemory() *userInMemory {
	return &userInMemory{
		InMemoryRepository: repository.NewInMemoryRepository(repository.Options[*entity.User]{
			Filter:         repository.ContainsFold[*entity.User]("name"),
			DefaultSort:    domainrepo.DefaultSortField,
			DefaultSortDir: domainrepo.DefaultSortDir,
		}),
	}
}

// FindByEmail はメールアドレスでユーザーを取得します。
func (r *userInMemory) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := r.FindFirst(func(u *entity.User) bool { return u.Email() == email })
	if !ok {
		return nil, domainerr.NewNotFound("Could not found user with email %s", email)
	}
	return u, nil
}

// EmailExists は同じメールアドレスのユーザーが存在すれば ConflictError を返します。
func (r *userInMemory) EmailExists(_ context.Context, email string) error {
	if _, ok := r.FindFirst(func(u *entity.User) bool { return u.Email() == email }); ok {
		return domainerr.NewConflict("User with email %s already exists", email)
	}
	return nil
}

// Search はソート対象をSortableFieldsに限定したうえで検索します。
// それ以外のフィールドが指定された場合は方向も含めて既定ソートになります。
func (r *userInMemory) Search(ctx context.Context, params repository.SearchParams) (repository.SearchResult[*entity.User], error) {
	if !slices.Contains(domainrepo.SortableFields, params.Sort) {
		params.Sort, params.SortDir = "", ""
	}
	return r.InMemoryRepository.Search(ctx, params)
}
