// Package repository はユーザーリポジトリの契約を定義します。
package repository

import (
	"context"

	"user_backend/internal/feature/users/domain/entity"
	"user_backend/internal/shared/repository"
)

// UserRepository はユーザーの永続化契約です。インメモリ実装と gorm 実装が同じ振る舞いを満たします。
type UserRepository interface {
	repository.SearchableRepository[*entity.User]

	// FindByEmail はメールアドレスでユーザーを取得します。存在しない場合は NotFoundError を返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// EmailExists は同じメールアドレスのユーザーが存在する場合に ConflictError を返します。
	// 存在しなければ nil を返します。
	EmailExists(ctx context.Context, email string) error
}

// 既定のソートは作成日時の降順です。方向のみ未指定の場合も降順になります。
const (
	DefaultSortField = "createdAt"
	DefaultSortDir   = repository.SortDesc
)

// SortableFields はソートに指定できる属性名です。
var SortableFields = []string{"name", "email", "createdAt"}
