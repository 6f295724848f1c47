// Package repository はリポジトリ契約と検索パラメータ・検索結果、
// およびテストや開発用のインメモリ実装を提供します。
package repository

import "context"

// Record はリポジトリが扱えるエンティティの要件です。
// Clone は保存・取得時の防御的コピーに使われます。
type Record[E any] interface {
	ID() string
	ToJSON() map[string]any
	Clone() E
}

// Repository は基本的な永続化操作を定義します。
// FindByID / Update / Delete は対象が存在しない場合 domainerr.NotFoundError を返します。
type Repository[E any] interface {
	Insert(ctx context.Context, e E) error
	FindByID(ctx context.Context, id string) (E, error)
	FindAll(ctx context.Context) ([]E, error)
	Update(ctx context.Context, e E) error
	Delete(ctx context.Context, id string) error
}

// SearchableRepository はフィルタ・ソート・ページングを伴う検索を追加します。
type SearchableRepository[E any] interface {
	Repository[E]
	Search(ctx context.Context, params SearchParams) (SearchResult[E], error)
}
