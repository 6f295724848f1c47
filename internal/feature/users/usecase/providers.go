// Package usecase はusersフィーチャーのビジネスロジックを実装します。
// 各ユースケースは入力型と出力型を1組ずつ持ち、リポジトリとプロバイダーのインターフェースにのみ依存します。
package usecase

import "context"

// HashProvider はパスワードハッシュの生成と照合を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/hash）ではなくコンシューマー（usecase）が定義します。
type HashProvider interface {
	// GenerateHash は平文からハッシュを生成します。
	GenerateHash(ctx context.Context, plain string) (string, error)
	// CompareHash は平文がハッシュと一致するかを返します。不一致はエラーではありません。
	CompareHash(ctx context.Context, plain, hash string) (bool, error)
}
