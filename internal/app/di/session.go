// Package di はアプリケーションのコンポーネントを組み立てるファクトリを提供します。
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"user_backend/internal/platform/session"
)

const revocationKeyPrefix = "revoked"

// NewRevocationStore はトークン失効ストアを生成します。
// Redisが利用可能ならRedis実装を、そうでなければデータベース実装を返します。
func NewRevocationStore(rdb *redis.Client, db *gorm.DB, ttl time.Duration) session.RevocationStore {
	if rdb != nil {
		return session.NewRevocationRedis(rdb, revocationKeyPrefix, ttl)
	}
	return session.NewRevocationGorm(db)
}
