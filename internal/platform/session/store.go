// Package session はユーザー単位のトークン失効時刻を保存するストアを提供します。
// パスワード変更やユーザー削除の時点より前に発行されたトークンを無効にするために使います。
package session

import (
	"context"
	"time"
)

// RevocationStore はユーザーごとの失効時刻を保存します。
type RevocationStore interface {
	// Revoke は userID のトークンを at より前の発行分について失効させます。
	Revoke(ctx context.Context, userID string, at time.Time) error
	// RevokedAt は失効時刻を返します。記録がなければ ok は false です。
	RevokedAt(ctx context.Context, userID string) (at time.Time, ok bool, err error)
}
