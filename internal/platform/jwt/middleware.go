package jwtmw

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user_backend/internal/platform/http/response"
)

const ContextUserID = "userID"

// TokenParser はトークンを検証してクレームを返します。
type TokenParser interface {
	ParseToken(token string) (Claims, error)
}

// RevocationChecker はユーザーごとの失効時刻を返します。
type RevocationChecker interface {
	RevokedAt(ctx context.Context, userID string) (time.Time, bool, error)
}

// AuthRequired はBearerトークンを検証し、認証済みユーザーのみ通過させるGinミドルウェアを返します。
// revocations が nil の場合、失効チェックは行いません。
func AuthRequired(parser TokenParser, revocations RevocationChecker, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			response.Abort(c, http.StatusUnauthorized, "missing bearer token")
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		claims, err := parser.ParseToken(tokenStr)
		if err != nil {
			log.Debug("token rejected", zap.Error(err), zap.String("client_ip", c.ClientIP()))
			response.Abort(c, http.StatusUnauthorized, "invalid token")
			return
		}

		if revocations != nil {
			revokedAt, ok, err := revocations.RevokedAt(c.Request.Context(), claims.UserID)
			if err != nil {
				log.Error("revocation lookup failed", zap.Error(err), zap.String("user_id", claims.UserID))
				response.Abort(c, http.StatusInternalServerError, "internal server error")
				return
			}
			// iat は秒精度のため、失効時刻も秒に切り捨てて比較する。
			// 失効と同じ秒に発行されたトークンは、失効より前の発行でも有効のまま残る。
			if ok && claims.IssuedAt.Before(revokedAt.Truncate(time.Second)) {
				response.Abort(c, http.StatusUnauthorized, "token has been revoked")
				return
			}
		}

		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}
