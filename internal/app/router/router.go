// Package router はGinエンジンを組み立て、ルートとミドルウェアを登録します。
package router

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	usershandler "user_backend/internal/feature/users/transport/handler"
	"user_backend/internal/platform/config"
	"user_backend/internal/platform/http/handler"
	"user_backend/internal/platform/http/middleware"
	jwtmw "user_backend/internal/platform/jwt"
	"user_backend/internal/platform/metrics"
)

// Deps はルーターが必要とする依存関係です。
type Deps struct {
	Config      *config.Config
	Users       *usershandler.UserHandler
	Tokens      jwtmw.TokenParser
	Revocations jwtmw.RevocationChecker
	Metrics     *metrics.Metrics
	// Readiness は /readyz で実行する疎通確認です。
	Readiness map[string]func(ctx context.Context) error
	Logger    *zap.Logger
}

func NewRouter(deps Deps) *gin.Engine {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if deps.Config != nil && deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID(log), middleware.Recovery(log), middleware.RequestLogger(log))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
	}
	if deps.Config != nil {
		r.Use(cors.New(corsConfig(deps.Config.CORS)))
	}

	// 認証不要
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.GET("/readyz", handler.Readiness(log, deps.Readiness))
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	users := r.Group("/users")
	// 新規ユーザー登録
	users.POST("", deps.Users.SignUp)
	// ログイン（JWT 発行）
	users.POST("/auth", deps.Users.SignIn)

	// 認証必須のルート
	auth := users.Group("")
	auth.Use(jwtmw.AuthRequired(deps.Tokens, deps.Revocations, log))
	{
		auth.GET("", deps.Users.List)
		auth.GET("/:id", deps.Users.Get)
		auth.PUT("/:id", deps.Users.Update)
		auth.PATCH("/password/:id", deps.Users.UpdatePassword)
		auth.DELETE("/:id", deps.Users.Delete)
	}

	return r
}

func corsConfig(cfg config.CORSConfig) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 || slices.Contains(cfg.AllowedOrigins, "*") {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = cfg.AllowedOrigins
	return c
}
