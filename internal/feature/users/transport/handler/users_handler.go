// Package handler はusersフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"user_backend/internal/feature/users/transport/http/dto"
	"user_backend/internal/feature/users/usecase"
	"user_backend/internal/platform/http/middleware"
	"user_backend/internal/platform/http/response"
	"user_backend/internal/shared/repository"
)

// インターフェースはコンシューマー（handler）側で定義します。

type SignUpUsecase interface {
	Execute(ctx context.Context, in usecase.SignUpInput) (usecase.UserOutput, error)
}

type SignInUsecase interface {
	Execute(ctx context.Context, in usecase.SignInInput) (usecase.UserOutput, error)
}

type ListUsersUsecase interface {
	Execute(ctx context.Context, in usecase.ListUsersInput) (usecase.PaginationOutput[usecase.UserOutput], error)
}

type GetUserUsecase interface {
	Execute(ctx context.Context, in usecase.GetUserInput) (usecase.UserOutput, error)
}

type UpdateUserUsecase interface {
	Execute(ctx context.Context, in usecase.UpdateUserInput) (usecase.UserOutput, error)
}

type UpdatePasswordUsecase interface {
	Execute(ctx context.Context, in usecase.UpdatePasswordInput) (usecase.UserOutput, error)
}

type DeleteUserUsecase interface {
	Execute(ctx context.Context, in usecase.DeleteUserInput) error
}

// TokenGenerator はユーザーIDからアクセストークンを発行します。
type TokenGenerator interface {
	GenerateToken(userID string) (string, error)
}

// TokenRevoker はユーザーの発行済みトークンを失効させます。
type TokenRevoker interface {
	Revoke(ctx context.Context, userID string, at time.Time) error
}

// Usecases はハンドラーが依存するユースケースの集合です。
type Usecases struct {
	SignUp         SignUpUsecase
	SignIn         SignInUsecase
	ListUsers      ListUsersUsecase
	GetUser        GetUserUsecase
	UpdateUser     UpdateUserUsecase
	UpdatePassword UpdatePasswordUsecase
	DeleteUser     DeleteUserUsecase
}

// UserHandler はユーザー操作のHTTPリクエストを処理します。
type UserHandler struct {
	uc       Usecases
	tokens   TokenGenerator
	revoker  TokenRevoker
	sanitize *bluemonday.Policy
	log      *zap.Logger
	now      func() time.Time
}

// NewUserHandler はUserHandlerを生成します。
// revoker が nil の場合、パスワード変更や削除の後もトークンは有効期限まで使えます。
func NewUserHandler(uc Usecases, tokens TokenGenerator, revoker TokenRevoker, log *zap.Logger) *UserHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &UserHandler{
		uc:       uc,
		tokens:   tokens,
		revoker:  revoker,
		sanitize: bluemonday.StrictPolicy(),
		log:      log,
		now:      time.Now,
	}
}

// SignUp はユーザー登録を処理します。成功時は201とユーザーを返します。
func (h *UserHandler) SignUp(c *gin.Context) {
	log := middleware.LoggerFrom(c, h.log)

	var req dto.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("signup validation failed", zap.Error(err), zap.String("client_ip", c.ClientIP()))
		response.BindingError(c, err)
		return
	}

	out, err := h.uc.SignUp.Execute(c.Request.Context(), usecase.SignUpInput{
		Name:     h.sanitizeName(req.Name),
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.fail(c, log, "signup failed", err, zap.String("email", req.Email))
		return
	}

	log.Info("user signed up", zap.String("user_id", out.ID))
	c.JSON(http.StatusCreated, dto.NewUserView(out))
}

// SignIn は認証を行い、成功時にトークンを返します。
func (h *UserHandler) SignIn(c *gin.Context) {
	log := middleware.LoggerFrom(c, h.log)

	var req dto.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("signin validation failed", zap.Error(err), zap.String("client_ip", c.ClientIP()))
		response.BindingError(c, err)
		return
	}

	out, err := h.uc.SignIn.Execute(c.Request.Context(), usecase.SignInInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.fail(c, log, "signin failed", err, zap.String("email", req.Email))
		return
	}

	token, err := h.tokens.GenerateToken(out.ID)
	if err != nil {
		h.fail(c, log, "token generation failed", err, zap.String("user_id", out.ID))
		return
	}

	log.Info("user signed in", zap.String("user_id", out.ID))
	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

// List はユーザー一覧をページングして返します。
func (h *UserHandler) List(c *gin.Context) {
	log := middleware.LoggerFrom(c, h.log)

	var q dto.ListUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		log.Warn("list query validation failed", zap.Error(err))
		response.BindingError(c, err)
		return
	}
	if q.Page == 0 {
		q.Page = repository.DefaultPage
	}
	if q.PerPage == 0 {
		q.PerPage = repository.DefaultPerPage
	}

	out, err := h.uc.ListUsers.Execute(c.Request.Context(), usecase.ListUsersInput{
		Page:    q.Page,
		PerPage: q.PerPage,
		Sort:    q.Sort,
		SortDir: q.SortDir,
		Filter:  q.Filter,
	})
	if err != nil {
		h.fail(c, log, "list users failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserPaginationView(out))
}

// Get はIDでユーザーを返します。
func (h *UserHandler) Get(c *gin.Context) {
	log := middleware.LoggerFrom(c, h.log)
	id := c.Param("id")

	out, err := h.uc.GetUser.Execute(c.Request.Context(), usecase.GetUserInput{ID: id})
	if err != nil {
		h.fail(c, log, "get user failed", err, zap.String("user_id", id))
		return
	}
	c.JSON(http.StatusOK, dto.NewUserView(out))
}

// Update はユーザー名を更新します。
func (h *UserHandler) Update(c *gin.Context) {
	log := middleware.LoggerFrom(c, h.log)
	id := c.Param("id")

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("update validation failed", zap.Error(err), zap.String("user_id", id))
		response.BindingError(c, err)
		return
	}

	out, err := h.uc.UpdateUser.Execute(c.Request.Context(), usecase.UpdateUserInput{
		ID:   id,
		Name: h.sanitizeName(req.Name),
	})
	if err != nil {
		h.fail(c, log, "update user failed", err, zap.String("user_id", id))
		return
	}
	c.JSON(http.StatusOK, dto.NewUserView(out))
}

// UpdatePassword はパスワードを変更し、それ以前に発行されたトークンを失効させます。
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	log := middleware.LoggerFrom(c, h.log)
	id := c.Param("id")

	var req dto.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("update password validation failed", zap.Error(err), zap.String("user_id", id))
		response.BindingError(c, err)
		return
	}

	out, err := h.uc.UpdatePassword.Execute(c.Request.Context(), usecase.UpdatePasswordInput{
		ID:          id,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		h.fail(c, log, "update password failed", err, zap.String("user_id", id))
		return
	}
	h.revoke(c, log, id)

	log.Info("password updated", zap.String("user_id", id))
	c.JSON(http.StatusOK, dto.NewUserView(out))
}

// Delete はユーザーを削除します。成功時は204です。
func (h *UserHandler) Delete(c *gin.Context) {
	log := middleware.LoggerFrom(c, h.log)
	id := c.Param("id")

	if err := h.uc.DeleteUser.Execute(c.Request.Context(), usecase.DeleteUserInput{ID: id}); err != nil {
		h.fail(c, log, "delete user failed", err, zap.String("user_id", id))
		return
	}
	h.revoke(c, log, id)

	log.Info("user deleted", zap.String("user_id", id))
	c.Status(http.StatusNoContent)
}

// sanitizeName はHTMLタグを取り除きます。エスケープされた文字は元に戻して平文で保存します。
func (h *UserHandler) sanitizeName(name string) string {
	return strings.TrimSpace(html.UnescapeString(h.sanitize.Sanitize(name)))
}

// revoke は失効時刻を記録します。失敗はレスポンスに影響せず、ログのみ出力します。
func (h *UserHandler) revoke(c *gin.Context, log *zap.Logger, userID string) {
	if h.revoker == nil {
		return
	}
	if err := h.revoker.Revoke(c.Request.Context(), userID, h.now()); err != nil {
		log.Error("token revocation failed", zap.Error(err), zap.String("user_id", userID))
	}
}

// fail はエラーをレスポンスに変換し、クライアント起因なら Warn、それ以外は Error で記録します。
func (h *UserHandler) fail(c *gin.Context, log *zap.Logger, msg string, err error, fields ...zap.Field) {
	status := response.FromError(c, err)
	fields = append(fields, zap.Error(err), zap.Int("status", status))
	if status >= http.StatusInternalServerError {
		log.Error(msg, fields...)
		return
	}
	log.Warn(msg, fields...)
}
