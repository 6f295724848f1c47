// Package response はHTTPエラーレスポンスの共通形式と、ドメインエラーからの変換を提供します。
package response

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"user_backend/internal/shared/domainerr"
	"user_backend/internal/shared/validation"
)

// ErrorResponse はすべてのエラーレスポンスの形式です。
// Message は単一の文字列、または検証エラー時はメッセージの配列です。
type ErrorResponse struct {
	StatusCode int                    `json:"statusCode"`
	Error      string                 `json:"error"`
	Message    any                    `json:"message"`
	Details    validation.FieldErrors `json:"details,omitempty"`
}

// Abort は指定ステータスのエラーレスポンスを書き込み、後続のハンドラーを中断します。
func Abort(c *gin.Context, status int, message any) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		StatusCode: status,
		Error:      http.StatusText(status),
		Message:    message,
	})
}

// StatusOf はエラーに対応するHTTPステータスを返します。分類できないエラーは500です。
func StatusOf(err error) int {
	var (
		validationErr *domainerr.EntityValidationError
		badRequest    *domainerr.BadRequestError
		notFound      *domainerr.NotFoundError
		conflict      *domainerr.ConflictError
		authErr       *domainerr.AuthenticationError
		invalidPwd    *domainerr.InvalidPasswordError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &badRequest):
		return http.StatusUnprocessableEntity
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &authErr), errors.As(err, &invalidPwd):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// FromError はドメインエラーをHTTPレスポンスに変換して書き込み、ステータスを返します。
// 分類できないエラーの内容はクライアントに公開しません。
func FromError(c *gin.Context, err error) int {
	status := StatusOf(err)

	var validationErr *domainerr.EntityValidationError
	if errors.As(err, &validationErr) {
		c.AbortWithStatusJSON(status, ErrorResponse{
			StatusCode: status,
			Error:      http.StatusText(status),
			Message:    flatten(validationErr.Errors),
			Details:    validationErr.Errors,
		})
		return status
	}

	if status == http.StatusInternalServerError {
		Abort(c, status, "internal server error")
		return status
	}
	Abort(c, status, err.Error())
	return status
}

// BindingError はリクエストのバインドに失敗したときのレスポンスを書き込みます。
// フィールド検証の失敗は422、JSONとして解釈できない本文は400です。
func BindingError(c *gin.Context, err error) int {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		Abort(c, http.StatusBadRequest, "invalid request body")
		return http.StatusBadRequest
	}

	details := validation.FieldErrors{}
	for _, fe := range verrs {
		field := lowerFirst(fe.Field())
		details[field] = append(details[field], bindingMessage(field, fe))
	}
	status := http.StatusUnprocessableEntity
	c.AbortWithStatusJSON(status, ErrorResponse{
		StatusCode: status,
		Error:      http.StatusText(status),
		Message:    flatten(details),
		Details:    details,
	})
	return status
}

func bindingMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " should not be empty"
	case "email":
		return field + " must be an email"
	case "max":
		return fmt.Sprintf("%s must be shorter than or equal to %s characters", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must not be less than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of the following values: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return field + " is invalid"
	}
}

// flatten はフィールド名順にメッセージを並べます。
func flatten(errs validation.FieldErrors) []string {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	out := make([]string, 0, len(errs))
	for _, f := range fields {
		out = append(out, errs[f]...)
	}
	return out
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
