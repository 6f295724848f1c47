// Package domainerr はドメイン層・アプリケーション層で共有するエラー型を定義します。
// HTTP 境界では各型が1つのステータスコードに対応します。
package domainerr

import (
	"fmt"

	"user_backend/internal/shared/validation"
)

// BadRequestError は必須入力の欠落など、リクエスト自体が不正な場合のエラーです。
type BadRequestError struct{ Message string }

func (e *BadRequestError) Error() string { return e.Message }

// NotFoundError は対象が存在しない場合のエラーです。
type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

// ConflictError は一意性制約（メールアドレス重複など）に違反した場合のエラーです。
type ConflictError struct{ Message string }

func (e *ConflictError) Error() string { return e.Message }

// AuthenticationError は認証情報が一致しない場合のエラーです。
type AuthenticationError struct{ Message string }

func (e *AuthenticationError) Error() string { return e.Message }

// InvalidPasswordError は現在のパスワード確認に失敗した場合のエラーです。
type InvalidPasswordError struct{ Message string }

func (e *InvalidPasswordError) Error() string { return e.Message }

// EntityValidationError はエンティティ検証の違反をフィールド単位で保持します。
type EntityValidationError struct {
	Errors validation.FieldErrors
}

func (e *EntityValidationError) Error() string {
	return fmt.Sprintf("entity validation failed: %d invalid field(s)", len(e.Errors))
}

func NewBadRequest(format string, args ...any) error {
	return &BadRequestError{Message: fmt.Sprintf(format, args...)}
}

func NewNotFound(format string, args ...any) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

func NewConflict(format string, args ...any) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

func NewAuthentication(format string, args ...any) error {
	return &AuthenticationError{Message: fmt.Sprintf(format, args...)}
}

func NewInvalidPassword(format string, args ...any) error {
	return &InvalidPasswordError{Message: fmt.Sprintf(format, args...)}
}

// NewEntityValidation は違反マップから EntityValidationError を生成します。
func NewEntityValidation(errs validation.FieldErrors) error {
	return &EntityValidationError{Errors: errs}
}
