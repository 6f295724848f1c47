package validation

import (
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var (
	emailOnce     sync.Once
	emailValidate *validator.Validate
)

// NotEmpty は nil と空文字列を拒否します。
func NotEmpty(field string) Constraint {
	return Constraint{
		Message: field + " should not be empty",
		Test: func(v any) bool {
			if v == nil {
				return false
			}
			if s, ok := v.(string); ok {
				return s != ""
			}
			return true
		},
	}
}

// IsString は値が文字列であることを要求します。
func IsString(field string) Constraint {
	return Constraint{
		Message: field + " must be a string",
		Test: func(v any) bool {
			_, ok := v.(string)
			return ok
		},
	}
}

// MaxLength は文字列の長さ（rune 数）が n 以下であることを要求します。文字列以外は違反です。
func MaxLength(field string, n int) Constraint {
	return Constraint{
		Message: fmt.Sprintf("%s must be shorter than or equal to %d characters", field, n),
		Test: func(v any) bool {
			s, ok := v.(string)
			return ok && utf8.RuneCountInString(s) <= n
		},
	}
}

// IsEmail はメールアドレス構文を要求します。判定は go-playground/validator の email タグに委ねます。
func IsEmail(field string) Constraint {
	emailOnce.Do(func() { emailValidate = validator.New() })
	return Constraint{
		Message: field + " must be an email",
		Test: func(v any) bool {
			s, ok := v.(string)
			return ok && emailValidate.Var(s, "required,email") == nil
		},
	}
}

// IsDate は値が time.Time（または非 nil の *time.Time）であることを要求します。
func IsDate(field string) Constraint {
	return Constraint{
		Message: field + " must be a Date instance",
		Test: func(v any) bool {
			switch t := v.(type) {
			case time.Time:
				return true
			case *time.Time:
				return t != nil
			default:
				return false
			}
		},
	}
}
