// Package rules はユーザー属性のフィールド制約を定義します。
package rules

import "user_backend/internal/shared/validation"

const (
	NameMaxLength     = 255
	EmailMaxLength    = 255
	PasswordMaxLength = 100
)

// UserRules はユーザー属性の検証ルールを返します。
func UserRules() validation.RuleSet {
	return validation.RuleSet{
		{
			Field: "name",
			Constraints: []validation.Constraint{
				validation.NotEmpty("name"),
				validation.IsString("name"),
				validation.MaxLength("name", NameMaxLength),
			},
		},
		{
			Field: "email",
			Constraints: []validation.Constraint{
				validation.NotEmpty("email"),
				validation.IsString("email"),
				validation.MaxLength("email", EmailMaxLength),
				validation.IsEmail("email"),
			},
		},
		{
			Field: "password",
			Constraints: []validation.Constraint{
				validation.NotEmpty("password"),
				validation.IsString("password"),
				validation.MaxLength("password", PasswordMaxLength),
			},
		},
		{
			Field:       "createdAt",
			Optional:    true,
			Constraints: []validation.Constraint{validation.IsDate("createdAt")},
		},
	}
}
